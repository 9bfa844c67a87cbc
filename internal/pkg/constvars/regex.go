package constvars

const (
	RegexCaseCode       = `^20\d{2}-\d{5}$`
	RegexApprovalCode   = `^AP-20\d{2}-\d{3}$`
	RegexUnreadCaseCode = `^TC20\d{2}-\d{5}$`
	RegexPatientCode    = `^\d{6,12}$`
)
