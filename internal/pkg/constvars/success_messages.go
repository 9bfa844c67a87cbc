package constvars

const (
	CreateCaseSuccessMessage        = "Successfully created case"
	GetCaseSuccessMessage           = "Successfully retrieved case"
	ListCasesSuccessMessage         = "Successfully retrieved cases"
	UpdateCaseSuccessMessage        = "Successfully updated case"
	DeleteCaseSuccessMessage        = "Successfully deleted case"
	AssignPathologistSuccessMessage = "Successfully assigned pathologist"
	UpdateResultSuccessMessage      = "Successfully updated case result"
	SignCaseSuccessMessage          = "Successfully signed case"
	DeliverCaseSuccessMessage       = "Successfully delivered case"
	AppendNoteSuccessMessage        = "Successfully added note"
	ListUrgentCasesSuccessMessage   = "Successfully retrieved urgent cases"
	GetRenderDataSuccessMessage     = "Successfully retrieved case render data"

	CreateApprovalSuccessMessage = "Successfully created approval request"
	GetApprovalSuccessMessage    = "Successfully retrieved approval request"
	ListApprovalsSuccessMessage  = "Successfully retrieved approval requests"
	UpdateApprovalSuccessMessage = "Successfully updated approval request"
	ManageApprovalSuccessMessage = "Approval request moved to pending approval"
	ApproveApprovalSuccessMessage = "Successfully approved request and created derived case"
	RejectApprovalSuccessMessage = "Successfully rejected approval request"
	DeleteApprovalSuccessMessage = "Successfully deleted approval request"

	GetStatisticsSuccessMessage = "Successfully computed statistics"

	CreateUnreadCaseSuccessMessage = "Successfully created unread case"
	ListUnreadCasesSuccessMessage  = "Successfully retrieved unread cases"
	UpdateUnreadCaseSuccessMessage = "Successfully updated unread case"
	MarkDeliveredSuccessMessage    = "Successfully marked unread cases as delivered"

	CreatePatientSuccessMessage = "Successfully created patient"
	GetPatientSuccessMessage    = "Successfully retrieved patient"
	ListPatientsSuccessMessage  = "Successfully retrieved patients"
	UpdatePatientSuccessMessage = "Successfully updated patient"

	LoginSuccessMessage  = "Successfully logged in"
	LogoutSuccessMessage = "Successfully logged out"

	UploadSignatureSuccessMessage   = "Successfully uploaded signature"
	SyncPathologistsSuccessMessage  = "Successfully synchronized pathologist names"
	GetCatalogSuccessMessage        = "Successfully retrieved catalog"
)
