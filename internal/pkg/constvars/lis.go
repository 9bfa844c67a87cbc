package constvars

// Case lifecycle states. Transitions only move forward:
// InProcess -> ToSign -> ToDeliver -> Completed.
const (
	CaseStateInProcess = "In Process"
	CaseStateToSign    = "To Sign"
	CaseStateToDeliver = "To Deliver"
	CaseStateCompleted = "Completed"
)

const (
	CasePriorityNormal   = "Normal"
	CasePriorityPriority = "Priority"
	CasePriorityUrgent   = "Urgent"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

const (
	CareTypeAmbulatory   = "Ambulatory"
	CareTypeHospitalized = "Hospitalized"
)

// Approval request states.
const (
	ApprovalStateRequestMade     = "Request Made"
	ApprovalStatePendingApproval = "Pending Approval"
	ApprovalStateApproved        = "Approved"
	ApprovalStateRejected        = "Rejected"
)

// Unread case (slide-only delivery) statuses and test group types.
const (
	UnreadCaseStatusInProcess = "In Process"
	UnreadCaseStatusCompleted = "Completed"
)

const (
	TestGroupLowComplexityIHQ  = "LowComplexityIHQ"
	TestGroupHighComplexityIHQ = "HighComplexityIHQ"
	TestGroupSpecialIHQ        = "SpecialIHQ"
	TestGroupHistochemistry    = "Histochemistry"
)

// Frontend display names for unread-case test group types.
var UnreadCaseTestGroupNames = map[string]string{
	"IHQ de baja complejidad": TestGroupLowComplexityIHQ,
	"IHQ de alta complejidad": TestGroupHighComplexityIHQ,
	"IHQ especial":            TestGroupSpecialIHQ,
	"Histoquimica":            TestGroupHistochemistry,
}

// Principal roles consumed from the auth collaborator.
const (
	RoleAdministrator = "administrator"
	RolePathologist   = "pathologist"
	RoleResident      = "resident"
	RoleAuxiliary     = "auxiliary"
	RoleBilling       = "billing"
)

// Defaults for the derived views.
const (
	DefaultOpportunityThresholdDays = 7
	DefaultUrgentMinBusinessDays    = 6
	DefaultUrgentLimit              = 50
	DefaultBodyRegion               = "General"
)

// Entity abbreviations accepted as prefix filters on the per-test
// statistics endpoints, expanded to the institutional names stored in
// entity_info.name.
var EntityAbbreviations = map[string]string{
	"HAMA":    "Hospital Alma Máter de Antioquia",
	"HGM":     "Hospital General de Medellín Luz Castro G.",
	"HSVP":    "Hospital San Vicente de Paúl",
	"HPTU":    "Hospital Pablo Tobón Uribe",
	"CES":     "Clínica CES",
	"IPSU":    "IPS Universitaria",
	"LCA":     "Clínica León XIII",
	"SOMA":    "Clínica SOMA",
	"CLM":     "Clínica Las Américas",
	"CMEDELLIN": "Clínica Medellín",
}
