package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           = ContextKey("request_id")
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY = ContextKey("is_client_request_id")
	CONTEXT_PRINCIPAL_KEY            = ContextKey("principal")
)

const (
	MongoCollectionCases       = "cases"
	MongoCollectionPatients    = "patients"
	MongoCollectionEntities    = "entities"
	MongoCollectionTests       = "tests"
	MongoCollectionPathologists = "pathologists"
	MongoCollectionResidents   = "residents"
	MongoCollectionAuxiliaries = "auxiliaries"
	MongoCollectionBilling     = "billing"
	MongoCollectionUsers       = "users"
	MongoCollectionApprovals   = "approvals"
	MongoCollectionUnreadCases = "unread_cases"
	MongoCollectionCounters    = "counters"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

// Named counter sequences. Each one is scoped per year.
const (
	CounterCaseConsecutive       = "case"
	CounterApprovalConsecutive   = "approval"
	CounterUnreadCaseConsecutive = "unread_case"
	CounterTicketConsecutive     = "ticket"
)

const (
	CaseConsecutiveMax     = 99999
	ApprovalConsecutiveMax = 999
)

// Redis cache keys and TTLs for the read-heavy endpoints.
const (
	RedisKeyCaseDetailFormat  = "patholab:case:%s"
	RedisKeyDashboardOverview = "patholab:stats:dashboard_overview"
	RedisKeyCasesByMonth      = "patholab:stats:cases_by_month:%d"
	RedisKeySessionFormat     = "patholab:session:%s"
)

const (
	CacheTTLCaseDetailMinutes       = 3
	CacheTTLStatisticsMinutes       = 5
	CacheTTLMonthlyAggregateMinutes = 10
)

const (
	EventCaseCreated      = "case.created"
	EventCaseSigned       = "case.signed"
	EventCaseDelivered    = "case.delivered"
	EventApprovalApproved = "approval.approved"
)
