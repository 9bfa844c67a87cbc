package constvars

// Client-facing messages. These are safe to surface verbatim.
const (
	ErrClientCannotProcessRequest          = "Cannot process your request, please check your input"
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "You are not logged in or your session has expired"
	ErrClientInvalidUsernameOrPassword     = "Invalid username or password"
	ErrClientServerLongRespond             = "The server took too long to respond, please try again later"

	ErrClientCaseNotFound            = "Case not found"
	ErrClientCaseCodeAlreadyExists   = "A case with that case code already exists"
	ErrClientCaseUpdateConflict      = "The case was modified by another user, please reload and retry"
	ErrClientInvalidStateTransition  = "The requested case state transition is not allowed"
	ErrClientResultDiagnosisRequired = "A diagnosis is required before the case can be signed"
	ErrClientPathologistNotAssigned  = "A pathologist must be assigned before signing"
	ErrClientSignerNotAssigned       = "Only the assigned pathologist can sign this case"
	ErrClientDeliveredToRequired     = "The receiver of the delivery is required"
	ErrClientStateNeedsOperation     = "This state change must go through its dedicated operation"
	ErrClientNotesOnlyWhenCompleted  = "Additional notes can only be added to completed cases"

	ErrClientPatientNotFound      = "Patient not found"
	ErrClientPatientAlreadyExists = "A patient with that code already exists"
	ErrClientPathologistNotFound = "Pathologist not found"
	ErrClientEntityNotFound      = "Entity not found"
	ErrClientTestNotFound        = "Test not found"

	ErrClientApprovalNotFound         = "Approval request not found"
	ErrClientApprovalAlreadyActive    = "The case already has an active approval request"
	ErrClientApprovalNotEditable      = "The approval request can no longer be edited"
	ErrClientApprovalInvalidTransition = "The requested approval state transition is not allowed"

	ErrClientUnreadCaseNotFound = "Unread case not found"

	ErrClientYearCapacityExceeded = "The yearly consecutive capacity has been exceeded"
)

// Developer-facing messages. Logged, never returned in production.
const (
	ErrDevValidationFailed         = "request validation failed"
	ErrDevCannotParseJSON          = "cannot parse JSON payload"
	ErrDevCannotParseDate          = "cannot parse date value"
	ErrDevCannotMarshalJSON        = "cannot marshal value to JSON"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded while processing request"
	ErrDevURLParamMissing          = "required URL parameter is missing: %s"

	ErrDevDBFailedToFindDocument    = "database failed to find document"
	ErrDevDBFailedToInsertDocument  = "database failed to insert document"
	ErrDevDBFailedToUpdateDocument  = "database failed to update document"
	ErrDevDBFailedToDeleteDocument  = "database failed to delete document"
	ErrDevDBFailedToIterateDocuments = "database failed to iterate documents"
	ErrDevDBFailedToAggregate       = "database failed to run aggregation"
	ErrDevDBDuplicateKey            = "database rejected a duplicate key"

	ErrDevRedisSet     = "redis failed to set key"
	ErrDevRedisGet     = "redis failed to get key: %s"
	ErrDevRedisDelete  = "redis failed to delete key"

	ErrDevMinioUploadObject  = "minio failed to upload object to bucket %s"
	ErrDevMinioPresignObject = "minio failed to presign object %s"

	ErrDevAMQPPublish = "rabbitmq failed to publish message"

	ErrDevAuthTokenMissing          = "authorization token missing"
	ErrDevAuthTokenInvalidOrExpired = "authorization token invalid or expired"
	ErrDevAuthInvalidSession        = "session not found or expired"
	ErrDevAuthGenerateToken         = "failed to generate session token"
	ErrDevAuthInvalidCredentials    = "credentials do not match any active user"
	ErrDevAuthRoleNotAllowed        = "principal role is not allowed for this operation"
	ErrDevFailedToHashPassword      = "failed to hash password"

	ErrDevCounterCapacityExceeded = "counter %s exceeded capacity for year %d"

	ErrDevCaseNotFound            = "case document does not exist"
	ErrDevCaseCodeAlreadyExists   = "case_code uniqueness violated"
	ErrDevCaseUpdateConflict      = "optimistic concurrency check failed on case update"
	ErrDevInvalidStateTransition  = "illegal case state transition from %s to %s"
	ErrDevStateNeedsOperation     = "state %s is only reachable through its dedicated operation"
	ErrDevApprovalAlreadyActive   = "an approval in Request Made or Pending Approval already exists for the case"
	ErrDevApprovalInvalidTransition = "illegal approval state transition from %s to %s"
)
