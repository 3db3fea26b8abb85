package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyCoachID   = "coach_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Roles carried in JWT claims
	RoleCoach = "coach"
	RoleAdmin = "admin"

	// Student status
	StudentStatusActive   = "active"
	StudentStatusInactive = "inactive"

	// Slot source types
	SlotSourcePlan  = "plan"
	SlotSourceToken = "token"

	// Database table names
	TablePlanDefinitions = "plan_definitions"
	TablePlanAssignments = "plan_assignments"
	TableCapacityTokens  = "capacity_tokens"
	TableStudents        = "students"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
