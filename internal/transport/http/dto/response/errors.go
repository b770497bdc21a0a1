package response

// Коды ошибок API редактора. Details заполняется в хендлере.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeSessionNotFound    = "session_not_found"
	CodeSessionClosed      = "session_closed"
	CodeImageNotFound      = "image_not_found"
	CodePropertyNotFound   = "property_not_found"
	CodeValidationFailed   = "validation_failed"
	CodeDomainError        = "domain_error"
	CodeSubmissionInFlight = "submission_in_flight"
	CodeSubmissionFailed   = "submission_failed"
	CodeUpstreamFailed     = "upstream_failed"
	CodeInternal           = "internal_error"
)

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   CodeInvalidRequest,
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status:  "error",
		Error:   CodeUnauthorized,
		Details: "Authentication required",
	}

	ErrAgentRequired = ErrorResponse{
		Status:  "error",
		Error:   CodeForbidden,
		Details: "Only agents can edit listings",
	}

	ErrSessionNotFound = ErrorResponse{
		Status:  "error",
		Error:   CodeSessionNotFound,
		Details: "Editor session not found or expired",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   CodeInternal,
		Details: "Internal server error",
	}
)
