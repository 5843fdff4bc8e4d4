package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	UserAlreadyExistsCode       = 1001
	UserAlreadyExistsMessage    = "user already exists"
	UserNotFoundCode            = 1002
	UserNotFoundMessage         = "user not found"
	InvalidCredentialsCode      = 1003
	InvalidCredentialsMessage   = "invalid email or password"
	LoginLockedCode             = 1004
	LoginLockedMessage          = "too many failed attempts, try again later"
	InvalidRoleCode             = 1005
	InvalidRoleMessage          = "invalid role"
	AlreadyVerifiedCode         = 1006
	AlreadyVerifiedMessage      = "email already verified"
	VerificationLimitedCode     = 1007
	VerificationLimitedMessage  = "verification rate limit exceeded"
	InvalidVerificationCode     = 1008
	InvalidVerificationMessage  = "invalid or expired verification token"
	ResetTokenInvalidCode       = 1009
	ResetTokenInvalidMessage    = "invalid reset token"
	ResetTokenExpiredCode       = 1010
	ResetTokenExpiredMessage    = "reset token expired or already used"
	MessagingNotAllowedCode     = 2001
	MessagingNotAllowedMessage  = "messaging with this user is not allowed"
	NotConversationMemberCode   = 2002
	NotConversationMemberMsg    = "not a member of this conversation"
	StartupNotFoundCode         = 3001
	StartupNotFoundMessage      = "startup not found"
	ProjectNotFoundCode         = 3002
	ProjectNotFoundMessage      = "project not found"
	TaskNotFoundCode            = 3003
	TaskNotFoundMessage         = "task not found"
	FundingNotFoundCode         = 3004
	FundingNotFoundMessage      = "funding application not found"
	PermissionDeniedCode        = 4001
	PermissionDeniedMessage     = "permission denied"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

var errorMessages = map[ErrorCode]ErrorMessage{
	UserAlreadyExistsCode:     UserAlreadyExistsMessage,
	UserNotFoundCode:          UserNotFoundMessage,
	InvalidCredentialsCode:    InvalidCredentialsMessage,
	LoginLockedCode:           LoginLockedMessage,
	InvalidRoleCode:           InvalidRoleMessage,
	AlreadyVerifiedCode:       AlreadyVerifiedMessage,
	VerificationLimitedCode:   VerificationLimitedMessage,
	InvalidVerificationCode:   InvalidVerificationMessage,
	ResetTokenInvalidCode:     ResetTokenInvalidMessage,
	ResetTokenExpiredCode:     ResetTokenExpiredMessage,
	MessagingNotAllowedCode:   MessagingNotAllowedMessage,
	NotConversationMemberCode: NotConversationMemberMsg,
	StartupNotFoundCode:       StartupNotFoundMessage,
	ProjectNotFoundCode:       ProjectNotFoundMessage,
	TaskNotFoundCode:          TaskNotFoundMessage,
	FundingNotFoundCode:       FundingNotFoundMessage,
	PermissionDeniedCode:      PermissionDeniedMessage,
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	if message, ok := errorMessages[code]; ok {
		return &ErrorStruct{ErrorCode: code, ErrorMessage: message}
	}
	return &ErrorStruct{ErrorCode: UnknownErrorCode, ErrorMessage: UnknownErrorMessage}
}
