package service

import "errors"

var (
	ErrUserAlreadyExist = errors.New("user already exist")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidRole      = errors.New("invalid role")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginLocked        = errors.New("too many failed attempts, try again later")

	ErrAlreadyVerified         = errors.New("email already verified")
	ErrVerificationRateLimited = errors.New("verification resend rate limited")

	// Used and expired reset tokens are deliberately one outcome.
	ErrResetTokenExpired = errors.New("reset token invalid or expired")
	ErrResetTokenInvalid = errors.New("reset token not found")

	ErrMessagingNotAllowed = errors.New("messaging between these users is not allowed")
	ErrCannotMessageSelf   = errors.New("cannot message yourself")
	ErrNotMember           = errors.New("user is not a member of this conversation")

	ErrStartupNotFound = errors.New("startup not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrFundingNotFound = errors.New("funding application not found")

	ErrPermissionDenied = errors.New("permission denied")
)
