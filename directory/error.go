package directory

import "github.com/xy-planning-network/ridewitus"

var (
	ErrCannotDeleteSelf   = ridewitus.NewCodedError(ridewitus.CodeCannotDeleteSelf, ridewitus.ErrNotValid, "you cannot delete your own account here")
	ErrEmailInUse         = ridewitus.NewCodedError(ridewitus.CodeEmailInUse, ridewitus.ErrExists, "email is already in use")
	ErrInvalidCredentials = ridewitus.NewCodedError(ridewitus.CodeInvalidCredentials, ridewitus.ErrNotAuthenticated, "invalid email or password")
	ErrInvalidEmail       = ridewitus.NewCodedError(ridewitus.CodeInvalidEmail, ridewitus.ErrNotValid, "invalid email address")
	ErrInvalidInput       = ridewitus.NewCodedError(ridewitus.CodeInvalidInput, ridewitus.ErrNotValid, "invalid input")
	ErrInvalidName        = ridewitus.NewCodedError(ridewitus.CodeInvalidName, ridewitus.ErrNotValid, "name is required")
	ErrInvalidPassword    = ridewitus.NewCodedError(ridewitus.CodeInvalidPassword, ridewitus.ErrNotValid, "password must be at least 8 characters")
	ErrMissingCredentials = ridewitus.NewCodedError(ridewitus.CodeMissingCredentials, ridewitus.ErrNotValid, "email and password are required")
	ErrMissingFields      = ridewitus.NewCodedError(ridewitus.CodeMissingFields, ridewitus.ErrNotValid, "all fields are required")
	ErrUnauthorized       = ridewitus.NewCodedError(ridewitus.CodeUnauthorized, ridewitus.ErrForbidden, "not allowed")
	ErrUserExists         = ridewitus.NewCodedError(ridewitus.CodeUserExists, ridewitus.ErrExists, "an account with this email already exists")
	ErrUserNotFound       = ridewitus.NewCodedError(ridewitus.CodeUserNotFound, ridewitus.ErrNotFound, "user not found")
	ErrWeakPassword       = ridewitus.NewCodedError(ridewitus.CodeWeakPassword, ridewitus.ErrNotValid, "new password must be at least 8 characters")
)
