package domain

// Error is the typed error value carried inside a failure Result.
// Code is a stable machine-readable string ("Auth.EmailExists") that clients
// key on; Description is the human-readable message.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ErrNone is the empty sentinel. It is never placed inside a failure's
// error list; the Result constructors reject it.
var ErrNone = Error{}

func NewError(code, description string) Error {
	return Error{Code: code, Description: description}
}

// ValidationError wraps a validation message under the shared validation code.
func ValidationError(description string) Error {
	return NewError("Validation.Error", description)
}

var (
	ErrEmailExists           = NewError("Auth.EmailExists", "Email is already registered")
	ErrUserNotFound          = NewError("Auth.UserNotFound", "User not found")
	ErrEmailAlreadyConfirmed = NewError("Auth.EmailAlreadyConfirmed", "Email is already confirmed")
	ErrInvalidOtp            = NewError("Auth.InvalidOtp", "No verification code found")
	ErrInvalidTokenFormat    = NewError("Auth.InvalidTokenFormat", "Stored token has an invalid format")
	ErrWrongOtp              = NewError("Auth.WrongOtp", "Verification code does not match")
	ErrOtpExpired            = NewError("Auth.OtpExpired", "Verification code has expired")
	ErrLoginFailed           = NewError("Auth.LoginFailed", "Invalid email or password")
	ErrNotVerified           = NewError("Auth.NotVerified", "Email is not verified")
	ErrLocked                = NewError("Auth.Locked", "Account is locked")
	ErrInvalidRefreshToken   = NewError("Auth.InvalidRefreshToken", "Refresh token is invalid or expired")
)

func ErrRegisterFailed(description string) Error {
	return NewError("Auth.RegisterFailed", description)
}

func ErrRegisterUserException(description string) Error {
	return NewError("Auth.RegisterUserException", description)
}

func ErrVerifyOtpException(description string) Error {
	return NewError("Auth.VerifyOtpException", description)
}

func ErrLoginException(description string) Error {
	return NewError("Auth.LoginException", description)
}

var (
	ErrRoleNotFound      = NewError("Role.NotFound", "Role not found")
	ErrRoleDuplicateName = NewError("Role.DuplicateName", "A role with this name already exists")
)

func ErrRoleCreateFailed(description string) Error {
	return NewError("Role.CreateFailed", description)
}

func ErrRoleDeleteFailed(description string) Error {
	return NewError("Role.DeleteFailed", description)
}
