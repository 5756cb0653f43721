package constant

// Logout modes accepted by the session service.
const (
	LogoutModeCurrent          = "current"
	LogoutModeAll              = "all"
	LogoutModeAllExceptCurrent = "allExceptCurrent"
)

// Messages returned per logout mode. The "all" message carries a typo that
// shipped to clients long ago; changing it would break message-matching consumers.
const (
	MsgLoggedOutAll              = "You are succesully logged out from all devices"
	MsgLoggedOutAllExceptCurrent = "You are logged out from all other devices"
	MsgLoggedOutCurrent          = "You are successfully logged out."
)

const (
	// FingerprintHeader carries the opaque per-device signature on every request.
	FingerprintHeader = "X-Device-Fingerprint"

	AdminRoleName   = "admin"
	DefaultUserRole = "user"

	// PasswordHashCost is the fixed bcrypt cost factor.
	PasswordHashCost = 8
)
