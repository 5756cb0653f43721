package dto

// LogoutInput carries everything the session service needs to pick and
// destroy sessions. Forced marks a caller with no live token context (an
// administrative revocation); it is never taken from the request body.
type LogoutInput struct {
	Mode         string `json:"mode"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"-"`
	AccessToken  string `json:"-"`
	Fingerprint  string `json:"-"`
	Forced       bool   `json:"-"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}
