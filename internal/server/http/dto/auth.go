package dto

// AuthRequest describes username/password payload.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProfileResponse describes the authenticated user.
type ProfileResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}
