package authapi

// credentialsRequest is the body sent to /auth/login and /auth/register
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the success body
type tokenResponse struct {
	Token string `json:"token"`
}

// errorResponse is the optional failure body
type errorResponse struct {
	Message string `json:"message"`
}
