package dto

// LoginRequest carries the credentials for the demo token mint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

// LoginResponse returns the signed bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
