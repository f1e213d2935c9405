package models

// PaginatedResponse wraps a page of results from a list endpoint
type PaginatedResponse[T any] struct {
	Content       []T `json:"content"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// ErrorDetails carries field-level information on a validation failure
type ErrorDetails struct {
	Field         string `json:"field"`
	RejectedValue any    `json:"rejectedValue"`
	Code          string `json:"code"`
}

// ErrorEnvelope is the error body every endpoint returns on failure
type ErrorEnvelope struct {
	Timestamp string        `json:"timestamp"`
	Status    int           `json:"status"`
	Error     string        `json:"error"`
	Message   string        `json:"message"`
	Path      string        `json:"path"`
	Details   *ErrorDetails `json:"details,omitempty"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the success body of POST /auth/login
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	User        User   `json:"user"`
}

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// RegisterResponse is the success body of POST /auth/register; the account
// starts in PENDING status until approved
type RegisterResponse struct {
	ID       string     `json:"id"`
	Email    string     `json:"email"`
	FullName string     `json:"fullName"`
	Status   UserStatus `json:"status"`
	Roles    []UserRole `json:"roles"`
	Message  string     `json:"message"`
}

// AvatarResponse is the success body of POST /members/{id}/avatar
type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}
