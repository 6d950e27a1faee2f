// AngelaMos | 2026
// dto.go

package auth

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Contact  string `json:"contact"  validate:"required,max=20"`
	Address  string `json:"address"  validate:"required,max=500"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// UserData mirrors the profile shape the frontend expects.
type UserData struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	IsAdmin    bool    `json:"isAdmin"`
	Address    string  `json:"address"`
	ProfilePic *string `json:"profilepic"`
	Contact    string  `json:"contact"`
}

type UserDataResponse struct {
	User UserData `json:"user"`
}
