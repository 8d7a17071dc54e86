package dto

type LoginRequestDTO struct {
	Username string `json:"username" validate:"required,min=3,max=50" example:"admin"`
	Password string `json:"password" validate:"required,min=6" example:"admin123"`
	Role     string `json:"role" validate:"required,oneof=user admin" example:"admin"`
}

type LoginResponseDTO struct {
	Success bool        `json:"success"`
	User    UserInfoDTO `json:"user"`
}

type UserInfoDTO struct {
	ID       string `json:"id" example:"8a1b3b0e-3f62-4a0e-9a53-7ad1b3d1f0c9"`
	Email    string `json:"email" example:"user@smmpanel.com"`
	Username string `json:"username" example:"user1"`
	Role     string `json:"role" example:"user"`
}

type MessageResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
