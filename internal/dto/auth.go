package dto

import (
	"github.com/dafoundation/disaster-relief-api/internal/models"
)

// SignupRequest is the sign-up payload.
type SignupRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	FullName string `json:"full_name" form:"full_name" binding:"required,max=200"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}
}
