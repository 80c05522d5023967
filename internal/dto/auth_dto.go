package dto

import "github.com/roomshare/roomshare/internal/model"

type RegisterRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email,max=100"`
	Track       string `json:"track" binding:"required,oneof=SRT KOT"`
	IndexNumber string `json:"index_number" binding:"required,max=50"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type UpdateProfileRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Track       string `json:"track" binding:"required,oneof=SRT KOT"`
	IndexNumber string `json:"index_number" binding:"required,max=50"`
}
