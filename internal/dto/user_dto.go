package dto

import "time"

type SignupDto struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=64,hasupper,haslower,hasdigit,hasspecial"`
}

type LoginDto struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserDto struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type SignupResponseDto struct {
	User  UserDto `json:"user"`
	Token string  `json:"token"`
}

type LoginResponseDto struct {
	Token string `json:"token"`
}
