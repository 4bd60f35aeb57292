// Package dto - DTO cho domain auth (register, login).
package dto

// RegisterInput dữ liệu đăng ký tài khoản khách hàng.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50,no_xss"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,no_xss"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=15"`
	Address  string `json:"address,omitempty" validate:"omitempty,no_xss"`
}

// LoginInput dữ liệu đăng nhập.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse trả về sau khi đăng nhập / đăng ký thành công.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Name   string `json:"name"`
}
