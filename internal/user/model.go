package user

import "time"

// User is a system operator: staff at the front desk or an administrator.
type User struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        *string   `db:"email" json:"email,omitempty"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50" example:"recepcao"`
	Password  string `json:"password" binding:"required,min=6" example:"secret123"`
	FirstName string `json:"first_name" binding:"max=100" example:"Ana"`
	LastName  string `json:"last_name" binding:"max=100" example:"Souza"`
	Email     string `json:"email" binding:"omitempty,email" example:"ana@40graus.com"`
	Role      string `json:"role" binding:"required,oneof=admin receptionist" example:"receptionist"`
}

type UpdateUserRequest struct {
	FirstName string `json:"first_name" binding:"max=100" example:"Ana"`
	LastName  string `json:"last_name" binding:"max=100" example:"Souza"`
	Email     string `json:"email" binding:"omitempty,email" example:"ana@40graus.com"`
	Role      string `json:"role" binding:"required,oneof=admin receptionist" example:"receptionist"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required" example:"secret123"`
	NewPassword     string `json:"new_password" binding:"required,min=6" example:"n3w-secret"`
}
