package domain

import "time"

// User represents a platform account as returned by the remote API
type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	Address     string     `json:"address"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastActive  *time.Time `json:"lastActive,omitempty"`
}

// UserPayload holds parameters for creating or updating a user
type UserPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	Role        Role   `json:"role"`
	IsActive    bool   `json:"isActive"`
	// Only sent on create; edit flows never change the password here.
	Password string `json:"password,omitempty"`
}

// PayloadOf copies the writable fields of u.
func PayloadOf(u User) UserPayload {
	return UserPayload{
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Role:        u.Role,
		IsActive:    u.IsActive,
	}
}
