package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	TotalMinutes int64              `json:"totalMinutes" bson:"total_minutes"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
}

// Profile is the user's own view of their account.
type Profile struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	TotalMinutes int64              `json:"totalMinutes"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// RegisterRequest represents a registration form submission
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// LoginRequest represents a login form submission
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToProfile converts User to Profile
func (u *User) ToProfile() *Profile {
	return &Profile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		TotalMinutes: u.TotalMinutes,
		CreatedAt:    u.CreatedAt,
	}
}
