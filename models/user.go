package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//User represents a user in the system

type User struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username         string             `json:"username" bson:"username"`
	Email            string             `json:"email" bson:"email"`
	PasswordHash     string             `json:"-" bson:"password"`
	FullName         string             `json:"fullName" bson:"fullName"`
	Role             Role               `json:"role" bson:"role"`
	Status           bool               `json:"status" bson:"status"`
	ResetToken       string             `json:"-" bson:"resetToken,omitempty"`
	ResetTokenExpiry *time.Time         `json:"-" bson:"resetTokenExpiry,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DisplayName prefers the full name, falling back to the username.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleMod   Role = "mod"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleMod
}
