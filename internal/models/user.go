package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	StudentRole = "student"
	TeacherRole = "teacher"
	AdminRole   = "admin"
)

type User struct {
	ID       uuid.UUID
	Username string
	Password string
	Email    string
	Roles    []string
}

type RefreshToken struct {
	UserID      uuid.UUID
	HashedToken string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

type TokenPair struct {
	AccessToken  *jwt.Token
	RefreshToken *jwt.Token
}
