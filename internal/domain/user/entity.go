package user

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeStudent      Type = "student"
	TypeProfessional Type = "professional"
	TypeCompany      Type = "company"
	TypeMentor       Type = "mentor"
	// TypeAdmin curates the catalog. It cannot be chosen at registration;
	// admin accounts come from the seeder.
	TypeAdmin Type = "admin"
)

// Valid reports whether t can be picked when registering.
func (t Type) Valid() bool {
	switch t {
	case TypeStudent, TypeProfessional, TypeCompany, TypeMentor:
		return true
	default:
		return false
	}
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	AvatarURL    *string
	Type         Type
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
