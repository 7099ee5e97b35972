package model

import (
	"time"
)

const (
	RoleStudent    = "alumno"
	RoleInstructor = "profesor"
)

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"nombre"`
	Surname      string    `db:"apellido"`
	Handle       string    `db:"usuario"`
	Email        string    `db:"correo"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"rol"`
	CreatedAt    time.Time `db:"creado_en"`
}

func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

// FullName is the display name shown in the session and pages.
func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}
