package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrDuplicateHandle  = errors.New("handle already exists")
	ErrTokenAlreadyUsed = errors.New("reset token has already been used")
)

const userColumns = `id, nombre, apellido, usuario, correo, password_hash, rol, creado_en`

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	ResetPassword(email, passwordHash string, redemption *model.RedeemedToken) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user. Email and handle uniqueness is enforced by the
// table constraints, so concurrent registrations cannot both succeed.
func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO usuarios (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	return withTx(r.db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(query,
			user.ID,
			user.Name,
			user.Surname,
			user.Handle,
			user.Email,
			user.PasswordHash,
			user.Role,
			user.CreatedAt,
		)
		if err != nil {
			return translateUserConflict(err)
		}
		return nil
	})
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE correo = $1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ResetPassword overwrites the password hash of the user owning email.
// When redemption is set, the token is recorded as used in the same
// transaction; a second redemption of the same token fails with
// ErrTokenAlreadyUsed and nothing is changed.
func (r *userRepository) ResetPassword(email, passwordHash string, redemption *model.RedeemedToken) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		if redemption != nil {
			err := insertRedemption(tx, redemption)
			if err != nil {
				return err
			}
		}

		result, err := tx.Exec(`UPDATE usuarios SET password_hash = $1 WHERE correo = $2`, passwordHash, email)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

func translateUserConflict(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	// check the email column first: "usuarios.correo" also contains "usuario"
	switch {
	case strings.Contains(constraint, "correo"):
		return ErrDuplicateEmail
	case strings.Contains(constraint, "usuario"):
		return ErrDuplicateHandle
	}
	return err
}
