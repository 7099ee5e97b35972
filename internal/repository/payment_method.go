package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
)

type PaymentMethodRepository interface {
	Create(method *model.PaymentMethod) error
	Enabled() ([]*model.PaymentMethod, error)
	Count() (int, error)
}

type paymentMethodRepository struct {
	db *sqlx.DB
}

func NewPaymentMethodRepository(db *sqlx.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(method *model.PaymentMethod) error {
	query := `INSERT INTO metodos_pago (id, nombre, tipo, habilitado) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, method.ID, method.Name, method.Type, method.Enabled)
	return err
}

func (r *paymentMethodRepository) Enabled() ([]*model.PaymentMethod, error) {
	var methods []*model.PaymentMethod
	query := `SELECT id, nombre, tipo, habilitado FROM metodos_pago WHERE habilitado = $1 ORDER BY nombre ASC`

	err := r.db.Select(&methods, query, true)
	if err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *paymentMethodRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM metodos_pago`)
	return count, err
}
