package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
)

// ErrInvalidReference is returned when a purchase names a course, user or
// payment method that does not exist.
var ErrInvalidReference = errors.New("purchase references a missing row")

type PurchaseRepository interface {
	Create(purchase *model.Purchase) error
	ByUser(userID string) ([]*model.PurchaseRecord, error)
}

type purchaseRepository struct {
	db *sqlx.DB
}

func NewPurchaseRepository(db *sqlx.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(purchase *model.Purchase) error {
	query := `
		INSERT INTO compras (id, usuario_id, curso_id, metodo_pago_id, monto_centimos, estado, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	return withTx(r.db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(query,
			purchase.ID,
			purchase.UserID,
			purchase.CourseID,
			purchase.PaymentMethodID,
			purchase.AmountCents,
			purchase.Status,
			purchase.CreatedAt,
		)
		if err != nil && foreignKeyViolation(err) {
			return ErrInvalidReference
		}
		return err
	})
}

// ByUser returns the purchase history of a user, newest first.
func (r *purchaseRepository) ByUser(userID string) ([]*model.PurchaseRecord, error) {
	var records []*model.PurchaseRecord
	query := `
		SELECT co.id, cu.titulo, co.monto_centimos, co.estado, co.fecha
		FROM compras co
		JOIN cursos cu ON cu.id = co.curso_id
		WHERE co.usuario_id = $1
		ORDER BY co.fecha DESC
	`

	err := r.db.Select(&records, query, userID)
	if err != nil {
		return nil, err
	}
	return records, nil
}
