package model

import (
	"time"
)

// PurchaseStatusPaid is the only status the simulated ledger records.
const PurchaseStatusPaid = "pagado"

type PaymentMethod struct {
	ID      string `db:"id"`
	Name    string `db:"nombre"`
	Type    string `db:"tipo"`
	Enabled bool   `db:"habilitado"`
}

type Purchase struct {
	ID              string    `db:"id"`
	UserID          string    `db:"usuario_id"`
	CourseID        string    `db:"curso_id"`
	PaymentMethodID string    `db:"metodo_pago_id"`
	AmountCents     int64     `db:"monto_centimos"`
	Status          string    `db:"estado"`
	CreatedAt       time.Time `db:"fecha"`
}

// PurchaseRecord is a purchase joined with the title of its course.
type PurchaseRecord struct {
	ID          string    `db:"id"`
	CourseTitle string    `db:"titulo"`
	AmountCents int64     `db:"monto_centimos"`
	Status      string    `db:"estado"`
	CreatedAt   time.Time `db:"fecha"`
}

func (p *PurchaseRecord) FormatAmount() string {
	return FormatCents(p.AmountCents)
}
