package model

import (
	"fmt"
	"time"
)

type Course struct {
	ID           string    `db:"id"`
	Title        string    `db:"titulo"`
	Description  string    `db:"descripcion"`
	PriceCents   int64     `db:"precio_centimos"`
	ImageURL     string    `db:"imagen_url"`
	InstructorID string    `db:"profesor_id"`
	CreatedAt    time.Time `db:"creado_en"`
}

// Price returns the price as a decimal amount.
func (c *Course) Price() float64 {
	return CentsToAmount(c.PriceCents)
}

func (c *Course) FormatPrice() string {
	return FormatCents(c.PriceCents)
}

type Lesson struct {
	ID        string    `db:"id"`
	CourseID  string    `db:"curso_id"`
	Title     string    `db:"titulo"`
	VideoURL  string    `db:"video_url"`
	Content   string    `db:"contenido"`
	CreatedAt time.Time `db:"creado_en"`
}

func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100.0
}

func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
