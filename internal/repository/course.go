package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
)

var ErrCourseNotFound = errors.New("course not found")

const courseColumns = `id, titulo, descripcion, precio_centimos, imagen_url, profesor_id, creado_en`

type CourseRepository interface {
	Create(course *model.Course) error
	ByID(id string) (*model.Course, error)
	All() ([]*model.Course, error)
	ByInstructor(instructorID string) ([]*model.Course, error)
}

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	query := `INSERT INTO cursos (` + courseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	return withTx(r.db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(query,
			course.ID,
			course.Title,
			course.Description,
			course.PriceCents,
			course.ImageURL,
			course.InstructorID,
			course.CreatedAt,
		)
		if err != nil && foreignKeyViolation(err) {
			return ErrUserNotFound
		}
		return err
	})
}

func (r *courseRepository) ByID(id string) (*model.Course, error) {
	course := &model.Course{}
	query := `SELECT ` + courseColumns + ` FROM cursos WHERE id = $1`

	err := r.db.Get(course, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	return course, nil
}

// All returns the whole catalog, newest first.
func (r *courseRepository) All() ([]*model.Course, error) {
	var courses []*model.Course
	query := `SELECT ` + courseColumns + ` FROM cursos ORDER BY creado_en DESC`

	err := r.db.Select(&courses, query)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) ByInstructor(instructorID string) ([]*model.Course, error) {
	var courses []*model.Course
	query := `SELECT ` + courseColumns + ` FROM cursos WHERE profesor_id = $1 ORDER BY creado_en DESC`

	err := r.db.Select(&courses, query, instructorID)
	if err != nil {
		return nil, err
	}
	return courses, nil
}
