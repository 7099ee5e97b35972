package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
)

var ErrLessonNotFound = errors.New("lesson not found")

const lessonColumns = `id, curso_id, titulo, video_url, contenido, creado_en`

type LessonRepository interface {
	Create(lesson *model.Lesson) error
	ByID(id string) (*model.Lesson, error)
	ByCourse(courseID string) ([]*model.Lesson, error)
}

type lessonRepository struct {
	db *sqlx.DB
}

func NewLessonRepository(db *sqlx.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *model.Lesson) error {
	query := `INSERT INTO lecciones (` + lessonColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	return withTx(r.db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(query,
			lesson.ID,
			lesson.CourseID,
			lesson.Title,
			lesson.VideoURL,
			lesson.Content,
			lesson.CreatedAt,
		)
		if err != nil && foreignKeyViolation(err) {
			return ErrCourseNotFound
		}
		return err
	})
}

func (r *lessonRepository) ByID(id string) (*model.Lesson, error) {
	lesson := &model.Lesson{}
	query := `SELECT ` + lessonColumns + ` FROM lecciones WHERE id = $1`

	err := r.db.Get(lesson, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	return lesson, nil
}

// ByCourse returns the lessons of a course in the order they were added.
func (r *lessonRepository) ByCourse(courseID string) ([]*model.Lesson, error) {
	var lessons []*model.Lesson
	query := `SELECT ` + lessonColumns + ` FROM lecciones WHERE curso_id = $1 ORDER BY creado_en ASC`

	err := r.db.Select(&lessons, query, courseID)
	if err != nil {
		return nil, err
	}
	return lessons, nil
}
