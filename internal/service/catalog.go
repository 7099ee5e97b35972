package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/validation"
)

type CourseInput struct {
	Title       string `schema:"titulo"`
	Description string `schema:"descripcion"`
	Price       string `schema:"precio"`
	ImageURL    string `schema:"imagen_url"`
}

type LessonInput struct {
	Title    string `schema:"titulo"`
	VideoURL string `schema:"video_url"`
	Content  string `schema:"contenido"`
}

// ImageUpload is a cover image sent with the course form.
type ImageUpload struct {
	File   multipart.File
	Header *multipart.FileHeader
}

type CatalogService struct {
	courseRepository repository.CourseRepository
	lessonRepository repository.LessonRepository
	imageService     *ImageService
	defaultImage     string
}

func NewCatalogService(
	courseRepository repository.CourseRepository,
	lessonRepository repository.LessonRepository,
	imageService *ImageService,
	defaultImage string,
) *CatalogService {
	return &CatalogService{
		courseRepository: courseRepository,
		lessonRepository: lessonRepository,
		imageService:     imageService,
		defaultImage:     defaultImage,
	}
}

func (s *CatalogService) ListCourses() ([]*model.Course, error) {
	courses, err := s.courseRepository.All()
	if err != nil {
		return nil, unavailable("failed to list courses", err)
	}
	return courses, nil
}

func (s *CatalogService) InstructorCourses(instructorID string) ([]*model.Course, error) {
	courses, err := s.courseRepository.ByInstructor(instructorID)
	if err != nil {
		return nil, unavailable("failed to list instructor courses", err)
	}
	return courses, nil
}

// CreateCourse stores a course owned by instructorID. The cover image is the
// uploaded file when storage is enabled, else the imagen_url field, else the
// default image.
func (s *CatalogService) CreateCourse(ctx context.Context, instructorID string, in CourseInput, upload *ImageUpload) (*model.Course, error) {
	err := validation.ValidateRequired("titulo", "título", in.Title)
	if err != nil {
		return nil, err
	}

	price, err := validation.ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	err = validation.ValidateURL("imagen_url", in.ImageURL)
	if err != nil {
		return nil, err
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	if imageURL == "" {
		imageURL = s.defaultImage
	}

	var imageKey string
	if upload != nil && s.imageService.Enabled() {
		imageKey, imageURL, err = s.imageService.UploadCourseImage(ctx, upload.File, upload.Header)
		if err != nil {
			if errors.Is(err, validation.ErrInvalid) {
				return nil, err
			}
			return nil, unavailable("failed to upload image", err)
		}
	}

	course := &model.Course{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		PriceCents:   price,
		ImageURL:     imageURL,
		InstructorID: instructorID,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.courseRepository.Create(course)
	if err != nil {
		s.imageService.Discard(ctx, imageKey)
		return nil, unavailable("failed to create course", err)
	}

	return course, nil
}

// Course returns a course with its lessons in creation order.
func (s *CatalogService) Course(id string) (*model.Course, []*model.Lesson, error) {
	course, err := s.courseRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, nil, err
		}
		return nil, nil, unavailable("failed to get course", err)
	}

	lessons, err := s.lessonRepository.ByCourse(id)
	if err != nil {
		return nil, nil, unavailable("failed to list lessons", err)
	}

	return course, lessons, nil
}

func (s *CatalogService) Lesson(id string) (*model.Lesson, error) {
	lesson, err := s.lessonRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			return nil, err
		}
		return nil, unavailable("failed to get lesson", err)
	}
	return lesson, nil
}

// OwnedCourse returns the course when instructorID owns it, else ErrForbidden.
func (s *CatalogService) OwnedCourse(instructorID, courseID string) (*model.Course, error) {
	course, err := s.courseRepository.ByID(courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, err
		}
		return nil, unavailable("failed to get course", err)
	}

	if course.InstructorID != instructorID {
		return nil, ErrForbidden
	}
	return course, nil
}

func (s *CatalogService) AddLesson(instructorID, courseID string, in LessonInput) (*model.Lesson, error) {
	err := validation.ValidateRequired("titulo", "título", in.Title)
	if err != nil {
		return nil, err
	}

	err = validation.ValidateURL("video_url", in.VideoURL)
	if err != nil {
		return nil, err
	}

	_, err = s.OwnedCourse(instructorID, courseID)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		ID:        uuid.New().String(),
		CourseID:  courseID,
		Title:     strings.TrimSpace(in.Title),
		VideoURL:  strings.TrimSpace(in.VideoURL),
		Content:   in.Content,
		CreatedAt: time.Now().UTC(),
	}

	err = s.lessonRepository.Create(lesson)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, err
		}
		return nil, unavailable("failed to create lesson", err)
	}

	return lesson, nil
}
