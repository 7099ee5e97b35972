package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/markdown"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/service"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ui"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ui/pages"
)

type courseJSON struct {
	ID          string  `json:"id"`
	Title       string  `json:"titulo"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	ImageURL    string  `json:"imagen_url"`
}

type CatalogHandler struct {
	catalogService  *service.CatalogService
	purchaseService *service.PurchaseService
	markdown        *markdown.Parser
}

func NewCatalogHandler(catalogService *service.CatalogService, purchaseService *service.PurchaseService, md *markdown.Parser) *CatalogHandler {
	return &CatalogHandler{
		catalogService:  catalogService,
		purchaseService: purchaseService,
		markdown:        md,
	}
}

// Courses lists every course as JSON, newest first.
func (h *CatalogHandler) Courses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalogService.ListCourses()
	if err != nil {
		slog.Error("failed to list courses", "error", err)
		jsonError(w, http.StatusInternalServerError, "No hay conexión")
		return
	}

	out := make([]courseJSON, 0, len(courses))
	for _, c := range courses {
		out = append(out, courseJSON{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Price:       c.Price(),
			ImageURL:    c.ImageURL,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) CoursePage(w http.ResponseWriter, r *http.Request) {
	course, lessons, err := h.catalogService.Course(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			http.Error(w, "Curso no encontrado", http.StatusNotFound)
			return
		}
		slog.Error("failed to get course", "error", err)
		http.Error(w, msgUnavailable, http.StatusServiceUnavailable)
		return
	}

	var methods []*model.PaymentMethod
	if h.purchaseService != nil {
		methods, err = h.purchaseService.PaymentMethods()
		if err != nil {
			slog.Warn("failed to list payment methods", "error", err, "course_id", course.ID)
		}
	}

	ui.Render(w, r, pages.Course(course, lessons, methods))
}

func (h *CatalogHandler) LessonPage(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.catalogService.Lesson(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrLessonNotFound) {
			http.Error(w, "Lección no encontrada", http.StatusNotFound)
			return
		}
		slog.Error("failed to get lesson", "error", err)
		http.Error(w, msgUnavailable, http.StatusServiceUnavailable)
		return
	}

	content, err := h.markdown.HTML(lesson.Content)
	if err != nil {
		slog.Error("failed to render lesson content", "error", err, "lesson_id", lesson.ID)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Lesson(lesson, content))
}
