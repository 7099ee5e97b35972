package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ctxkeys"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/flash"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/service"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ui"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ui/pages"
)

const msgNotOwner = "No puedes modificar un curso de otro profesor."

// InstructorHandler serves the /profesor pages. Routes wrap every method in
// middleware.RequireInstructor, so the session is always present.
type InstructorHandler struct {
	catalogService *service.CatalogService
	uploadEnabled  bool
	flashes        *flash.Store
}

func NewInstructorHandler(catalogService *service.CatalogService, uploadEnabled bool, flashes *flash.Store) *InstructorHandler {
	return &InstructorHandler{
		catalogService: catalogService,
		uploadEnabled:  uploadEnabled,
		flashes:        flashes,
	}
}

func (h *InstructorHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.GetSession(r.Context())

	courses, err := h.catalogService.InstructorCourses(session.UserID)
	if err != nil {
		slog.Error("failed to load dashboard", "error", err, "user_id", session.UserID)
		http.Error(w, msgUnavailable, http.StatusServiceUnavailable)
		return
	}

	ui.Render(w, r, pages.Dashboard(session.Name, courses))
}

func (h *InstructorHandler) CreateCoursePage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.CreateCourse(h.uploadEnabled))
}

func (h *InstructorHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.GetSession(r.Context())

	var in service.CourseInput
	err := decodeForm(r, &in)
	if err != nil {
		http.Error(w, "Formulario inválido", http.StatusBadRequest)
		return
	}

	var upload *service.ImageUpload
	if r.MultipartForm != nil {
		file, header, err := r.FormFile("imagen")
		if err == nil {
			defer file.Close()
			upload = &service.ImageUpload{File: file, Header: header}
		} else if !errors.Is(err, http.ErrMissingFile) {
			slog.Warn("failed to read course image", "error", err)
		}
	}

	course, err := h.catalogService.CreateCourse(r.Context(), session.UserID, in, upload)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			h.flashes.Add(w, r, msg)
		} else {
			slog.Error("failed to create course", "error", err, "user_id", session.UserID)
			h.flashes.Add(w, r, msgUnavailable)
		}
		redirect(w, r, "/profesor/crear_curso")
		return
	}

	slog.Info("course created", "course_id", course.ID, "user_id", session.UserID)
	h.flashes.Add(w, r, "Curso creado correctamente.")
	redirect(w, r, "/profesor/dashboard")
}

func (h *InstructorHandler) AddLessonPage(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.GetSession(r.Context())

	course, err := h.catalogService.OwnedCourse(session.UserID, r.PathValue("id"))
	if err != nil {
		h.ownershipError(w, r, err)
		return
	}

	ui.Render(w, r, pages.AddLesson(course))
}

func (h *InstructorHandler) AddLesson(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.GetSession(r.Context())
	courseID := r.PathValue("id")

	var in service.LessonInput
	err := decodeForm(r, &in)
	if err != nil {
		http.Error(w, "Formulario inválido", http.StatusBadRequest)
		return
	}

	lesson, err := h.catalogService.AddLesson(session.UserID, courseID, in)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			h.flashes.Add(w, r, msg)
			redirect(w, r, addLessonPath(courseID))
			return
		}
		if errors.Is(err, service.ErrUnavailable) {
			slog.Error("failed to add lesson", "error", err, "course_id", courseID)
			h.flashes.Add(w, r, msgUnavailable)
			redirect(w, r, addLessonPath(courseID))
			return
		}
		h.ownershipError(w, r, err)
		return
	}

	slog.Info("lesson added", "lesson_id", lesson.ID, "course_id", courseID, "user_id", session.UserID)
	h.flashes.Add(w, r, "Lección añadida.")
	redirect(w, r, "/profesor/dashboard")
}

func (h *InstructorHandler) ownershipError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrCourseNotFound):
		http.Error(w, "Curso no encontrado", http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		slog.Warn("lesson change on foreign course", "user_id", ctxkeys.GetSession(r.Context()).UserID, "course_id", r.PathValue("id"))
		h.flashes.Add(w, r, msgNotOwner)
		redirect(w, r, "/profesor/dashboard")
	default:
		slog.Error("failed to load course", "error", err)
		http.Error(w, msgUnavailable, http.StatusServiceUnavailable)
	}
}
