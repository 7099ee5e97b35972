package handler

import (
	"log/slog"
	"net/http"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/service"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ui"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ui/pages"
)

type HomeHandler struct {
	catalogService *service.CatalogService
}

func NewHomeHandler(catalogService *service.CatalogService) *HomeHandler {
	return &HomeHandler{
		catalogService: catalogService,
	}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalogService.ListCourses()
	if err != nil {
		// the page still renders, just without the catalog
		slog.Error("failed to list courses for home", "error", err)
	}

	ui.Render(w, r, pages.Home(courses))
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
}
