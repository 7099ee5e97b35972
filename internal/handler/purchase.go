package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ctxkeys"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/service"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ui"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ui/pages"
)

type paymentMethodJSON struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
	Type string `json:"tipo"`
}

type purchaseForm struct {
	CourseID        string `schema:"curso_id"`
	PaymentMethodID string `schema:"metodo_pago_id"`
	Amount          string `schema:"monto"`
}

// purchaseJSON is the JSON body of POST /comprar; monto may be a number or
// a string.
type purchaseJSON struct {
	CourseID        string      `json:"curso_id"`
	PaymentMethodID string      `json:"metodo_pago_id"`
	Amount          json.Number `json:"monto"`
}

type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

func (h *PurchaseHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.purchaseService.PaymentMethods()
	if err != nil {
		slog.Error("failed to list payment methods", "error", err)
		jsonError(w, http.StatusInternalServerError, "No hay conexión")
		return
	}

	out := make([]paymentMethodJSON, 0, len(methods))
	for _, m := range methods {
		out = append(out, paymentMethodJSON{ID: m.ID, Name: m.Name, Type: m.Type})
	}

	writeJSON(w, http.StatusOK, out)
}

// Purchase records a simulated purchase for the session user.
func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.GetSession(r.Context())

	req, err := decodePurchase(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Solicitud inválida")
		return
	}

	_, err = h.purchaseService.Purchase(session.UserID, req.CourseID, req.PaymentMethodID, req.Amount)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			jsonError(w, http.StatusBadRequest, msg)
			return
		}
		if errors.Is(err, repository.ErrInvalidReference) {
			jsonError(w, http.StatusBadRequest, "Curso o método de pago inválido")
			return
		}
		slog.Error("failed to record purchase", "error", err, "user_id", session.UserID)
		jsonError(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"mensaje": "Compra registrada (simulada)"})
}

func decodePurchase(r *http.Request) (purchaseForm, error) {
	var form purchaseForm
	if !isJSON(r) {
		err := decodeForm(r, &form)
		return form, err
	}

	var body purchaseJSON
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return form, err
	}
	return purchaseForm{
		CourseID:        body.CourseID,
		PaymentMethodID: body.PaymentMethodID,
		Amount:          body.Amount.String(),
	}, nil
}

func (h *PurchaseHandler) HistoryPage(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.GetSession(r.Context())

	records, err := h.purchaseService.History(session.UserID)
	if err != nil {
		slog.Error("failed to list purchases", "error", err, "user_id", session.UserID)
		http.Error(w, msgUnavailable, http.StatusServiceUnavailable)
		return
	}

	ui.Render(w, r, pages.Purchases(records))
}
