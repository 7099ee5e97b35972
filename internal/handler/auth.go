package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/flash"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/service"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ui"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ui/pages"
)

const msgResetSent = "Si el correo está registrado, te enviamos un enlace para restablecer tu contraseña."

type loginForm struct {
	Email    string `schema:"correo"`
	Password string `schema:"password"`
}

type emailForm struct {
	Email string `schema:"correo"`
}

type passwordForm struct {
	Password string `schema:"password"`
}

type AuthHandler struct {
	authService  *service.AuthService
	resetService *service.ResetService
	flashes      *flash.Store
}

func NewAuthHandler(authService *service.AuthService, resetService *service.ResetService, flashes *flash.Store) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
		flashes:      flashes,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Login())
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	err := decodeForm(r, &form)
	if err != nil {
		http.Error(w, "Formulario inválido", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Authenticate(form.Email, form.Password)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.flashes.Add(w, r, "Usuario no encontrado.")
		redirect(w, r, "/login")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		h.flashes.Add(w, r, "Contraseña incorrecta.")
		redirect(w, r, "/login")
		return
	case err != nil:
		slog.Error("login failed", "error", err)
		h.flashes.Add(w, r, msgUnavailable)
		redirect(w, r, "/login")
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		h.flashes.Add(w, r, msgUnavailable)
		redirect(w, r, "/login")
		return
	}

	h.authService.SetJWTCookie(w, token)
	slog.Info("user logged in", "user_id", user.ID, "role", user.Role)

	h.flashes.Add(w, r, "Bienvenido/a "+user.Name)
	redirect(w, r, "/")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	h.flashes.Add(w, r, "Sesión cerrada.")
	redirect(w, r, "/")
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Register())
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	err := decodeForm(r, &in)
	if err != nil {
		http.Error(w, "Formulario inválido", http.StatusBadRequest)
		return
	}

	_, err = h.authService.Register(in)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			h.flashes.Add(w, r, msg)
		} else if errors.Is(err, repository.ErrDuplicateEmail) {
			h.flashes.Add(w, r, "El correo ya está registrado.")
		} else if errors.Is(err, repository.ErrDuplicateHandle) {
			h.flashes.Add(w, r, "El nombre de usuario ya está en uso.")
		} else {
			slog.Error("registration failed", "error", err)
			h.flashes.Add(w, r, msgUnavailable)
		}
		redirect(w, r, "/registrar")
		return
	}

	h.flashes.Add(w, r, "Registrado correctamente. Inicia sesión.")
	redirect(w, r, "/login")
}

func (h *AuthHandler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.ForgotPassword())
}

// ForgotPassword answers the same way whether or not the address is
// registered.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var form emailForm
	err := decodeForm(r, &form)
	if err != nil {
		http.Error(w, "Formulario inválido", http.StatusBadRequest)
		return
	}

	err = h.resetService.RequestReset(r.Context(), form.Email)
	if err != nil {
		slog.Error("password reset request failed", "error", err)
		h.flashes.Add(w, r, msgUnavailable)
		redirect(w, r, "/recuperar")
		return
	}

	h.flashes.Add(w, r, msgResetSent)
	redirect(w, r, "/login")
}

func (h *AuthHandler) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	email, err := h.resetService.CheckReset(token)
	if err != nil {
		if errors.Is(err, service.ErrUnavailable) {
			slog.Error("password reset check failed", "error", err)
			h.flashes.Add(w, r, msgUnavailable)
			redirect(w, r, "/recuperar")
			return
		}
		ui.Render(w, r, pages.ResetInvalid())
		return
	}

	ui.Render(w, r, pages.ResetPassword(token, email))
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	var form passwordForm
	err := decodeForm(r, &form)
	if err != nil {
		http.Error(w, "Formulario inválido", http.StatusBadRequest)
		return
	}

	err = h.resetService.ConsumeReset(token, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			ui.Render(w, r, pages.ResetInvalid())
			return
		}
		if msg, ok := validationMessage(err); ok {
			h.flashes.Add(w, r, msg)
		} else {
			slog.Error("password reset failed", "error", err)
			h.flashes.Add(w, r, msgUnavailable)
		}
		redirect(w, r, "/restablecer/"+url.PathEscape(token))
		return
	}

	h.flashes.Add(w, r, "Contraseña actualizada. Inicia sesión.")
	redirect(w, r, "/login")
}
