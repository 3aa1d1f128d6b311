package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-admin/internal/application/auth"
	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// Mensajes de la pantalla de login.
const (
	msgInvalidCredentials = "Email o contraseña inválidos"
	msgLoginInFlight      = "Ya hay un inicio de sesión en curso, esperá un momento"
	msgLoginFailed        = "No se pudo iniciar la sesión, intentá de nuevo"
)

// AuthHandler maneja login y logout (páginas y API).
type AuthHandler struct {
	log zerolog.Logger
}

// NewAuthHandler construye el handler.
func NewAuthHandler(log zerolog.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

type loginView struct {
	Layout  layoutData
	Email   string
	Error   string
	Pending bool
}

// LoginPage muestra el formulario de login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	return h.renderLogin(c, fiber.StatusOK, loginView{Pending: ws.Session.Pending()})
}

// LoginForm procesa el formulario de login y, si tiene éxito, vuelve a evaluar el gating.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.renderLogin(c, fiber.StatusBadRequest, loginView{Error: msgInvalidCredentials})
	}
	ok, err := ws.Session.Login(c.UserContext(), in.Email, in.Password)
	switch {
	case errors.Is(err, domain.ErrLoginInFlight):
		return h.renderLogin(c, fiber.StatusConflict, loginView{Email: in.Email, Error: msgLoginInFlight, Pending: true})
	case err != nil:
		h.log.Error().Err(err).Str("client_id", ws.ClientID).Msg("login")
		return h.renderLogin(c, fiber.StatusInternalServerError, loginView{Email: in.Email, Error: msgLoginFailed})
	case !ok:
		return h.renderLogin(c, fiber.StatusUnauthorized, loginView{Email: in.Email, Error: msgInvalidCredentials})
	}
	target, redirect := ws.Session.Gate(auth.LoginPath)
	if !redirect {
		target = auth.DefaultPath
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// LogoutForm cierra la sesión y vuelve al login.
func (h *AuthHandler) LogoutForm(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	ws.Session.Logout(c.UserContext())
	return c.Redirect(auth.LoginPath, fiber.StatusSeeOther)
}

// Login godoc
// @Summary      Iniciar sesión (simulada)
// @Description  Acepta cualquier email no vacío con contraseña de al menos 6 caracteres. Responde tras ~1 s.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ok, err := ws.Session.Login(c.UserContext(), in.Email, in.Password)
	switch {
	case errors.Is(err, domain.ErrLoginInFlight):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOGIN_IN_FLIGHT", Message: err.Error()})
	case errors.Is(err, domain.ErrPersistence):
		h.log.Error().Err(err).Str("client_id", ws.ClientID).Msg("login")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: domain.ErrPersistence.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	case !ok:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: msgInvalidCredentials})
	}
	return c.JSON(dto.LoginResponse{
		Token:   GetClientToken(c),
		Session: toSessionResponse(ws.Session.Current()),
	})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	GetWorkspace(c).Session.Logout(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Estado de la sesión del cliente
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	out := dto.MeResponse{
		State:   ws.Session.State().String(),
		Pending: ws.Session.Pending(),
	}
	if s := ws.Session.Current(); s != nil {
		resp := toSessionResponse(s)
		out.Session = &resp
	}
	return c.JSON(out)
}

func (h *AuthHandler) renderLogin(c *fiber.Ctx, status int, v loginView) error {
	v.Layout = layoutData{Title: "Iniciar sesión"}
	return c.Status(status).Render("login", v, LayoutMain)
}

func toSessionResponse(s *entity.Session) dto.SessionResponse {
	if s == nil {
		return dto.SessionResponse{}
	}
	return dto.SessionResponse{Email: s.Email, Name: s.Name, Role: s.Role}
}
