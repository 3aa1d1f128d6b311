package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/application/panel"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/pkg/jwt"
)

// Locals keys.
const (
	LocalWorkspace   = "workspace"
	LocalClientToken = "client_token"
)

// CookieName cookie donde viaja el client token.
const CookieName = "panel_token"

// ClientConfig firma del client token.
type ClientConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
	Secure     bool // cookie sólo por HTTPS
}

// ClientMiddleware identifica al cliente por su token (Bearer o cookie), emite uno nuevo si no
// trae ninguno válido y carga su Workspace en c.Locals.
func ClientMiddleware(cfg ClientConfig, registry *panel.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			token = c.Cookies(CookieName)
		}
		clientID := ""
		if token != "" {
			if id, err := jwt.Parse(cfg.Secret, token); err == nil {
				clientID = id
			}
		}
		if clientID == "" {
			clientID = uuid.New().String()
			tok, err := jwt.Generate(cfg.Secret, clientID, cfg.Issuer, cfg.ExpMinutes)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo emitir el token de cliente"})
			}
			token = tok
			c.Cookie(&fiber.Cookie{
				Name:     CookieName,
				Value:    tok,
				Path:     "/",
				Expires:  time.Now().Add(time.Duration(cfg.ExpMinutes) * time.Minute),
				HTTPOnly: true,
				Secure:   cfg.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(LocalClientToken, token)
		c.Locals(LocalWorkspace, registry.Get(c.UserContext(), clientID))
		return c.Next()
	}
}

// PageGate aplica la máquina de gating a las páginas HTML: sin sesión fuera del login redirige
// al login; con sesión en el login redirige a la superficie por defecto.
func PageGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := GetWorkspace(c)
		if ws == nil {
			return fiber.ErrInternalServerError
		}
		if target, redirect := ws.Session.Gate(c.Path()); redirect {
			return c.Redirect(target, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequireSession responde 401 en la API si el Workspace no tiene sesión.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws := GetWorkspace(c)
		if ws == nil || ws.Session.State() != entity.StateAuthenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "iniciá sesión para continuar"})
		}
		return c.Next()
	}
}

// RequireRole verifica que el rol de la sesión esté entre los permitidos.
// Debe usarse DESPUÉS de RequireSession.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "la sesión no tiene rol"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
		}
		return c.Next()
	}
}

// GetWorkspace devuelve el Workspace del contexto (después de ClientMiddleware).
func GetWorkspace(c *fiber.Ctx) *panel.Workspace {
	ws, _ := c.Locals(LocalWorkspace).(*panel.Workspace)
	return ws
}

// GetClientToken devuelve el client token vigente del request.
func GetClientToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalClientToken).(string)
	return s
}

// GetRole devuelve el rol de la sesión actual o "".
func GetRole(c *fiber.Ctx) string {
	ws := GetWorkspace(c)
	if ws == nil {
		return ""
	}
	if s := ws.Session.Current(); s != nil {
		return s.Role
	}
	return ""
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
