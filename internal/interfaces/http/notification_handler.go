package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-admin/internal/application/dto"
)

// NotificationHandler avisos de la cabecera del Workspace.
type NotificationHandler struct{}

// NewNotificationHandler construye el handler.
func NewNotificationHandler() *NotificationHandler { return &NotificationHandler{} }

// List godoc
// @Summary      Listar avisos (más reciente primero)
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	list := GetWorkspace(c).Notifications.List()
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			Kind:      n.Kind,
			Title:     n.Title,
			Message:   n.Message,
			UserName:  n.UserName,
			CreatedAt: n.CreatedAt,
		})
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Descartar todos los avisos
// @Tags         notifications
// @Security     Bearer
// @Success      204
// @Router       /api/notifications [delete]
func (h *NotificationHandler) Clear(c *fiber.Ctx) error {
	GetWorkspace(c).Notifications.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
