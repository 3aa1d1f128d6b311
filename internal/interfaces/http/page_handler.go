package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-admin/internal/application/catalog"
	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/application/panel"
	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// CategoriesPath página de gestión de categorías.
const CategoriesPath = "/categories"

const msgInvalidForm = "No se pudo leer el formulario"

// PageHandler páginas HTML del panel (dashboard, grilla, detalle) y sus formularios.
type PageHandler struct {
	store *catalog.Store
	log   zerolog.Logger
}

// NewPageHandler construye el handler.
func NewPageHandler(store *catalog.Store, log zerolog.Logger) *PageHandler {
	return &PageHandler{store: store, log: log}
}

type dashboardView struct {
	Layout layoutData
	Totals entity.Totals
}

type categoriesView struct {
	Layout     layoutData
	Categories []*entity.Category
	Count      int
	Modal      string
	Target     *entity.Category
}

type categoryView struct {
	Layout   layoutData
	Category *entity.Category
}

// Dashboard muestra los totales del catálogo.
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	return c.Render("dashboard", dashboardView{
		Layout: layout(ws, "Inicio", "dashboard"),
		Totals: h.store.Totals(),
	}, LayoutMain)
}

// Categories muestra la grilla. El modal abierto viaja en la query: modal=add|edit|delete&id=.
func (h *PageHandler) Categories(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	switch panel.Modal(c.Query("modal")) {
	case panel.ModalAdd:
		ws.Panel.OpenAdd()
	case panel.ModalEdit:
		_ = ws.Panel.OpenEdit(c.Query("id"))
	case panel.ModalDelete:
		_ = ws.Panel.OpenDelete(c.Query("id"))
	default:
		ws.Panel.CloseModal()
	}
	modal := ws.Panel.Modal()
	categories, totals := h.store.Snapshot()
	return c.Render("categories", categoriesView{
		Layout:     layout(ws, "Categorías", "categories"),
		Categories: categories,
		Count:      totals.Categories,
		Modal:      string(modal.Kind),
		Target:     modal.Target,
	}, LayoutMain)
}

// Create procesa el modal de alta.
func (h *PageHandler) Create(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return h.rejectForm(c, ws, err)
	}
	ws.Panel.ConfirmAdd(in.Name)
	return c.Redirect(CategoriesPath, fiber.StatusSeeOther)
}

// Edit procesa el modal de edición.
func (h *PageHandler) Edit(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return h.rejectForm(c, ws, err)
	}
	ws.Panel.ConfirmEdit(c.Params("id"), in.Name)
	return c.Redirect(CategoriesPath, fiber.StatusSeeOther)
}

// Delete procesa la confirmación de borrado.
func (h *PageHandler) Delete(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	ws.Panel.ConfirmDelete(c.Params("id"))
	return c.Redirect(CategoriesPath, fiber.StatusSeeOther)
}

// Open resuelve un clic sobre una tarjeta: from=card navega al detalle; from=edit|delete
// abren el modal correspondiente sin navegar.
func (h *PageHandler) Open(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	id := c.Params("id")
	if target, navigate := ws.Panel.Select(id, panel.Origin(c.Query("from"))); navigate {
		return c.Redirect(target, fiber.StatusSeeOther)
	}
	modal := ws.Panel.Modal()
	if modal.Kind == panel.ModalNone || modal.Target == nil {
		return c.Redirect(CategoriesPath, fiber.StatusSeeOther)
	}
	q := url.Values{}
	q.Set("modal", string(modal.Kind))
	q.Set("id", modal.Target.ID)
	return c.Redirect(CategoriesPath+"?"+q.Encode(), fiber.StatusSeeOther)
}

// Detail vista de una categoría. Si no existe vuelve a la grilla con un error.
func (h *PageHandler) Detail(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	cat := h.store.Get(c.Params("id"))
	if cat == nil {
		ws.Feedback.Error(domain.ErrNotFound.Error())
		return c.Redirect(CategoriesPath, fiber.StatusSeeOther)
	}
	return c.Render("category", categoryView{
		Layout:   layout(ws, cat.Name, "categories"),
		Category: cat,
	}, LayoutMain)
}

// rejectForm cierra el modal y publica el error de un formulario ilegible.
func (h *PageHandler) rejectForm(c *fiber.Ctx, ws *panel.Workspace, err error) error {
	h.log.Warn().Err(err).Str("client_id", ws.ClientID).Str("path", c.Path()).Msg("formulario inválido")
	ws.Panel.CloseModal()
	ws.Feedback.Error(msgInvalidForm)
	return c.Redirect(CategoriesPath, fiber.StatusSeeOther)
}

func layout(ws *panel.Workspace, title, active string) layoutData {
	out := layoutData{
		Title:         title,
		Active:        active,
		Session:       ws.Session.Current(),
		Notifications: ws.Notifications.List(),
	}
	if fb, ok := ws.Feedback.Current(); ok {
		out.Feedback = &fb
	}
	return out
}
