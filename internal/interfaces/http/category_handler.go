package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-admin/internal/application/catalog"
	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/application/panel"
	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// CategoryHandler API JSON del catálogo. Las mutaciones pasan por el Controller del Workspace,
// así el feedback es el mismo que ve el panel.
type CategoryHandler struct {
	store *catalog.Store
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(store *catalog.Store) *CategoryHandler {
	return &CategoryHandler{store: store}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	list := h.store.List()
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		items = append(items, toCategoryResponse(cat))
	}
	return c.JSON(dto.CategoryListResponse{Items: items, Totals: toTotalsResponse(h.store.Totals())})
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	cat := h.store.Get(c.Params("id"))
	if cat == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()})
	}
	return c.JSON(toCategoryResponse(cat))
}

// Create godoc
// @Summary      Agregar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre"
// @Success      201   {object}  dto.CategoryMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out := GetWorkspace(c).Panel.ConfirmAdd(in.Name)
	return mutationResponse(c, out, fiber.StatusCreated)
}

// Update godoc
// @Summary      Renombrar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.CategoryMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out := GetWorkspace(c).Panel.ConfirmEdit(c.Params("id"), in.Name)
	return mutationResponse(c, out, fiber.StatusOK)
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryMutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	out := GetWorkspace(c).Panel.ConfirmDelete(c.Params("id"))
	return mutationResponse(c, out, fiber.StatusOK)
}

func mutationResponse(c *fiber.Ctx, out panel.Outcome, okStatus int) error {
	fb := &dto.FeedbackResponse{Message: out.Feedback.Message, Kind: string(out.Feedback.Kind)}
	if out.Err != nil {
		switch {
		case errors.Is(out.Err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: out.Feedback.Message, Feedback: fb})
		case errors.Is(out.Err, domain.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: out.Feedback.Message, Feedback: fb})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: out.Feedback.Message, Feedback: fb})
		}
	}
	resp := dto.CategoryMutationResponse{Feedback: *fb}
	if out.Category != nil {
		cat := toCategoryResponse(out.Category)
		resp.Category = &cat
	}
	return c.Status(okStatus).JSON(resp)
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		SubCategories: c.SubCategories,
		Products:      c.Products,
		Variants:      c.Variants,
	}
}

func toTotalsResponse(t entity.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{
		Categories:    t.Categories,
		SubCategories: t.SubCategories,
		Products:      t.Products,
		Variants:      t.Variants,
	}
}
