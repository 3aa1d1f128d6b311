package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-admin/internal/application/catalog"
	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/export"
)

// PDFRenderer genera el PDF del catálogo.
type PDFRenderer interface {
	Generate(ctx context.Context, title string, categories []*entity.Category, totals entity.Totals) ([]byte, error)
}

// XMLRenderer genera el XML del catálogo.
type XMLRenderer interface {
	Build(categories []*entity.Category, totals entity.Totals) ([]byte, error)
}

// ExportHandler descargas del catálogo.
type ExportHandler struct {
	store *catalog.Store
	pdf   PDFRenderer
	xml   XMLRenderer
	log   zerolog.Logger
}

// NewExportHandler construye el handler.
func NewExportHandler(store *catalog.Store, pdf PDFRenderer, xml XMLRenderer, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{store: store, pdf: pdf, xml: xml, log: log}
}

// PDF godoc
// @Summary      Exportar catálogo en PDF
// @Tags         categories
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories/export.pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	categories, totals := h.store.Snapshot()
	doc, err := h.pdf.Generate(c.UserContext(), "Catálogo de categorías", categories, totals)
	if err != nil {
		h.log.Error().Err(err).Msg("exportar pdf")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: "no se pudo generar el PDF"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="categorias.pdf"`)
	return c.Send(doc)
}

// XML godoc
// @Summary      Exportar catálogo en XML
// @Description  El ETag es el SHA-256 del XML canónico; If-None-Match con el mismo valor responde 304.
// @Tags         categories
// @Security     Bearer
// @Produce      application/xml
// @Success      200  {string}  string
// @Success      304
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories/export.xml [get]
func (h *ExportHandler) XML(c *fiber.Ctx) error {
	doc, err := h.xml.Build(h.store.Snapshot())
	if err != nil {
		h.log.Error().Err(err).Msg("exportar xml")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: "no se pudo generar el XML"})
	}
	digest, err := export.Digest(doc)
	if err != nil {
		h.log.Error().Err(err).Msg("digest xml")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: "no se pudo generar el XML"})
	}
	etag := `"` + digest + `"`
	c.Set(fiber.HeaderETag, etag)
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(doc)
}
