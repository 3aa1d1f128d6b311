package panel

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-admin/internal/application/catalog"
	"github.com/jhoicas/catalog-admin/internal/application/feedback"
	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// Modal diálogo abierto en la página de categorías.
type Modal string

const (
	ModalNone   Modal = ""
	ModalAdd    Modal = "add"
	ModalEdit   Modal = "edit"
	ModalDelete Modal = "delete"
)

// Origin elemento de la tarjeta donde se originó una selección.
type Origin string

const (
	OriginCard   Origin = "card"
	OriginEdit   Origin = "edit"
	OriginDelete Origin = "delete"
)

// Mensajes de feedback.
const (
	MsgAdded        = "Categoría agregada correctamente"
	MsgUpdated      = "Categoría actualizada correctamente"
	MsgDeleteFailed = "No se pudo eliminar la categoría"
)

// MsgDeleted mensaje de borrado exitoso.
func MsgDeleted(name string) string {
	return fmt.Sprintf("Categoría «%s» eliminada correctamente", name)
}

// ModalState modal abierto y categoría sobre la que actúa (nil para ModalAdd).
type ModalState struct {
	Kind   Modal
	Target *entity.Category
}

// Outcome resultado de una confirmación: el feedback publicado y, si aplica, la categoría.
type Outcome struct {
	Feedback entity.Feedback
	Category *entity.Category
	Err      error
}

// Controller traduce las acciones de la vista en operaciones del catálogo y su resultado en
// Feedback. Ningún error del catálogo sale de aquí sin convertirse en Feedback.
type Controller struct {
	store *catalog.Store
	fb    *feedback.Slot
	log   zerolog.Logger

	mu    sync.Mutex
	modal ModalState
}

// NewController construye el controlador de un Workspace.
func NewController(store *catalog.Store, fb *feedback.Slot, log zerolog.Logger) *Controller {
	return &Controller{store: store, fb: fb, log: log}
}

// Modal estado actual del modal.
func (c *Controller) Modal() ModalState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

// OpenAdd abre el modal de alta.
func (c *Controller) OpenAdd() {
	c.setModal(ModalState{Kind: ModalAdd})
}

// OpenEdit abre el modal de edición. Si la categoría no existe publica un error.
func (c *Controller) OpenEdit(id string) error {
	return c.openFor(ModalEdit, id)
}

// OpenDelete abre el modal de confirmación de borrado.
func (c *Controller) OpenDelete(id string) error {
	return c.openFor(ModalDelete, id)
}

// CloseModal cierra cualquier modal abierto.
func (c *Controller) CloseModal() {
	c.setModal(ModalState{})
}

// ConfirmAdd agrega la categoría y publica el feedback.
func (c *Controller) ConfirmAdd(name string) Outcome {
	c.CloseModal()
	cat, err := c.store.Add(name)
	if err != nil {
		return c.fail(err, err.Error(), "agregar categoría")
	}
	return c.succeed(MsgAdded, cat)
}

// ConfirmEdit renombra la categoría y publica el feedback.
func (c *Controller) ConfirmEdit(id, newName string) Outcome {
	c.CloseModal()
	if err := c.store.Update(id, newName); err != nil {
		msg := err.Error()
		if errors.Is(err, domain.ErrNotFound) {
			msg = domain.ErrNotFound.Error()
		}
		return c.fail(err, msg, "actualizar categoría")
	}
	return c.succeed(MsgUpdated, c.store.Get(id))
}

// ConfirmDelete elimina la categoría y publica el feedback.
func (c *Controller) ConfirmDelete(id string) Outcome {
	c.CloseModal()
	target := c.store.Get(id)
	if target == nil {
		return c.fail(fmt.Errorf("eliminar %q: %w", id, domain.ErrNotFound), MsgDeleteFailed, "eliminar categoría")
	}
	if err := c.store.Delete(id); err != nil {
		return c.fail(err, MsgDeleteFailed, "eliminar categoría")
	}
	return c.succeed(MsgDeleted(target.Name), target)
}

// Select resuelve un clic sobre una tarjeta. Sólo el cuerpo de la tarjeta navega al detalle;
// los controles de editar y borrar abren su modal y no navegan.
func (c *Controller) Select(id string, origin Origin) (target string, navigate bool) {
	switch origin {
	case OriginEdit:
		_ = c.OpenEdit(id)
		return "", false
	case OriginDelete:
		_ = c.OpenDelete(id)
		return "", false
	default:
		return DetailPath(id), true
	}
}

// DetailPath ruta de la vista de detalle de una categoría.
func DetailPath(id string) string {
	return "/categories/" + url.PathEscape(id)
}

func (c *Controller) openFor(kind Modal, id string) error {
	target := c.store.Get(id)
	if target == nil {
		c.fb.Error(domain.ErrNotFound.Error())
		return fmt.Errorf("abrir modal %s %q: %w", kind, id, domain.ErrNotFound)
	}
	c.setModal(ModalState{Kind: kind, Target: target})
	return nil
}

func (c *Controller) setModal(m ModalState) {
	c.mu.Lock()
	c.modal = m
	c.mu.Unlock()
}

func (c *Controller) succeed(msg string, cat *entity.Category) Outcome {
	c.fb.Success(msg)
	return Outcome{Feedback: entity.Feedback{Message: msg, Kind: entity.FeedbackSuccess}, Category: cat}
}

func (c *Controller) fail(err error, msg, op string) Outcome {
	c.log.Warn().Err(err).Str("op", op).Msg("operación de catálogo rechazada")
	c.fb.Error(msg)
	return Outcome{Feedback: entity.Feedback{Message: msg, Kind: entity.FeedbackError}, Err: err}
}
