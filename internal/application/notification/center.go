package notification

import (
	"sync"
	"time"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// DefaultCapacity cantidad de avisos que se conservan.
const DefaultCapacity = 20

// Center lista acotada de avisos de un Workspace, más reciente primero.
type Center struct {
	mu    sync.Mutex
	items []entity.Notification
	cap   int
	now   func() time.Time
}

// NewCenter construye el centro. capacity <= 0 usa DefaultCapacity.
func NewCenter(capacity int) *Center {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Center{cap: capacity, now: time.Now}
}

// Push agrega un aviso y descarta el más antiguo si se supera la capacidad.
func (c *Center) Push(kind, title, message, userName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := entity.Notification{
		Kind:      kind,
		Title:     title,
		Message:   message,
		UserName:  userName,
		CreatedAt: c.now(),
	}
	c.items = append([]entity.Notification{n}, c.items...)
	if len(c.items) > c.cap {
		c.items = c.items[:c.cap]
	}
}

// List copia de los avisos, más reciente primero.
func (c *Center) List() []entity.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Clear vacía el centro.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
