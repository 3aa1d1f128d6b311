// Package feedback mantiene el mensaje efímero que resume el resultado de la última mutación.
package feedback

import (
	"sync"
	"time"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// DefaultTTL vida de un mensaje de feedback.
const DefaultTTL = 3 * time.Second

// Slot guarda como máximo un Feedback activo. Cada Show reemplaza el anterior y cancela su
// temporizador; el temporizador sólo limpia el valor que lo armó.
type Slot struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *entity.Feedback
	timer   *time.Timer
	gen     uint64
}

// NewSlot construye el slot. ttl <= 0 usa DefaultTTL.
func NewSlot(ttl time.Duration) *Slot {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Slot{ttl: ttl}
}

// Show publica un mensaje nuevo.
func (s *Slot) Show(message string, kind entity.FeedbackKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++
	gen := s.gen
	s.current = &entity.Feedback{Message: message, Kind: kind}
	s.timer = time.AfterFunc(s.ttl, func() { s.expire(gen) })
}

// Success atajo para Show con kind success.
func (s *Slot) Success(message string) { s.Show(message, entity.FeedbackSuccess) }

// Error atajo para Show con kind error.
func (s *Slot) Error(message string) { s.Show(message, entity.FeedbackError) }

// Current devuelve el mensaje activo, si lo hay.
func (s *Slot) Current() (entity.Feedback, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return entity.Feedback{}, false
	}
	return *s.current, true
}

// Clear descarta el mensaje activo y su temporizador.
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.current = nil
}

// Close es Clear; se llama al desechar el Workspace.
func (s *Slot) Close() { s.Clear() }

func (s *Slot) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.current = nil
	s.timer = nil
}

func (s *Slot) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
