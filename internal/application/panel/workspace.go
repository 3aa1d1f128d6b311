package panel

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-admin/internal/application/auth"
	"github.com/jhoicas/catalog-admin/internal/application/catalog"
	"github.com/jhoicas/catalog-admin/internal/application/feedback"
	"github.com/jhoicas/catalog-admin/internal/application/notification"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

// Workspace estado de aplicación de un cliente (el equivalente a una pestaña del navegador):
// su sesión, su feedback, sus avisos y sus modales. El catálogo es compartido.
type Workspace struct {
	ClientID      string
	Session       *auth.SessionManager
	Feedback      *feedback.Slot
	Notifications *notification.Center
	Panel         *Controller

	lastSeen time.Time
}

// Close libera los temporizadores del Workspace.
func (w *Workspace) Close() {
	w.Feedback.Close()
}

// DefaultMaxWorkspaces tope de Workspaces vivos cuando RegistryConfig no fija uno.
const DefaultMaxWorkspaces = 10000

// RegistryConfig opciones de creación de Workspaces.
type RegistryConfig struct {
	SessionKey    string // prefijo del slot; el slot final es <SessionKey>:<clientID>
	LoginDelay    time.Duration
	FeedbackTTL   time.Duration
	MaxWorkspaces int // al llegar al tope se descarta el Workspace con menos actividad reciente
}

// Registry crea y conserva los Workspaces por clientID.
type Registry struct {
	cfg   RegistryConfig
	store *catalog.Store
	kv    repository.KeyValueStore
	log   zerolog.Logger
	now   func() time.Time

	mu    sync.Mutex
	items map[string]*Workspace
}

// NewRegistry construye el registro.
func NewRegistry(cfg RegistryConfig, store *catalog.Store, kv repository.KeyValueStore, log zerolog.Logger) *Registry {
	if cfg.SessionKey == "" {
		cfg.SessionKey = "user"
	}
	if cfg.MaxWorkspaces <= 0 {
		cfg.MaxWorkspaces = DefaultMaxWorkspaces
	}
	return &Registry{
		cfg:   cfg,
		store: store,
		kv:    kv,
		log:   log,
		now:   time.Now,
		items: make(map[string]*Workspace),
	}
}

// Get devuelve el Workspace del cliente, creándolo y restaurando su sesión si es nuevo.
func (r *Registry) Get(ctx context.Context, clientID string) *Workspace {
	r.mu.Lock()
	ws, ok := r.items[clientID]
	if !ok {
		if len(r.items) >= r.cfg.MaxWorkspaces {
			r.evictOldestLocked()
		}
		ws = r.build(clientID)
		r.items[clientID] = ws
	}
	ws.lastSeen = r.now()
	r.mu.Unlock()

	ws.Session.Restore(ctx)
	return ws
}

// Len cantidad de Workspaces vivos.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep descarta los Workspaces sin actividad durante idle. La sesión persistida no se toca:
// el cliente la recupera al volver.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, ws := range r.items {
		if ws.lastSeen.Before(cutoff) {
			ws.Close()
			delete(r.items, id)
			n++
		}
	}
	if n > 0 {
		r.log.Debug().Int("evicted", n).Msg("workspaces inactivos descartados")
	}
	return n
}

// evictOldestLocked descarta el Workspace visto hace más tiempo. La sesión persistida no se toca.
func (r *Registry) evictOldestLocked() {
	var (
		oldestID string
		oldest   *Workspace
	)
	for id, ws := range r.items {
		if oldest == nil || ws.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, ws
		}
	}
	if oldest == nil {
		return
	}
	oldest.Close()
	delete(r.items, oldestID)
	r.log.Debug().Str("client_id", oldestID).Int("max", r.cfg.MaxWorkspaces).Msg("tope de workspaces alcanzado, se descarta el más antiguo")
}

// RunSweeper ejecuta Sweep cada interval hasta que ctx termine.
func (r *Registry) RunSweeper(ctx context.Context, interval, idle time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			r.Sweep(idle)
		}
	}
}

// Close libera todos los Workspaces.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, ws := range r.items {
		ws.Close()
		delete(r.items, id)
	}
}

func (r *Registry) build(clientID string) *Workspace {
	log := r.log.With().Str("client_id", clientID).Logger()
	fb := feedback.NewSlot(r.cfg.FeedbackTTL)
	notes := notification.NewCenter(notification.DefaultCapacity)
	session := auth.NewSessionManager(r.kv, auth.Config{
		Key:        r.cfg.SessionKey + ":" + clientID,
		LoginDelay: r.cfg.LoginDelay,
	}, notes, log)
	return &Workspace{
		ClientID:      clientID,
		Session:       session,
		Feedback:      fb,
		Notifications: notes,
		Panel:         NewController(r.store, fb, log),
	}
}
