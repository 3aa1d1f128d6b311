package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

// MinPasswordLength largo mínimo (en caracteres) que acepta el login simulado.
const MinPasswordLength = 6

// DefaultLoginDelay latencia simulada del login.
const DefaultLoginDelay = time.Second

// Notifier recibe los avisos de sesión (restauración, login). Lo implementa *notification.Center.
type Notifier interface {
	Push(kind, title, message, userName string)
}

// Config opciones del SessionManager.
type Config struct {
	Key        string        // clave del slot persistido
	LoginDelay time.Duration // 0 = sin espera
}

// SessionManager mantiene la sesión actual de un Workspace, derivada del slot persistido.
// Toda mutación de la sesión pasa por Restore, Login y Logout.
type SessionManager struct {
	store    repository.KeyValueStore
	cfg      Config
	notifier Notifier
	log      zerolog.Logger

	mu      sync.RWMutex
	state   entity.SessionState
	session *entity.Session

	inflight *semaphore.Weighted
	pending  atomic.Bool
}

// NewSessionManager construye el manager en estado Loading. notifier puede ser nil.
func NewSessionManager(store repository.KeyValueStore, cfg Config, notifier Notifier, log zerolog.Logger) *SessionManager {
	if cfg.Key == "" {
		cfg.Key = "user"
	}
	return &SessionManager{
		store:    store,
		cfg:      cfg,
		notifier: notifier,
		log:      log.With().Str("component", "session").Str("slot", cfg.Key).Logger(),
		state:    entity.StateLoading,
		inflight: semaphore.NewWeighted(1),
	}
}

// Restore resuelve Loading una sola vez. Un registro corrupto se descarta y el manager queda
// sin sesión; nunca devuelve error ni entra en pánico.
func (m *SessionManager) Restore(ctx context.Context) {
	m.mu.Lock()
	if m.state != entity.StateLoading {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	session, err := m.read(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			m.log.Warn().Err(err).Msg("sesión persistida corrupta, se descarta")
			if delErr := m.store.Delete(ctx, m.cfg.Key); delErr != nil {
				m.log.Error().Err(delErr).Msg("borrar sesión corrupta")
			}
		} else {
			m.log.Error().Err(err).Msg("leer sesión persistida")
		}
		session = nil
	}

	m.mu.Lock()
	if m.state != entity.StateLoading {
		m.mu.Unlock()
		return
	}
	m.session = session
	if session != nil {
		m.state = entity.StateAuthenticated
	} else {
		m.state = entity.StateUnauthenticated
	}
	m.mu.Unlock()

	if session != nil {
		m.log.Info().Str("email", session.Email).Msg("sesión restaurada")
		m.notify(entity.NotificationLogin, "Bienvenido de nuevo",
			"Sesión restaurada. Ingresaste automáticamente.", session.Name)
	}
}

// Login simula la autenticación: espera LoginDelay y acepta cualquier email no vacío con
// contraseña de al menos MinPasswordLength caracteres. Credenciales inválidas devuelven
// (false, nil); sólo los fallos del almacén devuelven error. Un segundo Login mientras otro
// está en vuelo devuelve domain.ErrLoginInFlight.
func (m *SessionManager) Login(ctx context.Context, email, password string) (bool, error) {
	if !m.inflight.TryAcquire(1) {
		return false, domain.ErrLoginInFlight
	}
	defer m.inflight.Release(1)
	m.pending.Store(true)
	defer m.pending.Store(false)

	if err := m.wait(ctx); err != nil {
		return false, err
	}

	email = strings.Clone(strings.TrimSpace(email))
	if email == "" || utf8.RuneCountInString(password) < MinPasswordLength {
		m.log.Info().Str("email", email).Msg("credenciales rechazadas")
		return false, nil
	}

	session := &entity.Session{Email: email, Name: entity.DemoUserName, Role: entity.RoleAdmin}
	raw, err := json.Marshal(session)
	if err != nil {
		return false, fmt.Errorf("auth: serializar sesión: %w", err)
	}
	if err := m.store.Set(ctx, m.cfg.Key, string(raw)); err != nil {
		return false, fmt.Errorf("auth: persistir sesión: %w: %w", domain.ErrPersistence, err)
	}

	m.mu.Lock()
	m.session = session
	m.state = entity.StateAuthenticated
	m.mu.Unlock()

	m.log.Info().Str("email", email).Msg("inicio de sesión")
	m.notify(entity.NotificationLogin, "Inicio de sesión exitoso",
		"Ingresaste al panel de administración.", session.Name)
	return true, nil
}

// Logout borra el slot y la sesión actual. Siempre tiene éxito.
func (m *SessionManager) Logout(ctx context.Context) {
	if err := m.store.Delete(ctx, m.cfg.Key); err != nil {
		m.log.Error().Err(err).Msg("borrar sesión persistida")
	}
	m.mu.Lock()
	m.session = nil
	m.state = entity.StateUnauthenticated
	m.mu.Unlock()
	m.log.Info().Msg("cierre de sesión")
}

// Current devuelve una copia de la sesión actual o nil.
func (m *SessionManager) Current() *entity.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil
	}
	cp := *m.session
	return &cp
}

// State estado actual de la máquina de gating.
func (m *SessionManager) State() entity.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Pending es true mientras un Login espera la latencia simulada.
func (m *SessionManager) Pending() bool { return m.pending.Load() }

// Gate evalúa la redirección para la ubicación actual. Cuando envía al login a un usuario sin
// sesión publica el aviso "Autenticación requerida".
func (m *SessionManager) Gate(location string) (string, bool) {
	target, redirect := Decide(m.State(), location)
	if redirect && target == LoginPath {
		m.notify(entity.NotificationWarning, "Autenticación requerida",
			"Iniciá sesión para acceder a esta página.", "")
	}
	return target, redirect
}

func (m *SessionManager) read(ctx context.Context) (*entity.Session, error) {
	raw, ok, err := m.store.Get(ctx, m.cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("auth: leer slot: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var s entity.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if strings.TrimSpace(s.Email) == "" {
		return nil, fmt.Errorf("%w: email vacío", domain.ErrPersistence)
	}
	return &s, nil
}

func (m *SessionManager) wait(ctx context.Context) error {
	if m.cfg.LoginDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.cfg.LoginDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *SessionManager) notify(kind, title, message, userName string) {
	if m.notifier != nil {
		m.notifier.Push(kind, title, message, userName)
	}
}
