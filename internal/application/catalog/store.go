package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/catalog-admin/internal/domain"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

// Store mantiene la colección ordenada de categorías. Es el único punto que muta el catálogo;
// las vistas reciben copias.
type Store struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*entity.Category
	log   zerolog.Logger
	newID func() string
}

// NewStore construye un catálogo vacío.
func NewStore(log zerolog.Logger) *Store {
	return &Store{
		byID:  make(map[string]*entity.Category),
		log:   log.With().Str("component", "catalog").Logger(),
		newID: func() string { return uuid.New().String() },
	}
}

// Load reemplaza la colección con la que entrega la fuente. Descarta entradas sin id,
// sin nombre o con id repetido.
func (s *Store) Load(ctx context.Context, src repository.CategorySource) error {
	list, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("catalog: cargar fuente: %w", err)
	}
	order := make([]string, 0, len(list))
	byID := make(map[string]*entity.Category, len(list))
	for _, c := range list {
		if c == nil || c.ID == "" {
			s.log.Warn().Msg("categoría sin id descartada")
			continue
		}
		name := normalizeName(c.Name)
		if name == "" {
			s.log.Warn().Str("id", c.ID).Msg("categoría sin nombre descartada")
			continue
		}
		if _, dup := byID[c.ID]; dup {
			s.log.Warn().Str("id", c.ID).Msg("id de categoría duplicado descartado")
			continue
		}
		cp := c.Clone()
		cp.Name = name
		cp.SubCategories = nonNegative(cp.SubCategories)
		cp.Products = nonNegative(cp.Products)
		cp.Variants = nonNegative(cp.Variants)
		byID[cp.ID] = cp
		order = append(order, cp.ID)
	}

	s.mu.Lock()
	s.order = order
	s.byID = byID
	s.mu.Unlock()

	s.log.Info().Int("total", len(order)).Msg("catálogo cargado")
	return nil
}

// Add crea una categoría con id nuevo y contadores en cero, al final de la colección.
func (s *Store) Add(name string) (*entity.Category, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, domain.ErrEmptyCategoryName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.byID[id] != nil {
		id = s.newID()
	}
	c := &entity.Category{ID: id, Name: name}
	s.byID[id] = c
	s.order = append(s.order, id)

	s.log.Debug().Str("id", id).Str("name", name).Msg("categoría agregada")
	return c.Clone(), nil
}

// Update reemplaza sólo el nombre; id, contadores y posición no cambian.
func (s *Store) Update(id, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("actualizar %q: %w", id, domain.ErrNotFound)
	}
	newName = normalizeName(newName)
	if newName == "" {
		return domain.ErrEmptyCategoryName
	}
	c.Name = newName

	s.log.Debug().Str("id", id).Str("name", newName).Msg("categoría actualizada")
	return nil
}

// Delete elimina la categoría. Las demás entradas y su orden no cambian.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("eliminar %q: %w", id, domain.ErrNotFound)
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}

	s.log.Debug().Str("id", id).Msg("categoría eliminada")
	return nil
}

// Get devuelve una copia de la categoría o nil si no existe.
func (s *Store) Get(id string) *entity.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id].Clone()
}

// List devuelve una instantánea en orden de inserción.
func (s *Store) List() []*entity.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out
}

// Len cantidad de categorías.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Totals agrega los contadores de toda la colección.
func (s *Store) Totals() entity.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalsLocked()
}

// Snapshot devuelve la lista y sus totales leídos bajo el mismo lock, de modo que los totales
// siempre corresponden a las filas.
func (s *Store) Snapshot() ([]*entity.Category, entity.Totals) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out, s.totalsLocked()
}

func (s *Store) totalsLocked() entity.Totals {
	t := entity.Totals{Categories: len(s.order)}
	for _, id := range s.order {
		c := s.byID[id]
		t.SubCategories += c.SubCategories
		t.Products += c.Products
		t.Variants += c.Variants
	}
	return t
}

// normalizeName recorta, normaliza a NFC y copia el nombre: el valor que llega puede compartir
// memoria con el buffer del request.
func normalizeName(name string) string {
	return strings.Clone(norm.NFC.String(strings.TrimSpace(name)))
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
