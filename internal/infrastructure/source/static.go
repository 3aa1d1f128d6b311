// Package source implementa el puerto repository.CategorySource.
package source

import (
	"context"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

var _ repository.CategorySource = (*StaticSource)(nil)

// StaticSource entrega una lista fija de categorías.
type StaticSource struct {
	items []*entity.Category
}

// NewStaticSource construye la fuente con items. Sin items usa DemoCatalog.
func NewStaticSource(items ...*entity.Category) *StaticSource {
	if len(items) == 0 {
		items = DemoCatalog()
	}
	return &StaticSource{items: items}
}

// Load devuelve copias de los items.
func (s *StaticSource) Load(_ context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c.Clone())
	}
	return out, nil
}

// DemoCatalog catálogo de demostración para el modo development.
func DemoCatalog() []*entity.Category {
	return []*entity.Category{
		{ID: "1", Name: "Electrónica", SubCategories: 5, Products: 120, Variants: 340},
		{ID: "2", Name: "Ropa", SubCategories: 8, Products: 450, Variants: 1200},
		{ID: "3", Name: "Hogar y Cocina", SubCategories: 6, Products: 210, Variants: 380},
		{ID: "4", Name: "Deportes", SubCategories: 4, Products: 95, Variants: 160},
		{ID: "5", Name: "Libros", SubCategories: 3, Products: 310, Variants: 310},
	}
}
