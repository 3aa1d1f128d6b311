package repository

import (
	"context"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// CategorySource define el puerto de lectura de la colección inicial de categorías (DIP).
// El orden devuelto es el orden de despliegue.
type CategorySource interface {
	Load(ctx context.Context) ([]*entity.Category, error)
}
