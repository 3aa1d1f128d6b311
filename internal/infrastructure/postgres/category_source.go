package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

var _ repository.CategorySource = (*CategorySource)(nil)

// Querier es lo mínimo que necesita el adaptador; lo cumplen *pgxpool.Pool, *pgx.Conn y pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CategorySource lee la colección inicial desde la tabla categories.
type CategorySource struct {
	q Querier
}

// NewCategorySource construye el adaptador. Pasar pool o tx (Querier).
func NewCategorySource(q Querier) *CategorySource {
	return &CategorySource{q: q}
}

// Load devuelve las categorías en orden de despliegue (position, luego created_at).
func (s *CategorySource) Load(ctx context.Context) ([]*entity.Category, error) {
	query := `
		SELECT id, name, sub_categories, products, variants
		FROM categories
		ORDER BY position, created_at`
	rows, err := s.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SubCategories, &c.Products, &c.Variants); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Insert persiste una categoría al final del orden. Lo usan los tests de integración para sembrar datos.
func (s *CategorySource) Insert(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, sub_categories, products, variants, position)
		VALUES ($1, $2, $3, $4, $5, COALESCE((SELECT MAX(position) + 1 FROM categories), 0))`
	if _, err := s.q.Exec(ctx, query, c.ID, c.Name, c.SubCategories, c.Products, c.Variants); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert category %q: duplicada", c.ID)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}
