package entity

// Category representa una categoría de productos del panel.
// Los contadores son agregados de sólo lectura que provee la fuente de datos.
type Category struct {
	ID            string
	Name          string
	SubCategories int
	Products      int
	Variants      int
}

// Clone devuelve una copia independiente.
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Totals conteos derivados de toda la colección.
type Totals struct {
	Categories    int
	SubCategories int
	Products      int
	Variants      int
}
