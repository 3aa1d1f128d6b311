package source

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

var _ repository.CategorySource = (*YAMLSource)(nil)

// yamlCategory forma de cada entrada del archivo:
//
//	categories:
//	  - id: "1"
//	    name: Electrónica
//	    sub_categories: 5
//	    products: 120
//	    variants: 340
type yamlCategory struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	SubCategories int    `yaml:"sub_categories"`
	Products      int    `yaml:"products"`
	Variants      int    `yaml:"variants"`
}

type yamlFile struct {
	Categories []yamlCategory `yaml:"categories"`
}

// YAMLSource lee las categorías de un archivo YAML.
type YAMLSource struct {
	path string
}

// NewYAMLSource construye la fuente para path.
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

// Load lee y decodifica el archivo completo.
func (s *YAMLSource) Load(_ context.Context) ([]*entity.Category, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", s.path, err)
	}
	return ParseYAML(raw)
}

// ParseYAML decodifica el contenido de un archivo de categorías.
func ParseYAML(raw []byte) ([]*entity.Category, error) {
	var f yamlFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decodificar yaml: %w", err)
	}
	out := make([]*entity.Category, 0, len(f.Categories))
	for _, c := range f.Categories {
		out = append(out, &entity.Category{
			ID:            c.ID,
			Name:          c.Name,
			SubCategories: c.SubCategories,
			Products:      c.Products,
			Variants:      c.Variants,
		})
	}
	return out, nil
}
