// seed_categories genera el script SQL que puebla la tabla categories a partir de un CSV
// exportado del sistema de productos (separador ';', UTF-8 o ISO-8859-1).
//
// Formato: nombre;subcategorias;productos;variantes (la primera fila puede ser cabecera).
//
// Uso: go run ./cmd/seed_categories [ruta/categorias.csv]
// Por defecto busca categorias.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_categories.sql
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type seedRow struct {
	id            string
	name          string
	subCategories int
	products      int
	variants      int
}

func main() {
	csvPath := "categorias.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	rows, skipped, err := parseCSV(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_categories.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d categorías (%d filas descartadas)\n", outPath, len(rows), skipped)
}

// parseCSV decodifica el archivo (Latin-1 si no es UTF-8 válido) y devuelve las filas válidas.
// Las filas sin nombre o con nombre repetido se descartan; los contadores inválidos valen 0.
func parseCSV(raw []byte) ([]seedRow, int, error) {
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}
	r := csv.NewReader(src)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, 0, err
	}
	if len(records) > 0 && isHeader(records[0]) {
		records = records[1:]
	}

	seen := make(map[string]struct{})
	var rows []seedRow
	skipped := 0
	for _, rec := range records {
		name := ""
		if len(rec) > 0 {
			name = norm.NFC.String(strings.TrimSpace(rec[0]))
		}
		if name == "" {
			skipped++
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, seedRow{
			id:            uuid.NewSHA1(uuid.NameSpaceURL, []byte("category:"+key)).String(),
			name:          name,
			subCategories: field(rec, 1),
			products:      field(rec, 2),
			variants:      field(rec, 3),
		})
	}
	return rows, skipped, nil
}

func writeSQL(w io.Writer, rows []seedRow) error {
	var sb strings.Builder
	sb.WriteString("-- Catálogo inicial de categorías\n")
	sb.WriteString("-- Generado por cmd/seed_categories\n\n")
	if len(rows) == 0 {
		sb.WriteString("-- (sin filas)\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}
	sb.WriteString("INSERT INTO categories (id, name, sub_categories, products, variants, position) VALUES\n")
	for i, r := range rows {
		fmt.Fprintf(&sb, "  ('%s', '%s', %d, %d, %d, %d)", r.id, escapeSQL(r.name), r.subCategories, r.products, r.variants, i)
		if i < len(rows)-1 {
			sb.WriteString(",\n")
		} else {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("ON CONFLICT (id) DO UPDATE SET\n")
	sb.WriteString("  name = EXCLUDED.name,\n")
	sb.WriteString("  sub_categories = EXCLUDED.sub_categories,\n")
	sb.WriteString("  products = EXCLUDED.products,\n")
	sb.WriteString("  variants = EXCLUDED.variants,\n")
	sb.WriteString("  position = EXCLUDED.position;\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre")
}

func field(rec []string, i int) int {
	if i >= len(rec) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(rec[i]))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
