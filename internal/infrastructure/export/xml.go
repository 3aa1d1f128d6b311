package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// XMLBuilder serializa el catálogo como XML.
type XMLBuilder struct{}

// NewXMLBuilder construye el builder.
func NewXMLBuilder() *XMLBuilder { return &XMLBuilder{} }

// Build genera:
//
//	<categories count="2" sub_categories=".." products=".." variants="..">
//	  <category id=".." sub_categories=".." products=".." variants="..">Nombre</category>
//	</categories>
func (b *XMLBuilder) Build(categories []*entity.Category, totals entity.Totals) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("categories")
	root.CreateAttr("count", strconv.Itoa(totals.Categories))
	root.CreateAttr("sub_categories", strconv.Itoa(totals.SubCategories))
	root.CreateAttr("products", strconv.Itoa(totals.Products))
	root.CreateAttr("variants", strconv.Itoa(totals.Variants))

	for _, c := range categories {
		el := root.CreateElement("category")
		el.CreateAttr("id", c.ID)
		el.CreateAttr("sub_categories", strconv.Itoa(c.SubCategories))
		el.CreateAttr("products", strconv.Itoa(c.Products))
		el.CreateAttr("variants", strconv.Itoa(c.Variants))
		el.SetText(c.Name)
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xml: serializar catálogo: %w", err)
	}
	return out.Bytes(), nil
}

// Digest SHA-256 (hex) de la forma canónica C14N del documento, sin la declaración XML.
// El resultado no depende de la forma de los elementos vacíos; se usa como ETag.
func Digest(doc []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(stripDeclaration(doc)))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("xml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func stripDeclaration(doc []byte) []byte {
	doc = bytes.TrimSpace(doc)
	if !bytes.HasPrefix(doc, []byte("<?xml")) {
		return doc
	}
	if i := bytes.Index(doc, []byte("?>")); i >= 0 {
		return bytes.TrimSpace(doc[i+2:])
	}
	return doc
}
