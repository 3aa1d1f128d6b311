package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"

	"github.com/gofiber/template/html/v2"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

//go:embed views
var viewsFS embed.FS

// LayoutMain layout común de las páginas del panel.
const LayoutMain = "layouts/main"

// NewViews construye el motor de plantillas con las vistas embebidas.
func NewViews() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic("views: " + err.Error())
	}
	engine := html.NewFileSystem(nethttp.FS(sub), ".html")
	engine.AddFunc("isError", func(f *entity.Feedback) bool {
		return f != nil && f.Kind == entity.FeedbackError
	})
	return engine
}

// layoutData datos que consume layouts/main.
type layoutData struct {
	Title         string
	Active        string
	Session       *entity.Session
	Feedback      *entity.Feedback
	Notifications []entity.Notification
}
