package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/dishdash/dishdash/internal/server/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticRoot embed.FS

var staticFiles, _ = fs.Sub(staticRoot, "static")

var pageNames = []string{"landing", "sign-in", "verify", "dashboard", "admin", "error"}

// pageData is the single view model shared by all templates.
type pageData struct {
	Principal   *models.Principal
	CallbackURL string
	CSRFToken   string
	Email       string
	Error       string
	Users       []models.User
	Status      int
	Message     string
}

type pages struct {
	byName map[string]*template.Template
}

func loadPages() (*pages, error) {
	p := &pages{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		p.byName[name] = t
	}
	return p, nil
}

// render executes into a buffer first so a template error still produces a
// clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, status int, data pageData) {
	t, ok := s.pages.byName[name]
	if !ok {
		s.logger.Error(r.Context(), "unknown template", "name", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		s.logger.Error(r.Context(), "render template", "name", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, "error", status, pageData{Status: status, Message: message})
}
