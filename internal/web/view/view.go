package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*.html
var files embed.FS

// Template helper functions
var funcMap = template.FuncMap{
	"formatDate": formatDate,
	"stars":      stars,
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func stars(rating int) string {
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// View renders server-side HTML pages. Each page template is parsed
// together with the shared layout at construction time.
type View struct {
	templates map[string]*template.Template
}

// Page template names
const (
	PageHome         = "home.html"
	PageReviewDetail = "review_detail.html"
	PageReviewForm   = "review_form.html"
	PageReviewDelete = "review_delete.html"
	PageLogin        = "login.html"
	PageRegister     = "register.html"
	PageProfile      = "profile.html"
)

var pageNames = []string{
	PageHome,
	PageReviewDetail,
	PageReviewForm,
	PageReviewDelete,
	PageLogin,
	PageRegister,
	PageProfile,
}

// New parses all embedded templates
func New() (*View, error) {
	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcMap).
			ParseFS(files, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return &View{templates: templates}, nil
}

// Render writes the named page with the given data and status code
func (v *View) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := v.templates[name]
	if !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		// Headers already sent; nothing useful left to do
		return
	}
}
