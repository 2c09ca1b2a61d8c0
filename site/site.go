// Package site renders the public pages of the marketing site.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Render.
const (
	PageHome         = "home"
	PageGeneric      = "page"
	PageServices     = "services"
	PageTestimonials = "testimonials"
	PageContact      = "contact"
	PageBlog         = "blog"
	PageBlogPost     = "blog_post"
	PageNotFound     = "not_found"
	PageForbidden    = "forbidden"
	PageAdmin        = "admin"
)

var pageNames = []string{
	PageHome, PageGeneric, PageServices, PageTestimonials, PageContact,
	PageBlog, PageBlogPost, PageNotFound, PageForbidden, PageAdmin,
}

type NavLink struct {
	Href  string
	Label string
}

// Navigation is the header menu in display order.
var Navigation = []NavLink{
	{Href: "/about", Label: "About"},
	{Href: "/services", Label: "Services"},
	{Href: "/testimonials", Label: "Testimonials"},
	{Href: "/blog", Label: "Blog"},
	{Href: "/contact", Label: "Contact"},
}

// View is what every template receives. Content holds the page specific view model.
type View struct {
	SiteName string
	Title    string
	Path     string
	Year     int
	Nav      []NavLink
	Content  any
}

// IsActive reports whether href is the current section.
func (v View) IsActive(href string) bool {
	return v.Path == href || strings.HasPrefix(v.Path, href+"/")
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	siteName string
	pages    map[string]*template.Template
	now      func() time.Time
}

func NewRenderer(siteName string) (*Renderer, error) {
	renderer := &Renderer{
		siteName: siteName,
		pages:    make(map[string]*template.Template, len(pageNames)),
		now:      time.Now,
	}
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		renderer.pages[name] = tmpl
	}
	return renderer, nil
}

// Render writes page inside the layout. Output is buffered so a template error never
// leaves a half written page.
func (r *Renderer) Render(w io.Writer, page, title, path string, content any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}

	view := View{
		SiteName: r.siteName,
		Title:    title,
		Path:     path,
		Year:     r.now().Year(),
		Nav:      Navigation,
		Content:  content,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", view); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	// trusted marks editor-authored HTML as safe; only admins can write it.
	"trusted": func(s string) template.HTML {
		return template.HTML(s)
	},
	"stars": func(rating int) string {
		if rating < 0 {
			rating = 0
		}
		return strings.Repeat("★", rating)
	},
}
