package site

import (
	"strings"
	"testing"
	"time"

	"github.com/truest-construction/site-backend/content"
	"github.com/truest-construction/site-backend/models"
	"gorm.io/datatypes"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	renderer, err := NewRenderer("Tru-Est Construction")
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	renderer.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return renderer
}

func render(t *testing.T, renderer *Renderer, page, path string, data any) string {
	t.Helper()
	var out strings.Builder
	if err := renderer.Render(&out, page, "Title", path, data); err != nil {
		t.Fatalf("Render(%s) error = %v", page, err)
	}
	return out.String()
}

func TestRenderHome(t *testing.T) {
	renderer := newTestRenderer(t)
	home := content.ParseHome("<p>Built <em>right</em></p>")

	out := render(t, renderer, PageHome, "/", HomeView{
		Home: home,
		Services: []*models.Service{{
			Title:    "Roofing",
			Features: datatypes.NewJSONSlice([]string{"Shingles"}),
		}},
		Testimonials: []*models.Testimonial{{Name: "Ana", Quote: "<b>Great</b>", Rating: 4}},
	})

	for _, want := range []string{
		"Quality Construction Services",
		"<p>Built <em>right</em></p>",
		"Roofing",
		"<li>Shingles</li>",
		"&lt;b&gt;Great&lt;/b&gt;",
		"★★★★",
		"&copy; 2025 Tru-Est Construction",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestRenderGenericPageMarksActiveNav(t *testing.T) {
	renderer := newTestRenderer(t)
	out := render(t, renderer, PageGeneric, "/about", PageView{Page: content.ParsePage("about", "")})

	if !strings.Contains(out, "About Us") {
		t.Error("default about title missing")
	}
	if !strings.Contains(out, `<a href="/about" class="active" aria-current="page">About</a>`) {
		t.Error("about link not marked active")
	}
}

func TestRenderServicesWithCallout(t *testing.T) {
	renderer := newTestRenderer(t)
	title, items := content.DefaultServicesCallout()

	out := render(t, renderer, PageServices, "/services", ServicesView{
		Page:    content.ParsePage("services", ""),
		Callout: &models.Callout{Title: title, Items: datatypes.NewJSONSlice(items)},
	})

	for _, want := range []string{"Our Services", "Why Choose Our Services", "Expert Team"} {
		if !strings.Contains(out, want) {
			t.Errorf("services page missing %q", want)
		}
	}
}

func TestRenderTestimonialsStats(t *testing.T) {
	renderer := newTestRenderer(t)
	out := render(t, renderer, PageTestimonials, "/testimonials", TestimonialsView{
		Page:  content.ParsePage("testimonials", ""),
		Stats: TestimonialStats,
	})

	for _, want := range []string{"Client Testimonials", "500&#43;", "Licensed &amp; Insured", "Testimonials are coming soon."} {
		if !strings.Contains(out, want) {
			t.Errorf("testimonials page missing %q", want)
		}
	}
}

func TestRenderBlog(t *testing.T) {
	renderer := newTestRenderer(t)

	empty := render(t, renderer, PageBlog, "/blog", BlogView{Page: content.ParsePage("blog", "")})
	if !strings.Contains(empty, EmptyBlogMessage) {
		t.Error("empty blog message missing")
	}

	post := &models.BlogPost{Title: "Deck Care", Slug: "deck-care", Date: "2025-05-01", Content: "<h2>Oil it</h2>"}
	list := render(t, renderer, PageBlog, "/blog", BlogView{Page: content.ParsePage("blog", ""), Posts: []*models.BlogPost{post}})
	if !strings.Contains(list, `href="/blog/deck-care"`) || strings.Contains(list, EmptyBlogMessage) {
		t.Error("blog list did not link the post")
	}

	single := render(t, renderer, PageBlogPost, "/blog/deck-care", BlogPostView{Post: post})
	if !strings.Contains(single, "<h2>Oil it</h2>") || !strings.Contains(single, "Back to Blog") {
		t.Error("blog post body missing")
	}
}

func TestRenderStaticPages(t *testing.T) {
	renderer := newTestRenderer(t)

	if out := render(t, renderer, PageNotFound, "/missing", nil); !strings.Contains(out, "Page Not Found") {
		t.Error("not found page missing heading")
	}
	if out := render(t, renderer, PageForbidden, "/auth/callback", ForbiddenView{Email: "stranger@example.com"}); !strings.Contains(out, "stranger@example.com is not permitted") {
		t.Error("forbidden page missing email")
	}
	out := render(t, renderer, PageAdmin, "/admin", AdminView{Email: "owner@example.com", Resources: AdminResources, Unread: 2})
	if !strings.Contains(out, "2 new contact submissions") || !strings.Contains(out, "/api/admin/contact-submissions") {
		t.Error("admin index incomplete")
	}
}

func TestRenderUnknownPage(t *testing.T) {
	renderer := newTestRenderer(t)
	if err := renderer.Render(&strings.Builder{}, "nope", "", "/", nil); err == nil {
		t.Error("Render() accepted an unknown page")
	}
}
