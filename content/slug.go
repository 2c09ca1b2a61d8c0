package content

import (
	"regexp"
	"strings"
)

var (
	slugStrip   = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a title: lowercased, punctuation stripped,
// whitespace runs turned into single hyphens, no doubled or dangling hyphens.
// "Hello, World!" becomes "hello-world".
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// SlugTracker keeps a post's slug in step with its title until someone edits the slug directly.
type SlugTracker struct {
	Slug   string
	Edited bool
}

// SetTitle re-derives the slug from title unless the slug has been edited by hand.
func (t *SlugTracker) SetTitle(title string) {
	if t.Edited {
		return
	}
	t.Slug = Slugify(title)
}

// SetSlug records a hand-edited slug; later title changes no longer affect it.
func (t *SlugTracker) SetSlug(slug string) {
	t.Slug = Slugify(slug)
	t.Edited = true
}
