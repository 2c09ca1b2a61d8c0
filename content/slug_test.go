package content

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello, World!", "hello-world"},
		{"  Kitchen   Remodel  Tips ", "kitchen-remodel-tips"},
		{"Deck -- Building 101", "deck-building-101"},
		{"What's New in 2024?", "whats-new-in-2024"},
		{"snake_case stays", "snake_case-stays"},
		{"!!!", ""},
		{"-leading and trailing-", "leading-and-trailing"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestSlugTracker(t *testing.T) {
	var tracker SlugTracker

	tracker.SetTitle("Hello, World!")
	if tracker.Slug != "hello-world" {
		t.Fatalf("Slug = %q, want hello-world", tracker.Slug)
	}

	tracker.SetTitle("Hello, Builders!")
	if tracker.Slug != "hello-builders" {
		t.Fatalf("Slug = %q, want hello-builders", tracker.Slug)
	}

	tracker.SetSlug("My Custom Slug")
	if tracker.Slug != "my-custom-slug" || !tracker.Edited {
		t.Fatalf("after SetSlug got %+v", tracker)
	}

	tracker.SetTitle("Another Title Entirely")
	if tracker.Slug != "my-custom-slug" {
		t.Errorf("title change altered an edited slug: %q", tracker.Slug)
	}
}

func TestSlugifyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("slugs are idempotent", prop.ForAll(
		func(title string) bool {
			slug := Slugify(title)
			return Slugify(slug) == slug
		},
		gen.AnyString(),
	))

	properties.Property("slugs have no doubled or dangling hyphens and no spaces", prop.ForAll(
		func(title string) bool {
			slug := Slugify(title)
			return !strings.Contains(slug, "--") &&
				!strings.HasPrefix(slug, "-") &&
				!strings.HasSuffix(slug, "-") &&
				!strings.ContainsAny(slug, " \t\n")
		},
		gen.AnyString(),
	))

	properties.Property("slugs are lowercase", prop.ForAll(
		func(title string) bool {
			slug := Slugify(title)
			return slug == strings.ToLower(slug)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
