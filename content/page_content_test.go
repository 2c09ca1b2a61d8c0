package content

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParseHome(t *testing.T) {
	defaults := DefaultHome()

	tests := []struct {
		name string
		raw  string
		kind Kind
		want HomeFields
	}{
		{
			name: "empty content uses defaults",
			raw:  "",
			kind: Empty,
			want: defaults,
		},
		{
			name: "whitespace only uses defaults",
			raw:  "  \n\t ",
			kind: Empty,
			want: defaults,
		},
		{
			name: "legacy html becomes the story body",
			raw:  "<p>We build homes.</p>",
			kind: Legacy,
			want: HomeFields{
				HeroTitle:       defaults.HeroTitle,
				HeroDescription: defaults.HeroDescription,
				StoryTitle:      defaults.StoryTitle,
				StoryContent:    "<p>We build homes.</p>",
			},
		},
		{
			name: "full structured object",
			raw:  `{"heroTitle":"Built Right","heroDescription":"Since 1998","storyTitle":"Our Story","storyContent":"<p>Family owned.</p>"}`,
			kind: Structured,
			want: HomeFields{
				HeroTitle:       "Built Right",
				HeroDescription: "Since 1998",
				StoryTitle:      "Our Story",
				StoryContent:    "<p>Family owned.</p>",
			},
		},
		{
			name: "missing keys fall back to defaults",
			raw:  `{"heroTitle":"Built Right"}`,
			kind: Structured,
			want: HomeFields{
				HeroTitle:       "Built Right",
				HeroDescription: defaults.HeroDescription,
				StoryTitle:      defaults.StoryTitle,
				StoryContent:    defaults.StoryContent,
			},
		},
		{
			name: "non-string values fall back to defaults",
			raw:  `{"heroTitle":42,"storyTitle":null}`,
			kind: Structured,
			want: defaults,
		},
		{
			name: "truncated json is legacy",
			raw:  `{"heroTitle":"Built`,
			kind: Legacy,
			want: HomeFields{
				HeroTitle:       defaults.HeroTitle,
				HeroDescription: defaults.HeroDescription,
				StoryTitle:      defaults.StoryTitle,
				StoryContent:    `{"heroTitle":"Built`,
			},
		},
		{
			name: "json array is legacy",
			raw:  `["a","b"]`,
			kind: Legacy,
			want: HomeFields{
				HeroTitle:       defaults.HeroTitle,
				HeroDescription: defaults.HeroDescription,
				StoryTitle:      defaults.StoryTitle,
				StoryContent:    `["a","b"]`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHome(tt.raw)
			if got.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.HomeFields != tt.want {
				t.Errorf("fields = %+v, want %+v", got.HomeFields, tt.want)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	t.Run("legacy html becomes the body", func(t *testing.T) {
		got := ParsePage("about", "<h2>Who we are</h2>")
		if got.Kind != Legacy {
			t.Fatalf("Kind = %v, want legacy", got.Kind)
		}
		if got.Content != "<h2>Who we are</h2>" {
			t.Errorf("Content = %q", got.Content)
		}
		if got.PageTitle != "About Us" {
			t.Errorf("PageTitle = %q, want default", got.PageTitle)
		}
	})

	t.Run("structured fields override defaults", func(t *testing.T) {
		got := ParsePage("services", `{"pageTitle":"What We Do","content":"<p>Roofing</p>"}`)
		if got.Kind != Structured {
			t.Fatalf("Kind = %v, want structured", got.Kind)
		}
		if got.PageTitle != "What We Do" || got.Content != "<p>Roofing</p>" {
			t.Errorf("unexpected fields %+v", got.PageFields)
		}
		if got.PageSubtitle != "Comprehensive construction solutions for your every need" {
			t.Errorf("PageSubtitle = %q, want default", got.PageSubtitle)
		}
	})

	t.Run("unknown page gets a title from its id", func(t *testing.T) {
		got := ParsePage("careers-and-jobs", "")
		if got.PageTitle != "Careers And Jobs" {
			t.Errorf("PageTitle = %q", got.PageTitle)
		}
	})

	t.Run("empty strings fall back to defaults", func(t *testing.T) {
		got := ParsePage("about", `{"pageSubtitle":"","content":"<p>Ours</p>"}`)
		if got.PageSubtitle != "Quality, integrity and innovation in every build" {
			t.Errorf("PageSubtitle = %q, want default", got.PageSubtitle)
		}
		if got.Content != "<p>Ours</p>" {
			t.Errorf("Content = %q", got.Content)
		}

		home := ParseHome(`{"heroTitle":"","storyContent":"<p>s</p>"}`)
		if home.HeroTitle != DefaultHome().HeroTitle || home.StoryContent != "<p>s</p>" {
			t.Errorf("unexpected home fields %+v", home.HomeFields)
		}
	})
}

func TestPageContentProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("structured home content round-trips", prop.ForAll(
		func(heroTitle, heroDescription, storyTitle, storyContent string) bool {
			fields := HomeFields{heroTitle, heroDescription, storyTitle, storyContent}
			raw, err := EncodeHome(fields)
			if err != nil {
				return false
			}
			got := ParseHome(raw)
			return got.Kind == Structured && got.HomeFields == fields
		},
		nonEmptyString(), nonEmptyString(), nonEmptyString(), nonEmptyString(),
	))

	properties.Property("structured page content round-trips for any page id", prop.ForAll(
		func(pageID, title, subtitle, body string) bool {
			fields := PageFields{title, subtitle, body}
			raw, err := EncodePage(fields)
			if err != nil {
				return false
			}
			got := ParsePage(pageID, raw)
			return got.Kind == Structured && got.PageFields == fields
		},
		gen.OneConstOf("about", "services", "contact", "testimonials", "careers"),
		nonEmptyString(), nonEmptyString(), nonEmptyString(),
	))

	properties.Property("html is read as legacy body without loss", prop.ForAll(
		func(pageID, text string) bool {
			raw := "<p>" + text + "</p>"
			got := ParsePage(pageID, raw)
			return got.Kind == Legacy && got.Content == raw
		},
		gen.OneConstOf("about", "services", "contact", "testimonials"),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// nonEmptyString generates strings a stored field can hold; empty values read back as defaults.
func nonEmptyString() gopter.Gen {
	return gen.AnyString().SuchThat(func(s string) bool { return s != "" })
}
