// Package content resolves the free-text content column of a page into renderable fields.
//
// A page's content has been stored in more than one shape over time: raw HTML, and JSON
// objects whose keys depend on the page. Parsing is best effort and never fails; whatever
// cannot be read as a JSON object is treated as legacy HTML.
package content

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind tags which stored shape a page's content was read from.
type Kind int

const (
	// Empty means there was no content at all and every field holds its default.
	Empty Kind = iota
	// Legacy means the content was raw HTML and became the page body.
	Legacy
	// Structured means the content was a JSON object.
	Structured
)

func (k Kind) String() string {
	switch k {
	case Legacy:
		return "legacy"
	case Structured:
		return "structured"
	default:
		return "empty"
	}
}

// HomeFields is the structured shape of the home page.
type HomeFields struct {
	HeroTitle       string `json:"heroTitle"`
	HeroDescription string `json:"heroDescription"`
	StoryTitle      string `json:"storyTitle"`
	StoryContent    string `json:"storyContent"`
}

// PageFields is the structured shape shared by every other page.
type PageFields struct {
	PageTitle    string `json:"pageTitle"`
	PageSubtitle string `json:"pageSubtitle"`
	Content      string `json:"content"`
}

// Home is the resolved home page content.
type Home struct {
	Kind Kind
	HomeFields
}

// Page is the resolved content of a generic page.
type Page struct {
	Kind Kind
	PageFields
}

// ParseHome resolves raw home page content, filling anything missing from DefaultHome.
// Raw content that is not a JSON object becomes the story body.
func ParseHome(raw string) Home {
	defaults := DefaultHome()

	var fields map[string]json.RawMessage
	kind := classify(raw, &fields)

	home := Home{Kind: kind, HomeFields: defaults}
	switch kind {
	case Legacy:
		home.StoryContent = raw
	case Structured:
		home.HeroTitle = stringField(fields, "heroTitle", defaults.HeroTitle)
		home.HeroDescription = stringField(fields, "heroDescription", defaults.HeroDescription)
		home.StoryTitle = stringField(fields, "storyTitle", defaults.StoryTitle)
		home.StoryContent = stringField(fields, "storyContent", defaults.StoryContent)
	}
	return home
}

// ParsePage resolves raw content for a generic page, filling anything missing from
// DefaultPage(pageID). Raw content that is not a JSON object becomes the page body.
func ParsePage(pageID, raw string) Page {
	defaults := DefaultPage(pageID)

	var fields map[string]json.RawMessage
	kind := classify(raw, &fields)

	page := Page{Kind: kind, PageFields: defaults}
	switch kind {
	case Legacy:
		page.Content = raw
	case Structured:
		page.PageTitle = stringField(fields, "pageTitle", defaults.PageTitle)
		page.PageSubtitle = stringField(fields, "pageSubtitle", defaults.PageSubtitle)
		page.Content = stringField(fields, "content", defaults.Content)
	}
	return page
}

// EncodeHome serialises home fields into the stored JSON shape.
func EncodeHome(fields HomeFields) (string, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncodePage serialises generic page fields into the stored JSON shape.
func EncodePage(fields PageFields) (string, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// classify decides the stored shape. Only a JSON object counts as structured;
// arrays, scalars and anything unparsable are legacy HTML.
func classify(raw string, fields *map[string]json.RawMessage) Kind {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Empty
	}
	if !strings.HasPrefix(trimmed, "{") {
		return Legacy
	}
	if err := json.Unmarshal([]byte(trimmed), fields); err != nil || *fields == nil {
		return Legacy
	}
	return Structured
}

// stringField reads key as a string, falling back when it is absent, empty or not a string.
func stringField(fields map[string]json.RawMessage, key, fallback string) string {
	rawValue, ok := fields[key]
	if !ok {
		return fallback
	}
	var value string
	if err := json.Unmarshal(rawValue, &value); err != nil || value == "" {
		return fallback
	}
	return value
}

// TitleFromID turns a page id such as "contact-us" into "Contact Us".
func TitleFromID(pageID string) string {
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(pageID))
}
