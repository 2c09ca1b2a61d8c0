package content

import "github.com/truest-construction/site-backend/models"

// DefaultHome is the copy shown on the home page until an editor saves something.
func DefaultHome() HomeFields {
	return HomeFields{
		HeroTitle:       "Quality Construction Services",
		HeroDescription: "Building your dreams with precision and reliability",
		StoryTitle:      "About Tru-Est Construction",
		StoryContent:    "<p>Tru-Est Construction has been delivering residential and commercial projects built to last. From initial planning to final walkthrough, our team treats every project as if it were our own.</p>",
	}
}

// DefaultServicesBody is the body provisioned for the services page the first time an editor opens it.
const DefaultServicesBody = `<p>We offer comprehensive construction services including residential and commercial projects. Our experienced team delivers quality craftsmanship and exceptional results on every job.</p>
<p>From initial planning to final completion, we work closely with you to bring your vision to life while maintaining the highest standards of quality and safety.</p>`

var defaultPages = map[string]PageFields{
	"about": {
		PageTitle:    "About Us",
		PageSubtitle: "Quality, integrity and innovation in every build",
		Content:      "<p>Tru-Est Construction is a full-service general contractor serving homeowners and businesses. We combine skilled craftsmanship with clear communication so every project finishes on time and on budget.</p>",
	},
	"services": {
		PageTitle:    "Our Services",
		PageSubtitle: "Comprehensive construction solutions for your every need",
		Content:      DefaultServicesBody,
	},
	"testimonials": {
		PageTitle:    "Client Testimonials",
		PageSubtitle: "See what our clients say about their experience with Tru-Est Construction",
	},
	"contact": {
		PageTitle:    "Contact Us",
		PageSubtitle: "Tell us about your project and we will get back to you soon",
		Content:      "<p>Have a project in mind or a question about our services? Send us a message and a member of our team will respond within one business day.</p>",
	},
	"blog": {
		PageTitle:    "Our Blog",
		PageSubtitle: "Stay updated with the latest news, tips, and insights from the construction industry",
	},
}

// DefaultPage returns the fallback copy for pageID. Unknown pages get a title derived from the id.
func DefaultPage(pageID string) PageFields {
	if fields, ok := defaultPages[pageID]; ok {
		return fields
	}
	return PageFields{PageTitle: TitleFromID(pageID)}
}

// DefaultServicesCallout is the "why choose us" block shown on the services page.
func DefaultServicesCallout() (string, []models.CalloutItem) {
	return "Why Choose Our Services", []models.CalloutItem{
		{
			Title:       "Quality Craftsmanship",
			Description: "We take pride in delivering exceptional quality in every project, using the finest materials and skilled craftsmanship to ensure lasting results.",
		},
		{
			Title:       "Expert Team",
			Description: "Our experienced team of professionals brings decades of combined expertise to every project, ensuring the highest standards of workmanship.",
		},
		{
			Title:       "Customer Focus",
			Description: "We prioritize your needs and vision, working closely with you throughout the project to ensure complete satisfaction with the results.",
		},
	}
}

// DefaultContent returns the title and stored content a freshly provisioned page starts with.
// The services page starts with its legacy HTML body so editors land in the rich text view.
func DefaultContent(pageID string) (string, string) {
	switch pageID {
	case models.PageHome:
		body, _ := EncodeHome(DefaultHome())
		return "Home", body
	case models.PageServices:
		return DefaultPage(pageID).PageTitle, DefaultServicesBody
	}
	fields := DefaultPage(pageID)
	body, _ := EncodePage(fields)
	return fields.PageTitle, body
}
