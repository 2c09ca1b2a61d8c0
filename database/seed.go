package database

import (
	"context"
	"fmt"

	"github.com/truest-construction/site-backend/content"
	"github.com/truest-construction/site-backend/models"
	"gorm.io/datatypes"
)

// SampleServices are the services a fresh install starts with.
func SampleServices() []models.Service {
	return []models.Service{
		{
			Title:       "Residential Construction",
			Description: "Complete residential construction services including custom homes, renovations, and additions. We handle everything from foundation to finishing touches.",
			Icon:        "home",
			Features: datatypes.NewJSONSlice([]string{
				"Custom home building",
				"Kitchen and bathroom renovations",
				"Room additions and expansions",
				"Foundation and structural work",
				"Interior and exterior finishing",
			}),
			OrderIndex: 1,
			IsFeatured: true,
		},
		{
			Title:       "Commercial Construction",
			Description: "Professional commercial construction services for offices, retail spaces, and industrial facilities. We deliver projects on time and within budget.",
			Icon:        "building-office",
			Features: datatypes.NewJSONSlice([]string{
				"Office buildings and complexes",
				"Retail spaces and storefronts",
				"Industrial facilities",
				"Restaurant and hospitality",
				"Healthcare facilities",
			}),
			OrderIndex: 2,
			IsFeatured: true,
		},
		{
			Title:       "Project Management",
			Description: "Comprehensive project management services ensuring your construction project runs smoothly from start to finish with expert oversight.",
			Icon:        "clipboard-document-list",
			Features: datatypes.NewJSONSlice([]string{
				"Project planning and scheduling",
				"Budget management and cost control",
				"Quality assurance and inspections",
				"Permit and regulatory compliance",
				"Stakeholder communication",
			}),
			OrderIndex: 3,
			IsFeatured: true,
		},
	}
}

// SeedResult counts what Seed actually inserted.
type SeedResult struct {
	Pages    int
	Services int
	Callouts int
}

// Seed provisions the public pages, the sample services and the services callout.
// Existing rows are never overwritten, so it is safe to run repeatedly.
func (d Database) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	for _, pageID := range models.PublicPageIDs {
		existing, err := d.pageRepo.FindByID(ctx, pageID)
		if err != nil {
			return result, fmt.Errorf("seeding page %s: %w", pageID, err)
		}
		if existing != nil {
			continue
		}
		title, body := content.DefaultContent(pageID)
		if _, err := d.pageRepo.EnsureDefault(ctx, pageID, title, body); err != nil {
			return result, fmt.Errorf("seeding page %s: %w", pageID, err)
		}
		result.Pages++
	}

	count, err := d.serviceRepo.Count(ctx)
	if err != nil {
		return result, fmt.Errorf("counting services: %w", err)
	}
	if count == 0 {
		for _, service := range SampleServices() {
			if err := d.serviceRepo.Add(ctx, &service); err != nil {
				return result, fmt.Errorf("seeding service %s: %w", service.Title, err)
			}
			result.Services++
		}
	}

	callout, err := d.calloutRepo.FindByPageID(ctx, models.PageServices)
	if err != nil {
		return result, fmt.Errorf("seeding services callout: %w", err)
	}
	if callout == nil {
		title, items := content.DefaultServicesCallout()
		if _, err := d.calloutRepo.Upsert(ctx, models.PageServices, title, items); err != nil {
			return result, fmt.Errorf("seeding services callout: %w", err)
		}
		result.Callouts++
	}

	return result, nil
}
