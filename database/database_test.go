package database

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/truest-construction/site-backend/content"
	"github.com/truest-construction/site-backend/errs"
	"github.com/truest-construction/site-backend/models"
)

func newTestDatabase(t *testing.T) Database {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(db)
}

func ptr[T any](v T) *T {
	return &v
}

func TestPageRepoUpsert(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	repo := d.PageRepo()

	page, err := repo.FindByID(ctx, "about")
	if err != nil || page != nil {
		t.Fatalf("FindByID on empty table = %v, %v; want nil, nil", page, err)
	}

	created, err := repo.Upsert(ctx, "about", "", "<p>first</p>")
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if created.Title != "About" {
		t.Errorf("derived title = %q, want About", created.Title)
	}

	if _, err := repo.Upsert(ctx, "about", "About Us", "<p>second</p>"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	kept, err := repo.Upsert(ctx, "about", "", "<p>third</p>")
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if kept.Title != "About Us" {
		t.Errorf("returned title = %q, want stored About Us", kept.Title)
	}

	stored, err := repo.FindByID(ctx, "about")
	if err != nil || stored == nil {
		t.Fatalf("FindByID() = %v, %v", stored, err)
	}
	if stored.Title != "About Us" || stored.Content != "<p>third</p>" {
		t.Errorf("stored page = %+v", stored)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 1 || all["about"] == nil {
		t.Errorf("FindAll() = %v, want only about", all)
	}
}

func TestPageRepoEnsureDefaultKeepsExisting(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	repo := d.PageRepo()

	if _, err := repo.Upsert(ctx, models.PageServices, "Services", "<p>edited</p>"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	page, err := repo.EnsureDefault(ctx, models.PageServices, "Our Services", content.DefaultServicesBody)
	if err != nil {
		t.Fatalf("EnsureDefault() error = %v", err)
	}
	if page.Content != "<p>edited</p>" {
		t.Errorf("EnsureDefault overwrote content: %q", page.Content)
	}
}

func TestBlogPostRepo(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	repo := d.BlogPostRepo()

	older := &models.BlogPost{Title: "Older", Slug: "older", Content: "<p>a</p>", Date: "2024-01-10", Published: true}
	newer := &models.BlogPost{Title: "Newer", Slug: "newer", Content: "<p>b</p>", Date: "2024-03-02"}
	for _, post := range []*models.BlogPost{older, newer} {
		if err := repo.Add(ctx, post); err != nil {
			t.Fatalf("Add(%s) error = %v", post.Slug, err)
		}
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 2 || all[0].Slug != "newer" {
		t.Fatalf("FindAll() order wrong: %v", all)
	}

	published, err := repo.FindPublished(ctx)
	if err != nil {
		t.Fatalf("FindPublished() error = %v", err)
	}
	if len(published) != 1 || published[0].Slug != "older" {
		t.Fatalf("FindPublished() = %v", published)
	}

	duplicate := &models.BlogPost{Title: "Dup", Slug: "older", Content: "x"}
	err = repo.Add(ctx, duplicate)
	if err == nil {
		t.Fatal("Add with duplicate slug succeeded")
	}
	if got := errs.StatusCode(errs.NewDatabaseError("create", "blog post", err)); got != 409 {
		t.Errorf("duplicate slug status = %d, want 409", got)
	}

	toggled, err := repo.SetPublished(ctx, newer.ID, true)
	if err != nil || toggled == nil || !toggled.Published {
		t.Fatalf("SetPublished() = %+v, %v", toggled, err)
	}

	missing, err := repo.SetPublished(ctx, uuid.New(), true)
	if err != nil || missing != nil {
		t.Errorf("SetPublished(missing) = %v, %v; want nil, nil", missing, err)
	}

	bySlug, err := repo.FindBySlug(ctx, "newer")
	if err != nil || bySlug == nil || bySlug.ID != newer.ID {
		t.Fatalf("FindBySlug() = %v, %v", bySlug, err)
	}

	deleted, err := repo.Delete(ctx, newer.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete() = %v, %v", deleted, err)
	}
	deleted, err = repo.Delete(ctx, newer.ID)
	if err != nil || deleted {
		t.Errorf("second Delete() = %v, %v; want false, nil", deleted, err)
	}
}

func TestServiceRepoPartialUpdate(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	repo := d.ServiceRepo()

	service := &models.Service{Title: "Roofing", Description: "Roofs", Icon: "home", OrderIndex: 4}
	if err := repo.Add(ctx, service); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	updated, err := repo.Update(ctx, service.ID, models.ServicePatch{Description: ptr("Roofs and gutters")})
	if err != nil || updated == nil {
		t.Fatalf("Update() = %v, %v", updated, err)
	}

	stored, err := repo.FindByID(ctx, service.ID)
	if err != nil || stored == nil {
		t.Fatalf("FindByID() = %v, %v", stored, err)
	}
	if stored.Title != "Roofing" || stored.Icon != "home" || stored.OrderIndex != 4 {
		t.Errorf("unpatched fields changed: %+v", stored)
	}
	if stored.Description != "Roofs and gutters" {
		t.Errorf("Description = %q", stored.Description)
	}
	if stored.Features == nil || len(stored.Features) != 0 {
		t.Errorf("Features = %v, want empty slice", stored.Features)
	}

	missing, err := repo.Update(ctx, uuid.New(), models.ServicePatch{Title: ptr("x")})
	if err != nil || missing != nil {
		t.Errorf("Update(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestServiceRepoFeaturedOrdering(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	repo := d.ServiceRepo()

	for i, title := range []string{"D", "C", "B", "A"} {
		service := &models.Service{Title: title, OrderIndex: 4 - i, IsFeatured: true}
		if err := repo.Add(ctx, service); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	featured, err := repo.FindFeatured(ctx, models.FeaturedDisplayLimit)
	if err != nil {
		t.Fatalf("FindFeatured() error = %v", err)
	}
	if len(featured) != models.FeaturedDisplayLimit {
		t.Fatalf("FindFeatured() returned %d services, want %d", len(featured), models.FeaturedDisplayLimit)
	}
	for i, want := range []string{"A", "B", "C"} {
		if featured[i].Title != want {
			t.Errorf("featured[%d] = %s, want %s", i, featured[i].Title, want)
		}
	}

	toggled, err := repo.SetFeatured(ctx, featured[0].ID, false)
	if err != nil || toggled == nil || toggled.IsFeatured {
		t.Fatalf("SetFeatured() = %+v, %v", toggled, err)
	}
	all, err := repo.FindFeatured(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Errorf("FindFeatured(0) = %d, %v; want 3", len(all), err)
	}
}

func TestTestimonialRepo(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	repo := d.TestimonialRepo()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first := &models.Testimonial{Name: "Ana", Quote: "Great", Rating: 9, CreatedAt: base}
	second := &models.Testimonial{Name: "Ben", Quote: "Good", Rating: 0, CreatedAt: base.Add(time.Hour), IsFeatured: true}
	for _, testimonial := range []*models.Testimonial{first, second} {
		if err := repo.Add(ctx, testimonial); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	if first.Rating != models.MaxRating || second.Rating != models.MinRating {
		t.Errorf("ratings not clamped: %d, %d", first.Rating, second.Rating)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 2 || all[0].Name != "Ben" {
		t.Fatalf("FindAll() not newest first: %v", all)
	}

	updated, err := repo.Update(ctx, first.ID, models.TestimonialPatch{Rating: ptr(-3)})
	if err != nil || updated == nil {
		t.Fatalf("Update() = %v, %v", updated, err)
	}
	if updated.Rating != models.MinRating || updated.Quote != "Great" {
		t.Errorf("Update() = %+v", updated)
	}

	featured, err := repo.FindFeatured(ctx, models.FeaturedDisplayLimit)
	if err != nil || len(featured) != 1 || featured[0].Name != "Ben" {
		t.Errorf("FindFeatured() = %v, %v", featured, err)
	}
}

func TestContactSubmissionRepoStatus(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	repo := d.ContactSubmissionRepo()

	submission := &models.ContactSubmission{
		Name:    "Dana",
		Email:   "dana@example.com",
		Message: "Need a quote",
		Status:  models.ContactStatusArchived,
	}
	if err := repo.Add(ctx, submission); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if submission.Status != models.ContactStatusNew {
		t.Fatalf("new submission status = %s, want new", submission.Status)
	}

	read, err := repo.UpdateStatus(ctx, submission.ID, models.ContactStatusRead)
	if err != nil || read == nil || read.Status != models.ContactStatusRead {
		t.Fatalf("UpdateStatus(read) = %+v, %v", read, err)
	}

	_, err = repo.UpdateStatus(ctx, submission.ID, models.ContactStatusNew)
	if !errs.IsInvalidTransition(err) {
		t.Fatalf("read -> new error = %v, want invalid transition", err)
	}

	if _, err := repo.UpdateStatus(ctx, submission.ID, models.ContactStatusArchived); err != nil {
		t.Fatalf("UpdateStatus(archived) error = %v", err)
	}

	archived, err := repo.FindAll(ctx, models.ContactStatusArchived)
	if err != nil || len(archived) != 1 {
		t.Fatalf("FindAll(archived) = %v, %v", archived, err)
	}
	fresh, err := repo.FindAll(ctx, models.ContactStatusNew)
	if err != nil || len(fresh) != 0 {
		t.Errorf("FindAll(new) = %v, %v", fresh, err)
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if counts[models.ContactStatusArchived] != 1 || counts[models.ContactStatusNew] != 0 {
		t.Errorf("CountByStatus() = %v", counts)
	}

	missing, err := repo.UpdateStatus(ctx, uuid.New(), models.ContactStatusRead)
	if err != nil || missing != nil {
		t.Errorf("UpdateStatus(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestCalloutRepoUpsert(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	repo := d.CalloutRepo()

	callout, err := repo.FindByPageID(ctx, models.PageAbout)
	if err != nil || callout != nil {
		t.Fatalf("FindByPageID on empty table = %v, %v", callout, err)
	}

	items := []models.CalloutItem{{Title: "One", Description: "1"}, {Title: "Two", Description: "2"}}
	if _, err := repo.Upsert(ctx, models.PageAbout, "Why us", items); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	replaced, err := repo.Upsert(ctx, models.PageAbout, "Why choose us", items[:1])
	if err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if replaced.Title != "Why choose us" || len(replaced.Items) != 1 || replaced.Items[0].Title != "One" {
		t.Errorf("Upsert() = %+v", replaced)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	first, err := d.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if first.Pages != len(models.PublicPageIDs) || first.Services != 3 || first.Callouts != 1 {
		t.Errorf("first Seed() = %+v", first)
	}

	second, err := d.Seed(ctx)
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if second != (SeedResult{}) {
		t.Errorf("second Seed() inserted %+v", second)
	}

	services, err := d.ServiceRepo().FindAll(ctx)
	if err != nil || len(services) != 3 || services[0].Title != "Residential Construction" {
		t.Fatalf("seeded services = %v, %v", services, err)
	}
	if len(services[0].Features) != 5 {
		t.Errorf("seeded features = %v", services[0].Features)
	}

	home, err := d.PageRepo().FindByID(ctx, models.PageHome)
	if err != nil || home == nil {
		t.Fatalf("home page = %v, %v", home, err)
	}
	if parsed := content.ParseHome(home.Content); parsed.Kind != content.Structured || parsed.HeroTitle != content.DefaultHome().HeroTitle {
		t.Errorf("seeded home = %+v", parsed)
	}
}

func TestPing(t *testing.T) {
	d := newTestDatabase(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestColumnMismatchReport(t *testing.T) {
	d := newTestDatabase(t)
	if err := d.db.Exec("ALTER TABLE pages ADD COLUMN legacy_slug text").Error; err != nil {
		t.Fatalf("adding column: %v", err)
	}

	var out strings.Builder
	mismatches, err := models.GenerateColumnMismatchReport(d.db, &out)
	if err != nil {
		t.Fatalf("GenerateColumnMismatchReport() error = %v", err)
	}
	if got := mismatches["pages"]; len(got) != 1 || got[0] != "legacy_slug" {
		t.Errorf("mismatches = %v", mismatches)
	}
	if len(mismatches) != 1 {
		t.Errorf("unexpected tables in report: %v", mismatches)
	}
	if !strings.Contains(out.String(), "Total mismatched columns across all tables: 1") {
		t.Errorf("report missing summary:\n%s", out.String())
	}
}
