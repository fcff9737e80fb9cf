package models

import "testing"

func TestSyncImagesSeedsArrayFromLegacyField(t *testing.T) {
	p := Project{Image: "a.jpg"}
	p.SyncImages()
	if len(p.Images) != 1 || p.Images[0] != "a.jpg" {
		t.Fatalf("expected images seeded from legacy field, got %v", p.Images)
	}
}

func TestSyncImagesSeedsLegacyFieldFromArray(t *testing.T) {
	p := Project{Images: StringList{"a.jpg", "b.jpg"}}
	p.SyncImages()
	if p.Image != "a.jpg" {
		t.Fatalf("expected legacy image a.jpg, got %q", p.Image)
	}
}

func TestSyncImagesKeepsExplicitPrimary(t *testing.T) {
	p := Project{Image: "b.jpg", Images: StringList{"a.jpg", "b.jpg"}}
	p.SyncImages()
	if p.Image != "b.jpg" {
		t.Fatalf("expected explicit primary to survive, got %q", p.Image)
	}
	if len(p.Images) != 2 {
		t.Fatalf("expected images untouched, got %v", p.Images)
	}
}

func TestHasImage(t *testing.T) {
	empty := Project{}
	if empty.HasImage() {
		t.Fatal("expected no image on empty project")
	}
	legacy := Project{Image: "a.jpg"}
	if !legacy.HasImage() {
		t.Fatal("expected legacy-only project to have an image")
	}
	modern := Project{Images: StringList{"a.jpg"}}
	if !modern.HasImage() {
		t.Fatal("expected array-only project to have an image")
	}
}

func TestPrimaryImagePrefersArray(t *testing.T) {
	p := Project{Image: "legacy.jpg", Images: StringList{"first.jpg", "second.jpg"}}
	if got := p.PrimaryImage(); got != "first.jpg" {
		t.Fatalf("expected first.jpg, got %q", got)
	}

	fallback := Project{Image: "legacy.jpg"}
	if got := fallback.PrimaryImage(); got != "legacy.jpg" {
		t.Fatalf("expected legacy fallback, got %q", got)
	}
}

func TestNormalizeProjectStatusKeepsKnownValues(t *testing.T) {
	for _, status := range []string{ProjectStatusCompleted, ProjectStatusInProgress, ProjectStatusUpcoming} {
		if got := NormalizeProjectStatus(status); got != status {
			t.Fatalf("expected %q unchanged, got %q", status, got)
		}
	}
}

func TestNormalizeProjectStatusCoercesUnknownToCompleted(t *testing.T) {
	for _, status := range []string{"", "done", "in progress", "COMPLETED"} {
		if got := NormalizeProjectStatus(status); got != ProjectStatusCompleted {
			t.Fatalf("expected %q coerced to Completed, got %q", status, got)
		}
	}
}

func TestValidProjectType(t *testing.T) {
	for _, projectType := range ProjectTypes {
		if !ValidProjectType(projectType) {
			t.Fatalf("expected %q to be valid", projectType)
		}
	}
	if ValidProjectType("industrial") {
		t.Fatal("type matching is case sensitive")
	}
	if ValidProjectType("Mining") {
		t.Fatal("expected unknown type to be rejected")
	}
}

func TestValidProjectYear(t *testing.T) {
	if !ValidProjectYear("2024") {
		t.Fatal("expected 2024 to be valid")
	}
	for _, year := range []string{"", "24", "20245", "twenty"} {
		if ValidProjectYear(year) {
			t.Fatalf("expected %q to be rejected", year)
		}
	}
}
