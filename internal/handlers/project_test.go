package handlers

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"backend/internal/models"
)

func TestParseProjectSortDefault(t *testing.T) {
	sort, err := parseProjectSort("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := bson.D{{Key: "createdAt", Value: -1}}
	if len(sort) != 1 || sort[0] != want[0] {
		t.Fatalf("expected default createdAt desc, got %v", sort)
	}
}

func TestParseProjectSortMultipleFields(t *testing.T) {
	sort, err := parseProjectSort("-year, name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sort) != 2 {
		t.Fatalf("expected two sort keys, got %v", sort)
	}
	if sort[0].Key != "year" || sort[0].Value != -1 {
		t.Fatalf("expected year desc first, got %v", sort[0])
	}
	if sort[1].Key != "name" || sort[1].Value != 1 {
		t.Fatalf("expected name asc second, got %v", sort[1])
	}
}

func TestParseProjectSortRejectsUnknownField(t *testing.T) {
	if _, err := parseProjectSort("password"); err == nil {
		t.Fatal("expected error for unknown sort field")
	}
}

func strPtr(s string) *string { return &s }

func TestResolveProjectUpdateAppendsNewImages(t *testing.T) {
	existing := models.Project{
		Image:  "a.jpg",
		Images: models.StringList{"a.jpg"},
	}
	in := projectUpdateInput{NewImageURLs: []string{"b.jpg", "c.jpg"}}

	updateSet, err := resolveProjectUpdate(existing, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	images, ok := updateSet["images"].(models.StringList)
	if !ok || len(images) != 3 {
		t.Fatalf("expected three images, got %v", updateSet["images"])
	}
	if images[0] != "a.jpg" || images[2] != "c.jpg" {
		t.Fatalf("expected uploads appended after existing, got %v", images)
	}
	if updateSet["image"] != "a.jpg" {
		t.Fatalf("expected primary re-derived from first element, got %v", updateSet["image"])
	}
}

func TestResolveProjectUpdateEnforcesImageCap(t *testing.T) {
	existing := models.Project{Images: make(models.StringList, models.MaxProjectImages)}
	for i := range existing.Images {
		existing.Images[i] = "x.jpg"
	}
	in := projectUpdateInput{NewImageURLs: []string{"one-too-many.jpg"}}

	if _, err := resolveProjectUpdate(existing, in); err == nil {
		t.Fatal("expected error when exceeding the image cap")
	}
}

func TestResolveProjectUpdateRejectsInvalidType(t *testing.T) {
	existing := models.Project{Images: models.StringList{"a.jpg"}}
	in := projectUpdateInput{}
	in.Type = strPtr("Mining")

	if _, err := resolveProjectUpdate(existing, in); err == nil {
		t.Fatal("expected error for invalid project type")
	}
}

func TestResolveProjectUpdateCoercesStatus(t *testing.T) {
	existing := models.Project{Images: models.StringList{"a.jpg"}}
	in := projectUpdateInput{}
	in.Status = strPtr("finished")

	updateSet, err := resolveProjectUpdate(existing, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updateSet["status"] != models.ProjectStatusCompleted {
		t.Fatalf("expected unknown status coerced to Completed, got %v", updateSet["status"])
	}
}

func TestResolveProjectUpdateRepairsClearedPrimary(t *testing.T) {
	existing := models.Project{
		Image:  "a.jpg",
		Images: models.StringList{"a.jpg", "b.jpg"},
	}
	in := projectUpdateInput{}
	in.Image = strPtr("")

	updateSet, err := resolveProjectUpdate(existing, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updateSet["image"] != "a.jpg" {
		t.Fatalf("expected cleared primary repaired from the array, got %v", updateSet["image"])
	}
	images, ok := updateSet["images"].(models.StringList)
	if !ok || len(images) != 2 {
		t.Fatalf("expected array untouched, got %v", updateSet["images"])
	}
}

func TestResolveProjectUpdateSeedsArrayForLegacyDocument(t *testing.T) {
	existing := models.Project{Image: "cover.jpg"}
	in := projectUpdateInput{}
	in.Image = strPtr("new-cover.jpg")

	updateSet, err := resolveProjectUpdate(existing, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updateSet["image"] != "new-cover.jpg" {
		t.Fatalf("expected explicit primary kept, got %v", updateSet["image"])
	}
	images, ok := updateSet["images"].(models.StringList)
	if !ok || len(images) != 1 || images[0] != "new-cover.jpg" {
		t.Fatalf("expected array seeded from single image, got %v", updateSet["images"])
	}
}

func TestResolveProjectUpdateRejectsClearingLastImage(t *testing.T) {
	existing := models.Project{Image: "a.jpg"}
	in := projectUpdateInput{}
	in.Image = strPtr("")

	_, err := resolveProjectUpdate(existing, in)
	if err == nil || !strings.Contains(err.Error(), "image") {
		t.Fatalf("expected at-least-one-image error, got %v", err)
	}
}

func TestResolveProjectUpdateEmptyPatch(t *testing.T) {
	existing := models.Project{Images: models.StringList{"a.jpg"}}
	if _, err := resolveProjectUpdate(existing, projectUpdateInput{}); err == nil {
		t.Fatal("expected error for empty patch")
	}
}

func TestRemoveImageURLDropsEveryOccurrence(t *testing.T) {
	existing := models.Project{
		Image:  "keep.jpg",
		Images: models.StringList{"keep.jpg", "drop.jpg", "drop.jpg"},
	}

	images, image, err := removeImageURL(existing, "drop.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != 1 || images[0] != "keep.jpg" {
		t.Fatalf("expected only keep.jpg to remain, got %v", images)
	}
	if image != "keep.jpg" {
		t.Fatalf("expected primary unchanged, got %q", image)
	}
}

func TestRemoveImageURLRepairsPrimary(t *testing.T) {
	existing := models.Project{
		Image:  "first.jpg",
		Images: models.StringList{"first.jpg", "second.jpg"},
	}

	images, image, err := removeImageURL(existing, "first.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if image != "second.jpg" {
		t.Fatalf("expected primary repaired to second.jpg, got %q", image)
	}
	if len(images) != 1 || images[0] != "second.jpg" {
		t.Fatalf("expected one remaining image, got %v", images)
	}
}

func TestRemoveImageURLReseedsArrayFromLegacyPrimary(t *testing.T) {
	existing := models.Project{
		Image:  "cover.jpg",
		Images: models.StringList{"extra.jpg"},
	}

	images, image, err := removeImageURL(existing, "extra.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if image != "cover.jpg" {
		t.Fatalf("expected legacy primary kept, got %q", image)
	}
	if len(images) != 1 || images[0] != "cover.jpg" {
		t.Fatalf("expected array re-seeded from primary, got %v", images)
	}
}

func TestRemoveImageURLRejectsRemovingLastImage(t *testing.T) {
	existing := models.Project{
		Image:  "only.jpg",
		Images: models.StringList{"only.jpg"},
	}

	if _, _, err := removeImageURL(existing, "only.jpg"); err == nil {
		t.Fatal("expected error when removing the last image")
	}
}
