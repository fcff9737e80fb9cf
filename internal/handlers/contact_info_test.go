package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestValidContactArray(t *testing.T) {
	for _, name := range []string{arrayPhones, arrayAddresses, arrayWorkingHours, arraySocialMedia} {
		if !validContactArray(name) {
			t.Fatalf("expected %q to be addressable", name)
		}
	}
	for _, name := range []string{"", "Phones", "emails", "admins"} {
		if validContactArray(name) {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestPhoneRequestDefaults(t *testing.T) {
	phone := PhoneRequest{Type: "primary", Number: " 9876543210 "}.toModel()
	if phone.ID.IsZero() {
		t.Fatal("expected a fresh id")
	}
	if phone.CountryCode != models.DefaultCountryCode {
		t.Fatalf("expected default country code, got %q", phone.CountryCode)
	}
	if !phone.IsActive {
		t.Fatal("expected isActive to default true")
	}
	if phone.Number != "9876543210" {
		t.Fatalf("expected trimmed number, got %q", phone.Number)
	}
}

func TestAddressRequestDefaults(t *testing.T) {
	addr := AddressRequest{
		Name:       "Head Office",
		Line1:      "Plot 12",
		City:       "Pune",
		State:      "Maharashtra",
		PostalCode: "411001",
	}.toModel()
	if addr.Type != "main" {
		t.Fatalf("expected default type main, got %q", addr.Type)
	}
	if addr.Country != models.DefaultCountry {
		t.Fatalf("expected default country, got %q", addr.Country)
	}
	if !addr.IsActive {
		t.Fatal("expected isActive to default true")
	}
}

func TestMergePhonePatchesOnlyProvidedFields(t *testing.T) {
	item := models.Phone{
		ID:          primitive.NewObjectID(),
		Type:        "primary",
		Number:      "111",
		CountryCode: "+91",
		IsActive:    true,
	}

	number := " 222 "
	active := false
	mergePhone(&item, PhonePatch{Number: &number, IsActive: &active})

	if item.Number != "222" {
		t.Fatalf("expected trimmed patched number, got %q", item.Number)
	}
	if item.IsActive {
		t.Fatal("expected isActive patched to false")
	}
	if item.Type != "primary" || item.CountryCode != "+91" {
		t.Fatalf("expected untouched fields preserved, got %+v", item)
	}
}

func TestMergeWorkingHoursPatch(t *testing.T) {
	item := models.WorkingHours{
		ID:        primitive.NewObjectID(),
		Day:       "monday",
		OpenTime:  "09:00",
		CloseTime: "18:00",
	}

	closed := true
	mergeWorkingHours(&item, WorkingHoursPatch{IsClosed: &closed})

	if !item.IsClosed {
		t.Fatal("expected isClosed patched to true")
	}
	if item.OpenTime != "09:00" || item.Day != "monday" {
		t.Fatalf("expected untouched fields preserved, got %+v", item)
	}
}

func TestPhoneIndex(t *testing.T) {
	target := primitive.NewObjectID()
	items := []models.Phone{
		{ID: primitive.NewObjectID()},
		{ID: target},
	}

	if got := phoneIndex(items, target); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	if got := phoneIndex(items, primitive.NewObjectID()); got != -1 {
		t.Fatalf("expected -1 for unknown id, got %d", got)
	}
}
