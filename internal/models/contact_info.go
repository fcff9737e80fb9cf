package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactInfoKey is the fixed identifier of the site-wide contact document.
// There is exactly one such document; a unique index on "key" guards it.
const ContactInfoKey = "contact-info"

const (
	DefaultBusinessName  = "Bhagyashree Earthmovers"
	DefaultBusinessEmail = "info@bhagyashreeearthmovers.com"
	DefaultCountryCode   = "+91"
	DefaultCountry       = "India"
)

type Phone struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type         string             `bson:"type" json:"type"`
	Number       string             `bson:"number" json:"number"`
	CountryCode  string             `bson:"countryCode" json:"countryCode"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	DisplayOrder int                `bson:"displayOrder" json:"displayOrder"`
}

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type ContactAddress struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type          string             `bson:"type" json:"type"`
	Name          string             `bson:"name" json:"name"`
	Line1         string             `bson:"line1" json:"line1"`
	Line2         string             `bson:"line2,omitempty" json:"line2,omitempty"`
	City          string             `bson:"city" json:"city"`
	State         string             `bson:"state" json:"state"`
	PostalCode    string             `bson:"postalCode" json:"postalCode"`
	Country       string             `bson:"country" json:"country"`
	Coordinates   *Coordinates       `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	GoogleMapsURL string             `bson:"googleMapsUrl,omitempty" json:"googleMapsUrl,omitempty"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
}

type WorkingHours struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Day       string             `bson:"day" json:"day"`
	OpenTime  string             `bson:"openTime" json:"openTime"`
	CloseTime string             `bson:"closeTime" json:"closeTime"`
	IsClosed  bool               `bson:"isClosed" json:"isClosed"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
}

type SocialMedia struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Platform    string             `bson:"platform" json:"platform"`
	URL         string             `bson:"url" json:"url"`
	DisplayName string             `bson:"displayName,omitempty" json:"displayName,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
}

type ContactInfo struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key              string             `bson:"key" json:"-"`
	BusinessName     string             `bson:"businessName" json:"businessName"`
	BusinessEmail    string             `bson:"businessEmail" json:"businessEmail"`
	Website          string             `bson:"website,omitempty" json:"website,omitempty"`
	Phones           []Phone            `bson:"phones" json:"phones"`
	Addresses        []ContactAddress   `bson:"addresses" json:"addresses"`
	WorkingHours     []WorkingHours     `bson:"workingHours" json:"workingHours"`
	SocialMedia      []SocialMedia      `bson:"socialMedia" json:"socialMedia"`
	EmergencyContact string             `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	SupportEmail     string             `bson:"supportEmail,omitempty" json:"supportEmail,omitempty"`
	SalesEmail       string             `bson:"salesEmail,omitempty" json:"salesEmail,omitempty"`
	GstNumber        string             `bson:"gstNumber,omitempty" json:"gstNumber,omitempty"`
	CinNumber        string             `bson:"cinNumber,omitempty" json:"cinNumber,omitempty"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultContactInfo builds the document created lazily on first read.
func DefaultContactInfo() ContactInfo {
	now := time.Now()
	return ContactInfo{
		Key:           ContactInfoKey,
		BusinessName:  DefaultBusinessName,
		BusinessEmail: DefaultBusinessEmail,
		Phones:        []Phone{},
		Addresses:     []ContactAddress{},
		WorkingHours:  []WorkingHours{},
		SocialMedia:   []SocialMedia{},
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
