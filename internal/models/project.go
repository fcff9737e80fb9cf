package models

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProjectStatusCompleted  = "Completed"
	ProjectStatusInProgress = "In Progress"
	ProjectStatusUpcoming   = "Upcoming"
)

// MaxProjectImages caps how many images a project can carry.
const MaxProjectImages = 10

var ProjectTypes = []string{"Industrial", "Residential", "Infrastructure", "Commercial"}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Location    string             `bson:"location" json:"location"`
	Type        string             `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`
	Year        string             `bson:"year" json:"year"`
	// Image is the legacy single-image field kept for backward compatibility;
	// it always mirrors the first element of Images.
	Image        string     `bson:"image,omitempty" json:"image,omitempty"`
	Images       StringList `bson:"images" json:"images"`
	Status       string     `bson:"status" json:"status"`
	Featured     bool       `bson:"featured" json:"featured"`
	ClientName   string     `bson:"clientName,omitempty" json:"clientName,omitempty"`
	ProjectValue float64    `bson:"projectValue,omitempty" json:"projectValue,omitempty"`
	Duration     string     `bson:"duration,omitempty" json:"duration,omitempty"`
	Tags         StringList `bson:"tags" json:"tags"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func ValidProjectType(value string) bool {
	for _, t := range ProjectTypes {
		if t == value {
			return true
		}
	}
	return false
}

// NormalizeProjectStatus coerces missing or unknown values to Completed.
// Existing clients send free-text statuses and expect the write to succeed.
func NormalizeProjectStatus(value string) string {
	switch value {
	case ProjectStatusCompleted, ProjectStatusInProgress, ProjectStatusUpcoming:
		return value
	}
	return ProjectStatusCompleted
}

func ValidProjectYear(value string) bool {
	return yearPattern.MatchString(value)
}

// SyncImages enforces the image mirror rules on every write: a legacy single
// image seeds the array, and the array's first element seeds the legacy field.
func (p *Project) SyncImages() {
	if p.Image != "" && len(p.Images) == 0 {
		p.Images = StringList{p.Image}
	}
	if len(p.Images) > 0 && p.Image == "" {
		p.Image = p.Images[0]
	}
}

// HasImage reports whether the project satisfies the at-least-one-image rule.
func (p *Project) HasImage() bool {
	return p.Image != "" || len(p.Images) > 0
}

// PrimaryImage returns the first element of Images, falling back to the
// legacy field for documents written before the array existed.
func (p *Project) PrimaryImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Image
}
