package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OfficeInfo is the legacy flat site-settings entity, superseded by the
// ContactInfo address and working-hours sub-structures but still served.
type OfficeInfo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      string             `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Details   StringList         `bson:"details" json:"details"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
