package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Equipment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Available   bool               `bson:"available" json:"available"`
	HourlyRate  string             `bson:"hourlyRate" json:"hourlyRate"`
	BestFor     string             `bson:"bestFor,omitempty" json:"bestFor,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
