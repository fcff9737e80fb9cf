package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureAdminIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("admins").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureAdminIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureAdminIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsureProjectIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("projects").Indexes()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "year", Value: -1}},
			Options: options.Index().SetName("type_year"),
		},
		{
			Keys:    bson.D{{Key: "featured", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("featured_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
	}

	log.Println("EnsureProjectIndexes: creating project indexes")
	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureProjectIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureContactInfoIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("contact_info").Indexes()

	keyIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "key", Value: 1}},
		Options: options.Index().
			SetName("key_unique").
			SetUnique(true),
	}

	log.Println("EnsureContactInfoIndexes: creating key_unique index")
	_, err := indexes.CreateOne(ctx, keyIndex)
	if err != nil {
		log.Println("EnsureContactInfoIndexes: key index error:", err)
		return err
	}
	return nil
}
