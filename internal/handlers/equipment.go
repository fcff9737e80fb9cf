package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/storage"
)

type multipartEquipmentInput struct {
	Name           string
	NameSet        bool
	Category       string
	CategorySet    bool
	Description    string
	DescriptionSet bool
	Available      bool
	AvailableSet   bool
	HourlyRate     string
	HourlyRateSet  bool
	BestFor        string
	BestForSet     bool
	ImageURL       string
	ImageSet       bool
}

func parseMultipartEquipmentRequest(c *gin.Context, up storage.Uploader) (multipartEquipmentInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return multipartEquipmentInput{}, err
	}

	input := multipartEquipmentInput{}

	if value, ok := c.GetPostForm("name"); ok {
		input.Name = strings.TrimSpace(value)
		input.NameSet = true
	}
	if value, ok := c.GetPostForm("category"); ok {
		input.Category = strings.TrimSpace(value)
		input.CategorySet = true
	}
	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}
	if value, ok := c.GetPostForm("hourlyRate"); ok {
		input.HourlyRate = strings.TrimSpace(value)
		input.HourlyRateSet = true
	}
	if value, ok := c.GetPostForm("bestFor"); ok {
		input.BestFor = strings.TrimSpace(value)
		input.BestForSet = true
	}
	if value, ok := c.GetPostForm("available"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return multipartEquipmentInput{}, err
		}
		input.Available = parsed
		input.AvailableSet = true
	}

	file, err := c.FormFile("image")
	if err == nil {
		url, err := up.Upload(c.Request.Context(), file)
		if err != nil {
			return multipartEquipmentInput{}, err
		}
		input.ImageURL = url
		input.ImageSet = true
	} else if !errors.Is(err, http.ErrMissingFile) && !strings.Contains(err.Error(), "no such file") {
		return multipartEquipmentInput{}, err
	}

	return input, nil
}

func CreateEquipment(db *mongo.Database, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": "multipart/form-data required"})
			return
		}

		input, err := parseMultipartEquipmentRequest(c, up)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if input.Name == "" || input.Category == "" || input.Description == "" || input.HourlyRate == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "name, category, description and hourlyRate are required"})
			return
		}

		available := true
		if input.AvailableSet {
			available = input.Available
		}

		now := time.Now()
		equipment := models.Equipment{
			Name:        input.Name,
			Category:    input.Category,
			Description: input.Description,
			Image:       input.ImageURL,
			Available:   available,
			HourlyRate:  input.HourlyRate,
			BestFor:     input.BestFor,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("equipment").InsertOne(ctx, equipment)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		equipment.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, equipment)
	}
}

func GetEquipment(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/equipment"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("equipment").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.Equipment, 0)
		if err := cursor.All(ctx, &items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

func GetEquipmentByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var equipment models.Equipment
		err = db.Collection("equipment").FindOne(ctx, bson.M{"_id": id}).Decode(&equipment)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Equipment not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, equipment)
	}
}

type EquipmentUpdateRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	HourlyRate  *string `json:"hourlyRate"`
	BestFor     *string `json:"bestFor"`
}

func UpdateEquipment(db *mongo.Database, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		updateSet := bson.M{}

		if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			input, err := parseMultipartEquipmentRequest(c, up)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}

			if input.NameSet {
				if input.Name == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "name cannot be empty"})
					return
				}
				updateSet["name"] = input.Name
			}
			if input.CategorySet {
				if input.Category == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "category cannot be empty"})
					return
				}
				updateSet["category"] = input.Category
			}
			if input.DescriptionSet {
				if input.Description == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "description cannot be empty"})
					return
				}
				updateSet["description"] = input.Description
			}
			if input.HourlyRateSet {
				if input.HourlyRate == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "hourlyRate cannot be empty"})
					return
				}
				updateSet["hourlyRate"] = input.HourlyRate
			}
			if input.BestForSet {
				updateSet["bestFor"] = input.BestFor
			}
			if input.AvailableSet {
				updateSet["available"] = input.Available
			}
			if input.ImageSet {
				updateSet["image"] = input.ImageURL
			}
		} else {
			var req EquipmentUpdateRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
				return
			}

			if req.Name != nil {
				name := strings.TrimSpace(*req.Name)
				if name == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "name cannot be empty"})
					return
				}
				updateSet["name"] = name
			}
			if req.Category != nil {
				category := strings.TrimSpace(*req.Category)
				if category == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "category cannot be empty"})
					return
				}
				updateSet["category"] = category
			}
			if req.Description != nil {
				description := strings.TrimSpace(*req.Description)
				if description == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "description cannot be empty"})
					return
				}
				updateSet["description"] = description
			}
			if req.HourlyRate != nil {
				hourlyRate := strings.TrimSpace(*req.HourlyRate)
				if hourlyRate == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "hourlyRate cannot be empty"})
					return
				}
				updateSet["hourlyRate"] = hourlyRate
			}
			if req.BestFor != nil {
				updateSet["bestFor"] = strings.TrimSpace(*req.BestFor)
			}
			if req.Available != nil {
				updateSet["available"] = *req.Available
			}
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Equipment
		err = db.Collection("equipment").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": updateSet},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Equipment not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteEquipment(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("equipment").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Equipment not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Equipment deleted"})
	}
}
