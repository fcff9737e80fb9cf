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

type multipartServiceInput struct {
	Title          string
	TitleSet       bool
	Description    string
	DescriptionSet bool
	Features       []string
	FeaturesSet    bool
	ImageURL       string
	ImageSet       bool
}

func parseMultipartServiceRequest(c *gin.Context, up storage.Uploader) (multipartServiceInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return multipartServiceInput{}, err
	}

	input := multipartServiceInput{}

	if value, ok := c.GetPostForm("title"); ok {
		input.Title = strings.TrimSpace(value)
		input.TitleSet = true
	}
	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}
	if value, ok := c.GetPostForm("features"); ok {
		input.Features = parseListField(value)
		input.FeaturesSet = true
	}

	file, err := c.FormFile("image")
	if err == nil {
		url, err := up.Upload(c.Request.Context(), file)
		if err != nil {
			return multipartServiceInput{}, err
		}
		input.ImageURL = url
		input.ImageSet = true
	} else if !errors.Is(err, http.ErrMissingFile) && !strings.Contains(err.Error(), "no such file") {
		return multipartServiceInput{}, err
	}

	return input, nil
}

func CreateService(db *mongo.Database, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": "multipart/form-data required"})
			return
		}

		input, err := parseMultipartServiceRequest(c, up)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if !input.TitleSet || input.Title == "" || !input.DescriptionSet || input.Description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Title and description are required"})
			return
		}

		features := input.Features
		if features == nil {
			features = []string{}
		}

		now := time.Now()
		service := models.Service{
			Title:       input.Title,
			Description: input.Description,
			Features:    models.NewStringList(features),
			Image:       input.ImageURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("services").InsertOne(ctx, service)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		service.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, gin.H{"message": "Service created", "service": service})
	}
}

func GetServices(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/services"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("services").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		services := make([]models.Service, 0)
		if err := cursor.All(ctx, &services); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, services)
	}
}

func GetServiceByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var service models.Service
		err = db.Collection("services").FindOne(ctx, bson.M{"_id": id}).Decode(&service)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Service not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, service)
	}
}

type ServiceUpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Features    *[]string `json:"features"`
}

func UpdateService(db *mongo.Database, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		updateSet := bson.M{}

		if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			input, err := parseMultipartServiceRequest(c, up)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}

			if input.TitleSet {
				if input.Title == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "title cannot be empty"})
					return
				}
				updateSet["title"] = input.Title
			}
			if input.DescriptionSet {
				if input.Description == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "description cannot be empty"})
					return
				}
				updateSet["description"] = input.Description
			}
			if input.FeaturesSet {
				updateSet["features"] = models.NewStringList(input.Features)
			}
			if input.ImageSet {
				updateSet["image"] = input.ImageURL
			}
		} else {
			var req ServiceUpdateRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
				return
			}

			if req.Title != nil {
				title := strings.TrimSpace(*req.Title)
				if title == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "title cannot be empty"})
					return
				}
				updateSet["title"] = title
			}
			if req.Description != nil {
				description := strings.TrimSpace(*req.Description)
				if description == "" {
					c.JSON(http.StatusBadRequest, gin.H{"message": "description cannot be empty"})
					return
				}
				updateSet["description"] = description
			}
			if req.Features != nil {
				updateSet["features"] = models.NewStringList(*req.Features)
			}
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Service
		err = db.Collection("services").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": updateSet},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Service not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteService(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("services").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Service not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
	}
}
