package handlers

import (
	"context"
	"fmt"
	"log"
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

// AddProjectImage appends uploaded images to the project's array. The primary
// image is only set when it was previously missing.
func AddProjectImage(db *mongo.Database, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": "multipart/form-data required"})
			return
		}

		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		files := projectImageFiles(c)
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "At least one image is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Project
		err = db.Collection("projects").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		if len(existing.Images)+len(files) > models.MaxProjectImages {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": fmt.Sprintf("a maximum of %d images is allowed", models.MaxProjectImages),
			})
			return
		}

		urls := make([]string, 0, len(files))
		for _, file := range files {
			url, err := up.Upload(c.Request.Context(), file)
			if err != nil {
				log.Println("[PROJECT] [ERROR] add-image upload failed:", err)
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			urls = append(urls, url)
		}

		images := append(append(models.StringList{}, existing.Images...), urls...)
		image := existing.Image
		if image == "" {
			image = images[0]
		}

		var updated models.Project
		err = db.Collection("projects").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"images":    images,
				"image":     image,
				"updatedAt": time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err != nil {
			log.Println("[PROJECT] [ERROR] add-image update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

type RemoveImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

// removeImageURL drops every occurrence of url and repairs the primary image
// when the removed URL was it. Removing the final image is rejected, and the
// image mirror rules run on the result before it is stored.
func removeImageURL(existing models.Project, url string) (models.StringList, string, error) {
	filtered := make(models.StringList, 0, len(existing.Images))
	for _, img := range existing.Images {
		if img == url {
			continue
		}
		filtered = append(filtered, img)
	}

	image := existing.Image
	if image == url {
		if len(filtered) == 0 {
			return nil, "", fmt.Errorf("a project must keep at least one image")
		}
		image = filtered[0]
	}
	if image == "" && len(filtered) == 0 {
		return nil, "", fmt.Errorf("a project must keep at least one image")
	}

	next := models.Project{Image: image, Images: filtered}
	next.SyncImages()
	return next.Images, next.Image, nil
}

func RemoveProjectImage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		var req RemoveImageRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ImageURL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "imageUrl is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Project
		err = db.Collection("projects").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		images, image, err := removeImageURL(existing, strings.TrimSpace(req.ImageURL))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var updated models.Project
		err = db.Collection("projects").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"images":    images,
				"image":     image,
				"updatedAt": time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err != nil {
			log.Println("[PROJECT] [ERROR] remove-image update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// ToggleProjectFeatured flips the featured flag. Two calls restore the
// original value.
func ToggleProjectFeatured(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Project
		err = db.Collection("projects").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		featured := !existing.Featured

		var updated models.Project
		err = db.Collection("projects").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"featured":  featured,
				"updatedAt": time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  fmt.Sprintf("Project featured set to %t", featured),
			"featured": updated.Featured,
			"project":  updated,
		})
	}
}
