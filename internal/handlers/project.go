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

var projectSortFields = map[string]struct{}{
	"createdAt":    {},
	"year":         {},
	"name":         {},
	"projectValue": {},
	"status":       {},
	"featured":     {},
}

// parseProjectSort turns a "-createdAt,year" style expression into a sort
// document. Fields outside the whitelist are rejected.
func parseProjectSort(expr string) (bson.D, error) {
	sort := bson.D{}
	for _, part := range strings.Split(expr, ",") {
		field := strings.TrimSpace(part)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		if _, ok := projectSortFields[field]; !ok {
			return nil, fmt.Errorf("invalid sort field: %s", field)
		}
		sort = append(sort, bson.E{Key: field, Value: order})
	}
	if len(sort) == 0 {
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}
	return sort, nil
}

func CreateProject(db *mongo.Database, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": "multipart/form-data required"})
			return
		}

		input, err := parseMultipartProjectRequest(c, up)
		if err != nil {
			log.Println("[PROJECT] [ERROR] create multipart error:", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if input.Name == "" || input.Location == "" || input.Type == "" || input.Description == "" || input.Year == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "name, location, type, description and year are required"})
			return
		}
		if !models.ValidProjectType(input.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("%s is not a valid project type", input.Type)})
			return
		}
		if !models.ValidProjectYear(input.Year) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Year must be a 4-digit number"})
			return
		}
		if len(input.ImageURLs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "At least one image is required"})
			return
		}

		tags := input.Tags
		if tags == nil {
			tags = []string{}
		}

		now := time.Now()
		project := models.Project{
			Name:         input.Name,
			Location:     input.Location,
			Type:         input.Type,
			Description:  input.Description,
			Year:         input.Year,
			Images:       models.StringList(input.ImageURLs),
			Status:       models.NormalizeProjectStatus(input.Status),
			Featured:     input.FeaturedSet && input.Featured,
			ClientName:   input.ClientName,
			ProjectValue: input.ProjectValue,
			Duration:     input.Duration,
			Tags:         models.NewStringList(tags),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		project.SyncImages()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("projects").InsertOne(ctx, project)
		if err != nil {
			log.Println("[PROJECT] [ERROR] create insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		project.ID = res.InsertedID.(primitive.ObjectID)
		log.Println("[PROJECT] [INFO] project created:", project.ID.Hex())
		c.JSON(http.StatusCreated, project)
	}
}

func GetProjects(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/projects"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		sort, err := parseProjectSort(c.Query("sort"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := bson.M{}
		if projectType := strings.TrimSpace(c.Query("type")); projectType != "" {
			filter["type"] = projectType
		}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}
		if featured := strings.TrimSpace(c.Query("featured")); featured != "" {
			filter["featured"] = strings.EqualFold(featured, "true")
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("projects").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(sort)

		cursor, err := db.Collection("projects").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		projects := make([]models.Project, 0)
		if err := cursor.All(ctx, &projects); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    projects,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
				"pages": pageCount(total, limit),
			},
		})
	}
}

func GetProjectByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var project models.Project
		err = db.Collection("projects").FindOne(ctx, bson.M{"_id": id}).Decode(&project)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

type ProjectUpdateRequest struct {
	Name         *string   `json:"name"`
	Location     *string   `json:"location"`
	Type         *string   `json:"type"`
	Description  *string   `json:"description"`
	Year         *string   `json:"year"`
	Status       *string   `json:"status"`
	Featured     *bool     `json:"featured"`
	ClientName   *string   `json:"clientName"`
	ProjectValue *float64  `json:"projectValue"`
	Duration     *string   `json:"duration"`
	Tags         *[]string `json:"tags"`
	Image        *string   `json:"image"`
}

type projectUpdateInput struct {
	ProjectUpdateRequest
	NewImageURLs []string
}

// resolveProjectUpdate merges the patch over the existing document and
// produces the $set map. New uploads are appended to the image array, never
// replacing it, and the primary image is re-derived when the array changed
// and the caller did not set one explicitly. The image mirror rules run on
// the touched fields before anything is stored, so a cleared primary is
// repaired from the array and a legacy single image re-seeds it.
func resolveProjectUpdate(existing models.Project, in projectUpdateInput) (bson.M, error) {
	updateSet := bson.M{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		updateSet["name"] = name
	}
	if in.Location != nil {
		location := strings.TrimSpace(*in.Location)
		if location == "" {
			return nil, fmt.Errorf("location cannot be empty")
		}
		updateSet["location"] = location
	}
	if in.Type != nil {
		if !models.ValidProjectType(*in.Type) {
			return nil, fmt.Errorf("%s is not a valid project type", *in.Type)
		}
		updateSet["type"] = *in.Type
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, fmt.Errorf("description cannot be empty")
		}
		updateSet["description"] = description
	}
	if in.Year != nil {
		if !models.ValidProjectYear(*in.Year) {
			return nil, fmt.Errorf("Year must be a 4-digit number")
		}
		updateSet["year"] = *in.Year
	}
	if in.Status != nil {
		updateSet["status"] = models.NormalizeProjectStatus(*in.Status)
	}
	if in.Featured != nil {
		updateSet["featured"] = *in.Featured
	}
	if in.ClientName != nil {
		updateSet["clientName"] = strings.TrimSpace(*in.ClientName)
	}
	if in.ProjectValue != nil {
		if *in.ProjectValue < 0 {
			return nil, fmt.Errorf("projectValue must be zero or greater")
		}
		updateSet["projectValue"] = *in.ProjectValue
	}
	if in.Duration != nil {
		updateSet["duration"] = strings.TrimSpace(*in.Duration)
	}
	if in.Tags != nil {
		updateSet["tags"] = models.NewStringList(*in.Tags)
	}

	images := existing.Images
	image := existing.Image
	imagesTouched := false

	if len(in.NewImageURLs) > 0 {
		images = append(append(models.StringList{}, images...), in.NewImageURLs...)
		if len(images) > models.MaxProjectImages {
			return nil, fmt.Errorf("a maximum of %d images is allowed", models.MaxProjectImages)
		}
		imagesTouched = true
		if in.Image == nil {
			image = images[0]
		}
	}
	if in.Image != nil {
		image = strings.TrimSpace(*in.Image)
		imagesTouched = true
	}

	next := models.Project{Image: image, Images: images}
	next.SyncImages()
	if !next.HasImage() {
		return nil, fmt.Errorf("At least one image is required")
	}
	if imagesTouched {
		updateSet["images"] = next.Images
		updateSet["image"] = next.Image
	}

	if len(updateSet) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	return updateSet, nil
}

func UpdateProject(db *mongo.Database, up storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		var in projectUpdateInput

		if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			parsed, err := parseMultipartProjectRequest(c, up)
			if err != nil {
				log.Println("[PROJECT] [ERROR] update multipart error:", err)
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			in = parsed.toUpdateInput()
		} else {
			var req ProjectUpdateRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
				return
			}
			in.ProjectUpdateRequest = req
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

		updateSet, err := resolveProjectUpdate(existing, in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		updateSet["updatedAt"] = time.Now()

		var updated models.Project
		err = db.Collection("projects").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": updateSet},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
			return
		}
		if err != nil {
			log.Println("[PROJECT] [ERROR] update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// toUpdateInput lifts the flag-tracked multipart fields into the pointer
// shape shared with the JSON update path.
func (m multipartProjectInput) toUpdateInput() projectUpdateInput {
	var in projectUpdateInput
	if m.NameSet {
		in.Name = &m.Name
	}
	if m.LocationSet {
		in.Location = &m.Location
	}
	if m.TypeSet {
		in.Type = &m.Type
	}
	if m.DescriptionSet {
		in.Description = &m.Description
	}
	if m.YearSet {
		in.Year = &m.Year
	}
	if m.StatusSet {
		in.Status = &m.Status
	}
	if m.FeaturedSet {
		in.Featured = &m.Featured
	}
	if m.ClientNameSet {
		in.ClientName = &m.ClientName
	}
	if m.ProjectValueSet {
		in.ProjectValue = &m.ProjectValue
	}
	if m.DurationSet {
		in.Duration = &m.Duration
	}
	if m.TagsSet {
		in.Tags = &m.Tags
	}
	in.NewImageURLs = m.ImageURLs
	return in
}

func DeleteProject(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("projects").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
			return
		}

		log.Println("[PROJECT] [INFO] project deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
	}
}
