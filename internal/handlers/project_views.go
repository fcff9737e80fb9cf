package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

const defaultViewLimit = 6

func parseViewLimit(raw string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return defaultViewLimit, nil
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("invalid limit: %s", raw)
	}
	return limit, nil
}

func findProjects(ctx context.Context, db *mongo.Database, filter bson.M, opts *options.FindOptions) ([]models.Project, error) {
	cursor, err := db.Collection("projects").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := make([]models.Project, 0)
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func GetFeaturedProjects(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/projects/featured"
		defer handlePanic(c, route)

		limit, err := parseViewLimit(c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit)

		projects, err := findProjects(ctx, db, bson.M{"featured": true}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, projects)
	}
}

func GetRecentProjects(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/projects/recent"
		defer handlePanic(c, route)

		limit, err := parseViewLimit(c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit)

		projects, err := findProjects(ctx, db, bson.M{}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, projects)
	}
}

func GetProjectsByType(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/projects/type"
		defer handlePanic(c, route)

		projectType := strings.TrimSpace(c.Param("type"))
		if !models.ValidProjectType(projectType) {
			respondWithError(c, http.StatusBadRequest, route,
				fmt.Sprintf("%s is not a valid project type", projectType))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "year", Value: -1}, {Key: "createdAt", Value: -1}})

		projects, err := findProjects(ctx, db, bson.M{"type": projectType}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, projects)
	}
}
