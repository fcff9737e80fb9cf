package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

// SessionCookieName is the cookie that carries the signed admin session token.
const SessionCookieName = "token"

// AdminAuth validates the session cookie, loads the admin it names and injects
// the identity into the context. Every mutating route sits behind it.
func AdminAuth(db *mongo.Database, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookieName)
		if err != nil || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token invalid"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token invalid"})
			return
		}

		idValue, _ := claims["id"].(string)
		adminID, err := primitive.ObjectIDFromHex(strings.TrimSpace(idValue))
		if err != nil {
			log.Println("[AUTH] [ERROR] invalid id claim")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token invalid"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		if err := db.Collection("admins").FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin); err != nil {
			log.Println("[AUTH] [ERROR] admin lookup failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token invalid"})
			return
		}

		c.Set("adminId", admin.ID)
		c.Set("adminEmail", admin.Email)
		c.Next()
	}
}
