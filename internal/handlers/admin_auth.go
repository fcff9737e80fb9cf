package handlers

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
	"golang.org/x/crypto/bcrypt"

	"backend/internal/middleware"
	"backend/internal/models"
)

// SessionConfig carries everything needed to mint and clear the admin cookie.
// Secure and SameSite vary between deployments.
type SessionConfig struct {
	Secret   string
	TTL      time.Duration
	Secure   bool
	SameSite http.SameSite
}

type AdminCredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func issueSessionToken(adminID primitive.ObjectID, session SessionConfig) (string, error) {
	claims := jwt.MapClaims{
		"id":  adminID.Hex(),
		"exp": time.Now().Add(session.TTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(session.Secret))
}

func setSessionCookie(c *gin.Context, session SessionConfig, signed string) {
	c.SetSameSite(session.SameSite)
	c.SetCookie(middleware.SessionCookieName, signed, int(session.TTL.Seconds()), "/", "", session.Secure, true)
}

func clearSessionCookie(c *gin.Context, session SessionConfig) {
	c.SetSameSite(session.SameSite)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", session.Secure, true)
}

// Register creates the one and only admin account. Once any admin exists the
// endpoint is permanently closed.
func Register(db *mongo.Database, session SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminCredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("admins").CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Println("[AUTH] [ERROR] register count failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusForbidden, gin.H{"message": "Registration disabled"})
			return
		}

		exists, err := db.Collection("admins").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[AUTH] [ERROR] register lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}
		if exists > 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "Admin already exists"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "password hash failed"})
			return
		}

		now := time.Now()
		admin := models.Admin{
			Email:     email,
			Password:  string(hash),
			Provider:  models.ProviderLocal,
			CreatedAt: now,
			UpdatedAt: now,
		}

		res, err := db.Collection("admins").InsertOne(ctx, admin)
		if err != nil {
			log.Println("[AUTH] [ERROR] register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		adminID := res.InsertedID.(primitive.ObjectID)
		signed, err := issueSessionToken(adminID, session)
		if err != nil {
			log.Println("[AUTH] [ERROR] register token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "token generation failed"})
			return
		}

		setSessionCookie(c, session, signed)

		log.Println("[AUTH] [INFO] admin registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Admin registered",
			"email":   email,
		})
	}
}

// rejectCredentialLookup classifies the account lookup: a missing account and
// a non-local provider collapse into the same generic rejection, while any
// other lookup error surfaces as a server failure.
func rejectCredentialLookup(err error, provider string) (bool, error) {
	if err == mongo.ErrNoDocuments {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return provider != models.ProviderLocal, nil
}

// Login authenticates the admin by email and password. Missing account, wrong
// provider and wrong password all produce the same generic failure.
func Login(db *mongo.Database, session SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminCredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err := db.Collection("admins").FindOne(ctx, bson.M{"email": email}).Decode(&admin)
		rejected, lookupErr := rejectCredentialLookup(err, admin.Provider)
		if lookupErr != nil {
			log.Println("[AUTH] [ERROR] login lookup failed:", lookupErr)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}
		if rejected {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}

		signed, err := issueSessionToken(admin.ID, session)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "token generation failed"})
			return
		}

		setSessionCookie(c, session, signed)

		log.Println("[AUTH] [INFO] admin login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
	}
}

func Logout(session SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSessionCookie(c, session)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// GetMe returns the identity the auth middleware resolved from the cookie.
func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := c.Get("adminId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		email, _ := c.Get("adminEmail")

		c.JSON(http.StatusOK, gin.H{
			"id":    adminID.(primitive.ObjectID).Hex(),
			"email": email,
		})
	}
}
