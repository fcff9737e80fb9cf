package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/storage"
)

func sameSiteMode(value string) http.SameSite {
	switch value {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func buildUploader() storage.Uploader {
	if config.AppEnv.CloudinaryURL != "" {
		up, err := storage.NewCloudinary(config.AppEnv.CloudinaryURL, config.AppEnv.UploadFolder)
		if err != nil {
			log.Fatal("cloudinary init failed: ", err)
		}
		log.Println("image uploads: cloudinary, folder", config.AppEnv.UploadFolder)
		return up
	}
	log.Println("image uploads: local disk under ./public/uploads")
	return storage.NewLocalDisk("./public", config.AppEnv.UploadFolder)
}

func main() {
	config.Load()

	if config.AppEnv.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}
	if err := database.EnsureProjectIndexes(db); err != nil {
		log.Printf("project index warning: %v", err)
	}
	if err := database.EnsureContactInfoIndexes(db); err != nil {
		log.Printf("contact info index warning: %v", err)
	}

	up := buildUploader()

	session := handlers.SessionConfig{
		Secret:   config.AppEnv.JWTSecret,
		TTL:      config.AppEnv.TokenTTL,
		Secure:   config.AppEnv.CookieSecure,
		SameSite: sameSiteMode(config.AppEnv.CookieSameSite),
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppEnv.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))
	r.Static("/public", "./public")

	auth := middleware.AdminAuth(db, config.AppEnv.JWTSecret)

	api := r.Group("/api")

	api.GET("/health", handlers.Health(db))

	admin := api.Group("/admin")
	{
		admin.POST("/register", handlers.Register(db, session))
		admin.POST("/login", handlers.Login(db, session))
		admin.POST("/logout", handlers.Logout(session))
		admin.GET("/me", auth, handlers.GetMe())
	}

	services := api.Group("/services")
	{
		services.GET("", handlers.GetServices(db))
		services.GET("/:id", handlers.GetServiceByID(db))
		services.POST("", auth, handlers.CreateService(db, up))
		services.PUT("/:id", auth, handlers.UpdateService(db, up))
		services.DELETE("/:id", auth, handlers.DeleteService(db))
	}

	equipment := api.Group("/equipment")
	{
		equipment.GET("", handlers.GetEquipment(db))
		equipment.GET("/:id", handlers.GetEquipmentByID(db))
		equipment.POST("", auth, handlers.CreateEquipment(db, up))
		equipment.PUT("/:id", auth, handlers.UpdateEquipment(db, up))
		equipment.DELETE("/:id", auth, handlers.DeleteEquipment(db))
	}

	projects := api.Group("/projects")
	{
		projects.GET("", handlers.GetProjects(db))
		projects.GET("/featured", handlers.GetFeaturedProjects(db))
		projects.GET("/recent", handlers.GetRecentProjects(db))
		projects.GET("/type/:type", handlers.GetProjectsByType(db))
		projects.GET("/:id", handlers.GetProjectByID(db))
		projects.POST("", auth, handlers.CreateProject(db, up))
		projects.PUT("/:id", auth, handlers.UpdateProject(db, up))
		projects.DELETE("/:id", auth, handlers.DeleteProject(db))
		projects.PATCH("/:id/toggle-featured", auth, handlers.ToggleProjectFeatured(db))
		projects.POST("/:id/add-image", auth, handlers.AddProjectImage(db, up))
		projects.DELETE("/:id/remove-image", auth, handlers.RemoveProjectImage(db))
	}

	contact := api.Group("/contact-info")
	{
		contact.GET("", handlers.GetContactInfo(db))
		contact.PUT("", auth, handlers.UpdateContactInfo(db))
		contact.POST("/phones", auth, handlers.AddContactPhone(db))
		contact.POST("/addresses", auth, handlers.AddContactAddress(db))
		contact.POST("/working-hours", auth, handlers.AddContactWorkingHours(db))
		contact.POST("/social-media", auth, handlers.AddContactSocialMedia(db))
		contact.PUT("/:arrayName/:itemId", auth, handlers.UpdateContactItem(db))
		contact.DELETE("/:arrayName/:itemId", auth, handlers.DeleteContactItem(db))
	}

	office := api.Group("/office-info")
	{
		office.GET("", handlers.GetOfficeInfos(db))
		office.GET("/:id", handlers.GetOfficeInfoByID(db))
		office.POST("", auth, handlers.CreateOfficeInfo(db))
		office.PUT("/:id", auth, handlers.UpdateOfficeInfo(db))
		office.DELETE("/:id", auth, handlers.DeleteOfficeInfo(db))
	}

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
