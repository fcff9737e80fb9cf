package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

// The addressable sub-item arrays of the contact document. Dynamic array
// names from the route resolve against this closed set only.
const (
	arrayPhones       = "phones"
	arrayAddresses    = "addresses"
	arrayWorkingHours = "workingHours"
	arraySocialMedia  = "socialMedia"
)

func validContactArray(name string) bool {
	switch name {
	case arrayPhones, arrayAddresses, arrayWorkingHours, arraySocialMedia:
		return true
	}
	return false
}

func getOrCreateContactInfo(ctx context.Context, db *mongo.Database) (models.ContactInfo, error) {
	var info models.ContactInfo
	err := db.Collection("contact_info").FindOne(ctx, bson.M{"key": models.ContactInfoKey}).Decode(&info)
	if err == nil {
		return info, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.ContactInfo{}, err
	}

	info = models.DefaultContactInfo()
	res, err := db.Collection("contact_info").InsertOne(ctx, info)
	if err != nil {
		// a concurrent first read may have inserted it already
		var raced models.ContactInfo
		if err2 := db.Collection("contact_info").FindOne(ctx, bson.M{"key": models.ContactInfoKey}).Decode(&raced); err2 == nil {
			return raced, nil
		}
		return models.ContactInfo{}, err
	}

	info.ID = res.InsertedID.(primitive.ObjectID)
	log.Println("[CONTACT] [INFO] default contact info created:", info.ID.Hex())
	return info, nil
}

func saveContactArray(ctx context.Context, db *mongo.Database, info *models.ContactInfo, field string, value interface{}) error {
	info.UpdatedAt = time.Now()
	_, err := db.Collection("contact_info").UpdateByID(ctx, info.ID, bson.M{
		"$set": bson.M{
			field:       value,
			"updatedAt": info.UpdatedAt,
		},
	})
	return err
}

func GetContactInfo(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/contact-info"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		info, err := getOrCreateContactInfo(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, info)
	}
}

type ContactInfoUpdateRequest struct {
	BusinessName     *string `json:"businessName"`
	BusinessEmail    *string `json:"businessEmail"`
	Website          *string `json:"website"`
	EmergencyContact *string `json:"emergencyContact"`
	SupportEmail     *string `json:"supportEmail"`
	SalesEmail       *string `json:"salesEmail"`
	GstNumber        *string `json:"gstNumber"`
	CinNumber        *string `json:"cinNumber"`
	IsActive         *bool   `json:"isActive"`
}

// UpdateContactInfo merges the provided scalar fields over the singleton,
// creating it first if absent.
func UpdateContactInfo(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactInfoUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
			return
		}

		updateSet := bson.M{}

		if req.BusinessName != nil {
			name := strings.TrimSpace(*req.BusinessName)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"message": "businessName cannot be empty"})
				return
			}
			updateSet["businessName"] = name
		}
		if req.BusinessEmail != nil {
			email := strings.ToLower(strings.TrimSpace(*req.BusinessEmail))
			if email == "" {
				c.JSON(http.StatusBadRequest, gin.H{"message": "businessEmail cannot be empty"})
				return
			}
			updateSet["businessEmail"] = email
		}
		if req.Website != nil {
			updateSet["website"] = strings.TrimSpace(*req.Website)
		}
		if req.EmergencyContact != nil {
			updateSet["emergencyContact"] = strings.TrimSpace(*req.EmergencyContact)
		}
		if req.SupportEmail != nil {
			updateSet["supportEmail"] = strings.TrimSpace(*req.SupportEmail)
		}
		if req.SalesEmail != nil {
			updateSet["salesEmail"] = strings.TrimSpace(*req.SalesEmail)
		}
		if req.GstNumber != nil {
			updateSet["gstNumber"] = strings.TrimSpace(*req.GstNumber)
		}
		if req.CinNumber != nil {
			updateSet["cinNumber"] = strings.TrimSpace(*req.CinNumber)
		}
		if req.IsActive != nil {
			updateSet["isActive"] = *req.IsActive
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		info, err := getOrCreateContactInfo(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		if _, err := db.Collection("contact_info").UpdateByID(ctx, info.ID, bson.M{"$set": updateSet}); err != nil {
			log.Println("[CONTACT] [ERROR] update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		var updated models.ContactInfo
		if err := db.Collection("contact_info").FindOne(ctx, bson.M{"_id": info.ID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   SUB-ITEM REQUESTS
======================= */

type PhoneRequest struct {
	Type         string `json:"type" binding:"required,oneof=primary secondary whatsapp emergency sales support"`
	Number       string `json:"number" binding:"required"`
	CountryCode  string `json:"countryCode"`
	IsActive     *bool  `json:"isActive"`
	DisplayOrder int    `json:"displayOrder"`
}

func (r PhoneRequest) toModel() models.Phone {
	countryCode := strings.TrimSpace(r.CountryCode)
	if countryCode == "" {
		countryCode = models.DefaultCountryCode
	}
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return models.Phone{
		ID:           primitive.NewObjectID(),
		Type:         r.Type,
		Number:       strings.TrimSpace(r.Number),
		CountryCode:  countryCode,
		IsActive:     isActive,
		DisplayOrder: r.DisplayOrder,
	}
}

type AddressRequest struct {
	Type          string              `json:"type" binding:"omitempty,oneof=main branch warehouse"`
	Name          string              `json:"name" binding:"required"`
	Line1         string              `json:"line1" binding:"required"`
	Line2         string              `json:"line2"`
	City          string              `json:"city" binding:"required"`
	State         string              `json:"state" binding:"required"`
	PostalCode    string              `json:"postalCode" binding:"required"`
	Country       string              `json:"country"`
	Coordinates   *models.Coordinates `json:"coordinates"`
	GoogleMapsURL string              `json:"googleMapsUrl"`
	IsActive      *bool               `json:"isActive"`
}

func (r AddressRequest) toModel() models.ContactAddress {
	addressType := r.Type
	if addressType == "" {
		addressType = "main"
	}
	country := strings.TrimSpace(r.Country)
	if country == "" {
		country = models.DefaultCountry
	}
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return models.ContactAddress{
		ID:            primitive.NewObjectID(),
		Type:          addressType,
		Name:          strings.TrimSpace(r.Name),
		Line1:         strings.TrimSpace(r.Line1),
		Line2:         strings.TrimSpace(r.Line2),
		City:          strings.TrimSpace(r.City),
		State:         strings.TrimSpace(r.State),
		PostalCode:    strings.TrimSpace(r.PostalCode),
		Country:       country,
		Coordinates:   r.Coordinates,
		GoogleMapsURL: strings.TrimSpace(r.GoogleMapsURL),
		IsActive:      isActive,
	}
}

type WorkingHoursRequest struct {
	Day       string `json:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	OpenTime  string `json:"openTime" binding:"required"`
	CloseTime string `json:"closeTime" binding:"required"`
	IsClosed  bool   `json:"isClosed"`
	Note      string `json:"note"`
}

func (r WorkingHoursRequest) toModel() models.WorkingHours {
	return models.WorkingHours{
		ID:        primitive.NewObjectID(),
		Day:       r.Day,
		OpenTime:  strings.TrimSpace(r.OpenTime),
		CloseTime: strings.TrimSpace(r.CloseTime),
		IsClosed:  r.IsClosed,
		Note:      strings.TrimSpace(r.Note),
	}
}

type SocialMediaRequest struct {
	Platform    string `json:"platform" binding:"required,oneof=facebook twitter instagram linkedin youtube whatsapp telegram"`
	URL         string `json:"url" binding:"required"`
	DisplayName string `json:"displayName"`
	IsActive    *bool  `json:"isActive"`
}

func (r SocialMediaRequest) toModel() models.SocialMedia {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return models.SocialMedia{
		ID:          primitive.NewObjectID(),
		Platform:    r.Platform,
		URL:         strings.TrimSpace(r.URL),
		DisplayName: strings.TrimSpace(r.DisplayName),
		IsActive:    isActive,
	}
}

/* =======================
   SUB-ITEM APPEND
======================= */

func AddContactPhone(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PhoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		info, err := getOrCreateContactInfo(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		info.Phones = append(info.Phones, req.toModel())
		if err := saveContactArray(ctx, db, &info, arrayPhones, info.Phones); err != nil {
			log.Println("[CONTACT] [ERROR] add phone failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusCreated, info)
	}
}

func AddContactAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		info, err := getOrCreateContactInfo(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		info.Addresses = append(info.Addresses, req.toModel())
		if err := saveContactArray(ctx, db, &info, arrayAddresses, info.Addresses); err != nil {
			log.Println("[CONTACT] [ERROR] add address failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusCreated, info)
	}
}

func AddContactWorkingHours(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WorkingHoursRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		info, err := getOrCreateContactInfo(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		info.WorkingHours = append(info.WorkingHours, req.toModel())
		if err := saveContactArray(ctx, db, &info, arrayWorkingHours, info.WorkingHours); err != nil {
			log.Println("[CONTACT] [ERROR] add working hours failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusCreated, info)
	}
}

func AddContactSocialMedia(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SocialMediaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		info, err := getOrCreateContactInfo(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		info.SocialMedia = append(info.SocialMedia, req.toModel())
		if err := saveContactArray(ctx, db, &info, arraySocialMedia, info.SocialMedia); err != nil {
			log.Println("[CONTACT] [ERROR] add social media failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusCreated, info)
	}
}

/* =======================
   SUB-ITEM PATCHES
======================= */

type PhonePatch struct {
	Type         *string `json:"type" binding:"omitempty,oneof=primary secondary whatsapp emergency sales support"`
	Number       *string `json:"number"`
	CountryCode  *string `json:"countryCode"`
	IsActive     *bool   `json:"isActive"`
	DisplayOrder *int    `json:"displayOrder"`
}

func mergePhone(item *models.Phone, patch PhonePatch) {
	if patch.Type != nil {
		item.Type = *patch.Type
	}
	if patch.Number != nil {
		item.Number = strings.TrimSpace(*patch.Number)
	}
	if patch.CountryCode != nil {
		item.CountryCode = strings.TrimSpace(*patch.CountryCode)
	}
	if patch.IsActive != nil {
		item.IsActive = *patch.IsActive
	}
	if patch.DisplayOrder != nil {
		item.DisplayOrder = *patch.DisplayOrder
	}
}

type AddressPatch struct {
	Type          *string             `json:"type" binding:"omitempty,oneof=main branch warehouse"`
	Name          *string             `json:"name"`
	Line1         *string             `json:"line1"`
	Line2         *string             `json:"line2"`
	City          *string             `json:"city"`
	State         *string             `json:"state"`
	PostalCode    *string             `json:"postalCode"`
	Country       *string             `json:"country"`
	Coordinates   *models.Coordinates `json:"coordinates"`
	GoogleMapsURL *string             `json:"googleMapsUrl"`
	IsActive      *bool               `json:"isActive"`
}

func mergeAddress(item *models.ContactAddress, patch AddressPatch) {
	if patch.Type != nil {
		item.Type = *patch.Type
	}
	if patch.Name != nil {
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Line1 != nil {
		item.Line1 = strings.TrimSpace(*patch.Line1)
	}
	if patch.Line2 != nil {
		item.Line2 = strings.TrimSpace(*patch.Line2)
	}
	if patch.City != nil {
		item.City = strings.TrimSpace(*patch.City)
	}
	if patch.State != nil {
		item.State = strings.TrimSpace(*patch.State)
	}
	if patch.PostalCode != nil {
		item.PostalCode = strings.TrimSpace(*patch.PostalCode)
	}
	if patch.Country != nil {
		item.Country = strings.TrimSpace(*patch.Country)
	}
	if patch.Coordinates != nil {
		item.Coordinates = patch.Coordinates
	}
	if patch.GoogleMapsURL != nil {
		item.GoogleMapsURL = strings.TrimSpace(*patch.GoogleMapsURL)
	}
	if patch.IsActive != nil {
		item.IsActive = *patch.IsActive
	}
}

type WorkingHoursPatch struct {
	Day       *string `json:"day" binding:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	OpenTime  *string `json:"openTime"`
	CloseTime *string `json:"closeTime"`
	IsClosed  *bool   `json:"isClosed"`
	Note      *string `json:"note"`
}

func mergeWorkingHours(item *models.WorkingHours, patch WorkingHoursPatch) {
	if patch.Day != nil {
		item.Day = *patch.Day
	}
	if patch.OpenTime != nil {
		item.OpenTime = strings.TrimSpace(*patch.OpenTime)
	}
	if patch.CloseTime != nil {
		item.CloseTime = strings.TrimSpace(*patch.CloseTime)
	}
	if patch.IsClosed != nil {
		item.IsClosed = *patch.IsClosed
	}
	if patch.Note != nil {
		item.Note = strings.TrimSpace(*patch.Note)
	}
}

type SocialMediaPatch struct {
	Platform    *string `json:"platform" binding:"omitempty,oneof=facebook twitter instagram linkedin youtube whatsapp telegram"`
	URL         *string `json:"url"`
	DisplayName *string `json:"displayName"`
	IsActive    *bool   `json:"isActive"`
}

func mergeSocialMedia(item *models.SocialMedia, patch SocialMediaPatch) {
	if patch.Platform != nil {
		item.Platform = *patch.Platform
	}
	if patch.URL != nil {
		item.URL = strings.TrimSpace(*patch.URL)
	}
	if patch.DisplayName != nil {
		item.DisplayName = strings.TrimSpace(*patch.DisplayName)
	}
	if patch.IsActive != nil {
		item.IsActive = *patch.IsActive
	}
}

func phoneIndex(items []models.Phone, id primitive.ObjectID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func addressIndex(items []models.ContactAddress, id primitive.ObjectID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func workingHoursIndex(items []models.WorkingHours, id primitive.ObjectID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func socialMediaIndex(items []models.SocialMedia, id primitive.ObjectID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

/* =======================
   SUB-ITEM UPDATE / DELETE
======================= */

// UpdateContactItem merges the provided fields over one sub-item of one of
// the four addressable arrays. Sibling items are left untouched.
func UpdateContactItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		arrayName := c.Param("arrayName")
		if !validContactArray(arrayName) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown array name"})
			return
		}

		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid item id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var info models.ContactInfo
		err = db.Collection("contact_info").FindOne(ctx, bson.M{"key": models.ContactInfoKey}).Decode(&info)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Contact info not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		switch arrayName {
		case arrayPhones:
			var patch PhonePatch
			if err := c.ShouldBindJSON(&patch); err != nil {
				respondValidationError(c, err)
				return
			}
			idx := phoneIndex(info.Phones, itemID)
			if idx == -1 {
				c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
				return
			}
			mergePhone(&info.Phones[idx], patch)
			err = saveContactArray(ctx, db, &info, arrayPhones, info.Phones)
		case arrayAddresses:
			var patch AddressPatch
			if err := c.ShouldBindJSON(&patch); err != nil {
				respondValidationError(c, err)
				return
			}
			idx := addressIndex(info.Addresses, itemID)
			if idx == -1 {
				c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
				return
			}
			mergeAddress(&info.Addresses[idx], patch)
			err = saveContactArray(ctx, db, &info, arrayAddresses, info.Addresses)
		case arrayWorkingHours:
			var patch WorkingHoursPatch
			if err := c.ShouldBindJSON(&patch); err != nil {
				respondValidationError(c, err)
				return
			}
			idx := workingHoursIndex(info.WorkingHours, itemID)
			if idx == -1 {
				c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
				return
			}
			mergeWorkingHours(&info.WorkingHours[idx], patch)
			err = saveContactArray(ctx, db, &info, arrayWorkingHours, info.WorkingHours)
		case arraySocialMedia:
			var patch SocialMediaPatch
			if err := c.ShouldBindJSON(&patch); err != nil {
				respondValidationError(c, err)
				return
			}
			idx := socialMediaIndex(info.SocialMedia, itemID)
			if idx == -1 {
				c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
				return
			}
			mergeSocialMedia(&info.SocialMedia[idx], patch)
			err = saveContactArray(ctx, db, &info, arraySocialMedia, info.SocialMedia)
		}

		if err != nil {
			log.Println("[CONTACT] [ERROR] update item failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, info)
	}
}

// DeleteContactItem filters the matching sub-item out of the named array.
func DeleteContactItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		arrayName := c.Param("arrayName")
		if !validContactArray(arrayName) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown array name"})
			return
		}

		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid item id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var info models.ContactInfo
		err = db.Collection("contact_info").FindOne(ctx, bson.M{"key": models.ContactInfoKey}).Decode(&info)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Contact info not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		switch arrayName {
		case arrayPhones:
			filtered := make([]models.Phone, 0, len(info.Phones))
			for _, item := range info.Phones {
				if item.ID != itemID {
					filtered = append(filtered, item)
				}
			}
			info.Phones = filtered
			err = saveContactArray(ctx, db, &info, arrayPhones, info.Phones)
		case arrayAddresses:
			filtered := make([]models.ContactAddress, 0, len(info.Addresses))
			for _, item := range info.Addresses {
				if item.ID != itemID {
					filtered = append(filtered, item)
				}
			}
			info.Addresses = filtered
			err = saveContactArray(ctx, db, &info, arrayAddresses, info.Addresses)
		case arrayWorkingHours:
			filtered := make([]models.WorkingHours, 0, len(info.WorkingHours))
			for _, item := range info.WorkingHours {
				if item.ID != itemID {
					filtered = append(filtered, item)
				}
			}
			info.WorkingHours = filtered
			err = saveContactArray(ctx, db, &info, arrayWorkingHours, info.WorkingHours)
		case arraySocialMedia:
			filtered := make([]models.SocialMedia, 0, len(info.SocialMedia))
			for _, item := range info.SocialMedia {
				if item.ID != itemID {
					filtered = append(filtered, item)
				}
			}
			info.SocialMedia = filtered
			err = saveContactArray(ctx, db, &info, arraySocialMedia, info.SocialMedia)
		}

		if err != nil {
			log.Println("[CONTACT] [ERROR] delete item failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "db error"})
			return
		}

		c.JSON(http.StatusOK, info)
	}
}
