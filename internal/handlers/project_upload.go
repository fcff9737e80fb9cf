package handlers

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/storage"
)

type multipartProjectInput struct {
	Name            string
	NameSet         bool
	Location        string
	LocationSet     bool
	Type            string
	TypeSet         bool
	Description     string
	DescriptionSet  bool
	Year            string
	YearSet         bool
	Status          string
	StatusSet       bool
	Featured        bool
	FeaturedSet     bool
	ClientName      string
	ClientNameSet   bool
	ProjectValue    float64
	ProjectValueSet bool
	Duration        string
	DurationSet     bool
	Tags            []string
	TagsSet         bool
	ImageURLs       []string
}

// parseMultipartProjectRequest reads the form fields and resolves every
// uploaded file (from both the multi-image field and the legacy single one)
// to a stored URL before any document write happens.
func parseMultipartProjectRequest(c *gin.Context, up storage.Uploader) (multipartProjectInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return multipartProjectInput{}, err
	}

	input := multipartProjectInput{}

	if value, ok := c.GetPostForm("name"); ok {
		input.Name = strings.TrimSpace(value)
		input.NameSet = true
	}
	if value, ok := c.GetPostForm("location"); ok {
		input.Location = strings.TrimSpace(value)
		input.LocationSet = true
	}
	if value, ok := c.GetPostForm("type"); ok {
		input.Type = strings.TrimSpace(value)
		input.TypeSet = true
	}
	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}
	if value, ok := c.GetPostForm("year"); ok {
		input.Year = strings.TrimSpace(value)
		input.YearSet = true
	}
	if value, ok := c.GetPostForm("status"); ok {
		input.Status = strings.TrimSpace(value)
		input.StatusSet = true
	}
	if value, ok := c.GetPostForm("clientName"); ok {
		input.ClientName = strings.TrimSpace(value)
		input.ClientNameSet = true
	}
	if value, ok := c.GetPostForm("duration"); ok {
		input.Duration = strings.TrimSpace(value)
		input.DurationSet = true
	}

	if value, ok := c.GetPostForm("featured"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return multipartProjectInput{}, err
		}
		input.Featured = parsed
		input.FeaturedSet = true
	}

	if value, ok := c.GetPostForm("projectValue"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return multipartProjectInput{}, err
		}
		input.ProjectValue = parsed
		input.ProjectValueSet = true
	}

	if value, ok := c.GetPostForm("tags"); ok {
		input.Tags = parseListField(value)
		input.TagsSet = true
	}

	files := projectImageFiles(c)
	if len(files) > models.MaxProjectImages {
		return multipartProjectInput{}, fmt.Errorf("a maximum of %d images is allowed", models.MaxProjectImages)
	}
	for _, file := range files {
		url, err := up.Upload(c.Request.Context(), file)
		if err != nil {
			return multipartProjectInput{}, err
		}
		input.ImageURLs = append(input.ImageURLs, url)
	}

	return input, nil
}

func projectImageFiles(c *gin.Context) []*multipart.FileHeader {
	form := c.Request.MultipartForm
	if form == nil || form.File == nil {
		return nil
	}

	var files []*multipart.FileHeader
	files = append(files, form.File["images"]...)
	files = append(files, form.File["image"]...)
	return files
}
