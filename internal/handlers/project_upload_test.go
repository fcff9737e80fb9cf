package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubUploader struct {
	calls int
	err   error
}

func (s *stubUploader) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.calls++
	return fmt.Sprintf("https://cdn.test/img-%d.jpg", s.calls), nil
}

func multipartProjectContext(t *testing.T, build func(w *multipart.Writer)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	build(writer)
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/projects", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMultipartProjectRequestFields(t *testing.T) {
	c := multipartProjectContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("name", " Highway Bridge ")
		_ = w.WriteField("type", "Infrastructure")
		_ = w.WriteField("year", "2024")
		_ = w.WriteField("featured", "on")
		_ = w.WriteField("projectValue", "1500000")
		_ = w.WriteField("tags", `["bridge","concrete"]`)
	})

	parsed, err := parseMultipartProjectRequest(c, &stubUploader{})
	if err != nil {
		t.Fatalf("parseMultipartProjectRequest returned error: %v", err)
	}
	if !parsed.NameSet || parsed.Name != "Highway Bridge" {
		t.Fatalf("expected trimmed name, got %+v", parsed)
	}
	if !parsed.FeaturedSet || !parsed.Featured {
		t.Fatalf("expected featured=true from checkbox value, got %+v", parsed)
	}
	if !parsed.ProjectValueSet || parsed.ProjectValue != 1500000 {
		t.Fatalf("expected projectValue=1500000, got %+v", parsed)
	}
	if !parsed.TagsSet || len(parsed.Tags) != 2 || parsed.Tags[0] != "bridge" {
		t.Fatalf("expected parsed tags, got %+v", parsed.Tags)
	}
	if parsed.LocationSet {
		t.Fatal("expected absent field to stay unset")
	}
}

func TestParseMultipartProjectRequestCollectsBothFileFields(t *testing.T) {
	c := multipartProjectContext(t, func(w *multipart.Writer) {
		for _, name := range []string{"images", "images"} {
			part, err := w.CreateFormFile(name, "site.jpg")
			if err != nil {
				t.Fatalf("creating form file: %v", err)
			}
			_, _ = part.Write([]byte("fake-image-bytes"))
		}
		part, err := w.CreateFormFile("image", "legacy.jpg")
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		_, _ = part.Write([]byte("fake-image-bytes"))
	})

	up := &stubUploader{}
	parsed, err := parseMultipartProjectRequest(c, up)
	if err != nil {
		t.Fatalf("parseMultipartProjectRequest returned error: %v", err)
	}
	if len(parsed.ImageURLs) != 3 {
		t.Fatalf("expected 3 uploaded urls, got %v", parsed.ImageURLs)
	}
	if up.calls != 3 {
		t.Fatalf("expected 3 upload calls, got %d", up.calls)
	}
}

func TestParseMultipartProjectRequestRejectsTooManyFiles(t *testing.T) {
	c := multipartProjectContext(t, func(w *multipart.Writer) {
		for i := 0; i < 11; i++ {
			part, err := w.CreateFormFile("images", fmt.Sprintf("img-%d.jpg", i))
			if err != nil {
				t.Fatalf("creating form file: %v", err)
			}
			_, _ = part.Write([]byte("fake-image-bytes"))
		}
	})

	up := &stubUploader{}
	if _, err := parseMultipartProjectRequest(c, up); err == nil {
		t.Fatal("expected error for more than ten files")
	}
	if up.calls != 0 {
		t.Fatalf("expected no uploads before the cap check, got %d", up.calls)
	}
}

func TestParseMultipartProjectRequestRejectsBadFeaturedValue(t *testing.T) {
	c := multipartProjectContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("featured", "sometimes")
	})

	if _, err := parseMultipartProjectRequest(c, &stubUploader{}); err == nil {
		t.Fatal("expected error for non-boolean featured value")
	}
}
