package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func jsonUpdateContext(t *testing.T, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest("PUT", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: primitive.NewObjectID().Hex()}}
	return c, w
}

func TestUpdateEquipmentRejectsClearingRequiredFields(t *testing.T) {
	// validation runs before any collection access, so no database is needed
	handler := UpdateEquipment(nil, nil)

	for _, body := range []string{
		`{"name":"  "}`,
		`{"category":""}`,
		`{"description":"  "}`,
		`{"hourlyRate":""}`,
	} {
		c, w := jsonUpdateContext(t, "/api/equipment/1", body)
		handler(c)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for body %s, got %d", body, w.Code)
		}
	}
}

func TestUpdateEquipmentRejectsEmptyPatch(t *testing.T) {
	handler := UpdateEquipment(nil, nil)

	c, w := jsonUpdateContext(t, "/api/equipment/1", `{}`)
	handler(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch, got %d", w.Code)
	}
}
