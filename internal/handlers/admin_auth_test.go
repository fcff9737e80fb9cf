package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

func TestIssueSessionTokenRoundTrip(t *testing.T) {
	session := SessionConfig{
		Secret:   "test-secret",
		TTL:      30 * time.Minute,
		SameSite: http.SameSiteStrictMode,
	}
	adminID := primitive.NewObjectID()

	signed, err := issueSessionToken(adminID, session)
	if err != nil {
		t.Fatalf("issueSessionToken returned error: %v", err)
	}

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(session.Secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("expected valid token, got err=%v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", token.Claims)
	}
	if claims["id"] != adminID.Hex() {
		t.Fatalf("expected id claim %s, got %v", adminID.Hex(), claims["id"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("expected expiration claim, got err=%v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatal("expected expiration in the future")
	}
}

func TestRejectCredentialLookupMissingAccount(t *testing.T) {
	rejected, err := rejectCredentialLookup(mongo.ErrNoDocuments, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rejected {
		t.Fatal("expected missing account to be rejected as invalid credentials")
	}
}

func TestRejectCredentialLookupNonLocalProvider(t *testing.T) {
	rejected, err := rejectCredentialLookup(nil, models.ProviderGoogle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rejected {
		t.Fatal("expected non-local provider to be rejected as invalid credentials")
	}
}

func TestRejectCredentialLookupLocalAccountPasses(t *testing.T) {
	rejected, err := rejectCredentialLookup(nil, models.ProviderLocal)
	if err != nil || rejected {
		t.Fatalf("expected local account to pass, got rejected=%v err=%v", rejected, err)
	}
}

func TestRejectCredentialLookupSurfacesStorageFailure(t *testing.T) {
	lookupErr := errors.New("connection reset")
	rejected, err := rejectCredentialLookup(lookupErr, models.ProviderLocal)
	if rejected {
		t.Fatal("storage failures must not look like invalid credentials")
	}
	if err != lookupErr {
		t.Fatalf("expected lookup error surfaced, got %v", err)
	}
}

func TestIssueSessionTokenRejectsWrongSecret(t *testing.T) {
	session := SessionConfig{Secret: "right-secret", TTL: time.Minute}

	signed, err := issueSessionToken(primitive.NewObjectID(), session)
	if err != nil {
		t.Fatalf("issueSessionToken returned error: %v", err)
	}

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil {
		t.Fatal("expected verification to fail with the wrong secret")
	}
}
