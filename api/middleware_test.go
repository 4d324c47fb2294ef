package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimechain/report-api/models"
)

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	handler := Middleware(NewIssuer("secret"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest("GET", "/api/v1/reports", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	handler := Middleware(NewIssuer("secret"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	req := httptest.NewRequest("GET", "/api/v1/reports", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddlewarePassesIdentityToHandler(t *testing.T) {
	issuer := NewIssuer("secret")
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	token, err := issuer.IssueToken(user)
	assert.NoError(t, err)

	var got *Identity
	handler := Middleware(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, got)
	assert.Equal(t, user.ID.Hex(), got.UserID)
}

func TestAdminOnlyForbidsNonAdmin(t *testing.T) {
	handler := AdminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for non-admins")
	}))

	req := httptest.NewRequest("GET", "/api/v1/reports/ledger", nil)
	req = req.WithContext(ContextWithIdentity(req.Context(), &Identity{UserID: "u1", Role: models.RoleUser}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	handler := AdminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/reports/ledger", nil)
	req = req.WithContext(ContextWithIdentity(req.Context(), &Identity{UserID: "u1", Role: models.RoleAdmin}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
