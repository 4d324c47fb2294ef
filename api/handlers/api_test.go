package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimechain/report-api/api"
	"github.com/crimechain/report-api/api/handlers"
	"github.com/crimechain/report-api/config"
	"github.com/crimechain/report-api/ledger"
	"github.com/crimechain/report-api/models"
)

func newRouterApp() *handlers.App {
	return &handlers.App{
		Config: config.Config{JWTSecret: "test-secret", BaseURL: "https://reports.example.com"},
		Ledger: ledger.NewSimulator(),
	}
}

func TestHealthCheckHandler(t *testing.T) {
	router := newRouterApp().New()

	req, err := http.NewRequest("GET", "/health", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"alive":true}`, rr.Body.String())
}

func TestRoutesRequireAuth(t *testing.T) {
	router := newRouterApp().New()

	for _, route := range []struct {
		method, path string
	}{
		{"POST", "/api/v1/reports"},
		{"GET", "/api/v1/reports"},
		{"GET", "/api/v1/reports/" + primitive.NewObjectID().Hex()},
		{"GET", "/api/v1/reports/user/ledger"},
		{"GET", "/api/v1/reports/ledger"},
		{"PATCH", "/api/v1/reports/" + primitive.NewObjectID().Hex() + "/status"},
		{"PATCH", "/api/v1/reports/" + primitive.NewObjectID().Hex() + "/assign"},
	} {
		req, err := http.NewRequest(route.method, route.path, nil)
		assert.NoError(t, err)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", route.method, route.path)
	}
}

func TestAdminRoutesForbidNonAdmins(t *testing.T) {
	router := newRouterApp().New()
	issuer := api.NewIssuer("test-secret")
	token, err := issuer.IssueToken(&models.User{ID: primitive.NewObjectID(), Role: models.RoleUser})
	assert.NoError(t, err)

	for _, route := range []struct {
		method, path string
	}{
		{"GET", "/api/v1/reports/ledger"},
		{"PATCH", "/api/v1/reports/" + primitive.NewObjectID().Hex() + "/status"},
		{"PATCH", "/api/v1/reports/" + primitive.NewObjectID().Hex() + "/assign"},
	} {
		req, err := http.NewRequest(route.method, route.path, nil)
		assert.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code, "%s %s", route.method, route.path)
	}
}
