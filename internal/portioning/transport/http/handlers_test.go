package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/internal/portioning/infrastructure/repository"
	"github.com/caterstack/portioning/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewNamed("test")
}

func newTestHandler() *Handler {
	catalogue := repository.NewMemoryCatalogue()
	menus := repository.NewMemoryMenuStore(catalogue)
	config := repository.NewFixedConfigStore()
	svc := application.NewService(catalogue, config, menus, nil, testLogger())
	return NewHandler(svc, testLogger())
}

func newTestRouterWithHandler(h *Handler) *gin.Engine {
	router := newTestRouter()
	router.GET("/healthz", h.Health)
	group := router.Group("/api/v1")
	h.RegisterRoutes(group)
	return router
}

func TestCalculate_ReturnsPortionsForValidRequest(t *testing.T) {
	router := newTestRouterWithHandler(newTestHandler())

	body, _ := json.Marshal(map[string]interface{}{
		"dish_ids": []int64{1, 3, 5},
		"guests":   map[string]int{"gents": 100, "ladies": 100},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp application.CalculateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Portions) != 3 {
		t.Errorf("expected 3 portions, got %d", len(resp.Portions))
	}
}

func TestCalculate_RejectsEmptyDishIDs(t *testing.T) {
	router := newTestRouterWithHandler(newTestHandler())

	body, _ := json.Marshal(map[string]interface{}{
		"dish_ids": []int64{},
		"guests":   map[string]int{"gents": 10, "ladies": 10},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestCalculate_RejectsUnknownField(t *testing.T) {
	router := newTestRouterWithHandler(newTestHandler())

	body, _ := json.Marshal(map[string]interface{}{
		"dish_ids":    []int64{1, 3, 5},
		"guests":      map[string]int{"gents": 100, "ladies": 100},
		"extra_field": "not part of the request shape",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unknown field, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestPreview_ReturnsStoredSnapshot(t *testing.T) {
	router := newTestRouterWithHandler(newTestHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menus/1/preview", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp application.CalculateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Source != "template" {
		t.Errorf("expected source %q, got %q", "template", resp.Source)
	}
}

func TestPreview_UnknownTemplateReturnsNotFound(t *testing.T) {
	router := newTestRouterWithHandler(newTestHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menus/999/preview", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestHealth_ReportsHealthy(t *testing.T) {
	router := newTestRouterWithHandler(newTestHandler())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}
