package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/config"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/repository"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/secrets"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/service"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/testutil"
)

func setupSystemHandler(t *testing.T) (*SystemHandler, *service.SettingsService, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	encoded, err := secrets.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	vault, err := secrets.NewVault(encoded)
	if err != nil {
		t.Fatalf("Failed to create vault: %v", err)
	}

	settingsService := service.NewSettingsService(
		repository.NewSettingRepository(db),
		vault,
		config.ProviderConfig{},
		zerolog.Nop(),
	)
	systemService := service.NewSystemService(db)

	closeDB := func() { db.Close() }
	return NewSystemHandler(systemService, settingsService), settingsService, closeDB
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("returns healthy status when database is connected", func(t *testing.T) {
		handler, _, _ := setupSystemHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != "healthy" {
			t.Errorf("Expected status 'healthy', got '%s'", response.Status)
		}
		if response.Database != "connected" {
			t.Errorf("Expected database 'connected', got '%s'", response.Database)
		}
	})

	t.Run("returns 503 when database is disconnected", func(t *testing.T) {
		handler, _, closeDB := setupSystemHandler(t)

		// Close the database connection to simulate failure
		closeDB()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSystemHandler_Version(t *testing.T) {
	handler, _, _ := setupSystemHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
	w := httptest.NewRecorder()

	handler.Version(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response VersionResponse
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&response)

	if response.AppVersion == "" {
		t.Error("Expected a non-empty app version")
	}
}

func TestSystemHandler_UpdateKeys(t *testing.T) {
	t.Run("stores provider keys", func(t *testing.T) {
		handler, settingsService, _ := setupSystemHandler(t)

		body := `{"alphaVantageKey":"new-av-key","fredKey":"new-fred-key"}`
		req := httptest.NewRequest(http.MethodPut, "/api/system/keys", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.UpdateKeys(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
		if got := settingsService.AlphaVantageKey(); got != "new-av-key" {
			t.Errorf("Expected stored alphavantage key, got '%s'", got)
		}
		if got := settingsService.FredKey(); got != "new-fred-key" {
			t.Errorf("Expected stored fred key, got '%s'", got)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		handler, _, _ := setupSystemHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/api/system/keys", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.UpdateKeys(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})
}
