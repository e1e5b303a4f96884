//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/simseulnyang/TripNote/internal/config"
	"github.com/simseulnyang/TripNote/internal/db"
	analyticsdomain "github.com/simseulnyang/TripNote/internal/domain/analytics"
	expensesdomain "github.com/simseulnyang/TripNote/internal/domain/expenses"
	triplogsdomain "github.com/simseulnyang/TripNote/internal/domain/triplogs"
	tripsdomain "github.com/simseulnyang/TripNote/internal/domain/trips"
	userdomain "github.com/simseulnyang/TripNote/internal/domain/user"
	analyticsrepo "github.com/simseulnyang/TripNote/internal/repository/postgres/analytics"
	expensesrepo "github.com/simseulnyang/TripNote/internal/repository/postgres/expenses"
	triplogsrepo "github.com/simseulnyang/TripNote/internal/repository/postgres/triplogs"
	tripsrepo "github.com/simseulnyang/TripNote/internal/repository/postgres/trips"
	userrepo "github.com/simseulnyang/TripNote/internal/repository/postgres/user"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver/handler"
	"github.com/simseulnyang/TripNote/pkg/logger"
	"gorm.io/gorm"
)

type testEnv struct {
	server     *httptest.Server
	authServer *httptest.Server
	db         *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	authServer := newAuthServer(t)
	log := logger.NewFromEnv()

	cfg := config.Config{
		DB: config.DBConfig{DSN: dsn},
		Auth: config.AuthConfig{
			ProviderURL: authServer.URL,
			APIKey:      "test-key",
			Timeout:     2 * time.Second,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	tripService := tripsdomain.NewService(tripsrepo.NewPostgres(dbConn))
	expenseService := expensesdomain.NewService(expensesrepo.NewPostgres(dbConn), tripService)
	logService := triplogsdomain.NewService(triplogsrepo.NewPostgres(dbConn), tripService)
	analyticsService := analyticsdomain.NewService(analyticsrepo.NewPostgres(dbConn))
	userService := userdomain.NewService(userrepo.NewPostgres(dbConn))

	handlers := handler.New(tripService, expenseService, logService, analyticsService, userService, log)
	router := httpserver.NewRouter(cfg, handlers, userService, log)
	server := httptest.NewServer(router)

	return &testEnv{server: server, authServer: authServer, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	e.authServer.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

// newAuthServer fakes the identity provider: any non-empty bearer token is
// accepted and echoed back as the user id.
func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		payload := map[string]interface{}{
			"id":    token,
			"email": token + "@example.com",
			"user_metadata": map[string]interface{}{
				"name":       "User " + token,
				"avatar_url": "https://example.com/avatar.png",
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE trip_log_photos, trip_logs, expenses, budgets, day_plans, destinations, trips, profiles RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func decodeInto(t *testing.T, data []byte, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, data)
	}
}

const userToken = "11111111-1111-1111-1111-111111111111"

func TestTripLifecycle(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := env.server.Client()
	base := env.server.URL + "/api"

	resp, data := requestJSON(t, client, http.MethodPost, base+"/trips", userToken, map[string]interface{}{
		"title":      "제주 여행",
		"start_date": "2026-04-01",
		"end_date":   "2026-04-03",
		"destinations": []map[string]interface{}{
			{"name": "협재 해변", "day": 1, "estimated_cost": 10000},
			{"name": "동문 시장", "day": 2, "estimated_cost": 30000},
		},
		"budgets": []map[string]interface{}{
			{"category": "food", "amount": 100000},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create trip: expected 201, got %d: %s", resp.StatusCode, data)
	}

	var trip struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		DurationDays int    `json:"duration_days"`
		Destinations []struct {
			ID string `json:"id"`
		} `json:"destinations"`
	}
	decodeInto(t, data, &trip)
	if trip.Status != "planning" {
		t.Fatalf("expected status planning, got %s", trip.Status)
	}
	if trip.DurationDays != 3 {
		t.Fatalf("expected 3 days, got %d", trip.DurationDays)
	}
	if len(trip.Destinations) != 2 {
		t.Fatalf("expected 2 destinations, got %d", len(trip.Destinations))
	}

	resp, data = requestJSON(t, client, http.MethodGet, base+"/trips/"+trip.ID+"/days", userToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list days: expected 200, got %d: %s", resp.StatusCode, data)
	}
	var days struct {
		Total int `json:"total"`
	}
	decodeInto(t, data, &days)
	if days.Total != 3 {
		t.Fatalf("expected 3 day plans, got %d", days.Total)
	}

	resp, data = requestJSON(t, client, http.MethodPost, base+"/trips/"+trip.ID+"/expenses", userToken, map[string]interface{}{
		"category":     "food",
		"amount":       50000,
		"description":  "흑돼지 구이",
		"expense_date": "2026-04-02",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expense: expected 201, got %d: %s", resp.StatusCode, data)
	}
	var expense struct {
		DayNumber *int `json:"day_number"`
	}
	decodeInto(t, data, &expense)
	if expense.DayNumber == nil || *expense.DayNumber != 2 {
		t.Fatalf("expected expense on day 2, got %v", expense.DayNumber)
	}

	resp, data = requestJSON(t, client, http.MethodGet, base+"/trips/"+trip.ID+"/budgets/summary", userToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("budget summary: expected 200, got %d: %s", resp.StatusCode, data)
	}
	var summary struct {
		TotalBudget  int64   `json:"total_budget"`
		TotalExpense int64   `json:"total_expense"`
		UsagePercent float64 `json:"usage_percent"`
	}
	decodeInto(t, data, &summary)
	if summary.TotalBudget != 100000 || summary.TotalExpense != 50000 || summary.UsagePercent != 50.0 {
		t.Fatalf("unexpected budget summary: %+v", summary)
	}

	resp, data = requestJSON(t, client, http.MethodPost, base+"/trips/"+trip.ID+"/logs", userToken, map[string]interface{}{
		"destination_id": trip.Destinations[0].ID,
		"visit_date":     "2026-04-01",
		"visit_status":   "planned",
		"rating":         5,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create log: expected 201, got %d: %s", resp.StatusCode, data)
	}
	var log struct {
		PlaceName string `json:"place_name"`
	}
	decodeInto(t, data, &log)
	if log.PlaceName != "협재 해변" {
		t.Fatalf("expected place name copied from destination, got %q", log.PlaceName)
	}

	resp, data = requestJSON(t, client, http.MethodGet, base+"/trips/"+trip.ID+"/comparison", userToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("comparison: expected 200, got %d: %s", resp.StatusCode, data)
	}
	var comparison struct {
		Summary struct {
			PlannedAndVisited  int      `json:"planned_and_visited"`
			PlanCompletionRate float64  `json:"plan_completion_rate"`
			AverageRating      *float64 `json:"average_rating"`
		} `json:"summary"`
	}
	decodeInto(t, data, &comparison)
	if comparison.Summary.PlannedAndVisited != 1 {
		t.Fatalf("expected 1 planned visit, got %d", comparison.Summary.PlannedAndVisited)
	}
	if comparison.Summary.PlanCompletionRate != 50.0 {
		t.Fatalf("expected completion rate 50.0, got %v", comparison.Summary.PlanCompletionRate)
	}
	if comparison.Summary.AverageRating == nil || *comparison.Summary.AverageRating != 5.0 {
		t.Fatalf("expected average rating 5.0, got %v", comparison.Summary.AverageRating)
	}

	resp, data = requestJSON(t, client, http.MethodDelete, base+"/trips/"+trip.ID, userToken, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete trip: expected 204, got %d: %s", resp.StatusCode, data)
	}

	resp, data = requestJSON(t, client, http.MethodGet, base+"/trips/"+trip.ID, userToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d: %s", resp.StatusCode, data)
	}
}

func TestTripIsolationBetweenUsers(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := env.server.Client()
	base := env.server.URL + "/api"
	otherToken := "22222222-2222-2222-2222-222222222222"

	resp, data := requestJSON(t, client, http.MethodPost, base+"/trips", userToken, map[string]interface{}{
		"title":      "부산 여행",
		"start_date": "2026-05-01",
		"end_date":   "2026-05-02",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create trip: expected 201, got %d: %s", resp.StatusCode, data)
	}
	var trip struct {
		ID string `json:"id"`
	}
	decodeInto(t, data, &trip)

	resp, data = requestJSON(t, client, http.MethodGet, base+"/trips/"+trip.ID, otherToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's trip, got %d: %s", resp.StatusCode, data)
	}

	resp, data = requestJSON(t, client, http.MethodGet, base+"/trips", otherToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list trips: expected 200, got %d: %s", resp.StatusCode, data)
	}
	var list struct {
		Total int `json:"total"`
	}
	decodeInto(t, data, &list)
	if list.Total != 0 {
		t.Fatalf("expected empty list for the other user, got %d", list.Total)
	}
}
