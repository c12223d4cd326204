package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bungalowpark/internal/database"
	"bungalowpark/internal/domain"
	"bungalowpark/internal/middleware"
	"bungalowpark/internal/modules/activity"
	"bungalowpark/internal/modules/catalog"
	"bungalowpark/internal/modules/content"
	"bungalowpark/internal/modules/customer"
	"bungalowpark/internal/modules/report"
	"bungalowpark/internal/modules/reservation"
	"bungalowpark/internal/modules/settings"
	"bungalowpark/internal/pkg/token"
	"bungalowpark/internal/repository"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *token.Service
}

type TestResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    map[string]any    `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	// A file-backed database rather than ":memory:": every pool connection
	// must see the same schema, and each :memory: connection gets its own.
	db, err := database.Connect(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	reservationRepo := repository.NewReservationRepository(db)
	bungalowRepo := repository.NewBungalowRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	serviceRepo := repository.NewExtraServiceRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	templateRepo := repository.NewEmailTemplateRepository(db)
	termsRepo := repository.NewTermsRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := activity.NewService(activityRepo, zap.NewNop())

	settingsService := settings.NewService(settingRepo, activityService, 24*time.Hour)
	require.NoError(t, settingsService.EnsureDefaults(t.Context(), 24))

	reservationService := reservation.NewService(
		reservationRepo, bungalowRepo, customerRepo, serviceRepo,
		settingsService, activityService,
	)
	catalogService := catalog.NewService(bungalowRepo, serviceRepo, activityService)
	customerService := customer.NewService(customerRepo, activityService)
	contentService := content.NewService(templateRepo, termsRepo, activityService)
	reportService := report.NewService(reservationRepo, bungalowRepo)

	tokens := token.New("test_secret_key_32_characters_min", 24*time.Hour)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	reservationHandler := reservation.NewHandler(reservationService)
	contentHandler := content.NewHandler(contentService)

	reservationHandler.RegisterPublicRoutes(v1)
	contentHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Actor(tokens))
	{
		reservationHandler.RegisterRoutes(protected)
		catalog.NewHandler(catalogService).RegisterRoutes(protected)
		customer.NewHandler(customerService).RegisterRoutes(protected)
		settings.NewHandler(settingsService).RegisterRoutes(protected)
		contentHandler.RegisterRoutes(protected)
		report.NewHandler(reportService).RegisterRoutes(protected)
		activity.NewHandler(activityService).RegisterRoutes(protected)
	}

	return &E2ETestSuite{router: r, db: db, tokens: tokens}
}

func (s *E2ETestSuite) staffToken(t *testing.T) string {
	tok, err := s.tokens.Generate(1, "Admin")
	require.NoError(t, err)
	return tok
}

func (s *E2ETestSuite) makeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func (s *E2ETestSuite) createFixtures(t *testing.T, tok string) (bungalowID, customerID, serviceID int64) {
	w := s.makeRequest("POST", "/api/v1/bungalows", map[string]any{
		"name":            "Seaside 1",
		"capacity":        4,
		"price_per_night": 500,
	}, tok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	bungalowID = int64(resp.Data["bungalow"].(map[string]any)["id"].(float64))

	w = s.makeRequest("POST", "/api/v1/customers", map[string]any{
		"full_name": "Jan de Vries",
		"email":     "jan@example.com",
	}, tok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp = parseResponse(t, w)
	customerID = int64(resp.Data["customer"].(map[string]any)["id"].(float64))

	w = s.makeRequest("POST", "/api/v1/services", map[string]any{
		"name":    "Breakfast",
		"price":   12.5,
		"pricing": "per_person",
	}, tok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp = parseResponse(t, w)
	serviceID = int64(resp.Data["service"].(map[string]any)["id"].(float64))

	return bungalowID, customerID, serviceID
}

func TestFlow_ReservationLifecycle(t *testing.T) {
	suite := setupTestSuite(t)
	tok := suite.staffToken(t)
	bungalowID, customerID, serviceID := suite.createFixtures(t, tok)

	var reservationID float64
	var code string

	t.Run("create reservation prices nights times rate", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]any{
			"customer_id":    customerID,
			"bungalow_id":    bungalowID,
			"check_in_date":  "2027-06-01",
			"check_out_date": "2027-06-06",
			"guest_count":    2,
		}, tok)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		res := resp.Data["reservation"].(map[string]any)
		reservationID = res["id"].(float64)
		code = res["code"].(string)

		assert.Equal(t, 2500.0, res["total_price"])
		assert.Equal(t, 2500.0, res["remaining_amount"])
		assert.Equal(t, "pending", res["status"])
		assert.Equal(t, "unpaid", res["payment_status"])
		assert.Regexp(t, `^RES\d{12}$`, code)
	})

	t.Run("overlapping reservation rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]any{
			"customer_id":    customerID,
			"bungalow_id":    bungalowID,
			"check_in_date":  "2027-06-03",
			"check_out_date": "2027-06-08",
			"guest_count":    2,
		}, tok)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("partial then full payment", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/reservations/%.0f/payment", reservationID)

		w := suite.makeRequest("POST", path, map[string]any{
			"amount":       1000,
			"method":       "cash",
			"payment_date": "2027-05-01",
		}, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		res := parseResponse(t, w).Data["reservation"].(map[string]any)
		assert.Equal(t, "partial", res["payment_status"])
		assert.Equal(t, 1500.0, res["remaining_amount"])

		w = suite.makeRequest("POST", path, map[string]any{
			"amount":       1500,
			"method":       "card",
			"payment_date": "2027-05-02",
		}, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		res = parseResponse(t, w).Data["reservation"].(map[string]any)
		assert.Equal(t, "paid", res["payment_status"])
		assert.Equal(t, 0.0, res["remaining_amount"])

		history := res["payment_history"].([]any)
		assert.Len(t, history, 2)
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/reservations/%.0f/payment", reservationID)
		w := suite.makeRequest("POST", path, map[string]any{
			"amount":       1,
			"method":       "cash",
			"payment_date": "2027-05-03",
		}, tok)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("add and remove extra service", func(t *testing.T) {
		addPath := fmt.Sprintf("/api/v1/reservations/%.0f/service", reservationID)
		w := suite.makeRequest("POST", addPath, map[string]any{
			"service_id": serviceID,
		}, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		res := parseResponse(t, w).Data["reservation"].(map[string]any)

		lines := res["extra_services"].([]any)
		require.Len(t, lines, 1)
		line := lines[0].(map[string]any)
		// per_person default quantity is the guest count: 2 x 12.50
		assert.Equal(t, 25.0, line["amount"])
		assert.Equal(t, 2525.0, res["total_price"])
		assert.Equal(t, "partial", res["payment_status"])

		w = suite.makeRequest("DELETE", addPath, map[string]any{
			"entry_id": line["id"],
		}, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		res = parseResponse(t, w).Data["reservation"].(map[string]any)
		assert.Empty(t, res["extra_services"])
		assert.Equal(t, 2500.0, res["total_price"])
		assert.Equal(t, "paid", res["payment_status"])
	})

	t.Run("delay reprices the stay", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/reservations/%.0f/delay", reservationID)
		w := suite.makeRequest("POST", path, map[string]any{
			"check_in_date":  "2027-07-01",
			"check_out_date": "2027-07-04",
			"reason":         "guest request",
		}, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		res := parseResponse(t, w).Data["reservation"].(map[string]any)

		// 3 nights x 500
		assert.Equal(t, 1500.0, res["total_price"])
		assert.Contains(t, res["notes"], "Delayed: was 2027-06-01 to 2027-06-06 (guest request)")
		assert.NotNil(t, res["delayed_at"])
	})

	t.Run("cancel then cancel again", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/reservations/%.0f/cancel", reservationID)
		w := suite.makeRequest("POST", path, map[string]any{"reason": "plans changed"}, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		res := parseResponse(t, w).Data["reservation"].(map[string]any)
		assert.Equal(t, "cancelled", res["status"])
		assert.Equal(t, "plans changed", res["cancellation_reason"])

		w = suite.makeRequest("POST", path, nil, tok)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("activity log captured the flow", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/activity-logs", nil, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := parseResponse(t, w)
		logs := resp.Data["logs"].([]any)
		assert.NotEmpty(t, logs)

		actions := map[string]bool{}
		for _, raw := range logs {
			actions[raw.(map[string]any)["action"].(string)] = true
		}
		assert.True(t, actions["reservation.created"])
		assert.True(t, actions["reservation.cancelled"])
	})
}

func TestFlow_PublicConfirmation(t *testing.T) {
	suite := setupTestSuite(t)
	tok := suite.staffToken(t)
	bungalowID, customerID, _ := suite.createFixtures(t, tok)

	w := suite.makeRequest("POST", "/api/v1/reservations", map[string]any{
		"customer_id":    customerID,
		"bungalow_id":    bungalowID,
		"check_in_date":  "2027-08-01",
		"check_out_date": "2027-08-04",
		"guest_count":    2,
	}, tok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := parseResponse(t, w).Data["reservation"].(map[string]any)
	confirmationCode := res["confirmation_code"].(string)
	require.Len(t, confirmationCode, 12)

	t.Run("view without auth", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/reservations/confirm/"+confirmationCode, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		view := parseResponse(t, w).Data["reservation"].(map[string]any)
		assert.Equal(t, "pending", view["status"])
	})

	t.Run("unknown code is 404", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/reservations/confirm/NOPE00000000", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("confirm without accepting terms", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations/confirm/"+confirmationCode, map[string]any{
			"terms_accepted": false,
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("confirm succeeds once", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations/confirm/"+confirmationCode, map[string]any{
			"terms_accepted": true,
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		res := parseResponse(t, w).Data["reservation"].(map[string]any)
		assert.Equal(t, "confirmed", res["status"])

		w = suite.makeRequest("POST", "/api/v1/reservations/confirm/"+confirmationCode, map[string]any{
			"terms_accepted": true,
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	t.Run("expired code is 410", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]any{
			"customer_id":    customerID,
			"bungalow_id":    bungalowID,
			"check_in_date":  "2027-09-01",
			"check_out_date": "2027-09-03",
			"guest_count":    2,
		}, tok)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		res := parseResponse(t, w).Data["reservation"].(map[string]any)
		code := res["confirmation_code"].(string)
		id := int64(res["id"].(float64))

		past := time.Now().UTC().Add(-1 * time.Hour)
		require.NoError(t, suite.db.Model(&domain.Reservation{}).
			Where("id = ?", id).
			Update("confirmation_expires_at", past).Error)

		w = suite.makeRequest("GET", "/api/v1/reservations/confirm/"+code, nil, "")
		assert.Equal(t, http.StatusGone, w.Code, w.Body.String())

		w = suite.makeRequest("POST", "/api/v1/reservations/confirm/"+code, map[string]any{
			"terms_accepted": true,
		}, "")
		assert.Equal(t, http.StatusGone, w.Code, w.Body.String())
	})
}

func TestFlow_SettingsContentAndReports(t *testing.T) {
	suite := setupTestSuite(t)
	tok := suite.staffToken(t)

	t.Run("defaults exist and can be updated", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/settings/reservation", nil, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("PUT", "/api/v1/settings/reservation", map[string]any{
			"data": map[string]any{"confirmation_hours": 48},
		}, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("GET", "/api/v1/settings/unknown", nil, tok)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("terms upsert bumps version and is public", func(t *testing.T) {
		w := suite.makeRequest("PUT", "/api/v1/terms", map[string]any{
			"title": "Rental terms",
			"body":  "Check-in from 15:00.",
		}, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		terms := parseResponse(t, w).Data["terms"].(map[string]any)
		assert.Equal(t, 1.0, terms["version"])

		w = suite.makeRequest("PUT", "/api/v1/terms", map[string]any{
			"title": "Rental terms",
			"body":  "Check-in from 14:00.",
		}, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		terms = parseResponse(t, w).Data["terms"].(map[string]any)
		assert.Equal(t, 2.0, terms["version"])

		w = suite.makeRequest("GET", "/api/v1/terms/public", nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		public := parseResponse(t, w).Data
		assert.Equal(t, "Check-in from 14:00.", public["body"])
	})

	t.Run("email template crud", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/email-templates", map[string]any{
			"slug": "reservation-created",
			"name": "Reservation created",
			"body": "Thank you.",
		}, tok)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		tmpl := parseResponse(t, w).Data["email_template"].(map[string]any)

		w = suite.makeRequest("POST", "/api/v1/email-templates", map[string]any{
			"slug": "reservation-created",
			"name": "Duplicate",
			"body": "x",
		}, tok)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

		path := fmt.Sprintf("/api/v1/email-templates/%.0f", tmpl["id"].(float64))
		w = suite.makeRequest("DELETE", path, nil, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		w = suite.makeRequest("DELETE", path, nil, tok)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("occupancy and summary", func(t *testing.T) {
		bungalowID, customerID, _ := suite.createFixtures(t, tok)

		w := suite.makeRequest("POST", "/api/v1/reservations", map[string]any{
			"customer_id":    customerID,
			"bungalow_id":    bungalowID,
			"check_in_date":  "2027-06-02",
			"check_out_date": "2027-06-05",
			"guest_count":    2,
			"payment_amount": 500,
		}, tok)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = suite.makeRequest("GET", "/api/v1/reports/occupancy?from=2027-06-01&to=2027-06-11", nil, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		occ := parseResponse(t, w).Data["occupancy"].(map[string]any)
		assert.Equal(t, 1.0, occ["active_bungalows"])
		assert.Equal(t, 10.0, occ["available_nights"])
		assert.Equal(t, 3.0, occ["occupied_nights"])
		assert.Equal(t, 30.0, occ["occupancy_rate"])

		w = suite.makeRequest("GET", "/api/v1/reports/summary", nil, tok)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		summary := parseResponse(t, w).Data["summary"].(map[string]any)
		counts := summary["reservations"].(map[string]any)
		assert.Equal(t, 1.0, counts["pending"])
		assert.Equal(t, 500.0, summary["revenue_collected"])
		assert.Equal(t, 1000.0, summary["revenue_outstanding"])
	})
}

func TestFlow_AuthRequired(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.makeRequest("GET", "/api/v1/reservations", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = suite.makeRequest("GET", "/api/v1/reservations", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFlow_ValidationErrors(t *testing.T) {
	suite := setupTestSuite(t)
	tok := suite.staffToken(t)

	w := suite.makeRequest("POST", "/api/v1/reservations", map[string]any{
		"customer_id":    1,
		"bungalow_id":    1,
		"check_in_date":  "not-a-date",
		"check_out_date": "2027-06-06",
		"guest_count":    2,
	}, tok)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Errors, "check_in_date")

	w = suite.makeRequest("POST", "/api/v1/bungalows", map[string]any{
		"name": "No capacity",
	}, tok)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}
