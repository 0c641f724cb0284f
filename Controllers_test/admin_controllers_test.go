package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/accelconnect/restauration-gateway/controllers"
	"github.com/accelconnect/restauration-gateway/models"
	"github.com/accelconnect/restauration-gateway/services"
	"github.com/accelconnect/restauration-gateway/utils"
)

func setupAdminRouter(backendURL string, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	backend := services.NewBackendClient(backendURL)
	orders := services.NewOrderClient(backend)
	wallets := services.NewWalletClient(backend)

	adminCtrl := controllers.NewAdminController(orders, wallets)
	adminCtrl.Now = func() time.Time { return now }

	admin := router.Group("/api/admin")
	admin.Use(fakeAuth("admin1", "admin"))
	admin.GET("/dashboard", adminCtrl.GetDashboard)
	admin.GET("/dashboard/export", adminCtrl.ExportOrdersCSV)
	admin.POST("/payments/validate", adminCtrl.ValidatePayments)
	return router
}

func adminBackend(orders []models.Order) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/orders/by-date", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(orders)
	})
	mux.HandleFunc("/wallet/admin/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.UserWalletStats{
			{UserID: 10, Email: "awa@accelconnect.com", Balance: 3500},
		})
	})
	mux.HandleFunc("/admin/payments/validate", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.PaymentValidationResponse{
			Success:        true,
			AffectedOrders: 12,
			AffectedUsers:  5,
			PaymentDate:    "2026-03-06",
		})
	})
	return httptest.NewServer(mux)
}

func adminOrders() []models.Order {
	return []models.Order{
		{
			ID: 1, UserID: 10, Username: "awa", OrderDate: "2026-03-04",
			TotalAmount: 2000, Status: models.OrderStatusConfirmed,
			Items: []models.OrderItem{
				{MealID: 1, MealName: "Thieboudienne", RestaurantID: 1, RestaurantName: "Chez Fatou", Quantity: 2, UnitPrice: 1500, Subtotal: 3000},
			},
		},
	}
}

func TestGetDashboard(t *testing.T) {
	utils.InitLogger()
	server := adminBackend(adminOrders())
	defer server.Close()

	router := setupAdminRouter(server.URL, wednesdayMorning)
	w := doJSONRequest(t, router, "GET", "/api/admin/dashboard?date=2026-03-04", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "2026-03-04", data["date"])

	global := data["globalStats"].(map[string]interface{})
	assert.Equal(t, float64(1), global["totalOrders"])
	assert.Equal(t, float64(2000), global["totalAmount"])

	users := data["userOrders"].([]interface{})
	awa := users[0].(map[string]interface{})
	assert.Equal(t, "awa@accelconnect.com", awa["email"])
}

func TestExportDashboardCSV(t *testing.T) {
	utils.InitLogger()
	server := adminBackend(adminOrders())
	defer server.Close()

	router := setupAdminRouter(server.URL, wednesdayMorning)
	w := doJSONRequest(t, router, "GET", "/api/admin/dashboard/export?date=2026-03-04&restaurant_id=1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "commandes_2026-03-04_restaurant_1.csv")

	body := w.Body.String()
	assert.Contains(t, body, "Utilisateur")
	assert.True(t, strings.Contains(body, "awa"))
}

func TestValidatePaymentsOnlyOnFriday(t *testing.T) {
	utils.InitLogger()
	server := adminBackend(nil)
	defer server.Close()

	// Wednesday: the gate rejects before the backend is called.
	router := setupAdminRouter(server.URL, wednesdayMorning)
	w := doJSONRequest(t, router, "POST", "/api/admin/payments/validate", map[string]interface{}{
		"startDate": "2026-03-02",
		"endDate":   "2026-03-06",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Friday: the settlement goes through.
	friday := time.Date(2026, 3, 6, 15, 0, 0, 0, time.UTC)
	router = setupAdminRouter(server.URL, friday)
	w = doJSONRequest(t, router, "POST", "/api/admin/payments/validate", map[string]interface{}{
		"startDate": "2026-03-02",
		"endDate":   "2026-03-06",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["success"])
	assert.Equal(t, float64(12), data["affectedOrders"])
}
