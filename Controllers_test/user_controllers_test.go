package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/accelconnect/restauration-gateway/controllers"
	"github.com/accelconnect/restauration-gateway/middlewares"
	"github.com/accelconnect/restauration-gateway/models"
	"github.com/accelconnect/restauration-gateway/services"
	"github.com/accelconnect/restauration-gateway/utils"
)

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.CartSnapshot{}))
	return db
}

func setupUserRouter(db *gorm.DB, registry *services.CartRegistry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db, registry)

	router.POST("/auth/register", userCtrl.Register)
	router.POST("/auth/login", userCtrl.Login)

	api := router.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	api.GET("/profile", userCtrl.GetProfile)
	api.POST("/logout", userCtrl.Logout)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t)
	registry := services.NewCartRegistry(services.NewMemorySnapshotStore())
	router := setupUserRouter(db, registry)

	register := map[string]interface{}{
		"name":     "Service Account",
		"email":    "svc@accelconnect.com",
		"password": "s3cretpass",
		"role":     "admin",
	}
	w := doJSONRequest(t, router, "POST", "/auth/register", register)
	assert.Equal(t, http.StatusCreated, w.Code)

	login := map[string]interface{}{
		"email":    "svc@accelconnect.com",
		"password": "s3cretpass",
	}
	w = doJSONRequest(t, router, "POST", "/auth/login", login)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "admin", data["user_role"])
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t)
	registry := services.NewCartRegistry(services.NewMemorySnapshotStore())
	router := setupUserRouter(db, registry)

	doJSONRequest(t, router, "POST", "/auth/register", map[string]interface{}{
		"name":     "Service Account",
		"email":    "svc@accelconnect.com",
		"password": "s3cretpass",
		"role":     "user",
	})

	w := doJSONRequest(t, router, "POST", "/auth/login", map[string]interface{}{
		"email":    "svc@accelconnect.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t)
	registry := services.NewCartRegistry(services.NewMemorySnapshotStore())
	router := setupUserRouter(db, registry)

	w := doJSONRequest(t, router, "POST", "/auth/register", map[string]interface{}{
		"name":     "Bad Role",
		"email":    "bad@accelconnect.com",
		"password": "s3cretpass",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t)
	registry := services.NewCartRegistry(services.NewMemorySnapshotStore())
	router := setupUserRouter(db, registry)

	doJSONRequest(t, router, "POST", "/auth/register", map[string]interface{}{
		"name":     "Service Account",
		"email":    "svc@accelconnect.com",
		"password": "s3cretpass",
		"role":     "user",
	})
	w := doJSONRequest(t, router, "POST", "/auth/login", map[string]interface{}{
		"email":    "svc@accelconnect.com",
		"password": "s3cretpass",
	})
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["data"].(map[string]interface{})["token"].(string)

	profileReq := func() *http.Request {
		req, _ := http.NewRequest("GET", "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	w = performRequest(router, profileReq())
	assert.Equal(t, http.StatusOK, w.Code)

	logout, _ := http.NewRequest("POST", "/api/logout", nil)
	logout.Header.Set("Authorization", "Bearer "+token)
	w = performRequest(router, logout)
	assert.Equal(t, http.StatusOK, w.Code)

	// The same token no longer authenticates.
	w = performRequest(router, profileReq())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
