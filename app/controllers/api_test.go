package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/souqdz/souq/app/models"
	"github.com/souqdz/souq/app/repositories"
	"github.com/souqdz/souq/app/routes"
	"github.com/souqdz/souq/app/services"
	"github.com/souqdz/souq/pkg/auth"
	"github.com/souqdz/souq/pkg/database"
	"github.com/souqdz/souq/pkg/router"
	"github.com/souqdz/souq/pkg/ws"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	// Config values must be in place before the first config.Load().
	os.Setenv("SUPABASE_URL", "https://example.supabase.co")
	os.Setenv("SUPABASE_ANON_KEY", "anon-key")
	os.Setenv("CLOUDINARY_CLOUD_NAME", "demo-cloud")
	os.Setenv("CLOUDINARY_PRESET", "unsigned")
	os.Setenv("WHATSAPP_NUMBER", "213555000111")
	os.Exit(m.Run())
}

func setupAPI(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.Order{}, &models.User{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	r := router.New()
	hub := ws.NewHub()
	go hub.Run()
	routes.RegisterAPI(r, hub)
	return r.Handler()
}

func seedProduct(t *testing.T, stock int) models.Product {
	t.Helper()
	svc := services.NewProductService(
		repositories.NewProductRepository(),
		repositories.NewCategoryRepository(),
	)
	product, err := svc.Create(services.ProductInput{
		Name:    "Blue Sneakers",
		Price:   3000,
		Stock:   stock,
		Gallery: []string{"a.jpg"},
	})
	require.NoError(t, err)
	return product
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestConfigProxy(t *testing.T) {
	h := setupAPI(t)

	rec := doJSON(t, h, http.MethodGet, "/api/config", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, map[string]string{
		"supabaseUrl":      "https://example.supabase.co",
		"supabaseKey":      "anon-key",
		"cloudinaryName":   "demo-cloud",
		"cloudinaryPreset": "unsigned",
	}, body)
}

func TestProductShow(t *testing.T) {
	h := setupAPI(t)
	product := seedProduct(t, 2)

	rec := doJSON(t, h, http.MethodGet, "/api/products/"+product.Slug, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), product.Slug)

	rec = doJSON(t, h, http.MethodGet, "/api/products/no-such-slug", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	h := setupAPI(t)
	product := seedProduct(t, 2)

	rec := doJSON(t, h, http.MethodGet, "/api/search?q=sneakers", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), product.Slug)

	rec = doJSON(t, h, http.MethodGet, "/api/search?q=zzz", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "/shop")
}

func TestCheckoutFlow(t *testing.T) {
	h := setupAPI(t)
	product := seedProduct(t, 2)

	rec := doJSON(t, h, http.MethodPost, "/api/orders", map[string]interface{}{
		"product_slug":  product.Slug,
		"customer_name": "Amine",
		"phone":         "0555123456",
		"wilaya":        "Alger",
		"quantity":      1,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "wa.me/213555000111")
	require.Contains(t, rec.Body.String(), "tracking_token")
}

func TestShippingQuote(t *testing.T) {
	h := setupAPI(t)

	rec := doJSON(t, h, http.MethodGet, "/api/shipping-quote?wilaya=Alger&type=desk", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"delivery_price":300`)

	rec = doJSON(t, h, http.MethodGet, "/api/shipping-quote", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func seedAdmin(t *testing.T) string {
	t.Helper()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	user := models.User{Name: "Admin", Email: "admin@souq.local", Password: hash, Role: "admin"}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := auth.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

func TestAdminGate(t *testing.T) {
	h := setupAPI(t)
	token := seedAdmin(t)

	// No credentials → 401.
	rec := doJSON(t, h, http.MethodGet, "/api/admin/orders", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Bearer token → 200.
	rec = doJSON(t, h, http.MethodGet, "/api/admin/orders", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminLogin(t *testing.T) {
	h := setupAPI(t)
	seedAdmin(t)

	rec := doJSON(t, h, http.MethodPost, "/api/admin/login", map[string]string{
		"email":    "admin@souq.local",
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "token")

	rec = doJSON(t, h, http.MethodPost, "/api/admin/login", map[string]string{
		"email":    "admin@souq.local",
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginRejectsAuthenticated(t *testing.T) {
	h := setupAPI(t)
	token := seedAdmin(t)

	rec := doJSON(t, h, http.MethodPost, "/api/admin/login", map[string]string{
		"email":    "admin@souq.local",
		"password": "secret123",
	}, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminOrderStatus(t *testing.T) {
	h := setupAPI(t)
	token := seedAdmin(t)
	product := seedProduct(t, 1)

	rec := doJSON(t, h, http.MethodPost, "/api/orders", map[string]interface{}{
		"product_slug":  product.Slug,
		"customer_name": "Amine",
		"phone":         "0555123456",
		"wilaya":        "Alger",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			Order struct {
				ID uint `json:"id"`
			} `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	authHeader := map[string]string{"Authorization": "Bearer " + token}
	path := fmt.Sprintf("/api/admin/orders/%d/status", created.Data.Order.ID)

	rec = doJSON(t, h, http.MethodPatch, path, map[string]string{"status": "delivered"}, authHeader)
	require.Equal(t, http.StatusOK, rec.Code)

	// Contacting after delivery is rejected.
	rec = doJSON(t, h, http.MethodPatch, path, map[string]string{"status": "contacted"}, authHeader)
	require.Equal(t, http.StatusConflict, rec.Code)
}
