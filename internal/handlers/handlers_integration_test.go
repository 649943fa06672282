package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"fashionstore/internal/catalog"
	"fashionstore/internal/handlers"
	"fashionstore/internal/middleware"
	"fashionstore/internal/models"
	"fashionstore/internal/repositories"
	"fashionstore/internal/services"
	"fashionstore/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds a Fiber app over in-memory SQLite with the full
// handler/service/repository stack wired the way main does it.
func setupApp(t *testing.T) (*fiber.App, repositories.OrderRepository) {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	// One named in-memory database per test, shared across the pool's
	// connections but isolated from other tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Order{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	cat := catalog.New()
	sessions := session.NewStore()

	authService := services.NewAuthService(userRepo, sessions, jwtSecret, []string{"admin@example.com"})
	cartService := services.NewCartService(sessions, cat)
	orderService := services.NewOrderService(orderRepo, userRepo, cartService, cat, nil)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(cat)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protectedRoutes)
	cartHandler.RegisterRoutes(protectedRoutes)
	orderHandler.RegisterRoutes(protectedRoutes)

	return app, orderRepo
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reqBody)
	assert.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var parsed map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func signupAndLogin(t *testing.T, app *fiber.App, name, email, password string) string {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":             name,
		"email":            email,
		"password":         password,
		"confirm_password": password,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestSignupValidationAndDuplicates(t *testing.T) {
	app, _ := setupApp(t)

	// Mismatched confirmation.
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":             "Test User",
		"email":            "dup@example.com",
		"password":         "Abc@1234",
		"confirm_password": "Abc@1235",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "passwords do not match", body["message"])

	// Weak password (no special character).
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":             "Test User",
		"email":            "dup@example.com",
		"password":         "Abc12345",
		"confirm_password": "Abc12345",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "uppercase")

	// First signup succeeds.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":             "Test User",
		"email":            "dup@example.com",
		"password":         "Abc@1234",
		"confirm_password": "Abc@1234",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same email again: conflict, no second row.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":             "Other User",
		"email":            "dup@example.com",
		"password":         "Abc@1234",
		"confirm_password": "Abc@1234",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "email already exists", body["message"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	app, _ := setupApp(t)
	signupAndLogin(t, app, "Test User", "user@example.com", "Abc@1234")

	// Wrong password and unknown email produce the identical message.
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "WrongPass@1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", body["message"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "Abc@1234",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", body["message"])
}

func TestCartFlow(t *testing.T) {
	app, _ := setupApp(t)
	token := signupAndLogin(t, app, "Test User", "cart@example.com", "Abc@1234")

	// Cart routes need a session.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/cart/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// shoes1 once, shirt2 twice.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]string{"product_id": "shoes1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	for i := 0; i < 2; i++ {
		resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]string{"product_id": "shirt2"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/cart/coupon", token, map[string]string{"code": "SAVE100"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 100, body["discount"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/cart/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3997, body["subtotal"])
	assert.InDelta(t, 719.46, body["gst"].(float64), 0.001)
	assert.EqualValues(t, 100, body["discount"])
	assert.InDelta(t, 4616.46, body["total"].(float64), 0.001)

	// An invalid coupon wipes the discount rather than keeping the old one.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/cart/coupon", token, map[string]string{"code": "INVALID"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["discount"])

	// Decreasing shoes1 at quantity 1 removes the line.
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/cart/items", token, map[string]string{
		"product_id": "shoes1",
		"action":     "decrease",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/cart/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	lines := body["lines"].([]interface{})
	assert.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, "shirt2", line["product_id"])
	assert.EqualValues(t, 2, line["quantity"])
}

func TestCheckoutFlow(t *testing.T) {
	app, orderRepo := setupApp(t)
	token := signupAndLogin(t, app, "Buyer", "buyer@example.com", "Abc@1234")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]string{"product_id": "shoes1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]string{"product_id": "shirt2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/cart/coupon", token, map[string]string{"code": "SAVE200"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Missing payment method: silent redirect, no order row, cart intact.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, map[string]string{})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	orders, err := orderRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, orders, 0)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/cart/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2998, body["subtotal"])

	// Real checkout.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, map[string]string{
		"payment_method": "card",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	order := body["order"].(map[string]interface{})
	assert.Equal(t, "Buyer", order["user_name"])
	assert.Equal(t, "buyer@example.com", order["user_email"])
	assert.Equal(t, "shoes1 x1, shirt2 x1", order["items"])
	// Raw re-sum: GST and the SAVE200 discount are not part of the
	// stored total.
	assert.EqualValues(t, 2998, order["total"])
	assert.Equal(t, "card", order["payment_method"])

	orders, err = orderRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, orders, 1)

	// The cart is empty afterward, discount included.
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/cart/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["subtotal"])
	assert.EqualValues(t, 0, body["discount"])

	// Checkout with the now-empty cart fails without a new row.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, map[string]string{
		"payment_method": "card",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	orders, err = orderRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestAdminOrderListing(t *testing.T) {
	app, _ := setupApp(t)

	userToken := signupAndLogin(t, app, "Plain User", "plain@example.com", "Abc@1234")
	adminToken := signupAndLogin(t, app, "Admin", "admin@example.com", "Abc@1234")

	// Place one order as the plain user.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", userToken, map[string]string{"product_id": "watch1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", userToken, map[string]string{
		"payment_method": "upi",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Non-admin tokens are rejected at the listing.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/orders/", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The admin sees the order.
	req, err := http.NewRequest(http.MethodGet, "/api/v1/orders/", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	adminResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	raw, _ := io.ReadAll(adminResp.Body)
	adminResp.Body.Close()
	assert.Equal(t, http.StatusOK, adminResp.StatusCode)

	var orders []map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &orders))
	assert.Len(t, orders, 1)
	assert.Equal(t, "Plain User", orders[0]["user_name"])
	assert.Equal(t, "watch1 x1", orders[0]["items"])
}

func TestLogoutClearsCart(t *testing.T) {
	app, _ := setupApp(t)
	token := signupAndLogin(t, app, "Test User", "logout@example.com", "Abc@1234")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]string{"product_id": "shoes1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The token still parses, but the session's cart state is gone.
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/cart/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["subtotal"])
	assert.Empty(t, body["lines"])
}

func TestProductRoutes(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(mustRequest(t, http.MethodGet, "/api/v1/products/"), -1)
	assert.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &products))
	assert.Len(t, products, 12)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/products/shoes1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sports Shoes", body["name"])
	assert.EqualValues(t, 1999, body["price"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/products/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func mustRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, path, nil)
	if err != nil {
		t.Fatalf("failed to build request %s %s: %v", method, path, err)
	}
	return req
}
