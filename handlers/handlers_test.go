package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mini-ecommerce-api/config"
	"mini-ecommerce-api/handlers"
	"mini-ecommerce-api/models"
	"mini-ecommerce-api/routes"
	"mini-ecommerce-api/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type env struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *token.Service
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := config.OpenDB(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	tokens, err := token.NewService("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	r := gin.New()
	routes.Setup(r, handlers.New(db, tokens))
	return &env{router: r, db: db, tokens: tokens}
}

func (e *env) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// signup creates a user through the API and returns their token.
func (e *env) signup(t *testing.T, name, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/users/signup", "", gin.H{
		"name": name, "email": email, "password": "pw123456",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup %s: status %d body %s", email, w.Code, w.Body.String())
	}
	return decode(t, w)["token"].(string)
}

// adminToken promotes a fresh user to admin directly in the DB and logs in.
func (e *env) adminToken(t *testing.T) string {
	t.Helper()
	e.signup(t, "Admin", "admin@example.com")
	if err := e.db.Model(&models.User{}).Where("email = ?", "admin@example.com").
		Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	w := e.do(t, http.MethodPost, "/api/users/login", "", gin.H{
		"email": "admin@example.com", "password": "pw123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("admin login: status %d", w.Code)
	}
	return decode(t, w)["token"].(string)
}

// The scenario from the README: customer signup, role checks on catalog
// mutation, order placement with nested pending shipping.
func TestEndToEndOrderScenario(t *testing.T) {
	e := setup(t)

	aliceTok := e.signup(t, "Alice", "alice@example.com")

	// login again works and returns a usable token
	w := e.do(t, http.MethodPost, "/api/users/login", "", gin.H{
		"email": "alice@example.com", "password": "pw123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d", w.Code)
	}

	// customer may not create products
	product := gin.H{"name": "Widget", "price": 9.99, "stock": 10}
	w = e.do(t, http.MethodPost, "/api/products", aliceTok, product)
	if w.Code != http.StatusForbidden {
		t.Fatalf("customer create product: status %d, want 403", w.Code)
	}
	if decode(t, w)["kind"] != "forbidden" {
		t.Errorf("kind = %v, want forbidden", decode(t, w)["kind"])
	}

	adminTok := e.adminToken(t)
	w = e.do(t, http.MethodPost, "/api/products", adminTok, product)
	if w.Code != http.StatusCreated {
		t.Fatalf("admin create product: status %d body %s", w.Code, w.Body.String())
	}
	productID := decode(t, w)["product"].(map[string]any)["id"].(float64)

	// public read without any token
	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/products/%.0f", productID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("public product read: status %d", w.Code)
	}

	// alice places an order; shipping comes back nested and pending
	w = e.do(t, http.MethodPost, "/api/orders", aliceTok, gin.H{
		"address": "221B Baker St",
		"items":   []gin.H{{"product_id": productID, "quantity": 2}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("place order: status %d body %s", w.Code, w.Body.String())
	}
	order := decode(t, w)["order"].(map[string]any)
	shipping, ok := order["shipping"].(map[string]any)
	if !ok {
		t.Fatalf("order has no nested shipping: %v", order)
	}
	if shipping["status"] != "pending" {
		t.Errorf("shipping status = %v, want pending", shipping["status"])
	}
	if shipping["order_id"].(float64) != order["id"].(float64) {
		t.Errorf("shipping.order_id = %v, order.id = %v", shipping["order_id"], order["id"])
	}
}

func TestAuthFailures(t *testing.T) {
	e := setup(t)

	// missing token
	w := e.do(t, http.MethodGet, "/api/profile", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", w.Code)
	}

	// garbage token
	w = e.do(t, http.MethodGet, "/api/profile", "garbage", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", w.Code)
	}

	// expired token
	expiredSvc, err := token.NewService("test-secret", "HS256", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	e.signup(t, "Alice", "alice@example.com")
	var alice models.User
	if err := e.db.Where("email = ?", "alice@example.com").First(&alice).Error; err != nil {
		t.Fatal(err)
	}
	expired, err := expiredSvc.Issue(&alice)
	if err != nil {
		t.Fatal(err)
	}
	w = e.do(t, http.MethodGet, "/api/profile", expired, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expired token: status %d, want 401", w.Code)
	}
	if msg := decode(t, w)["error"]; msg != "Token expired" {
		t.Errorf("expired token message = %v", msg)
	}

	// wrong password at login
	w = e.do(t, http.MethodPost, "/api/users/login", "", gin.H{
		"email": "alice@example.com", "password": "nope1234",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status %d, want 401", w.Code)
	}

	// duplicate signup
	w = e.do(t, http.MethodPost, "/api/users/signup", "", gin.H{
		"name": "Alice Again", "email": "alice@example.com", "password": "pw123456",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup: status %d, want 409", w.Code)
	}
}

func TestShippingAccessControl(t *testing.T) {
	e := setup(t)
	adminTok := e.adminToken(t)
	aliceTok := e.signup(t, "Alice", "alice@example.com")
	bobTok := e.signup(t, "Bob", "bob@example.com")

	w := e.do(t, http.MethodPost, "/api/products", adminTok, gin.H{"name": "Widget", "price": 5, "stock": 10})
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: %d", w.Code)
	}
	productID := decode(t, w)["product"].(map[string]any)["id"].(float64)

	w = e.do(t, http.MethodPost, "/api/orders", aliceTok, gin.H{
		"address": "somewhere",
		"items":   []gin.H{{"product_id": productID, "quantity": 1}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("place order: %d %s", w.Code, w.Body.String())
	}
	shippingID := decode(t, w)["order"].(map[string]any)["shipping"].(map[string]any)["id"].(float64)
	path := fmt.Sprintf("/api/shipping/%.0f", shippingID)

	// owner reads and updates
	if w := e.do(t, http.MethodGet, path, aliceTok, nil); w.Code != http.StatusOK {
		t.Errorf("owner get shipping: %d", w.Code)
	}
	w = e.do(t, http.MethodPut, path, aliceTok, gin.H{"status": "shipped", "carrier": "DHL"})
	if w.Code != http.StatusOK {
		t.Errorf("owner update shipping: %d %s", w.Code, w.Body.String())
	}

	// stranger may not touch it
	if w := e.do(t, http.MethodGet, path, bobTok, nil); w.Code != http.StatusForbidden {
		t.Errorf("stranger get shipping: %d, want 403", w.Code)
	}
	if w := e.do(t, http.MethodPut, path, bobTok, gin.H{"status": "delivered"}); w.Code != http.StatusForbidden {
		t.Errorf("stranger update shipping: %d, want 403", w.Code)
	}

	// bad status value
	w = e.do(t, http.MethodPut, path, aliceTok, gin.H{"status": "teleported"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid status: %d, want 400", w.Code)
	}

	// legal status, illegal transition (shipped cannot go back to pending)
	w = e.do(t, http.MethodPut, path, aliceTok, gin.H{"status": "pending"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("backwards transition: %d, want 422", w.Code)
	}

	// delete is admin-only; the order survives
	if w := e.do(t, http.MethodDelete, path, aliceTok, nil); w.Code != http.StatusForbidden {
		t.Errorf("owner delete shipping: %d, want 403", w.Code)
	}
	if w := e.do(t, http.MethodDelete, path, adminTok, nil); w.Code != http.StatusOK {
		t.Errorf("admin delete shipping: %d", w.Code)
	}
	w = e.do(t, http.MethodGet, "/api/orders", aliceTok, nil)
	if w.Code != http.StatusOK || decode(t, w)["count"].(float64) != 1 {
		t.Errorf("order missing after shipping delete: %d %s", w.Code, w.Body.String())
	}
}

func TestInsufficientStockResponse(t *testing.T) {
	e := setup(t)
	adminTok := e.adminToken(t)
	aliceTok := e.signup(t, "Alice", "alice@example.com")

	w := e.do(t, http.MethodPost, "/api/products", adminTok, gin.H{"name": "Rare", "price": 100, "stock": 1})
	productID := decode(t, w)["product"].(map[string]any)["id"].(float64)

	w = e.do(t, http.MethodPost, "/api/orders", aliceTok, gin.H{
		"address": "somewhere",
		"items":   []gin.H{{"product_id": productID, "quantity": 5}},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("oversized order: status %d, want 422", w.Code)
	}
	if decode(t, w)["kind"] != "insufficient_stock" {
		t.Errorf("kind = %v, want insufficient_stock", decode(t, w)["kind"])
	}
}

func TestCartToOrderFlow(t *testing.T) {
	e := setup(t)
	adminTok := e.adminToken(t)
	aliceTok := e.signup(t, "Alice", "alice@example.com")

	w := e.do(t, http.MethodPost, "/api/products", adminTok, gin.H{"name": "Widget", "price": 4, "stock": 10})
	productID := decode(t, w)["product"].(map[string]any)["id"].(float64)

	w = e.do(t, http.MethodPost, "/api/cart/items", aliceTok, gin.H{"product_id": productID, "quantity": 3})
	if w.Code != http.StatusCreated {
		t.Fatalf("add cart item: %d %s", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodPost, "/api/orders/from-cart", aliceTok, gin.H{"address": "somewhere"})
	if w.Code != http.StatusCreated {
		t.Fatalf("order from cart: %d %s", w.Code, w.Body.String())
	}
	order := decode(t, w)["order"].(map[string]any)
	if order["total_amount"].(float64) != 12 {
		t.Errorf("total = %v, want 12", order["total_amount"])
	}

	// cart is empty afterwards
	w = e.do(t, http.MethodGet, "/api/cart", aliceTok, nil)
	cart := decode(t, w)["cart"].(map[string]any)
	if items, ok := cart["items"].([]any); ok && len(items) != 0 {
		t.Errorf("cart items after order = %d, want 0", len(items))
	}

	// and a second from-cart order is rejected
	w = e.do(t, http.MethodPost, "/api/orders/from-cart", aliceTok, gin.H{"address": "somewhere"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("order from empty cart: %d, want 400", w.Code)
	}
}

func TestAdminUserManagement(t *testing.T) {
	e := setup(t)
	adminTok := e.adminToken(t)
	aliceTok := e.signup(t, "Alice", "alice@example.com")

	// customers cannot list users
	if w := e.do(t, http.MethodGet, "/api/admin/users", aliceTok, nil); w.Code != http.StatusForbidden {
		t.Errorf("customer list users: %d, want 403", w.Code)
	}

	w := e.do(t, http.MethodGet, "/api/admin/users", adminTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin list users: %d", w.Code)
	}
	if decode(t, w)["count"].(float64) != 2 {
		t.Errorf("user count = %v, want 2", decode(t, w)["count"])
	}

	var alice models.User
	if err := e.db.Where("email = ?", "alice@example.com").First(&alice).Error; err != nil {
		t.Fatal(err)
	}

	// invalid role rejected
	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", alice.ID), adminTok, gin.H{"role": "superuser"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid role: %d, want 400", w.Code)
	}

	// promote alice
	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", alice.ID), adminTok, gin.H{"role": "admin"})
	if w.Code != http.StatusOK {
		t.Fatalf("promote: %d %s", w.Code, w.Body.String())
	}

	// her old token still carries the customer role until she logs in again
	if w := e.do(t, http.MethodGet, "/api/admin/users", aliceTok, nil); w.Code != http.StatusForbidden {
		t.Errorf("stale token role: %d, want 403", w.Code)
	}
	w = e.do(t, http.MethodPost, "/api/users/login", "", gin.H{"email": "alice@example.com", "password": "pw123456"})
	freshTok := decode(t, w)["token"].(string)
	if w := e.do(t, http.MethodGet, "/api/admin/users", freshTok, nil); w.Code != http.StatusOK {
		t.Errorf("fresh admin token: %d, want 200", w.Code)
	}
}
