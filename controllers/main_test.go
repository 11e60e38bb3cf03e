package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/MOON-roa-png/BodegaMati/cart"
	"github.com/MOON-roa-png/BodegaMati/config"
	"github.com/MOON-roa-png/BodegaMati/controllers"
	"github.com/MOON-roa-png/BodegaMati/models"
	"github.com/MOON-roa-png/BodegaMati/routes"
	"github.com/MOON-roa-png/BodegaMati/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openTestDB connects to the postgres instance described by the PG* env
// vars and skips the test when none is reachable. Row locking (SELECT ...
// FOR UPDATE) is load-bearing here, so an embedded stand-in is no use.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr("PGHOST", "localhost"),
		envOr("PGPORT", "5432"),
		envOr("PGUSER", "postgres"),
		envOr("PGPASSWORD", "postgres"),
		envOr("PGDATABASE", "bodega_test"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("skipping: could not connect to postgres: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Product{},
		&models.Purchase{},
		&models.Sale{},
		&models.SaleLine{},
		&models.StockMovement{},
	); err != nil {
		t.Fatalf("auto-migrate failed: %v", err)
	}
	return db
}

// setupTest wires a clean database, a fresh in-memory cart store and a
// router, exactly as main does minus the listener.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	db := openTestDB(t)
	if err := db.Exec(`TRUNCATE TABLE stock_movements, sale_lines, sales,
		purchases, products, suppliers, users RESTART IDENTITY CASCADE`).Error; err != nil {
		t.Fatalf("truncate failed: %v", err)
	}

	config.DB = db
	controllers.Carts = cart.NewMemoryStore()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// client plays one authenticated browser session: it carries the bearer
// token and the cart cookie across requests.
type client struct {
	t       *testing.T
	r       *gin.Engine
	token   string
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, r *gin.Engine, role string) *client {
	t.Helper()
	token, err := utils.GenerateToken(1, "tester", role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &client{t: t, r: r, token: token, cookies: make(map[string]*http.Cookie)}
}

func (cl *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	cl.t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			cl.t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	for _, ck := range cl.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	cl.r.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		cl.cookies[ck.Name] = ck
	}
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp.Data
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}

func seedProduct(t *testing.T, name string, salePrice int64, stock int) *models.Product {
	t.Helper()
	p := models.Product{
		Name:          name,
		PurchasePrice: salePrice / 2,
		SalePrice:     salePrice,
		Stock:         stock,
		StockMinimum:  5,
	}
	if err := config.DB.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &p
}

func reloadProduct(t *testing.T, id uint) *models.Product {
	t.Helper()
	var p models.Product
	if err := config.DB.First(&p, id).Error; err != nil {
		t.Fatalf("reload product %d: %v", id, err)
	}
	return &p
}
