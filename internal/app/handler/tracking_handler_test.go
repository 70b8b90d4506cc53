package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/dto"
	"servicetrack/internal/app/repository"
	"servicetrack/internal/app/role"
	"servicetrack/internal/app/testutil"
	"servicetrack/internal/app/workflow"

	"github.com/gin-gonic/gin"
)

// Публичные маршруты можно проверить без авторизации и redis

func setupPublicRouter(t *testing.T) (*gin.Engine, *workflow.Engine, *repository.Repository, workflow.Actor) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := repository.NewWithDB(db)
	engine := workflow.New(repo)

	company := testutil.SeedCompany(t, db, "D001", "Дилер Тест")
	dealerUser := testutil.SeedUser(t, db, "dealer1", role.Dealer, &company.ID)
	dealer := workflow.Actor{
		UserID:    dealerUser.ID,
		Role:      role.Dealer,
		CompanyID: dealerUser.DealerCompanyID,
	}

	h := NewAPIHandler(repo, engine, nil, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/tracking/:serial", h.TrackBySerial)
	r.GET("/api/products", h.GetProducts)

	return r, engine, repo, dealer
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTrackingEndpoint(t *testing.T) {
	r, engine, repo, dealer := setupPublicRouter(t)

	product := &ds.Product{Name: "AZ-15", Category: ds.CategorySubwoofer, IsActive: true, CreatedAt: time.Now()}
	if err := repo.CreateProduct(product); err != nil {
		t.Fatal(err)
	}

	request, err := engine.CreateRequest(workflow.CreateRequestInput{
		SerialNumber:       "TRACK-001",
		ProductID:          product.ID,
		PurchaseDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		WarrantyStatus:     ds.WarrantyRepair,
		ProblemDescription: "хрип на низких",
		CustomerName:       "Кузнецов",
		CustomerPhone:      "+79991112233",
	}, dealer)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := engine.BatchAndSend([]uint{request.ID}, dealer); err != nil {
		t.Fatal(err)
	}

	// регистр серийника не важен
	w := doGet(r, "/api/tracking/track-001")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp dto.TrackingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.SerialNumber != "TRACK-001" {
		t.Errorf("serial = %s", resp.SerialNumber)
	}
	if resp.Status != ds.StatusSentToService {
		t.Errorf("status = %s", resp.Status)
	}
	if len(resp.Transitions) != 2 {
		t.Errorf("expected 2 transitions, got %d", len(resp.Transitions))
	}

	// публичный трекинг не раскрывает данные покупателя
	var raw map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &raw)
	if _, found := raw["customer_name"]; found {
		t.Error("tracking response must not expose customer data")
	}

	w = doGet(r, "/api/tracking/UNKNOWN-999")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown serial status = %d", w.Code)
	}
}

func TestProductsEndpoint(t *testing.T) {
	r, _, repo, _ := setupPublicRouter(t)

	active := &ds.Product{Name: "AMP-2.150", Category: ds.CategoryAmplifier, IsActive: true, CreatedAt: time.Now()}
	if err := repo.CreateProduct(active); err != nil {
		t.Fatal(err)
	}
	hidden := &ds.Product{Name: "OLD-10", Category: ds.CategorySubwoofer, IsActive: true, CreatedAt: time.Now()}
	if err := repo.CreateProduct(hidden); err != nil {
		t.Fatal(err)
	}
	// логическое удаление скрывает товар из каталога
	if err := repo.DeleteProduct(hidden.ID); err != nil {
		t.Fatal(err)
	}

	w := doGet(r, "/api/products")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp dto.ProductListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 active product, got %d", resp.Total)
	}
	if resp.Products[0].Name != "AMP-2.150" {
		t.Errorf("product name = %s", resp.Products[0].Name)
	}

	w = doGet(r, "/api/products?search=amp")
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 1 {
		t.Errorf("search must match case-insensitively, got %d", resp.Total)
	}
}
