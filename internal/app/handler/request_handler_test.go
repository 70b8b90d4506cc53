package handler

import (
	"net/http"
	"testing"

	"servicetrack/internal/app/repository"
	"servicetrack/internal/app/role"
	"servicetrack/internal/app/testutil"
	"servicetrack/internal/app/workflow"

	"github.com/gin-gonic/gin"
)

func TestDealerWithoutCompanyCannotList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewWithDB(db)
	engine := workflow.New(repo)

	// дилер без компании: регистрация такого не допускает,
	// но списки защищаются и на случай битых данных
	orphan := testutil.SeedUser(t, db, "orphan", role.Dealer, nil)

	h := NewAPIHandler(repo, engine, nil, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	asUser := func(c *gin.Context) {
		c.Set("userID", orphan.ID)
		c.Set("userRole", orphan.Role)
	}
	r.GET("/api/requests", asUser, h.GetRequests)
	r.GET("/api/packages", asUser, h.GetPackages)

	for _, path := range []string{"/api/requests", "/api/packages"} {
		w := doGet(r, path)
		if w.Code != http.StatusForbidden {
			t.Errorf("GET %s: status = %d, want %d", path, w.Code, http.StatusForbidden)
		}
	}
}
