package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/recipevault/recipevault/db"
	"github.com/recipevault/recipevault/internal/auth"
	"github.com/recipevault/recipevault/internal/models"
	"github.com/recipevault/recipevault/internal/router"
	"github.com/recipevault/recipevault/internal/store"
	"github.com/recipevault/recipevault/internal/users"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// newTestServer wires the real router against an in-memory database. The
// database is named after the test so parallel packages do not share state.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")

	if err := auth.InitJWTSecret(); err != nil {
		t.Fatalf("initializing JWT secret: %v", err)
	}

	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")

	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db.DB = gdb

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	return router.NewRouter()
}

func createTestUser(t *testing.T, email string) (*models.User, string) {
	t.Helper()

	user, err := users.Create(db.DB, email, "testpassword", "")
	if err != nil {
		t.Fatalf("creating user %q: %v", email, err)
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	return user, token
}

func createTestRecipe(t *testing.T, userID uint, title string) models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		Title:       title,
		Description: "Sample description",
		TimeMinutes: 5,
		Price:       decimal.NewFromFloat(5.25),
		Link:        "http://example.com/recipe.pdf",
		UserID:      userID,
	}

	if err := store.NewRecipeStore(db.DB).Create(&recipe, nil, nil); err != nil {
		t.Fatalf("creating recipe %q: %v", title, err)
	}

	return recipe
}

func doRequest(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}
