package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tailorpos/internal/database"
	"tailorpos/internal/middleware"
	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newClientRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	svc := service.NewClientService(repository.NewClientRepository(db))
	router := gin.New()
	NewClientHandler(svc).RegisterRoutes(router.Group(""))
	return router
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "22222222-2222-2222-2222-222222222222",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return "Bearer " + signed
}

func doJSON(router *gin.Engine, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestClientEndpointsRequireAuth(t *testing.T) {
	router := newClientRouter(t)

	w := doJSON(router, "GET", "/clients", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated list: status = %d, want 401", w.Code)
	}

	// Tailors have no business in the client registry.
	w = doJSON(router, "GET", "/clients", bearer(t, model.RoleTailor), "")
	if w.Code != http.StatusForbidden {
		t.Errorf("tailor list: status = %d, want 403", w.Code)
	}
}

func TestClientRegistrationFlow(t *testing.T) {
	router := newClientRouter(t)
	auth := bearer(t, model.RoleCashier)

	w := doJSON(router, "POST", "/clients", auth,
		`{"name":"Jamie Doe","phone":"0911222333","gender":"female"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body: %s", w.Code, w.Body.String())
	}

	// Duplicate phone is a conflict.
	w = doJSON(router, "POST", "/clients", auth,
		`{"name":"Other Person","phone":"0911222333","gender":"male"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate phone: status = %d, want 409, body: %s", w.Code, w.Body.String())
	}

	// Counter lookup by phone.
	w = doJSON(router, "GET", "/clients/phone/0911222333", auth, "")
	if w.Code != http.StatusOK {
		t.Errorf("lookup by phone: status = %d, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Jamie Doe") {
		t.Errorf("lookup body missing client name: %s", w.Body.String())
	}

	w = doJSON(router, "GET", "/clients/phone/0000000000", auth, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown phone: status = %d, want 404", w.Code)
	}

	// Store a card, then a second card must be refused.
	cardBody := `{"card_number":"4111111111111111","cvv":"123","expiry_date":"06/30","card_type":"Visa"}`
	w = doJSON(router, "POST", "/clients/0911222333/card", auth, cardBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("add card: status = %d, body: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "4111111111111111") {
		t.Error("card response leaks the full card number")
	}

	w = doJSON(router, "POST", "/clients/0911222333/card", auth, cardBody)
	if w.Code != http.StatusConflict {
		t.Errorf("second card: status = %d, want 409, body: %s", w.Code, w.Body.String())
	}

	// Malformed payload is rejected at binding.
	w = doJSON(router, "POST", "/clients", auth, `{"name":"No Phone"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing phone: status = %d, want 400", w.Code)
	}
}
