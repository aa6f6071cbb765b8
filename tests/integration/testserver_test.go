package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	accountapp "github.com/salon/backend/internal/application/account"
	catalogapp "github.com/salon/backend/internal/application/catalog"
	crmapp "github.com/salon/backend/internal/application/crm"
	menuapp "github.com/salon/backend/internal/application/menu"
	"github.com/salon/backend/internal/infrastructure/event"
	"github.com/salon/backend/internal/infrastructure/persistence"
	"github.com/salon/backend/internal/interfaces/http/handler"
	"github.com/salon/backend/internal/interfaces/http/middleware"
	"github.com/salon/backend/internal/interfaces/http/router"
)

// TestServer wraps the test database and HTTP engine for API testing.
// It wires every domain the same way cmd/server does, minus telemetry
// and the Redis menu cache.
type TestServer struct {
	DB     *TestDB
	Engine *gin.Engine
}

// NewTestServer creates a test server backed by a real database
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	testDB := NewTestDB(t)

	customerRepo := persistence.NewGormCustomerRepository(testDB.DB)
	productRepo := persistence.NewGormProductRepository(testDB.DB)
	clientRepo := persistence.NewGormClientRepository(testDB.DB)
	menuItemRepo := persistence.NewGormMenuItemRepository(testDB.DB)

	eventBus := event.NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, eventBus.Start(context.Background()))
	t.Cleanup(func() {
		_ = eventBus.Stop(context.Background())
	})

	customerService := crmapp.NewCustomerService(customerRepo, eventBus)
	productService := catalogapp.NewProductService(productRepo, eventBus)
	clientService := accountapp.NewClientService(clientRepo, eventBus)
	menuItemService := menuapp.NewMenuItemService(menuItemRepo, nil, eventBus)

	customerHandler := handler.NewCustomerHandler(customerService)
	productHandler := handler.NewProductHandler(productService)
	clientHandler := handler.NewClientHandler(clientService)
	menuItemHandler := handler.NewMenuItemHandler(menuItemService)

	middleware.SetupValidator()
	engine := gin.New()

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	crmRoutes := router.NewDomainGroup("crm", "/crm")
	crmRoutes.POST("/customers", customerHandler.Create)
	crmRoutes.GET("/customers", customerHandler.List)
	crmRoutes.GET("/customers/:id", customerHandler.Get)
	crmRoutes.PUT("/customers/:id", customerHandler.Update)
	crmRoutes.DELETE("/customers/:id", customerHandler.Delete)
	crmRoutes.POST("/customers/:id/points/earn", customerHandler.EarnPoints)
	crmRoutes.POST("/customers/:id/points/redeem", customerHandler.RedeemPoints)
	crmRoutes.POST("/customers/:id/visits", customerHandler.RecordVisit)
	crmRoutes.POST("/customers/:id/activate", customerHandler.Activate)
	crmRoutes.POST("/customers/:id/deactivate", customerHandler.Deactivate)

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/sku/:sku", productHandler.GetBySKU)
	catalogRoutes.GET("/products/:id", productHandler.Get)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)
	catalogRoutes.POST("/products/:id/stock/restock", productHandler.Restock)
	catalogRoutes.POST("/products/:id/stock/deduct", productHandler.DeductStock)
	catalogRoutes.PUT("/products/:id/stock/threshold", productHandler.SetLowStockThreshold)
	catalogRoutes.PUT("/products/:id/duration", productHandler.UpdateDuration)
	catalogRoutes.POST("/products/:id/activate", productHandler.Activate)
	catalogRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)

	accountRoutes := router.NewDomainGroup("accounts", "/accounts")
	accountRoutes.POST("/clients", clientHandler.Create)
	accountRoutes.GET("/clients", clientHandler.List)
	accountRoutes.GET("/clients/:id", clientHandler.Get)
	accountRoutes.PUT("/clients/:id", clientHandler.Update)
	accountRoutes.DELETE("/clients/:id", clientHandler.Delete)
	accountRoutes.POST("/clients/:id/contacts", clientHandler.AddSecondaryContact)
	accountRoutes.DELETE("/clients/:id/contacts/:email", clientHandler.RemoveSecondaryContact)
	accountRoutes.PUT("/clients/:id/contacts/primary", clientHandler.ReplacePrimaryContact)
	accountRoutes.POST("/clients/:id/charges", clientHandler.AddCharge)
	accountRoutes.POST("/clients/:id/payments", clientHandler.ProcessPayment)
	accountRoutes.PUT("/clients/:id/credit-terms", clientHandler.UpdateCreditTerms)
	accountRoutes.PUT("/clients/:id/contract", clientHandler.SetContractPeriod)
	accountRoutes.POST("/clients/:id/activate", clientHandler.Activate)
	accountRoutes.POST("/clients/:id/deactivate", clientHandler.Deactivate)

	menuRoutes := router.NewDomainGroup("menu", "/menu")
	menuRoutes.POST("/items", menuItemHandler.Create)
	menuRoutes.GET("/items", menuItemHandler.List)
	menuRoutes.GET("/items/:id", menuItemHandler.Get)
	menuRoutes.PUT("/items/:id", menuItemHandler.Update)
	menuRoutes.DELETE("/items/:id", menuItemHandler.Delete)
	menuRoutes.GET("/published", menuItemHandler.Published)
	menuRoutes.PUT("/items/:id/category", menuItemHandler.ChangeCategory)
	menuRoutes.PUT("/items/:id/duration", menuItemHandler.ChangeDuration)
	menuRoutes.PUT("/items/:id/price", menuItemHandler.ChangePrice)
	menuRoutes.PUT("/items/:id/services", menuItemHandler.SetIncludedServices)
	menuRoutes.PUT("/items/:id/requirements", menuItemHandler.SetRequirements)
	menuRoutes.PUT("/items/:id/benefits", menuItemHandler.SetBenefits)
	menuRoutes.PUT("/items/:id/advance-booking", menuItemHandler.SetAdvanceBooking)
	menuRoutes.PUT("/items/:id/seasonal-window", menuItemHandler.SetSeasonalWindow)
	menuRoutes.PUT("/items/:id/display-order", menuItemHandler.SetDisplayOrder)
	menuRoutes.PUT("/items/:id/tags", menuItemHandler.SetTags)
	menuRoutes.POST("/items/:id/activate", menuItemHandler.Activate)
	menuRoutes.POST("/items/:id/deactivate", menuItemHandler.Deactivate)

	r.Register(crmRoutes).
		Register(catalogRoutes).
		Register(accountRoutes).
		Register(menuRoutes)
	r.Setup()

	return &TestServer{
		DB:     testDB,
		Engine: engine,
	}
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	ts.Engine.ServeHTTP(w, req)
	return w
}

// APIResponse mirrors the standard response envelope for assertions
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Meta *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
	} `json:"meta,omitempty"`
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
