package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/restopos/ticket-engine/database"
	"github.com/restopos/ticket-engine/models"
	"github.com/restopos/ticket-engine/router"
	"github.com/restopos/ticket-engine/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupIntegrationDB -> in-memory sqlite, migrated and seeded
func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Create(&models.Table{TableNumber: "T7", Capacity: 4})
	db.Create(&models.MenuItem{Name: "Thali Special", Price: decimal.NewFromInt(100)})
	db.Create(&models.MenuItem{Name: "Lassi", Price: decimal.NewFromInt(50)})
	return db
}

func request(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestTicketLifecycleEndToEnd walks the whole flow:
// 1. Create a dine-in order (2x100 + 1x50 -> total 250)
// 2. Walk the kitchen statuses pending -> preparing -> ready -> served
// 3. Pay 300 cash -> change 50, printCount 1
// 4. Reprint -> printCount 2, same lines
// 5. Pay again -> rejected
func TestTicketLifecycleEndToEnd(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db)

	// 1. Create order
	w := request(t, r, http.MethodPost, "/orders", map[string]interface{}{
		"table_id":   1,
		"order_type": "dine-in",
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 2, "unit_price": "100"},
			{"menu_item_id": 2, "quantity": 1, "unit_price": "50"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	data := created.Data.(map[string]interface{})
	ticketNumber := data["ticket_number"].(string)
	assert.Equal(t, "TKT0001", ticketNumber)

	order := data["order"].(map[string]interface{})
	total, err := decimal.NewFromString(fmt.Sprintf("%v", order["total_amount"]))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(250)), "total %s", total)

	// 2. Kitchen trajectory, in order
	for _, status := range []string{"preparing", "ready", "served"} {
		w = request(t, r, http.MethodPatch, "/orders/"+ticketNumber+"/status", gin.H{"status": status})
		require.Equal(t, http.StatusOK, w.Code, "transition to %s: %s", status, w.Body.String())
	}

	// 3. Settle with cash 300
	w = request(t, r, http.MethodPost, "/orders/"+ticketNumber+"/payment", gin.H{
		"amount": 300, "method": "cash", "cashier": "Ravi",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var paid utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paid))
	settled := paid.Data.(map[string]interface{})
	assert.Equal(t, float64(1), settled["print_count"])

	// Receipt artifact carries the change line
	w = request(t, r, http.MethodGet, "/orders/"+ticketNumber+"/receipt.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	text := w.Body.String()
	assert.Contains(t, text, "TICKET: "+ticketNumber)
	assert.Contains(t, text, "₹250.00")
	assert.Contains(t, text, "Change:")
	assert.Contains(t, text, "₹50.00")
	assert.Contains(t, text, "Served by: Ravi")

	// 4. Reprint bumps the counter (receipt.txt above already bumped once)
	w = request(t, r, http.MethodPost, "/orders/"+ticketNumber+"/reprint", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reprinted utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reprinted))
	reprintData := reprinted.Data.(map[string]interface{})
	st := reprintData["settled_ticket"].(map[string]interface{})
	assert.Equal(t, float64(3), st["print_count"])

	// 5. A second payment attempt is rejected
	w = request(t, r, http.MethodPost, "/orders/"+ticketNumber+"/payment", gin.H{
		"amount": 300, "method": "cash",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The order reflects settlement
	w = request(t, r, http.MethodGet, "/orders/"+ticketNumber, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	orderDetail := detail.Data.(map[string]interface{})
	assert.Equal(t, "served", orderDetail["status"])
	assert.Equal(t, "paid", orderDetail["payment_status"])
	assert.Len(t, orderDetail["payments"], 1)
}
