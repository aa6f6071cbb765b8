package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createMenuItemRequest(name string, displayOrder int) map[string]interface{} {
	return map[string]interface{}{
		"name":             name,
		"description":      "A signature service on the published menu",
		"category":         "HAIRCUTS",
		"duration_minutes": 45,
		"price":            55.00,
		"display_order":    displayOrder,
	}
}

func TestMenuItemAPI_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := NewTestServer(t)

	var itemID string

	t.Run("Create menu item", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/menu/items", createMenuItemRequest("Signature Haircut", 1))
		assert.Equal(t, http.StatusCreated, w.Code)

		data := decodeResponse(t, w).Data.(map[string]interface{})
		itemID = data["id"].(string)
		assert.Equal(t, "Signature Haircut", data["name"])
		assert.Equal(t, "HAIRCUTS", data["category"])
		assert.Equal(t, float64(45), data["duration_minutes"])
		assert.Equal(t, float64(1), data["display_order"])
		assert.Equal(t, "active", data["status"])
	})

	t.Run("Duplicate display order is rejected", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/menu/items", createMenuItemRequest("Another Cut", 1))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Duration must align to the slot grid", func(t *testing.T) {
		reqBody := createMenuItemRequest("Odd Duration", 2)
		reqBody["duration_minutes"] = 50

		w := ts.Request(http.MethodPost, "/api/v1/menu/items", reqBody)
		assert.GreaterOrEqual(t, w.Code, 400)
	})

	t.Run("Change price", func(t *testing.T) {
		w := ts.Request(http.MethodPut, "/api/v1/menu/items/"+itemID+"/price",
			map[string]interface{}{"price": 65.00})
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, "65", data["price"])
	})

	t.Run("Change display order", func(t *testing.T) {
		w := ts.Request(http.MethodPut, "/api/v1/menu/items/"+itemID+"/display-order",
			map[string]interface{}{"display_order": 5})
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, float64(5), data["display_order"])
	})

	t.Run("Set tags and requirements", func(t *testing.T) {
		w := ts.Request(http.MethodPut, "/api/v1/menu/items/"+itemID+"/tags",
			map[string]interface{}{"tags": []string{"popular", "classic"}})
		assert.Equal(t, http.StatusOK, w.Code)

		w = ts.Request(http.MethodPut, "/api/v1/menu/items/"+itemID+"/requirements",
			map[string]interface{}{"items": []string{"Arrive 10 minutes early"}})
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Len(t, data["tags"].([]interface{}), 2)
	})

	t.Run("Delete menu item", func(t *testing.T) {
		w := ts.Request(http.MethodDelete, "/api/v1/menu/items/"+itemID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = ts.Request(http.MethodGet, "/api/v1/menu/items/"+itemID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMenuItemAPI_Published(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := NewTestServer(t)

	// Three items out of order, one of which gets deactivated
	ids := make(map[string]string)
	for name, order := range map[string]int{
		"Balayage":      30,
		"Root Touch-up": 10,
		"Blowout":       20,
	} {
		reqBody := createMenuItemRequest(name, order)
		reqBody["category"] = "HAIR_COLORING"

		w := ts.Request(http.MethodPost, "/api/v1/menu/items", reqBody)
		require.Equal(t, http.StatusCreated, w.Code)
		ids[name] = decodeResponse(t, w).Data.(map[string]interface{})["id"].(string)
	}

	w := ts.Request(http.MethodPost, "/api/v1/menu/items/"+ids["Blowout"]+"/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("Published menu lists active items in display order", func(t *testing.T) {
		w := ts.Request(http.MethodGet, "/api/v1/menu/published", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		items := decodeResponse(t, w).Data.([]interface{})
		require.Len(t, items, 2)
		assert.Equal(t, "Root Touch-up", items[0].(map[string]interface{})["name"])
		assert.Equal(t, "Balayage", items[1].(map[string]interface{})["name"])
	})

	t.Run("Reactivated item reappears", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/menu/items/"+ids["Blowout"]+"/activate", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = ts.Request(http.MethodGet, "/api/v1/menu/published", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		items := decodeResponse(t, w).Data.([]interface{})
		assert.Len(t, items, 3)
	})

	t.Run("Package items require included services", func(t *testing.T) {
		reqBody := map[string]interface{}{
			"name":             "Bridal Package",
			"description":      "Hair, makeup and nails for the big day",
			"category":         "BRIDAL_PACKAGES",
			"duration_minutes": 180,
			"price":            350.00,
			"is_package":       true,
			"display_order":    40,
		}

		w := ts.Request(http.MethodPost, "/api/v1/menu/items", reqBody)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		reqBody["included_services"] = []string{"Bridal hair styling", "Makeup", "Manicure"}
		w = ts.Request(http.MethodPost, "/api/v1/menu/items", reqBody)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
