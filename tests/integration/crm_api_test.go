// Package integration provides integration testing for the salon backend API.
// This file covers the CRM customer endpoints against a real database.
package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerAPI_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := NewTestServer(t)

	var createdID string

	t.Run("Create customer", func(t *testing.T) {
		reqBody := map[string]interface{}{
			"name":  "Maria Lopez",
			"email": "maria@example.com",
			"phone": "+12125550400",
			"notes": "Prefers morning appointments",
		}

		w := ts.Request(http.MethodPost, "/api/v1/crm/customers", reqBody)
		assert.Equal(t, http.StatusCreated, w.Code)

		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		createdID = data["id"].(string)
		assert.NotEmpty(t, createdID)
		assert.Equal(t, "Maria Lopez", data["name"])
		assert.Equal(t, "maria@example.com", data["email"])
		assert.Equal(t, "active", data["status"])
		assert.Equal(t, float64(0), data["loyalty_points"])
	})

	t.Run("Get customer by ID", func(t *testing.T) {
		require.NotEmpty(t, createdID)

		w := ts.Request(http.MethodGet, "/api/v1/crm/customers/"+createdID, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, createdID, data["id"])
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		reqBody := map[string]interface{}{
			"name":  "Another Maria",
			"email": "maria@example.com",
			"phone": "+12125550401",
		}

		w := ts.Request(http.MethodPost, "/api/v1/crm/customers", reqBody)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
	})

	t.Run("Invalid phone fails validation", func(t *testing.T) {
		reqBody := map[string]interface{}{
			"name":  "Bad Phone",
			"email": "badphone@example.com",
			"phone": "not-a-phone",
		}

		w := ts.Request(http.MethodPost, "/api/v1/crm/customers", reqBody)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Update customer", func(t *testing.T) {
		require.NotEmpty(t, createdID)

		reqBody := map[string]interface{}{
			"name": "Maria Lopez-Garcia",
		}

		w := ts.Request(http.MethodPut, "/api/v1/crm/customers/"+createdID, reqBody)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Maria Lopez-Garcia", data["name"])
	})

	t.Run("List customers", func(t *testing.T) {
		w := ts.Request(http.MethodGet, "/api/v1/crm/customers?page=1&page_size=10", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})

	t.Run("Delete customer", func(t *testing.T) {
		require.NotEmpty(t, createdID)

		w := ts.Request(http.MethodDelete, "/api/v1/crm/customers/"+createdID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = ts.Request(http.MethodGet, "/api/v1/crm/customers/"+createdID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCustomerAPI_Loyalty(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := NewTestServer(t)

	reqBody := map[string]interface{}{
		"name":  "Loyal Customer",
		"email": "loyal@example.com",
		"phone": "+12125550410",
	}
	w := ts.Request(http.MethodPost, "/api/v1/crm/customers", reqBody)
	require.Equal(t, http.StatusCreated, w.Code)
	customerID := decodeResponse(t, w).Data.(map[string]interface{})["id"].(string)

	t.Run("Earn points", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/crm/customers/"+customerID+"/points/earn",
			map[string]interface{}{"points": 500})
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, float64(500), data["loyalty_points"])
	})

	t.Run("Redeem points", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/crm/customers/"+customerID+"/points/redeem",
			map[string]interface{}{"points": 200})
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, float64(300), data["loyalty_points"])
	})

	t.Run("Redeeming more than the balance fails", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/crm/customers/"+customerID+"/points/redeem",
			map[string]interface{}{"points": 10000})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
	})

	t.Run("Record visit", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/crm/customers/"+customerID+"/visits",
			map[string]interface{}{})
		assert.Equal(t, http.StatusOK, w.Code)

		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, float64(1), data["total_visits"])
	})

	t.Run("Deactivate and reactivate", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/crm/customers/"+customerID+"/deactivate", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, "inactive", data["status"])

		// Deactivating twice is an invalid transition
		w = ts.Request(http.MethodPost, "/api/v1/crm/customers/"+customerID+"/deactivate", nil)
		assert.GreaterOrEqual(t, w.Code, 400)

		w = ts.Request(http.MethodPost, "/api/v1/crm/customers/"+customerID+"/activate", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		data = decodeResponse(t, w).Data.(map[string]interface{})
		assert.Equal(t, "active", data["status"])
	})
}
