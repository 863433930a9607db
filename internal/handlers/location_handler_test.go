package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LoAnTTM/RentManager/config"
	"github.com/LoAnTTM/RentManager/models"
)

func TestUpdateLocationPartialFields(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/locations", gin.H{
		"name":        "Ly Thuong Kiet",
		"address":     "12 Ly Thuong Kiet",
		"owner_name":  "Pham Van D",
		"owner_phone": "0901234567",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created LocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	t.Run("omitted fields stay put", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/locations/%d", created.ID), gin.H{
			"owner_phone": "0909999999",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var location models.Location
		require.NoError(t, config.DB.First(&location, created.ID).Error)
		assert.Equal(t, "0909999999", location.OwnerPhone)
		assert.Equal(t, "Ly Thuong Kiet", location.Name)
		assert.Equal(t, "12 Ly Thuong Kiet", location.Address)
		assert.Equal(t, "Pham Van D", location.OwnerName)
	})

	t.Run("explicit empty string clears a field", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/locations/%d", created.ID), gin.H{
			"address":     "",
			"owner_phone": "",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var location models.Location
		require.NoError(t, config.DB.First(&location, created.ID).Error)
		assert.Empty(t, location.Address)
		assert.Empty(t, location.OwnerPhone)
		assert.Equal(t, "Ly Thuong Kiet", location.Name)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/locations/%d", created.ID), gin.H{
			"electric_price": "-1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
