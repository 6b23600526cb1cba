package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorFromDocument(t *testing.T) {
	t.Run("maps a full document", func(t *testing.T) {
		indexed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		profile, ok := vendorFromDocument(map[string]interface{}{
			"id":            "v1",
			"user_id":       "u1",
			"business_name": "Tasty Co",
			"description":   "catering",
			"category":      "catering",
			"location":      "Lagos",
			"rating":        4.5,
			"created_at":    float64(indexed.Unix()),
		})

		require.True(t, ok)
		assert.Equal(t, "v1", profile.ID)
		assert.Equal(t, "u1", profile.UserID)
		assert.Equal(t, "Tasty Co", profile.BusinessName)
		assert.Equal(t, 4.5, profile.Rating)
		assert.True(t, profile.CreatedAt.Equal(indexed))
	})

	t.Run("tolerates missing optional fields", func(t *testing.T) {
		profile, ok := vendorFromDocument(map[string]interface{}{
			"id":            "v1",
			"user_id":       "u1",
			"business_name": "Tasty Co",
		})

		require.True(t, ok)
		assert.Empty(t, profile.Description)
		assert.Zero(t, profile.Rating)
	})

	t.Run("rejects documents missing identity fields", func(t *testing.T) {
		docs := []map[string]interface{}{
			{"user_id": "u1", "business_name": "Tasty Co"},
			{"id": "v1", "business_name": "Tasty Co"},
			{"id": "v1", "user_id": "u1"},
			{"id": 42, "user_id": "u1", "business_name": "Tasty Co"},
		}

		for _, doc := range docs {
			_, ok := vendorFromDocument(doc)
			assert.False(t, ok)
		}
	})

	t.Run("ignores wrongly typed optional fields", func(t *testing.T) {
		profile, ok := vendorFromDocument(map[string]interface{}{
			"id":            "v1",
			"user_id":       "u1",
			"business_name": "Tasty Co",
			"rating":        "excellent",
			"created_at":    "yesterday",
		})

		require.True(t, ok)
		assert.Zero(t, profile.Rating)
		assert.True(t, profile.CreatedAt.IsZero())
	})
}
