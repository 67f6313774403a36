package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		pages int64
	}{
		{"ExactFit", 1, 10, 20, 2},
		{"PartialLastPage", 1, 10, 15, 2},
		{"SingleRow", 1, 10, 1, 1},
		{"Empty", 1, 10, 0, 0},
		{"LimitOne", 3, 1, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, info.Page)
			assert.Equal(t, tt.limit, info.Limit)
			assert.Equal(t, tt.total, info.Total)
			assert.Equal(t, tt.pages, info.Pages)
		})
	}
}

func TestOptionalUnmarshal(t *testing.T) {
	type payload struct {
		Title       Optional[string]    `json:"title"`
		Description Optional[string]    `json:"description"`
		ExpiresAt   Optional[time.Time] `json:"expiresAt"`
	}

	t.Run("AbsentField", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Title.Set)
		assert.False(t, p.Description.Set)
		assert.False(t, p.ExpiresAt.Set)
	})

	t.Run("NullField", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"title":null}`), &p))
		assert.True(t, p.Title.Set)
		assert.False(t, p.Title.Valid)
		assert.Nil(t, p.Title.Ptr())
	})

	t.Run("PresentField", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"title":"My Link"}`), &p))
		assert.True(t, p.Title.Set)
		assert.True(t, p.Title.Valid)
		require.NotNil(t, p.Title.Ptr())
		assert.Equal(t, "My Link", *p.Title.Ptr())
	})

	t.Run("TimeField", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"expiresAt":"2026-01-02T15:04:05Z"}`), &p))
		assert.True(t, p.ExpiresAt.Set)
		assert.True(t, p.ExpiresAt.Valid)
		assert.Equal(t, 2026, p.ExpiresAt.Value.Year())
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		var p payload
		err := json.Unmarshal([]byte(`{"title":42}`), &p)
		assert.Error(t, err)
	})
}

func TestErrorBodySerialization(t *testing.T) {
	t.Run("DetailsOmittedWhenEmpty", func(t *testing.T) {
		data, err := json.Marshal(ErrorBody{Error: "URL not found"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"URL not found"}`, string(data))
	})

	t.Run("DetailsIncluded", func(t *testing.T) {
		data, err := json.Marshal(ErrorBody{Error: "Failed to fetch URL", Details: "connection refused"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"Failed to fetch URL","details":"connection refused"}`, string(data))
	})
}
