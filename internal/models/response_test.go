package models

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewResponse(t *testing.T) {
	response := NewResponse(http.StatusTeapot, "payload", "short and stout")

	assert.Equal(t, http.StatusTeapot, response.Code)
	assert.Equal(t, "payload", response.Data)
	assert.Equal(t, "short and stout", response.Text)
	assert.Equal(t, 2, response.Version)

	now := time.Now().UnixNano() / int64(time.Millisecond)
	assert.InDelta(t, now, response.CurrentTime, 1000)
}

func TestNewOKResponse(t *testing.T) {
	response := NewOKResponse([]string{"a", "b"})

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.Equal(t, []string{"a", "b"}, response.Data)
}

func TestNewEntryResponse(t *testing.T) {
	response := NewEntryResponse(map[string]int{"rows": 3})

	data, ok := response.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"rows": 3}, data["entry"])
}

func TestNewListResponse(t *testing.T) {
	response := NewListResponse([]string{"people", "orders"})

	data, ok := response.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, []string{"people", "orders"}, data["list"])
}
