package retail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipradar/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient(map[string]string{
		"Walmart":   "http://localhost:9001/api/walmart/",
		"target":    "http://localhost:9002/api/target",
		"walgreens": "",
	})

	// Names are lowercased, trailing slashes stripped, empty endpoints dropped
	assert.Equal(t, []string{"target", "walmart"}, client.Retailers())
	assert.Equal(t, "http://localhost:9001/api/walmart", client.endpoints["walmart"])
}

func TestSearch_UnknownRetailer(t *testing.T) {
	client := NewClient(map[string]string{"walmart": "http://unused.example.com"})

	_, err := client.Search(context.Background(), "costco", "anything")
	assert.ErrorIs(t, err, domain.ErrUnknownRetailer)
}

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "lego", r.URL.Query().Get("q"))

		json.NewEncoder(w).Encode(map[string]any{
			"products": []map[string]any{
				{"id": "W-100", "title": "LEGO Star Wars Set", "price": 39.99, "originalPrice": 79.99, "stock": "In Stock"},
				{"id": "W-100", "title": "LEGO Star Wars Set", "price": 39.99},
				{"id": "W-200", "title": "LEGO City Set", "price": "$24.99", "clearance": true},
				{"id": "W-300", "title": ""},
				{"title": "Untagged LEGO Set", "price": 12.50},
			},
		})
	}))
	defer server.Close()

	client := NewClient(map[string]string{"walmart": server.URL})
	products, err := client.Search(context.Background(), "Walmart", "lego")
	require.NoError(t, err)

	// Duplicate ID and blank-title entries are dropped
	require.Len(t, products, 3)

	first := products[0]
	assert.Equal(t, "W-100", first.ID)
	assert.Equal(t, "walmart", first.Retailer)
	assert.InDelta(t, 39.99, first.Price, 1e-9)
	assert.InDelta(t, 79.99, first.OriginalPrice, 1e-9)
	assert.True(t, first.Clearance, "markdown below original price implies clearance")
	assert.Equal(t, "In Stock", first.Stock)

	second := products[1]
	assert.InDelta(t, 24.99, second.Price, 1e-9)
	assert.InDelta(t, 24.99, second.OriginalPrice, 1e-9, "missing original falls back to price")
	assert.True(t, second.Clearance)
	assert.Equal(t, "Unknown", second.Stock)

	// Missing ID gets a synthetic retailer-scoped one
	third := products[2]
	assert.NotEmpty(t, third.ID)
	assert.Contains(t, third.ID, "walmart-")
}

func TestSearch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(map[string]string{"walmart": server.URL})
	_, err := client.Search(context.Background(), "walmart", "lego")
	assert.ErrorIs(t, err, domain.ErrRetailerUnavailable)
}

func TestSearch_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(map[string]string{"walmart": server.URL})
	_, err := client.Search(context.Background(), "walmart", "lego")
	assert.ErrorIs(t, err, domain.ErrRetailerUnavailable)
}

func TestNormalizeProduct_NotOnMarkdown(t *testing.T) {
	product := normalizeProduct(productPayload{
		ID:    "T-1",
		Title: "Full Price Item",
		Price: 19.99,
	}, "target")

	assert.InDelta(t, 19.99, product.OriginalPrice, 1e-9)
	assert.False(t, product.Clearance)
}

func TestNumberOrZero(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"json number", 42.5, 42.5},
		{"negative number", -3.0, 0},
		{"display price", "$1,299.99", 1299.99},
		{"garbage string", "call for price", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, numberOrZero(tt.input), 1e-9)
		})
	}
}
