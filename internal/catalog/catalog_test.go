package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)

	require.Len(t, data.Products, 8)
	assert.Len(t, data.Categories, 4)
	assert.Len(t, data.Reviews, 6)
	assert.Equal(t, "21652832242", data.Store.WhatsApp)

	first := data.Products[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Noir Cat-Eye", first.Name)
	assert.True(t, first.Price.Equal(decimal.NewFromInt(89)))
	assert.Equal(t, "TND", first.Currency)
	assert.True(t, first.IsNew)
	assert.Equal(t, "52mm", first.Specifications["lensWidth"])
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	raw := []byte(`
products:
  - id: "1"
    name: A
    price: "1"
  - id: "1"
    name: B
    price: "2"
`)
	_, err := Parse(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestParse_DefaultsCurrency(t *testing.T) {
	data, err := Parse([]byte("products:\n  - id: \"9\"\n    name: Case\n    price: \"12.50\"\n"))
	require.NoError(t, err)
	require.Len(t, data.Products, 1)
	assert.Equal(t, "TND", data.Products[0].Currency)
	assert.Equal(t, "12.5", data.Products[0].Price.String())
}
