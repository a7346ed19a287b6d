package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmate/backend/internal/domain"
)

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads and cleans a valid catalog", func(t *testing.T) {
		path := writeCatalog(t, `[
			{"id": "1", "name": " Velvet Matte ", "category": "lipstick", "brand": "Fenty", "color": "Pink Nude", "price": 18.5},
			{"id": "2", "price": 10}
		]`)

		products, err := Load(path)
		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, "Velvet Matte", products[0].Name)
		assert.Equal(t, "lipstick", products[0].Category)
		assert.Equal(t, 18.5, products[0].Price)

		assert.Equal(t, "Unknown product", products[1].Name)
		assert.Equal(t, "Unknown Category", products[1].Category)
		assert.Equal(t, "Unknown Brand", products[1].Brand)
		assert.Equal(t, "Unknown Color", products[1].Color)
	})

	t.Run("blank fields default like absent ones", func(t *testing.T) {
		path := writeCatalog(t, `[{"id": "1", "name": "   ", "brand": "", "color": "  "}]`)

		products, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Unknown product", products[0].Name)
		assert.Equal(t, "Unknown Brand", products[0].Brand)
		assert.Equal(t, "Unknown Color", products[0].Color)
	})

	t.Run("negative price is treated as unpriced", func(t *testing.T) {
		path := writeCatalog(t, `[{"id": "1", "price": -5}]`)

		products, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 0.0, products[0].Price)
	})

	t.Run("missing file reports the catalog as unavailable", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("malformed JSON reports the catalog as unavailable", func(t *testing.T) {
		path := writeCatalog(t, `{"not": "an array"`)

		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	})

	t.Run("empty array is a valid empty catalog", func(t *testing.T) {
		path := writeCatalog(t, `[]`)

		products, err := Load(path)
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}
