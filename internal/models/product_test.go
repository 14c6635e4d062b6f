package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureListJSON(t *testing.T) {
	t.Run("array stays a list", func(t *testing.T) {
		var f FeatureList
		require.NoError(t, json.Unmarshal([]byte(`["Garage", " Eliporto ", ""]`), &f))
		assert.Equal(t, FeatureList{"Garage", "Eliporto"}, f)
	})

	t.Run("legacy multiline text becomes a list", func(t *testing.T) {
		var f FeatureList
		require.NoError(t, json.Unmarshal([]byte(`"Garage\n\nEliporto\n"`), &f))
		assert.Equal(t, FeatureList{"Garage", "Eliporto"}, f)
	})

	t.Run("null becomes empty", func(t *testing.T) {
		var f FeatureList
		require.NoError(t, json.Unmarshal([]byte(`null`), &f))
		assert.Empty(t, f)
	})

	t.Run("nil marshals as empty array", func(t *testing.T) {
		data, err := json.Marshal(Product{Name: "Garage"})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"features":[]`)
	})
}

func TestProductUpdateApplyTo(t *testing.T) {
	p := Product{ID: 1, Name: "Garage", Price: 24.99, Discount: 20}

	name := "Garage Premium"
	zero := 0
	ProductUpdate{Name: &name, Discount: &zero}.ApplyTo(&p)

	assert.Equal(t, "Garage Premium", p.Name)
	assert.Equal(t, 0, p.Discount, "an explicit zero must overwrite, not preserve")
	assert.Equal(t, 24.99, p.Price)
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "shjra", User{Username: "shjra", Discriminator: "0"}.DisplayName())
	assert.Equal(t, "shjra", User{Username: "shjra"}.DisplayName())
	assert.Equal(t, "cliente#1234", User{Username: "cliente", Discriminator: "1234"}.DisplayName())
}
