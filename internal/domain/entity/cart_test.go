package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCartSelectors_Order(t *testing.T) {
	assert.Len(t, DefaultCartSelectors, 8)
	assert.Equal(t, "#add-to-cart-button", DefaultCartSelectors[0].Query)
	assert.Equal(t, ".add-to-cart", DefaultCartSelectors[7].Query)
}

func TestDefaultCartSelectors_LabeledButtons(t *testing.T) {
	assert.Equal(t, "/Add to Cart/i", DefaultCartSelectors[4].Match)
	assert.Equal(t, "/Add to Bag/i", DefaultCartSelectors[5].Match)
}

func TestDefaultCartSelectors_AllDescribed(t *testing.T) {
	for i, sel := range DefaultCartSelectors {
		assert.NotEmpty(t, sel.Query, "entry %d has no query", i)
		assert.NotEmpty(t, sel.Description, "entry %d has no description", i)
	}
}
