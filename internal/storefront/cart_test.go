package storefront

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shagun/internal/domain"
)

func withID(p domain.Product, id string) domain.Product {
	p.ID = id
	return p
}

func TestCart_AddIncrements(t *testing.T) {
	c := NewCart()
	a := withID(product("Banarasi", 2500), "a")
	c.Add(a, 1)
	c.Add(a, 1)
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.EqualValues(t, 2, lines[0].Qty)
	assert.Equal(t, "/uploads/a.jpg", lines[0].Image)
}

func TestCart_QuantityFloor(t *testing.T) {
	c := NewCart()
	a := withID(product("Banarasi", 2500), "a")
	c.Add(a, 1)
	c.Add(a, -1)
	assert.EqualValues(t, 1, c.Lines()[0].Qty)

	c.Add(a, 2)
	c.Add(a, -1)
	assert.EqualValues(t, 2, c.Lines()[0].Qty)

	b := withID(product("Chanderi", 1800), "b")
	c.Add(b, 0)
	assert.EqualValues(t, 1, c.Lines()[1].Qty)
}

func TestCart_TotalRemoveClear(t *testing.T) {
	c := NewCart()
	noImage := withID(product("Plain", 999), "b")
	noImage.Images = nil
	c.Add(withID(product("Banarasi", 2500), "a"), 2)
	c.Add(noImage, 1)

	assert.True(t, c.Total().Equal(decimal.NewFromInt(5999)))
	assert.EqualValues(t, 3, c.Count())
	assert.Equal(t, PlaceholderImage, c.Lines()[1].Image)

	c.Remove("a")
	c.Remove("missing")
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, "b", c.Lines()[0].ProductID)

	c.Clear()
	assert.True(t, c.Empty())
	assert.True(t, c.Total().IsZero())
}
