package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lickees/internal/domain"
)

var (
	itemA = domain.CatalogItem{Name: "A", Price: 30}
	itemB = domain.CatalogItem{Name: "B", Price: 15}
)

func TestCartTotal(t *testing.T) {
	c := New()
	c.Add(itemA)
	c.Add(itemA)
	c.Add(itemB)

	assert.Equal(t, 75, c.Total())
	assert.Equal(t, 2, c.Len())
	lines := c.Lines()
	assert.Equal(t, "A", lines[0].Item.Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestSetQuantityFloorsAtOne(t *testing.T) {
	c := New()
	c.Add(itemA)

	assert.True(t, c.SetQuantity("A", 3))
	assert.Equal(t, 4, c.Lines()[0].Quantity)

	assert.True(t, c.SetQuantity("A", -10))
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	assert.False(t, c.SetQuantity("missing", 1))
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	c.Add(itemA)
	c.Add(itemB)

	c.Remove("A")
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "B", c.Lines()[0].Item.Name)

	c.Remove("not-there")
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.True(t, c.Empty())
	assert.Zero(t, c.Total())
}

func TestLinesReturnsCopy(t *testing.T) {
	c := New()
	c.Add(itemA)
	lines := c.Lines()
	lines[0].Quantity = 50
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}
