package cart

import "lickees/internal/domain"

// Cart is the in-progress sale of a single operator. It is not safe for
// concurrent use; the owning session serialises access.
type Cart struct {
	lines []domain.CartLine
}

func New() *Cart {
	return &Cart{}
}

// Add increments the quantity of item when already present, otherwise it
// appends a new line at quantity 1.
func (c *Cart) Add(item domain.CatalogItem) {
	for i := range c.lines {
		if c.lines[i].Item.Name == item.Name {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, domain.CartLine{Item: item, Quantity: 1})
}

func (c *Cart) Remove(name string) {
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.Item.Name != name {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// SetQuantity adjusts the quantity of the named line by delta. The result
// never drops below 1; Remove is the only way to drop a line. It reports
// whether the line exists.
func (c *Cart) SetQuantity(name string, delta int) bool {
	for i := range c.lines {
		if c.lines[i].Item.Name == name {
			c.lines[i].Quantity = max(1, c.lines[i].Quantity+delta)
			return true
		}
	}
	return false
}

func (c *Cart) Total() int {
	total := 0
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}
