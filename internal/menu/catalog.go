package menu

import "errors"

// ErrInvalidSelection is returned when a 1-based menu choice is out of range.
var ErrInvalidSelection = errors.New("invalid menu selection")

// Item is a single entree on the menu. Prices are whole currency units.
type Item struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Catalog is the fixed, ordered menu loaded once at startup.
// Items are referenced by 1-based position, matching the printed menu.
type Catalog struct {
	items []Item
}

// NewCatalog creates a catalog from an ordered item list.
func NewCatalog(items []Item) *Catalog {
	c := &Catalog{items: make([]Item, len(items))}
	copy(c.items, items)
	return c
}

// Default returns the house menu.
func Default() *Catalog {
	return NewCatalog([]Item{
		{Name: "Raw Fish", Price: 35},
		{Name: "Eggs", Price: 45},
		{Name: "Ham", Price: 38},
		{Name: "Biscuits", Price: 38},
		{Name: "Toast", Price: 38},
	})
}

// Resolve maps a 1-based selection to its item.
func (c *Catalog) Resolve(choice int) (Item, error) {
	if choice < 1 || choice > len(c.items) {
		return Item{}, ErrInvalidSelection
	}
	return c.items[choice-1], nil
}

// Items returns a copy of the menu in display order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items on the menu.
func (c *Catalog) Len() int {
	return len(c.items)
}
