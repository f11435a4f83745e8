package catalog

import (
	"errors"
	"strings"

	"lickees/internal/domain"
)

var ErrUnknownItem = errors.New("unknown catalog item")

const AllCategories = "All"

var flavours = []domain.CatalogItem{
	{Name: "Tender Coconut", Price: 30, Glyph: "🥥", Category: "Fruit"},
	{Name: "Blue Berry", Price: 30, Glyph: "🫐", Category: "Fruit"},
	{Name: "Jack Fruit", Price: 30, Glyph: "🍈", Category: "Fruit"},
	{Name: "Avocado", Price: 25, Glyph: "🥑", Category: "Fruit"},
	{Name: "Kacha Mango", Price: 15, Glyph: "🥭", Category: "Fruit"},
	{Name: "Chilli Guava", Price: 15, Glyph: "🌶️", Category: "Fruit"},
	{Name: "Mango", Price: 25, Glyph: "🥭", Category: "Fruit"},
	{Name: "Grape", Price: 20, Glyph: "🍇", Category: "Fruit"},
	{Name: "Orange", Price: 10, Glyph: "🍊", Category: "Fruit"},
	{Name: "Strawberry", Price: 20, Glyph: "🍓", Category: "Fruit"},
	{Name: "Green Apple", Price: 15, Glyph: "🍏", Category: "Fruit"},
	{Name: "Chikku", Price: 20, Glyph: "🟤", Category: "Fruit"},
	{Name: "Seethaphal", Price: 25, Glyph: "💚", Category: "Fruit"},
	{Name: "Fruit & Nut", Price: 40, Glyph: "🍑", Category: "Premium"},
	{Name: "Roasted Almond", Price: 40, Glyph: "🌰", Category: "Premium"},
	{Name: "Roasted Cashew", Price: 40, Glyph: "🥜", Category: "Premium"},
	{Name: "Hazelnut", Price: 40, Glyph: "🟫", Category: "Premium"},
	{Name: "Pistachio", Price: 40, Glyph: "💚", Category: "Premium"},
	{Name: "Rasamalai", Price: 40, Glyph: "🍮", Category: "Special"},
	{Name: "Lotus Biscoff", Price: 40, Glyph: "🍪", Category: "Special"},
	{Name: "Spanish Delight", Price: 30, Glyph: "✨", Category: "Special"},
	{Name: "Fig Honey", Price: 25, Glyph: "🍯", Category: "Special"},
	{Name: "Chocolate", Price: 20, Glyph: "🍫", Category: "Classic"},
	{Name: "Coffee", Price: 20, Glyph: "☕", Category: "Classic"},
	{Name: "Malai", Price: 30, Glyph: "🥛", Category: "Classic"},
	{Name: "Oreo", Price: 30, Glyph: "⚫", Category: "Classic"},
	{Name: "Butter Scotch", Price: 25, Glyph: "🟡", Category: "Classic"},
	{Name: "Paan", Price: 20, Glyph: "🌿", Category: "Classic"},
	{Name: "Bubble Gum", Price: 20, Glyph: "🫧", Category: "Classic"},
	{Name: "Gulab Jamun", Price: 30, Glyph: "🔴", Category: "Special"},
}

var categories = []string{AllCategories, "Fruit", "Classic", "Premium", "Special"}

// Items returns a copy of the full catalog in display order.
func Items() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(flavours))
	copy(out, flavours)
	return out
}

func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

func Names() []string {
	names := make([]string, 0, len(flavours))
	for _, item := range flavours {
		names = append(names, item.Name)
	}
	return names
}

func Lookup(name string) (domain.CatalogItem, error) {
	name = strings.TrimSpace(name)
	for _, item := range flavours {
		if item.Name == name {
			return item, nil
		}
	}
	return domain.CatalogItem{}, ErrUnknownItem
}

// Filter keeps items in the given category (or every category for "All" or
// empty) whose name contains search, ignoring case.
func Filter(category, search string) []domain.CatalogItem {
	category = strings.TrimSpace(category)
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]domain.CatalogItem, 0, len(flavours))
	for _, item := range flavours {
		if category != "" && category != AllCategories && item.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		out = append(out, item)
	}
	return out
}
