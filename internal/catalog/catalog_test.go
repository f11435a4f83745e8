package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, item := range Items() {
		assert.False(t, seen[item.Name], "duplicate name %q", item.Name)
		assert.Positive(t, item.Price, item.Name)
		seen[item.Name] = true
	}
	assert.Len(t, seen, 30)
}

func TestLookup(t *testing.T) {
	item, err := Lookup("Pistachio")
	require.NoError(t, err)
	assert.Equal(t, 40, item.Price)
	assert.Equal(t, "Premium", item.Category)

	_, err = Lookup("Vanilla")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		category string
		search   string
		want     []string
	}{
		{name: "premium only", category: "Premium", want: []string{"Fruit & Nut", "Roasted Almond", "Roasted Cashew", "Hazelnut", "Pistachio"}},
		{name: "search across all", category: "All", search: "MANGO", want: []string{"Kacha Mango", "Mango"}},
		{name: "category and search", category: "Classic", search: "o", want: []string{"Chocolate", "Coffee", "Oreo", "Butter Scotch"}},
		{name: "no match", category: "Fruit", search: "cashew", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]string, 0)
			for _, item := range Filter(tt.category, tt.search) {
				got = append(got, item.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterEmptyCategoryReturnsEverything(t *testing.T) {
	assert.Len(t, Filter("", ""), len(Items()))
}

func TestItemsReturnsCopy(t *testing.T) {
	items := Items()
	items[0].Price = 999
	again, err := Lookup(items[0].Name)
	require.NoError(t, err)
	assert.NotEqual(t, 999, again.Price)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "tender coconut", want: "Tender Coconut", ok: true},
		{in: "  Fruit and Nut ", want: "Fruit & Nut", ok: true},
		{in: "Butterscotch", want: "Butter Scotch", ok: true},
		{in: "Pistachios", want: "Pistachio", ok: true},
		{in: "Durian", ok: false},
		{in: "Mango Lassi", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			item, ok := Resolve(tt.in, DefaultMatchThreshold)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, item.Name)
			}
		})
	}

	_, ok := Resolve("Pistachios", 100)
	assert.False(t, ok)
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "", b: "", want: 0},
		{a: "", b: "mango", want: 5},
		{a: "rasmalai", b: "rasamalai", want: 1},
		{a: "butterscotch", b: "butter scotch", want: 1},
		{a: "kulfi", b: "kufli", want: 2},
		{a: "chikoo", b: "chikoo", want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, editDistance([]rune(tt.a), []rune(tt.b)), "%q vs %q", tt.a, tt.b)
		assert.Equal(t, tt.want, editDistance([]rune(tt.b), []rune(tt.a)), "%q vs %q", tt.b, tt.a)
	}
}
