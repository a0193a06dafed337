package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vapeshop/storefront/internal/domain/catalog"
)

func newTestProduct(t *testing.T, id, name, price string, flavors ...catalog.Flavor) *catalog.Product {
	t.Helper()
	if len(flavors) == 0 {
		flavors = []catalog.Flavor{{ID: id + "-1", Name: "Default", InStock: true}}
	}
	p, err := catalog.NewProduct(id, name, "Frutados", decimal.RequireFromString(price), flavors)
	require.NoError(t, err)
	return p
}

func TestAddOrUpdate(t *testing.T) {
	pod := newTestProduct(t, "1", "Pod Disposable Premium", "25.90",
		catalog.Flavor{ID: "1-1", Name: "Morango Kiwi", InStock: true},
		catalog.Flavor{ID: "1-2", Name: "Frutas Vermelhas", InStock: true},
	)

	t.Run("appends a new line at the end", func(t *testing.T) {
		c, err := New().AddOrUpdate(pod, pod.Flavors[0], 2)
		require.NoError(t, err)
		c, err = c.AddOrUpdate(pod, pod.Flavors[1], 1)
		require.NoError(t, err)

		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, Line{ProductID: "1", FlavorID: "1-1", Quantity: 2}, lines[0])
		assert.Equal(t, Line{ProductID: "1", FlavorID: "1-2", Quantity: 1}, lines[1])
	})

	t.Run("replaces quantity instead of incrementing", func(t *testing.T) {
		c, err := New().AddOrUpdate(pod, pod.Flavors[0], 2)
		require.NoError(t, err)
		c, err = c.AddOrUpdate(pod, pod.Flavors[0], 5)
		require.NoError(t, err)

		line, ok := c.Find("1", "1-1")
		require.True(t, ok)
		assert.Equal(t, 5, line.Quantity)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("keeps at most one line per pair across any sequence", func(t *testing.T) {
		c := New()
		var err error
		for _, qty := range []int{1, 3, 2, 7, 4} {
			c, err = c.AddOrUpdate(pod, pod.Flavors[0], qty)
			require.NoError(t, err)
			c, err = c.AddOrUpdate(pod, pod.Flavors[1], qty)
			require.NoError(t, err)
		}

		seen := make(map[Key]int)
		for _, l := range c.Lines() {
			seen[l.Key()]++
		}
		for key, count := range seen {
			assert.Equal(t, 1, count, "pair %v has %d lines", key, count)
		}
	})

	t.Run("quantity zero is equivalent to remove", func(t *testing.T) {
		c, err := New().AddOrUpdate(pod, pod.Flavors[0], 2)
		require.NoError(t, err)
		c, err = c.AddOrUpdate(pod, pod.Flavors[1], 1)
		require.NoError(t, err)

		viaZero, err := c.AddOrUpdate(pod, pod.Flavors[0], 0)
		require.NoError(t, err)
		viaRemove := c.Remove("1", "1-1")

		assert.Equal(t, viaRemove.Lines(), viaZero.Lines())
	})

	t.Run("quantity zero with no existing line is a no-op", func(t *testing.T) {
		c, err := New().AddOrUpdate(pod, pod.Flavors[0], 0)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := New().AddOrUpdate(pod, pod.Flavors[0], -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("rejects flavor not belonging to the product", func(t *testing.T) {
		other := catalog.Flavor{ID: "9-9", Name: "Menta Gelada", InStock: true}
		_, err := New().AddOrUpdate(pod, other, 1)
		require.Error(t, err)
	})

	t.Run("does not mutate the prior cart value", func(t *testing.T) {
		before, err := New().AddOrUpdate(pod, pod.Flavors[0], 2)
		require.NoError(t, err)

		_, err = before.AddOrUpdate(pod, pod.Flavors[0], 9)
		require.NoError(t, err)
		_, err = before.AddOrUpdate(pod, pod.Flavors[1], 1)
		require.NoError(t, err)

		line, ok := before.Find("1", "1-1")
		require.True(t, ok)
		assert.Equal(t, 2, line.Quantity)
		assert.Equal(t, 1, before.Len())
	})
}

func TestUpdateQuantity(t *testing.T) {
	pod := newTestProduct(t, "1", "Pod Disposable Premium", "25.90",
		catalog.Flavor{ID: "1-1", Name: "Morango Kiwi", InStock: true},
		catalog.Flavor{ID: "1-2", Name: "Frutas Vermelhas", InStock: true},
	)

	t.Run("replaces quantity of an existing line", func(t *testing.T) {
		c, err := New().AddOrUpdate(pod, pod.Flavors[0], 2)
		require.NoError(t, err)

		c, err = c.UpdateQuantity("1", "1-1", 4)
		require.NoError(t, err)

		line, ok := c.Find("1", "1-1")
		require.True(t, ok)
		assert.Equal(t, 4, line.Quantity)
	})

	t.Run("does not create a line for a missing pair", func(t *testing.T) {
		c, err := New().UpdateQuantity("1", "1-1", 3)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("removes the line at quantity zero", func(t *testing.T) {
		c, err := New().AddOrUpdate(pod, pod.Flavors[0], 2)
		require.NoError(t, err)

		c, err = c.UpdateQuantity("1", "1-1", 0)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		c, err := New().AddOrUpdate(pod, pod.Flavors[0], 2)
		require.NoError(t, err)

		_, err = c.UpdateQuantity("1", "1-1", -2)
		require.Error(t, err)
	})

	t.Run("preserves order of untouched lines", func(t *testing.T) {
		c, err := New().AddOrUpdate(pod, pod.Flavors[0], 2)
		require.NoError(t, err)
		c, err = c.AddOrUpdate(pod, pod.Flavors[1], 1)
		require.NoError(t, err)

		c, err = c.UpdateQuantity("1", "1-1", 8)
		require.NoError(t, err)

		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "1-1", lines[0].FlavorID)
		assert.Equal(t, "1-2", lines[1].FlavorID)
	})
}

func TestRemove(t *testing.T) {
	pod := newTestProduct(t, "1", "Pod Disposable Premium", "25.90",
		catalog.Flavor{ID: "1-1", Name: "Morango Kiwi", InStock: true},
		catalog.Flavor{ID: "1-2", Name: "Frutas Vermelhas", InStock: true},
	)

	t.Run("removes only the matching line", func(t *testing.T) {
		c, err := New().AddOrUpdate(pod, pod.Flavors[0], 2)
		require.NoError(t, err)
		c, err = c.AddOrUpdate(pod, pod.Flavors[1], 1)
		require.NoError(t, err)

		c = c.Remove("1", "1-1")

		require.Equal(t, 1, c.Len())
		_, ok := c.Find("1", "1-2")
		assert.True(t, ok)
	})

	t.Run("is idempotent", func(t *testing.T) {
		c, err := New().AddOrUpdate(pod, pod.Flavors[0], 2)
		require.NoError(t, err)

		once := c.Remove("1", "1-1")
		twice := once.Remove("1", "1-1")

		assert.Equal(t, once.Lines(), twice.Lines())
	})

	t.Run("missing line is a no-op", func(t *testing.T) {
		c, err := New().AddOrUpdate(pod, pod.Flavors[0], 2)
		require.NoError(t, err)

		c = c.Remove("99", "99-1")
		assert.Equal(t, 1, c.Len())
	})
}

func TestNewFromLines(t *testing.T) {
	t.Run("rebuilds lines in order", func(t *testing.T) {
		c := NewFromLines([]Line{
			{ProductID: "1", FlavorID: "1-1", Quantity: 2},
			{ProductID: "2", FlavorID: "2-1", Quantity: 1},
		})
		require.Equal(t, 2, c.Len())
		assert.Equal(t, "1", c.Lines()[0].ProductID)
		assert.Equal(t, "2", c.Lines()[1].ProductID)
	})

	t.Run("drops corrupt lines", func(t *testing.T) {
		c := NewFromLines([]Line{
			{ProductID: "1", FlavorID: "1-1", Quantity: 0},
			{ProductID: "", FlavorID: "1-1", Quantity: 2},
			{ProductID: "1", FlavorID: "", Quantity: 2},
			{ProductID: "2", FlavorID: "2-1", Quantity: -3},
			{ProductID: "3", FlavorID: "3-1", Quantity: 1},
			{ProductID: "3", FlavorID: "3-1", Quantity: 5},
		})
		require.Equal(t, 1, c.Len())
		assert.Equal(t, Line{ProductID: "3", FlavorID: "3-1", Quantity: 1}, c.Lines()[0])
	})
}
