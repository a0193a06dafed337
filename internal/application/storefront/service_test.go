package storefront

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vapeshop/storefront/internal/domain/cart"
	"github.com/vapeshop/storefront/internal/domain/catalog"
	"github.com/vapeshop/storefront/internal/domain/shared"
	"github.com/vapeshop/storefront/internal/domain/shared/valueobject"
)

const testStorageKey = "vape-cart"

type fakeRepo struct {
	snapshots map[string][]cart.Line
	loadErr   error
	saveErr   error
	saveCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{snapshots: make(map[string][]cart.Line)}
}

func (r *fakeRepo) Load(_ context.Context, key string) (cart.Cart, error) {
	if r.loadErr != nil {
		return cart.New(), r.loadErr
	}
	return cart.NewFromLines(r.snapshots[key]), nil
}

func (r *fakeRepo) Save(_ context.Context, key string, c cart.Cart) error {
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.snapshots[key] = c.Lines()
	return nil
}

func testStore(t *testing.T) *catalog.Store {
	t.Helper()

	premium, err := catalog.NewProduct("1", "Pod Disposable Premium", "Frutados", decimal.RequireFromString("25.90"), []catalog.Flavor{
		{ID: "1-1", Name: "Morango Kiwi", InStock: true},
		{ID: "1-2", Name: "Uva Ice", InStock: false},
	})
	require.NoError(t, err)

	smooth, err := catalog.NewProduct("2", "Pod Ultra Smooth", "Mentolados", decimal.RequireFromString("28.90"), []catalog.Flavor{
		{ID: "2-1", Name: "Menta Gelada", InStock: true},
	})
	require.NoError(t, err)

	classic, err := catalog.NewProduct("3", "Pod Classic", "Frutados", decimal.RequireFromString("30.00"), []catalog.Flavor{
		{ID: "3-1", Name: "Banana", InStock: true},
	})
	require.NoError(t, err)

	store, err := catalog.NewStore([]*catalog.Product{premium, smooth, classic}, []catalog.Category{
		{ID: "frutados", Name: "Frutados"},
		{ID: "mentolados", Name: "Mentolados"},
	})
	require.NoError(t, err)
	return store
}

func newTestService(t *testing.T, repo cart.Repository) *Service {
	t.Helper()
	return NewService(
		context.Background(),
		testStore(t),
		repo,
		zap.NewNop(),
		valueobject.NewMoneyBRLFromFloat(299.90),
		testStorageKey,
	)
}

func TestNewService(t *testing.T) {
	t.Run("restores the persisted cart", func(t *testing.T) {
		repo := newFakeRepo()
		repo.snapshots[testStorageKey] = []cart.Line{
			{ProductID: "1", FlavorID: "1-1", Quantity: 2},
		}

		svc := newTestService(t, repo)

		summary := svc.Summary(context.Background())
		require.Len(t, summary.Lines, 1)
		assert.Equal(t, 2, summary.ItemCount)
	})

	t.Run("starts empty when loading fails", func(t *testing.T) {
		repo := newFakeRepo()
		repo.loadErr = errors.New("storage unavailable")

		svc := newTestService(t, repo)
		assert.Empty(t, svc.Summary(context.Background()).Lines)
	})
}

func TestFilterIntents(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	t.Run("no filters show the whole catalog in order", func(t *testing.T) {
		products := svc.VisibleProducts()
		require.Len(t, products, 3)
		assert.Equal(t, "Pod Disposable Premium", products[0].Name)
	})

	t.Run("search narrows by name and flavor", func(t *testing.T) {
		svc.SetSearch("menta")
		products := svc.VisibleProducts()
		require.Len(t, products, 1)
		assert.Equal(t, "Pod Ultra Smooth", products[0].Name)
	})

	t.Run("category toggle combines with search", func(t *testing.T) {
		svc.SetSearch("pod")
		svc.ToggleCategory("frutados")
		products := svc.VisibleProducts()
		require.Len(t, products, 2)

		svc.ToggleCategory("frutados")
		assert.Len(t, svc.VisibleProducts(), 3)
	})

	t.Run("clear filters resets both", func(t *testing.T) {
		svc.SetSearch("menta")
		svc.ToggleCategory("mentolados")
		svc.ClearFilters()

		assert.Empty(t, svc.Search())
		assert.Empty(t, svc.SelectedCategories())
		assert.Len(t, svc.VisibleProducts(), 3)
	})

	t.Run("categories carry derived counts", func(t *testing.T) {
		categories := svc.Categories()
		require.Len(t, categories, 2)
		assert.Equal(t, 2, categories[0].Count)
		assert.Equal(t, 1, categories[1].Count)
	})
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a line and persists", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(t, repo)

		require.NoError(t, svc.AddToCart(ctx, "1", "1-1", 2))

		summary := svc.Summary(ctx)
		require.Len(t, summary.Lines, 1)
		assert.Equal(t, "Morango Kiwi", summary.Lines[0].FlavorName)
		assert.Equal(t, "51.80", summary.Lines[0].LineTotal)
		assert.Equal(t, []cart.Line{{ProductID: "1", FlavorID: "1-1", Quantity: 2}}, repo.snapshots[testStorageKey])
	})

	t.Run("unknown pair is rejected", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())
		assert.ErrorIs(t, svc.AddToCart(ctx, "99", "99-1", 1), shared.ErrNotFound)
		assert.ErrorIs(t, svc.AddToCart(ctx, "1", "9-9", 1), shared.ErrNotFound)
	})

	t.Run("out-of-stock flavor is rejected", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())
		assert.ErrorIs(t, svc.AddToCart(ctx, "1", "1-2", 1), shared.ErrFlavorOutOfStock)
	})

	t.Run("quantity zero removes even an out-of-stock line", func(t *testing.T) {
		repo := newFakeRepo()
		repo.snapshots[testStorageKey] = []cart.Line{{ProductID: "1", FlavorID: "1-2", Quantity: 1}}
		svc := newTestService(t, repo)

		require.NoError(t, svc.AddToCart(ctx, "1", "1-2", 0))
		assert.Empty(t, svc.Summary(ctx).Lines)
	})

	t.Run("save failure keeps the in-memory cart", func(t *testing.T) {
		repo := newFakeRepo()
		repo.saveErr = errors.New("disk full")
		svc := newTestService(t, repo)

		require.NoError(t, svc.AddToCart(ctx, "1", "1-1", 2))
		assert.Equal(t, 2, svc.Summary(ctx).ItemCount)
	})
}

func TestUpdateAndRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("update replaces the quantity", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())
		require.NoError(t, svc.AddToCart(ctx, "1", "1-1", 2))

		require.NoError(t, svc.UpdateQuantity(ctx, "1", "1-1", 5))
		assert.Equal(t, 5, svc.Summary(ctx).ItemCount)
	})

	t.Run("update of a missing pair is a no-op", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())
		require.NoError(t, svc.UpdateQuantity(ctx, "1", "1-1", 5))
		assert.Empty(t, svc.Summary(ctx).Lines)
	})

	t.Run("remove and clear", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(t, repo)
		require.NoError(t, svc.AddToCart(ctx, "1", "1-1", 2))
		require.NoError(t, svc.AddToCart(ctx, "2", "2-1", 1))

		svc.RemoveItem(ctx, "1", "1-1")
		summary := svc.Summary(ctx)
		require.Len(t, summary.Lines, 1)
		assert.Equal(t, "2", summary.Lines[0].ProductID)

		svc.ClearCart(ctx)
		assert.Empty(t, svc.Summary(ctx).Lines)
		assert.Empty(t, repo.snapshots[testStorageKey])
	})
}

func TestSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("reports totals and the minimum-order gate", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())
		require.NoError(t, svc.AddToCart(ctx, "1", "1-1", 2))
		require.NoError(t, svc.AddToCart(ctx, "2", "2-1", 1))

		summary := svc.Summary(ctx)
		assert.Equal(t, 3, summary.ItemCount)
		assert.Equal(t, "80.70", summary.Subtotal)
		assert.Equal(t, "BRL", summary.Currency)
		assert.Equal(t, "299.90", summary.MinimumOrder)
		assert.False(t, summary.CheckoutEligible)
		assert.Equal(t, "219.20", summary.RemainingForMinimum)
	})

	t.Run("prunes lines no longer in the catalog", func(t *testing.T) {
		repo := newFakeRepo()
		repo.snapshots[testStorageKey] = []cart.Line{
			{ProductID: "1", FlavorID: "1-1", Quantity: 2},
			{ProductID: "gone", FlavorID: "gone-1", Quantity: 3},
		}
		svc := newTestService(t, repo)

		summary := svc.Summary(ctx)
		require.Len(t, summary.Lines, 1)
		assert.Equal(t, 2, summary.ItemCount)
		assert.Equal(t, "51.80", summary.Subtotal)

		// pruned cart was persisted
		assert.Equal(t, []cart.Line{{ProductID: "1", FlavorID: "1-1", Quantity: 2}}, repo.snapshots[testStorageKey])
	})
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected below the minimum order", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())
		require.NoError(t, svc.AddToCart(ctx, "1", "1-1", 2))

		_, err := svc.Checkout(ctx)
		assert.ErrorIs(t, err, shared.ErrMinimumOrderNotMet)
	})

	t.Run("rejected on an empty cart", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())
		_, err := svc.Checkout(ctx)
		assert.ErrorIs(t, err, shared.ErrMinimumOrderNotMet)
	})

	t.Run("accepted at the minimum and leaves the cart intact", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())
		require.NoError(t, svc.AddToCart(ctx, "3", "3-1", 10)) // 300.00

		order, err := svc.Checkout(ctx)
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.NotEmpty(t, order.Reference)
		assert.True(t, order.Summary.CheckoutEligible)
		assert.Equal(t, "300.00", order.Summary.Subtotal)

		// checkout is a notification, not a cart mutation
		assert.Len(t, svc.Summary(ctx).Lines, 1)
	})
}
