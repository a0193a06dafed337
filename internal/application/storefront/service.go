package storefront

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vapeshop/storefront/internal/domain/cart"
	"github.com/vapeshop/storefront/internal/domain/catalog"
	"github.com/vapeshop/storefront/internal/domain/shared"
	"github.com/vapeshop/storefront/internal/domain/shared/valueobject"
)

// Service owns the session-scoped storefront state: the active search
// query, the category selection, and the cart. All transitions are
// synchronous responses to single user intents; the service is not safe
// for concurrent use.
type Service struct {
	store        *catalog.Store
	repo         cart.Repository
	logger       *zap.Logger
	minimumOrder valueobject.Money
	storageKey   string

	query      string
	categories catalog.Selection
	cart       cart.Cart
}

// NewService builds a storefront session, loading any persisted cart
// snapshot. A repository load failure starts the session with an empty
// cart rather than failing.
func NewService(
	ctx context.Context,
	store *catalog.Store,
	repo cart.Repository,
	logger *zap.Logger,
	minimumOrder valueobject.Money,
	storageKey string,
) *Service {
	s := &Service{
		store:        store,
		repo:         repo,
		logger:       logger,
		minimumOrder: minimumOrder,
		storageKey:   storageKey,
		categories:   catalog.NewSelection(),
		cart:         cart.New(),
	}

	loaded, err := repo.Load(ctx, storageKey)
	if err != nil {
		logger.Warn("failed to load persisted cart, starting empty",
			zap.String("key", storageKey),
			zap.Error(err))
		return s
	}
	s.cart = loaded
	if !loaded.IsEmpty() {
		logger.Info("restored persisted cart",
			zap.String("key", storageKey),
			zap.Int("lines", loaded.Len()))
	}
	return s
}

// SetSearch updates the free-text search query
func (s *Service) SetSearch(query string) {
	s.query = query
}

// Search returns the active search query
func (s *Service) Search() string {
	return s.query
}

// ToggleCategory flips the given category filter
func (s *Service) ToggleCategory(categoryID string) {
	s.categories = s.categories.Toggle(categoryID)
}

// SetCategories replaces the category selection
func (s *Service) SetCategories(ids ...string) {
	s.categories = catalog.NewSelection(ids...)
}

// SelectedCategories returns the active category filters
func (s *Service) SelectedCategories() []string {
	return s.categories.Values()
}

// ClearFilters resets the search query and the category selection
func (s *Service) ClearFilters() {
	s.query = ""
	s.categories = catalog.NewSelection()
}

// VisibleProducts returns the catalog filtered by the active query and
// category selection, in catalog order
func (s *Service) VisibleProducts() []ProductResponse {
	return ToProductResponses(catalog.Filter(s.store.Products(), s.query, s.categories))
}

// Categories returns the filterable categories
func (s *Service) Categories() []CategoryResponse {
	return ToCategoryResponses(s.store.Categories())
}

// AddToCart confirms a flavor+quantity selection for a product
// Quantity 0 removes the pair; otherwise the quantity replaces any
// existing line's. Adding an out-of-stock flavor is rejected.
func (s *Service) AddToCart(ctx context.Context, productID, flavorID string, quantity int) error {
	product, flavor, ok := s.store.FindFlavor(productID, flavorID)
	if !ok {
		return shared.ErrNotFound
	}
	if quantity > 0 && !flavor.InStock {
		return shared.ErrFlavorOutOfStock
	}

	next, err := s.cart.AddOrUpdate(product, flavor, quantity)
	if err != nil {
		return err
	}
	s.cart = next
	s.persist(ctx)

	s.logger.Debug("cart line set",
		zap.String("product_id", productID),
		zap.String("flavor_id", flavorID),
		zap.Int("quantity", quantity))
	return nil
}

// UpdateQuantity sets the quantity of an existing cart line
// A missing (product, flavor) pair is a no-op; the line is never created.
func (s *Service) UpdateQuantity(ctx context.Context, productID, flavorID string, quantity int) error {
	next, err := s.cart.UpdateQuantity(productID, flavorID, quantity)
	if err != nil {
		return err
	}
	s.cart = next
	s.persist(ctx)
	return nil
}

// RemoveItem removes the cart line for the given pair, if present
func (s *Service) RemoveItem(ctx context.Context, productID, flavorID string) {
	s.cart = s.cart.Remove(productID, flavorID)
	s.persist(ctx)
}

// ClearCart empties the cart
func (s *Service) ClearCart(ctx context.Context) {
	s.cart = s.cart.Clear()
	s.persist(ctx)
}

// Summary returns the renderable cart state: resolved lines, totals and
// the minimum-order gate. Lines that no longer resolve against the
// catalog are pruned and the pruned cart is persisted.
func (s *Service) Summary(ctx context.Context) CartSummaryResponse {
	totals := s.cart.Totals(s.store)
	if len(totals.Orphaned) > 0 {
		for _, key := range totals.Orphaned {
			s.logger.Warn("pruning cart line no longer in catalog",
				zap.String("product_id", key.ProductID),
				zap.String("flavor_id", key.FlavorID))
			s.cart = s.cart.Remove(key.ProductID, key.FlavorID)
		}
		s.persist(ctx)
		totals = s.cart.Totals(s.store)
	}

	lines := make([]CartLineResponse, 0, s.cart.Len())
	for _, l := range s.cart.Lines() {
		product, flavor, ok := s.store.FindFlavor(l.ProductID, l.FlavorID)
		if !ok {
			continue
		}
		lineTotal := product.BasePriceMoney().MultiplyByInt(int64(l.Quantity))
		lines = append(lines, CartLineResponse{
			ProductID:   product.ID,
			ProductName: product.Name,
			FlavorID:    flavor.ID,
			FlavorName:  flavor.Name,
			UnitPrice:   product.BasePrice.StringFixed(2),
			Quantity:    l.Quantity,
			LineTotal:   lineTotal.StringFixed(2),
			Image:       product.Image,
		})
	}

	return CartSummaryResponse{
		Lines:               lines,
		ItemCount:           totals.ItemCount,
		Subtotal:            totals.Subtotal.StringFixed(2),
		Currency:            string(totals.Subtotal.Currency()),
		MinimumOrder:        s.minimumOrder.StringFixed(2),
		CheckoutEligible:    s.cart.CheckoutEligible(s.store, s.minimumOrder),
		RemainingForMinimum: s.cart.RemainingForMinimum(s.store, s.minimumOrder).StringFixed(2),
	}
}

// Checkout raises the terminal checkout notification
// It succeeds only when the minimum-order gate passes and returns an
// order reference with the frozen summary. What happens after the
// notification (payment, submission) is outside this engine; the cart is
// left intact.
func (s *Service) Checkout(ctx context.Context) (*OrderResponse, error) {
	if s.cart.IsEmpty() {
		return nil, shared.ErrMinimumOrderNotMet
	}
	if !s.cart.CheckoutEligible(s.store, s.minimumOrder) {
		return nil, shared.ErrMinimumOrderNotMet
	}

	order := &OrderResponse{
		Reference: uuid.New(),
		Summary:   s.Summary(ctx),
	}
	s.logger.Info("checkout accepted",
		zap.String("reference", order.Reference.String()),
		zap.String("subtotal", order.Summary.Subtotal),
		zap.Int("item_count", order.Summary.ItemCount))
	return order, nil
}

// persist writes the cart through the repository
// The in-memory cart is the source of truth; a failed write is logged
// and never rolled back.
func (s *Service) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.storageKey, s.cart); err != nil {
		s.logger.Warn("failed to persist cart",
			zap.String("key", s.storageKey),
			zap.Error(err))
	}
}
