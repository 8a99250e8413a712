package checkout

import (
	"context"
	"time"

	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/event"
	"github.com/storeroomlabs/storeroom/internal/repository"
)

// ReconcileResult is the reconciliation read returned to the presentation
// layer: the adjusted item view, the reconciled cart (nil when the user has
// none) and a diff of item name to units the reconciler removed. The diff is
// request-scoped state; any client-side persistence is the caller's concern.
type ReconcileResult struct {
	Location *domain.InventoryLocation `json:"location"`
	Tags     []domain.Tag              `json:"tags"`
	Items    []domain.AdjustedItem     `json:"items"`
	Cart     *domain.Cart              `json:"cart"`
	Diff     map[string]int            `json:"diff"`
}

// CheckoutLine is one reconciled cart line submitted for commit
type CheckoutLine struct {
	Item     domain.Item `json:"item"`
	Quantity int         `json:"quantity"`
}

// CheckoutRequest is a reconciled cart snapshot partitioned by checkout type
type CheckoutRequest struct {
	LocationID     string
	UserID         string
	Note           string
	DisplayName    string
	CartID         string
	PermanentItems []CheckoutLine
	TemporaryItems []CheckoutLine
}

// TransactionRef identifies one created transaction
type TransactionRef struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckoutResult reports a committed checkout
type CheckoutResult struct {
	Transactions []TransactionRef `json:"transactions"`
	LinkID       string           `json:"link_id,omitempty"`
	Message      string           `json:"message"`
}

// CheckinRef reports one resolved transaction
type CheckinRef struct {
	ID         string                   `json:"id"`
	Status     domain.TransactionStatus `json:"status"`
	ResolvedAt time.Time                `json:"resolved_at"`
}

// CheckInResult reports a completed check-in
type CheckInResult struct {
	Transactions []CheckinRef `json:"transactions"`
}

// CartMutation is a single-line cart operation
type CartMutation struct {
	UserID       string
	LocationID   string
	Action       domain.CartAction
	ItemID       string
	CheckoutType domain.CheckoutType
	Quantity     int
}

// Service defines the cart reconciliation and checkout/check-in engine
type Service interface {
	ReconcileInventory(ctx context.Context, userID, locationID string) (*ReconcileResult, error)
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	CheckIn(ctx context.Context, transactionIDs []string) (*CheckInResult, error)
	MutateCart(ctx context.Context, m CartMutation) error
	PendingTransactions(ctx context.Context, locationID string) ([]domain.Transaction, error)
}

type service struct {
	inventoryRepo repository.Inventory
	cartRepo      repository.Cart
	checkoutRepo  repository.Checkout
	publisher     event.Bus
	locations     *locationCache
	now           func() time.Time
}

// NewService creates a new checkout service
func NewService(inventoryRepo repository.Inventory, cartRepo repository.Cart, checkoutRepo repository.Checkout, publisher event.Bus) Service {
	return &service{
		inventoryRepo: inventoryRepo,
		cartRepo:      cartRepo,
		checkoutRepo:  checkoutRepo,
		publisher:     publisher,
		locations:     newLocationCache(LocationCacheSize, LocationCacheTTL),
		now:           time.Now,
	}
}

// publish sends an event when a bus is configured. Publish failures are
// logged by the bus subscribers and never fail the business operation.
func (s *service) publish(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, e)
}
