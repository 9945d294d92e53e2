package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wadidirect/storefront-backend/internal/cart"
	pkgerrors "github.com/wadidirect/storefront-backend/pkg/errors"
	"github.com/wadidirect/storefront-backend/pkg/logger"
)

// Confirmation is the result of a completed (simulated) checkout.
type Confirmation struct {
	Reference   string    `json:"reference"`
	Total       float64   `json:"total"`
	ItemCount   int       `json:"itemCount"`
	Status      string    `json:"status"`
	ProcessedAt time.Time `json:"processedAt"`
}

// Service runs the checkout flow. Payment is simulated with a fixed
// processing delay; there is no payment provider and nothing is persisted.
type Service interface {
	Process(ctx context.Context, store *cart.Store) (*Confirmation, error)
}

type service struct {
	delay time.Duration
	logg  *logger.Logger
}

// NewService wires the simulated checkout.
func NewService(delay time.Duration, logg *logger.Logger) Service {
	return &service{delay: delay, logg: logg}
}

// Process captures the cart totals, waits out the simulated payment delay,
// then drains the cart and returns a confirmation. The delay respects
// context cancellation so an abandoned request releases immediately.
func (s *service) Process(ctx context.Context, store *cart.Store) (*Confirmation, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable")
	}

	state := store.Snapshot()
	if len(state.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "checkout interrupted")
	case <-timer.C:
	}

	store.Clear()

	confirmation := &Confirmation{
		Reference:   uuid.NewString(),
		Total:       state.Total,
		ItemCount:   state.ItemCount,
		Status:      "confirmed",
		ProcessedAt: time.Now().UTC(),
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"reference":  confirmation.Reference,
			"item_count": confirmation.ItemCount,
		})
		s.logg.Info(ctx, "checkout.confirmed")
	}
	return confirmation, nil
}
