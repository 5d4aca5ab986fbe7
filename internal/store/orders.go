package store

import (
	"context"

	"github.com/jlin2026/campusmarket/internal/models"
)

// FetchMyOrders replaces the order list with the backend's view of it.
func (s *Store) FetchMyOrders(ctx context.Context) Result {
	if s.CurrentUser() == nil {
		return fail(MsgNotLoggedIn)
	}

	recs, err := s.api.MyOrders(ctx)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	orders := make([]models.Order, 0, len(recs))
	for _, rec := range recs {
		orders = append(orders, models.OrderFromRecord(rec, s.baseURL))
	}

	s.mu.Lock()
	s.state.Orders = orders
	s.mu.Unlock()
	return ok()
}

// PlaceOrder buys a good. The order list is refetched afterwards; the
// goods listing is not — it self-corrects on the next market refresh.
func (s *Store) PlaceOrder(ctx context.Context, goodsID int64, num int) Result {
	user := s.CurrentUser()
	if user == nil {
		return fail(MsgNotLoggedIn)
	}
	if num <= 0 {
		return fail("数量不正确")
	}

	if _, err := s.api.CreateOrder(ctx, user.ID, goodsID, num); err != nil {
		return failFrom(err, MsgServerFailed)
	}

	if res := s.FetchMyOrders(ctx); !res.Success {
		s.log.Warn(ctx, "order list refresh failed", "message", res.Message)
	}
	return ok()
}

// UpdateOrderStatus performs the single status transition the client is
// allowed, then refetches the order list.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status string) Result {
	if s.CurrentUser() == nil {
		return fail(MsgNotLoggedIn)
	}

	if err := s.api.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return failFrom(err, MsgServerFailed)
	}

	if res := s.FetchMyOrders(ctx); !res.Success {
		s.log.Warn(ctx, "order list refresh failed", "message", res.Message)
	}
	return ok()
}
