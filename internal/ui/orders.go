package ui

import (
	"context"
	"fmt"
)

// Orders lists the caller's purchases.
func (a *App) Orders(ctx context.Context) error {
	if !a.visit(ctx, PageOrders) {
		return nil
	}

	if res := a.store.FetchMyOrders(ctx); !res.Success {
		report(res)
		return nil
	}

	orders := a.store.Snapshot().Orders
	if len(orders) == 0 {
		printlnFn("还没有订单")
		return nil
	}
	for _, o := range orders {
		printlnFn(fmt.Sprintf("[%d] %s x%d  (%s)", o.ID, o.GoodName, o.Num, o.Status))
	}
	return nil
}

// Buy places an order for a listing.
func (a *App) Buy(ctx context.Context, goodsID int64, num int) error {
	if !a.visit(ctx, PageOrders) {
		return nil
	}

	res := a.store.PlaceOrder(ctx, goodsID, num)
	if res.Success {
		printlnFn("下单成功!")
	}
	report(res)
	return nil
}
