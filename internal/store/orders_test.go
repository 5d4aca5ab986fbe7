package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlin2026/campusmarket/internal/api"
	"github.com/jlin2026/campusmarket/internal/models"
)

func TestFetchMyOrders_MapsRecords(t *testing.T) {
	fc := &fakeClient{MyOrdersRet: []models.OrderRecord{
		{ID: 1, GoodsID: 7, GoodName: "课本", Num: 1, Image: "/media/goods/7.png", Status: "pending"},
	}}
	s := newTestStore(fc, &fakeSession{})
	loginAs(t, s, fc, 1)

	res := s.FetchMyOrders(context.Background())

	require.True(t, res.Success)
	snap := s.Snapshot()
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, "课本", snap.Orders[0].GoodName)
	assert.Equal(t, "http://api/media/goods/7.png", snap.Orders[0].Image)
}

func TestFetchMyOrders_RequiresLogin(t *testing.T) {
	fc := &fakeClient{}
	s := newTestStore(fc, &fakeSession{})

	res := s.FetchMyOrders(context.Background())

	assert.False(t, res.Success)
	assert.Equal(t, MsgNotLoggedIn, res.Message)
	assert.Empty(t, fc.callLog())
}

func TestPlaceOrder_CreatesAndRefetches(t *testing.T) {
	fc := &fakeClient{
		CreateOrderRet: &models.OrderRecord{ID: 5, GoodsID: 7, Num: 1},
		MyOrdersRet:    []models.OrderRecord{{ID: 5, GoodsID: 7, Num: 1}},
	}
	s := newTestStore(fc, &fakeSession{})
	loginAs(t, s, fc, 1)

	res := s.PlaceOrder(context.Background(), 7, 1)

	require.True(t, res.Success)
	assert.Equal(t, int64(7), fc.LastOrderGoodsID)
	assert.Equal(t, 1, fc.LastOrderNum)
	assert.Equal(t, []string{"CreateOrder", "MyOrders"}, fc.callLog())
	assert.Len(t, s.Snapshot().Orders, 1)
}

func TestPlaceOrder_RejectsBadQuantity(t *testing.T) {
	fc := &fakeClient{}
	s := newTestStore(fc, &fakeSession{})
	loginAs(t, s, fc, 1)

	res := s.PlaceOrder(context.Background(), 7, 0)

	assert.False(t, res.Success)
	assert.Empty(t, fc.callLog())
}

func TestPlaceOrder_BackendMessageSurfaced(t *testing.T) {
	fc := &fakeClient{CreateOrderErr: &api.BackendError{Status: 400, Message: "库存不足"}}
	s := newTestStore(fc, &fakeSession{})
	loginAs(t, s, fc, 1)

	res := s.PlaceOrder(context.Background(), 7, 2)

	assert.False(t, res.Success)
	assert.Equal(t, "库存不足", res.Message)
}

func TestUpdateOrderStatus_Refetches(t *testing.T) {
	fc := &fakeClient{MyOrdersRet: []models.OrderRecord{}}
	s := newTestStore(fc, &fakeSession{})
	loginAs(t, s, fc, 1)

	res := s.UpdateOrderStatus(context.Background(), 5, "completed")

	require.True(t, res.Success)
	assert.Equal(t, "completed", fc.LastOrderStatus)
	assert.Equal(t, []string{"UpdateOrderStatus", "MyOrders"}, fc.callLog())
}
