// Package api is the typed HTTP client for the campus marketplace backend.
// It does serialization, identity headers and error extraction only; all
// reshaping into UI models happens in the store.
package api

import (
	"context"

	"github.com/jlin2026/campusmarket/internal/models"
)

// FileAttachment is one file for a multipart upload.
type FileAttachment struct {
	Name string
	Data []byte
}

// CreateGoodRequest is the body of POST /goods. Tasks reuse the same
// endpoint with IsTask set and notes/location packed into Description.
type CreateGoodRequest struct {
	Name        string  `json:"name"`
	SellerID    int64   `json:"seller_id"`
	Num         int     `json:"num"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
	Labels      []int64 `json:"labels"`
	IsTask      bool    `json:"is_task,omitempty"`
}

// Client is the full backend surface the store consumes. Implementations
// must honor context cancellation and never retry on their own: every
// failure is terminal for the triggering user action.
type Client interface {
	// Identity header management. The store sets the id on login and
	// clears it on logout; authenticated calls send it as X-User-ID.
	SetUserID(id int64)
	ClearUserID()

	// Auth and account lifecycle.
	Login(ctx context.Context, studentID, password string) (*models.UserRecord, error)
	RegisterUser(ctx context.Context, name, email, password string) (int64, error)
	ConfirmUser(ctx context.Context, token string) error

	// Labels and mail preferences.
	Labels(ctx context.Context) ([]models.Label, error)
	UpdatePreferences(ctx context.Context, userID int64, labelIDs []int64) error

	// Goods and tasks.
	RandomGoods(ctx context.Context, num int, isTask bool) ([]models.GoodRecord, error)
	Good(ctx context.Context, id int64) (*models.GoodRecord, error)
	GoodImages(ctx context.Context, id int64) ([]string, error)
	CreateGood(ctx context.Context, req CreateGoodRequest) (*models.GoodRecord, error)
	UpdateGoodStatus(ctx context.Context, id int64, status string) error
	Upload(ctx context.Context, kind string, id int64, files []FileAttachment) error

	// Users.
	User(ctx context.Context, id int64) (*models.UserRecord, error)
	UserAvatar(ctx context.Context, id int64) (string, error)
	UserGoods(ctx context.Context, id int64) ([]models.GoodRecord, error)
	UserTasks(ctx context.Context, id int64) ([]models.GoodRecord, error)

	// Messages. All of these require the identity header.
	SendMessage(ctx context.Context, receiverID int64, text string) (*models.MessageRecord, error)
	Conversation(ctx context.Context, userID int64) ([]models.MessageRecord, error)
	ChatPartners(ctx context.Context) ([]models.UserRecord, error)
	UnreadCount(ctx context.Context) (int, error)
	UnreadBySender(ctx context.Context, senderID int64) (int, error)
	MarkRead(ctx context.Context, senderID int64) error

	// Orders.
	MyOrders(ctx context.Context) ([]models.OrderRecord, error)
	CreateOrder(ctx context.Context, buyerID, goodsID int64, num int) (*models.OrderRecord, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
}
