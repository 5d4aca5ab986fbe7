package store

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jlin2026/campusmarket/internal/api"
	"github.com/jlin2026/campusmarket/internal/logging"
	"github.com/jlin2026/campusmarket/internal/models"
)

// fakeClient implements api.Client for store unit tests. Return values and
// errors are configured per method; arguments of the last call are kept
// for assertions, plus an ordered call log.
type fakeClient struct {
	mu     sync.Mutex
	calls  []string
	userID int64

	LoginRet           *models.UserRecord
	LoginErr           error
	LastLoginStudentID string

	RegisterRet int64
	RegisterErr error
	ConfirmErr  error

	LabelsRet      []models.Label
	LabelsErr      error
	UpdatePrefsErr error
	LastPrefIDs    []int64

	RandomGoodsRet map[bool][]models.GoodRecord
	RandomGoodsErr error
	GoodRet        *models.GoodRecord
	GoodErr        error
	GoodImagesRet  map[int64][]string
	GoodImagesErr  error

	CreateGoodRet  *models.GoodRecord
	CreateGoodErr  error
	LastCreateGood api.CreateGoodRequest

	UpdateGoodStatusErr error
	LastStatusGoodID    int64
	LastGoodStatus      string

	UploadErr       error
	LastUploadKind  string
	LastUploadID    int64
	LastUploadFiles []api.FileAttachment

	UserRet       *models.UserRecord
	UserErr       error
	UserAvatarRet string
	UserAvatarErr error
	UserGoodsRet  []models.GoodRecord
	UserGoodsErr  error
	UserTasksRet  []models.GoodRecord
	UserTasksErr  error

	SendMessageRet    *models.MessageRecord
	SendMessageErr    error
	ConversationRet   []models.MessageRecord
	ConversationErr   error
	ChatPartnersRet   []models.UserRecord
	ChatPartnersErr   error
	UnreadCountRet    int
	UnreadCountErr    error
	UnreadBySenderRet map[int64]int
	MarkReadErr       error
	LastMarkReadID    int64

	MyOrdersRet          []models.OrderRecord
	MyOrdersErr          error
	CreateOrderRet       *models.OrderRecord
	CreateOrderErr       error
	LastOrderGoodsID     int64
	LastOrderNum         int
	UpdateOrderStatusErr error
	LastOrderStatus      string
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeClient) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) SetUserID(id int64) { f.mu.Lock(); f.userID = id; f.mu.Unlock() }
func (f *fakeClient) ClearUserID()       { f.SetUserID(0) }

func (f *fakeClient) currentUserID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userID
}

func (f *fakeClient) Login(ctx context.Context, studentID, password string) (*models.UserRecord, error) {
	f.record("Login")
	f.LastLoginStudentID = studentID
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) RegisterUser(ctx context.Context, name, email, password string) (int64, error) {
	f.record("RegisterUser")
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) ConfirmUser(ctx context.Context, token string) error {
	f.record("ConfirmUser")
	return f.ConfirmErr
}

func (f *fakeClient) Labels(ctx context.Context) ([]models.Label, error) {
	f.record("Labels")
	return f.LabelsRet, f.LabelsErr
}

func (f *fakeClient) UpdatePreferences(ctx context.Context, userID int64, labelIDs []int64) error {
	f.record("UpdatePreferences")
	f.LastPrefIDs = labelIDs
	return f.UpdatePrefsErr
}

func (f *fakeClient) RandomGoods(ctx context.Context, num int, isTask bool) ([]models.GoodRecord, error) {
	f.record("RandomGoods")
	return f.RandomGoodsRet[isTask], f.RandomGoodsErr
}

func (f *fakeClient) Good(ctx context.Context, id int64) (*models.GoodRecord, error) {
	f.record("Good")
	return f.GoodRet, f.GoodErr
}

func (f *fakeClient) GoodImages(ctx context.Context, id int64) ([]string, error) {
	f.record("GoodImages")
	if f.GoodImagesErr != nil {
		return nil, f.GoodImagesErr
	}
	return f.GoodImagesRet[id], nil
}

func (f *fakeClient) CreateGood(ctx context.Context, req api.CreateGoodRequest) (*models.GoodRecord, error) {
	f.record("CreateGood")
	f.LastCreateGood = req
	return f.CreateGoodRet, f.CreateGoodErr
}

func (f *fakeClient) UpdateGoodStatus(ctx context.Context, id int64, status string) error {
	f.record("UpdateGoodStatus")
	f.LastStatusGoodID = id
	f.LastGoodStatus = status
	return f.UpdateGoodStatusErr
}

func (f *fakeClient) Upload(ctx context.Context, kind string, id int64, files []api.FileAttachment) error {
	f.record("Upload")
	f.LastUploadKind = kind
	f.LastUploadID = id
	f.LastUploadFiles = files
	return f.UploadErr
}

func (f *fakeClient) User(ctx context.Context, id int64) (*models.UserRecord, error) {
	f.record("User")
	return f.UserRet, f.UserErr
}

func (f *fakeClient) UserAvatar(ctx context.Context, id int64) (string, error) {
	f.record("UserAvatar")
	return f.UserAvatarRet, f.UserAvatarErr
}

func (f *fakeClient) UserGoods(ctx context.Context, id int64) ([]models.GoodRecord, error) {
	f.record("UserGoods")
	return f.UserGoodsRet, f.UserGoodsErr
}

func (f *fakeClient) UserTasks(ctx context.Context, id int64) ([]models.GoodRecord, error) {
	f.record("UserTasks")
	return f.UserTasksRet, f.UserTasksErr
}

func (f *fakeClient) SendMessage(ctx context.Context, receiverID int64, text string) (*models.MessageRecord, error) {
	f.record("SendMessage")
	return f.SendMessageRet, f.SendMessageErr
}

func (f *fakeClient) Conversation(ctx context.Context, userID int64) ([]models.MessageRecord, error) {
	f.record("Conversation")
	return f.ConversationRet, f.ConversationErr
}

func (f *fakeClient) ChatPartners(ctx context.Context) ([]models.UserRecord, error) {
	f.record("ChatPartners")
	return f.ChatPartnersRet, f.ChatPartnersErr
}

func (f *fakeClient) UnreadCount(ctx context.Context) (int, error) {
	f.record("UnreadCount")
	return f.UnreadCountRet, f.UnreadCountErr
}

func (f *fakeClient) UnreadBySender(ctx context.Context, senderID int64) (int, error) {
	f.record("UnreadBySender")
	return f.UnreadBySenderRet[senderID], nil
}

func (f *fakeClient) MarkRead(ctx context.Context, senderID int64) error {
	f.record("MarkRead")
	f.LastMarkReadID = senderID
	return f.MarkReadErr
}

func (f *fakeClient) MyOrders(ctx context.Context) ([]models.OrderRecord, error) {
	f.record("MyOrders")
	return f.MyOrdersRet, f.MyOrdersErr
}

func (f *fakeClient) CreateOrder(ctx context.Context, buyerID, goodsID int64, num int) (*models.OrderRecord, error) {
	f.record("CreateOrder")
	f.LastOrderGoodsID = goodsID
	f.LastOrderNum = num
	return f.CreateOrderRet, f.CreateOrderErr
}

func (f *fakeClient) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	f.record("UpdateOrderStatus")
	f.LastOrderStatus = status
	return f.UpdateOrderStatusErr
}

// fakeSession implements session.Provider in memory.
type fakeSession struct {
	mu       sync.Mutex
	user     *models.User
	loadErr  error
	saveErr  error
	clearErr error
	saves    int
	clears   int
}

func (f *fakeSession) Load(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.user == nil {
		return nil, nil
	}
	u := *f.user
	return &u, nil
}

func (f *fakeSession) Save(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	copied := *u
	f.user = &copied
	return nil
}

func (f *fakeSession) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.user = nil
	return nil
}

var testNow = time.UnixMilli(1756600000000)

func newTestStore(fc *fakeClient, fs *fakeSession) *Store {
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	return New(fc, fs, log, Options{
		BaseURL:      "http://api",
		PageSize:     20,
		ImageTimeout: 200 * time.Millisecond,
		Now:          func() time.Time { return testNow },
	})
}

// loginAs puts the store into an authenticated state without asserting.
func loginAs(t *testing.T, s *Store, fc *fakeClient, id int64) {
	t.Helper()
	fc.LoginRet = &models.UserRecord{ID: id, Name: "测试用户", StudentID: "2023001"}
	res := s.Login(context.Background(), "2023001", "pw")
	if !res.Success {
		t.Fatalf("test login failed: %+v", res)
	}
	fc.mu.Lock()
	fc.calls = nil
	fc.mu.Unlock()
}
