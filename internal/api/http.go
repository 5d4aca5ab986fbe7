package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jlin2026/campusmarket/internal/logging"
	"github.com/jlin2026/campusmarket/internal/models"
)

// HTTPClient implements Client over plain JSON/multipart HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu     sync.RWMutex
	userID int64 // 0 means anonymous
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the given base URL. timeout bounds every
// request; image lookups are further bounded per item by the store.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
	}
}

func (c *HTTPClient) SetUserID(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = id
}

func (c *HTTPClient) ClearUserID() {
	c.SetUserID(0)
}

func (c *HTTPClient) currentUserID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// doJSON runs one request/response cycle. Non-2xx responses become
// *BackendError with the body's "error" field; transport and decode
// failures are wrapped in ErrUnavailable.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req)

	return c.send(req, out)
}

func (c *HTTPClient) setCommonHeaders(req *http.Request) {
	req.Header.Set("X-Request-ID", uuid.NewString())
	if id := c.currentUserID(); id != 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(id, 10))
	}
}

func (c *HTTPClient) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "request failed",
			"method", req.Method, "path", req.URL.Path, "err", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return backendErrorFromBody(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
		}
	}
	return nil
}

func backendErrorFromBody(status int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	// A non-JSON error body still yields a usable BackendError, just
	// without a message.
	_ = json.Unmarshal(body, &payload)
	return &BackendError{Status: status, Message: payload.Error}
}

// --- auth and account lifecycle ---

func (c *HTTPClient) Login(ctx context.Context, studentID, password string) (*models.UserRecord, error) {
	body := map[string]string{"studentId": studentID, "password": password}
	var resp struct {
		User models.UserRecord `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/user/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) RegisterUser(ctx context.Context, name, email, password string) (int64, error) {
	body := map[string]string{"name": name, "email": email, "pswd": password}
	var resp struct {
		UserID int64 `json:"user_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/user/register", body, &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

func (c *HTTPClient) ConfirmUser(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodGet, "/user/confirm?token="+url.QueryEscape(token), nil, nil)
}

// --- labels and preferences ---

func (c *HTTPClient) Labels(ctx context.Context) ([]models.Label, error) {
	var labels []models.Label
	if err := c.doJSON(ctx, http.MethodGet, "/labels", nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (c *HTTPClient) UpdatePreferences(ctx context.Context, userID int64, labelIDs []int64) error {
	body := map[string]any{"labels": labelIDs}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/user/%d/preferences", userID), body, nil)
}

// --- goods and tasks ---

func (c *HTTPClient) RandomGoods(ctx context.Context, num int, isTask bool) ([]models.GoodRecord, error) {
	path := fmt.Sprintf("/goods/random?num=%d", num)
	if isTask {
		path += "&is_task=true"
	}
	var goods []models.GoodRecord
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &goods); err != nil {
		return nil, err
	}
	return goods, nil
}

func (c *HTTPClient) Good(ctx context.Context, id int64) (*models.GoodRecord, error) {
	var rec models.GoodRecord
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/goods/%d", id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GoodImages fetches the image URL list for one good. Note the singular
// /good prefix; the backend really is inconsistent here.
func (c *HTTPClient) GoodImages(ctx context.Context, id int64) ([]string, error) {
	var resp struct {
		ImageURLs []string `json:"image_urls"`
	}
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/good/%d/images", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.ImageURLs, nil
}

func (c *HTTPClient) CreateGood(ctx context.Context, req CreateGoodRequest) (*models.GoodRecord, error) {
	if req.Labels == nil {
		req.Labels = []int64{} // the backend rejects a null labels field
	}
	var rec models.GoodRecord
	if err := c.doJSON(ctx, http.MethodPost, "/goods", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) UpdateGoodStatus(ctx context.Context, id int64, status string) error {
	body := map[string]string{"status": status}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/goods/%d/status", id), body, nil)
}

// Upload posts files via multipart form data, tagged with the owning
// record: kind is "good" or "avatar", id the record's server-assigned id.
func (c *HTTPClient) Upload(ctx context.Context, kind string, id int64, files []FileAttachment) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("type", kind); err != nil {
		return fmt.Errorf("building upload: %w", err)
	}
	if err := w.WriteField("id", strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("building upload: %w", err)
	}
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return fmt.Errorf("building upload: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("building upload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("building upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.setCommonHeaders(req)

	return c.send(req, nil)
}

// --- users ---

func (c *HTTPClient) User(ctx context.Context, id int64) (*models.UserRecord, error) {
	var rec models.UserRecord
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/user/%d", id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) UserAvatar(ctx context.Context, id int64) (string, error) {
	var resp struct {
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/user/%d/avatar", id), nil, &resp); err != nil {
		return "", err
	}
	return resp.AvatarURL, nil
}

func (c *HTTPClient) UserGoods(ctx context.Context, id int64) ([]models.GoodRecord, error) {
	var goods []models.GoodRecord
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/user/%d/goods", id), nil, &goods); err != nil {
		return nil, err
	}
	return goods, nil
}

func (c *HTTPClient) UserTasks(ctx context.Context, id int64) ([]models.GoodRecord, error) {
	var goods []models.GoodRecord
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/user/%d/tasks", id), nil, &goods); err != nil {
		return nil, err
	}
	return goods, nil
}

// --- messages ---

func (c *HTTPClient) SendMessage(ctx context.Context, receiverID int64, text string) (*models.MessageRecord, error) {
	body := map[string]any{"receiver_id": receiverID, "text": text}
	var rec models.MessageRecord
	if err := c.doJSON(ctx, http.MethodPost, "/messages", body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) Conversation(ctx context.Context, userID int64) ([]models.MessageRecord, error) {
	var msgs []models.MessageRecord
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/messages/%d", userID), nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *HTTPClient) ChatPartners(ctx context.Context) ([]models.UserRecord, error) {
	var users []models.UserRecord
	if err := c.doJSON(ctx, http.MethodGet, "/messages/list", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/messages/unread/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *HTTPClient) UnreadBySender(ctx context.Context, senderID int64) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	path := fmt.Sprintf("/messages/unread/by-sender/%d", senderID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *HTTPClient) MarkRead(ctx context.Context, senderID int64) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/messages/mark-read/%d", senderID), nil, nil)
}

// --- orders ---

func (c *HTTPClient) MyOrders(ctx context.Context) ([]models.OrderRecord, error) {
	var orders []models.OrderRecord
	if err := c.doJSON(ctx, http.MethodGet, "/orders/mine", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, buyerID, goodsID int64, num int) (*models.OrderRecord, error) {
	body := map[string]any{"buyer_id": buyerID, "goods_id": goodsID, "num": num}
	var rec models.OrderRecord
	if err := c.doJSON(ctx, http.MethodPost, "/orders", body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	body := map[string]string{"status": status}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/status", id), body, nil)
}
