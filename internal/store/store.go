// Package store owns the client-side state of the campus marketplace app
// and every operation that touches the backend. Pages read a snapshot of
// the state and invoke store methods on user action; each method performs
// its network calls, then mutates state, then returns a Result — in that
// order, always.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jlin2026/campusmarket/internal/api"
	"github.com/jlin2026/campusmarket/internal/logging"
	"github.com/jlin2026/campusmarket/internal/models"
	"github.com/jlin2026/campusmarket/internal/session"
)

// State is everything the views render. The goods and task lists always
// hold the latest fetch result; there is no incremental merging. The users
// map only grows within a login session and may go stale.
type State struct {
	CurrentUser *models.User

	Items      []models.Good
	Tasks      []models.Task
	ActiveItem *models.Good

	Messages         []models.Message
	Users            map[int64]models.User
	ChatPartnerIDs   []int64
	ActiveChatUserID int64
	UnreadTotal      int
	UnreadBySender   map[int64]int

	Orders []models.Order
	Labels []models.Label

	MyGoods []models.Good
	MyTasks []models.Task
}

// Options carry the store's environment-derived knobs.
type Options struct {
	BaseURL      string
	PageSize     int
	ImageTimeout time.Duration

	// Now is a clock override for tests; nil means time.Now.
	Now func() time.Time
}

// Store is the single owner of State. All mutation goes through its
// methods; the mutex exists because listing fetches fan out and a
// superseded fetch may resolve after the REPL has moved on.
type Store struct {
	mu    sync.Mutex
	state State

	api      api.Client
	session  session.Provider
	log      logging.Logger
	validate *validator.Validate

	baseURL      string
	pageSize     int
	imageTimeout time.Duration
	now          func() time.Time

	// Listing generations. A fetch publishes its result only if no newer
	// fetch of the same listing has started meanwhile.
	itemsGen uint64
	tasksGen uint64
}

func New(apiClient api.Client, sess session.Provider, log logging.Logger, opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		state: State{
			Users:          make(map[int64]models.User),
			UnreadBySender: make(map[int64]int),
		},
		api:          apiClient,
		session:      sess,
		log:          log.With("component", "store"),
		validate:     validator.New(),
		baseURL:      opts.BaseURL,
		pageSize:     opts.PageSize,
		imageTimeout: opts.ImageTimeout,
		now:          now,
	}
}

// Snapshot returns a copy of the current state for rendering. Slices are
// shared with the store; views must treat them as read-only.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns a copy of the logged-in user, or nil when anonymous.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentUser == nil {
		return nil
	}
	u := *s.state.CurrentUser
	return &u
}

// ResolveUser is what the navigation guard consults: live state first,
// then the persisted session as a recovery path against state loss. A
// session hit is adopted back into state so subsequent calls are cheap.
func (s *Store) ResolveUser(ctx context.Context) *models.User {
	if u := s.CurrentUser(); u != nil {
		return u
	}

	u, err := s.session.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "session load failed", "err", err)
		return nil
	}
	if u == nil {
		return nil
	}

	s.adoptUser(*u)
	return u
}

// adoptUser installs a user as the current one and mirrors it into the
// per-id cache and the API client's identity header.
func (s *Store) adoptUser(u models.User) {
	s.mu.Lock()
	s.state.CurrentUser = &u
	s.state.Users[u.ID] = u
	s.mu.Unlock()
	s.api.SetUserID(u.ID)
}
