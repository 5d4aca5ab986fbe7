package store

import (
	"context"

	"github.com/jlin2026/campusmarket/internal/api"
	"github.com/jlin2026/campusmarket/internal/models"
)

// LoadUser makes sure the given user is present in the per-id cache,
// fetching it if needed. Cached entries are served as-is even when stale;
// a later LoadChatUsers refresh self-corrects.
func (s *Store) LoadUser(ctx context.Context, id int64) Result {
	s.mu.Lock()
	_, cached := s.state.Users[id]
	s.mu.Unlock()
	if cached {
		return ok()
	}

	rec, err := s.api.User(ctx, id)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}
	u := models.UserFromRecord(*rec, s.baseURL, s.now())

	s.mu.Lock()
	s.state.Users[u.ID] = u
	s.mu.Unlock()
	return ok()
}

// LoadMyGoods fills the profile page's own-listings section. Unlike the
// market listing this is unfiltered: the owner sees sold records too.
func (s *Store) LoadMyGoods(ctx context.Context) Result {
	user := s.CurrentUser()
	if user == nil {
		return fail(MsgNotLoggedIn)
	}

	recs, err := s.api.UserGoods(ctx, user.ID)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	goods := make([]models.Good, 0, len(recs))
	for _, rec := range recs {
		goods = append(goods, models.GoodFromRecord(rec))
	}

	s.mu.Lock()
	s.state.MyGoods = goods
	s.mu.Unlock()
	return ok()
}

// LoadMyTasks fills the profile page's own-errands section, also
// unfiltered.
func (s *Store) LoadMyTasks(ctx context.Context) Result {
	user := s.CurrentUser()
	if user == nil {
		return fail(MsgNotLoggedIn)
	}

	recs, err := s.api.UserTasks(ctx, user.ID)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	tasks := make([]models.Task, 0, len(recs))
	for _, rec := range recs {
		tasks = append(tasks, models.TaskFromRecord(rec))
	}

	s.mu.Lock()
	s.state.MyTasks = tasks
	s.mu.Unlock()
	return ok()
}

// UploadAvatar replaces the current user's avatar. The upload and the
// avatar refetch are two steps; if only the refetch fails the upload
// stands and the caller gets a success with a warning, mirroring the
// posting contract.
func (s *Store) UploadAvatar(ctx context.Context, file api.FileAttachment) Result {
	user := s.CurrentUser()
	if user == nil {
		return fail(MsgNotLoggedIn)
	}

	if err := s.api.Upload(ctx, "avatar", user.ID, []api.FileAttachment{file}); err != nil {
		return failFrom(err, MsgServerFailed)
	}

	raw, err := s.api.UserAvatar(ctx, user.ID)
	if err != nil {
		s.log.Warn(ctx, "avatar refetch failed", "err", err)
		return Result{Success: true, Warning: "头像已上传，刷新后生效"}
	}

	avatar := models.NormalizeAvatarURL(raw, s.baseURL, s.now())

	s.mu.Lock()
	if s.state.CurrentUser == nil {
		// Logged out while the refetch was in flight. The upload stood,
		// there is just no session left to update.
		s.mu.Unlock()
		return ok()
	}
	s.state.CurrentUser.Avatar = avatar
	s.state.Users[user.ID] = *s.state.CurrentUser
	updated := *s.state.CurrentUser
	s.mu.Unlock()

	if err := s.session.Save(ctx, &updated); err != nil {
		s.log.Error(ctx, "session save failed", "err", err)
	}
	return ok()
}
