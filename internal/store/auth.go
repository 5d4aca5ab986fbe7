package store

import (
	"context"

	"github.com/jlin2026/campusmarket/internal/models"
)

// Restore adopts a previously persisted session at startup, if any.
func (s *Store) Restore(ctx context.Context) {
	u, err := s.session.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "session restore failed", "err", err)
		return
	}
	if u != nil {
		s.adoptUser(*u)
		s.log.Info(ctx, "session restored", "user_id", u.ID)
	}
}

// Login authenticates with the backend and, on success, adopts the
// returned user record (avatar URL normalized) and mirrors it into the
// session store.
func (s *Store) Login(ctx context.Context, studentID, password string) Result {
	if studentID == "" || password == "" {
		return fail("请输入学号和密码")
	}

	rec, err := s.api.Login(ctx, studentID, password)
	if err != nil {
		return failFrom(err, MsgLoginFailed)
	}

	u := models.UserFromRecord(*rec, s.baseURL, s.now())
	s.adoptUser(u)

	if err := s.session.Save(ctx, &u); err != nil {
		// The in-memory session still works; only persistence is degraded.
		s.log.Error(ctx, "session save failed", "err", err)
	}
	return ok()
}

// Logout drops the current user, the caches that only make sense within a
// login, and the persisted session. Calling it while already logged out is
// a no-op success.
func (s *Store) Logout(ctx context.Context) Result {
	s.mu.Lock()
	s.state.CurrentUser = nil
	s.state.Messages = nil
	s.state.Users = make(map[int64]models.User)
	s.state.ChatPartnerIDs = nil
	s.state.ActiveChatUserID = 0
	s.state.UnreadTotal = 0
	s.state.UnreadBySender = make(map[int64]int)
	s.state.Orders = nil
	s.state.MyGoods = nil
	s.state.MyTasks = nil
	s.mu.Unlock()

	s.api.ClearUserID()

	if err := s.session.Clear(ctx); err != nil {
		s.log.Error(ctx, "session clear failed", "err", err)
	}
	return ok()
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Register creates an account. The backend sends a confirmation mail; the
// user stays anonymous until they log in after confirming.
func (s *Store) Register(ctx context.Context, input RegisterInput) Result {
	if err := s.validate.Struct(input); err != nil {
		return fail("请正确填写昵称、邮箱和密码（至少6位）")
	}

	if _, err := s.api.RegisterUser(ctx, input.Name, input.Email, input.Password); err != nil {
		return failFrom(err, MsgServerFailed)
	}
	return okMsg("注册成功，确认邮件已发送，请查收")
}

// Confirm redeems an email confirmation token.
func (s *Store) Confirm(ctx context.Context, token string) Result {
	if token == "" {
		return fail("请输入确认码")
	}
	if err := s.api.ConfirmUser(ctx, token); err != nil {
		return failFrom(err, MsgServerFailed)
	}
	return okMsg("邮箱验证成功，现在可以登录了")
}
