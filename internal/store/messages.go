package store

import (
	"context"
	"strings"
	"sync"

	"github.com/jlin2026/campusmarket/internal/models"
)

// SendMessage posts a message to the backend and appends the created
// record to the local message sequence. Preconditions (logged in,
// non-empty text) are rejected before any network call.
func (s *Store) SendMessage(ctx context.Context, receiverID int64, text string) Result {
	if s.CurrentUser() == nil {
		return fail(MsgNotLoggedIn)
	}
	if strings.TrimSpace(text) == "" {
		return fail(MsgEmptyMessage)
	}

	rec, err := s.api.SendMessage(ctx, receiverID, text)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	s.mu.Lock()
	s.state.Messages = append(s.state.Messages, models.MessageFromRecord(*rec))
	s.mu.Unlock()
	return ok()
}

// LoadConversation replaces the message sequence with the conversation
// against the given user. No merging: the latest fetch wins.
func (s *Store) LoadConversation(ctx context.Context, userID int64) Result {
	if s.CurrentUser() == nil {
		return fail(MsgNotLoggedIn)
	}

	recs, err := s.api.Conversation(ctx, userID)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	msgs := make([]models.Message, 0, len(recs))
	for _, rec := range recs {
		msgs = append(msgs, models.MessageFromRecord(rec))
	}

	s.mu.Lock()
	s.state.Messages = msgs
	s.mu.Unlock()
	return ok()
}

// LoadChatUsers refreshes the chat partner list, folding the returned
// user records into the per-id cache (existing entries are replaced, none
// are evicted). Per-partner unread counts are fetched concurrently; a
// failed count shows as zero.
func (s *Store) LoadChatUsers(ctx context.Context) Result {
	if s.CurrentUser() == nil {
		return fail(MsgNotLoggedIn)
	}

	recs, err := s.api.ChatPartners(ctx)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	ids := make([]int64, 0, len(recs))
	users := make([]models.User, 0, len(recs))
	for _, rec := range recs {
		u := models.UserFromRecord(rec, s.baseURL, s.now())
		ids = append(ids, u.ID)
		users = append(users, u)
	}

	unread := make([]int, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.api.UnreadBySender(ctx, id)
			if err != nil {
				s.log.Warn(ctx, "unread count lookup failed", "sender_id", id, "err", err)
				return
			}
			unread[i] = n
		}()
	}
	wg.Wait()

	s.mu.Lock()
	for _, u := range users {
		s.state.Users[u.ID] = u
	}
	s.state.ChatPartnerIDs = ids
	for i, id := range ids {
		s.state.UnreadBySender[id] = unread[i]
	}
	s.mu.Unlock()
	return ok()
}

// SetActiveChatUser opens a conversation: ensures the counterparty is
// cached, loads the message history and marks it read. Mark-read and
// unread-refresh failures degrade silently; the conversation still opens.
func (s *Store) SetActiveChatUser(ctx context.Context, userID int64) Result {
	if s.CurrentUser() == nil {
		return fail(MsgNotLoggedIn)
	}

	if res := s.LoadUser(ctx, userID); !res.Success {
		return res
	}
	if res := s.LoadConversation(ctx, userID); !res.Success {
		return res
	}

	s.mu.Lock()
	s.state.ActiveChatUserID = userID
	s.mu.Unlock()

	if err := s.api.MarkRead(ctx, userID); err != nil {
		s.log.Warn(ctx, "mark read failed", "sender_id", userID, "err", err)
	} else {
		s.mu.Lock()
		s.state.UnreadBySender[userID] = 0
		s.mu.Unlock()
	}

	if res := s.RefreshUnread(ctx); !res.Success {
		s.log.Warn(ctx, "unread refresh failed", "message", res.Message)
	}
	return ok()
}

// RefreshUnread updates the total unread counter shown in the chat page
// header.
func (s *Store) RefreshUnread(ctx context.Context) Result {
	if s.CurrentUser() == nil {
		return fail(MsgNotLoggedIn)
	}

	n, err := s.api.UnreadCount(ctx)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	s.mu.Lock()
	s.state.UnreadTotal = n
	s.mu.Unlock()
	return ok()
}

// ConversationWith filters the flat message sequence down to the exchange
// with one user, for rendering.
func (s *Store) ConversationWith(userID int64) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	me := s.state.CurrentUser
	if me == nil {
		return nil
	}

	var out []models.Message
	for _, m := range s.state.Messages {
		if (m.SenderID == userID && m.ReceiverID == me.ID) ||
			(m.SenderID == me.ID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	return out
}
