package ui

import (
	"context"
	"fmt"
	"time"
)

// Chat lists chat partners with their unread counts.
func (a *App) Chat(ctx context.Context) error {
	if !a.visit(ctx, PageChat) {
		return nil
	}

	if res := a.store.LoadChatUsers(ctx); !res.Success {
		report(res)
		return nil
	}
	if res := a.store.RefreshUnread(ctx); !res.Success {
		report(res)
	}

	snap := a.store.Snapshot()
	if len(snap.ChatPartnerIDs) == 0 {
		printlnFn("还没有聊天记录")
		return nil
	}
	for _, id := range snap.ChatPartnerIDs {
		u := snap.Users[id]
		line := fmt.Sprintf("[%d] %s", u.ID, u.Name)
		if n := snap.UnreadBySender[id]; n > 0 {
			line = fmt.Sprintf("%s  (%d 条未读)", line, n)
		}
		printlnFn(line)
	}
	return nil
}

// OpenChat opens the conversation with one user and renders it oldest
// first, marking it read.
func (a *App) OpenChat(ctx context.Context, userID int64) error {
	if !a.visit(ctx, PageChat) {
		return nil
	}

	if res := a.store.SetActiveChatUser(ctx, userID); !res.Success {
		report(res)
		return nil
	}

	a.renderConversation(userID)
	return nil
}

// SendChat sends one message and re-renders the exchange.
func (a *App) SendChat(ctx context.Context, userID int64, text string) error {
	if !a.visit(ctx, PageChat) {
		return nil
	}

	if res := a.store.SendMessage(ctx, userID, text); !res.Success {
		report(res)
		return nil
	}

	// A send without a prior open has no cached partner yet; rendering
	// falls back to the numeric id if this lookup fails too.
	if res := a.store.LoadUser(ctx, userID); !res.Success {
		report(res)
	}

	a.renderConversation(userID)
	return nil
}

func (a *App) renderConversation(userID int64) {
	snap := a.store.Snapshot()
	me := snap.CurrentUser

	partnerName := snap.Users[userID].Name
	if partnerName == "" {
		partnerName = fmt.Sprintf("用户%d", userID)
	}

	msgs := a.store.ConversationWith(userID)
	if len(msgs) == 0 {
		printlnFn(fmt.Sprintf("和 %s 还没有聊过", partnerName))
		return
	}
	for _, m := range msgs {
		name := partnerName
		if me != nil && m.SenderID == me.ID {
			name = "我"
		}
		ts := time.UnixMilli(m.Timestamp).Format("2006-01-02 15:04")
		printlnFn(fmt.Sprintf("%s  %s: %s", ts, name, m.Text))
	}
}
