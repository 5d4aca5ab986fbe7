package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jlin2026/campusmarket/internal/store"
	"github.com/jlin2026/campusmarket/internal/textgen"
)

// App drives the terminal UI: it owns the reactive store, the optional
// description polisher and the input/output streams, and exposes one
// method per REPL command.
type App struct {
	store    *store.Store
	polisher *textgen.Polisher
	reader   *bufio.Reader
	out      io.Writer
	page     string
}

func NewApp(s *store.Store, p *textgen.Polisher) *App {
	return &App{
		store:    s,
		polisher: p,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		page:     PageLogin,
	}
}

var _ execIface = (*App)(nil)

// Run restores any persisted session and enters the command loop.
func (a *App) Run(ctx context.Context) {
	a.store.Restore(ctx)
	if u := a.store.CurrentUser(); u != nil {
		printlnFn(fmt.Sprintf("欢迎回来，%s!", u.Name))
		a.page = PageMarket
	}
	printlnFn("校园集市 CLI (输入 'help' 查看命令)")

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.store.CurrentUser() != nil
}

func (a *App) status() string {
	s := a.page
	if u := a.store.CurrentUser(); u != nil {
		s = fmt.Sprintf("%s %s", u.Name, s)
		if n := a.store.Snapshot().UnreadTotal; n > 0 {
			s = fmt.Sprintf("%s [未读 %d]", s, n)
		}
	}
	return s
}

// visit applies the navigation guard before a page renders. Redirected
// visitors are told to log in and stay where they are.
func (a *App) visit(ctx context.Context, page string) bool {
	dest, redirected := Navigate(page, a.store.ResolveUser(ctx))
	a.page = dest
	if redirected {
		printlnFn("请先登录")
	}
	return !redirected
}
