package ui

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Confirm(ctx context.Context) error {
	f.calls = append(f.calls, "confirm")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Market(ctx context.Context) error {
	f.calls = append(f.calls, "market")
	return nil
}
func (f *fakeExec) OpenItem(ctx context.Context, id int64) error {
	f.calls = append(f.calls, fmt.Sprintf("item:%d", id))
	return nil
}
func (f *fakeExec) PostItem(ctx context.Context) error {
	f.calls = append(f.calls, "post")
	return nil
}
func (f *fakeExec) MarkSold(ctx context.Context, id int64) error {
	f.calls = append(f.calls, fmt.Sprintf("sold:%d", id))
	return nil
}
func (f *fakeExec) Tasks(ctx context.Context) error {
	f.calls = append(f.calls, "tasks")
	return nil
}
func (f *fakeExec) PostTask(ctx context.Context) error {
	f.calls = append(f.calls, "posttask")
	return nil
}
func (f *fakeExec) GrabTask(ctx context.Context, id int64) error {
	f.calls = append(f.calls, fmt.Sprintf("grab:%d", id))
	return nil
}
func (f *fakeExec) Chat(ctx context.Context) error {
	f.calls = append(f.calls, "chat")
	return nil
}
func (f *fakeExec) OpenChat(ctx context.Context, userID int64) error {
	f.calls = append(f.calls, fmt.Sprintf("open:%d", userID))
	return nil
}
func (f *fakeExec) SendChat(ctx context.Context, userID int64, text string) error {
	f.calls = append(f.calls, fmt.Sprintf("send:%d:%s", userID, text))
	return nil
}
func (f *fakeExec) Orders(ctx context.Context) error {
	f.calls = append(f.calls, "orders")
	return nil
}
func (f *fakeExec) Buy(ctx context.Context, goodsID int64, num int) error {
	f.calls = append(f.calls, fmt.Sprintf("buy:%d:%d", goodsID, num))
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeExec) UploadAvatar(ctx context.Context, path string) error {
	f.calls = append(f.calls, "avatar:"+path)
	return nil
}
func (f *fakeExec) Preferences(ctx context.Context) error {
	f.calls = append(f.calls, "prefs")
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"market",
		"item 42",
		"tasks",
		"grab 10",
		"chat",
		"send 2 在吗 还在吗",
		"buy 7 2",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	want := []string{
		"login", "market", "item:42", "tasks", "grab:10",
		"chat", "send:2:在吗 还在吗", "buy:7:2",
	}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("call %d: got %q, want %q (all: %v)", i, exec.calls[i], want[i], exec.calls)
		}
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"item",
		"item notanid",
		"send 2",
		"buy 7 x",
		"avatar",
		"quit",
	}, "\n"))
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_DefaultBuyQuantityIsOne(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("buy 7\nexit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "buy:7:1" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
