package ui

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Confirm(ctx context.Context) error
	Logout(ctx context.Context) error
	Market(ctx context.Context) error
	OpenItem(ctx context.Context, id int64) error
	PostItem(ctx context.Context) error
	MarkSold(ctx context.Context, id int64) error
	Tasks(ctx context.Context) error
	PostTask(ctx context.Context) error
	GrabTask(ctx context.Context, id int64) error
	Chat(ctx context.Context) error
	OpenChat(ctx context.Context, userID int64) error
	SendChat(ctx context.Context, userID int64, text string) error
	Orders(ctx context.Context) error
	Buy(ctx context.Context, goodsID int64, num int) error
	Profile(ctx context.Context) error
	UploadAvatar(ctx context.Context, path string) error
	Preferences(ctx context.Context) error
}

// runREPL starts a read-eval-print loop over the marketplace pages.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands map onto the app's pages and actions:
//
//	Not logged in:
//	  - help                 — show available commands
//	  - register             — create an account
//	  - confirm              — enter the email confirmation code
//	  - login                — sign in
//	  - exit | quit          — leave the program
//
//	Logged in:
//	  - market | m           — browse second-hand listings
//	  - item <id>            — show one listing in detail
//	  - post                 — publish an item for sale
//	  - sold <id>            — mark your listing as sold
//	  - tasks | t            — browse open errands
//	  - posttask             — publish an errand
//	  - grab <id>            — accept an errand
//	  - chat                 — list chat partners and unread counts
//	  - open <userID>        — open a conversation
//	  - send <userID> <text> — send a message
//	  - orders               — list your orders
//	  - buy <goodsID> [num]  — place an order
//	  - profile              — your info, listings and errands
//	  - avatar <path>        — upload a new avatar image
//	  - prefs                — edit label preferences
//	  - logout               — sign out
//	  - exit | quit          — leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cm> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (m)arket, item, post, sold, (t)asks, posttask, grab, chat, open, send, orders, buy, profile, avatar, prefs, logout, exit")
			} else {
				printlnFn("Available commands: register, confirm, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "confirm":
			_ = a.Confirm(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "m", "market":
			_ = a.Market(ctx)

		case "item":
			id, ok := parseID(args, "Usage: item <id>")
			if !ok {
				continue
			}
			_ = a.OpenItem(ctx, id)

		case "post":
			_ = a.PostItem(ctx)

		case "sold":
			id, ok := parseID(args, "Usage: sold <id>")
			if !ok {
				continue
			}
			_ = a.MarkSold(ctx, id)

		case "t", "tasks":
			_ = a.Tasks(ctx)

		case "posttask":
			_ = a.PostTask(ctx)

		case "grab":
			id, ok := parseID(args, "Usage: grab <id>")
			if !ok {
				continue
			}
			_ = a.GrabTask(ctx, id)

		case "chat":
			_ = a.Chat(ctx)

		case "open":
			id, ok := parseID(args, "Usage: open <userID>")
			if !ok {
				continue
			}
			_ = a.OpenChat(ctx, id)

		case "send":
			if len(args) < 2 {
				printlnFn("Usage: send <userID> <text>")
				continue
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				printlnFn("Usage: send <userID> <text>")
				continue
			}
			_ = a.SendChat(ctx, id, strings.Join(args[1:], " "))

		case "orders":
			_ = a.Orders(ctx)

		case "buy":
			id, ok := parseID(args, "Usage: buy <goodsID> [num]")
			if !ok {
				continue
			}
			num := 1
			if len(args) > 1 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					printlnFn("Usage: buy <goodsID> [num]")
					continue
				}
				num = n
			}
			_ = a.Buy(ctx, id, num)

		case "profile":
			_ = a.Profile(ctx)

		case "avatar":
			if len(args) == 0 {
				printlnFn("Usage: avatar <path>")
				continue
			}
			_ = a.UploadAvatar(ctx, args[0])

		case "prefs":
			_ = a.Preferences(ctx)

		case "exit", "quit":
			printlnFn("再见!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		printlnFn(usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn(usage)
		return 0, false
	}
	return id, true
}
