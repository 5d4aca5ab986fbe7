package ui

import "github.com/jlin2026/campusmarket/internal/models"

// Page names mirror the app's navigation structure: the market and task
// boards, chat, profile, orders and preferences, plus the auth pages.
const (
	PageLogin    = "login"
	PageRegister = "register"
	PageConfirm  = "confirm"
	PageMarket   = "market"
	PageTasks    = "tasks"
	PageChat     = "chat"
	PageProfile  = "profile"
	PageOrders   = "orders"
	PagePrefs    = "prefs"
)

// publicPages are reachable without a signed-in user.
var publicPages = map[string]bool{
	PageLogin:    true,
	PageRegister: true,
	PageConfirm:  true,
}

// Navigate applies the auth guard: an anonymous visitor asking for a
// protected page lands on the login page instead. The boolean reports
// whether the request was redirected.
func Navigate(to string, user *models.User) (string, bool) {
	if user == nil && !publicPages[to] {
		return PageLogin, true
	}
	return to, false
}
