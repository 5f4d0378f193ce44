// Package shell composes the dashboard chrome (header, sidebar and content
// region) around whichever page the route guard admitted.
package shell

import (
	"context"
	"sync"

	"github.com/stockflow/dashboard/internal/core/domain"
	"github.com/stockflow/dashboard/internal/core/guard"
	"github.com/stockflow/dashboard/internal/core/navigation"
	"github.com/stockflow/dashboard/internal/core/ports"
)

const (
	LayoutDashboard = "dashboard"
	LayoutAuth      = "auth"

	SignOutPath       = "/auth/logout"
	searchPlaceholder = "Search products, orders, customers..."
)

// Action is the header's contextual primary action.
type Action struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

var (
	actionAddProduct     = Action{Label: "Add product", Target: "/products/new"}
	actionNewTransaction = Action{Label: "New transaction", Target: "/sales/new"}
)

type Header struct {
	SearchPlaceholder string `json:"search_placeholder"`
	PrimaryAction     Action `json:"primary_action"`
	Notifications     bool   `json:"notifications"`
}

type UserSummary struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

type Sidebar struct {
	Open    bool                   `json:"open"`
	Entries []navigation.EntryView `json:"entries"`
	User    UserSummary            `json:"user"`
	SignOut string                 `json:"sign_out"`
}

type Content struct {
	Page string `json:"page"`
	Path string `json:"path"`
}

// View is the rendered shell for one admitted page. Header and Sidebar are
// nil on the auth layout.
type View struct {
	Layout  string   `json:"layout"`
	Header  *Header  `json:"header,omitempty"`
	Sidebar *Sidebar `json:"sidebar,omitempty"`
	Content Content  `json:"content"`
}

var pageNames = map[string]string{
	guard.PathLogin:          "login",
	guard.PathRegister:       "register",
	guard.PathForgotPassword: "forgot_password",
	guard.PathHome:           "dashboard",
	guard.PathProducts:       "products",
	guard.PathSales:          "sales",
	guard.PathReports:        "reports",
	guard.PathUsers:          "users",
	guard.PathSettings:       "settings",
}

// Layout owns the transient shell state.
type Layout struct {
	mu          sync.Mutex
	sidebarOpen bool

	nav     *navigation.Model
	guard   *guard.Guard
	session ports.SessionStore
}

func New(nav *navigation.Model, g *guard.Guard, session ports.SessionStore) *Layout {
	return &Layout{nav: nav, guard: g, session: session}
}

func (l *Layout) SidebarOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sidebarOpen
}

func (l *Layout) OpenSidebar() bool {
	return l.setSidebar(true)
}

func (l *Layout) CloseSidebar() bool {
	return l.setSidebar(false)
}

// ToggleSidebar flips visibility and returns the new state.
func (l *Layout) ToggleSidebar() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sidebarOpen = !l.sidebarOpen
	return l.sidebarOpen
}

func (l *Layout) setSidebar(open bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sidebarOpen = open
	return open
}

// PrimaryAction picks the header action for path.
func PrimaryAction(path string) Action {
	if domain.NormalizePath(path) == guard.PathProducts {
		return actionAddProduct
	}
	return actionNewTransaction
}

// Compose renders the shell for an admitted path. A nil user yields the
// bare auth layout.
func (l *Layout) Compose(user *domain.User, path string) View {
	target := domain.NormalizePath(path)
	content := Content{Page: pageNames[target], Path: target}

	if user == nil {
		return View{Layout: LayoutAuth, Content: content}
	}

	return View{
		Layout: LayoutDashboard,
		Header: &Header{
			SearchPlaceholder: searchPlaceholder,
			PrimaryAction:     PrimaryAction(target),
			Notifications:     true,
		},
		Sidebar: &Sidebar{
			Open:    l.SidebarOpen(),
			Entries: l.nav.View(user.Role, target),
			User:    UserSummary{ID: user.ID, Name: user.Name, Role: user.Role},
			SignOut: SignOutPath,
		},
		Content: content,
	}
}

// SignOut ends the session and re-evaluates currentPath as an
// unauthenticated request, returning where the requester must go next.
func (l *Layout) SignOut(ctx context.Context, currentPath string) (domain.Admission, error) {
	if err := l.session.Logout(ctx); err != nil {
		return domain.Admission{}, err
	}
	l.CloseSidebar()
	return l.guard.Evaluate(l.session.Current(), currentPath), nil
}
