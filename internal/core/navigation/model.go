// Package navigation builds the ordered, role-filtered list of sidebar
// destinations and marks the active one.
package navigation

import "github.com/stockflow/dashboard/internal/core/domain"

// Entry keys identify master-list positions independently of their labels.
const (
	KeyHome      = "home"
	KeyInventory = "inventory"
	KeySales     = "sales"
	KeyAnalytics = "analytics"
	KeyTeam      = "team"
	KeySettings  = "settings"
)

// Entry is one sidebar destination.
type Entry struct {
	Key   string      `json:"key"`
	Icon  string      `json:"icon"`
	Label string      `json:"label"`
	Path  string      `json:"path"`
	Role  domain.Role `json:"role,omitempty"`
}

// EntryView is an Entry annotated for a particular location.
type EntryView struct {
	Entry
	Active bool `json:"active"`
}

type masterEntry struct {
	key  string
	path string
	role domain.Role
}

// master is the product's information-architecture order.
var master = []masterEntry{
	{key: KeyHome, path: "/"},
	{key: KeyInventory, path: "/products"},
	{key: KeySales, path: "/sales"},
	{key: KeyAnalytics, path: "/reports"},
	{key: KeyTeam, path: "/users", role: domain.RoleAdmin},
	{key: KeySettings, path: "/settings"},
}

// Model holds the fully labelled master list.
type Model struct {
	entries []Entry
}

// NewModel labels the master list with labels. Keys missing from labels
// fall back to the key itself.
func NewModel(labels LabelSet) *Model {
	m := &Model{entries: make([]Entry, 0, len(master))}
	for _, me := range master {
		l := labels[me.key]
		if l.Label == "" {
			l.Label = me.key
		}
		m.entries = append(m.entries, Entry{
			Key:   me.key,
			Icon:  l.Icon,
			Label: l.Label,
			Path:  me.path,
			Role:  me.role,
		})
	}
	return m
}

// Entries returns the master list filtered to what role may see, in
// master order.
func (m *Model) Entries(role domain.Role) []Entry {
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if role.Satisfies(e.Role) {
			out = append(out, e)
		}
	}
	return out
}

// IsActive compares the entry path with currentPath after normalisation.
func IsActive(e Entry, currentPath string) bool {
	return domain.NormalizePath(e.Path) == domain.NormalizePath(currentPath)
}

// View returns Entries(role) annotated with the active flag for currentPath.
func (m *Model) View(role domain.Role, currentPath string) []EntryView {
	entries := m.Entries(role)
	out := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryView{Entry: e, Active: IsActive(e, currentPath)})
	}
	return out
}
