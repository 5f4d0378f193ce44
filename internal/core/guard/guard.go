// Package guard decides, for every navigation request, whether the
// requester may reach the screen or must be redirected.
//
// Evaluation is pure: it depends only on whether a user is present (and
// that user's role) and on the requested path.
package guard

import "github.com/stockflow/dashboard/internal/core/domain"

// Guard evaluates navigation requests against a fixed route table.
type Guard struct {
	routes map[string]Route
	order  []Route
}

// New builds a Guard over routes. Paths are normalised on the way in.
func New(routes []Route) *Guard {
	g := &Guard{routes: make(map[string]Route, len(routes))}
	for _, r := range routes {
		r.Path = domain.NormalizePath(r.Path)
		if _, dup := g.routes[r.Path]; !dup {
			g.order = append(g.order, r)
		}
		g.routes[r.Path] = r
	}
	return g
}

// Default returns a Guard over DefaultRoutes.
func Default() *Guard {
	return New(DefaultRoutes)
}

// Routes returns the recognised routes in declaration order.
func (g *Guard) Routes() []Route {
	out := make([]Route, len(g.order))
	copy(out, g.order)
	return out
}

// Lookup reports the route registered for path, after normalisation.
func (g *Guard) Lookup(path string) (Route, bool) {
	r, ok := g.routes[domain.NormalizePath(path)]
	return r, ok
}

// Evaluate is total over its input domain: unknown paths fall back to a
// redirect rather than an error.
func (g *Guard) Evaluate(user *domain.User, path string) domain.Admission {
	target := domain.NormalizePath(path)
	route, known := g.routes[target]

	if user == nil {
		if known && route.Access == GuestOnly {
			return domain.Admission{Kind: domain.Admit, Target: target}
		}
		return domain.Admission{Kind: domain.RedirectToLogin}
	}

	switch {
	case !known:
		return domain.Admission{Kind: domain.RedirectToHome}
	case route.Access == GuestOnly:
		return domain.Admission{Kind: domain.RedirectToHome}
	case !user.Role.Satisfies(route.Role):
		return domain.Admission{Kind: domain.RedirectToHome}
	}
	return domain.Admission{Kind: domain.Admit, Target: target}
}
