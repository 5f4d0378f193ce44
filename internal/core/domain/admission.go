package domain

import "strings"

// AdmissionKind is the outcome class of a navigation evaluation.
type AdmissionKind int

const (
	Admit AdmissionKind = iota
	RedirectToLogin
	RedirectToHome
)

const (
	HomePath  = "/"
	LoginPath = "/login"
)

func (k AdmissionKind) String() string {
	switch k {
	case Admit:
		return "admit"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Admission is derived fresh on every navigation and never stored.
type Admission struct {
	Kind   AdmissionKind
	Target string
}

// Location returns the path the requester ends up on.
func (a Admission) Location() string {
	switch a.Kind {
	case RedirectToLogin:
		return LoginPath
	case RedirectToHome:
		return HomePath
	default:
		return a.Target
	}
}

// NormalizePath reduces a request path to the form used for route and
// active-entry comparison: the path component only, without query string
// or fragment, and without trailing slashes except for the root.
func NormalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return HomePath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
