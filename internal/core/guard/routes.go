package guard

import "github.com/stockflow/dashboard/internal/core/domain"

// Access classifies who may reach a route.
type Access int

const (
	// GuestOnly routes are reserved for unauthenticated requesters.
	GuestOnly Access = iota
	// Authenticated routes require a current user.
	Authenticated
)

// Route is one recognised page path.
type Route struct {
	Path   string
	Access Access
	// Role restricts an Authenticated route; empty means any role.
	Role domain.Role
}

const (
	PathLogin          = domain.LoginPath
	PathRegister       = "/register"
	PathForgotPassword = "/forgot-password"
	PathHome           = domain.HomePath
	PathProducts       = "/products"
	PathSales          = "/sales"
	PathReports        = "/reports"
	PathUsers          = "/users"
	PathSettings       = "/settings"
)

// DefaultRoutes is the StockFlow routing surface.
var DefaultRoutes = []Route{
	{Path: PathLogin, Access: GuestOnly},
	{Path: PathRegister, Access: GuestOnly},
	{Path: PathForgotPassword, Access: GuestOnly},
	{Path: PathHome, Access: Authenticated},
	{Path: PathProducts, Access: Authenticated},
	{Path: PathSales, Access: Authenticated},
	{Path: PathReports, Access: Authenticated},
	{Path: PathUsers, Access: Authenticated, Role: domain.RoleAdmin},
	{Path: PathSettings, Access: Authenticated},
}
