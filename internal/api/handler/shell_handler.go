package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockflow/dashboard/internal/api/middleware"
	"github.com/stockflow/dashboard/internal/core/domain"
	"github.com/stockflow/dashboard/internal/core/session"
	"github.com/stockflow/dashboard/internal/core/shell"
)

// ShellHandler serves admitted pages and the sidebar state.
type ShellHandler struct {
	layout *shell.Layout
}

func NewShellHandler(layout *shell.Layout) *ShellHandler {
	return &ShellHandler{layout: layout}
}

type sidebarResponse struct {
	Open bool `json:"open"`
}

// Page renders the shell for the page the Guard admitted, for the user the
// Guard admitted it with. A route wired without middleware.Provide panics.
//
// @Summary      Render a page shell
// @Tags         pages
// @Produce      json
// @Success      200  {object}  shell.View
// @Success      302
// @Router       /{page} [get]
func (h *ShellHandler) Page(c echo.Context) error {
	adm, ok := middleware.AdmissionFrom(c)
	if !ok || adm.Kind != domain.Admit {
		return echo.NewHTTPError(http.StatusInternalServerError, "page served without admission")
	}
	// fail fast on a route wired without the provider
	_ = session.FromContext(c.Request().Context())
	return c.JSON(http.StatusOK, h.layout.Compose(middleware.UserFrom(c), adm.Target))
}

// Sidebar reports the sidebar visibility.
//
// @Summary      Sidebar state
// @Tags         shell
// @Produce      json
// @Success      200  {object}  sidebarResponse
// @Failure      401  {object}  errorResponse
// @Router       /shell/sidebar [get]
func (h *ShellHandler) Sidebar(c echo.Context) error {
	return c.JSON(http.StatusOK, sidebarResponse{Open: h.layout.SidebarOpen()})
}

// OpenSidebar handles POST /shell/sidebar/open.
func (h *ShellHandler) OpenSidebar(c echo.Context) error {
	return c.JSON(http.StatusOK, sidebarResponse{Open: h.layout.OpenSidebar()})
}

// CloseSidebar handles POST /shell/sidebar/close.
func (h *ShellHandler) CloseSidebar(c echo.Context) error {
	return c.JSON(http.StatusOK, sidebarResponse{Open: h.layout.CloseSidebar()})
}

// ToggleSidebar handles POST /shell/sidebar/toggle.
func (h *ShellHandler) ToggleSidebar(c echo.Context) error {
	return c.JSON(http.StatusOK, sidebarResponse{Open: h.layout.ToggleSidebar()})
}
