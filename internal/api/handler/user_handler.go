package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photoshare/photoshare-api/internal/core/ports"
)

// UserHandler exposes user browsing endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users/list.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.UserSummary
// @Failure      401  {object}  map[string]string
// @Router       /users/list [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Search handles GET /users/search?name=...
//
// @Summary      Search users by name
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        name  query     string  true  "Name fragment, case-insensitive"
// @Success      200   {array}   ports.UserSummary
// @Failure      400   {object}  map[string]string
// @Router       /users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name query parameter is required")
	}

	users, err := h.service.Search(c.Request().Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:id.
//
// @Summary      Get a user's detail projection
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  ports.UserDetail
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	detail, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// AdminList handles GET /admin/users — full projections, admin only.
//
// @Summary      List all users with full detail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.UserDetail
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *UserHandler) AdminList(c echo.Context) error {
	users, err := h.service.ListDetailed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
