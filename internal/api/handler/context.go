package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photoshare/photoshare-api/internal/core/domain"
)

// ctxActor assembles the acting user from the claims injected by the Auth
// middleware and fast-fails before any service call: a non-empty user_id
// proves the middleware ran.
func ctxActor(c echo.Context) (*domain.AuthUser, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	loginName, _ := c.Get("login_name").(string)
	firstName, _ := c.Get("first_name").(string)
	lastName, _ := c.Get("last_name").(string)
	role, _ := c.Get("role").(string)
	if role == "" {
		role = domain.RoleUser
	}

	return &domain.AuthUser{
		ID:        id,
		LoginName: loginName,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	}, nil
}
