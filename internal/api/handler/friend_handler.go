package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photoshare/photoshare-api/internal/core/domain"
	"github.com/photoshare/photoshare-api/internal/core/ports"
)

// FriendHandler exposes the friend relationship operations. Every endpoint
// acts on behalf of the authenticated user toward the :id path parameter.
type FriendHandler struct {
	service ports.FriendService
}

func NewFriendHandler(service ports.FriendService) *FriendHandler {
	return &FriendHandler{service: service}
}

type friendStatusResponse struct {
	Status domain.FriendState `json:"status"`
}

// Status handles GET /users/:id/friend-status.
//
// @Summary      Relationship status toward a user
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target user ID"
// @Success      200  {object}  friendStatusResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/friend-status [get]
func (h *FriendHandler) Status(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	state, err := h.service.Status(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friendStatusResponse{Status: state})
}

// Send handles POST /users/:id/friend-request. The response status is
// "outgoing" for a fresh request or "friends" when the target had already
// requested the caller (implicit accept).
//
// @Summary      Send a friend request
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target user ID"
// @Success      200  {object}  friendStatusResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users/{id}/friend-request [post]
func (h *FriendHandler) Send(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	state, err := h.service.SendRequest(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friendStatusResponse{Status: state})
}

// Accept handles POST /users/:id/friend-accept.
//
// @Summary      Accept a pending friend request
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Requesting user ID"
// @Success      200  {object}  friendStatusResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users/{id}/friend-accept [post]
func (h *FriendHandler) Accept(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	state, err := h.service.Accept(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friendStatusResponse{Status: state})
}

// Reject handles POST /users/:id/friend-reject. Tolerant: rejecting an
// absent request still reports status "none".
//
// @Summary      Reject a pending friend request
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Requesting user ID"
// @Success      200  {object}  friendStatusResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/friend-reject [post]
func (h *FriendHandler) Reject(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	state, err := h.service.Reject(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friendStatusResponse{Status: state})
}

// Cancel handles POST /users/:id/friend-cancel.
//
// @Summary      Cancel a friend request the caller sent
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target user ID"
// @Success      200  {object}  friendStatusResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/friend-cancel [post]
func (h *FriendHandler) Cancel(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	state, err := h.service.Cancel(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friendStatusResponse{Status: state})
}

// Unfriend handles POST /users/:id/unfriend.
//
// @Summary      Remove a friendship
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Other user ID"
// @Success      200  {object}  friendStatusResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/unfriend [post]
func (h *FriendHandler) Unfriend(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	state, err := h.service.Unfriend(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friendStatusResponse{Status: state})
}

// ListFriends handles GET /users/:id/friends.
//
// @Summary      List a user's friends
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {array}   ports.UserSummary
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/friends [get]
func (h *FriendHandler) ListFriends(c echo.Context) error {
	friends, err := h.service.ListFriends(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, friends)
}

// ListRequests handles GET /users/friend-requests for the authenticated user.
//
// @Summary      List pending friend requests
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.FriendRequestsResult
// @Failure      401  {object}  map[string]string
// @Router       /users/friend-requests [get]
func (h *FriendHandler) ListRequests(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	requests, err := h.service.ListRequests(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}
