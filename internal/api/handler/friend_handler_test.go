package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/photoshare/photoshare-api/internal/core/domain"
	"github.com/photoshare/photoshare-api/internal/core/ports"
)

type stubFriendService struct {
	statusFn   func(ctx context.Context, currentID, otherID string) (domain.FriendState, error)
	sendFn     func(ctx context.Context, currentID, otherID string) (domain.FriendState, error)
	acceptFn   func(ctx context.Context, currentID, otherID string) (domain.FriendState, error)
	rejectFn   func(ctx context.Context, currentID, otherID string) (domain.FriendState, error)
	cancelFn   func(ctx context.Context, currentID, otherID string) (domain.FriendState, error)
	unfriendFn func(ctx context.Context, currentID, otherID string) (domain.FriendState, error)
	friendsFn  func(ctx context.Context, userID string) ([]ports.UserSummary, error)
	requestsFn func(ctx context.Context, userID string) (*ports.FriendRequestsResult, error)
}

func (s *stubFriendService) Status(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
	return s.statusFn(ctx, currentID, otherID)
}

func (s *stubFriendService) SendRequest(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
	return s.sendFn(ctx, currentID, otherID)
}

func (s *stubFriendService) Accept(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
	return s.acceptFn(ctx, currentID, otherID)
}

func (s *stubFriendService) Reject(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
	return s.rejectFn(ctx, currentID, otherID)
}

func (s *stubFriendService) Cancel(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
	return s.cancelFn(ctx, currentID, otherID)
}

func (s *stubFriendService) Unfriend(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
	return s.unfriendFn(ctx, currentID, otherID)
}

func (s *stubFriendService) ListFriends(ctx context.Context, userID string) ([]ports.UserSummary, error) {
	return s.friendsFn(ctx, userID)
}

func (s *stubFriendService) ListRequests(ctx context.Context, userID string) (*ports.FriendRequestsResult, error) {
	return s.requestsFn(ctx, userID)
}

// friendContext builds an authenticated echo context with :id bound,
// mirroring what the auth middleware installs.
func friendContext(t *testing.T, method, path, actorID, targetID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", actorID)
	c.Set("login_name", "alice")
	c.Set("role", domain.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues(targetID)
	return c, rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp["status"]
}

func TestFriendHandler_Send_Outgoing(t *testing.T) {
	stub := &stubFriendService{
		sendFn: func(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
			if currentID != "u1" || otherID != "u2" {
				t.Fatalf("unexpected args: %s %s", currentID, otherID)
			}
			return domain.StateOutgoing, nil
		},
	}
	handler := NewFriendHandler(stub)

	c, rec := friendContext(t, http.MethodPost, "/users/u2/friend-request", "u1", "u2")
	if err := handler.Send(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decodeStatus(t, rec); got != "outgoing" {
		t.Fatalf("expected outgoing, got %q", got)
	}
}

func TestFriendHandler_Send_ImplicitAccept(t *testing.T) {
	stub := &stubFriendService{
		sendFn: func(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
			return domain.StateFriends, nil
		},
	}
	handler := NewFriendHandler(stub)

	c, rec := friendContext(t, http.MethodPost, "/users/u2/friend-request", "u1", "u2")
	if err := handler.Send(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decodeStatus(t, rec); got != "friends" {
		t.Fatalf("expected friends, got %q", got)
	}
}

func TestFriendHandler_Send_SelfTarget(t *testing.T) {
	stub := &stubFriendService{
		sendFn: func(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
			return domain.StateSelf, domain.ErrSelfTarget
		},
	}
	handler := NewFriendHandler(stub)

	c, _ := friendContext(t, http.MethodPost, "/users/u1/friend-request", "u1", "u1")
	err := handler.Send(c)
	if !errors.Is(err, domain.ErrSelfTarget) {
		t.Fatalf("expected ErrSelfTarget, got %v", err)
	}
}

func TestFriendHandler_Send_Unauthenticated(t *testing.T) {
	stub := &stubFriendService{
		sendFn: func(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
			t.Fatalf("should not be called")
			return domain.StateNone, nil
		},
	}
	handler := NewFriendHandler(stub)

	c, _ := friendContext(t, http.MethodPost, "/users/u2/friend-request", "", "u2")
	err := handler.Send(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestFriendHandler_Status(t *testing.T) {
	stub := &stubFriendService{
		statusFn: func(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
			return domain.StateIncoming, nil
		},
	}
	handler := NewFriendHandler(stub)

	c, rec := friendContext(t, http.MethodGet, "/users/u2/friend-status", "u1", "u2")
	if err := handler.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decodeStatus(t, rec); got != "incoming" {
		t.Fatalf("expected incoming, got %q", got)
	}
}

func TestFriendHandler_Accept_NoPending(t *testing.T) {
	stub := &stubFriendService{
		acceptFn: func(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
			return domain.StateNone, domain.ErrNoPendingRequest
		},
	}
	handler := NewFriendHandler(stub)

	c, _ := friendContext(t, http.MethodPost, "/users/u2/friend-accept", "u1", "u2")
	err := handler.Accept(c)
	if !errors.Is(err, domain.ErrNoPendingRequest) {
		t.Fatalf("expected ErrNoPendingRequest, got %v", err)
	}
}

func TestFriendHandler_RejectAndCancel_ReportNone(t *testing.T) {
	stub := &stubFriendService{
		rejectFn: func(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
			return domain.StateNone, nil
		},
		cancelFn: func(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
			return domain.StateNone, nil
		},
	}
	handler := NewFriendHandler(stub)

	c, rec := friendContext(t, http.MethodPost, "/users/u2/friend-reject", "u1", "u2")
	if err := handler.Reject(c); err != nil {
		t.Fatalf("reject error: %v", err)
	}
	if got := decodeStatus(t, rec); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}

	c, rec = friendContext(t, http.MethodPost, "/users/u2/friend-cancel", "u1", "u2")
	if err := handler.Cancel(c); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if got := decodeStatus(t, rec); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
}

func TestFriendHandler_Unfriend(t *testing.T) {
	stub := &stubFriendService{
		unfriendFn: func(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
			return domain.StateNone, nil
		},
	}
	handler := NewFriendHandler(stub)

	c, rec := friendContext(t, http.MethodPost, "/users/u2/unfriend", "u1", "u2")
	if err := handler.Unfriend(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decodeStatus(t, rec); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
}

func TestFriendHandler_ListFriends(t *testing.T) {
	stub := &stubFriendService{
		friendsFn: func(ctx context.Context, userID string) ([]ports.UserSummary, error) {
			if userID != "u2" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return []ports.UserSummary{{ID: "u3", FirstName: "Carol", LastName: "King"}}, nil
		},
	}
	handler := NewFriendHandler(stub)

	c, rec := friendContext(t, http.MethodGet, "/users/u2/friends", "u1", "u2")
	if err := handler.ListFriends(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var friends []ports.UserSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &friends); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(friends) != 1 || friends[0].ID != "u3" {
		t.Fatalf("unexpected payload: %+v", friends)
	}
}

func TestFriendHandler_ListRequests(t *testing.T) {
	stub := &stubFriendService{
		requestsFn: func(ctx context.Context, userID string) (*ports.FriendRequestsResult, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &ports.FriendRequestsResult{
				Incoming: []ports.UserProfile{{ID: "u2", FirstName: "Bob"}},
				Outgoing: []ports.UserProfile{},
			}, nil
		},
	}
	handler := NewFriendHandler(stub)

	c, rec := friendContext(t, http.MethodGet, "/users/friend-requests", "u1", "")
	if err := handler.ListRequests(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp ports.FriendRequestsResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Incoming) != 1 || resp.Incoming[0].ID != "u2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
