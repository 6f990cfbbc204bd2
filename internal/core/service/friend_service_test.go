package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/photoshare/photoshare-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User
	// failSaves maps a user ID to how many upcoming Save calls for that
	// user should fail; negative means fail forever.
	failSaves map[string]int
}

func newStubUserRepo(ids ...string) *stubUserRepo {
	r := &stubUserRepo{
		users:     make(map[string]*domain.User),
		failSaves: make(map[string]int),
	}
	for _, id := range ids {
		r.users[id] = &domain.User{
			ID:        id,
			LoginName: id,
			FirstName: strings.ToUpper(id[:1]),
			LastName:  "Tester",
			Role:      domain.RoleUser,
		}
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.LoginName == u.LoginName {
			return nil, domain.ErrUserExists
		}
	}
	clone := u.Clone()
	if clone.ID == "" {
		clone.ID = u.LoginName
	}
	r.users[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *stubUserRepo) FindByLoginName(_ context.Context, loginName string) (*domain.User, error) {
	for _, u := range r.users {
		if u.LoginName == loginName {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u.Clone())
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

func (r *stubUserRepo) SearchByName(_ context.Context, query string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.FirstName), strings.ToLower(query)) ||
			strings.Contains(strings.ToLower(u.LastName), strings.ToLower(query)) {
			out = append(out, u.Clone())
		}
	}
	return out, nil
}

var errStoreDown = errors.New("store unavailable")

func (r *stubUserRepo) Save(_ context.Context, u *domain.User) error {
	if n, ok := r.failSaves[u.ID]; ok && n != 0 {
		if n > 0 {
			r.failSaves[u.ID] = n - 1
		}
		return errStoreDown
	}
	r.users[u.ID] = u.Clone()
	return nil
}

// ---------------------------------------------------------------------------
// Invariant checks
// ---------------------------------------------------------------------------

func assertNoDuplicates(t *testing.T, owner, name string, list []string) {
	t.Helper()
	seen := make(map[string]bool, len(list))
	for _, id := range list {
		if id == owner {
			t.Fatalf("user %s has itself in %s", owner, name)
		}
		if seen[id] {
			t.Fatalf("user %s has duplicate %s in %s", owner, id, name)
		}
		seen[id] = true
	}
}

// assertInvariants verifies symmetry, request duality, mutual exclusion,
// no self-relationships and no duplicates across the whole user pool.
func assertInvariants(t *testing.T, repo *stubUserRepo) {
	t.Helper()
	for id, u := range repo.users {
		assertNoDuplicates(t, id, "friends", u.Friends)
		assertNoDuplicates(t, id, "incoming_requests", u.IncomingRequests)
		assertNoDuplicates(t, id, "outgoing_requests", u.OutgoingRequests)

		for _, friendID := range u.Friends {
			other, ok := repo.users[friendID]
			if !ok || !other.HasFriend(id) {
				t.Fatalf("symmetry broken: %s lists %s as friend but not vice versa", id, friendID)
			}
		}
		for _, targetID := range u.OutgoingRequests {
			other, ok := repo.users[targetID]
			if !ok || !other.HasIncomingFrom(id) {
				t.Fatalf("duality broken: %s→%s outgoing without matching incoming", id, targetID)
			}
		}
		for _, fromID := range u.IncomingRequests {
			other, ok := repo.users[fromID]
			if !ok || !other.HasOutgoingTo(id) {
				t.Fatalf("duality broken: %s has incoming from %s without matching outgoing", id, fromID)
			}
		}

		for otherID := range repo.users {
			if otherID == id {
				continue
			}
			held := 0
			if u.HasFriend(otherID) {
				held++
			}
			if u.HasOutgoingTo(otherID) {
				held++
			}
			if u.HasIncomingFrom(otherID) {
				held++
			}
			if held > 1 {
				t.Fatalf("mutual exclusion broken between %s and %s: %+v", id, otherID, u)
			}
		}
	}
}

func newFriendService(repo *stubUserRepo) *FriendService {
	return NewFriendService(repo, discardLogger)
}

// ---------------------------------------------------------------------------
// Status
// ---------------------------------------------------------------------------

func TestFriendService_Status_SelfBeforeLookup(t *testing.T) {
	svc := newFriendService(newStubUserRepo("a"))

	// even an unknown ID is "self" when both sides match
	state, err := svc.Status(context.Background(), "ghost", "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != domain.StateSelf {
		t.Fatalf("expected self, got %s", state)
	}
}

func TestFriendService_Status_UnknownTarget(t *testing.T) {
	svc := newFriendService(newStubUserRepo("a"))

	_, err := svc.Status(context.Background(), "a", "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// SendRequest
// ---------------------------------------------------------------------------

func TestFriendService_SendRequest_InstallsPendingPair(t *testing.T) {
	repo := newStubUserRepo("a", "b")
	svc := newFriendService(repo)

	state, err := svc.SendRequest(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != domain.StateOutgoing {
		t.Fatalf("expected outgoing, got %s", state)
	}

	if got, _ := svc.Status(context.Background(), "a", "b"); got != domain.StateOutgoing {
		t.Errorf("status(a,b) = %s, want outgoing", got)
	}
	if got, _ := svc.Status(context.Background(), "b", "a"); got != domain.StateIncoming {
		t.Errorf("status(b,a) = %s, want incoming", got)
	}
	assertInvariants(t, repo)
}

func TestFriendService_SendRequest_SelfTarget(t *testing.T) {
	repo := newStubUserRepo("a")
	svc := newFriendService(repo)

	_, err := svc.SendRequest(context.Background(), "a", "a")
	if !errors.Is(err, domain.ErrSelfTarget) {
		t.Fatalf("expected ErrSelfTarget, got %v", err)
	}
	if len(repo.users["a"].OutgoingRequests) != 0 || len(repo.users["a"].Friends) != 0 {
		t.Fatalf("self request must not mutate the store")
	}
}

func TestFriendService_SendRequest_AlreadyFriends(t *testing.T) {
	repo := newStubUserRepo("a", "b")
	repo.users["a"].AddFriend("b")
	repo.users["b"].AddFriend("a")
	svc := newFriendService(repo)

	_, err := svc.SendRequest(context.Background(), "a", "b")
	if !errors.Is(err, domain.ErrAlreadyFriends) {
		t.Fatalf("expected ErrAlreadyFriends, got %v", err)
	}
}

func TestFriendService_SendRequest_AlreadyPending(t *testing.T) {
	repo := newStubUserRepo("a", "b")
	svc := newFriendService(repo)

	if _, err := svc.SendRequest(context.Background(), "a", "b"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	_, err := svc.SendRequest(context.Background(), "a", "b")
	if !errors.Is(err, domain.ErrRequestPending) {
		t.Fatalf("expected ErrRequestPending, got %v", err)
	}
	assertInvariants(t, repo)
}

func TestFriendService_SendRequest_ImplicitAccept(t *testing.T) {
	repo := newStubUserRepo("a", "b")
	svc := newFriendService(repo)

	if _, err := svc.SendRequest(context.Background(), "a", "b"); err != nil {
		t.Fatalf("a→b request: %v", err)
	}

	state, err := svc.SendRequest(context.Background(), "b", "a")
	if err != nil {
		t.Fatalf("b→a request: %v", err)
	}
	if state != domain.StateFriends {
		t.Fatalf("expected friends via implicit accept, got %s", state)
	}

	for _, pair := range [][2]string{{"a", "b"}, {"b", "a"}} {
		u := repo.users[pair[0]]
		if !u.HasFriend(pair[1]) {
			t.Errorf("%s should have %s as friend", pair[0], pair[1])
		}
		if len(u.IncomingRequests) != 0 || len(u.OutgoingRequests) != 0 {
			t.Errorf("%s still has pending markers: %+v", pair[0], u)
		}
	}
	assertInvariants(t, repo)
}

// ---------------------------------------------------------------------------
// Accept / Reject / Cancel / Unfriend
// ---------------------------------------------------------------------------

func TestFriendService_Accept_NoPendingRequest(t *testing.T) {
	svc := newFriendService(newStubUserRepo("a", "b"))

	_, err := svc.Accept(context.Background(), "a", "b")
	if !errors.Is(err, domain.ErrNoPendingRequest) {
		t.Fatalf("expected ErrNoPendingRequest, got %v", err)
	}
}

func TestFriendService_RequestAcceptUnfriendRoundTrip(t *testing.T) {
	repo := newStubUserRepo("a", "b")
	svc := newFriendService(repo)
	ctx := context.Background()

	if _, err := svc.SendRequest(ctx, "a", "b"); err != nil {
		t.Fatalf("send: %v", err)
	}
	state, err := svc.Accept(ctx, "b", "a")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if state != domain.StateFriends {
		t.Fatalf("expected friends after accept, got %s", state)
	}
	if got, _ := svc.Status(ctx, "a", "b"); got != domain.StateFriends {
		t.Errorf("status(a,b) = %s, want friends", got)
	}
	assertInvariants(t, repo)

	state, err = svc.Unfriend(ctx, "a", "b")
	if err != nil {
		t.Fatalf("unfriend: %v", err)
	}
	if state != domain.StateNone {
		t.Fatalf("expected none after unfriend, got %s", state)
	}
	if repo.users["a"].HasFriend("b") || repo.users["b"].HasFriend("a") {
		t.Fatalf("friendship survived unfriend")
	}
	assertInvariants(t, repo)
}

func TestFriendService_TolerantOps_Idempotent(t *testing.T) {
	ctx := context.Background()

	ops := []struct {
		name string
		call func(svc *FriendService, a, b string) (domain.FriendState, error)
		seed func(repo *stubUserRepo, svc *FriendService)
	}{
		{
			name: "reject",
			call: func(svc *FriendService, a, b string) (domain.FriendState, error) {
				return svc.Reject(ctx, a, b)
			},
			seed: func(_ *stubUserRepo, svc *FriendService) {
				_, _ = svc.SendRequest(ctx, "b", "a")
			},
		},
		{
			name: "cancel",
			call: func(svc *FriendService, a, b string) (domain.FriendState, error) {
				return svc.Cancel(ctx, a, b)
			},
			seed: func(_ *stubUserRepo, svc *FriendService) {
				_, _ = svc.SendRequest(ctx, "a", "b")
			},
		},
		{
			name: "unfriend",
			call: func(svc *FriendService, a, b string) (domain.FriendState, error) {
				return svc.Unfriend(ctx, a, b)
			},
			seed: func(_ *stubUserRepo, svc *FriendService) {
				_, _ = svc.SendRequest(ctx, "a", "b")
				_, _ = svc.Accept(ctx, "b", "a")
			},
		},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			repo := newStubUserRepo("a", "b")
			svc := newFriendService(repo)
			op.seed(repo, svc)

			state, err := op.call(svc, "a", "b")
			if err != nil {
				t.Fatalf("first call: %v", err)
			}
			if state != domain.StateNone {
				t.Fatalf("expected none, got %s", state)
			}
			after := repo.users["a"].Clone()

			// second call: same end state, no error
			state, err = op.call(svc, "a", "b")
			if err != nil {
				t.Fatalf("second call must not fail: %v", err)
			}
			if state != domain.StateNone {
				t.Fatalf("second call: expected none, got %s", state)
			}
			if fmt.Sprint(repo.users["a"]) != fmt.Sprint(after) {
				t.Fatalf("second call changed state: %+v vs %+v", repo.users["a"], after)
			}
			assertInvariants(t, repo)
		})
	}
}

// ---------------------------------------------------------------------------
// Pair-write failure handling
// ---------------------------------------------------------------------------

func TestFriendService_SendRequest_CounterpartWriteFails_RollsBack(t *testing.T) {
	repo := newStubUserRepo("a", "b")
	repo.failSaves["b"] = -1
	svc := newFriendService(repo)

	_, err := svc.SendRequest(context.Background(), "a", "b")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, domain.ErrPartialFailure) {
		t.Fatalf("rollback succeeded, must not report partial failure: %v", err)
	}

	if len(repo.users["a"].OutgoingRequests) != 0 {
		t.Fatalf("first write was not rolled back: %+v", repo.users["a"])
	}
	assertInvariants(t, repo)
}

func TestFriendService_SendRequest_RollbackAlsoFails_PartialFailure(t *testing.T) {
	repo := newStubUserRepo("a", "b")

	// First save of a succeeds, the counterpart save of b fails, and every
	// rollback attempt on a fails as well.
	repo.failSaves["b"] = -1
	seq := &sequencedRepo{stubUserRepo: repo, allowSaves: map[string]int{"a": 1}}
	svc := NewFriendService(seq, discardLogger)

	_, err := svc.SendRequest(context.Background(), "a", "b")
	if !errors.Is(err, domain.ErrPartialFailure) {
		t.Fatalf("expected ErrPartialFailure, got %v", err)
	}
	// the pair really is inconsistent now: a has the marker, b does not
	if !repo.users["a"].HasOutgoingTo("b") {
		t.Fatalf("expected dangling outgoing marker on a, got %+v", repo.users["a"])
	}
	if repo.users["b"].HasIncomingFrom("a") {
		t.Fatalf("b must not have the incoming marker: %+v", repo.users["b"])
	}
}

// sequencedRepo lets a bounded number of saves through per user before
// failing the rest. Reads pass through to the embedded stub.
type sequencedRepo struct {
	*stubUserRepo
	allowSaves map[string]int
}

func (r *sequencedRepo) Save(ctx context.Context, u *domain.User) error {
	if n, ok := r.allowSaves[u.ID]; ok {
		if n <= 0 {
			return errStoreDown
		}
		r.allowSaves[u.ID] = n - 1
	}
	return r.stubUserRepo.Save(ctx, u)
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

func TestFriendService_ListFriendsAndRequests(t *testing.T) {
	repo := newStubUserRepo("a", "b", "c", "d")
	svc := newFriendService(repo)
	ctx := context.Background()

	_, _ = svc.SendRequest(ctx, "a", "b")
	_, _ = svc.Accept(ctx, "b", "a")
	_, _ = svc.SendRequest(ctx, "c", "a")
	_, _ = svc.SendRequest(ctx, "a", "d")

	friends, err := svc.ListFriends(ctx, "a")
	if err != nil {
		t.Fatalf("list friends: %v", err)
	}
	if len(friends) != 1 || friends[0].ID != "b" {
		t.Fatalf("expected [b], got %+v", friends)
	}

	reqs, err := svc.ListRequests(ctx, "a")
	if err != nil {
		t.Fatalf("list requests: %v", err)
	}
	if len(reqs.Incoming) != 1 || reqs.Incoming[0].ID != "c" {
		t.Fatalf("expected incoming [c], got %+v", reqs.Incoming)
	}
	if len(reqs.Outgoing) != 1 || reqs.Outgoing[0].ID != "d" {
		t.Fatalf("expected outgoing [d], got %+v", reqs.Outgoing)
	}
	if reqs.Incoming[0].LoginName == "" {
		t.Fatalf("request projections carry the fuller profile")
	}
}

func TestFriendService_ListFriends_UnknownUser(t *testing.T) {
	svc := newFriendService(newStubUserRepo("a"))
	if _, err := svc.ListFriends(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Random operation sequences
// ---------------------------------------------------------------------------

// TestFriendService_RandomSequences_InvariantsHold drives the engine with a
// few thousand random operations over a small user pool and verifies the
// relationship invariants after every single call. Validation errors
// (self target, already friends, pending, no request) are expected noise.
func TestFriendService_RandomSequences_InvariantsHold(t *testing.T) {
	repo := newStubUserRepo("a", "b", "c", "d")
	svc := newFriendService(repo)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	pool := []string{"a", "b", "c", "d"}

	for i := 0; i < 3000; i++ {
		x := pool[rng.Intn(len(pool))]
		y := pool[rng.Intn(len(pool))]

		var err error
		switch rng.Intn(5) {
		case 0:
			_, err = svc.SendRequest(ctx, x, y)
		case 1:
			_, err = svc.Accept(ctx, x, y)
		case 2:
			_, err = svc.Reject(ctx, x, y)
		case 3:
			_, err = svc.Cancel(ctx, x, y)
		case 4:
			_, err = svc.Unfriend(ctx, x, y)
		}

		switch {
		case err == nil:
		case errors.Is(err, domain.ErrSelfTarget),
			errors.Is(err, domain.ErrAlreadyFriends),
			errors.Is(err, domain.ErrRequestPending),
			errors.Is(err, domain.ErrNoPendingRequest):
		default:
			t.Fatalf("op %d (%s,%s): unexpected error %v", i, x, y, err)
		}

		assertInvariants(t, repo)
	}
}
