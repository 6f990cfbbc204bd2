package domain

import "testing"

func TestRelationTo_Classification(t *testing.T) {
	u := &User{
		ID:               "a",
		Friends:          []string{"b"},
		IncomingRequests: []string{"c"},
		OutgoingRequests: []string{"d"},
	}

	cases := []struct {
		target string
		want   FriendState
	}{
		{"a", StateSelf},
		{"b", StateFriends},
		{"c", StateIncoming},
		{"d", StateOutgoing},
		{"e", StateNone},
	}
	for _, tc := range cases {
		if got := u.RelationTo(tc.target); got != tc.want {
			t.Errorf("RelationTo(%q) = %q, want %q", tc.target, got, tc.want)
		}
	}
}

func TestAddFriend_NoDuplicates(t *testing.T) {
	u := &User{ID: "a"}
	u.AddFriend("b")
	u.AddFriend("b")
	if len(u.Friends) != 1 {
		t.Fatalf("expected 1 friend entry, got %d", len(u.Friends))
	}
}

func TestClearPending_RemovesBothDirections(t *testing.T) {
	u := &User{
		ID:               "a",
		IncomingRequests: []string{"b", "c"},
		OutgoingRequests: []string{"b"},
	}
	u.ClearPending("b")

	if u.HasIncomingFrom("b") || u.HasOutgoingTo("b") {
		t.Fatalf("pending markers for b should be gone: %+v", u)
	}
	if !u.HasIncomingFrom("c") {
		t.Fatalf("unrelated incoming marker must survive")
	}

	// clearing again is a no-op
	u.ClearPending("b")
	if len(u.IncomingRequests) != 1 || len(u.OutgoingRequests) != 0 {
		t.Fatalf("second clear changed state: %+v", u)
	}
}

func TestClone_IsolatesLists(t *testing.T) {
	u := &User{ID: "a", Friends: []string{"b"}}
	clone := u.Clone()
	clone.AddFriend("c")
	clone.RemoveFriend("b")

	if !u.HasFriend("b") || u.HasFriend("c") {
		t.Fatalf("mutating the clone leaked into the original: %+v", u.Friends)
	}
}

func TestIsOwnerOrAdmin(t *testing.T) {
	cases := []struct {
		name    string
		ownerID string
		actor   *AuthUser
		want    bool
	}{
		{"nil actor", "u1", nil, false},
		{"owner", "u1", &AuthUser{ID: "u1", Role: RoleUser}, true},
		{"other user", "u1", &AuthUser{ID: "u2", Role: RoleUser}, false},
		{"admin on foreign resource", "u1", &AuthUser{ID: "u9", Role: RoleAdmin}, true},
	}
	for _, tc := range cases {
		if got := IsOwnerOrAdmin(tc.ownerID, tc.actor); got != tc.want {
			t.Errorf("%s: IsOwnerOrAdmin = %v, want %v", tc.name, got, tc.want)
		}
	}
}
