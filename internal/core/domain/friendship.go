package domain

import "errors"

// FriendState is the relationship between an ordered pair of users as seen
// from the first user's side.
type FriendState string

const (
	StateNone     FriendState = "none"
	StateOutgoing FriendState = "outgoing"
	StateIncoming FriendState = "incoming"
	StateFriends  FriendState = "friends"
	StateSelf     FriendState = "self"
)

var ErrSelfTarget = errors.New("cannot friend yourself")
var ErrAlreadyFriends = errors.New("already friends")
var ErrRequestPending = errors.New("friend request already pending")
var ErrNoPendingRequest = errors.New("no pending friend request")

// ErrPartialFailure is returned when one of the two user documents of a
// relationship mutation was written but the other write and its rollback
// both failed, leaving the pair potentially inconsistent.
var ErrPartialFailure = errors.New("relationship partially updated")

// RelationTo classifies this user's relationship toward targetID.
// Friendship wins over pending markers; under the engine's invariants at
// most one can hold anyway.
func (u *User) RelationTo(targetID string) FriendState {
	switch {
	case u.ID == targetID:
		return StateSelf
	case containsID(u.Friends, targetID):
		return StateFriends
	case containsID(u.IncomingRequests, targetID):
		return StateIncoming
	case containsID(u.OutgoingRequests, targetID):
		return StateOutgoing
	default:
		return StateNone
	}
}

func (u *User) HasFriend(id string) bool       { return containsID(u.Friends, id) }
func (u *User) HasIncomingFrom(id string) bool { return containsID(u.IncomingRequests, id) }
func (u *User) HasOutgoingTo(id string) bool   { return containsID(u.OutgoingRequests, id) }

// AddFriend inserts id into the friends list, skipping duplicates.
func (u *User) AddFriend(id string) {
	u.Friends = appendUnique(u.Friends, id)
}

func (u *User) RemoveFriend(id string) {
	u.Friends = withoutID(u.Friends, id)
}

// AddIncomingRequest records a pending request from id.
func (u *User) AddIncomingRequest(id string) {
	u.IncomingRequests = appendUnique(u.IncomingRequests, id)
}

// AddOutgoingRequest records a pending request toward id.
func (u *User) AddOutgoingRequest(id string) {
	u.OutgoingRequests = appendUnique(u.OutgoingRequests, id)
}

// RemoveIncomingRequest drops the pending marker from id; absent is a no-op.
func (u *User) RemoveIncomingRequest(id string) {
	u.IncomingRequests = withoutID(u.IncomingRequests, id)
}

// RemoveOutgoingRequest drops the pending marker toward id; absent is a no-op.
func (u *User) RemoveOutgoingRequest(id string) {
	u.OutgoingRequests = withoutID(u.OutgoingRequests, id)
}

// ClearPending removes any pending markers involving id, in both directions.
// No-op when none exist.
func (u *User) ClearPending(id string) {
	u.IncomingRequests = withoutID(u.IncomingRequests, id)
	u.OutgoingRequests = withoutID(u.OutgoingRequests, id)
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func withoutID(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func appendUnique(list []string, id string) []string {
	if containsID(list, id) {
		return list
	}
	return append(list, id)
}
