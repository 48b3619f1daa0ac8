// Package identity defines the principal a request is scoped to. Every
// storage predicate in the system derives from exactly one of the three
// variants, so an identity is a closed tagged type rather than a pair of
// optional fields.
package identity

import "strings"

// Kind discriminates the identity variants.
type Kind int

const (
	// KindBlocked means no principal could be resolved. Callers must not
	// issue any storage call on this path.
	KindBlocked Kind = iota
	// KindGuest is an anonymous principal keyed by a client-generated
	// device identifier.
	KindGuest
	// KindAuthenticated is a verified account principal.
	KindAuthenticated
)

// Identity is the resolved principal of a request. The zero value is
// Blocked.
type Identity struct {
	kind     Kind
	userID   string
	deviceID string
}

// Authenticated constructs an authenticated identity.
func Authenticated(userID string) Identity {
	return Identity{kind: KindAuthenticated, userID: userID}
}

// Guest constructs a device-scoped guest identity.
func Guest(deviceID string) Identity {
	return Identity{kind: KindGuest, deviceID: deviceID}
}

// Blocked constructs the no-principal identity.
func Blocked() Identity {
	return Identity{kind: KindBlocked}
}

// Resolve applies the precedence rule: a verified user id beats a device
// id, a non-empty trimmed device id yields a guest, anything else is
// blocked. The userID argument must already be verified by the session
// layer; Resolve itself touches no storage.
func Resolve(verifiedUserID, deviceID string) Identity {
	if verifiedUserID != "" {
		return Authenticated(verifiedUserID)
	}
	if trimmed := strings.TrimSpace(deviceID); trimmed != "" {
		return Guest(trimmed)
	}
	return Blocked()
}

// Kind returns the identity variant.
func (i Identity) Kind() Kind {
	return i.kind
}

// UserID returns the account id. Only meaningful for KindAuthenticated.
func (i Identity) UserID() string {
	return i.userID
}

// DeviceID returns the device id. Only meaningful for KindGuest.
func (i Identity) DeviceID() string {
	return i.deviceID
}

// IsAuthenticated reports whether the identity is a verified account.
func (i Identity) IsAuthenticated() bool {
	return i.kind == KindAuthenticated
}

// IsGuest reports whether the identity is device-scoped.
func (i Identity) IsGuest() bool {
	return i.kind == KindGuest
}

// IsBlocked reports whether no principal was resolved.
func (i Identity) IsBlocked() bool {
	return i.kind == KindBlocked
}

// ScopeKind labels the usage-ledger scope of an identity.
type ScopeKind string

const (
	ScopeUser   ScopeKind = "user"
	ScopeDevice ScopeKind = "device"
)

// Scope is the key a usage record is filed under.
type Scope struct {
	Kind ScopeKind
	ID   string
}

// Scope returns the usage scope for the identity. ok is false for Blocked.
func (i Identity) Scope() (Scope, bool) {
	switch i.kind {
	case KindAuthenticated:
		return Scope{Kind: ScopeUser, ID: i.userID}, true
	case KindGuest:
		return Scope{Kind: ScopeDevice, ID: i.deviceID}, true
	default:
		return Scope{}, false
	}
}
