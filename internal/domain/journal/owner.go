// Package journal holds the journaling resources: notes, their AI-proposed
// details, and session history entries. Every row is owned by exactly one
// principal, expressed through the Owner value object.
package journal

import (
	"fmt"

	"inkwell/internal/domain/identity"
)

// Owner is the ownership stamp on a resource row. Exactly one of the user
// id and the device id is set; this XOR holds for every row at rest. A
// device-scoped row becomes user-scoped exactly once, through migration,
// and never reverts.
type Owner struct {
	userID   string
	deviceID string
}

// UserOwner stamps a row as owned by an authenticated account.
func UserOwner(userID string) (Owner, error) {
	if userID == "" {
		return Owner{}, fmt.Errorf("user owner requires a user id")
	}
	return Owner{userID: userID}, nil
}

// DeviceOwner stamps a row as owned by an anonymous device.
func DeviceOwner(deviceID string) (Owner, error) {
	if deviceID == "" {
		return Owner{}, fmt.Errorf("device owner requires a device id")
	}
	return Owner{deviceID: deviceID}, nil
}

// OwnerFromIdentity derives the ownership stamp for rows created by the
// given identity. Blocked identities own nothing.
func OwnerFromIdentity(id identity.Identity) (Owner, error) {
	switch id.Kind() {
	case identity.KindAuthenticated:
		return UserOwner(id.UserID())
	case identity.KindGuest:
		return DeviceOwner(id.DeviceID())
	default:
		return Owner{}, fmt.Errorf("blocked identity cannot own resources")
	}
}

// ReconstructOwner rebuilds an owner from the two nullable storage columns,
// enforcing the XOR invariant.
func ReconstructOwner(userID, deviceID *string) (Owner, error) {
	hasUser := userID != nil && *userID != ""
	hasDevice := deviceID != nil && *deviceID != ""

	switch {
	case hasUser && hasDevice:
		return Owner{}, fmt.Errorf("row owned by both user %q and device %q", *userID, *deviceID)
	case hasUser:
		return Owner{userID: *userID}, nil
	case hasDevice:
		return Owner{deviceID: *deviceID}, nil
	default:
		return Owner{}, fmt.Errorf("row has no owner")
	}
}

// IsUser reports whether the owner is an authenticated account.
func (o Owner) IsUser() bool { return o.userID != "" }

// IsDevice reports whether the owner is an anonymous device.
func (o Owner) IsDevice() bool { return o.deviceID != "" }

// UserID returns the owning user id, empty for device-scoped rows.
func (o Owner) UserID() string { return o.userID }

// DeviceID returns the owning device id, empty for user-scoped rows.
func (o Owner) DeviceID() string { return o.deviceID }

// Columns returns the two nullable storage columns for the owner.
func (o Owner) Columns() (userID, deviceID *string) {
	if o.userID != "" {
		return &o.userID, nil
	}
	return nil, &o.deviceID
}
