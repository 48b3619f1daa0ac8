package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_CredentialBeatsDeviceID(t *testing.T) {
	id := Resolve("u1", "dev1")

	assert.Equal(t, KindAuthenticated, id.Kind())
	assert.Equal(t, "u1", id.UserID())
	assert.Empty(t, id.DeviceID())
}

func TestResolve_DeviceIDYieldsGuest(t *testing.T) {
	id := Resolve("", "dev1")

	assert.Equal(t, KindGuest, id.Kind())
	assert.Equal(t, "dev1", id.DeviceID())
}

func TestResolve_TrimsDeviceID(t *testing.T) {
	id := Resolve("", "  dev1  ")

	assert.True(t, id.IsGuest())
	assert.Equal(t, "dev1", id.DeviceID())
}

func TestResolve_BlankInputsYieldBlocked(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		deviceID string
	}{
		{"both empty", "", ""},
		{"whitespace device id", "", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := Resolve(tt.userID, tt.deviceID)
			assert.True(t, id.IsBlocked())
		})
	}
}

func TestIdentity_ZeroValueIsBlocked(t *testing.T) {
	var id Identity
	assert.True(t, id.IsBlocked())
}

func TestIdentity_Scope(t *testing.T) {
	scope, ok := Authenticated("u1").Scope()
	assert.True(t, ok)
	assert.Equal(t, Scope{Kind: ScopeUser, ID: "u1"}, scope)

	scope, ok = Guest("dev1").Scope()
	assert.True(t, ok)
	assert.Equal(t, Scope{Kind: ScopeDevice, ID: "dev1"}, scope)

	_, ok = Blocked().Scope()
	assert.False(t, ok)
}
