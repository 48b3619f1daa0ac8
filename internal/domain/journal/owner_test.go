package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain/identity"
)

func strPtr(s string) *string { return &s }

func TestOwnerFromIdentity(t *testing.T) {
	owner, err := OwnerFromIdentity(identity.Authenticated("u1"))
	require.NoError(t, err)
	assert.True(t, owner.IsUser())
	assert.Equal(t, "u1", owner.UserID())
	assert.Empty(t, owner.DeviceID())

	owner, err = OwnerFromIdentity(identity.Guest("dev1"))
	require.NoError(t, err)
	assert.True(t, owner.IsDevice())
	assert.Equal(t, "dev1", owner.DeviceID())

	_, err = OwnerFromIdentity(identity.Blocked())
	assert.Error(t, err)
}

func TestReconstructOwner_EnforcesXOR(t *testing.T) {
	tests := []struct {
		name     string
		userID   *string
		deviceID *string
		wantErr  bool
	}{
		{"user only", strPtr("u1"), nil, false},
		{"device only", nil, strPtr("dev1"), false},
		{"both set", strPtr("u1"), strPtr("dev1"), true},
		{"neither set", nil, nil, true},
		{"empty strings count as unset", strPtr(""), strPtr(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReconstructOwner(tt.userID, tt.deviceID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOwner_Columns(t *testing.T) {
	owner, err := UserOwner("u1")
	require.NoError(t, err)
	userID, deviceID := owner.Columns()
	require.NotNil(t, userID)
	assert.Equal(t, "u1", *userID)
	assert.Nil(t, deviceID)

	owner, err = DeviceOwner("dev1")
	require.NoError(t, err)
	userID, deviceID = owner.Columns()
	assert.Nil(t, userID)
	require.NotNil(t, deviceID)
	assert.Equal(t, "dev1", *deviceID)
}

func TestNote_UpdateValidation(t *testing.T) {
	owner, err := DeviceOwner("dev1")
	require.NoError(t, err)

	note, err := NewNote("sid-1", owner, "Morning pages", "wrote a little")
	require.NoError(t, err)

	assert.Error(t, note.Update("", "content"))
	assert.NoError(t, note.Update("Evening pages", "wrote more"))
	assert.Equal(t, "Evening pages", note.Title())
}
