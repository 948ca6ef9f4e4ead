package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dafoundation/disaster-relief-api/internal/constants"
)

func strPtr(s string) *string {
	return &s
}

func TestAuthorize(t *testing.T) {
	owner := Caller{UserID: "owner-id", Roles: []string{constants.RoleUser}}
	other := Caller{UserID: "other-id", Roles: []string{constants.RoleUser}}
	admin := Caller{UserID: "admin-id", Roles: []string{constants.RoleAdmin}}

	tests := []struct {
		name    string
		caller  Caller
		op      Operation
		owner   *string
		wantErr error
	}{
		{"anonymous is rejected everywhere", Anonymous, OpList, strPtr("owner-id"), ErrNotAuthenticated},
		{"anonymous cannot create", Anonymous, OpCreate, nil, ErrNotAuthenticated},

		{"any user may list", other, OpList, nil, nil},
		{"any user may create", other, OpCreate, nil, nil},

		{"owner may view own record", owner, OpView, strPtr("owner-id"), nil},
		{"non-owner cannot view", other, OpView, strPtr("owner-id"), ErrNotOwner},
		{"admin may view any record", admin, OpView, strPtr("owner-id"), nil},
		{"admin may view orphaned record", admin, OpView, nil, nil},

		{"owner may edit own record", owner, OpEdit, strPtr("owner-id"), nil},
		{"non-owner cannot edit", other, OpEdit, strPtr("owner-id"), ErrNotOwner},
		{"admin cannot edit another user's record", admin, OpEdit, strPtr("owner-id"), ErrNotOwner},
		{"owner may delete own record", owner, OpDelete, strPtr("owner-id"), nil},
		{"non-owner cannot delete", other, OpDelete, strPtr("owner-id"), ErrNotOwner},

		{"orphaned record is admin-only for edit", admin, OpEdit, nil, nil},
		{"orphaned record is closed to regular users", owner, OpEdit, nil, ErrNotOwner},
		{"orphaned record is admin-only for delete", admin, OpDelete, nil, nil},

		{"admin passes admin gate", admin, OpAdmin, nil, nil},
		{"regular user fails admin gate", owner, OpAdmin, nil, ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.caller, tt.op, tt.owner)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestStampOwner(t *testing.T) {
	caller := Caller{UserID: "user-1"}
	stamped := StampOwner(caller)
	assert.NotNil(t, stamped)
	assert.Equal(t, "user-1", *stamped)
}

func TestCanReadMessage(t *testing.T) {
	sender := strPtr("sender-id")
	recipient := strPtr("recipient-id")

	tests := []struct {
		name      string
		caller    Caller
		sender    *string
		recipient *string
		wantErr   error
	}{
		{"anonymous rejected", Anonymous, sender, recipient, ErrNotAuthenticated},
		{"sender may read", Caller{UserID: "sender-id"}, sender, recipient, nil},
		{"recipient may read", Caller{UserID: "recipient-id"}, sender, recipient, nil},
		{"third party rejected", Caller{UserID: "stranger"}, sender, recipient, ErrNotOwner},
		{"broadcast visible to everyone", Caller{UserID: "stranger"}, sender, nil, nil},
		{"admin may read anything", Caller{UserID: "a", Roles: []string{constants.RoleAdmin}}, sender, recipient, nil},
		{"orphaned sender still readable by recipient", Caller{UserID: "recipient-id"}, nil, recipient, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanReadMessage(tt.caller, tt.sender, tt.recipient)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
