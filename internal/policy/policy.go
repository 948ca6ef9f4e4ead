// Package policy is the single place ownership and role rules live.
// Every service passes an explicit Caller in; nothing here reads
// ambient request state.
package policy

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/constants"
)

var (
	ErrNotAuthenticated = errors.New("caller is not authenticated")
	ErrNotOwner         = errors.New("caller does not own this record")
)

// Caller is the identity and role set for the current operation,
// derived from the session by the auth middleware.
type Caller struct {
	UserID string
	Roles  []string
}

// Anonymous is the zero caller.
var Anonymous = Caller{}

func (c Caller) IsAnonymous() bool {
	return c.UserID == ""
}

func (c Caller) IsAdmin() bool {
	for _, r := range c.Roles {
		if r == constants.RoleAdmin {
			return true
		}
	}
	return false
}

// Operation is the kind of access being requested.
type Operation int

const (
	OpList Operation = iota
	OpView
	OpCreate
	OpEdit
	OpDelete
	OpAdmin
)

// Authorize decides whether caller may perform op on a record owned by
// owner. A nil owner means the owning account was deleted; only an
// Admin may touch such a record. List callers get a blanket allow here
// and are narrowed by Scope instead of a post-hoc check.
func Authorize(caller Caller, op Operation, owner *string) error {
	if caller.IsAnonymous() {
		return ErrNotAuthenticated
	}

	switch op {
	case OpList, OpCreate:
		return nil
	case OpAdmin:
		if caller.IsAdmin() {
			return nil
		}
		return ErrNotOwner
	case OpView:
		if caller.IsAdmin() {
			return nil
		}
		if owner != nil && *owner == caller.UserID {
			return nil
		}
		return ErrNotOwner
	case OpEdit, OpDelete:
		if owner != nil && *owner == caller.UserID {
			return nil
		}
		if owner == nil && caller.IsAdmin() {
			return nil
		}
		return ErrNotOwner
	}

	return ErrNotOwner
}

// StampOwner returns the owner value to persist on a created record.
// The caller's identity is authoritative; any client-supplied owner
// must be discarded in favor of this.
func StampOwner(caller Caller) *string {
	id := caller.UserID
	return &id
}

// Scope restricts a list query to records the caller owns via the
// given column. Admins see everything.
func Scope(caller Caller, ownerColumn string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if caller.IsAdmin() {
			return db
		}
		return db.Where(ownerColumn+" = ?", caller.UserID)
	}
}

// ParticipantScope is the communications exception to single-owner
// scoping: a message is visible to its sender, its recipient, and to
// everyone when it is a broadcast (nil recipient).
func ParticipantScope(caller Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if caller.IsAdmin() {
			return db
		}
		return db.Where(
			"sender_user_id = ? OR recipient_user_id = ? OR recipient_user_id IS NULL",
			caller.UserID, caller.UserID,
		)
	}
}

// CanReadMessage applies the participant rule to a single record.
func CanReadMessage(caller Caller, sender, recipient *string) error {
	if caller.IsAnonymous() {
		return ErrNotAuthenticated
	}
	if caller.IsAdmin() || recipient == nil {
		return nil
	}
	if sender != nil && *sender == caller.UserID {
		return nil
	}
	if *recipient == caller.UserID {
		return nil
	}
	return ErrNotOwner
}
