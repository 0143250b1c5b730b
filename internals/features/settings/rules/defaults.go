package rules

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "labsuite_backend/internals/helpers"
)

// DefaultScope identifies the rows among which only one may carry the default flag.
type DefaultScope struct {
	Model      any
	FlagColumn string
	Scope      Scope
	PKColumn   string
	KeepID     uuid.UUID // uuid.Nil when the new row is not inserted yet
}

// DemoteOtherDefaults clears the default flag on every other row of the scope.
// Call it inside the same transaction as the write that sets the flag.
func DemoteOtherDefaults(tx *gorm.DB, s DefaultScope) error {
	q := tx.Model(s.Model).
		Where(s.Scope.Column+" = ?", s.Scope.Value).
		Where(s.FlagColumn+" = ?", true)
	if s.KeepID != uuid.Nil {
		q = q.Where(s.PKColumn+" <> ?", s.KeepID)
	}
	return q.Update(s.FlagColumn, false).Error
}

// EnsureNotSystem blocks destructive actions on platform-owned rows.
func EnsureNotSystem(isSystem bool, action string) error {
	if !isSystem {
		return nil
	}
	switch action {
	case "deactivate":
		return helper.BadRequest("cannot deactivate system record", "لا يمكن تعطيل سجل النظام")
	default:
		return helper.BadRequest("cannot delete system record", "لا يمكن حذف سجل النظام")
	}
}
