// file: internals/features/settings/rules/unique.go
package rules

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	helper "labsuite_backend/internals/helpers"
)

// Scope narrows a uniqueness check to the rows of one parent.
type Scope struct {
	Column string
	Value  any
}

// UniqueCheck describes one natural-key lookup.
type UniqueCheck struct {
	Model     any    // pointer to the model, e.g. &model.TestType{}
	Column    string // natural key column
	Value     any
	PKColumn  string    // primary key column, used with ExcludeID
	ExcludeID uuid.UUID // row being updated; uuid.Nil on create
	Scope     *Scope

	Message   string
	MessageAr string
}

// EnsureUnique fails with Conflict when another row already holds the key.
func EnsureUnique(ctx context.Context, db *gorm.DB, chk UniqueCheck) error {
	q := db.WithContext(ctx).Model(chk.Model).Where(chk.Column+" = ?", chk.Value)
	if chk.Scope != nil {
		q = q.Where(chk.Scope.Column+" = ?", chk.Scope.Value)
	}
	if chk.ExcludeID != uuid.Nil && chk.PKColumn != "" {
		q = q.Where(chk.PKColumn+" <> ?", chk.ExcludeID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		msg, msgAr := chk.Message, chk.MessageAr
		if msg == "" {
			msg = fmt.Sprintf("%v already exists", chk.Value)
		}
		if msgAr == "" {
			msgAr = fmt.Sprintf("%v موجود بالفعل", chk.Value)
		}
		return helper.Conflict(msg, msgAr)
	}
	return nil
}

// EnsureNonNegative rejects negative money/quantity values.
func EnsureNonNegative(field string, v decimal.NullDecimal) error {
	if v.Valid && v.Decimal.IsNegative() {
		return helper.BadRequest(field+" must not be negative", "يجب ألا تكون القيمة "+field+" سالبة")
	}
	return nil
}
