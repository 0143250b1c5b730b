package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}

func emptyToNil(p *string) any {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return strings.TrimSpace(*p)
}

func toNullDecimal(p *decimal.Decimal) decimal.NullDecimal {
	if p == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*p)
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

// parseDatePtr parses "YYYY-MM-DD"; nil or "" yields nil. Format is checked by the validator.
func parseDatePtr(p *string) *time.Time {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*p))
	if err != nil {
		return nil
	}
	return &t
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// OptionalDecimal tells an absent field from an explicit null.
// Set is true whenever the key was present; a null leaves Value invalid.
type OptionalDecimal struct {
	Set   bool
	Value decimal.NullDecimal
}

func (o *OptionalDecimal) UnmarshalJSON(b []byte) error {
	o.Set = true
	return o.Value.UnmarshalJSON(b)
}

// update is the column value: the decimal, or nil to store NULL.
func (o OptionalDecimal) update() any {
	if !o.Value.Valid {
		return nil
	}
	return o.Value.Decimal
}

// roundKm matches the numeric(10,2) columns.
func roundKm(p *float64) {
	if p != nil {
		*p = decimal.NewFromFloat(*p).Round(2).InexactFloat64()
	}
}
