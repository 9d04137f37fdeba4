package csvimport

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FieldType is the expected type of a column
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "integer"
	TypeDecimal FieldType = "decimal"
	TypeUUID    FieldType = "uuid"
)

// FieldRule describes the checks applied to one column
type FieldRule struct {
	Column   string
	Type     FieldType
	Required bool
	Unique   bool
	MinValue *decimal.Decimal
	MaxValue *decimal.Decimal
	Custom   func(value string) error
}

// FieldRuleBuilder builds a FieldRule fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field starts a rule for column, typed as a string
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{rule: FieldRule{Column: column, Type: TypeString}}
}

// Required rejects blank cells
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Int expects a base-10 integer
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

// Decimal expects a decimal number
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// UUID expects a canonical UUID
func (b *FieldRuleBuilder) UUID() *FieldRuleBuilder {
	b.rule.Type = TypeUUID
	return b
}

// Unique rejects a value already seen earlier in the file
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Min sets an inclusive lower bound for numeric columns
func (b *FieldRuleBuilder) Min(v int64) *FieldRuleBuilder {
	d := decimal.NewFromInt(v)
	b.rule.MinValue = &d
	return b
}

// Max sets an inclusive upper bound for numeric columns
func (b *FieldRuleBuilder) Max(v int64) *FieldRuleBuilder {
	d := decimal.NewFromInt(v)
	b.rule.MaxValue = &d
	return b
}

// Custom adds a final check run on non-blank, well-typed values
func (b *FieldRuleBuilder) Custom(fn func(value string) error) *FieldRuleBuilder {
	b.rule.Custom = fn
	return b
}

// Build returns the rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator applies rules row by row, collecting every failure
type FieldValidator struct {
	rules  []FieldRule
	seen   map[string]map[string]int // column -> value -> first line
	errors *ErrorCollection
}

// NewFieldValidator creates a validator that writes into errs
func NewFieldValidator(errs *ErrorCollection, rules ...FieldRule) *FieldValidator {
	return &FieldValidator{
		rules:  rules,
		seen:   make(map[string]map[string]int),
		errors: errs,
	}
}

// Columns returns the columns the rules cover
func (v *FieldValidator) Columns() []string {
	cols := make([]string, len(v.rules))
	for i, r := range v.rules {
		cols[i] = r.Column
	}
	return cols
}

// RequiredColumns returns the columns that must be present in the header
func (v *FieldValidator) RequiredColumns() []string {
	var cols []string
	for _, r := range v.rules {
		if r.Required {
			cols = append(cols, r.Column)
		}
	}
	return cols
}

// ValidateRow checks every rule against row and reports whether it passed
func (v *FieldValidator) ValidateRow(row *Row) bool {
	ok := true
	for _, rule := range v.rules {
		if !v.validateField(row, rule) {
			ok = false
		}
	}
	return ok
}

func (v *FieldValidator) validateField(row *Row, rule FieldRule) bool {
	value := row.Get(rule.Column)
	if value == "" {
		if rule.Required {
			v.errors.Add(RowError{Row: row.Line, Column: rule.Column, Code: ErrCodeRequired,
				Message: fmt.Sprintf("field '%s' is required", rule.Column)})
			return false
		}
		return true
	}

	if err := checkType(value, rule.Type); err != nil {
		v.errors.Add(RowError{Row: row.Line, Column: rule.Column, Code: ErrCodeInvalidType,
			Message: fmt.Sprintf("expected %s", rule.Type), Value: value})
		return false
	}

	if (rule.Type == TypeInt || rule.Type == TypeDecimal) && !inRange(value, rule.MinValue, rule.MaxValue) {
		v.errors.Add(RowError{Row: row.Line, Column: rule.Column, Code: ErrCodeOutOfRange,
			Message: rangeMessage(rule.MinValue, rule.MaxValue), Value: value})
		return false
	}

	if rule.Unique {
		if v.seen[rule.Column] == nil {
			v.seen[rule.Column] = make(map[string]int)
		}
		if first, dup := v.seen[rule.Column][value]; dup {
			v.errors.Add(RowError{Row: row.Line, Column: rule.Column, Code: ErrCodeDuplicate,
				Message: fmt.Sprintf("duplicate value (first seen in row %d)", first), Value: value})
			return false
		}
		v.seen[rule.Column][value] = row.Line
	}

	if rule.Custom != nil {
		if err := rule.Custom(value); err != nil {
			v.errors.Add(RowError{Row: row.Line, Column: rule.Column, Code: ErrCodeInvalid,
				Message: err.Error(), Value: value})
			return false
		}
	}
	return true
}

func checkType(value string, t FieldType) error {
	switch t {
	case TypeInt:
		_, err := strconv.ParseInt(value, 10, 64)
		return err
	case TypeDecimal:
		_, err := decimal.NewFromString(value)
		return err
	case TypeUUID:
		_, err := uuid.Parse(value)
		return err
	default:
		return nil
	}
}

func inRange(value string, min, max *decimal.Decimal) bool {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	if min != nil && d.LessThan(*min) {
		return false
	}
	if max != nil && d.GreaterThan(*max) {
		return false
	}
	return true
}

func rangeMessage(min, max *decimal.Decimal) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("value must be between %s and %s", min, max)
	case min != nil:
		return fmt.Sprintf("value must be at least %s", min)
	case max != nil:
		return fmt.Sprintf("value must be at most %s", max)
	default:
		return "value out of range"
	}
}
