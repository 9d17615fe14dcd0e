package xlsheet

import (
	"fmt"
	"strings"
)

// ValidationType is the kind of data a validation rule accepts.
type ValidationType int

const (
	ValidateList ValidationType = iota
	ValidateWholeNumber
	ValidateDecimal
	ValidateDate
	ValidateTime
	ValidateTextLength
	ValidateCustom
)

// ValidationOperator compares the cell against Formula1 (and Formula2).
type ValidationOperator int

const (
	OpBetween ValidationOperator = iota
	OpNotBetween
	OpEqual
	OpNotEqual
	OpGreaterThan
	OpLessThan
	OpGreaterThanOrEqual
	OpLessThanOrEqual
)

// ErrorStyle is the alert shown when a value is rejected.
type ErrorStyle int

const (
	ErrorStyleStop ErrorStyle = iota
	ErrorStyleWarning
	ErrorStyleInformation
)

var validationTypeNames = map[ValidationType]string{
	ValidateList:        "list",
	ValidateWholeNumber: "whole",
	ValidateDecimal:     "decimal",
	ValidateDate:        "date",
	ValidateTime:        "time",
	ValidateTextLength:  "textLength",
	ValidateCustom:      "custom",
}

var operatorNames = map[ValidationOperator]string{
	OpBetween:            "between",
	OpNotBetween:         "notBetween",
	OpEqual:              "equal",
	OpNotEqual:           "notEqual",
	OpGreaterThan:        "greaterThan",
	OpLessThan:           "lessThan",
	OpGreaterThanOrEqual: "greaterThanOrEqual",
	OpLessThanOrEqual:    "lessThanOrEqual",
}

var errorStyleNames = map[ErrorStyle]string{
	ErrorStyleStop:        "stop",
	ErrorStyleWarning:     "warning",
	ErrorStyleInformation: "information",
}

// String returns the package enumerant for the type.
func (t ValidationType) String() string {
	if s, ok := validationTypeNames[t]; ok {
		return s
	}
	return validationTypeNames[ValidateCustom]
}

// ParseValidationType maps a package enumerant back to a type. Unknown
// names fall back to ValidateCustom.
func ParseValidationType(s string) ValidationType {
	for t, name := range validationTypeNames {
		if strings.EqualFold(name, s) {
			return t
		}
	}
	return ValidateCustom
}

// String returns the package enumerant for the operator.
func (o ValidationOperator) String() string {
	if s, ok := operatorNames[o]; ok {
		return s
	}
	return operatorNames[OpBetween]
}

// ParseValidationOperator maps a package enumerant back to an operator.
// Unknown or empty names fall back to OpBetween, the format's default.
func ParseValidationOperator(s string) ValidationOperator {
	for o, name := range operatorNames {
		if strings.EqualFold(name, s) {
			return o
		}
	}
	return OpBetween
}

func (e ErrorStyle) String() string {
	if s, ok := errorStyleNames[e]; ok {
		return s
	}
	return errorStyleNames[ErrorStyleStop]
}

// ParseErrorStyle is case-insensitive; anything unrecognized is ErrorStyleStop.
func ParseErrorStyle(s string) ErrorStyle {
	for e, name := range errorStyleNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return e
		}
	}
	return ErrorStyleStop
}

// ValidationRule restricts the values accepted by a range of cells.
// Formula1 and Formula2 are stored as given; list literals are quoted,
// e.g. `"Yes,No"`.
type ValidationRule struct {
	Type       ValidationType
	Operator   ValidationOperator
	Formula1   string
	Formula2   string
	AllowBlank bool

	ShowInputMessage bool
	InputTitle       string
	InputMessage     string

	ShowErrorMessage bool
	ErrorStyle       ErrorStyle
	ErrorTitle       string
	ErrorMessage     string
}

// ListValidation accepts one of the given literal items.
func ListValidation(items ...string) ValidationRule {
	return ValidationRule{
		Type:       ValidateList,
		Formula1:   `"` + strings.Join(items, ",") + `"`,
		AllowBlank: true,
	}
}

// RangeListValidation accepts the values found in another range.
func RangeListValidation(source CellRange) ValidationRule {
	return ValidationRule{Type: ValidateList, Formula1: source.AbsoluteRef(), AllowBlank: true}
}

// CompareValidation builds a numeric, date, time or text-length rule.
func CompareValidation(t ValidationType, op ValidationOperator, formula1, formula2 string) ValidationRule {
	return ValidationRule{Type: t, Operator: op, Formula1: formula1, Formula2: formula2, AllowBlank: true}
}

// CustomValidation accepts values for which formula evaluates to true.
func CustomValidation(formula string) ValidationRule {
	return ValidationRule{Type: ValidateCustom, Formula1: strings.TrimPrefix(formula, "="), AllowBlank: true}
}

// WithInputMessage returns a copy that shows a prompt when the cell is selected.
func (r ValidationRule) WithInputMessage(title, message string) ValidationRule {
	r.ShowInputMessage = true
	r.InputTitle = title
	r.InputMessage = message
	return r
}

// WithErrorMessage returns a copy that shows an alert on invalid input.
func (r ValidationRule) WithErrorMessage(style ErrorStyle, title, message string) ValidationRule {
	r.ShowErrorMessage = true
	r.ErrorStyle = style
	r.ErrorTitle = title
	r.ErrorMessage = message
	return r
}

// ListItems returns the literal items of a quoted list rule.
func (r ValidationRule) ListItems() []string {
	if r.Type != ValidateList || !strings.HasPrefix(r.Formula1, `"`) {
		return nil
	}
	return strings.Split(strings.Trim(r.Formula1, `"`), ",")
}

// Validate checks the rule before it is attached to a sheet.
func (r ValidationRule) Validate() error {
	if _, ok := validationTypeNames[r.Type]; !ok {
		return invalid("validation type", int(r.Type), ErrInvalidRule)
	}
	if _, ok := operatorNames[r.Operator]; !ok {
		return invalid("validation operator", int(r.Operator), ErrInvalidRule)
	}
	if _, ok := errorStyleNames[r.ErrorStyle]; !ok {
		return invalid("error style", int(r.ErrorStyle), ErrInvalidRule)
	}
	if r.Formula1 == "" {
		return invalid("formula1", r.Formula1, ErrInvalidRule)
	}
	needsSecond := r.Type != ValidateList && r.Type != ValidateCustom &&
		(r.Operator == OpBetween || r.Operator == OpNotBetween)
	if needsSecond && r.Formula2 == "" {
		return invalid("formula2", fmt.Sprintf("%s %s", r.Type, r.Operator), ErrInvalidRule)
	}
	return nil
}

// RangeValidation pairs a rule with the range it applies to.
type RangeValidation struct {
	Range CellRange
	Rule  ValidationRule
}
