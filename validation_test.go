package xlsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationType_RoundTrip(t *testing.T) {
	for typ, name := range validationTypeNames {
		assert.Equal(t, name, typ.String())
		assert.Equal(t, typ, ParseValidationType(name))
	}
	assert.Equal(t, ValidateList, ParseValidationType("LIST"))
	assert.Equal(t, ValidateTextLength, ParseValidationType("textlength"))
	assert.Equal(t, ValidateCustom, ParseValidationType("bogus"))
	assert.Equal(t, "custom", ValidationType(42).String())
}

func TestValidationOperator_RoundTrip(t *testing.T) {
	for op, name := range operatorNames {
		assert.Equal(t, name, op.String())
		assert.Equal(t, op, ParseValidationOperator(name))
	}
	assert.Equal(t, OpBetween, ParseValidationOperator(""))
	assert.Equal(t, OpGreaterThanOrEqual, ParseValidationOperator("GreaterThanOrEqual"))
	assert.Equal(t, "between", ValidationOperator(-1).String())
}

func TestErrorStyle_RoundTrip(t *testing.T) {
	for style, name := range errorStyleNames {
		assert.Equal(t, name, style.String())
		assert.Equal(t, style, ParseErrorStyle(name))
	}
	assert.Equal(t, ErrorStyleWarning, ParseErrorStyle(" WARNING "))
	assert.Equal(t, ErrorStyleStop, ParseErrorStyle("fatal"))
	assert.Equal(t, ErrorStyleStop, ParseErrorStyle(""))
	assert.Equal(t, "stop", ErrorStyle(9).String())
}

func TestListValidation(t *testing.T) {
	r := ListValidation("Yes", "No", "Maybe")
	assert.Equal(t, ValidateList, r.Type)
	assert.Equal(t, `"Yes,No,Maybe"`, r.Formula1)
	assert.True(t, r.AllowBlank)
	assert.Equal(t, []string{"Yes", "No", "Maybe"}, r.ListItems())
	require.NoError(t, r.Validate())
}

func TestRangeListValidation(t *testing.T) {
	r := RangeListValidation(RangeFromBounds(Pos(5, 0), Pos(5, 9)))
	assert.Equal(t, "$F$1:$F$10", r.Formula1)
	assert.Nil(t, r.ListItems())
}

func TestValidationRule_Messages(t *testing.T) {
	r := CompareValidation(ValidateDecimal, OpBetween, "0", "100").
		WithInputMessage("Score", "0 to 100").
		WithErrorMessage(ErrorStyleInformation, "Out of range", "Must be 0-100")
	require.NoError(t, r.Validate())

	assert.True(t, r.ShowInputMessage)
	assert.Equal(t, "Score", r.InputTitle)
	assert.Equal(t, "0 to 100", r.InputMessage)
	assert.True(t, r.ShowErrorMessage)
	assert.Equal(t, ErrorStyleInformation, r.ErrorStyle)
	assert.Equal(t, "Must be 0-100", r.ErrorMessage)
}

func TestValidationRule_Validate(t *testing.T) {
	tests := []struct {
		name string
		rule ValidationRule
		ok   bool
	}{
		{"list", ListValidation("a"), true},
		{"custom", CustomValidation("=A1>0"), true},
		{"greater than", CompareValidation(ValidateWholeNumber, OpGreaterThan, "0", ""), true},
		{"between needs second", CompareValidation(ValidateDate, OpBetween, "1", ""), false},
		{"not between needs second", CompareValidation(ValidateTime, OpNotBetween, "1", ""), false},
		{"empty formula", ValidationRule{Type: ValidateCustom}, false},
		{"unknown type", ValidationRule{Type: ValidationType(77), Formula1: "1"}, false},
		{"unknown operator", ValidationRule{Operator: ValidationOperator(77), Formula1: "1"}, false},
		{"unknown error style", ValidationRule{ErrorStyle: ErrorStyle(77), Formula1: "1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidRule)
			}
		})
	}
}
