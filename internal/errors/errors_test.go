package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChiselError_Error(t *testing.T) {
	err := NewParseError("component_not_found", "no component function definition found")
	assert.Equal(t, "[component_not_found] no component function definition found", err.Error())

	withComponent := NewParseError("markup_not_found", "component returns no renderable markup").
		WithComponent("Button")
	assert.Contains(t, withComponent.Error(), "component:Button")

	cause := fmt.Errorf("line 3: unexpected token")
	wrapped := NewTranspileError("syntax", "compilation failed", cause)
	assert.Contains(t, wrapped.Error(), "unexpected token")
}

func TestChiselError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewIOError("write_failed", "saving file failed", cause)
	assert.ErrorIs(t, err, cause)
}

func TestChiselError_Is(t *testing.T) {
	err := NewValidationError("invalid_value", "bad value")

	assert.ErrorIs(t, err, &ChiselError{Kind: KindValidation})
	assert.ErrorIs(t, err, &ChiselError{Kind: KindValidation, Code: "invalid_value"})
	assert.NotErrorIs(t, err, &ChiselError{Kind: KindValidation, Code: "other_code"})
	assert.NotErrorIs(t, err, &ChiselError{Kind: KindParse})
}

func TestChiselError_WithContext(t *testing.T) {
	err := NewExecutionError("timeout", "too slow", nil).
		WithContext("elapsed", "2s").
		WithContext("limit", "1s")
	assert.Equal(t, "2s", err.Context["elapsed"])
	assert.Equal(t, "1s", err.Context["limit"])
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindParse, KindOf(NewParseError("c", "m")))
	assert.Equal(t, KindExecution, KindOf(NewExecutionError("c", "m", nil)))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := NewTranspileError("syntax", "bad markup", nil)
	wrapped := fmt.Errorf("rendering preview: %w", inner)
	assert.Equal(t, KindTranspile, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindTranspile))
	assert.False(t, IsKind(wrapped, KindParse))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *ChiselError
		kind Kind
	}{
		{NewParseError("c", "m"), KindParse},
		{NewTranspileError("c", "m", nil), KindTranspile},
		{NewExecutionError("c", "m", nil), KindExecution},
		{NewValidationError("c", "m"), KindValidation},
		{NewIOError("c", "m", nil), KindIO},
		{NewConfigError("c", "m"), KindConfig},
		{NewInternalError("c", "m", nil), KindInternal},
	}
	for _, tt := range tests {
		require.NotNil(t, tt.err)
		assert.Equal(t, tt.kind, tt.err.Kind)
		assert.Equal(t, "c", tt.err.Code)
		assert.Equal(t, "m", tt.err.Message)
	}
}
