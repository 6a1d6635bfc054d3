package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "without field",
			err:      New(CodeInvalidInput, "input is invalid"),
			expected: "[INVALID_INPUT] input is invalid",
		},
		{
			name:     "with field",
			err:      NewWithField(CodeUnknownTeacher, "teacher not found", "teacher_id"),
			expected: "[UNKNOWN_TEACHER] teacher not found (field: teacher_id)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, CodeInternal, "wrapped error")

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestNew(t *testing.T) {
	err := New(CodeEmptyInput, "input is empty")

	assert.Equal(t, CodeEmptyInput, err.Code)
	assert.Equal(t, "input is empty", err.Message)
	assert.Equal(t, SeverityError, err.Severity)
}

func TestNewWarning(t *testing.T) {
	err := NewWarning(CodeOverCapacity, "class is over capacity")
	assert.Equal(t, SeverityWarning, err.Severity)
}

func TestNewCritical(t *testing.T) {
	err := NewCritical(CodeInternal, "critical failure")
	assert.Equal(t, SeverityCritical, err.Severity)
}

func TestWithDetails(t *testing.T) {
	err := New(CodeInvalidInput, "invalid").
		WithDetails("teacher_count", 5).
		WithDetails("slot_count", 10)

	assert.Equal(t, 5, err.Details["teacher_count"])
	assert.Equal(t, 10, err.Details["slot_count"])
}

func TestWithField(t *testing.T) {
	err := New(CodeUnknownParent, "invalid parent").WithField("parent_id")
	assert.Equal(t, "parent_id", err.Field)
}

func TestWithSeverity(t *testing.T) {
	err := New(CodeInvalidInput, "invalid").WithSeverity(SeverityCritical)
	assert.Equal(t, SeverityCritical, err.Severity)
}

func TestIs(t *testing.T) {
	err := New(CodeEmptyInput, "empty input")

	assert.True(t, Is(err, CodeEmptyInput))
	assert.False(t, Is(err, CodeInvalidInput))
	assert.False(t, Is(errors.New("regular error"), CodeEmptyInput))
}

func TestCode(t *testing.T) {
	err := New(CodeNoPath, "no path")
	assert.Equal(t, CodeNoPath, Code(err))

	regularErr := errors.New("regular error")
	assert.Equal(t, CodeInternal, Code(regularErr))
}

func TestIsWarning(t *testing.T) {
	warning := NewWarning(CodeOverCapacity, "over capacity")
	err := New(CodeInvalidInput, "invalid")

	assert.True(t, IsWarning(warning))
	assert.False(t, IsWarning(err))
}

func TestIsCritical(t *testing.T) {
	critical := NewCritical(CodeInternal, "critical")
	err := New(CodeInvalidInput, "invalid")

	assert.True(t, IsCritical(critical))
	assert.False(t, IsCritical(err))
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.severity.String())
	}
}

func TestValidationErrors(t *testing.T) {
	t.Run("new validation errors", func(t *testing.T) {
		ve := NewValidationErrors()
		assert.False(t, ve.HasErrors())
		assert.False(t, ve.HasWarnings())
		assert.True(t, ve.IsValid())
	})

	t.Run("add error", func(t *testing.T) {
		ve := NewValidationErrors()
		ve.AddError(CodeInvalidInput, "invalid input")

		assert.True(t, ve.HasErrors())
		assert.False(t, ve.IsValid())
		assert.Len(t, ve.Errors, 1)
	})

	t.Run("add warning", func(t *testing.T) {
		ve := NewValidationErrors()
		ve.AddWarning(CodeOverCapacity, "over capacity")

		assert.True(t, ve.HasWarnings())
		assert.True(t, ve.IsValid())
	})

	t.Run("add error with field", func(t *testing.T) {
		ve := NewValidationErrors()
		ve.AddErrorWithField(CodeUnknownParent, "invalid", "parent_id")

		assert.Equal(t, "parent_id", ve.Errors[0].Field)
	})

	t.Run("add via Add method", func(t *testing.T) {
		ve := NewValidationErrors()
		ve.Add(NewWarning(CodeOverCapacity, "warning"))
		ve.Add(New(CodeInvalidInput, "error"))

		assert.Len(t, ve.Warnings, 1)
		assert.Len(t, ve.Errors, 1)
	})

	t.Run("merge", func(t *testing.T) {
		ve1 := NewValidationErrors()
		ve1.AddError(CodeInvalidInput, "error1")

		ve2 := NewValidationErrors()
		ve2.AddError(CodeUnknownParent, "error2")
		ve2.AddWarning(CodeOverCapacity, "warning")

		ve1.Merge(ve2)

		assert.Len(t, ve1.Errors, 2)
		assert.Len(t, ve1.Warnings, 1)
	})

	t.Run("merge nil", func(t *testing.T) {
		ve := NewValidationErrors()
		assert.NotPanics(t, func() { ve.Merge(nil) })
	})

	t.Run("error messages", func(t *testing.T) {
		ve := NewValidationErrors()
		ve.AddError(CodeInvalidInput, "error1")
		ve.AddError(CodeUnknownParent, "error2")

		assert.Len(t, ve.ErrorMessages(), 2)
	})

	t.Run("warning messages", func(t *testing.T) {
		ve := NewValidationErrors()
		ve.AddWarning(CodeOverCapacity, "warning1")

		messages := ve.WarningMessages()
		assert.Len(t, messages, 1)
		assert.Equal(t, "warning1", messages[0])
	})
}

func TestPredefinedErrors(t *testing.T) {
	predefinedErrors := []*Error{
		ErrEmptyInput,
		ErrUnknownTeacher,
		ErrUnknownParent,
		ErrSlotNotFound,
		ErrNoPath,
		ErrNegativeCycle,
		ErrTimeout,
		ErrNilInput,
		ErrIterationLimit,
		ErrInfeasible,
		ErrOverCapacity,
	}

	for _, err := range predefinedErrors {
		assert.NotNil(t, err)
		assert.NotEmpty(t, err.Code)
		assert.NotEmpty(t, err.Message)
	}
}
