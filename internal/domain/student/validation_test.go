package student

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/domain/shared"
)

func validStudent() *Student {
	return New(1, "Al", 20, "CS", []int{80, 90})
}

func TestValidate_ValidRecord(t *testing.T) {
	res := Validate(validStudent())

	assert.True(t, res.Valid())
	assert.Empty(t, res.Violations)
	assert.Equal(t, "", res.Message())
	assert.NoError(t, res.Err("Add"))
}

func TestValidate_CollectsAllViolationsInOrder(t *testing.T) {
	s := New(0, " ", 10, "", []int{50, 150, -1})

	res := Validate(s)

	require.False(t, res.Valid())
	codes := make([]ViolationCode, 0, len(res.Violations))
	for _, v := range res.Violations {
		codes = append(codes, v.Code)
	}
	assert.Equal(t, []ViolationCode{
		CodeIDNotPositive,
		CodeNameEmpty,
		CodeAgeOutOfRange,
		CodeDepartmentEmpty,
		CodeMarkOutOfRange,
	}, codes)
	assert.Equal(t,
		"Student ID must be positive.; Name cannot be empty.; Age must be between 15 and 100.; "+
			"Department cannot be empty.; Marks must be between 0 and 100.",
		res.Message())
}

func TestValidate_BadMarksYieldOneViolation(t *testing.T) {
	res := Validate(New(1, "Al", 20, "CS", []int{150, 200, -1}))

	require.Len(t, res.Violations, 1)
	assert.Equal(t, CodeMarkOutOfRange, res.Violations[0].Code)
	assert.Equal(t, "Marks must be between 0 and 100.", res.Message())
}

func TestValidate_NameAndAgeRules(t *testing.T) {
	tests := []struct {
		name string
		mut  func(s *Student)
		code ViolationCode
	}{
		{"short name", func(s *Student) { s.Name = "A" }, CodeNameTooShort},
		{"blank name", func(s *Student) { s.Name = "\t" }, CodeNameEmpty},
		{"zero age", func(s *Student) { s.Age = 0 }, CodeAgeNotPositive},
		{"negative age", func(s *Student) { s.Age = -3 }, CodeAgeNotPositive},
		{"age too low", func(s *Student) { s.Age = 14 }, CodeAgeOutOfRange},
		{"age too high", func(s *Student) { s.Age = 101 }, CodeAgeOutOfRange},
		{"blank department", func(s *Student) { s.Department = "  " }, CodeDepartmentEmpty},
		{"negative id", func(s *Student) { s.ID = -7 }, CodeIDNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStudent()
			tt.mut(s)

			res := Validate(s)

			require.Len(t, res.Violations, 1)
			assert.Equal(t, tt.code, res.Violations[0].Code)
		})
	}
}

func TestValidate_BoundariesAreInclusive(t *testing.T) {
	s := New(1, "Jo", MinAge, "Math", []int{MinMark, MaxMark})
	assert.True(t, Validate(s).Valid())

	s.Age = MaxAge
	assert.True(t, Validate(s).Valid())

	s.Marks = nil
	assert.True(t, Validate(s).Valid(), "no marks is allowed")
}

func TestValidate_NameLengthCountsRunes(t *testing.T) {
	s := validStudent()
	s.Name = "\u00c9"

	assert.True(t, Validate(s).Has(CodeNameTooShort), "one rune is too short even though it is two bytes")

	s.Name = "\u00c9d"
	assert.True(t, Validate(s).Valid())
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	s := New(0, "", 5, "", []int{200})
	before := s.Clone()

	_ = Validate(s)

	assert.True(t, before.Equal(s))
}

func TestValidationResult_Err(t *testing.T) {
	s := validStudent()
	s.Age = 10

	err := Validate(s).Err("Update")

	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
	assert.True(t, shared.IsValidation(err))
	assert.Contains(t, err.Error(), "student.Update")
	assert.Contains(t, err.Error(), "Age must be between 15 and 100.")

	ve, ok := ValidationErrorFrom(err)
	require.True(t, ok)
	assert.True(t, ve.Result.Has(CodeAgeOutOfRange))
	assert.Equal(t, shared.ErrValueOutOfRange, CodeAgeOutOfRange.Kind())
}

func TestValidateID(t *testing.T) {
	assert.True(t, ValidateID(3).Valid())

	res := ValidateID(0)
	assert.False(t, res.Valid())
	assert.Equal(t, "ID must be positive.", res.Message())
	assert.Equal(t, shared.ErrInvalidID, res.Violations[0].Code.Kind())
}
