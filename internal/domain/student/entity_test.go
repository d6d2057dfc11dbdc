package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudent_Average(t *testing.T) {
	assert.Equal(t, 85.0, New(1, "Al", 20, "CS", []int{80, 90}).Average())
	assert.InDelta(t, 66.666, New(1, "Al", 20, "CS", []int{50, 70, 80}).Average(), 0.001)
	assert.Equal(t, 0.0, New(1, "Al", 20, "CS", nil).Average())
}

func TestStudent_CloneIsDeep(t *testing.T) {
	orig := New(1, "Al", 20, "CS", []int{80, 90})

	c := orig.Clone()
	c.Marks[0] = 10
	c.Name = "Zed"

	assert.Equal(t, []int{80, 90}, orig.Marks)
	assert.Equal(t, "Al", orig.Name)
	assert.Nil(t, (*Student)(nil).Clone())
}

func TestStudent_Equal(t *testing.T) {
	a := New(1, "Al", 20, "CS", []int{80, 90})

	assert.True(t, a.Equal(a.Clone()))

	b := a.Clone()
	b.Marks = []int{80}
	assert.False(t, a.Equal(b))

	b = a.Clone()
	b.Department = "Math"
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
}

func TestStudent_String(t *testing.T) {
	s := New(1, "Al", 20, "CS", []int{80, 91})

	assert.Equal(t, "ID: 1, Name: Al, Age: 20, Dept: CS, Avg Marks: 85.50", s.String())
}

func TestNew_NilMarksBecomeEmpty(t *testing.T) {
	s := New(1, "Al", 20, "CS", nil)

	assert.NotNil(t, s.Marks)
	assert.Empty(t, s.Marks)
}
