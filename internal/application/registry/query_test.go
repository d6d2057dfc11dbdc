package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/domain/student"
)

func ids(students []*student.Student) []int {
	out := make([]int, len(students))
	for i, s := range students {
		out[i] = s.ID
	}
	return out
}

func populated(t *testing.T) *Service {
	t.Helper()
	svc, _ := newTestService(t,
		student.New(1, "carol", 25, "Computer Science", []int{70, 80}),
		student.New(2, "Bob", 19, "math", []int{90}),
		student.New(3, "alice", 30, "CS", []int{75, 75}),
		student.New(4, "Dave", 19, "Mathematics", nil),
		student.New(5, "Bobby", 40, "Math", []int{90}),
	)
	return svc
}

func TestAll_ReturnsSnapshot(t *testing.T) {
	svc := populated(t)

	all := svc.All()
	all[0].Name = "mutated"
	all[0].Marks[0] = 0
	all = append(all[:1], all[2:]...)

	got, _ := svc.ByID(1)
	assert.Equal(t, "carol", got.Name)
	assert.Equal(t, []int{70, 80}, got.Marks)
	assert.Equal(t, 5, svc.Len())
	assert.Len(t, all, 4)
}

func TestTopper(t *testing.T) {
	svc := populated(t)

	top, ok := svc.Topper()

	require.True(t, ok)
	assert.Equal(t, 2, top.ID, "first of the tied 90 averages wins")

	empty, _ := newTestService(t)
	_, ok = empty.Topper()
	assert.False(t, ok)
}

func TestSortedByName_Ordinal(t *testing.T) {
	svc := populated(t)

	assert.Equal(t, []int{2, 5, 4, 3, 1}, ids(svc.SortedByName()), "uppercase sorts before lowercase")
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(svc.All()), "sorting does not reorder storage")
}

func TestSortedByAge_Stable(t *testing.T) {
	svc := populated(t)

	assert.Equal(t, []int{2, 4, 1, 3, 5}, ids(svc.SortedByAge()))
}

func TestSortedByAverage_NonIncreasing(t *testing.T) {
	svc := populated(t)

	sorted := svc.SortedByAverage()

	assert.Equal(t, []int{2, 5, 1, 3, 4}, ids(sorted), "ties keep stored order")
	for i := 1; i < len(sorted); i++ {
		assert.GreaterOrEqual(t, sorted[i-1].Average(), sorted[i].Average())
	}
}

func TestFilterByDepartment(t *testing.T) {
	svc := populated(t)

	assert.Equal(t, []int{2, 5}, ids(svc.FilterByDepartment("MATH")))
	assert.Equal(t, []int{3}, ids(svc.FilterByDepartment("cs")))
	assert.Empty(t, svc.FilterByDepartment("Physics"))
	assert.Empty(t, svc.FilterByDepartment(""))
	assert.Empty(t, svc.FilterByDepartment("   "))
}

func TestFilterByMinimumAverage(t *testing.T) {
	svc := populated(t)

	assert.Equal(t, []int{1, 2, 3, 5}, ids(svc.FilterByMinimumAverage(75)), "threshold is inclusive")
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(svc.FilterByMinimumAverage(0)))
	assert.Empty(t, svc.FilterByMinimumAverage(100.5))
}

func TestSearchByName(t *testing.T) {
	svc := populated(t)

	assert.Equal(t, []int{2, 5}, ids(svc.SearchByName("BOB")))
	assert.Equal(t, []int{1, 3}, ids(svc.SearchByName("c")))
	assert.Empty(t, svc.SearchByName(""))
	assert.Empty(t, svc.SearchByName(" \t"))
}

func TestSearchByDepartment(t *testing.T) {
	svc := populated(t)

	assert.Equal(t, []int{2, 4, 5}, ids(svc.SearchByDepartment("mat")))
	assert.Equal(t, []int{1}, ids(svc.SearchByDepartment("science")))
	assert.Empty(t, svc.SearchByDepartment(""))
}

func TestQueriesReturnCopies(t *testing.T) {
	svc := populated(t)

	res := svc.SearchByName("bob")
	res[0].Marks[0] = 1

	got, _ := svc.ByID(2)
	assert.Equal(t, []int{90}, got.Marks)
}
