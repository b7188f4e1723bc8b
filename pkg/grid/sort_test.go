package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestCompareNumbers(t *testing.T) {
	m := personModel(t)
	a := person{Age: intPtr(9)}
	b := person{Age: intPtr(10)}

	assert.Equal(t, -1, Compare(a, b, SortSpec{ColumnID: "age", Direction: Asc}, m), "numeric, not lexical")
	assert.Equal(t, 1, Compare(a, b, SortSpec{ColumnID: "age", Direction: Desc}, m))
	assert.Equal(t, 0, Compare(a, a, SortSpec{ColumnID: "age", Direction: Asc}, m))
}

func TestCompareMissingSortsLast(t *testing.T) {
	m := personModel(t)
	missing := person{}
	present := person{Age: intPtr(1), Name: "x"}

	for _, dir := range []Direction{Asc, Desc} {
		assert.Equal(t, 1, Compare(missing, present, SortSpec{ColumnID: "age", Direction: dir}, m), dir)
		assert.Equal(t, -1, Compare(present, missing, SortSpec{ColumnID: "age", Direction: dir}, m), dir)
		assert.Equal(t, 0, Compare(missing, missing, SortSpec{ColumnID: "age", Direction: dir}, m), dir)

		assert.Equal(t, 1, Compare(missing, present, SortSpec{ColumnID: "name", Direction: dir}, m), dir)
	}
}

func TestCompareText(t *testing.T) {
	m := personModel(t)
	c := NewComparator(m, language.English)
	spec := SortSpec{ColumnID: "name", Direction: Asc}

	assert.Equal(t, -1, c.Compare(person{Name: "apple"}, person{Name: "Banana"}, spec), "collation ignores case at the primary level")
	assert.Equal(t, -1, c.Compare(person{Name: "émile"}, person{Name: "Fred"}, spec), "accented letters sort with their base letter")
	assert.Equal(t, 1, c.Compare(person{Name: "zed"}, person{Name: "Adam"}, spec))
}

func TestCompareUnsortableColumn(t *testing.T) {
	m := personModel(t)
	assert.Equal(t, 0, Compare(person{ID: 1}, person{ID: 2}, SortSpec{ColumnID: "id"}, m))
	assert.Equal(t, 0, Compare(person{ID: 1}, person{ID: 2}, SortSpec{ColumnID: "nope"}, m))
}

func TestSortRowsIsStable(t *testing.T) {
	m := personModel(t)
	rows := []person{
		{ID: 1, Status: "b"},
		{ID: 2, Status: "a"},
		{ID: 3, Status: "b"},
		{ID: 4, Status: "a"},
		{ID: 5, Status: "b"},
	}

	asc := SortRows(rows, &SortSpec{ColumnID: "status", Direction: Asc}, m)
	assert.Equal(t, []int{2, 4, 1, 3, 5}, ids(asc))

	desc := SortRows(rows, &SortSpec{ColumnID: "status", Direction: Desc}, m)
	assert.Equal(t, []int{1, 3, 5, 2, 4}, ids(desc), "ties keep input order in both directions")

	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(SortRows(rows, nil, m)), "no spec keeps source order")
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(rows), "input is not modified")
}
