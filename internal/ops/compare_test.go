package ops

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developingchet/counted-sortedlist/internal/counter"
)

func TestCompare_Scenarios(t *testing.T) {
	scenarios := [][]string{
		{"add=5", "add=5", "size", "total"},
		{"addall=3,1,2", "get=0", "get=1", "get=2", "size", "total"},
		{"add=1", "remove=1", "size", "total"},
		{"get=0", "total"},
	}
	for _, sc := range scenarios {
		cmp, err := Compare(mustParseAll(t, sc...))
		require.NoError(t, err, sc)
		require.Len(t, cmp.Outcomes, len(counter.Variants))
		assert.Equal(t, counter.Delegation, cmp.Outcomes[0].Variant)
		assert.Equal(t, counter.Inheritance, cmp.Outcomes[1].Variant)
	}
}

func TestCompare_Outcome(t *testing.T) {
	cmp, err := Compare(mustParseAll(t, "addall=3,1,2", "add=2", "remove=3"))
	require.NoError(t, err)
	for _, o := range cmp.Outcomes {
		assert.Equal(t, []int{1, 2}, o.Values, o.Variant)
		assert.Equal(t, 4, o.TotalAdded, o.Variant)
		assert.Len(t, o.Results, 3)
	}
}

func TestCompare_RandomSequences(t *testing.T) {
	kinds := []string{"add", "addall", "get", "remove", "removeall", "size", "total"}
	for seed := int64(1); seed <= 25; seed++ {
		r := rand.New(rand.NewSource(seed))
		var in []string
		for i := 0; i < 60; i++ {
			k := kinds[r.Intn(len(kinds))]
			switch k {
			case "size", "total":
				in = append(in, k)
			case "get":
				in = append(in, k+"="+strconv.Itoa(r.Intn(12)-2))
			default:
				s := k + "=" + strconv.Itoa(r.Intn(20))
				for j := r.Intn(3); j > 0; j-- {
					s += "," + strconv.Itoa(r.Intn(20))
				}
				in = append(in, s)
			}
		}
		_, err := Compare(mustParseAll(t, in...))
		require.NoError(t, err, "seed %d", seed)
	}
}

func TestComparison_DetectsDivergence(t *testing.T) {
	cmp := &Comparison{Outcomes: []Outcome{
		{Variant: counter.Delegation, Results: []Result{{Value: 1}}, Values: []int{1}, TotalAdded: 1},
		{Variant: counter.Inheritance, Results: []Result{{Value: 1}}, Values: []int{1}, TotalAdded: 0},
	}}
	err := cmp.check()
	require.Error(t, err)

	var de *DivergenceError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, -1, de.Step)
	assert.Contains(t, err.Error(), "total_added")

	cmp.Outcomes[1].Results[0].Changed = true
	err = cmp.check()
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 0, de.Step)
	assert.Contains(t, err.Error(), "step 0")
}
