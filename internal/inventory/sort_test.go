package inventory

import (
	"testing"

	"github.com/opsre/cloudinv/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortInstances_ByName(t *testing.T) {
	items := []*model.Instance{
		{Name: "charlie", ID: "i-3"},
		{Name: "alpha", ID: "i-1"},
		{Name: "bravo", ID: "i-2"},
	}

	SortInstances(items, "Name")

	assert.Equal(t, "alpha", items[0].Name)
	assert.Equal(t, "bravo", items[1].Name)
	assert.Equal(t, "charlie", items[2].Name)
}

func TestSortInstances_EmptyKeyKeepsSourceOrder(t *testing.T) {
	items := []*model.Instance{
		{Name: "charlie"},
		{Name: "alpha"},
		{Name: "bravo"},
	}

	SortInstances(items, "")

	assert.Equal(t, "charlie", items[0].Name)
	assert.Equal(t, "alpha", items[1].Name)
	assert.Equal(t, "bravo", items[2].Name)
}

func TestSortInstances_StableForTies(t *testing.T) {
	a := &model.Instance{Name: "same", ID: "i-1"}
	b := &model.Instance{Name: "same", ID: "i-2"}
	c := &model.Instance{Name: "same", ID: "i-3"}
	items := []*model.Instance{a, b, c}

	SortInstances(items, "Name")

	assert.Same(t, a, items[0])
	assert.Same(t, b, items[1])
	assert.Same(t, c, items[2])
}

func TestSortInstances_Deterministic(t *testing.T) {
	build := func() []*model.Instance {
		return []*model.Instance{
			{Name: "x", State: "stopped"},
			{Name: "y", State: "running"},
			{Name: "z", State: "running"},
		}
	}

	first := build()
	second := build()
	SortInstances(first, "State")
	SortInstances(second, "State")

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
	}
}

func TestSortInstances_ByPrivateIPs(t *testing.T) {
	items := []*model.Instance{
		{ID: "i-2", PrivateIPs: []string{"10.0.0.2"}},
		{ID: "i-1", PrivateIPs: []string{"10.0.0.1", "10.0.0.9"}},
		{ID: "i-3", PrivateIPs: []string{"10.0.0.1"}},
	}

	SortInstances(items, "PrivateIPs")

	// 列表按元素逐个对比, 前缀相同的短列表排在前
	assert.Equal(t, "i-3", items[0].ID)
	assert.Equal(t, "i-1", items[1].ID)
	assert.Equal(t, "i-2", items[2].ID)
}

func TestSortInstances_EveryAttributeHasComparator(t *testing.T) {
	for _, attr := range sortAttributes {
		_, ok := sortComparators[attr]
		assert.True(t, ok, "missing comparator for %s", attr)
	}
	assert.Len(t, sortComparators, len(sortAttributes))
}
