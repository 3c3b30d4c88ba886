package inventory

import (
	"fmt"
	"testing"

	"github.com/opsre/cloudinv/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeInstances(count int) []*model.Instance {
	items := make([]*model.Instance, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, &model.Instance{
			ID:         fmt.Sprintf("i-%03d", i),
			PublicIP:   "N/A",
			PrivateIPs: []string{},
		})
	}
	return items
}

func TestPaginate_FirstPage(t *testing.T) {
	items := makeInstances(7)

	page := Paginate(items, 1, 5)
	require.Len(t, page, 5)
	assert.Equal(t, "i-000", page[0].ID)
	assert.Equal(t, "i-004", page[4].ID)
}

func TestPaginate_TailShorterThanPageSize(t *testing.T) {
	items := makeInstances(7)

	page := Paginate(items, 2, 5)
	require.Len(t, page, 2)
	assert.Equal(t, "i-005", page[0].ID)
	assert.Equal(t, "i-006", page[1].ID)
}

func TestPaginate_OutOfRangePageIsEmpty(t *testing.T) {
	items := makeInstances(7)

	assert.Empty(t, Paginate(items, 3, 5))
	assert.Empty(t, Paginate(items, 100, 5))
}

func TestPaginate_PageBelowOneIsEmpty(t *testing.T) {
	items := makeInstances(7)

	assert.Empty(t, Paginate(items, 0, 5))
	assert.Empty(t, Paginate(items, -1, 5))
}

func TestPaginate_EmptyList(t *testing.T) {
	items := makeInstances(0)

	assert.Empty(t, Paginate(items, 1, 5))
}

func TestPaginate_ConsecutivePagesReconstructList(t *testing.T) {
	items := makeInstances(11)

	for _, pageSize := range []int{1, 2, 3, 5, 11, 20} {
		var rebuilt []*model.Instance
		for page := 1; ; page++ {
			chunk := Paginate(items, page, pageSize)
			if len(chunk) == 0 {
				break
			}
			rebuilt = append(rebuilt, chunk...)
		}

		require.Len(t, rebuilt, len(items), "page_size %d", pageSize)
		for i := range items {
			assert.Same(t, items[i], rebuilt[i], "page_size %d index %d", pageSize, i)
		}
	}
}
