package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

func TestPaginator_Paginate(t *testing.T) {
	paginator := NewPaginator(20, 50)

	tests := []struct {
		name  string
		index int
		size  int
		want  domain.Page
	}{
		{name: "valores padrão", index: 0, size: 0, want: domain.Page{Index: 0, Size: 20}},
		{name: "índice negativo", index: -3, size: 10, want: domain.Page{Index: 0, Size: 10}},
		{name: "tamanho acima do máximo", index: 2, size: 500, want: domain.Page{Index: 2, Size: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginator.Paginate(tt.index, tt.size))
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Slice(items, domain.Page{Index: 0, Size: 2}))
	assert.Equal(t, []int{5}, Slice(items, domain.Page{Index: 2, Size: 2}))
	assert.Empty(t, Slice(items, domain.Page{Index: 3, Size: 2}))
}

func TestNewPageResult(t *testing.T) {
	result := domain.NewPageResult([]string{"a", "b"}, domain.Page{Index: 1, Size: 2}, 5)

	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 5, result.TotalItems)
	assert.Equal(t, 1, result.Page)

	empty := domain.NewPageResult[string](nil, domain.Page{Index: 0, Size: 20}, 0)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
}
