package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Paged(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults kept", 0, 0, 1, 20, 0},
		{"explicit page", 3, 10, 3, 10, 20},
		{"size capped", 2, 500, 2, MaxPageSize, MaxPageSize},
		{"negative ignored", -4, -1, 1, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilter().Paged(tt.page, tt.size, "  tee ")
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantSize, f.PageSize)
			assert.Equal(t, tt.wantOffset, f.Offset())
			assert.Equal(t, "tee", f.Search)
		})
	}
}
