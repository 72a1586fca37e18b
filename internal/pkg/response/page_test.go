package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, DefaultPageSize},
		{3, 10, 3, 10},
		{-1, 1000, 1, MaxPageSize},
	}
	for _, tt := range tests {
		p, s := NormalizePage(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, p)
		assert.Equal(t, tt.wantSize, s)
	}
}

func TestNewPageResponse_EmptyItems(t *testing.T) {
	resp := NewPageResponse[string](nil, 1, 20, 0)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}
