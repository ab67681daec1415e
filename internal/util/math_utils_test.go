package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float32
		want    float64
		wantErr bool
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 1}, b: []float32{-1, -1}, want: -1},
		{name: "zero magnitude", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
		{name: "empty", a: []float32{}, b: []float32{1}, wantErr: true},
		{name: "dimension mismatch", a: []float32{1, 2}, b: []float32{1, 2, 3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestMaxCosineSimilarity(t *testing.T) {
	query := []float32{1, 0}

	best, err := MaxCosineSimilarity(query, [][]float32{{0, 1}, {1, 1}, {-1, 0}})
	require.NoError(t, err)
	assert.InDelta(t, 0.70710678, best, 1e-6)

	best, err = MaxCosineSimilarity(query, nil)
	require.NoError(t, err)
	assert.Equal(t, -1.0, best)

	_, err = MaxCosineSimilarity(query, [][]float32{{1, 0, 0}})
	assert.ErrorContains(t, err, "candidate 0")
}
