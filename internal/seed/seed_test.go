package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovies_LoadsCatalog(t *testing.T) {
	movies, err := Movies()

	require.NoError(t, err)
	require.NotEmpty(t, movies)
	for _, m := range movies {
		assert.NotEmpty(t, m.Name)
		assert.NotZero(t, m.Year)
		assert.Empty(t, m.ID)
		assert.Empty(t, m.Reviews)
	}
}

func TestMovies_ReturnsIndependentCopies(t *testing.T) {
	a, err := Movies()
	require.NoError(t, err)
	a[0].Name = "alterado"

	b, err := Movies()
	require.NoError(t, err)

	assert.NotEqual(t, "alterado", b[0].Name)
}
