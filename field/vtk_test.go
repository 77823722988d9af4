package field

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const windFixture = `# vtk DataFile Version 3.0
wind sample
ASCII
DATASET STRUCTURED_POINTS
DIMENSIONS 2 2 1
SPACING 2 2 1
ORIGIN 100 200 300
POINT_DATA 4
SCALARS pressure float 1
LOOKUP_TABLE default
0.1 0.2 0.3 0.4
VECTORS wind_velocity float
1 0 0
0 1 0
0 0 1
1 1 1
`

func writeFixture(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wind.vtk")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoadStructuredPoints(t *testing.T) {
	g, err := LoadStructuredPoints(writeFixture(t, windFixture))
	require.NoError(t, err)

	assert.Equal(t, [3]int{2, 2, 1}, g.Dims)
	assert.Equal(t, vec3d.T{2, 2, 1}, g.Spacing)
	assert.Equal(t, vec3d.T{1, 0, 0}, g.Vectors[0])
	assert.Equal(t, vec3d.T{1, 1, 1}, g.Vectors[3])
	assert.Len(t, g.Speeds, 4)

	// recentering ignores the stored origin and balances the bounds
	b := g.Bounds()
	assert.Equal(t, vec3d.T{-1, -1, 0}, b.Min)
	assert.Equal(t, vec3d.T{1, 1, 0}, b.Max)
}

func TestLoadStructuredPointsMissingArray(t *testing.T) {
	text := `# vtk DataFile Version 3.0
wind sample
ASCII
DATASET STRUCTURED_POINTS
DIMENSIONS 1 1 1
SPACING 1 1 1
ORIGIN 0 0 0
POINT_DATA 1
VECTORS velocity float
1 0 0
`
	_, err := LoadStructuredPoints(writeFixture(t, text))
	assert.True(t, errors.Is(err, ErrLoadFailure))
	assert.Contains(t, err.Error(), WindVelocityArray)
}

func TestLoadStructuredPointsMissingFile(t *testing.T) {
	_, err := LoadStructuredPoints(filepath.Join(t.TempDir(), "absent.vtk"))
	assert.True(t, errors.Is(err, ErrLoadFailure))
}

func TestLoadStructuredPointsCountMismatch(t *testing.T) {
	text := `# vtk DataFile Version 3.0
wind sample
ASCII
DATASET STRUCTURED_POINTS
DIMENSIONS 2 1 1
SPACING 1 1 1
ORIGIN 0 0 0
POINT_DATA 1
VECTORS wind_velocity float
1 0 0
`
	_, err := LoadStructuredPoints(writeFixture(t, text))
	assert.True(t, errors.Is(err, ErrLoadFailure))
}
