package field

import (
	"os"
	"strconv"
	"strings"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/pkg/errors"
)

// WindVelocityArray is the point-data vector array a structured-points
// file must carry. Files without it do not load.
const WindVelocityArray = "wind_velocity"

// LoadStructuredPoints reads a legacy ASCII structured-points file and
// returns its grid with all point coordinates recentered to the field
// centroid. Any failure wraps ErrLoadFailure; there is no fallback.
func LoadStructuredPoints(path string) (*Grid, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrLoadFailure, "read %s: %v", path, err)
	}
	g, err := parseStructuredPoints(string(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	g.Recenter()
	g.refreshSpeeds()
	return g, nil
}

type wordCursor struct {
	words []string
	pos   int
}

func (c *wordCursor) next() (string, bool) {
	if c.pos >= len(c.words) {
		return "", false
	}
	w := c.words[c.pos]
	c.pos++
	return w, true
}

func (c *wordCursor) peek() (string, bool) {
	if c.pos >= len(c.words) {
		return "", false
	}
	return c.words[c.pos], true
}

func (c *wordCursor) ints(n int) ([]int, error) {
	out := make([]int, 0, n)
	for len(out) < n {
		w, ok := c.next()
		if !ok {
			return nil, errors.Wrapf(ErrLoadFailure, "want %d ints, got %d", n, len(out))
		}
		v, err := strconv.Atoi(w)
		if err != nil {
			return nil, errors.Wrapf(ErrLoadFailure, "bad int %q", w)
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *wordCursor) floats(n int) ([]float64, error) {
	out := make([]float64, 0, n)
	for len(out) < n {
		w, ok := c.next()
		if !ok {
			return nil, errors.Wrapf(ErrLoadFailure, "want %d floats, got %d", n, len(out))
		}
		v, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrLoadFailure, "bad float %q", w)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseStructuredPoints(text string) (*Grid, error) {
	lines := strings.SplitN(text, "\n", 3)
	if len(lines) < 3 || !strings.HasPrefix(lines[0], "# vtk DataFile") {
		return nil, errors.Wrap(ErrLoadFailure, "not a vtk data file")
	}
	// lines[1] is the free-form title; everything after it is word-oriented.
	cur := &wordCursor{words: strings.Fields(lines[2])}

	w, _ := cur.next()
	if w != "ASCII" {
		return nil, errors.Wrapf(ErrLoadFailure, "unsupported encoding %q", w)
	}
	if w, _ = cur.next(); w != "DATASET" {
		return nil, errors.Wrap(ErrLoadFailure, "missing DATASET")
	}
	if w, _ = cur.next(); w != "STRUCTURED_POINTS" {
		return nil, errors.Wrapf(ErrLoadFailure, "unsupported dataset %q", w)
	}

	g := &Grid{Spacing: vec3d.T{1, 1, 1}}
	pointData := -1
	vectors := map[string][]vec3d.T{}

	for {
		key, ok := cur.next()
		if !ok {
			break
		}
		switch key {
		case "DIMENSIONS":
			d, err := cur.ints(3)
			if err != nil {
				return nil, err
			}
			g.Dims = [3]int{d[0], d[1], d[2]}
		case "SPACING", "ASPECT_RATIO":
			s, err := cur.floats(3)
			if err != nil {
				return nil, err
			}
			g.Spacing = vec3d.T{s[0], s[1], s[2]}
		case "ORIGIN":
			o, err := cur.floats(3)
			if err != nil {
				return nil, err
			}
			g.Origin = vec3d.T{o[0], o[1], o[2]}
		case "POINT_DATA":
			n, err := cur.ints(1)
			if err != nil {
				return nil, err
			}
			pointData = n[0]
		case "SCALARS":
			if err := skipScalars(cur, pointData); err != nil {
				return nil, err
			}
		case "VECTORS":
			name, _ := cur.next()
			cur.next() // data type
			if pointData < 0 {
				return nil, errors.Wrap(ErrLoadFailure, "VECTORS before POINT_DATA")
			}
			vals, err := cur.floats(pointData * 3)
			if err != nil {
				return nil, err
			}
			vs := make([]vec3d.T, pointData)
			for i := range vs {
				vs[i] = vec3d.T{vals[i*3], vals[i*3+1], vals[i*3+2]}
			}
			vectors[name] = vs
		case "CELL_DATA", "FIELD":
			// trailing attributes the field loader has no use for
			cur.pos = len(cur.words)
		default:
			return nil, errors.Wrapf(ErrLoadFailure, "unexpected keyword %q", key)
		}
	}

	if g.Dims[0] <= 0 || g.Dims[1] <= 0 || g.Dims[2] <= 0 {
		return nil, errors.Wrap(ErrLoadFailure, "missing DIMENSIONS")
	}
	if pointData != g.Len() {
		return nil, errors.Wrapf(ErrLoadFailure, "POINT_DATA %d does not match %dx%dx%d grid",
			pointData, g.Dims[0], g.Dims[1], g.Dims[2])
	}
	wind, ok := vectors[WindVelocityArray]
	if !ok {
		return nil, errors.Wrapf(ErrLoadFailure, "no %q vector array", WindVelocityArray)
	}
	g.Vectors = wind
	return g, nil
}

// skipScalars consumes one SCALARS attribute, values included. The scalar
// arrays ride along in wind files but nothing downstream reads them.
func skipScalars(cur *wordCursor, pointData int) error {
	if pointData < 0 {
		return errors.Wrap(ErrLoadFailure, "SCALARS before POINT_DATA")
	}
	if _, ok := cur.next(); !ok { // name
		return errors.Wrap(ErrLoadFailure, "truncated SCALARS")
	}
	cur.next() // data type
	comps := 1
	if w, ok := cur.peek(); ok {
		if n, err := strconv.Atoi(w); err == nil && n >= 1 && n <= 4 {
			comps = n
			cur.next()
		}
	}
	if w, _ := cur.next(); w != "LOOKUP_TABLE" {
		return errors.Wrapf(ErrLoadFailure, "SCALARS without LOOKUP_TABLE, got %q", w)
	}
	cur.next() // table name
	_, err := cur.floats(pointData * comps)
	return err
}
