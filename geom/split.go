package geom

import (
	vec3 "github.com/flywave/go3d/vec3"
)

// Split partitions the mesh into topologically connected face sets.
// Vertices are welded by exact position first, so seams duplicated by a
// loader still join one component. Components come out ordered by the
// first face that touches them; callers must not rely on that order
// beyond a single import.
func Split(m *TriangleMesh) []*TriangleMesh {
	if len(m.Faces) == 0 {
		return nil
	}

	weld := make(map[vec3.T]int, len(m.Vertices))
	wid := make([]int, len(m.Vertices))
	next := 0
	for i, v := range m.Vertices {
		if id, ok := weld[v]; ok {
			wid[i] = id
			continue
		}
		weld[v] = next
		wid[i] = next
		next++
	}

	dsu := newUnionFind(next)
	for _, f := range m.Faces {
		dsu.union(wid[f[0]], wid[f[1]])
		dsu.union(wid[f[1]], wid[f[2]])
	}

	hasNormals := len(m.Normals) == len(m.Vertices)
	byRoot := make(map[int]int)
	var parts []*TriangleMesh
	var remaps []map[uint32]uint32
	for _, f := range m.Faces {
		root := dsu.find(wid[f[0]])
		pi, ok := byRoot[root]
		if !ok {
			pi = len(parts)
			byRoot[root] = pi
			parts = append(parts, &TriangleMesh{})
			remaps = append(remaps, make(map[uint32]uint32))
		}
		part := parts[pi]
		remap := remaps[pi]
		var nf [3]uint32
		for c, vi := range f {
			ni, ok := remap[vi]
			if !ok {
				ni = uint32(len(part.Vertices))
				remap[vi] = ni
				part.Vertices = append(part.Vertices, m.Vertices[vi])
				if hasNormals {
					part.Normals = append(part.Normals, m.Normals[vi])
				}
			}
			nf[c] = ni
		}
		part.Faces = append(part.Faces, nf)
	}
	return parts
}

type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
		u.size[i] = 1
	}
	return u
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
}
