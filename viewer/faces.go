package viewer

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// face is one mesh triangle in camera space, ready to paint.
type face struct {
	points [3]mgl64.Vec3
	normal mgl64.Vec3
	depth  float64
}

type faceStore struct {
	faces []face
}

func newFaceStore(capacity int) *faceStore {
	return &faceStore{faces: make([]face, 0, capacity)}
}

func (fs *faceStore) reset() {
	fs.faces = fs.faces[:0]
}

func (fs *faceStore) addFace(pts [3]mgl64.Vec3, normal mgl64.Vec3) {
	mid := pts[0].Add(pts[1]).Add(pts[2]).Mul(1.0 / 3.0)
	fs.faces = append(fs.faces, face{points: pts, normal: normal, depth: mid.Len()})
}

func (fs *faceStore) faceCount() int {
	return len(fs.faces)
}

// sortByDistance puts the faces farthest from the eye first.
func (fs *faceStore) sortByDistance() {
	sort.SliceStable(fs.faces, func(i, j int) bool {
		return fs.faces[i].depth > fs.faces[j].depth
	})
}
