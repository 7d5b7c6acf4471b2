package converter

import (
	"sort"

	"github.com/binzume/j3dconv/j3d"
)

// SkinBinding is the joint influence shared by every vertex of a matrix group.
type SkinBinding struct {
	Joints  [4]uint16
	Weights [4]float32

	// Rigid bindings reference one joint directly. Their vertices are
	// stored relative to that joint.
	Rigid bool
	Joint int
}

func rigidBinding(joint int) SkinBinding {
	return SkinBinding{
		Joints:  [4]uint16{uint16(joint)},
		Weights: [4]float32{1},
		Rigid:   true,
		Joint:   joint,
	}
}

// ResolveSkin resolves the binding of group g through matrix table slot.
// Unresolvable entries fall back to joint 0.
func ResolveSkin(g *j3d.MtxGroup, slot int, m *j3d.Model) SkinBinding {
	if slot < 0 || slot >= len(g.MatrixTable) {
		slot = 0
	}
	if len(g.MatrixTable) == 0 {
		return rigidBinding(0)
	}
	idx := int(g.MatrixTable[slot])
	if idx == 0xFFFF || idx >= len(m.MatrixDefs) {
		return rigidBinding(0)
	}

	def := m.MatrixDefs[idx]
	if def.Kind == j3d.MatrixJoint {
		if def.Index >= len(m.Joints) {
			return rigidBinding(0)
		}
		return rigidBinding(def.Index)
	}
	if def.Index >= len(m.Envelopes) {
		return rigidBinding(0)
	}

	var weights []j3d.JointWeight
	for _, w := range m.Envelopes[def.Index].Weights {
		if w.Joint < len(m.Joints) {
			weights = append(weights, w)
		}
	}
	return EnvelopeBinding(weights)
}

// EnvelopeBinding keeps the four heaviest influences, renormalized to sum 1.
// A degenerate envelope binds fully to joint 0.
func EnvelopeBinding(weights []j3d.JointWeight) SkinBinding {
	sorted := append([]j3d.JointWeight(nil), weights...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})
	if len(sorted) > 4 {
		sorted = sorted[:4]
	}

	var b SkinBinding
	var sum float32
	for i, w := range sorted {
		b.Joints[i] = uint16(w.Joint)
		b.Weights[i] = w.Weight
		sum += w.Weight
	}
	if sum <= 0 {
		return SkinBinding{Weights: [4]float32{1}}
	}
	for i := range b.Weights {
		b.Weights[i] /= sum
	}
	return b
}
