package converter

import (
	"github.com/binzume/j3dconv/geom"
	"github.com/binzume/j3dconv/j3d"
	"github.com/pkg/errors"
)

var ErrEmptyShape = errors.New("converter: shape has no geometry")

// ShapeVertices are the flat per-vertex arrays of one shape. Attributes
// that no matrix group provides are nil.
type ShapeVertices struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Colors    [][4]uint8
	Joints    [][4]uint16
	Weights   [][4]float32
	Indices   []uint32
}

// fitCount returns how many vertices of an attribute fit in a buffer.
func fitCount(length, offset, size, stride, declared int) int {
	if stride <= 0 || length < offset+size {
		return 0
	}
	n := (length-offset-size)/stride + 1
	if n > declared {
		n = declared
	}
	return n
}

// ExtractShape decodes every matrix group of s. world holds the bind pose
// joint matrices used to move rigidly bound vertices into model space.
func ExtractShape(s *j3d.Shape, m *j3d.Model, world []*geom.Matrix4) (*ShapeVertices, error) {
	l := s.Layout
	if l == nil {
		return nil, errors.Wrap(ErrEmptyShape, "no vertex layout")
	}
	posAttr := l.Attribute(j3d.AttrPosition)
	if posAttr == nil {
		return nil, errors.Wrap(ErrEmptyShape, "no position attribute")
	}
	nrmAttr := l.Attribute(j3d.AttrNormal)
	uvAttr := l.Attribute(j3d.AttrTex0)
	colAttr := l.Attribute(j3d.AttrColor0)
	mtxAttr := l.Attribute(j3d.AttrPositionMatrixIndex)

	out := &ShapeVertices{}
	var hasNormal, hasUV, hasColor bool
	base := 0
	for _, g := range s.MtxGroups {
		fit := func(a *j3d.AttributeLayout) int {
			if a == nil {
				return 0
			}
			return fitCount(len(g.VertexData), a.Offset, a.Size, l.Stride, g.VertexCount)
		}
		n := fit(posAttr)
		if n == 0 {
			continue
		}
		nn, nu, nc := fit(nrmAttr), fit(uvAttr), fit(colAttr)
		hasNormal = hasNormal || nn > 0
		hasUV = hasUV || nu > 0
		hasColor = hasColor || nc > 0

		slot := 0
		if fit(mtxAttr) > 0 {
			slot = int(mtxAttr.Uint8(g.VertexData)) / 3
		}
		bind := ResolveSkin(g, slot, m)
		var xf *geom.Matrix4
		if bind.Rigid && bind.Joint < len(world) {
			xf = world[bind.Joint]
		}

		for i := 0; i < n; i++ {
			rec := g.VertexData[i*l.Stride:]

			p := posAttr.Floats(rec)
			pos := geom.NewVector3(p[0], p[1], 0)
			if len(p) > 2 {
				pos.Z = p[2]
			}
			if xf != nil {
				pos = xf.ApplyTo(pos)
			}
			out.Positions = append(out.Positions, pos.ToArray())

			var nrm [3]float32
			if i < nn {
				v := nrmAttr.Floats(rec)
				nv := geom.NewVector3(v[0], v[1], v[2])
				if xf != nil {
					nv = xf.ApplyToNormal(nv)
				}
				nrm = nv.ToArray()
			}
			out.Normals = append(out.Normals, nrm)

			var uv [2]float32
			if i < nu {
				copy(uv[:], uvAttr.Floats(rec))
			}
			out.TexCoords = append(out.TexCoords, uv)

			col := [4]uint8{0xff, 0xff, 0xff, 0xff}
			if i < nc {
				col = colAttr.RGBA(rec)
			}
			out.Colors = append(out.Colors, col)

			out.Joints = append(out.Joints, bind.Joints)
			out.Weights = append(out.Weights, bind.Weights)
		}

		for k := 0; k+2 < len(g.Indices); k += 3 {
			a, b, c := int(g.Indices[k]), int(g.Indices[k+1]), int(g.Indices[k+2])
			if a >= n || b >= n || c >= n {
				continue
			}
			out.Indices = append(out.Indices, uint32(base+a), uint32(base+b), uint32(base+c))
		}
		base += n
	}

	if len(out.Positions) == 0 || len(out.Indices) == 0 {
		return nil, errors.Wrapf(ErrEmptyShape, "%d positions, %d indices", len(out.Positions), len(out.Indices))
	}

	for i, v := range out.Normals {
		out.Normals[i] = geom.NewVector3FromArray(v).Normalize().ToArray()
	}
	if !hasNormal {
		out.Normals = nil
	}
	if !hasUV {
		out.TexCoords = nil
	}
	if !hasColor {
		out.Colors = nil
	}
	return out, nil
}
