package converter

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/binzume/j3dconv/geom"
	"github.com/binzume/j3dconv/j3d"
)

var noTextures = [8]int{-1, -1, -1, -1, -1, -1, -1, -1}

var (
	posFormat = j3d.VertexFormat{Attr: j3d.AttrPosition, ComponentCount: 1, ComponentType: j3d.CompF32}
	nrmFormat = j3d.VertexFormat{Attr: j3d.AttrNormal, ComponentCount: 0, ComponentType: j3d.CompF32}
	uvFormat  = j3d.VertexFormat{Attr: j3d.AttrTex0, ComponentCount: 1, ComponentType: j3d.CompF32}
	colFormat = j3d.VertexFormat{Attr: j3d.AttrColor0, ComponentCount: 1, ComponentType: j3d.ColorRGBA8}
)

// record encodes big-endian vertex data.
func record(vals ...interface{}) []byte {
	var buf bytes.Buffer
	for _, v := range vals {
		if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
			panic(err)
		}
	}
	return buf.Bytes()
}

func newJoint(name string, parent int, x, y, z float32) *j3d.Joint {
	return &j3d.Joint{
		Name:        name,
		Scale:       *geom.NewVector3(1, 1, 1),
		Rotation:    *geom.NewQuaternion(0, 0, 0, 1),
		Translation: *geom.NewVector3(x, y, z),
		Parent:      parent,
	}
}

func newShape(t *testing.T, attrs []j3d.GXAttr, formats []j3d.VertexFormat, groups ...*j3d.MtxGroup) *j3d.Shape {
	t.Helper()
	var descs []j3d.VertexDescriptor
	for _, a := range attrs {
		descs = append(descs, j3d.VertexDescriptor{Attr: a, Index: j3d.Index16})
	}
	l, err := j3d.ResolveVertexLayout(descs, formats)
	if err != nil {
		t.Fatal(err)
	}
	return &j3d.Shape{Descriptors: descs, Layout: l, MtxGroups: groups}
}

// triangleModel has one root joint and one position-only triangle.
func triangleModel(t *testing.T) *j3d.Model {
	group := &j3d.MtxGroup{
		MatrixTable: []uint16{0},
		VertexData:  record(float32(0), float32(0), float32(0), float32(1), float32(0), float32(0), float32(0), float32(1), float32(0)),
		VertexCount: 3,
		Indices:     []uint16{0, 1, 2},
	}
	return &j3d.Model{
		Joints:     []*j3d.Joint{newJoint("root", -1, 0, 0, 0)},
		MatrixDefs: []j3d.MatrixDef{{Kind: j3d.MatrixJoint, Index: 0}},
		Shapes:     []*j3d.Shape{newShape(t, []j3d.GXAttr{j3d.AttrPosition}, []j3d.VertexFormat{posFormat}, group)},
		Materials:  []*j3d.Material{{Name: "mat0", Color: [4]uint8{255, 255, 255, 255}, TextureSlots: noTextures}},
	}
}
