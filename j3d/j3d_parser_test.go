package j3d

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	m, err := Parse(defaultModel())
	if err != nil {
		t.Fatal(err)
	}

	if m.Header.Magic != "J3D2bmd3" || m.Header.ChunkCount != 8 {
		t.Errorf("unexpected header: %+v", m.Header)
	}
	if len(m.Chunks) != 8 || m.Chunks[7].Tag != "TEX1" {
		t.Errorf("unexpected chunk directory: %+v", m.Chunks)
	}

	if len(m.Joints) != 2 {
		t.Fatalf("joints: %d", len(m.Joints))
	}
	if m.Joints[0].Name != "root" || m.Joints[1].Name != "arm" {
		t.Errorf("joint names: %q %q", m.Joints[0].Name, m.Joints[1].Name)
	}
	if m.Joints[0].Parent != -1 || m.Joints[1].Parent != 0 {
		t.Errorf("joint parents: %d %d", m.Joints[0].Parent, m.Joints[1].Parent)
	}
	if r := m.Roots(); len(r) != 1 || r[0] != 0 {
		t.Errorf("roots: %v", r)
	}
	q := m.Joints[1].Rotation
	if math.Abs(float64(q.Z)-math.Sqrt2/2) > 1e-5 || math.Abs(float64(q.W)-math.Sqrt2/2) > 1e-5 {
		t.Errorf("rotation: %+v", q)
	}

	if len(m.Envelopes) != 1 || len(m.Envelopes[0].Weights) != 2 || m.Envelopes[0].Weights[1] != (JointWeight{1, 0.75}) {
		t.Errorf("envelopes: %+v", m.Envelopes)
	}
	if len(m.InverseBinds) != 2 || m.InverseBinds[1][13] != -2 {
		t.Errorf("inverse binds: %v", m.InverseBinds)
	}
	if m.MatrixDefs[0] != (MatrixDef{MatrixJoint, 1}) || m.MatrixDefs[1] != (MatrixDef{MatrixEnvelope, 0}) {
		t.Errorf("matrix defs: %+v", m.MatrixDefs)
	}

	if len(m.Shapes) != 1 {
		t.Fatalf("shapes: %d", len(m.Shapes))
	}
	s := m.Shapes[0]
	if s.MaterialIndex != 0 {
		t.Errorf("material index: %d", s.MaterialIndex)
	}
	if s.Layout.Stride != 16 {
		t.Errorf("stride: %d", s.Layout.Stride)
	}
	g := s.MtxGroups[0]
	if g.VertexCount != 3 || len(g.VertexData) != 48 {
		t.Fatalf("vertices: %d (%d bytes)", g.VertexCount, len(g.VertexData))
	}
	if len(g.Indices) != 3 || g.Indices[0] != 0 || g.Indices[1] != 2 || g.Indices[2] != 1 {
		t.Errorf("indices: %v", g.Indices)
	}
	if len(g.MatrixTable) != 1 || g.MatrixTable[0] != 1 {
		t.Errorf("matrix table: %v", g.MatrixTable)
	}
	pos := s.Layout.Attribute(AttrPosition)
	if v := pos.Floats(g.VertexData[16:]); v[0] != 1 || v[1] != 0 || v[2] != 0 {
		t.Errorf("vertex 1 position: %v", v)
	}
	uv := s.Layout.Attribute(AttrTex0)
	if v := uv.Floats(g.VertexData[32:]); v[0] != 0 || v[1] != 2 {
		t.Errorf("vertex 2 uv: %v", v)
	}

	if len(m.Materials) != 1 {
		t.Fatalf("materials: %d", len(m.Materials))
	}
	mat := m.Materials[0]
	if mat.Name != "mat0" || mat.CullMode != CullBack || mat.Color != [4]uint8{10, 20, 30, 255} {
		t.Errorf("material: %+v", mat)
	}
	if mat.TextureSlots[0] != 0 || mat.TextureSlots[1] != -1 {
		t.Errorf("texture slots: %v", mat.TextureSlots)
	}

	if len(m.Textures) != 1 {
		t.Fatalf("textures: %d", len(m.Textures))
	}
	tex := m.Textures[0]
	if tex.Name != "tex0" || tex.Width != 8 || tex.Height != 4 || len(tex.Data) != 32 || tex.WrapS != WrapRepeat {
		t.Errorf("texture: %+v", tex)
	}
}

func TestParseOptionalChunks(t *testing.T) {
	data := buildModel("J3D2bdl4",
		buildINF1(defaultHierarchy), buildVTX1(), buildEVP1(), buildDRW1(),
		buildJNT1(), buildSHP1())
	m, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if m.Materials != nil || m.Textures != nil {
		t.Errorf("optional chunks should be empty")
	}
}

func TestParseErrors(t *testing.T) {
	inf := buildINF1(defaultHierarchy)
	vtx, evp, drw, jnt, shp := buildVTX1(), buildEVP1(), buildDRW1(), buildJNT1(), buildSHP1()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte("J3D2"), ErrInvalidMagic},
		{"bad magic", buildModel("J3D1bmd1", inf, vtx, evp, drw, jnt, shp), ErrInvalidMagic},
		{"missing EVP1", buildModel("J3D2bmd3", inf, vtx, drw, jnt, shp), ErrMissingChunk},
		{"out of order", buildModel("J3D2bmd3", inf, evp, vtx, drw, jnt, shp), ErrMissingChunk},
		{"shape before material", buildModel("J3D2bmd3",
			buildINF1([]HierarchyNode{node(NodeJoint, 0), node(NodeOpen, 0), node(NodeShape, 0), node(NodeClose, 0), node(NodeEnd, 0)}),
			vtx, evp, drw, jnt, shp), ErrUnresolvedMaterial},
		{"shape never assigned", buildModel("J3D2bmd3",
			buildINF1([]HierarchyNode{node(NodeJoint, 0), node(NodeMaterial, 0), node(NodeEnd, 0)}),
			vtx, evp, drw, jnt, shp), ErrUnresolvedMaterial},
		{"shape assigned twice", buildModel("J3D2bmd3",
			buildINF1([]HierarchyNode{node(NodeMaterial, 0), node(NodeShape, 0), node(NodeShape, 0), node(NodeEnd, 0)}),
			vtx, evp, drw, jnt, shp), ErrUnresolvedMaterial},
		{"joint cycle", buildModel("J3D2bmd3",
			buildINF1([]HierarchyNode{
				node(NodeJoint, 0), node(NodeOpen, 0), node(NodeJoint, 1), node(NodeOpen, 0), node(NodeJoint, 0),
				node(NodeMaterial, 0), node(NodeShape, 0), node(NodeClose, 0), node(NodeClose, 0), node(NodeEnd, 0)}),
			vtx, evp, drw, jnt, shp), ErrJointHierarchy},
		{"joint is its own child", buildModel("J3D2bmd3",
			buildINF1([]HierarchyNode{
				node(NodeJoint, 0), node(NodeOpen, 0), node(NodeJoint, 0),
				node(NodeMaterial, 0), node(NodeShape, 0), node(NodeClose, 0), node(NodeEnd, 0)}),
			vtx, evp, drw, jnt, shp), ErrJointHierarchy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if !IsMalformed(err) {
				t.Errorf("%v should be malformed", err)
			}
		})
	}
}

func TestParseTruncatedChunk(t *testing.T) {
	data := defaultModel()
	_, err := Parse(data[:len(data)-40])
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("got %v", err)
	}
}

func TestAppendTriangles(t *testing.T) {
	tests := []struct {
		name string
		prim uint8
		n    int
		want []uint16
	}{
		{"triangles", primTriangles, 6, []uint16{10, 12, 11, 13, 15, 14}},
		{"quad", primQuads, 4, []uint16{10, 12, 11, 10, 13, 12}},
		{"strip", primTriangleStrip, 5, []uint16{10, 12, 11, 12, 13, 11, 12, 14, 13}},
		{"fan", primTriangleFan, 4, []uint16{10, 12, 11, 10, 13, 12}},
		{"short strip", primTriangleStrip, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := appendTriangles(nil, tt.prim, 10, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
