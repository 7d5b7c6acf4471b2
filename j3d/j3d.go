// Package j3d reads GameCube J3D model containers (.bmd and .bdl).
package j3d

import "github.com/binzume/j3dconv/geom"

// Accepted container identifiers.
var Magics = map[string]bool{
	"J3D2bmd2": true,
	"J3D2bmd3": true,
	"J3D2bdl4": true,
}

type Header struct {
	Magic      string
	FileSize   uint32
	ChunkCount uint32
	SubVersion string
}

// ChunkRange is the byte range of one chunk including its 8 byte header.
type ChunkRange struct {
	Tag    string
	Offset int
	Size   int
}

type Model struct {
	Header Header
	Chunks []ChunkRange

	Info          Info
	Hierarchy     []HierarchyNode
	VertexFormats []VertexFormat
	VertexArrays  map[GXAttr][]byte
	Envelopes     []Envelope
	InverseBinds  []*geom.Matrix4
	MatrixDefs    []MatrixDef
	Joints        []*Joint
	Shapes        []*Shape
	Materials     []*Material
	Textures      []*Texture
}

type Info struct {
	LoadFlags   uint16
	PacketCount uint32
	VertexCount uint32
}

type NodeType uint16

const (
	NodeEnd      NodeType = 0x00
	NodeOpen     NodeType = 0x01
	NodeClose    NodeType = 0x02
	NodeJoint    NodeType = 0x10
	NodeMaterial NodeType = 0x11
	NodeShape    NodeType = 0x12
)

type HierarchyNode struct {
	Type  NodeType
	Value uint16
}

type JointWeight struct {
	Joint  int
	Weight float32
}

type Envelope struct {
	Weights []JointWeight
}

type MatrixKind int

const (
	MatrixJoint MatrixKind = iota
	MatrixEnvelope
)

type MatrixDef struct {
	Kind  MatrixKind
	Index int
}

type Joint struct {
	Name      string
	Flags     uint16
	CalcFlags uint8

	Scale          geom.Vector3
	RotationAngles [3]int16
	Rotation       geom.Quaternion
	Translation    geom.Vector3

	Radius  float32
	BBoxMin geom.Vector3
	BBoxMax geom.Vector3

	Parent   int // -1 for roots
	Children []int
}

// LocalMatrix returns the joint transform relative to its parent.
func (j *Joint) LocalMatrix() *geom.Matrix4 {
	return geom.NewTRSMatrix4(&j.Translation, &j.Rotation, &j.Scale)
}

type IndexType uint32

const (
	IndexNone   IndexType = 0
	IndexDirect IndexType = 1
	Index8      IndexType = 2
	Index16     IndexType = 3
)

type VertexDescriptor struct {
	Attr  GXAttr
	Index IndexType
}

type Shape struct {
	MatrixType    uint8
	Descriptors   []VertexDescriptor
	Layout        *VertexLayout
	MtxGroups     []*MtxGroup
	Radius        float32
	BBoxMin       geom.Vector3
	BBoxMax       geom.Vector3
	MaterialIndex int // -1 until the hierarchy pass assigns it
}

// MtxGroup is a run of vertices sharing one matrix table.
// VertexData holds VertexCount records of Layout.Stride bytes in their
// on-disk encoding. Indices is a triangle list local to the group.
type MtxGroup struct {
	UseMatrix   uint16
	MatrixTable []uint16
	VertexData  []byte
	VertexCount int
	Indices     []uint16
}

type CullMode uint32

const (
	CullNone CullMode = iota
	CullFront
	CullBack
	CullAll
)

type Material struct {
	Name         string
	CullMode     CullMode
	Color        [4]uint8
	TextureSlots [8]int // TEX1 indices, -1 when unused
}

type Texture struct {
	Name          string
	Format        uint8
	AlphaSetting  uint8
	Width         int
	Height        int
	WrapS         uint8
	WrapT         uint8
	PaletteFormat uint8
	PaletteCount  int
	Palette       []byte
	MinFilter     uint8
	MagFilter     uint8
	MipCount      int
	Data          []byte
}

// Roots returns the indices of joints without a parent.
func (m *Model) Roots() []int {
	var roots []int
	for i, j := range m.Joints {
		if j.Parent < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// WorldMatrices returns the bind pose world matrix of every joint.
func (m *Model) WorldMatrices() []*geom.Matrix4 {
	world := make([]*geom.Matrix4, len(m.Joints))
	var visit func(i int) *geom.Matrix4
	visit = func(i int) *geom.Matrix4 {
		if world[i] != nil {
			return world[i]
		}
		j := m.Joints[i]
		local := j.LocalMatrix()
		if j.Parent >= 0 && j.Parent != i {
			world[i] = visit(j.Parent).Mul(local)
		} else {
			world[i] = local
		}
		return world[i]
	}
	for i := range m.Joints {
		visit(i)
	}
	return world
}
