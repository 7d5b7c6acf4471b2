package gltfutil

import (
	"math"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/binary"
)

// Builder accumulates a glTF document and the single binary buffer its
// buffer views point into. All Add methods return stable indices.
// The first encoding failure is latched and reported by Err and EncodeGLB.
type Builder struct {
	doc   *gltf.Document
	arena []byte
	err   error
}

func NewBuilder(generator string) *Builder {
	return &Builder{doc: &gltf.Document{
		Asset: gltf.Asset{Version: "2.0", Generator: generator},
	}}
}

// AddBufferData appends data to the arena at a 4 byte aligned offset and
// returns the new buffer view. The view length excludes the padding.
func (b *Builder) AddBufferData(data []byte, stride uint32, target gltf.Target) uint32 {
	view := &gltf.BufferView{
		ByteOffset: uint32(len(b.arena)),
		ByteLength: uint32(len(data)),
		ByteStride: stride,
		Target:     target,
	}
	b.arena = append(b.arena, data...)
	for len(b.arena)%4 != 0 {
		b.arena = append(b.arena, 0)
	}
	b.doc.BufferViews = append(b.doc.BufferViews, view)
	return uint32(len(b.doc.BufferViews) - 1)
}

func (b *Builder) AddAccessor(a *gltf.Accessor) uint32 {
	b.doc.Accessors = append(b.doc.Accessors, a)
	return uint32(len(b.doc.Accessors) - 1)
}

func (b *Builder) AddMesh(m *gltf.Mesh) uint32 {
	b.doc.Meshes = append(b.doc.Meshes, m)
	return uint32(len(b.doc.Meshes) - 1)
}

func (b *Builder) AddNode(n *gltf.Node) uint32 {
	b.doc.Nodes = append(b.doc.Nodes, n)
	return uint32(len(b.doc.Nodes) - 1)
}

func (b *Builder) AddMaterial(m *gltf.Material) uint32 {
	b.doc.Materials = append(b.doc.Materials, m)
	return uint32(len(b.doc.Materials) - 1)
}

func (b *Builder) AddSampler(s *gltf.Sampler) uint32 {
	b.doc.Samplers = append(b.doc.Samplers, s)
	return uint32(len(b.doc.Samplers) - 1)
}

func (b *Builder) AddTexture(t *gltf.Texture) uint32 {
	b.doc.Textures = append(b.doc.Textures, t)
	return uint32(len(b.doc.Textures) - 1)
}

func (b *Builder) AddSkin(s *gltf.Skin) uint32 {
	b.doc.Skins = append(b.doc.Skins, s)
	return uint32(len(b.doc.Skins) - 1)
}

func (b *Builder) AddScene(s *gltf.Scene) uint32 {
	b.doc.Scenes = append(b.doc.Scenes, s)
	if b.doc.Scene == nil {
		b.doc.Scene = gltf.Index(0)
	}
	return uint32(len(b.doc.Scenes) - 1)
}

// Node returns a previously added node for editing children.
func (b *Builder) Node(i uint32) *gltf.Node {
	return b.doc.Nodes[i]
}

func (b *Builder) NodeCount() int {
	return len(b.doc.Nodes)
}

// AddImage embeds encoded image bytes.
func (b *Builder) AddImage(name, mimeType string, data []byte) uint32 {
	view := b.AddBufferData(data, 0, gltf.TargetNone)
	b.doc.Images = append(b.doc.Images, &gltf.Image{Name: name, MimeType: mimeType, BufferView: gltf.Index(view)})
	return uint32(len(b.doc.Images) - 1)
}

func (b *Builder) addTyped(data interface{}, count int, elemSize int, target gltf.Target, acc *gltf.Accessor) uint32 {
	buf := make([]byte, count*elemSize)
	if err := binary.Write(buf, 0, data); err != nil && b.err == nil {
		b.err = errors.Wrapf(err, "encode accessor %d", len(b.doc.Accessors))
	}
	acc.BufferView = gltf.Index(b.AddBufferData(buf, 0, target))
	acc.Count = uint32(count)
	return b.AddAccessor(acc)
}

// AddPositions adds a VEC3 float accessor with min and max bounds.
func (b *Builder) AddPositions(v [][3]float32) uint32 {
	min := []float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max := []float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, p := range v {
		for i := range p {
			min[i] = float32(math.Min(float64(min[i]), float64(p[i])))
			max[i] = float32(math.Max(float64(max[i]), float64(p[i])))
		}
	}
	return b.addTyped(v, len(v), 12, gltf.TargetArrayBuffer, &gltf.Accessor{
		ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3, Min: min, Max: max,
	})
}

func (b *Builder) AddNormals(v [][3]float32) uint32 {
	return b.addTyped(v, len(v), 12, gltf.TargetArrayBuffer, &gltf.Accessor{
		ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3,
	})
}

func (b *Builder) AddTexCoords(v [][2]float32) uint32 {
	return b.addTyped(v, len(v), 8, gltf.TargetArrayBuffer, &gltf.Accessor{
		ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec2,
	})
}

// AddColors adds normalized RGBA8 colors.
func (b *Builder) AddColors(v [][4]uint8) uint32 {
	return b.addTyped(v, len(v), 4, gltf.TargetArrayBuffer, &gltf.Accessor{
		ComponentType: gltf.ComponentUbyte, Type: gltf.AccessorVec4, Normalized: true,
	})
}

func (b *Builder) AddJoints(v [][4]uint16) uint32 {
	return b.addTyped(v, len(v), 8, gltf.TargetArrayBuffer, &gltf.Accessor{
		ComponentType: gltf.ComponentUshort, Type: gltf.AccessorVec4,
	})
}

func (b *Builder) AddWeights(v [][4]float32) uint32 {
	return b.addTyped(v, len(v), 16, gltf.TargetArrayBuffer, &gltf.Accessor{
		ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec4,
	})
}

// AddIndices stores indices as unsigned short, or unsigned int when a
// value does not fit.
func (b *Builder) AddIndices(v []uint32) uint32 {
	wide := false
	for _, i := range v {
		if i > math.MaxUint16 {
			wide = true
			break
		}
	}
	if wide {
		return b.addTyped(v, len(v), 4, gltf.TargetElementArrayBuffer, &gltf.Accessor{
			ComponentType: gltf.ComponentUint, Type: gltf.AccessorScalar,
		})
	}
	short := make([]uint16, len(v))
	for i, x := range v {
		short[i] = uint16(x)
	}
	return b.addTyped(short, len(short), 2, gltf.TargetElementArrayBuffer, &gltf.Accessor{
		ComponentType: gltf.ComponentUshort, Type: gltf.AccessorScalar,
	})
}

// AddMatrices adds column-major MAT4 values, e.g. inverse bind matrices.
func (b *Builder) AddMatrices(v [][16]float32) uint32 {
	flat := make([]float32, 0, len(v)*16)
	for _, m := range v {
		flat = append(flat, m[:]...)
	}
	return b.addTyped(flat, len(v), 64, gltf.TargetNone, &gltf.Accessor{
		ComponentType: gltf.ComponentFloat, Type: gltf.AccessorMat4,
	})
}

// Err returns the first error met while encoding accessor data.
func (b *Builder) Err() error {
	return b.err
}

// Bin returns the arena. Its length is a multiple of 4.
func (b *Builder) Bin() []byte {
	return b.arena
}

// Document returns the accumulated document. A single buffer is declared
// only when the arena holds data.
func (b *Builder) Document() *gltf.Document {
	doc := *b.doc
	doc.Buffers = nil
	if len(b.arena) > 0 {
		doc.Buffers = []*gltf.Buffer{{ByteLength: uint32(len(b.arena)), Data: b.arena}}
	}
	return &doc
}
