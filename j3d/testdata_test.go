package j3d

import (
	"bytes"
	"encoding/binary"
)

// blob is a growable big-endian buffer for synthetic containers.
type blob []byte

func (b *blob) at(off int, vals ...interface{}) {
	var buf bytes.Buffer
	for _, v := range vals {
		if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
			panic(err)
		}
	}
	if need := off + buf.Len(); need > len(*b) {
		*b = append(*b, make([]byte, need-len(*b))...)
	}
	copy((*b)[off:], buf.Bytes())
}

func makeChunk(tag string, b blob) []byte {
	for len(b) < 8 || len(b)%32 != 0 {
		b = append(b, 0)
	}
	copy(b[0:4], tag)
	binary.BigEndian.PutUint32(b[4:], uint32(len(b)))
	return b
}

func nameTable(b *blob, off int, names ...string) {
	b.at(off, uint16(len(names)), uint16(0xFFFF))
	strOff := 4 + len(names)*4
	for i, n := range names {
		b.at(off+4+i*4, uint16(0), uint16(strOff))
		b.at(off+strOff, []byte(n+"\x00"))
		strOff += len(n) + 1
	}
}

func node(t NodeType, v uint16) HierarchyNode {
	return HierarchyNode{Type: t, Value: v}
}

// defaultHierarchy: root joint, child joint, material 0, shape 0.
var defaultHierarchy = []HierarchyNode{
	node(NodeJoint, 0), node(NodeOpen, 0),
	node(NodeJoint, 1), node(NodeOpen, 0),
	node(NodeMaterial, 0), node(NodeOpen, 0),
	node(NodeShape, 0),
	node(NodeClose, 0), node(NodeClose, 0), node(NodeClose, 0),
	node(NodeEnd, 0),
}

func buildINF1(nodes []HierarchyNode) []byte {
	var b blob
	b.at(0x08, uint16(0), uint16(0xFFFF), uint32(1), uint32(3), uint32(0x18))
	for i, n := range nodes {
		b.at(0x18+i*4, uint16(n.Type), n.Value)
	}
	return makeChunk("INF1", b)
}

func buildVTX1() []byte {
	var b blob
	b.at(0x08, uint32(0x40))
	b.at(0x0C, uint32(0x80)) // POS
	b.at(0x0C+5*4, uint32(0xC0)) // TEX0
	b.at(0x40,
		uint32(AttrPosition), uint32(1), CompF32, uint8(0), [3]uint8{},
		uint32(AttrTex0), uint32(1), CompS16, uint8(8), [3]uint8{},
		uint32(AttrNull), uint32(0), uint32(0), uint8(0), [3]uint8{},
	)
	b.at(0x80, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	b.at(0xC0, []int16{0, 0, 256, 0, 0, 512})
	return makeChunk("VTX1", b)
}

func buildEVP1() []byte {
	var b blob
	b.at(0x08, uint16(1), uint16(0xFFFF), uint32(0x1C), uint32(0x20), uint32(0x24), uint32(0x2C))
	b.at(0x1C, uint8(2))
	b.at(0x20, []uint16{0, 1})
	b.at(0x24, []float32{0.25, 0.75})
	b.at(0x2C, []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0})
	b.at(0x5C, []float32{1, 0, 0, 0, 0, 1, 0, -2, 0, 0, 1, 0})
	return makeChunk("EVP1", b)
}

func buildDRW1() []byte {
	var b blob
	b.at(0x08, uint16(2), uint16(0xFFFF), uint32(0x14), uint32(0x18))
	b.at(0x14, []uint8{0, 1})
	b.at(0x18, []uint16{1, 0})
	return makeChunk("DRW1", b)
}

func buildJNT1() []byte {
	var b blob
	b.at(0x08, uint16(2), uint16(0xFFFF), uint32(0x18), uint32(0x98), uint32(0x9C))
	for i := 0; i < 2; i++ {
		off := 0x18 + i*jointEntrySize
		b.at(off, uint16(0), uint8(0), uint8(0xFF))
		b.at(off+0x04, []float32{1, 1, 1})
		b.at(off+0x10, []int16{0, 0, 0}, uint16(0xFFFF))
		b.at(off+0x18, []float32{0, float32(i) * 2, 0})
	}
	// quarter turn around Z on the child
	b.at(0x18+jointEntrySize+0x14, int16(0x4000))
	b.at(0x98, []uint16{0, 1})
	nameTable(&b, 0x9C, "root", "arm")
	return makeChunk("JNT1", b)
}

func buildSHP1() []byte {
	var b blob
	b.at(0x08, uint16(1), uint16(0xFFFF),
		uint32(0x2C), uint32(0x54), uint32(0), uint32(0x58),
		uint32(0x70), uint32(0xA0), uint32(0x74), uint32(0x7C))
	b.at(0x2C, uint8(0), uint8(0xFF), uint16(1), uint16(0), uint16(0), uint16(0), uint16(0xFFFF), float32(1))
	b.at(0x54, uint16(0))
	b.at(0x58,
		uint32(AttrPosition), uint32(Index16),
		uint32(AttrTex0), uint32(Index8),
		uint32(AttrNull), uint32(IndexNone),
	)
	b.at(0x70, uint16(1))
	b.at(0x74, uint16(0xFFFF), uint16(1), uint32(0))
	b.at(0x7C, uint32(0x20), uint32(0))
	b.at(0xA0, uint8(primTriangles), uint16(3),
		uint16(0), uint8(0),
		uint16(1), uint8(1),
		uint16(2), uint8(2),
	)
	b.at(0xBF, uint8(0))
	return makeChunk("SHP1", b)
}

func buildMAT3() []byte {
	var b blob
	b.at(0x08, uint16(1), uint16(0xFFFF))
	b.at(0x0C, uint32(0x84), uint32(0x1D0), uint32(0x1D4))
	b.at(0x1C, uint32(0x1E4), uint32(0x1E8))
	b.at(0x48, uint32(0x1EC))
	entry := 0x84
	b.at(entry, uint8(1), uint8(0))
	b.at(entry+0x08, uint16(0), uint16(0xFFFF))
	b.at(entry+0x84, []uint16{0, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF})
	b.at(entry+materialEntrySize-1, uint8(0))
	b.at(0x1D0, uint16(0))
	nameTable(&b, 0x1D4, "mat0")
	b.at(0x1E4, uint32(CullBack))
	b.at(0x1E8, []uint8{10, 20, 30, 255})
	b.at(0x1EC, uint16(0))
	return makeChunk("MAT3", b)
}

func buildTEX1() []byte {
	var b blob
	b.at(0x08, uint16(1), uint16(0xFFFF), uint32(0x20), uint32(0x40))
	b.at(0x20, TexI8, uint8(0), uint16(8), uint16(4), WrapRepeat, WrapClamp)
	b.at(0x20+0x14, uint8(1), uint8(1))
	b.at(0x20+0x18, uint8(1))
	b.at(0x20+0x1C, uint32(0x40))
	nameTable(&b, 0x40, "tex0")
	data := make([]byte, 32)
	for i := range data {
		data[i] = uint8(i * 8)
	}
	b.at(0x60, data)
	return makeChunk("TEX1", b)
}

// buildModel assembles a container from chunks in the given order.
func buildModel(magic string, chunks ...[]byte) []byte {
	var b blob
	b.at(0, []byte(magic))
	b.at(0x0C, uint32(len(chunks)))
	b.at(0x10, []byte("SVR3\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff\xff"))
	for _, c := range chunks {
		b = append(b, c...)
	}
	binary.BigEndian.PutUint32(b[8:], uint32(len(b)))
	return b
}

func defaultModel() []byte {
	return buildModel("J3D2bmd3",
		buildINF1(defaultHierarchy), buildVTX1(), buildEVP1(), buildDRW1(),
		buildJNT1(), buildSHP1(), buildMAT3(), buildTEX1())
}
