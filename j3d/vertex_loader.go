package j3d

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// GX display list opcodes.
const (
	opNOP             = 0x00
	opLoadCP          = 0x08
	opLoadXF          = 0x10
	opLoadIndexA      = 0x20
	opLoadIndexD      = 0x38
	opCallDisplayList = 0x40
	opInvalidateCache = 0x48
	opLoadBP          = 0x61

	primQuads         = 0x80
	primTriangles     = 0x90
	primTriangleStrip = 0x98
	primTriangleFan   = 0xA0
	primLines         = 0xA8
	primLineStrip     = 0xB0
	primPoints        = 0xB8
)

const maxGroupVertices = 0x10000

// vertexLoader turns GX display lists into interleaved vertex records in
// on-disk encoding plus a triangle list.
type vertexLoader struct {
	model  *Model
	descs  []VertexDescriptor
	layout *VertexLayout
}

func (l *vertexLoader) load(dl []byte, g *MtxGroup) error {
	pos := 0
	u16 := func() int {
		if pos+2 > len(dl) {
			pos = len(dl)
			return 0
		}
		v := int(binary.BigEndian.Uint16(dl[pos:]))
		pos += 2
		return v
	}

	for pos < len(dl) {
		op := dl[pos]
		pos++
		switch {
		case op == opNOP, op == opInvalidateCache:
		case op == opLoadCP:
			pos += 5
		case op == opLoadXF:
			n := u16() + 1
			pos += 2 + n*4
		case op >= opLoadIndexA && op <= opLoadIndexD && op&7 == 0:
			pos += 4
		case op == opCallDisplayList:
			pos += 8
		case op == opLoadBP:
			pos += 4
		case op&0x80 != 0:
			prim := op & 0xF8
			n := u16()
			base := g.VertexCount
			emit := prim <= primTriangleFan
			for i := 0; i < n; i++ {
				rec, next, err := l.readVertex(dl, pos)
				if err != nil {
					return err
				}
				pos = next
				if !emit {
					continue
				}
				if g.VertexCount >= maxGroupVertices {
					return errors.Wrapf(ErrTooManyVertices, "%d", g.VertexCount+1)
				}
				g.VertexData = append(g.VertexData, rec...)
				g.VertexCount++
			}
			if emit {
				g.Indices = appendTriangles(g.Indices, prim, base, n)
			}
		default:
			// padding or an unsupported command ends the list
			return nil
		}
	}
	return nil
}

func (l *vertexLoader) readVertex(dl []byte, pos int) ([]byte, int, error) {
	rec := make([]byte, l.layout.Stride)
	for _, d := range l.descs {
		if d.Index == IndexNone {
			continue
		}
		attr := d.Attr
		if attr == AttrNBT {
			attr = AttrNormal
		}
		a := l.layout.Attribute(attr)
		if a == nil {
			continue
		}
		if d.Index == IndexDirect {
			if pos+a.Size > len(dl) {
				return nil, pos, errors.Wrapf(ErrTruncated, "display list vertex %v", d.Attr)
			}
			copy(rec[a.Offset:], dl[pos:pos+a.Size])
			pos += a.Size
			continue
		}

		elem := a.Size / a.Splits
		array := l.model.VertexArrays[d.Attr]
		if array == nil && attr == AttrNormal {
			array = l.model.VertexArrays[AttrNBT]
		}
		for k := 0; k < a.Splits; k++ {
			var idx int
			if d.Index == Index8 {
				if pos+1 > len(dl) {
					return nil, pos, errors.Wrapf(ErrTruncated, "display list index %v", d.Attr)
				}
				idx = int(dl[pos])
				pos++
			} else {
				if pos+2 > len(dl) {
					return nil, pos, errors.Wrapf(ErrTruncated, "display list index %v", d.Attr)
				}
				idx = int(binary.BigEndian.Uint16(dl[pos:]))
				pos += 2
			}
			src := idx * elem
			if src+elem <= len(array) {
				copy(rec[a.Offset+k*elem:], array[src:src+elem])
			}
		}
	}
	return rec, pos, nil
}

// appendTriangles converts a primitive of n vertices starting at base into
// counter-clockwise triangles. GX treats clockwise faces as front facing.
func appendTriangles(dst []uint16, prim uint8, base, n int) []uint16 {
	tri := func(a, b, c int) {
		dst = append(dst, uint16(base+a), uint16(base+c), uint16(base+b))
	}
	switch prim {
	case primQuads:
		for i := 0; i+3 < n; i += 4 {
			tri(i, i+1, i+2)
			tri(i, i+2, i+3)
		}
	case primTriangles:
		for i := 0; i+2 < n; i += 3 {
			tri(i, i+1, i+2)
		}
	case primTriangleStrip:
		for i := 2; i < n; i++ {
			if i%2 == 0 {
				tri(i-2, i-1, i)
			} else {
				tri(i-1, i-2, i)
			}
		}
	case primTriangleFan:
		for i := 2; i < n; i++ {
			tri(0, i-1, i)
		}
	}
	return dst
}
