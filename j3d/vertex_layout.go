package j3d

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// AttributeLayout locates one attribute inside an interleaved vertex record.
type AttributeLayout struct {
	Attr   GXAttr
	Offset int
	Size   int
	Type   uint32 // CompXX, or ColorXX when Attr.IsColor()
	Count  int
	Shift  uint8
	Splits int // array indices per vertex, 3 for split NBT
}

type VertexLayout struct {
	Stride     int
	UseNBT     bool
	Attributes []AttributeLayout
}

// Attribute returns the layout of attr, or nil if the vertex lacks it.
func (l *VertexLayout) Attribute(attr GXAttr) *AttributeLayout {
	for i := range l.Attributes {
		if l.Attributes[i].Attr == attr {
			return &l.Attributes[i]
		}
	}
	return nil
}

// componentCount maps the GX component count enum to a number of scalars.
func componentCount(attr GXAttr, cnt uint32) (n int, nbt bool, ok bool) {
	switch {
	case attr == AttrPosition:
		switch cnt {
		case 0:
			return 2, false, true
		case 1:
			return 3, false, true
		}
	case attr == AttrNormal || attr == AttrNBT:
		switch cnt {
		case 0:
			return 3, false, true
		case 1, 2:
			return 9, true, true
		}
	case attr.IsColor():
		switch cnt {
		case 0:
			return 3, false, true
		case 1:
			return 4, false, true
		}
	case attr.IsTexCoord():
		switch cnt {
		case 0:
			return 1, false, true
		case 1:
			return 2, false, true
		}
	}
	return 0, false, false
}

// ResolveVertexLayout computes the interleaved record layout for a shape.
// It depends only on its arguments.
func ResolveVertexLayout(descs []VertexDescriptor, formats []VertexFormat) (*VertexLayout, error) {
	findFormat := func(attr GXAttr) *VertexFormat {
		for i := range formats {
			if formats[i].Attr == attr {
				return &formats[i]
			}
		}
		return nil
	}

	l := &VertexLayout{}
	for _, d := range descs {
		if d.Index == IndexNone {
			continue
		}
		a := AttributeLayout{Attr: d.Attr, Offset: l.Stride, Splits: 1}
		if d.Attr.IsMatrixIndex() {
			a.Type, a.Count, a.Size = CompU8, 1, 1
			l.Attributes = append(l.Attributes, a)
			l.Stride += a.Size
			continue
		}

		f := findFormat(d.Attr)
		if d.Attr == AttrNBT {
			a.Attr = AttrNormal
			if f == nil {
				f = findFormat(AttrNormal)
			}
		}
		if f == nil {
			return nil, errors.Wrapf(ErrVertexFormat, "no format for %v", d.Attr)
		}
		n, nbt, ok := componentCount(a.Attr, f.ComponentCount)
		if !ok {
			return nil, errors.Wrapf(ErrVertexFormat, "%v component count %d", d.Attr, f.ComponentCount)
		}
		if d.Attr == AttrNBT {
			n, nbt = 9, true
		}
		if nbt {
			l.UseNBT = true
			if f.ComponentCount == 2 {
				a.Splits = 3
			}
		}
		a.Type, a.Count, a.Shift = f.ComponentType, n, f.Shift

		if a.Attr.IsColor() {
			size, ok := colorSizes[a.Type]
			if !ok {
				return nil, errors.Wrapf(ErrVertexFormat, "%v color format %d", d.Attr, a.Type)
			}
			a.Size = size
		} else {
			size, ok := componentSizes[a.Type]
			if !ok {
				return nil, errors.Wrapf(ErrVertexFormat, "%v component type %d", d.Attr, a.Type)
			}
			a.Size = size * n
		}
		l.Attributes = append(l.Attributes, a)
		l.Stride += a.Size
	}
	return l, nil
}

// Floats decodes the attribute of one vertex record, dequantizing
// fixed point integers by 1<<Shift.
func (a *AttributeLayout) Floats(rec []byte) []float32 {
	out := make([]float32, a.Count)
	b := rec[a.Offset:]
	scale := float32(1) / float32(uint32(1)<<a.Shift)
	for i := range out {
		switch a.Type {
		case CompU8:
			out[i] = float32(b[i]) * scale
		case CompS8:
			out[i] = float32(int8(b[i])) * scale
		case CompU16:
			out[i] = float32(binary.BigEndian.Uint16(b[i*2:])) * scale
		case CompS16:
			out[i] = float32(int16(binary.BigEndian.Uint16(b[i*2:]))) * scale
		case CompF32:
			out[i] = math.Float32frombits(binary.BigEndian.Uint32(b[i*4:]))
		}
	}
	return out
}

// Uint8 returns the first byte of the attribute, used for matrix indices.
func (a *AttributeLayout) Uint8(rec []byte) uint8 {
	return rec[a.Offset]
}

// RGBA decodes a color attribute to 8 bit RGBA.
func (a *AttributeLayout) RGBA(rec []byte) [4]uint8 {
	b := rec[a.Offset:]
	switch a.Type {
	case ColorRGB565:
		v := binary.BigEndian.Uint16(b)
		return [4]uint8{expand5(uint8(v >> 11)), expand6(uint8(v>>5) & 0x3f), expand5(uint8(v) & 0x1f), 0xff}
	case ColorRGB8, ColorRGBX8:
		return [4]uint8{b[0], b[1], b[2], 0xff}
	case ColorRGBA4:
		v := binary.BigEndian.Uint16(b)
		return [4]uint8{uint8(v>>12) * 17, uint8(v>>8&0xf) * 17, uint8(v>>4&0xf) * 17, uint8(v&0xf) * 17}
	case ColorRGBA6:
		v := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
		return [4]uint8{expand6(uint8(v >> 18 & 0x3f)), expand6(uint8(v >> 12 & 0x3f)), expand6(uint8(v >> 6 & 0x3f)), expand6(uint8(v & 0x3f))}
	case ColorRGBA8:
		return [4]uint8{b[0], b[1], b[2], b[3]}
	}
	return [4]uint8{0xff, 0xff, 0xff, 0xff}
}

func expand5(v uint8) uint8 { return v<<3 | v>>2 }
func expand6(v uint8) uint8 { return v<<2 | v>>4 }
