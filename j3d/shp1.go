package j3d

import (
	"github.com/binzume/j3dconv/geom"
	"github.com/pkg/errors"
)

const (
	shapeEntrySize  = 0x28
	mtxGroupSize    = 8
	displayListSize = 8
)

func parseSHP1(s *section, m *Model) error {
	count := int(s.u16(0x08))
	entryOff := s.offset(0x0C)
	remapOff := s.offset(0x10)
	descOff := s.offset(0x18)
	matrixTableOff := s.offset(0x1C)
	dlDataOff := s.offset(0x20)
	mtxDataOff := s.offset(0x24)
	dlTableOff := s.offset(0x28)

	for i := 0; i < count; i++ {
		entry := i
		if remapOff != 0 {
			entry = int(s.u16(remapOff + i*2))
		}
		off := entryOff + entry*shapeEntrySize
		shape := &Shape{
			MatrixType:    s.u8(off),
			Radius:        s.f32(off + 0x0C),
			BBoxMin:       *geom.NewVector3FromArray(s.vec3(off + 0x10)),
			BBoxMax:       *geom.NewVector3FromArray(s.vec3(off + 0x1C)),
			MaterialIndex: -1,
		}
		groupCount := int(s.u16(off + 0x02))
		firstMtxData := int(s.u16(off + 0x06))
		firstDL := int(s.u16(off + 0x08))

		for d := descOff + int(s.u16(off+0x04)); ; d += 8 {
			desc := VertexDescriptor{Attr: GXAttr(s.u32(d)), Index: IndexType(s.u32(d + 4))}
			if s.err != nil {
				return s.err
			}
			if desc.Attr == AttrNull {
				break
			}
			shape.Descriptors = append(shape.Descriptors, desc)
		}
		layout, err := ResolveVertexLayout(shape.Descriptors, m.VertexFormats)
		if err != nil {
			return errors.Wrapf(err, "shape %d", i)
		}
		shape.Layout = layout

		loader := &vertexLoader{model: m, descs: shape.Descriptors, layout: layout}
		for g := 0; g < groupCount; g++ {
			md := mtxDataOff + (firstMtxData+g)*mtxGroupSize
			group := &MtxGroup{UseMatrix: s.u16(md)}
			n := int(s.u16(md + 2))
			first := int(s.u32(md + 4))
			group.MatrixTable = make([]uint16, n)
			for k := range group.MatrixTable {
				group.MatrixTable[k] = s.u16(matrixTableOff + (first+k)*2)
			}

			dl := dlTableOff + (firstDL+g)*displayListSize
			size := int(s.u32(dl))
			start := dlDataOff + int(s.u32(dl+4))
			list := s.bytes(start, size)
			if s.err != nil {
				return s.err
			}
			if err := loader.load(list, group); err != nil {
				return errors.Wrapf(err, "shape %d group %d", i, g)
			}
			shape.MtxGroups = append(shape.MtxGroups, group)
		}
		m.Shapes = append(m.Shapes, shape)
	}
	return s.err
}
