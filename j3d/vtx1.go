package j3d

import "sort"

type VertexFormat struct {
	Attr           GXAttr
	ComponentCount uint32 // GX enum, see componentCount
	ComponentType  uint32 // CompXX, or ColorXX for colors
	Shift          uint8
}

func parseVTX1(s *section, m *Model) error {
	for off := s.offset(0x08); ; off += 16 {
		f := VertexFormat{
			Attr:           GXAttr(s.u32(off)),
			ComponentCount: s.u32(off + 4),
			ComponentType:  s.u32(off + 8),
			Shift:          s.u8(off + 12),
		}
		if s.err != nil {
			return s.err
		}
		if f.Attr == AttrNull {
			break
		}
		m.VertexFormats = append(m.VertexFormats, f)
	}

	var offsets [len(vertexArrayAttrs)]int
	bounds := []int{len(s.data)}
	for i := range vertexArrayAttrs {
		offsets[i] = s.offset(0x0C + i*4)
		if offsets[i] != 0 {
			bounds = append(bounds, offsets[i])
		}
	}
	sort.Ints(bounds)
	for i, attr := range vertexArrayAttrs {
		start := offsets[i]
		if start == 0 {
			continue
		}
		end := len(s.data)
		for _, b := range bounds {
			if b > start {
				end = b
				break
			}
		}
		if data := s.bytes(start, end-start); data != nil {
			m.VertexArrays[attr] = data
		}
	}
	return s.err
}
