package j3d

const materialEntrySize = 0x14C

func parseMAT3(s *section, m *Model) error {
	count := int(s.u16(0x08))
	entryOff := s.offset(0x0C)
	remapOff := s.offset(0x10)
	cullOff := s.offset(0x1C)
	colorOff := s.offset(0x20)
	texRemapOff := s.offset(0x48)
	var names []string
	if nameOff := s.offset(0x14); nameOff != 0 {
		names = readNameTable(s, nameOff)
	}

	for i := 0; i < count; i++ {
		entry := i
		if remapOff != 0 {
			entry = int(s.u16(remapOff + i*2))
		}
		off := entryOff + entry*materialEntrySize
		mat := &Material{
			Name:  nameAt(names, i),
			Color: [4]uint8{0xff, 0xff, 0xff, 0xff},
		}
		if cullOff != 0 {
			mat.CullMode = CullMode(s.u32(cullOff + int(s.u8(off+0x01))*4))
		}
		if c := s.u16(off + 0x08); c != 0xFFFF && colorOff != 0 {
			copy(mat.Color[:], s.bytes(colorOff+int(c)*4, 4))
		}
		for k := range mat.TextureSlots {
			mat.TextureSlots[k] = -1
			t := s.u16(off + 0x84 + k*2)
			if t == 0xFFFF || texRemapOff == 0 {
				continue
			}
			mat.TextureSlots[k] = int(s.u16(texRemapOff + int(t)*2))
		}
		m.Materials = append(m.Materials, mat)
	}
	return s.err
}
