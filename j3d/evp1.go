package j3d

import "github.com/binzume/j3dconv/geom"

func parseEVP1(s *section, m *Model) error {
	count := int(s.u16(0x08))
	mixOff := s.offset(0x0C)
	indexOff := s.offset(0x10)
	weightOff := s.offset(0x14)
	ibmOff := s.offset(0x18)

	k := 0
	for i := 0; i < count; i++ {
		n := int(s.u8(mixOff + i))
		env := Envelope{Weights: make([]JointWeight, n)}
		for j := 0; j < n; j++ {
			env.Weights[j] = JointWeight{
				Joint:  int(s.u16(indexOff + (k+j)*2)),
				Weight: s.f32(weightOff + (k+j)*4),
			}
		}
		k += n
		m.Envelopes = append(m.Envelopes, env)
	}
	if s.err != nil {
		return s.err
	}

	if ibmOff != 0 {
		for off := ibmOff; off+48 <= len(s.data); off += 48 {
			var rows [12]float32
			for i := range rows {
				rows[i] = s.f32(off + i*4)
			}
			m.InverseBinds = append(m.InverseBinds, geom.NewMatrix4FromRows3x4(rows))
		}
	}
	return s.err
}
