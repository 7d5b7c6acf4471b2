package j3d

func parseDRW1(s *section, m *Model) error {
	count := int(s.u16(0x08))
	weightedOff := s.offset(0x0C)
	indexOff := s.offset(0x10)
	m.MatrixDefs = make([]MatrixDef, count)
	for i := range m.MatrixDefs {
		if s.u8(weightedOff+i) != 0 {
			m.MatrixDefs[i].Kind = MatrixEnvelope
		}
		m.MatrixDefs[i].Index = int(s.u16(indexOff + i*2))
	}
	return s.err
}
