package j3d

func parseINF1(s *section, m *Model) error {
	m.Info = Info{
		LoadFlags:   s.u16(0x08),
		PacketCount: s.u32(0x0C),
		VertexCount: s.u32(0x10),
	}
	for off := s.offset(0x14); ; off += 4 {
		n := HierarchyNode{Type: NodeType(s.u16(off)), Value: s.u16(off + 2)}
		if s.err != nil {
			return s.err
		}
		m.Hierarchy = append(m.Hierarchy, n)
		if n.Type == NodeEnd {
			break
		}
	}
	return nil
}
