package j3d

import (
	"bytes"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// readNameTable decodes a J3D string table at off.
func readNameTable(s *section, off int) []string {
	count := int(s.u16(off))
	names := make([]string, count)
	for i := 0; i < count; i++ {
		strOff := off + int(s.u16(off+4+i*4+2))
		if strOff >= len(s.data) {
			s.fail(strOff, 1)
			return names
		}
		names[i] = decodeShiftJIS(s.data[strOff:])
	}
	return names
}

func decodeShiftJIS(b []byte) string {
	b = bytes.SplitN(b, []byte{0}, 2)[0]
	utf8Data, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b)
	if err != nil {
		return string(b)
	}
	return string(utf8Data)
}

func nameAt(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return ""
}
