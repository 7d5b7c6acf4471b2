package j3d

// GX texture formats.
const (
	TexI4     uint8 = 0x0
	TexI8     uint8 = 0x1
	TexIA4    uint8 = 0x2
	TexIA8    uint8 = 0x3
	TexRGB565 uint8 = 0x4
	TexRGB5A3 uint8 = 0x5
	TexRGBA8  uint8 = 0x6
	TexC4     uint8 = 0x8
	TexC8     uint8 = 0x9
	TexC14X2  uint8 = 0xA
	TexCMPR   uint8 = 0xE
)

// Palette formats.
const (
	PaletteIA8    uint8 = 0
	PaletteRGB565 uint8 = 1
	PaletteRGB5A3 uint8 = 2
)

// Wrap modes.
const (
	WrapClamp  uint8 = 0
	WrapRepeat uint8 = 1
	WrapMirror uint8 = 2
)

// BlockInfo describes the tiling of a GX texture format.
type BlockInfo struct {
	Width, Height int
	BitsPerPixel  int
}

var textureBlocks = map[uint8]BlockInfo{
	TexI4:     {8, 8, 4},
	TexI8:     {8, 4, 8},
	TexIA4:    {8, 4, 8},
	TexIA8:    {4, 4, 16},
	TexRGB565: {4, 4, 16},
	TexRGB5A3: {4, 4, 16},
	TexRGBA8:  {4, 4, 32},
	TexC4:     {8, 8, 4},
	TexC8:     {8, 4, 8},
	TexC14X2:  {4, 4, 16},
	TexCMPR:   {8, 8, 4},
}

// TextureBlock returns the tiling of format.
func TextureBlock(format uint8) (BlockInfo, bool) {
	b, ok := textureBlocks[format]
	return b, ok
}

// TextureDataSize returns the byte size of the base level image.
func TextureDataSize(format uint8, w, h int) int {
	b, ok := textureBlocks[format]
	if !ok {
		return 0
	}
	bw := (w + b.Width - 1) / b.Width
	bh := (h + b.Height - 1) / b.Height
	return bw * bh * b.Width * b.Height * b.BitsPerPixel / 8
}

const textureHeaderSize = 0x20

func parseTEX1(s *section, m *Model) error {
	count := int(s.u16(0x08))
	headerOff := s.offset(0x0C)
	var names []string
	if nameOff := s.offset(0x10); nameOff != 0 {
		names = readNameTable(s, nameOff)
	}

	for i := 0; i < count; i++ {
		h := headerOff + i*textureHeaderSize
		t := &Texture{
			Name:          nameAt(names, i),
			Format:        s.u8(h),
			AlphaSetting:  s.u8(h + 0x01),
			Width:         int(s.u16(h + 0x02)),
			Height:        int(s.u16(h + 0x04)),
			WrapS:         s.u8(h + 0x06),
			WrapT:         s.u8(h + 0x07),
			PaletteFormat: s.u8(h + 0x09),
			PaletteCount:  int(s.u16(h + 0x0A)),
			MinFilter:     s.u8(h + 0x14),
			MagFilter:     s.u8(h + 0x15),
			MipCount:      int(s.u8(h + 0x18)),
		}
		if t.PaletteCount > 0 {
			t.Palette = s.bytes(h+int(s.u32(h+0x0C)), t.PaletteCount*2)
		}
		dataOff := h + int(s.u32(h+0x1C))
		size := TextureDataSize(t.Format, t.Width, t.Height)
		if dataOff+size > len(s.data) {
			size = len(s.data) - dataOff
		}
		if size > 0 {
			t.Data = s.bytes(dataOff, size)
		}
		m.Textures = append(m.Textures, t)
	}
	return s.err
}
