package gxtex

import (
	"encoding/binary"
	"image"
	"image/color"
)

// decodeCMPR decodes 8x8 tiles made of four DXT1 style 4x4 sub blocks with
// big-endian endpoints and most significant bits first indices.
func decodeCMPR(img *image.NRGBA, data []byte) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	off := 0
	var palette [4]color.NRGBA
	for ty := 0; ty < h; ty += 8 {
		for tx := 0; tx < w; tx += 8 {
			for sub := 0; sub < 4; sub++ {
				blk := data[off : off+8]
				off += 8
				cmprPalette(blk, &palette)
				sx, sy := tx+(sub%2)*4, ty+(sub/2)*4
				for y := 0; y < 4; y++ {
					bits := blk[4+y]
					for x := 0; x < 4; x++ {
						idx := bits >> (6 - 2*x) & 3
						if sx+x < w && sy+y < h {
							img.SetNRGBA(sx+x, sy+y, palette[idx])
						}
					}
				}
			}
		}
	}
}

func cmprPalette(blk []byte, p *[4]color.NRGBA) {
	c0 := binary.BigEndian.Uint16(blk)
	c1 := binary.BigEndian.Uint16(blk[2:])
	p[0], p[1] = rgb565(c0), rgb565(c1)
	mix := func(a, b uint8, wa, wb, d int) uint8 {
		return uint8((int(a)*wa + int(b)*wb) / d)
	}
	if c0 > c1 {
		p[2] = color.NRGBA{mix(p[0].R, p[1].R, 2, 1, 3), mix(p[0].G, p[1].G, 2, 1, 3), mix(p[0].B, p[1].B, 2, 1, 3), 0xff}
		p[3] = color.NRGBA{mix(p[0].R, p[1].R, 1, 2, 3), mix(p[0].G, p[1].G, 1, 2, 3), mix(p[0].B, p[1].B, 1, 2, 3), 0xff}
	} else {
		p[2] = color.NRGBA{mix(p[0].R, p[1].R, 1, 1, 2), mix(p[0].G, p[1].G, 1, 1, 2), mix(p[0].B, p[1].B, 1, 1, 2), 0xff}
		p[3] = color.NRGBA{}
	}
}
