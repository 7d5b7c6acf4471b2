// Package gxtex decodes GameCube GX texture data into RGBA images.
package gxtex

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/binzume/j3dconv/j3d"
	"github.com/pkg/errors"
)

var (
	ErrUnsupportedFormat = errors.New("gxtex: unsupported texture format")
	ErrShortData         = errors.New("gxtex: texture data too short")
)

// Decoder decodes the base level of J3D textures.
type Decoder struct{}

func (Decoder) DecodeTexture(t *j3d.Texture) (*image.NRGBA, error) {
	img, err := Decode(t.Format, t.Width, t.Height, t.Data, t.Palette, t.PaletteFormat)
	if err != nil {
		return nil, errors.Wrapf(err, "texture %q", t.Name)
	}
	return img, nil
}

// Decode converts one GX image. palette is only used by C4, C8 and C14X2.
func Decode(format uint8, w, h int, data, palette []byte, paletteFormat uint8) (*image.NRGBA, error) {
	block, ok := j3d.TextureBlock(format)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format 0x%x", format)
	}
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrShortData, "size %dx%d", w, h)
	}
	if size := j3d.TextureDataSize(format, w, h); len(data) < size {
		return nil, errors.Wrapf(ErrShortData, "%d < %d bytes", len(data), size)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if format == j3d.TexCMPR {
		decodeCMPR(img, data)
		return img, nil
	}

	lookup := func(i int) color.NRGBA {
		if i*2+2 > len(palette) {
			return color.NRGBA{}
		}
		return paletteColor(binary.BigEndian.Uint16(palette[i*2:]), paletteFormat)
	}

	var px func(blk []byte, i int) color.NRGBA
	switch format {
	case j3d.TexI4:
		px = func(blk []byte, i int) color.NRGBA {
			v := nibble(blk, i) * 0x11
			return color.NRGBA{v, v, v, v}
		}
	case j3d.TexI8:
		px = func(blk []byte, i int) color.NRGBA {
			v := blk[i]
			return color.NRGBA{v, v, v, v}
		}
	case j3d.TexIA4:
		px = func(blk []byte, i int) color.NRGBA {
			v := (blk[i] & 0xf) * 0x11
			return color.NRGBA{v, v, v, (blk[i] >> 4) * 0x11}
		}
	case j3d.TexIA8:
		px = func(blk []byte, i int) color.NRGBA {
			v := blk[i*2+1]
			return color.NRGBA{v, v, v, blk[i*2]}
		}
	case j3d.TexRGB565:
		px = func(blk []byte, i int) color.NRGBA {
			return rgb565(binary.BigEndian.Uint16(blk[i*2:]))
		}
	case j3d.TexRGB5A3:
		px = func(blk []byte, i int) color.NRGBA {
			return rgb5a3(binary.BigEndian.Uint16(blk[i*2:]))
		}
	case j3d.TexRGBA8:
		px = func(blk []byte, i int) color.NRGBA {
			return color.NRGBA{blk[i*2+1], blk[32+i*2], blk[33+i*2], blk[i*2]}
		}
	case j3d.TexC4:
		px = func(blk []byte, i int) color.NRGBA {
			return lookup(int(nibble(blk, i)))
		}
	case j3d.TexC8:
		px = func(blk []byte, i int) color.NRGBA {
			return lookup(int(blk[i]))
		}
	case j3d.TexC14X2:
		px = func(blk []byte, i int) color.NRGBA {
			return lookup(int(binary.BigEndian.Uint16(blk[i*2:]) & 0x3fff))
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format 0x%x", format)
	}

	blockBytes := block.Width * block.Height * block.BitsPerPixel / 8
	off := 0
	for by := 0; by < h; by += block.Height {
		for bx := 0; bx < w; bx += block.Width {
			blk := data[off : off+blockBytes]
			off += blockBytes
			for y := 0; y < block.Height; y++ {
				for x := 0; x < block.Width; x++ {
					if bx+x < w && by+y < h {
						img.SetNRGBA(bx+x, by+y, px(blk, y*block.Width+x))
					}
				}
			}
		}
	}
	return img, nil
}

func nibble(b []byte, i int) uint8 {
	if i%2 == 0 {
		return b[i/2] >> 4
	}
	return b[i/2] & 0xf
}

func rgb565(v uint16) color.NRGBA {
	r, g, b := uint8(v>>11&0x1f), uint8(v>>5&0x3f), uint8(v&0x1f)
	return color.NRGBA{r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2, 0xff}
}

func rgb5a3(v uint16) color.NRGBA {
	if v&0x8000 != 0 {
		r, g, b := uint8(v>>10&0x1f), uint8(v>>5&0x1f), uint8(v&0x1f)
		return color.NRGBA{r<<3 | r>>2, g<<3 | g>>2, b<<3 | b>>2, 0xff}
	}
	a := uint8(v >> 12 & 0x7)
	r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
	return color.NRGBA{r * 0x11, g * 0x11, b * 0x11, a<<5 | a<<2 | a>>1}
}

func paletteColor(v uint16, format uint8) color.NRGBA {
	switch format {
	case j3d.PaletteIA8:
		i := uint8(v)
		return color.NRGBA{i, i, i, uint8(v >> 8)}
	case j3d.PaletteRGB565:
		return rgb565(v)
	default:
		return rgb5a3(v)
	}
}
