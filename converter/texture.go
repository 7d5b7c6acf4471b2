package converter

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/binzume/j3dconv/j3d"
	"github.com/blezek/tga"
	ftga "github.com/ftrvxmtrx/tga"
	_ "github.com/oov/psd"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

var ErrTextureEmbed = errors.New("converter: texture not embedded")

// TextureDecoder converts J3D texture data to an image.
type TextureDecoder interface {
	DecodeTexture(t *j3d.Texture) (*image.NRGBA, error)
}

// Extensions tried, in order, for replacement textures.
var overrideExts = []string{".png", ".tga", ".psd", ".bmp", ".jpg", ".gif"}

type textureInfo struct {
	id  *uint32
	err error
}

type textureCache struct {
	overrideDir string
	textures    map[int]*textureInfo
}

// loadOverride returns a replacement image for name, or nil if none exists.
func (c *textureCache) loadOverride(name string) (image.Image, error) {
	if c.overrideDir == "" || name == "" {
		return nil, nil
	}
	for _, ext := range overrideExts {
		f, err := os.Open(filepath.Join(c.overrideDir, name+ext))
		if err != nil {
			continue
		}
		defer f.Close()
		img, err := decodeImage(f, ext)
		return img, errors.Wrapf(err, "decode %s", f.Name())
	}
	return nil, nil
}

// decodeImage picks the decoder by extension. The tga package registers
// itself without a magic string, so image.Decode is only used for psd.
func decodeImage(f io.ReadSeeker, ext string) (image.Image, error) {
	switch ext {
	case ".png":
		return png.Decode(f)
	case ".jpg":
		return jpeg.Decode(f)
	case ".gif":
		return gif.Decode(f)
	case ".bmp":
		return bmp.Decode(f)
	case ".tga":
		img, err := ftga.Decode(f)
		if err != nil {
			// retry
			if _, serr := f.Seek(0, io.SeekStart); serr != nil {
				return nil, serr
			}
			img, err = tga.Decode(f)
		}
		return img, err
	}
	img, _, err := image.Decode(f)
	return img, err
}

func scaleTexture(img image.Image, scale float32, limit int) image.Image {
	rect := img.Bounds()
	if limit > 0 {
		sz := rect.Dx()
		if rect.Dy() > sz {
			sz = rect.Dy()
		}
		if s := int(float32(sz) * scale); s > limit {
			scale *= float32(limit) / float32(s)
		}
	}
	if scale == 1.0 || scale <= 0 {
		return img
	}
	w, h := int(float32(rect.Dx())*scale), int(float32(rect.Dy())*scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, rect, draw.Src, nil)
	return dst
}

func convertSampler(t *j3d.Texture) *gltf.Sampler {
	wrap := func(w uint8) gltf.WrappingMode {
		switch w {
		case j3d.WrapClamp:
			return gltf.WrapClampToEdge
		case j3d.WrapMirror:
			return gltf.WrapMirroredRepeat
		}
		return gltf.WrapRepeat
	}
	s := &gltf.Sampler{
		WrapS:     wrap(t.WrapS),
		WrapT:     wrap(t.WrapT),
		MagFilter: gltf.MagLinear,
		MinFilter: gltf.MinLinear,
	}
	if t.MagFilter == 0 {
		s.MagFilter = gltf.MagNearest
	}
	switch t.MinFilter {
	case 0:
		s.MinFilter = gltf.MinNearest
	case 2:
		s.MinFilter = gltf.MinNearestMipMapNearest
	case 3:
		s.MinFilter = gltf.MinLinearMipMapNearest
	case 4:
		s.MinFilter = gltf.MinNearestMipMapLinear
	case 5:
		s.MinFilter = gltf.MinLinearMipMapLinear
	}
	return s
}

// addTexture embeds TEX1 texture idx once and returns its glTF texture index.
func (c *j3dToGltf) addTexture(idx int) (*uint32, error) {
	if t, ok := c.textures.textures[idx]; ok {
		return t.id, t.err
	}
	info := &textureInfo{}
	c.textures.textures[idx] = info
	info.id, info.err = c.embedTexture(idx)
	return info.id, info.err
}

func (c *j3dToGltf) embedTexture(idx int) (*uint32, error) {
	tex := c.model.Textures[idx]

	img, err := c.textures.loadOverride(tex.Name)
	if err != nil {
		return nil, errors.Wrapf(ErrTextureEmbed, "%s: %v", tex.Name, err)
	}
	if img == nil {
		decoded, err := c.TextureDecoder.DecodeTexture(tex)
		if err != nil {
			return nil, errors.Wrapf(ErrTextureEmbed, "%s: %v", tex.Name, err)
		}
		img = decoded
	}
	img = scaleTexture(img, c.TextureScale, c.TextureResolutionLimit)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrapf(ErrTextureEmbed, "%s: %v", tex.Name, err)
	}
	imageIdx := c.b.AddImage(tex.Name, "image/png", buf.Bytes())
	sampler := c.b.AddSampler(convertSampler(tex))
	return gltf.Index(c.b.AddTexture(&gltf.Texture{
		Name:    tex.Name,
		Sampler: gltf.Index(sampler),
		Source:  gltf.Index(imageIdx),
	})), nil
}
