package converter

import (
	"github.com/binzume/j3dconv/j3d"
	"github.com/qmuntal/gltf"
)

// Texture alpha settings of TEX1 headers.
const (
	alphaOpaque = 0
	alphaMask   = 1
	alphaBlend  = 2
)

// convertMaterial builds a material whose base color texture is the first
// valid texture slot. The texture is registered before the material.
func (c *j3dToGltf) convertMaterial(mat *j3d.Material) *gltf.Material {
	var mf float32 = 0
	var rf float32 = 1
	mm := &gltf.Material{
		Name: mat.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{
				float32(mat.Color[0]) / 255,
				float32(mat.Color[1]) / 255,
				float32(mat.Color[2]) / 255,
				float32(mat.Color[3]) / 255,
			},
			MetallicFactor:  &mf,
			RoughnessFactor: &rf,
		},
		DoubleSided: true,
		AlphaMode:   gltf.AlphaOpaque,
	}

	slot := c.firstTextureSlot(mat)
	if c.DisableTextures || slot < 0 {
		return mm
	}
	id, err := c.addTexture(slot)
	if err != nil {
		c.log.Warnw("material built without texture", "material", mat.Name, "error", err)
		return mm
	}
	mm.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: *id}
	switch c.model.Textures[slot].AlphaSetting {
	case alphaMask:
		cutoff := float32(0.5)
		mm.AlphaMode = gltf.AlphaMask
		mm.AlphaCutoff = &cutoff
	case alphaBlend:
		mm.AlphaMode = gltf.AlphaBlend
	}
	return mm
}

func (c *j3dToGltf) firstTextureSlot(mat *j3d.Material) int {
	for _, slot := range mat.TextureSlots {
		if slot >= 0 && slot < len(c.model.Textures) {
			return slot
		}
	}
	return -1
}
