package converter

import (
	"fmt"

	"github.com/binzume/j3dconv/geom"
	"github.com/binzume/j3dconv/gltfutil"
	"github.com/binzume/j3dconv/gxtex"
	"github.com/binzume/j3dconv/internal/logger"
	"github.com/binzume/j3dconv/j3d"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
)

type J3DToGLTFOption struct {
	Scale     float32 // Default: 1
	Generator string

	DisableTextures        bool
	TextureScale           float32 // Default: 1
	TextureResolutionLimit int     // 0: unlimited
	TextureOverrideDir     string
	TextureDecoder         TextureDecoder // Default: gxtex.Decoder

	Logger *zap.Logger // Default: logger.Log
}

type j3dToGltf struct {
	*J3DToGLTFOption
	b        *gltfutil.Builder
	model    *j3d.Model
	log      *zap.SugaredLogger
	textures *textureCache
}

func NewJ3DToGLTFConverter(options *J3DToGLTFOption) *j3dToGltf {
	if options == nil {
		options = &J3DToGLTFOption{}
	}
	if options.Scale == 0 {
		options.Scale = 1
	}
	if options.TextureScale == 0 {
		options.TextureScale = 1
	}
	if options.TextureDecoder == nil {
		options.TextureDecoder = gxtex.Decoder{}
	}
	if options.Generator == "" {
		options.Generator = "j3dconv"
	}
	l := options.Logger
	if l == nil {
		l = logger.Log
	}
	return &j3dToGltf{J3DToGLTFOption: options, log: l.Sugar()}
}

// ConvertFile converts one .bmd/.bdl file into a .glb file.
func (c *j3dToGltf) ConvertFile(src, dst string) error {
	m, err := j3d.Load(src)
	if err != nil {
		return err
	}
	b, err := c.Convert(m)
	if err != nil {
		return errors.Wrapf(err, "convert %s", src)
	}
	return b.SaveGLB(dst)
}

// Convert builds a glTF document from a parsed model. Shapes and textures
// that cannot be converted are logged and skipped.
func (c *j3dToGltf) Convert(m *j3d.Model) (*gltfutil.Builder, error) {
	c.b = gltfutil.NewBuilder(c.Generator)
	c.model = m
	c.textures = &textureCache{overrideDir: c.TextureOverrideDir, textures: map[int]*textureInfo{}}

	world := m.WorldMatrices()
	c.addJointNodes()
	var skin *uint32
	if len(m.Joints) > 0 {
		skin = gltf.Index(c.addSkin(world))
	}

	materials := make([]uint32, len(m.Materials))
	for i, mat := range m.Materials {
		materials[i] = c.b.AddMaterial(c.convertMaterial(mat))
	}

	scene := &gltf.Scene{}
	for _, r := range m.Roots() {
		scene.Nodes = append(scene.Nodes, uint32(r))
	}
	for i, s := range m.Shapes {
		sv, err := ExtractShape(s, m, world)
		if err != nil {
			c.log.Warnw("shape skipped", "shape", i, "error", err)
			continue
		}
		var material *uint32
		if s.MaterialIndex < len(materials) {
			material = gltf.Index(materials[s.MaterialIndex])
		}
		mesh := c.b.AddMesh(&gltf.Mesh{
			Name:       fmt.Sprintf("shape%d", i),
			Primitives: []*gltf.Primitive{c.addPrimitive(sv, material, skin != nil)},
		})
		node := c.b.AddNode(&gltf.Node{
			Name:     fmt.Sprintf("shape%d", i),
			Mesh:     gltf.Index(mesh),
			Skin:     skin,
			Rotation: [4]float32{0, 0, 0, 1},
			Scale:    [3]float32{1, 1, 1},
		})
		scene.Nodes = append(scene.Nodes, node)
	}
	c.b.AddScene(scene)
	if err := c.b.Err(); err != nil {
		return nil, err
	}

	c.log.Debugw("converted",
		"joints", len(m.Joints),
		"shapes", len(m.Shapes),
		"materials", len(m.Materials),
		"textures", len(m.Textures))
	return c.b, nil
}

// addJointNodes adds one node per joint so node index equals joint index.
func (c *j3dToGltf) addJointNodes() {
	for _, j := range c.model.Joints {
		node := &gltf.Node{
			Name:        j.Name,
			Translation: j.Translation.Scale(c.Scale).ToArray(),
			Rotation:    j.Rotation.ToArray(),
			Scale:       j.Scale.ToArray(),
		}
		for _, ch := range j.Children {
			node.Children = append(node.Children, uint32(ch))
		}
		c.b.AddNode(node)
	}
}

func (c *j3dToGltf) addSkin(world []*geom.Matrix4) uint32 {
	joints := make([]uint32, len(c.model.Joints))
	invmats := make([][16]float32, len(c.model.Joints))
	for i := range c.model.Joints {
		joints[i] = uint32(i)
		var mat *geom.Matrix4
		if i < len(c.model.InverseBinds) {
			mat = c.model.InverseBinds[i]
		} else {
			mat = world[i].Inverse()
		}
		invmats[i] = *mat
		invmats[i][12] *= c.Scale
		invmats[i][13] *= c.Scale
		invmats[i][14] *= c.Scale
	}
	skin := &gltf.Skin{
		Joints:              joints,
		InverseBindMatrices: gltf.Index(c.b.AddMatrices(invmats)),
	}
	if roots := c.model.Roots(); len(roots) > 0 {
		skin.Skeleton = gltf.Index(uint32(roots[0]))
	}
	return c.b.AddSkin(skin)
}

func (c *j3dToGltf) addPrimitive(sv *ShapeVertices, material *uint32, skinned bool) *gltf.Primitive {
	positions := sv.Positions
	if c.Scale != 1 {
		positions = make([][3]float32, len(sv.Positions))
		for i, p := range sv.Positions {
			positions[i] = [3]float32{p[0] * c.Scale, p[1] * c.Scale, p[2] * c.Scale}
		}
	}

	attrs := map[string]uint32{
		gltf.POSITION: c.b.AddPositions(positions),
	}
	if sv.Normals != nil {
		attrs[gltf.NORMAL] = c.b.AddNormals(sv.Normals)
	}
	if sv.TexCoords != nil {
		attrs[gltf.TEXCOORD_0] = c.b.AddTexCoords(sv.TexCoords)
	}
	if sv.Colors != nil {
		attrs[gltf.COLOR_0] = c.b.AddColors(sv.Colors)
	}
	if skinned {
		attrs[gltf.JOINTS_0] = c.b.AddJoints(sv.Joints)
		attrs[gltf.WEIGHTS_0] = c.b.AddWeights(sv.Weights)
	}
	return &gltf.Primitive{
		Attributes: attrs,
		Indices:    gltf.Index(c.b.AddIndices(sv.Indices)),
		Material:   material,
		Mode:       gltf.PrimitiveTriangles,
	}
}
