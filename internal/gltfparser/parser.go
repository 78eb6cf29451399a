// internal/gltfparser/parser.go
package gltfparser

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/creativeyann17/go-assetpipe/pkg/scene"
	"github.com/qmuntal/gltf"
)

// Extensions handled by Parser
var Extensions = []string{".gltf", ".glb"}

// Parser reads glTF 2.0 documents (JSON or binary).
type Parser struct{}

// New returns a glTF parser
func New() *Parser {
	return &Parser{}
}

// Parse decodes src. Local paths resolve external buffers relative to the
// file; streamed .gltf documents must embed their buffers.
func (p *Parser) Parse(ctx context.Context, src scene.Source, progress func(float64)) (*scene.Model, error) {
	report := func(v float64) {
		if progress != nil {
			progress(v)
		}
	}
	report(0)

	var (
		doc *gltf.Document
		err error
	)
	if src.Reader != nil {
		doc = new(gltf.Document)
		err = gltf.NewDecoder(src.Reader).Decode(doc)
	} else {
		doc, err = gltf.Open(src.Path)
	}
	if err != nil {
		return nil, assetpipe.NewError(assetpipe.KindFormat, "parse gltf", src.Path, err)
	}
	report(0.6)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model := &scene.Model{
		Scene:     buildScene(doc, sceneName(src.Path)),
		Clips:     buildClips(doc),
		Materials: buildMaterials(doc),
	}
	report(1)
	return model, nil
}

func sceneName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func buildScene(doc *gltf.Document, name string) *scene.Scene {
	s := &scene.Scene{Name: name, Meshes: len(doc.Meshes)}

	for _, mesh := range doc.Meshes {
		for _, primitive := range mesh.Primitives {
			posIdx, ok := primitive.Attributes[gltf.POSITION]
			if !ok || posIdx >= len(doc.Accessors) {
				continue
			}
			vertices := doc.Accessors[posIdx].Count
			s.Vertices += vertices
			if primitive.Indices != nil && *primitive.Indices < len(doc.Accessors) {
				s.Triangles += doc.Accessors[*primitive.Indices].Count / 3
			} else {
				s.Triangles += vertices / 3
			}
		}
	}

	// Roots come from the default scene, or every scene when none is marked
	var roots []int
	switch {
	case doc.Scene != nil && *doc.Scene < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	default:
		for _, sc := range doc.Scenes {
			roots = append(roots, sc.Nodes...)
		}
	}
	visited := make(map[int]bool)
	for _, idx := range roots {
		if n := buildNode(doc, idx, visited); n != nil {
			s.Roots = append(s.Roots, n)
		}
	}
	return s
}

func buildNode(doc *gltf.Document, idx int, visited map[int]bool) *scene.Node {
	if idx < 0 || idx >= len(doc.Nodes) || visited[idx] {
		return nil
	}
	visited[idx] = true

	src := doc.Nodes[idx]
	n := &scene.Node{Name: src.Name}
	if n.Name == "" {
		n.Name = fmt.Sprintf("node_%d", idx)
	}
	if src.Mesh != nil && *src.Mesh < len(doc.Meshes) {
		n.Mesh = doc.Meshes[*src.Mesh].Name
	}
	for _, child := range src.Children {
		if c := buildNode(doc, child, visited); c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func buildClips(doc *gltf.Document) []scene.Clip {
	clips := make([]scene.Clip, 0, len(doc.Animations))
	for i, anim := range doc.Animations {
		name := anim.Name
		if name == "" {
			name = fmt.Sprintf("clip_%d", i)
		}
		clips = append(clips, scene.Clip{Name: name, Channels: len(anim.Channels)})
	}
	return clips
}

func buildMaterials(doc *gltf.Document) []scene.Material {
	materials := make([]scene.Material, 0, len(doc.Materials))
	for i, m := range doc.Materials {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("material_%d", i)
		}
		mat := scene.NewStandardMaterial(name)
		if pbr := m.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			f := *pbr.BaseColorFactor
			mat.SetColor(scene.PropColor, color.NRGBA{
				R: unit(f[0]), G: unit(f[1]), B: unit(f[2]), A: unit(f[3]),
			})
		}
		materials = append(materials, mat)
	}
	return materials
}

// unit maps a [0,1] factor to a byte
func unit(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
