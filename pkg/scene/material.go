// pkg/scene/material.go
package scene

import (
	"image"
	"image/color"
	"sync"
)

// Material property names understood by the texture binder
const (
	PropMainTex          = "_MainTex"
	PropMetallicGlossMap = "_MetallicGlossMap"
	PropBumpMap          = "_BumpMap"
	PropOcclusionMap     = "_OcclusionMap"
	PropColor            = "_Color"
	PropGlossiness       = "_Glossiness"
)

// PropertyKind is the type of value a material slot holds
type PropertyKind int

const (
	PropertyTexture PropertyKind = iota
	PropertyColor
	PropertyFloat
)

// Material is a per-material property table exposed by a parser.
// Setters are no-ops for properties the material does not expose.
type Material interface {
	Name() string
	HasProperty(name string) bool
	SetTexture(name string, tex *image.NRGBA)
	SetColor(name string, c color.NRGBA)
}

// StandardMaterial is a map-backed Material with a fixed set of slots.
type StandardMaterial struct {
	name string

	mu       sync.RWMutex
	kinds    map[string]PropertyKind
	textures map[string]*image.NRGBA
	colors   map[string]color.NRGBA
	floats   map[string]float64
}

// StandardProperties are the slots of a default lit material
var StandardProperties = map[string]PropertyKind{
	PropMainTex:          PropertyTexture,
	PropMetallicGlossMap: PropertyTexture,
	PropBumpMap:          PropertyTexture,
	PropOcclusionMap:     PropertyTexture,
	PropColor:            PropertyColor,
	PropGlossiness:       PropertyFloat,
}

// NewStandardMaterial creates a material exposing StandardProperties.
func NewStandardMaterial(name string) *StandardMaterial {
	return NewMaterial(name, StandardProperties)
}

// NewMaterial creates a material exposing exactly props.
func NewMaterial(name string, props map[string]PropertyKind) *StandardMaterial {
	m := &StandardMaterial{
		name:     name,
		kinds:    make(map[string]PropertyKind, len(props)),
		textures: make(map[string]*image.NRGBA),
		colors:   make(map[string]color.NRGBA),
		floats:   make(map[string]float64),
	}
	for k, v := range props {
		m.kinds[k] = v
	}
	return m
}

func (m *StandardMaterial) Name() string { return m.name }

func (m *StandardMaterial) HasProperty(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.kinds[name]
	return ok
}

func (m *StandardMaterial) has(name string, kind PropertyKind) bool {
	k, ok := m.kinds[name]
	return ok && k == kind
}

func (m *StandardMaterial) SetTexture(name string, tex *image.NRGBA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.has(name, PropertyTexture) {
		m.textures[name] = tex
	}
}

// Texture returns the image bound to a texture slot
func (m *StandardMaterial) Texture(name string) (*image.NRGBA, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tex, ok := m.textures[name]
	return tex, ok
}

func (m *StandardMaterial) SetColor(name string, c color.NRGBA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.has(name, PropertyColor) {
		m.colors[name] = c
	}
}

// Color returns the value of a color slot
func (m *StandardMaterial) Color(name string) (color.NRGBA, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.colors[name]
	return c, ok
}

// SetFloat sets a scalar slot
func (m *StandardMaterial) SetFloat(name string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.has(name, PropertyFloat) {
		m.floats[name] = v
	}
}

// Float returns the value of a scalar slot
func (m *StandardMaterial) Float(name string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.floats[name]
	return v, ok
}

// BoundTextures lists the texture slots that hold an image
func (m *StandardMaterial) BoundTextures() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.textures))
	for name := range m.textures {
		out = append(out, name)
	}
	return out
}
