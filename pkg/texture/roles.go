// pkg/texture/roles.go
package texture

import (
	"github.com/creativeyann17/go-assetpipe/pkg/scene"
)

// Role binds textures found by file-name suffix to a material property
type Role struct {
	// Suffix is appended to the material name to form the search needle
	Suffix string

	// Property receives the decoded texture
	Property string

	// ForceWhite sets the material's base color to opaque white before binding
	ForceWhite bool
}

// Roles in binding order. Later roles targeting the same property win.
var Roles = []Role{
	{Suffix: "_Albedo", Property: scene.PropMainTex},
	{Suffix: "_AlbedoTransparency", Property: scene.PropMainTex},
	{Suffix: "_Metallic", Property: scene.PropMetallicGlossMap, ForceWhite: true},
	{Suffix: "_MetallicSmoothness", Property: scene.PropMetallicGlossMap, ForceWhite: true},
	{Suffix: "_Normal", Property: scene.PropBumpMap},
	{Suffix: "_ao", Property: scene.PropOcclusionMap},
}
