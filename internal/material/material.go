package material

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Material is the capability set the renderer needs from any surface
// description. The variant (standard, PBR, shader) is chosen at construction
// time; nothing downstream inspects the concrete type.
type Material interface {
	// Apply configures the raylib material in place.
	Apply(mtl *rl.Material)
	// ApplyTexture sets the albedo texture. Invalid textures are ignored.
	ApplyTexture(mtl *rl.Material, tex rl.Texture2D)
	// SetWireframe/Wireframe control wire rendering; consulted by the
	// drawing code, not by raylib itself.
	SetWireframe(on bool)
	Wireframe() bool
	// OwnsShader reports whether Apply installs its own shader, in which
	// case the renderer must not overwrite it with the shared lit shader.
	OwnsShader() bool
}

// base carries the wireframe flag shared by all variants.
type base struct {
	wireframe bool
}

func (b *base) SetWireframe(on bool) { b.wireframe = on }
func (b *base) Wireframe() bool      { return b.wireframe }
func (b *base) OwnsShader() bool     { return false }

// Standard is a flat albedo tint on the default raylib shader.
type Standard struct {
	base
	Albedo rl.Color
}

// NewStandard returns a standard material with the given tint.
func NewStandard(albedo rl.Color) *Standard {
	return &Standard{Albedo: albedo}
}

func (m *Standard) Apply(mtl *rl.Material) {
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = m.Albedo
	}
}

func (m *Standard) ApplyTexture(mtl *rl.Material, tex rl.Texture2D) {
	if rl.IsTextureValid(tex) {
		rl.SetMaterialTexture(mtl, rl.MapAlbedo, tex)
	}
}

// PBR tints the albedo and sets metalness/roughness maps. raylib's default
// pipeline only shades these with a PBR shader attached, so PBR materials
// usually pair with a Shader variant upstream; the values are still stored
// on the material so the shader can read them.
type PBR struct {
	base
	Albedo    rl.Color
	Metallic  float32
	Roughness float32
}

// NewPBR returns a PBR material. Metallic and roughness are clamped to [0,1].
func NewPBR(albedo rl.Color, metallic, roughness float32) *PBR {
	return &PBR{Albedo: albedo, Metallic: clamp01(metallic), Roughness: clamp01(roughness)}
}

func (m *PBR) Apply(mtl *rl.Material) {
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = m.Albedo
	}
	if metal := mtl.GetMap(rl.MapMetalness); metal != nil {
		metal.Value = m.Metallic
	}
	if rough := mtl.GetMap(rl.MapRoughness); rough != nil {
		rough.Value = m.Roughness
	}
}

func (m *PBR) ApplyTexture(mtl *rl.Material, tex rl.Texture2D) {
	if rl.IsTextureValid(tex) {
		rl.SetMaterialTexture(mtl, rl.MapAlbedo, tex)
	}
}

// Shader wraps a custom shader compiled from source. Invalid compilation
// leaves the default shader in place (degraded, never fatal).
type Shader struct {
	base
	Albedo rl.Color
	shader rl.Shader
	valid  bool
}

// NewShader compiles the given vertex/fragment sources. On failure the
// material behaves like Standard.
func NewShader(albedo rl.Color, vs, fs string) *Shader {
	shader := rl.LoadShaderFromMemory(vs, fs)
	return &Shader{
		Albedo: albedo,
		shader: shader,
		valid:  rl.IsShaderValid(shader),
	}
}

func (m *Shader) Apply(mtl *rl.Material) {
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = m.Albedo
	}
	if m.valid {
		mtl.Shader = m.shader
	}
}

func (m *Shader) ApplyTexture(mtl *rl.Material, tex rl.Texture2D) {
	if rl.IsTextureValid(tex) {
		rl.SetMaterialTexture(mtl, rl.MapAlbedo, tex)
	}
}

// OwnsShader reports true when compilation succeeded; the renderer then
// leaves the material's shader alone.
func (m *Shader) OwnsShader() bool { return m.valid }

// RawShader exposes the compiled shader for uniform updates; the bool is
// false when compilation failed.
func (m *Shader) RawShader() (rl.Shader, bool) {
	return m.shader, m.valid
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
