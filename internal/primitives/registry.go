package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"wormhole/internal/material"
)

// Kind names a primitive mesh shape.
type Kind string

const (
	KindCube   Kind = "cube"
	KindSphere Kind = "sphere"
)

// defaultSphereRings and defaultSphereSlices control sphere mesh resolution.
const defaultSphereRings = 16
const defaultSphereSlices = 16

// cached holds mesh and raylib material for a primitive kind, created lazily
// on first Draw so GPU resources are allocated after the GL context exists.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps primitive kinds to mesh+material. It is an explicit object
// owned by the scene and passed to whoever draws; there is no package-level
// mesh table.
type Registry struct {
	cache    map[Kind]cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no primitives; meshes are created on
// first use.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[Kind]cached),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets camera position and direction-to-light for this frame. Call
// once per frame before drawing so lit primitives get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// ensure creates the mesh and material for kind if not yet cached, applying
// the surface description and the lit shader.
func (r *Registry) ensure(kind Kind, surface material.Material) {
	if _, ok := r.cache[kind]; ok {
		return
	}
	var mesh rl.Mesh
	switch kind {
	case KindCube:
		mesh = rl.GenMeshCube(1, 1, 1)
	case KindSphere:
		// Radius 0.5 so diameter matches the cube side length.
		mesh = rl.GenMeshSphere(0.5, defaultSphereRings, defaultSphereSlices)
	default:
		return
	}
	mtl := rl.LoadMaterialDefault()
	if surface != nil {
		surface.Apply(&mtl)
	}
	if surface == nil || !surface.OwnsShader() {
		if shader := loadLitShader(); rl.IsShaderValid(shader) {
			mtl.Shader = shader
		}
	}
	r.cache[kind] = cached{mesh: mesh, mtl: mtl}
}

// Draw draws one instance of kind with the given world transform. Must be
// called between BeginMode3D and EndMode3D, after SetView for this frame.
// Unknown kinds are skipped.
func (r *Registry) Draw(kind Kind, surface material.Material, transform rl.Matrix) {
	r.ensure(kind, surface)
	c, ok := r.cache[kind]
	if !ok {
		return
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// TransformAt builds a world transform from position and uniform axis scale.
func TransformAt(position, scale [3]float32) rl.Matrix {
	sx, sy, sz := scale[0], scale[1], scale[2]
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	scaleM := rl.MatrixScale(sx, sy, sz)
	transM := rl.MatrixTranslate(position[0], position[1], position[2])
	return rl.MatrixMultiply(scaleM, transM)
}

// Unload releases cached GPU meshes. Call on scene teardown.
func (r *Registry) Unload() {
	for kind, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, kind)
	}
}
