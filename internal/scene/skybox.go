package scene

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const skyboxScale = 1000

// skyboxPaths are tried in order so the skybox is found whether run from the
// repo root or cmd/wormhole. Skybox assets live under assets/skybox/.
var skyboxPaths = []string{
	"assets/skybox/skybox.png",
	"assets/skybox/skybox.jpg",
	"../../assets/skybox/skybox.png",
	"../../assets/skybox/skybox.jpg",
}

// skybox is an optional backdrop drawn first in 3D mode. Cubemap or
// equirectangular panorama; a missing asset just means no backdrop.
type skybox struct {
	tex       rl.Texture2D
	mesh      rl.Mesh
	mtl       rl.Material
	loaded    bool
	pending   bool   // true = path known, GPU load deferred until first Draw (after window/GL exists)
	path      string // set when pending; used to load texture on first frame
	equirect  bool   // true = panorama (2D texture + shader), false = cubemap
	shader    rl.Shader
	camPosLoc int32
	texLoc    int32
}

// equirectAspectMin/Max: width/height ratio for equirectangular panorama (typically 2:1).
const equirectAspectMin = 1.8
const equirectAspectMax = 2.2

// find locates the skybox file and decides cubemap vs equirect. GPU loading
// is deferred to ensureLoaded (called from Draw) so it runs after the
// window/OpenGL context exists.
func (s *skybox) find() {
	var found string
	for _, p := range skyboxPaths {
		cleaned := filepath.Clean(p)
		if _, err := os.Stat(cleaned); err == nil {
			found = cleaned
			break
		}
	}
	if found == "" {
		return
	}
	img := rl.LoadImage(found)
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return
	}
	aspect := float32(img.Width) / float32(img.Height)
	s.equirect = aspect >= equirectAspectMin && aspect <= equirectAspectMax
	rl.UnloadImage(img)

	s.path = found
	s.pending = true
}

// ensureLoaded runs the first time we Draw with a pending skybox; it loads
// GPU resources (texture, mesh, material, shader) after the GL context exists.
func (s *skybox) ensureLoaded() {
	if !s.pending || s.path == "" {
		return
	}
	path := s.path
	s.pending = false
	s.path = ""

	if !s.equirect {
		img := rl.LoadImage(path)
		if img == nil || img.Width <= 0 || img.Height <= 0 {
			return
		}
		s.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutAutoDetect)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(s.tex) {
			return
		}
		s.mesh = rl.GenMeshCube(1, 1, 1)
		s.mtl = rl.LoadMaterialDefault()
		rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
		s.loaded = true
		return
	}

	s.tex = rl.LoadTexture(path)
	if !rl.IsTextureValid(s.tex) {
		return
	}
	shader := rl.LoadShaderFromMemory(equirectVS, equirectFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(s.tex)
		return
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	s.camPosLoc = rl.GetShaderLocation(shader, "cameraPosition")
	s.texLoc = rl.GetShaderLocation(shader, "skybox")
	s.shader = shader
	s.loaded = true
}

// draw renders the skybox as a large cube centered on the camera. Call
// between BeginMode3D and EndMode3D, before anything else.
func (s *skybox) draw(camPos rl.Vector3) {
	s.ensureLoaded()
	if !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	scale := rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale)
	trans := rl.MatrixTranslate(camPos.X, camPos.Y, camPos.Z)
	transform := rl.MatrixMultiply(scale, trans)
	if s.equirect {
		if s.camPosLoc >= 0 {
			pos := []float32{camPos.X, camPos.Y, camPos.Z}
			rl.SetShaderValueV(s.mtl.Shader, s.camPosLoc, pos, rl.ShaderUniformVec3, 1)
		}
		if s.texLoc >= 0 {
			rl.SetShaderValueTexture(s.mtl.Shader, s.texLoc, s.tex)
		}
	}
	rl.DrawMesh(s.mesh, s.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

// unload releases GPU resources held by the skybox.
func (s *skybox) unload() {
	if !s.loaded {
		return
	}
	rl.UnloadMesh(&s.mesh)
	rl.UnloadTexture(s.tex)
	s.loaded = false
}

// Equirectangular skybox shader: samples a 2D panorama by view direction.
const (
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  finalColor = texture(skybox, vec2(u, v));
}
`
)
