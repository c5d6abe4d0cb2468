package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"wormhole/internal/obstacle"
	"wormhole/internal/primitives"
	"wormhole/internal/vmath"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// droneScale is the drone's model-space size (elongated along forward).
var droneScale = vmath.Vec3{X: 3, Y: 3, Z: 6}

// ensureTunnelLoaded builds the torus model on first Draw so GPU resources
// are created after the GL context exists. GenMeshTorus takes the tube/ring
// radius ratio and the ring diameter, and generates the ring around Z; the
// model transform tips it into the XZ plane where the curve lives.
func (s *Scene) ensureTunnelLoaded() {
	if s.tunnelLoaded {
		return
	}
	params := s.curve.Params()
	ratio := params.TubeRadius / params.MajorRadius
	s.tunnelMesh = rl.GenMeshTorus(ratio, params.MajorRadius*2, tunnelRadSegs, tunnelSides)
	if s.tunnelMesh.VertexCount == 0 {
		s.log.Warnf("torus mesh generation failed, tunnel hidden")
		s.tunnelLoaded = true // do not retry every frame
		return
	}
	s.tunnelModel = rl.LoadModelFromMesh(s.tunnelMesh)
	s.tunnelModel.Transform = rl.MatrixRotateX(rl.Deg2rad * 90)
	if mats := s.tunnelModel.GetMaterials(); len(mats) > 0 {
		s.tunnelMtl.Apply(&mats[0])
	}
	s.tunnelLoaded = true
}

// Draw renders the 3D scene. All state was settled in Update; nothing here
// mutates world state.
func (s *Scene) Draw() {
	s.ensureTunnelLoaded()

	rl.BeginMode3D(s.Camera)

	s.sky.draw(s.Camera.Position)

	if s.GridVisible {
		drawEditorGrid()
	}

	if s.tunnelModel.MeshCount > 0 {
		origin := vmath.ToRL(s.curve.Params().Placement.Origin)
		if s.tunnelMtl.Wireframe() {
			rl.DrawModelWires(s.tunnelModel, origin, 1, rl.NewColor(60, 120, 200, 160))
		} else {
			rl.DrawModel(s.tunnelModel, origin, 1, rl.White)
		}
	}

	camPos := s.Camera.Position
	s.registry.SetView(
		[3]float32{camPos.X, camPos.Y, camPos.Z},
		[3]float32{0.5, 1, 0.5},
	)

	s.drawDrone()
	s.drawObstacles()

	rl.EndMode3D()
}

// drawDrone renders the drone as an elongated sphere oriented along the
// path tangent.
func (s *Scene) drawDrone() {
	fwd := s.drone.Forward()
	up := s.drone.Up()
	right := vmath.NormalizeOr(vmath.Cross(up, fwd), vmath.AxisX, 1e-4)
	realUp := vmath.NormalizeOr(vmath.Cross(fwd, right), vmath.AxisY, 1e-4)

	scaleM := rl.MatrixScale(droneScale.X, droneScale.Y, droneScale.Z)
	rotM := basisMatrix(right, realUp, fwd)
	pos := s.drone.Position()
	transM := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)
	transform := rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rotM), transM)

	s.registry.Draw(primitives.KindSphere, s.droneMtl, transform)
}

func (s *Scene) drawObstacles() {
	s.field.ForEach(func(o *obstacle.Obstacle) {
		pos := o.Position
		if o.Body != nil {
			pos = o.Body.Position // released obstacles follow the physics body
		}
		transform := primitives.TransformAt(
			[3]float32{pos.X, pos.Y, pos.Z},
			[3]float32{o.Scale.X, o.Scale.Y, o.Scale.Z},
		)
		s.registry.Draw(primitives.KindCube, s.obstacleMtl, transform)
	})
}

// basisMatrix builds a rotation matrix whose columns are the given
// orthonormal frame (raylib matrices are column-major, translation in m12-14).
func basisMatrix(right, up, forward vmath.Vec3) rl.Matrix {
	var m rl.Matrix
	m.M0, m.M1, m.M2 = right.X, right.Y, right.Z
	m.M4, m.M5, m.M6 = up.X, up.Y, up.Z
	m.M8, m.M9, m.M10 = forward.X, forward.Y, forward.Z
	m.M15 = 1
	return m
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and
// axis lines.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}

// Unload releases GPU resources owned by the scene.
func (s *Scene) Unload() {
	if s.tunnelModel.MeshCount > 0 {
		rl.UnloadModel(s.tunnelModel)
		s.tunnelModel = rl.Model{}
	}
	s.registry.Unload()
	s.sky.unload()
	s.field.Clear()
}
