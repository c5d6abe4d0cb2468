package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds runtime debugging overlays: FPS, heap alloc, and the flight
// readout (progress/speed/obstacle count). All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowFlight   bool

	font       rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount uint32

	flightProgress float32
	flightSpeed    float32
	flightObs      int

	lastFpsText    string
	lastMemText    string
	lastFlightText string
	lastMemStats   runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// SetShowFlight sets whether the flight readout is drawn.
func (d *Debug) SetShowFlight(show bool) {
	d.ShowFlight = show
}

// ToggleOverlays flips all overlays together (bound to F1).
func (d *Debug) ToggleOverlays() {
	on := !(d.ShowFPS || d.ShowFlight)
	d.ShowFPS = on
	d.ShowMemAlloc = on
	d.ShowFlight = on
}

// SetFlightInfo feeds the flight readout for this frame: normalized progress
// along the tunnel, current speed, and live obstacle count.
func (d *Debug) SetFlightInfo(progress, speed float32, obstacles int) {
	d.flightProgress = progress
	d.flightSpeed = speed
	d.flightObs = obstacles
}

// SetFont sets the font used to draw overlays. Zero texture ID = raylib default font.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders any enabled debug overlays, top-right. Call after the scene
// in the draw loop. Text is only recomputed every updateInterval frames to
// limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}
	if d.ShowFlight && d.lastFlightText == "" {
		update = true
	}

	y := int32(fpsPadding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawLine(d.lastFpsText, y)
		y += fpsLineHeight
	}

	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		d.drawLine(d.lastMemText, y)
		y += fpsLineHeight
	}

	if d.ShowFlight {
		if update {
			d.lastFlightText = fmt.Sprintf("p=%.3f v=%.4f obs=%d", d.flightProgress, d.flightSpeed, d.flightObs)
		}
		d.drawLine(d.lastFlightText, y)
	}
}

// drawLine draws one right-aligned overlay line at the given y.
func (d *Debug) drawLine(text string, y int32) {
	if text == "" {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	if d.font.Texture.ID != 0 {
		sz := float32(fpsFontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(d.font, text, sz, 1).X-float32(fpsPadding), float32(y))
		rl.DrawTextEx(d.font, text, pos, sz, 1, rl.Green)
		return
	}
	w := rl.MeasureText(text, fpsFontSize)
	rl.DrawText(text, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
}
