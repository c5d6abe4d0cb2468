package main

import (
	"wormhole/internal/debug"
	"wormhole/internal/engineconfig"
	"wormhole/internal/graphics"
	"wormhole/internal/logger"
	"wormhole/internal/scene"
)

func main() {
	log := logger.New()
	_ = engineconfig.LoadEnvFile(".env")

	prefs, _ := engineconfig.Load()
	prefs = engineconfig.ApplyEnvOverrides(prefs)

	presets := engineconfig.LoadPresets()
	preset, err := engineconfig.ResolvePreset(presets, prefs.Preset)
	if err != nil {
		log.Warnf("%v", err)
	}

	scn := scene.New(preset, prefs, log)
	dbg := debug.New()
	dbg.SetShowFPS(prefs.ShowFPS)
	dbg.SetShowMemAlloc(prefs.ShowMemAlloc)
	dbg.SetShowFlight(prefs.ShowFPS)

	update := func(dtMs float32) {
		if scn.Update(dtMs) {
			dbg.ToggleOverlays()
		}
		drone := scn.Drone()
		dbg.SetFlightInfo(drone.Progress(), drone.Speed(), scn.Field().Count())
	}
	draw := func() {
		scn.Draw()
		dbg.Draw()
	}
	graphics.Run(update, draw)

	scn.Unload()
	prefs.ShowFPS = dbg.ShowFPS
	prefs.ShowMemAlloc = dbg.ShowMemAlloc
	prefs.GridVisible = scn.GridVisible
	if err := engineconfig.Save(prefs); err != nil {
		log.Warnf("saving prefs: %v", err)
	}
}
