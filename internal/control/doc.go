// Package control turns user intent into new projectiles.
//
// A [Launcher] holds the pending launch speed. Level events (a key held
// down) nudge the speed every tick; the fire edge spawns a ball through
// [Launcher.Fire] and bumps the speed for the next shot:
//
//	l := control.NewLauncher(control.DefaultLaunch(), 378.4)
//	switch control.ActionFor(key) {
//	case control.Fire:
//	    h, err := l.Fire(world)
//	}
package control
