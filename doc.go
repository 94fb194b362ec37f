// Package particlefield is an ambient particle background for [Ebitengine].
//
// A [Field] keeps a population of slowly drifting points sized to its
// surface (one particle per 15000 px², at most 50), links every pair closer
// than 120px with a line whose opacity fades with distance, and paints a
// glowing dot for each particle. It re-renders once per display frame until
// it is unmounted, and replaces its whole population when the surface
// changes size.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	particlefield.Run(particlefield.RunConfig{
//		Title: "My Page", Width: 1280, Height: 720,
//		FadeIn: 0.8,
//	})
//
// To put the field behind your own content, create a [Layer] and draw the
// content in RunConfig.Foreground. Layer implements [ebiten.Game]:
//
//	layer := particlefield.NewLayer(particlefield.RunConfig{
//		Foreground: func(screen *ebiten.Image) { ui.Draw(screen) },
//	})
//	ebiten.RunGame(layer)
//
// # Hosts
//
// A Field never talks to a window directly. It is mounted on a [Host],
// which supplies the viewport size, resize notifications, a once-per-frame
// [Scheduler] and a [Drawable] to paint into. [Layer] is the ebiten host;
// the term subpackage hosts the same field in a terminal with tcell. Tests
// and headless tools drive a field with a [ManualScheduler].
//
// # Lifecycle
//
// A Field starts Idle. [Field.Mount] acquires the surface, seeds the
// population, renders the first frame and schedules the next; the field is
// then Running. [Field.Unmount] cancels the pending frame before releasing
// anything, so a callback the host fires late is a no-op. Stopped is
// terminal. If the host has no surface, Mount returns an error wrapping
// [ErrSurfaceUnavailable] and the field stops without drawing.
//
// # Debugging
//
// [Field.SetDebugMode] prints per-frame phase timings and pair counts to
// stderr. RunConfig.ShowFPS draws an FPS/TPS overlay, [Layer.Screenshot]
// queues a PNG capture, and [LoadScript] drives resizes and captures from a
// JSON script for visual checks.
//
// [Ebitengine]: https://ebitengine.org
package particlefield
