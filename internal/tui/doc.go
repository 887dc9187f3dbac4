// Package tui provides the terminal renderer for the trellis dashboard.
//
// The dashboard loop owns all state; this package only paints the frames it
// is handed and reports key presses back. A Screen runs a bubbletea program
// on the alternate screen (raw mode, mouse capture) whose model is a passive
// canvas: it stores the latest frame, renders it with lipgloss, and forwards
// keys through a buffered channel. The program never quits on its own.
//
// Usage:
//
//	screen := tui.NewScreen()
//	screen.Start()
//	defer screen.Close() // restores the terminal
//
//	stream.StartKeys(screen)
//	loop := dashboard.NewLoop(opts, nav, src, screen, stream)
//	err := loop.Run(ctx)
//
// Render is the pure drawing function behind the canvas and can be used
// directly to inspect what a frame looks like at a given size.
package tui
