// Package scene draws the demo subject for the halftone filter: a lit,
// slowly spinning unit cube seen through a perspective camera.
//
// Frames are rasterized on the CPU with gg and depend only on the frame
// time, so an animation can be rendered out of order or in parallel.
//
//	box := scene.NewBox(640, 360)
//	frame := box.Frame(1500 * time.Millisecond)
//	_ = frame.SavePNG("box.png")
package scene
