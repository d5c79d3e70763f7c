// Package rendering paints ripple frames.
//
// Drawing goes through the Canvas interface. ImageCanvas rasterizes into an
// RGBA image with golang.org/x/image/vector; PictureRecorder captures the
// commands as a DisplayList that can be inspected or replayed later.
package rendering
