// Package media moves captured images across the wire as text.
//
// A single image travels as base64 JPEG bounded to a long edge of 1920
// pixels. A collection travels as one JSON array of those strings, which is
// the value placed in fields such as a project's imageData.
package media
