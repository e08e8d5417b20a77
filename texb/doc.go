// Package texb implements a decoder for TEXB texture bank files.
//
// A texture bank is one packed atlas image plus a list of named sub-images.
// Each sub-image is described by a quad: four vertices, each carrying a
// raster position and a texture coordinate into the atlas. Decoding unpacks
// the atlas into straight-alpha RGBA and resamples every sub-image out of it,
// so that each can be used as a standalone image.
//
// The package also registers the "texb" format with the image package; the
// image returned by image.Decode is the atlas.
//
// Encoding is not supported.
package texb
