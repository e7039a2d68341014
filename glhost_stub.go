//go:build !gl

package main

import "wavesurface/internal/glwave"

// glHost is empty in builds without the gl tag.
type glHost struct{}

func newGLHost(bool, int, int, string) (*glHost, error) { return nil, glwave.ErrUnavailable }

func (h *glHost) Close() {}
