// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package distfield converts 8-bit coverage masks into signed distance
// fields.
//
// The output encoding maps signed texel distance d (positive inside the
// shape) to a byte:
//
//	value = round(clamp(0.5 + d/(2*Pad), 0, 1) * 255)
//
// so 0x80 lies on the shape edge, values above it are inside, and the
// representable range spans Pad texels on either side of the edge.
package distfield

import "math"

// Pad is the number of texels of border added on each side of the input
// when converting, giving the field room to represent distances beyond
// the shape edge.
const Pad = 4

const unset = math.MaxFloat64

// FromCoverage converts a width x height 8-bit coverage mask into a
// signed distance field of size (width+2*Pad) x (height+2*Pad).
//
// Distances are seeded on edge texels from the coverage value itself,
// which recovers the sub-texel edge position from antialiased input, and
// propagated outward with a two-pass chamfer transform.
func FromCoverage(coverage []byte, width, height int) []byte {
	outW := width + 2*Pad
	outH := height + 2*Pad

	inside := make([]bool, outW*outH)
	alpha := make([]float64, outW*outH)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := float64(coverage[y*width+x]) / 255
			i := (y+Pad)*outW + (x + Pad)
			alpha[i] = a
			inside[i] = a >= 0.5
		}
	}

	dist := make([]float64, outW*outH)
	for i := range dist {
		dist[i] = unset
	}

	// Seed edge texels. A texel is on the edge when it is partially
	// covered or when a 4-neighbor is on the other side of the contour;
	// the coverage value locates the edge within the texel.
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			i := y*outW + x
			if isEdge(inside, alpha, x, y, outW, outH) {
				dist[i] = math.Abs(0.5 - alpha[i])
			}
		}
	}

	chamfer(dist, outW, outH)

	out := make([]byte, outW*outH)
	for i, d := range dist {
		if d == unset {
			// No edge anywhere: uniform mask.
			if inside[i] {
				out[i] = 255
			}
			continue
		}
		if !inside[i] {
			d = -d
		}
		v := 0.5 + d/(2*Pad)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		out[i] = byte(math.Round(v * 255))
	}
	return out
}

func isEdge(inside []bool, alpha []float64, x, y, w, h int) bool {
	i := y*w + x
	if alpha[i] > 0 && alpha[i] < 1 {
		return true
	}
	in := inside[i]
	if x > 0 && inside[i-1] != in {
		return true
	}
	if x < w-1 && inside[i+1] != in {
		return true
	}
	if y > 0 && inside[i-w] != in {
		return true
	}
	if y < h-1 && inside[i+w] != in {
		return true
	}
	return false
}

// chamfer runs a forward and a backward pass propagating minimum texel
// distances with 3x3 neighborhood weights 1 and sqrt(2).
func chamfer(dist []float64, w, h int) {
	const diag = math.Sqrt2

	relax := func(i, j int, weight float64) {
		if dist[j]+weight < dist[i] {
			dist[i] = dist[j] + weight
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if x > 0 {
				relax(i, i-1, 1)
			}
			if y > 0 {
				relax(i, i-w, 1)
				if x > 0 {
					relax(i, i-w-1, diag)
				}
				if x < w-1 {
					relax(i, i-w+1, diag)
				}
			}
		}
	}
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			i := y*w + x
			if x < w-1 {
				relax(i, i+1, 1)
			}
			if y < h-1 {
				relax(i, i+w, 1)
				if x < w-1 {
					relax(i, i+w+1, diag)
				}
				if x > 0 {
					relax(i, i+w-1, diag)
				}
			}
		}
	}
}
