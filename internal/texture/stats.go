package texture

import "image"

// Stats summarizes the alpha channel of a texture.
type Stats struct {
	Width, Height int
	MinAlpha      uint8
	MaxAlpha      uint8
	Opaque        int // texels with alpha 255
}

// OpaqueRatio returns the fraction of fully opaque texels.
func (s Stats) OpaqueRatio() float64 {
	total := s.Width * s.Height
	if total == 0 {
		return 0
	}
	return float64(s.Opaque) / float64(total)
}

// AlphaStats scans the alpha channel of tex.
func AlphaStats(tex *image.NRGBA) Stats {
	b := tex.Bounds()
	s := Stats{Width: b.Dx(), Height: b.Dy(), MinAlpha: 255}
	if s.Width == 0 || s.Height == 0 {
		s.MinAlpha = 0
		return s
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := tex.Pix[tex.PixOffset(x, y)+3]
			if a < s.MinAlpha {
				s.MinAlpha = a
			}
			if a > s.MaxAlpha {
				s.MaxAlpha = a
			}
			if a == 255 {
				s.Opaque++
			}
		}
	}
	return s
}
