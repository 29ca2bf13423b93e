package aieps

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// renderPreview rasterizes the filled paths into a coverage image of the page, scaled down so that its larger side is at most maxSize pixels.
func renderPreview(paths []Path, width, height float64, maxSize int) *image.Alpha {
	scale := 1.0
	if size := math.Max(width, height); float64(maxSize) < size {
		scale = float64(maxSize) / size
	}
	w := max(1, int(math.Ceil(width*scale)))
	h := max(1, int(math.Ceil(height*scale)))

	img := image.NewAlpha(image.Rect(0, 0, w, h))
	ras := vector.NewRasterizer(w, h)
	pt := func(x, y float64) (float32, float32) {
		return float32(x * scale), float32((height - y) * scale)
	}
	for _, p := range paths {
		open := false
		for i := 0; i < len(p.d); {
			cmd := p.d[i]
			switch cmd {
			case MoveToCmd:
				if open {
					ras.ClosePath()
				}
				ras.MoveTo(pt(p.d[i+1], p.d[i+2]))
				open = true
			case LineToCmd:
				ras.LineTo(pt(p.d[i+1], p.d[i+2]))
			case CubeToCmd:
				x1, y1 := pt(p.d[i+1], p.d[i+2])
				x2, y2 := pt(p.d[i+3], p.d[i+4])
				x3, y3 := pt(p.d[i+5], p.d[i+6])
				ras.CubeTo(x1, y1, x2, y2, x3, y3)
			case CloseCmd:
				ras.ClosePath()
				open = false
			}
			i += cmdLen(cmd)
		}
		if open {
			// filled paths are implicitly closed
			ras.ClosePath()
		}
		ras.Draw(img, img.Bounds(), image.Opaque, image.Point{})
		ras.Reset(w, h)
	}
	return img
}
