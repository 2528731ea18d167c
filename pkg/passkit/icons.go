package passkit

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// iconSizes Wallet'ın beklediği görseller ve piksel boyutları.
var iconSizes = []struct {
	name string
	w, h int
}{
	{"icon.png", 29, 29},
	{"icon@2x.png", 58, 58},
	{"logo.png", 160, 50},
	{"logo@2x.png", 320, 100},
}

// Icons verilen arka plan rengiyle icon ve logo görsellerini üretir. Aynı renk her
// zaman aynı PNG baytlarını verir.
func Icons(bg color.RGBA) (map[string][]byte, error) {
	accent := contrastColor(bg)
	out := make(map[string][]byte, len(iconSizes))
	for _, size := range iconSizes {
		img := image.NewRGBA(image.Rect(0, 0, size.w, size.h))
		draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

		// Ortada kare bir vurgu
		side := min(size.w, size.h) / 2
		x0, y0 := (size.w-side)/2, (size.h-side)/2
		draw.Draw(img, image.Rect(x0, y0, x0+side, y0+side), &image.Uniform{C: accent}, image.Point{}, draw.Src)

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
		out[size.name] = buf.Bytes()
	}
	return out, nil
}

// contrastColor arka plan açıksa siyah, koyuysa beyaz döndürür.
func contrastColor(c color.RGBA) color.RGBA {
	luma := 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
	if luma > 128*1000 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}
