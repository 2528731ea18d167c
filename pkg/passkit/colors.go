package passkit

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// tailwindPalette kart stillerinde kullanılan renk adlarının RGB karşılıkları.
var tailwindPalette = map[string]uint32{
	"white": 0xffffff,
	"black": 0x000000,

	"slate-100": 0xf1f5f9, "slate-200": 0xe2e8f0, "slate-300": 0xcbd5e1, "slate-400": 0x94a3b8, "slate-500": 0x64748b,
	"slate-600": 0x475569, "slate-700": 0x334155, "slate-800": 0x1e293b, "slate-900": 0x0f172a,

	"gray-100": 0xf3f4f6, "gray-200": 0xe5e7eb, "gray-300": 0xd1d5db, "gray-400": 0x9ca3af, "gray-500": 0x6b7280,
	"gray-600": 0x4b5563, "gray-700": 0x374151, "gray-800": 0x1f2937, "gray-900": 0x111827,

	"red-100": 0xfee2e2, "red-200": 0xfecaca, "red-300": 0xfca5a5, "red-400": 0xf87171, "red-500": 0xef4444,
	"red-600": 0xdc2626, "red-700": 0xb91c1c, "red-800": 0x991b1b, "red-900": 0x7f1d1d,

	"orange-100": 0xffedd5, "orange-200": 0xfed7aa, "orange-300": 0xfdba74, "orange-400": 0xfb923c, "orange-500": 0xf97316,
	"orange-600": 0xea580c, "orange-700": 0xc2410c, "orange-800": 0x9a3412, "orange-900": 0x7c2d12,

	"yellow-100": 0xfef9c3, "yellow-200": 0xfef08a, "yellow-300": 0xfde047, "yellow-400": 0xfacc15, "yellow-500": 0xeab308,
	"yellow-600": 0xca8a04, "yellow-700": 0xa16207, "yellow-800": 0x854d0e, "yellow-900": 0x713f12,

	"green-100": 0xdcfce7, "green-200": 0xbbf7d0, "green-300": 0x86efac, "green-400": 0x4ade80, "green-500": 0x22c55e,
	"green-600": 0x16a34a, "green-700": 0x15803d, "green-800": 0x166534, "green-900": 0x14532d,

	"emerald-100": 0xd1fae5, "emerald-200": 0xa7f3d0, "emerald-300": 0x6ee7b7, "emerald-400": 0x34d399, "emerald-500": 0x10b981,
	"emerald-600": 0x059669, "emerald-700": 0x047857, "emerald-800": 0x065f46, "emerald-900": 0x064e3b,

	"blue-100": 0xdbeafe, "blue-200": 0xbfdbfe, "blue-300": 0x93c5fd, "blue-400": 0x60a5fa, "blue-500": 0x3b82f6,
	"blue-600": 0x2563eb, "blue-700": 0x1d4ed8, "blue-800": 0x1e40af, "blue-900": 0x1e3a8a,

	"indigo-100": 0xe0e7ff, "indigo-200": 0xc7d2fe, "indigo-300": 0xa5b4fc, "indigo-400": 0x818cf8, "indigo-500": 0x6366f1,
	"indigo-600": 0x4f46e5, "indigo-700": 0x4338ca, "indigo-800": 0x3730a3, "indigo-900": 0x312e81,

	"purple-100": 0xf3e8ff, "purple-200": 0xe9d5ff, "purple-300": 0xd8b4fe, "purple-400": 0xc084fc, "purple-500": 0xa855f7,
	"purple-600": 0x9333ea, "purple-700": 0x7e22ce, "purple-800": 0x6b21a8, "purple-900": 0x581c87,

	"pink-100": 0xfce7f3, "pink-200": 0xfbcfe8, "pink-300": 0xf9a8d4, "pink-400": 0xf472b6, "pink-500": 0xec4899,
	"pink-600": 0xdb2777, "pink-700": 0xbe185d, "pink-800": 0x9d174d, "pink-900": 0x831843,

	"rose-100": 0xffe4e6, "rose-200": 0xfecdd3, "rose-300": 0xfda4af, "rose-400": 0xfb7185, "rose-500": 0xf43f5e,
	"rose-600": 0xe11d48, "rose-700": 0xbe123c, "rose-800": 0x9f1239, "rose-900": 0x881337,
}

var utilityPrefixes = []string{"bg-", "text-", "from-", "via-", "to-"}

// ParseColor bir stil belirtecini renge çevirir. Kabul edilenler: "#rrggbb", "#rgb",
// "rgb(r, g, b)" ve "bg-blue-500", "text-white" ya da
// "bg-gradient-to-r from-blue-500 to-blue-700" gibi sınıf listeleri (ilk tanınan renk).
func ParseColor(token string) (color.RGBA, bool) {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return color.RGBA{}, false
	}
	if c, ok := parseHex(token); ok {
		return c, true
	}
	if c, ok := parseRGB(token); ok {
		return c, true
	}

	for _, word := range strings.Fields(token) {
		for _, prefix := range utilityPrefixes {
			name, found := strings.CutPrefix(word, prefix)
			if !found {
				continue
			}
			if v, ok := tailwindPalette[name]; ok {
				return rgbaFromHex(v), true
			}
		}
	}
	return color.RGBA{}, false
}

// FormatRGB rengi pass.json'ın beklediği "rgb(r, g, b)" biçiminde yazar.
func FormatRGB(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// MustParseRGB "rgb(...)" veya hex sabitlerini renge çevirir; geçersizse panikler.
// Sadece paket seviyesindeki sabit şablon renkleri için kullanılır.
func MustParseRGB(s string) color.RGBA {
	c, ok := ParseColor(s)
	if !ok {
		panic("passkit: geçersiz renk sabiti " + s)
	}
	return c
}

func rgbaFromHex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

func parseHex(s string) (color.RGBA, bool) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, false
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return rgbaFromHex(uint32(v)), true
}

func parseRGB(s string) (color.RGBA, bool) {
	inner, ok := strings.CutPrefix(s, "rgb(")
	if !ok {
		return color.RGBA{}, false
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return color.RGBA{}, false
	}
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return color.RGBA{}, false
	}
	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, false
		}
		rgb[i] = uint8(n)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, true
}
