// Package views sunucu tarafında render edilen html şablonlarını gömer.
package views

import "embed"

// FS şablon kökü: "layouts/public_layout.html", "public/card_view.html" ...
//
//go:embed layouts/*.html public/*.html errors/*.html
var FS embed.FS
