package services

import (
	"image/color"
	"sort"

	"cardify.app/pkg/passkit"
)

// DefaultPassTemplate kartta şablon seçilmemişse kullanılan pass düzeni.
const DefaultPassTemplate = "businessCard"

// PassTemplate bir pass düzeninin renkleri ve hangi alan gruplarını içerdiği.
type PassTemplate struct {
	Name          string
	Description   string
	Foreground    color.RGBA
	Background    color.RGBA
	Label         color.RGBA
	WithAuxiliary bool
	WithBack      bool
}

var passTemplates = map[string]PassTemplate{
	"businessCard": {
		Name:          "businessCard",
		Description:   "Business card",
		Foreground:    passkit.MustParseRGB("rgb(255, 255, 255)"),
		Background:    passkit.MustParseRGB("rgb(29, 78, 216)"),
		Label:         passkit.MustParseRGB("rgb(219, 234, 254)"),
		WithAuxiliary: true,
		WithBack:      true,
	},
	"minimal": {
		Name:        "minimal",
		Description: "Business card",
		Foreground:  passkit.MustParseRGB("rgb(17, 24, 39)"),
		Background:  passkit.MustParseRGB("rgb(255, 255, 255)"),
		Label:       passkit.MustParseRGB("rgb(107, 114, 128)"),
	},
}

// LookupPassTemplate şablonu adıyla bulur. Boş ad varsayılan şablondur.
func LookupPassTemplate(name string) (PassTemplate, error) {
	if name == "" {
		name = DefaultPassTemplate
	}
	tpl, ok := passTemplates[name]
	if !ok {
		return PassTemplate{}, ErrTemplateNotFound
	}
	return tpl, nil
}

// PassTemplateNames kayıtlı şablon adlarını sıralı döndürür.
func PassTemplateNames() []string {
	names := make([]string, 0, len(passTemplates))
	for name := range passTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
