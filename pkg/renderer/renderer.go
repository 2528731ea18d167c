// Package renderer Fiber html şablonlarını ortak verilerle render eder.
package renderer

import (
	"cardify.app/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Ortak view anahtarları
const (
	TitleKeyView   = "Title"
	MessageKeyView = "Message"
	StatusKeyView  = "Status"
)

// Render şablonu layout ile birlikte verilen HTTP durumuyla render eder.
// Şablon hatası loglanır ve düz metin 500 yanıtına düşer.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status int) error {
	if data == nil {
		data = fiber.Map{}
	}
	c.Status(status)

	var err error
	if layout != "" {
		err = c.Render(view, data, layout)
	} else {
		err = c.Render(view, data)
	}
	if err != nil {
		configslog.Log.Error("Şablon render edilemedi",
			zap.String("view", view),
			zap.String("layout", layout),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).SendString("Sayfa oluşturulamadı")
	}
	return nil
}

// RenderError hata sayfasını (404 veya 500) render eder.
func RenderError(c *fiber.Ctx, status int, title, message string) error {
	view := "errors/500"
	if status == fiber.StatusNotFound {
		view = "errors/404"
	}
	return Render(c, view, "layouts/public_layout", fiber.Map{
		TitleKeyView:   title,
		MessageKeyView: message,
		StatusKeyView:  status,
	}, status)
}
