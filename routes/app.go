package routes

import (
	"errors"
	"net/http"

	"cardify.app/configs/configslog"
	"cardify.app/pkg/apierrors"
	"cardify.app/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

// NewApp şablon motoru ve hata yöneticisi ayarlanmış Fiber uygulamasını oluşturur
// ve tüm rotaları kaydeder.
func NewApp(deps *Dependencies) *fiber.App {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")

	app := fiber.New(fiber.Config{
		AppName:      "Cardify",
		Views:        engine,
		ErrorHandler: errorHandler,
		BodyLimit:    1 * 1024 * 1024,
	})
	SetupRoutes(app, deps)
	return app
}

// errorHandler handler'lardan dönen ve yakalanmamış hataları JSON olarak yazar.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("İşlenmemiş hata",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return apierrors.Respond(c, code, apierrors.KindInternal, "Internal Server Error")
	}
	return apierrors.Respond(c, code, apierrors.KindInvalidInput, http.StatusText(code))
}
