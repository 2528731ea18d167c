package routes

import (
	"os"
	"time"

	"cardify.app/configs/configslog"

	"github.com/gofiber/fiber/v2"
)

// Serve uygulamayı addr üzerinde dinler. Dinleme başarısız olursa hatayı hemen
// döndürür; stop kanalından sinyal gelirse sunucuyu timeout içinde kapatır.
func Serve(app *fiber.App, addr string, stop <-chan os.Signal, timeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return err
	case sig := <-stop:
		configslog.SLog.Infof("Kapatma sinyali alındı (%s), sunucu kapatılıyor...", sig)
		return app.ShutdownWithTimeout(timeout)
	}
}
