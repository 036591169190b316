package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Recover turns handler panics into errors for handler.HandleError and logs the stack.
func Recover() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			slog.Error("Recovered from panic",
				"panic", e,
				"method", c.Method(),
				"path", c.Path(),
				"stack", string(debug.Stack()))
		},
	})
}
