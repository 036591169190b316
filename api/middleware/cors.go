package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func Cors(origins []*string) fiber.Handler {
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin != nil && *origin != "" {
			allowed = append(allowed, *origin)
		}
	}
	if len(allowed) == 0 {
		allowed = append(allowed, "*")
	}

	return cors.New(cors.Config{
		AllowOrigins:  strings.Join(allowed, ","),
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition",
	})
}
