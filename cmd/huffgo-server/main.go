// Command huffgo-server exposes the Huffman pipeline over HTTP, adapted
// from the original CLI-adjacent echo server: POST /compress and
// POST /decompress each accept a multipart file upload and stream back the
// container or the reconstructed file. This is an additional entrypoint
// over the same internal/pipeline the CLI in cmd/huffgo uses; it carries
// no core semantics of its own.
package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoware "github.com/labstack/echo/v4/middleware"

	"github.com/nwillc/huffgo/internal/logging"
	"github.com/nwillc/huffgo/internal/routes"
)

func main() {
	logging.Setup(false)

	e := echo.New()
	e.Use(echoware.Logger())
	e.Use(echoware.Recover())
	e.Use(echoware.CORSWithConfig(echoware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))

	e.POST("/compress", routes.CompressFile)
	e.POST("/decompress", routes.DecompressFile)

	if err := e.Start(":6969"); err != nil {
		logging.Fail("server error", err)
	}
}
