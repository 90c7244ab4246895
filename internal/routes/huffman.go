// Package routes implements the HTTP handlers for the compress/decompress
// facade in cmd/huffgo-server, adapted from the original echo routes to
// call internal/pipeline instead of hand-rolling tree construction inline.
package routes

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nwillc/huffgo/internal/config"
	"github.com/nwillc/huffgo/internal/pipeline"
)

// CompressFile handles POST /compress: it stores the uploaded file to a
// temp path, runs the packed-mode encode pipeline against it, and streams
// the resulting container back to the client.
func CompressFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file required")
	}

	inputPath, cleanup, err := stageUpload(file)
	if err != nil {
		return err
	}
	defer cleanup()

	outputPath := inputPath + ".huff"
	defer os.Remove(outputPath)

	cfg := config.Config{InputPath: inputPath, OutputPath: outputPath, Mode: config.Encode}
	if err := pipeline.Encode(cfg, io.Discard); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "compression failed: "+err.Error())
	}

	return streamFile(c, outputPath, "compressed_"+file.Filename)
}

// DecompressFile handles POST /decompress: it stores the uploaded
// container to a temp path, runs the packed-mode decode pipeline, and
// streams the reconstructed file back to the client.
func DecompressFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file required")
	}

	inputPath, cleanup, err := stageUpload(file)
	if err != nil {
		return err
	}
	defer cleanup()

	outputPath := inputPath + ".out"
	defer os.Remove(outputPath)

	cfg := config.Config{InputPath: inputPath, OutputPath: outputPath, Mode: config.Decode}
	if err := pipeline.Decode(cfg); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "decompression failed: "+err.Error())
	}

	return streamFile(c, outputPath, strings.TrimSuffix(file.Filename, ".huff"))
}

// stageUpload copies an uploaded multipart file to a uniquely named temp
// path and returns a cleanup function that removes it.
func stageUpload(file *multipart.FileHeader) (string, func(), error) {
	src, err := file.Open()
	if err != nil {
		return "", nil, echo.NewHTTPError(http.StatusInternalServerError, "cannot open uploaded file")
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "huffgo-*-"+filepath.Base(file.Filename))
	if err != nil {
		return "", nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to create temp file")
	}
	defer dst.Close()
	tempPath := dst.Name()

	if _, err := io.Copy(dst, src); err != nil {
		return "", nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to copy file data")
	}

	return tempPath, func() { os.Remove(tempPath) }, nil
}

func streamFile(c echo.Context, path, downloadName string) error {
	f, err := os.Open(path)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to open result file")
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentType, "application/octet-stream")
	c.Response().Header().Set(
		echo.HeaderContentDisposition,
		"attachment; filename=\""+downloadName+"\"",
	)
	if _, err := io.Copy(c.Response(), f); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to write response")
	}
	return nil
}
