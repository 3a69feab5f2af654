// Package main provides the conversion API server.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/tooconvert/conversion-api/cmd/conversion-api/handlers"
	"github.com/tooconvert/conversion-api/cmd/conversion-api/middleware"
	"github.com/tooconvert/conversion-api/internal/config"
	"github.com/tooconvert/conversion-api/internal/office"
	"github.com/tooconvert/conversion-api/internal/pdfops"
	"github.com/tooconvert/conversion-api/internal/scratch"
)

// NewRouter wires capabilities and handlers into the route table. Both
// the flat routes and the /convert aliases dispatch to the same handler
// methods; there is exactly one implementation per operation.
func NewRouter(logger zerolog.Logger, cfg *config.Config) (http.Handler, error) {
	store, err := scratch.NewStore(cfg.Scratch.Dir)
	if err != nil {
		return nil, err
	}

	// Capabilities are resolved once here, not per request.
	engine := pdfops.NewEngine()
	converter := office.New(cfg.Office.BinaryPath, cfg.Office.Timeout)

	pdfHandler := handlers.NewPDFHandler(logger, engine)
	imageHandler := handlers.NewImageHandler(logger, cfg.Image.JPEGQuality, cfg.Image.FontPath)
	textHandler := handlers.NewTextHandler(logger)
	convertHandler := handlers.NewConvertHandler(logger, engine, store, converter, cfg.Image.JPEGQuality)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)
	r.Use(chimiddleware.Timeout(cfg.Limits.RequestTimeout))
	r.Use(middleware.BodyLimit(cfg.Limits.MaxUploadBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","message":"Server is running"}`))
	})

	// PDF operations
	r.Post("/merge-pdf", pdfHandler.Merge)
	r.Post("/split-pdf", pdfHandler.Split)
	r.Post("/extract-text", pdfHandler.ExtractText)
	r.Post("/compress-pdf", pdfHandler.Compress)

	// Image operations
	r.Post("/resize-image", imageHandler.Resize)
	r.Post("/convert-format", imageHandler.ConvertFormat)
	r.Post("/watermark", imageHandler.Watermark)
	r.Post("/compress-image", imageHandler.CompressImage)
	r.Post("/generate-qr", imageHandler.GenerateQR)

	// Text utilities
	r.Post("/base64-encode", textHandler.Base64Encode)
	r.Post("/base64-decode", textHandler.Base64Decode)
	r.Post("/format-json", textHandler.FormatJSON)

	// Cross-format conversions, with legacy flat aliases.
	r.Post("/pdf-to-docx", convertHandler.PDFToDocx)
	r.Post("/pdf-to-doc", convertHandler.PDFToDocx)
	r.Route("/convert", func(r chi.Router) {
		r.Post("/pdf-to-docx", convertHandler.PDFToDocx)
		r.Post("/docx-to-pdf", convertHandler.DocxToPDF)
		r.Post("/pdf-to-image", convertHandler.PDFToImage)
		r.Post("/image-to-pdf", convertHandler.ImageToPDF)
		r.Post("/ppt-to-pdf", convertHandler.PPTToPDF)
		r.Post("/excel-to-pdf", convertHandler.ExcelToPDF)
	})

	return r, nil
}
