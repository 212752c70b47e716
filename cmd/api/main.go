package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"booktracker/internal/book"
	"booktracker/internal/cover"
	"booktracker/internal/httpx"
	"booktracker/internal/ocr"
	"booktracker/internal/platform/gemini"
	"booktracker/internal/platform/openlibrary"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	geminiAPIKey := getEnv("GEMINI_API_KEY", "")
	if geminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set: OCR and cover description endpoints will fail")
	}

	bookRepository := book.NewMemoryRepository()
	bookService := book.NewService(bookRepository)

	geminiClient := gemini.NewClient(geminiAPIKey)
	openLibraryClient := openlibrary.NewClient("booktracker/1.0", 2)

	coverService := cover.NewService(openLibraryClient, geminiClient)

	bookHandler := book.NewHTTPHandler(bookService)
	ocrHandler := ocr.NewHTTPHandler(geminiClient)
	coverHandler := cover.NewHTTPHandler(bookService, coverService)

	router := newRouter(bookHandler, ocrHandler, coverHandler)

	rps, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	rateLimit := httpx.NewRateLimitMiddleware(rps, 20)

	var handler http.Handler = router
	handler = rateLimit.Middleware(handler)
	handler = httpx.RequestSizeLimitMiddleware(ocr.MaxImageBytes + 1<<20)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		handler = httpx.CORSMiddleware(strings.Split(origins, ","))(handler)
	}
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", serverAddress)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func newRouter(bookHandler *book.HTTPHandler, ocrHandler *ocr.HTTPHandler, coverHandler *cover.HTTPHandler) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.HandleFunc("GET /api/books", bookHandler.List)
	router.HandleFunc("POST /api/books", bookHandler.Create)
	router.HandleFunc("GET /api/books/{id}", bookHandler.GetByID)
	router.HandleFunc("PUT /api/books/{id}", bookHandler.Update)
	router.HandleFunc("DELETE /api/books/{id}", bookHandler.Delete)
	router.HandleFunc("GET /api/books/search/{query}", bookHandler.Search)
	router.HandleFunc("POST /api/books/check-duplicate", bookHandler.CheckDuplicate)
	router.HandleFunc("GET /api/books/{id}/cover", coverHandler.GetCover)

	router.HandleFunc("POST /api/ocr/analyze", ocrHandler.Analyze)

	return router
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
