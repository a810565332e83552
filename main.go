package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/devanshsoni/ocr-document-verification/client"
	"github.com/devanshsoni/ocr-document-verification/config"
	"github.com/devanshsoni/ocr-document-verification/handler"
	"github.com/devanshsoni/ocr-document-verification/service"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize Tesseract client
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	// Initialize Ollama LLM client. The service degrades to pattern-only
	// extraction when it is unavailable.
	var llmExtractor *service.LLMExtractor
	ollamaClient, err := client.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.LLMTimeout)
	if err != nil {
		log.Printf("Warning: Ollama client initialization failed: %v. LLM extraction will return empty results.", err)
		llmExtractor = service.NewLLMExtractor(nil)
	} else {
		llmExtractor = service.NewLLMExtractor(ollamaClient)
	}

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	documentService := service.NewDocumentService(tesseractClient, pdfProcessor, llmExtractor, cfg.MatchThreshold)

	// Initialize handler layer
	documentHandler := handler.NewDocumentHandler(documentService)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "OCR Document Verification",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		document := api.Group("/document")
		{
			document.POST("/extract", documentHandler.ExtractDocument)
			document.POST("/verify", documentHandler.VerifyDocument)
		}
	}

	// Start server
	log.Printf("Starting OCR Document Verification Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
