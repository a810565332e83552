package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// DefaultMatchThreshold is the similarity a field comparison must reach to
// count as a match. Tunable via MATCH_THRESHOLD; observed deployments run
// anywhere between 0.8 and 0.95.
const DefaultMatchThreshold = 0.85

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OllamaURL         string
	OllamaModel       string
	LLMTimeout        time.Duration
	MatchThreshold    float64
	MaxFileSize       int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	ollamaURL := os.Getenv("OLLAMA_URL")

	ollamaModel := os.Getenv("OLLAMA_MODEL")
	if ollamaModel == "" {
		ollamaModel = "phi3"
	}

	llmTimeout := 60 * time.Second
	if v := os.Getenv("LLM_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			llmTimeout = time.Duration(secs) * time.Second
		} else {
			log.Printf("Ignoring invalid LLM_TIMEOUT_SECONDS %q", v)
		}
	}

	matchThreshold := float64(DefaultMatchThreshold)
	if v := os.Getenv("MATCH_THRESHOLD"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil && t > 0 && t <= 1 {
			matchThreshold = t
		} else {
			log.Printf("Ignoring invalid MATCH_THRESHOLD %q", v)
		}
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		OllamaURL:         ollamaURL,
		OllamaModel:       ollamaModel,
		LLMTimeout:        llmTimeout,
		MatchThreshold:    matchThreshold,
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
	}
}
