package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1/models/gemini-1.5-flash:generateContent"

// GeminiService forwards free-text questions to the Gemini API and relays
// the first candidate's answer. Failures degrade to an error string so
// callers always get a displayable answer back.
type GeminiService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var (
	geminiService *GeminiService
	geminiOnce    sync.Once
)

// GetGeminiService returns the singleton instance configured from the
// environment.
func GetGeminiService() *GeminiService {
	geminiOnce.Do(func() {
		geminiService = NewGeminiService(os.Getenv("GEMINI_API_KEY"), defaultGeminiBaseURL)
	})
	return geminiService
}

func NewGeminiService(apiKey, baseURL string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GetChatResponse asks Gemini for a brief answer to the question. A non-2xx
// status or transport failure returns a synthetic "Error: ..." answer
// instead of an error value.
func (gs *GeminiService) GetChatResponse(question string) string {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: question + ". Answer very briefly."}}},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	url := fmt.Sprintf("%s?key=%s", gs.baseURL, gs.apiKey)
	resp, err := gs.httpClient.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Sprintf("Error: %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "Error: empty response"
	}

	return parsed.Candidates[0].Content.Parts[0].Text
}
