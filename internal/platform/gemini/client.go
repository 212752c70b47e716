package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrMissingAPIKey is returned when the client is constructed without a credential.
var ErrMissingAPIKey = errors.New("gemini: missing API key")

const defaultModel = "gemini-2.5-pro"

type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com",
		model:   defaultModel,
	}
}

// BookDetails is what the vision model extracts from a cover photo.
type BookDetails struct {
	Title      string  `json:"title"`
	Author     *string `json:"author,omitempty"`
	Confidence float64 `json:"confidence"`
}

// CoverDescription is a generated textual description of a book cover.
type CoverDescription struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

const extractSystemPrompt = `You are an expert at extracting book information from book cover images.
Analyze the image and extract the book title and author name.
Respond with JSON in this exact format:
{"title": "Book Title", "author": "Author Name", "confidence": 0.95}

Guidelines:
- Extract the main title of the book (not subtitle)
- Extract the author's name if visible
- Set confidence between 0 and 1 based on text clarity
- If you can't find the title, set title to empty string
- If you can't find author, set author to empty string or null`

// ExtractBookDetails asks the vision model for the title and author
// printed on a book cover image.
func (c *Client) ExtractBookDetails(ctx context.Context, imageData []byte, mimeType string) (BookDetails, error) {
	req := generateContentRequest{
		SystemInstruction: &content{Parts: []part{{Text: extractSystemPrompt}}},
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageData),
				}},
				{Text: "Extract the book title and author from this book cover image."},
			},
		}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &schema{
				Type: "object",
				Properties: map[string]schema{
					"title":      {Type: "string"},
					"author":     {Type: "string"},
					"confidence": {Type: "number"},
				},
				Required: []string{"title", "confidence"},
			},
		},
	}

	raw, err := c.generateContent(ctx, req)
	if err != nil {
		return BookDetails{}, fmt.Errorf("extract book details: %w", err)
	}

	var details struct {
		Title      string  `json:"title"`
		Author     string  `json:"author"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return BookDetails{}, fmt.Errorf("extract book details: decode model output: %w", err)
	}

	result := BookDetails{
		Title:      details.Title,
		Confidence: details.Confidence,
	}
	if a := strings.TrimSpace(details.Author); a != "" {
		result.Author = &a
	}
	return result, nil
}

// DescribeCover asks the text model for a visual description of the cover
// of a known book.
func (c *Client) DescribeCover(ctx context.Context, title, author string) (CoverDescription, error) {
	bookInfo := fmt.Sprintf("%q", title)
	if author != "" {
		bookInfo = fmt.Sprintf("%q by %s", title, author)
	}

	prompt := fmt.Sprintf(`Generate a detailed visual description for the book cover of %s.
Focus on:
- Typography and title design
- Color scheme and visual style
- Key visual elements or imagery
- Overall aesthetic and mood

Respond with JSON in this format:
{"description": "detailed cover description", "confidence": 0.85}`, bookInfo)

	req := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &schema{
				Type: "object",
				Properties: map[string]schema{
					"description": {Type: "string"},
					"confidence":  {Type: "number"},
				},
				Required: []string{"description", "confidence"},
			},
		},
	}

	raw, err := c.generateContent(ctx, req)
	if err != nil {
		return CoverDescription{}, fmt.Errorf("describe cover: %w", err)
	}

	var desc CoverDescription
	if err := json.Unmarshal([]byte(raw), &desc); err != nil {
		return CoverDescription{}, fmt.Errorf("describe cover: decode model output: %w", err)
	}
	return desc, nil
}

type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type       string            `json:"type"`
	Properties map[string]schema `json:"properties,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generateContent issues a generateContent call and returns the first
// candidate's text.
func (c *Client) generateContent(ctx context.Context, reqBody generateContentRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", u, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from model")
	}
	text := out.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}
