/*
Package gemini is the generative-text adapter. It wraps one outbound HTTP call
to the Gemini API with a bounded timeout and normalizes the reply to the raw
candidate text. There are deliberately no retries: callers treat any failure
as immediate input to their fallback branch, so a slow model never stacks
extra latency onto a request.
*/
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Gemini API Configuration ---
const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"
	requestTimeout = 30 * time.Second
)

// --- Structs for Gemini API Request/Response ---

type payload struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type apiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client is the generative-text adapter. Construct once at startup and share;
// it holds no per-request state.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Generate sends a text prompt and returns the model's raw reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.call(ctx, payload{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
}

// GenerateVision sends a prompt together with an inline image.
func (c *Client) GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	return c.call(ctx, payload{
		Contents: []content{{Parts: []part{
			{Text: prompt},
			{InlineData: &inlineData{
				MimeType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(image),
			}},
		}}},
	})
}

func (c *Client) call(ctx context.Context, pl payload) (string, error) {
	body, err := json.Marshal(pl)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API returned non-200 status: %s, Body: %s", resp.Status, string(errBody))
	}

	var geminiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("no content found in gemini response")
}
