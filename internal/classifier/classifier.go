/*
Package classifier calls the remote plant-disease model. Unlike the weather
adapter there is no fallback for disease identification, so every failure mode
(unconfigured endpoint, transport error, non-2xx, failure payload) surfaces as
an error the handler turns into a 5xx.
*/
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const requestTimeout = 30 * time.Second

// Prediction is the normalized result of one classification call.
type Prediction struct {
	Disease    string  `json:"disease"`
	Confidence float64 `json:"confidence,omitempty"`
}

type Client struct {
	endpoint string // base URL of the model service; empty disables the adapter
	http     *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

// Classify uploads the image to the model's /predict route and returns the
// predicted label.
func (c *Client) Classify(ctx context.Context, image []byte, filename, contentType string) (Prediction, error) {
	if c.endpoint == "" {
		return Prediction{}, fmt.Errorf("model API URL not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fw, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := fw.Write(image); err != nil {
		return Prediction{}, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Prediction{}, fmt.Errorf("failed to build upload: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint+"/predict", &body)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("model API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(resp.Body)
		return Prediction{}, fmt.Errorf("model API returned %s: %s", resp.Status, string(errBody))
	}

	var payload struct {
		Success    bool    `json:"success"`
		Disease    string  `json:"disease"`
		Confidence float64 `json:"confidence"`
		Error      string  `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Prediction{}, fmt.Errorf("failed to decode model response: %w", err)
	}
	if !payload.Success {
		if payload.Error == "" {
			payload.Error = "unknown error"
		}
		return Prediction{}, fmt.Errorf("model prediction failed: %s", payload.Error)
	}
	if payload.Disease == "" {
		payload.Disease = "Unknown disease"
	}

	return Prediction{Disease: payload.Disease, Confidence: payload.Confidence}, nil
}
