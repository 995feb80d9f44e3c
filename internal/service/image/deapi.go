package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// deapiClient talks to the DeAPI txt2img endpoint.
type deapiClient struct {
	apiKey     string
	baseURL    string
	model      string
	width      int
	height     int
	steps      int
	httpClient *http.Client
}

type txt2imgRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Seed   int64  `json:"seed"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Steps  int    `json:"steps"`
}

type txt2imgResponse struct {
	Data struct {
		Output []string `json:"output"`
	} `json:"data"`
}

// Txt2Img issues a synchronous generation request and returns the first
// output URL.
func (c *deapiClient) Txt2Img(ctx context.Context, prompt string, seed int64) (string, error) {
	body, err := json.Marshal(txt2imgRequest{
		Model:  c.model,
		Prompt: prompt,
		Seed:   seed,
		Width:  c.width,
		Height: c.height,
		Steps:  c.steps,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal txt2img request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/client/txt2img", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create txt2img request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("txt2img request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("non-200 response from image API: %d - %s", resp.StatusCode, string(respBody))
	}

	var parsed txt2imgResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode txt2img response: %w", err)
	}

	if len(parsed.Data.Output) == 0 {
		return "", fmt.Errorf("image API returned no output")
	}

	return parsed.Data.Output[0], nil
}
