package service

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// VertexClient generates text with a Gemini model hosted on Vertex AI.
type VertexClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewVertexClient resolves Application Default Credentials and opens a
// Vertex AI client for the project and location.
func NewVertexClient(ctx context.Context, projectID, location, model string) (*VertexClient, error) {
	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}

	client, err := genai.NewClient(ctx, projectID, location, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}

	return &VertexClient{
		client: client,
		model:  client.GenerativeModel(normalizeModel(model)),
	}, nil
}

// GenerateText returns the text parts of the first candidate joined together.
func (c *VertexClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String(), nil
}

// Close releases the underlying client
func (c *VertexClient) Close() error {
	return c.client.Close()
}
