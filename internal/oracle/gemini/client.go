// Package gemini is the Google Gemini oracle adapter.
package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/EmpoweredVote/DoseRight/internal/config"
	"github.com/EmpoweredVote/DoseRight/internal/oracle"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
	"google.golang.org/genai"
)

const name = "gemini"

func init() {
	oracle.Register(config.OracleGemini, func(ctx context.Context, cfg config.Config, lg *zap.Logger) (oracle.Oracle, error) {
		return NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, lg)
	})
}

// Client sends prompts to a Gemini model through the genai SDK.
type Client struct {
	client *genai.Client
	model  string
	lg     *zap.Logger
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, apiKey, model string, lg *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, config.ErrMissingGeminiKey
	}
	if model == "" {
		model = config.DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model, lg: lg}, nil
}

func (c *Client) Name() string {
	return name + ":" + c.model
}

// Complete answers a text prompt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "complete", len(prompt), genai.Text(prompt))
}

// Identify sends the image followed by prompt as a single user turn.
func (c *Client) Identify(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	return c.generate(ctx, "identify", len(prompt), contents)
}

func (c *Client) generate(ctx context.Context, op string, promptLen int, contents []*genai.Content) (string, error) {
	start := time.Now()
	oracle.LogRequest(c.lg, name, op, promptLen)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		oracle.LogError(c.lg, name, op, err)
		return "", fmt.Errorf("%w: gemini %s: %v", oracle.ErrUnavailable, op, err)
	}

	text := norm.NFC.String(resp.Text())
	oracle.LogResponse(c.lg, name, op, time.Since(start), len(text))
	return text, nil
}
