package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/smartlabel/smartlabel-backend/pkg/config"
)

// Capability is the external text generation dependency. Implementations
// take a prompt and return the raw model output.
type Capability interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

const anthropicVersion = "bedrock-2023-05-31"

const systemPrompt = "You are a specialized food labeling expert. Respond only with valid JSON " +
	"that matches the requested format. Do not include any explanatory text."

// BedrockCapability generates label content through Amazon Bedrock
type BedrockCapability struct {
	client    *bedrockruntime.Client
	modelID   string
	maxTokens int
	timeout   time.Duration
}

// NewBedrockCapability creates a capability backed by Bedrock InvokeModel
func NewBedrockCapability(awsCfg aws.Config, cfg *config.BedrockConfig) *BedrockCapability {
	return &BedrockCapability{
		client:    bedrockruntime.NewFromConfig(awsCfg),
		modelID:   cfg.ModelID,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Invoke sends the prompt to the configured model and returns its text
// output. Each invocation is bounded by the configured Bedrock timeout,
// independently of the caller's generation deadline.
func (b *BedrockCapability) Invoke(ctx context.Context, prompt string) (string, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        b.maxTokens,
		System:           systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal model request: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invocation failed: %w", err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", fmt.Errorf("empty model response")
	}

	return resp.Content[0].Text, nil
}
