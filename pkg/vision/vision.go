package vision

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const maxReplyTokens = 300

// Usage is the token accounting reported by the model for one completion.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Per-1K-token USD rates used for the logged cost estimate.
var costRates = map[string]struct{ prompt, completion float64 }{
	"gpt-4-vision-preview": {0.01, 0.03},
	"gpt-4o":               {0.005, 0.015},
	"gpt-4o-mini":          {0.00015, 0.0006},
}

// EstimateCost returns the approximate USD cost of a completion. Unknown
// models estimate at the gpt-4o rate.
func EstimateCost(model string, usage Usage) float64 {
	rate, ok := costRates[model]
	if !ok {
		rate = costRates["gpt-4o"]
	}
	return float64(usage.PromptTokens)/1000*rate.prompt +
		float64(usage.CompletionTokens)/1000*rate.completion
}

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Complete(ctx context.Context, model string, instruction string, imageDataUrl string) (string, Usage, error)
}

type Client struct {
	oaClient *openai.Client
}

func New(apiKey string) *Client {
	return &Client{
		oaClient: openai.NewClient(apiKey),
	}
}

// Complete sends one image and one instruction to the model and returns the
// raw reply text. The instruction is expected to constrain the reply format;
// no parsing happens here.
func (c *Client) Complete(ctx context.Context, model string, instruction string, imageDataUrl string) (string, Usage, error) {
	req := openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxReplyTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: instruction,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageDataUrl,
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
	}

	rsp, err := c.oaClient.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", Usage{}, err
	}
	if len(rsp.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("model returned no choices")
	}

	usage := Usage{
		PromptTokens:     rsp.Usage.PromptTokens,
		CompletionTokens: rsp.Usage.CompletionTokens,
		TotalTokens:      rsp.Usage.TotalTokens,
	}
	return rsp.Choices[0].Message.Content, usage, nil
}
