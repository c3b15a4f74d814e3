package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"doodle-functions/internal/config"
	"doodle-functions/pkg/vision"
)

func postEvent(body string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: http.MethodPost,
			},
		},
		Body: body,
	}
}

func optionsEvent() events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: http.MethodOptions,
			},
		},
	}
}

func Test_NewGuessHandler(t *testing.T) {
	h := NewGuessHandler(config.NewTestConfig())
	assert.NotNil(t, h)
}

func Test_GuessHandle_Options(t *testing.T) {
	cfg := config.NewTestConfig()
	h := &GuessHandler{logger: cfg.Logger, cfg: cfg}

	rsp := h.Handle(context.Background(), optionsEvent())

	assert.Equal(t, http.StatusOK, rsp.StatusCode)
	assert.Empty(t, rsp.Body)
}

func Test_GuessHandle(t *testing.T) {
	mockErr := errors.New("mock error")
	usage := vision.Usage{PromptTokens: 120, CompletionTokens: 30, TotalTokens: 150}

	tests := []struct {
		name          string
		body          string
		reply         string
		completeErr   error
		expStatusCode int
		expSimilarity int
		expGuess      string
		expModelCall  bool
	}{
		{
			name:          "Happy path - Scored drawing",
			body:          `{"pngBase64":"aGk=","targetWord":"cat"}`,
			reply:         `{"guess":"dog","similarity":35,"hint":"Four legs"}`,
			expStatusCode: http.StatusOK,
			expSimilarity: 35,
			expGuess:      "dog",
			expModelCall:  true,
		},
		{
			name:          "Happy path - Exact match forces 100",
			body:          `{"pngBase64":"aGk=","targetWord":"Ice  Cream"}`,
			reply:         `{"guess":"ice cream","similarity":55,"hint":"Cold treat"}`,
			expStatusCode: http.StatusOK,
			expSimilarity: 100,
			expGuess:      "ice cream",
			expModelCall:  true,
		},
		{
			name:          "Sad path - Missing pngBase64",
			body:          `{"targetWord":"cat"}`,
			expStatusCode: http.StatusBadRequest,
		},
		{
			name:          "Sad path - Missing targetWord",
			body:          `{"pngBase64":"aGk="}`,
			expStatusCode: http.StatusBadRequest,
		},
		{
			name:          "Sad path - Invalid JSON body",
			body:          `{"pngBase64":`,
			expStatusCode: http.StatusBadRequest,
		},
		{
			name:          "Sad path - Model call fails",
			body:          `{"pngBase64":"aGk=","targetWord":"cat"}`,
			completeErr:   mockErr,
			expStatusCode: http.StatusInternalServerError,
			expModelCall:  true,
		},
		{
			name:          "Sad path - Unparsable model reply",
			body:          `{"pngBase64":"aGk=","targetWord":"cat"}`,
			reply:         "definitely a cat",
			expStatusCode: http.StatusInternalServerError,
			expModelCall:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()

			mockVisionClient := new(vision.MockClient)
			mockVisionClient.On(vision.CompleteMethod, mock.Anything, cfg.GuessModel, mock.Anything, mock.Anything).
				Return(tt.reply, usage, tt.completeErr)

			h := &GuessHandler{
				logger:       cfg.Logger,
				cfg:          cfg,
				visionClient: mockVisionClient,
			}

			rsp := h.Handle(context.Background(), postEvent(tt.body))

			require.Equal(t, tt.expStatusCode, rsp.StatusCode)
			if !tt.expModelCall {
				mockVisionClient.AssertNotCalled(t, vision.CompleteMethod, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			if tt.expStatusCode == http.StatusOK {
				var body guessResponse
				require.NoError(t, json.Unmarshal([]byte(rsp.Body), &body))
				assert.True(t, body.Success)
				assert.Equal(t, tt.expGuess, body.Guess)
				assert.Equal(t, tt.expSimilarity, body.Similarity)
				assert.Equal(t, usage, body.TokenUsage)
				assert.GreaterOrEqual(t, body.Similarity, 0)
				assert.LessOrEqual(t, body.Similarity, 100)
			}
		})
	}
}

func Test_GuessHandle_Deterministic(t *testing.T) {
	cfg := config.NewTestConfig()

	mockVisionClient := new(vision.MockClient)
	mockVisionClient.On(vision.CompleteMethod, mock.Anything, cfg.GuessModel, mock.Anything, mock.Anything).
		Return(`{"guess":"cat","similarity":77,"hint":"Meow"}`, vision.Usage{}, nil)

	h := &GuessHandler{
		logger:       cfg.Logger,
		cfg:          cfg,
		visionClient: mockVisionClient,
	}
	event := postEvent(`{"pngBase64":"aGk=","targetWord":"dog"}`)

	first := h.Handle(context.Background(), event)
	second := h.Handle(context.Background(), event)

	require.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, first.Body, second.Body)
}
