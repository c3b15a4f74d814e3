package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"doodle-functions/internal/config"
	"doodle-functions/internal/response"
	"doodle-functions/pkg/aws/s3"
	"doodle-functions/pkg/vision"
)

const guessLoggerName = "guess-drawing"

const guessInstructionFormat = `You are judging a drawing-guessing game. ` +
	`Look at the drawing and respond ONLY with a JSON object in the form ` +
	`{"guess":"<the single noun this drawing most looks like>",` +
	`"similarity":<integer 0-100 rating how well the drawing depicts "%s">,` +
	`"hint":"<a short playful hint about the drawing>"}. ` +
	`Do not include any other text.`

type guessRequest struct {
	PngBase64  string `json:"pngBase64"`
	TargetWord string `json:"targetWord"`
}

type guessResponse struct {
	Success    bool         `json:"success"`
	Guess      string       `json:"guess"`
	Similarity int          `json:"similarity"`
	Hint       string       `json:"hint"`
	TargetWord string       `json:"targetWord"`
	TokenUsage vision.Usage `json:"tokenUsage"`
}

// GuessHandler serves the structured scoring variant: the model names the
// drawing, rates its similarity to the target word, and offers a hint. A
// guess that normalizes identically to the target forces the score to 100.
type GuessHandler struct {
	logger *zap.Logger
	cfg    *config.Config

	visionClient vision.ClientIFace
	s3Client     s3.ClientIFace
}

func NewGuessHandler(cfg *config.Config) *GuessHandler {
	return &GuessHandler{
		logger:       cfg.Logger.Named(guessLoggerName),
		cfg:          cfg,
		visionClient: vision.New(cfg.OpenAIKey),
		s3Client:     s3.New(),
	}
}

func (h *GuessHandler) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	if event.RequestContext.HTTP.Method == http.MethodOptions {
		return response.Options()
	}

	var req guessRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		return response.Err(http.StatusBadRequest, "Invalid request body", "")
	}
	if req.PngBase64 == "" || req.TargetWord == "" {
		return response.Err(http.StatusBadRequest, "Missing pngBase64 or targetWord", "")
	}

	instruction := fmt.Sprintf(guessInstructionFormat, req.TargetWord)
	reply, usage, err := h.visionClient.Complete(ctx, h.cfg.GuessModel, instruction, imageDataUrl(req.PngBase64))
	if err != nil {
		h.logger.Error("model call failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Scoring failed", err.Error())
	}
	logUsage(h.logger, h.cfg.GuessModel, usage)

	result, err := parseGuessReply(reply)
	if err != nil {
		h.logger.Error("model reply rejected", zap.Error(err), zap.String("reply", reply))
		return response.Err(http.StatusInternalServerError, "Scoring failed", err.Error())
	}

	// An exact guess wins outright regardless of the rated similarity
	if normalizeWord(result.Guess) == normalizeWord(req.TargetWord) {
		result.Similarity = 100
	}

	if h.cfg.ArchiveBucket != "" {
		archiveDrawing(h.s3Client, h.cfg.ArchiveBucket, req.TargetWord, req.PngBase64, h.logger)
	}

	h.logger.Info("drawing scored",
		zap.String("targetWord", req.TargetWord),
		zap.String("guess", result.Guess),
		zap.Int("similarity", result.Similarity),
	)
	return response.OK(guessResponse{
		Success:    true,
		Guess:      result.Guess,
		Similarity: result.Similarity,
		Hint:       result.Hint,
		TargetWord: req.TargetWord,
		TokenUsage: usage,
	})
}
