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

const scoreLoggerName = "score-drawing-gpt4o"

const scoreInstructionFormat = `Rate how well this drawing depicts "%s" ` +
	`on a scale from 0 to 100, where 100 is unmistakable. ` +
	`Reply with exactly one line in the format: <score> - <short remark about the drawing>`

type scoreRequest struct {
	PngBase64 string `json:"pngBase64"`
	Word      string `json:"word"`
}

type scoreResponse struct {
	Success    bool         `json:"success"`
	Score      int          `json:"score"`
	Message    string       `json:"message"`
	TokenUsage vision.Usage `json:"tokenUsage"`
}

// ScoreHandler serves the text scoring variant: the model rates the drawing
// in a single "score - remark" line. The two variants deliberately keep
// their own prompts and reply formats.
type ScoreHandler struct {
	logger *zap.Logger
	cfg    *config.Config

	visionClient vision.ClientIFace
	s3Client     s3.ClientIFace
}

func NewScoreHandler(cfg *config.Config) *ScoreHandler {
	return &ScoreHandler{
		logger:       cfg.Logger.Named(scoreLoggerName),
		cfg:          cfg,
		visionClient: vision.New(cfg.OpenAIKey),
		s3Client:     s3.New(),
	}
}

func (h *ScoreHandler) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	if event.RequestContext.HTTP.Method == http.MethodOptions {
		return response.Options()
	}

	var req scoreRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		return response.Err(http.StatusBadRequest, "Invalid request body", "")
	}
	if req.PngBase64 == "" || req.Word == "" {
		return response.Err(http.StatusBadRequest, "Missing pngBase64 or word", "")
	}

	instruction := fmt.Sprintf(scoreInstructionFormat, req.Word)
	reply, usage, err := h.visionClient.Complete(ctx, h.cfg.ScoreModel, instruction, imageDataUrl(req.PngBase64))
	if err != nil {
		h.logger.Error("model call failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Scoring failed", err.Error())
	}
	logUsage(h.logger, h.cfg.ScoreModel, usage)

	score, remark := parseScoreReply(reply)

	if h.cfg.ArchiveBucket != "" {
		archiveDrawing(h.s3Client, h.cfg.ArchiveBucket, req.Word, req.PngBase64, h.logger)
	}

	h.logger.Info("drawing scored",
		zap.String("word", req.Word),
		zap.Int("score", score),
	)
	return response.OK(scoreResponse{
		Success:    true,
		Score:      score,
		Message:    remark,
		TokenUsage: usage,
	})
}
