// Package scoring implements the drawing-scoring handlers. Both variants
// send a player's drawing and a target word to a vision model and normalize
// its reply into a bounded score; they differ in the reply format they ask
// for (structured JSON vs a single "score - remark" line).
package scoring

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"doodle-functions/pkg/aws/s3"
	"doodle-functions/pkg/vision"
)

const pngDataUrlPrefix = "data:image/png;base64,"

func imageDataUrl(pngBase64 string) string {
	if strings.HasPrefix(pngBase64, "data:") {
		return pngBase64
	}
	return pngDataUrlPrefix + pngBase64
}

func decodePng(pngBase64 string) ([]byte, error) {
	raw := pngBase64
	if idx := strings.Index(raw, ","); idx != -1 && strings.HasPrefix(raw, "data:") {
		raw = raw[idx+1:]
	}
	return base64.StdEncoding.DecodeString(raw)
}

// archiveDrawing uploads the submitted PNG for later inspection. Failures
// are logged and never affect the scoring response.
func archiveDrawing(s3Client s3.ClientIFace, bucket string, word string, pngBase64 string, logger *zap.Logger) {
	png, err := decodePng(pngBase64)
	if err != nil {
		logger.Warn("failed to decode drawing for archive", zap.Error(err))
		return
	}

	if err := s3Client.Connect(); err != nil {
		logger.Warn("failed to connect drawing archive", zap.Error(err))
		return
	}

	keyWord := strings.ReplaceAll(normalizeWord(word), " ", "-")
	key := fmt.Sprintf("drawings/%s/%d.png", keyWord, time.Now().UnixNano())
	if err := s3Client.Put(bytes.NewReader(png), bucket, key); err != nil {
		logger.Warn("failed to archive drawing", zap.Error(err))
		return
	}
	logger.Info("drawing archived", zap.String("bucket", bucket), zap.String("key", key))
}

func logUsage(logger *zap.Logger, model string, usage vision.Usage) {
	logger.Info("model usage",
		zap.String("model", model),
		zap.Int("promptTokens", usage.PromptTokens),
		zap.Int("completionTokens", usage.CompletionTokens),
		zap.Int("totalTokens", usage.TotalTokens),
		zap.Float64("estimatedCostUsd", vision.EstimateCost(model, usage)),
	)
}
