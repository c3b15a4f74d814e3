package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	customError "doodle-functions/pkg/errors"
)

const defaultRemark = "No remark provided"

var firstIntPattern = regexp.MustCompile(`\d+`)

// GuessResult is the structured-variant reply after normalization.
type GuessResult struct {
	Guess      string
	Similarity int
	Hint       string
}

type guessReply struct {
	Guess string `json:"guess"`
	// Models occasionally return the similarity as a quoted number, so this
	// stays loosely typed until toScore.
	Similarity any    `json:"similarity"`
	Hint       string `json:"hint"`
}

// parseGuessReply parses the constrained JSON reply of the structured
// variant. An unparsable reply is an upstream fault; a missing or
// non-numeric similarity defaults to 0 and the result is clamped to [0,100].
func parseGuessReply(reply string) (*GuessResult, error) {
	var raw guessReply
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &raw); err != nil {
		return nil, customError.UpstreamErr{
			Service: "openai",
			Detail:  fmt.Sprintf("unparsable model reply: %v", err),
		}
	}

	return &GuessResult{
		Guess:      raw.Guess,
		Similarity: clampScore(toScore(raw.Similarity)),
		Hint:       raw.Hint,
	}, nil
}

// parseScoreReply extracts "score - remark" from the text variant's reply.
// The score is the first integer token, 0 when absent, clamped to [0,100].
// The remark is everything after the first separator.
func parseScoreReply(reply string) (int, string) {
	line := stripCodeFence(reply)

	score := 0
	if match := firstIntPattern.FindString(line); match != "" {
		score, _ = strconv.Atoi(match)
	}

	remark := defaultRemark
	if _, after, found := strings.Cut(line, "-"); found && strings.TrimSpace(after) != "" {
		remark = strings.TrimSpace(after)
	}

	return clampScore(score), remark
}

// stripCodeFence removes optional markdown fence markers around a reply.
func stripCodeFence(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimPrefix(trimmed, "json")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func toScore(val any) int {
	switch v := val.(type) {
	case float64:
		return int(math.Round(v))
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return int(math.Round(n))
		}
	}
	return 0
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// normalizeWord case-folds and collapses whitespace so guesses and target
// words compare loosely.
func normalizeWord(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), " ")
}
