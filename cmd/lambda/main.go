package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"doodle-functions/internal/config"
	"doodle-functions/internal/notification"
	"doodle-functions/internal/scoring"
)

// EnvFunction selects which handler this Lambda deployment serves.
const EnvFunction = "FUNCTION"

type handlerIFace interface {
	Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse
}

func main() {
	cfg := config.New()
	if err := cfg.Load(); err != nil {
		panic(err)
	}

	h := newHandler(os.Getenv(EnvFunction), cfg)
	lambda.Start(func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return h.Handle(ctx, event), nil
	})
}

func newHandler(name string, cfg *config.Config) handlerIFace {
	switch name {
	case "score-drawing-gpt4o":
		return scoring.NewScoreHandler(cfg)
	case "duel-notification":
		return notification.NewDuelHandler(cfg)
	case "duel-accepted-notification":
		return notification.NewDuelAcceptedHandler(cfg)
	case "friend-request-notification":
		return notification.NewFriendRequestHandler(cfg)
	default:
		return scoring.NewGuessHandler(cfg)
	}
}
