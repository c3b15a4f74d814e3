// Package httpserver hosts the Lambda handlers behind a plain HTTP server
// for local development, adapting each request into the API Gateway event
// shape the handlers expect.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"doodle-functions/internal/config"
	"doodle-functions/internal/notification"
	"doodle-functions/internal/scoring"
)

const port = "8080"

type handlerIFace interface {
	Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse
}

func Run(cfg *config.Config) error {
	mux := NewMux(cfg)

	err := http.ListenAndServe(fmt.Sprintf(":%s", port), mux)
	if err != nil && errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func NewMux(cfg *config.Config) *http.ServeMux {
	mux := http.NewServeMux()
	register(mux, "/functions/guess-drawing", scoring.NewGuessHandler(cfg))
	register(mux, "/functions/score-drawing-gpt4o", scoring.NewScoreHandler(cfg))
	register(mux, "/functions/duel-notification", notification.NewDuelHandler(cfg))
	register(mux, "/functions/duel-accepted-notification", notification.NewDuelAcceptedHandler(cfg))
	register(mux, "/functions/friend-request-notification", notification.NewFriendRequestHandler(cfg))
	return mux
}

func register(mux *http.ServeMux, path string, h handlerIFace) {
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		event := events.APIGatewayV2HTTPRequest{
			RequestContext: events.APIGatewayV2HTTPRequestContext{
				HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
					Method: r.Method,
					Path:   r.URL.Path,
				},
			},
			Headers: flattenHeaders(r.Header),
			Body:    string(body),
		}

		rsp := h.Handle(r.Context(), event)
		for key, val := range rsp.Headers {
			w.Header().Set(key, val)
		}
		w.WriteHeader(rsp.StatusCode)
		io.WriteString(w, rsp.Body)
	})
}

func flattenHeaders(header http.Header) map[string]string {
	flat := make(map[string]string, len(header))
	for key := range header {
		flat[key] = header.Get(key)
	}
	return flat
}
