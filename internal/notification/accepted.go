package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"doodle-functions/internal/config"
	"doodle-functions/internal/response"
	"doodle-functions/pkg/aws/store"
	"doodle-functions/pkg/expo"
)

const acceptedLoggerName = "duel-accepted-notification"

type duelAcceptedResponse struct {
	Success  bool                `json:"success"`
	Opponent string              `json:"opponent,omitempty"`
	Notice   string              `json:"notice,omitempty"`
	Result   *expo.PublishResult `json:"result,omitempty"`
}

// DuelAcceptedHandler notifies a duel's challenger that the opponent
// accepted. The lookup direction is the mirror of DuelHandler: the opponent
// supplies the name, the challenger receives the push.
type DuelAcceptedHandler struct {
	logger *zap.Logger
	cfg    *config.Config

	storeClient store.ClientIFace
	expoClient  expo.ClientIFace
}

func NewDuelAcceptedHandler(cfg *config.Config) *DuelAcceptedHandler {
	return &DuelAcceptedHandler{
		logger:      cfg.Logger.Named(acceptedLoggerName),
		cfg:         cfg,
		storeClient: store.New(),
		expoClient:  expo.New(cfg.ExpoPushUrl),
	}
}

func (h *DuelAcceptedHandler) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	if event.RequestContext.HTTP.Method == http.MethodOptions {
		return response.Options()
	}

	var req duelRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil || req.DuelId == "" {
		return response.Err(http.StatusBadRequest, "Missing duel_id", "")
	}

	if err := h.storeClient.Connect(); err != nil {
		h.logger.Error("store connection failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Internal server error", "")
	}

	duel, err := h.storeClient.GetDuel(h.cfg.DuelsTable, req.DuelId)
	if err != nil {
		h.logger.Error("duel lookup failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Internal server error", "")
	} else if duel == nil {
		return response.Err(http.StatusNotFound, "duel not found", "")
	}

	opponent, err := h.storeClient.GetProfile(h.cfg.ProfilesTable, duel.OpponentId)
	if err != nil {
		h.logger.Error("opponent lookup failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Internal server error", "")
	} else if opponent == nil {
		return response.Err(http.StatusNotFound, "opponent not found", "")
	}

	challenger, err := h.storeClient.GetProfile(h.cfg.ProfilesTable, duel.ChallengerId)
	if err != nil {
		h.logger.Error("challenger lookup failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Internal server error", "")
	} else if challenger == nil {
		return response.Err(http.StatusNotFound, "challenger not found", "")
	}

	msg := &expo.Message{
		Title: "Duel Accepted! 🎨",
		Body:  fmt.Sprintf("%s accepted your %s duel — time to draw!", opponent.Username, gamemodeDisplayName(duel.Gamemode)),
		Data: map[string]any{
			"type":   eventTypeDuelAccepted,
			"duelId": duel.Id,
			"screen": screenDuelFriend,
			"params": map[string]any{"duelId": duel.Id},
		},
		Sound: expo.DefaultSound,
		Badge: 1,
	}

	result, err := sendToProfile(h.expoClient, challenger, msg)
	if err != nil {
		h.logger.Error("push dispatch failed", zap.Error(err))
		return dispatchErrorResponse(err)
	}
	if result == nil {
		h.logger.Info("challenger has no push token", zap.String("duelId", duel.Id))
		return response.OK(duelAcceptedResponse{
			Success:  true,
			Opponent: opponent.Username,
			Notice:   noTokenNotice,
		})
	}

	h.logger.Info("duel accepted notification sent",
		zap.String("duelId", duel.Id),
		zap.String("gamemode", duel.Gamemode),
	)
	return response.OK(duelAcceptedResponse{
		Success:  true,
		Opponent: opponent.Username,
		Result:   result,
	})
}
