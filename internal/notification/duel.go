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

const duelLoggerName = "duel-notification"

type duelRequest struct {
	DuelId string `json:"duel_id"`
}

type duelNotificationResponse struct {
	Success    bool                `json:"success"`
	Challenger string              `json:"challenger,omitempty"`
	Notice     string              `json:"notice,omitempty"`
	Result     *expo.PublishResult `json:"result,omitempty"`
}

// DuelHandler notifies a duel's opponent that they have been challenged.
type DuelHandler struct {
	logger *zap.Logger
	cfg    *config.Config

	storeClient store.ClientIFace
	expoClient  expo.ClientIFace
}

func NewDuelHandler(cfg *config.Config) *DuelHandler {
	return &DuelHandler{
		logger:      cfg.Logger.Named(duelLoggerName),
		cfg:         cfg,
		storeClient: store.New(),
		expoClient:  expo.New(cfg.ExpoPushUrl),
	}
}

func (h *DuelHandler) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
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

	// Resolve duel, then the challenger's name, then the opponent's token
	duel, err := h.storeClient.GetDuel(h.cfg.DuelsTable, req.DuelId)
	if err != nil {
		h.logger.Error("duel lookup failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Internal server error", "")
	} else if duel == nil {
		return response.Err(http.StatusNotFound, "duel not found", "")
	}

	challenger, err := h.storeClient.GetProfile(h.cfg.ProfilesTable, duel.ChallengerId)
	if err != nil {
		h.logger.Error("challenger lookup failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Internal server error", "")
	} else if challenger == nil {
		return response.Err(http.StatusNotFound, "challenger not found", "")
	}

	opponent, err := h.storeClient.GetProfile(h.cfg.ProfilesTable, duel.OpponentId)
	if err != nil {
		h.logger.Error("opponent lookup failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Internal server error", "")
	} else if opponent == nil {
		return response.Err(http.StatusNotFound, "opponent not found", "")
	}

	msg := &expo.Message{
		Title: "Duel Challenge! ⚔️",
		Body:  fmt.Sprintf("%s challenged you to a %s duel!", challenger.Username, gamemodeDisplayName(duel.Gamemode)),
		Data: map[string]any{
			"type":   eventTypeDuelChallenge,
			"duelId": duel.Id,
			"screen": screenDuelFriend,
			"params": map[string]any{"duelId": duel.Id},
		},
		Sound: expo.DefaultSound,
		Badge: 1,
	}

	result, err := sendToProfile(h.expoClient, opponent, msg)
	if err != nil {
		h.logger.Error("push dispatch failed", zap.Error(err))
		return dispatchErrorResponse(err)
	}
	if result == nil {
		h.logger.Info("opponent has no push token", zap.String("duelId", duel.Id))
		return response.OK(duelNotificationResponse{
			Success:    true,
			Challenger: challenger.Username,
			Notice:     noTokenNotice,
		})
	}

	h.logger.Info("duel challenge notification sent",
		zap.String("duelId", duel.Id),
		zap.String("gamemode", duel.Gamemode),
	)
	return response.OK(duelNotificationResponse{
		Success:    true,
		Challenger: challenger.Username,
		Result:     result,
	})
}
