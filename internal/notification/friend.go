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

const friendLoggerName = "friend-request-notification"

type friendRequest struct {
	SenderId   string `json:"sender_id"`
	ReceiverId string `json:"receiver_id"`
}

type friendRequestResponse struct {
	Success bool                `json:"success"`
	Sender  string              `json:"sender,omitempty"`
	Notice  string              `json:"notice,omitempty"`
	Result  *expo.PublishResult `json:"result,omitempty"`
}

// FriendRequestHandler notifies a player that another player sent them a
// friend request.
type FriendRequestHandler struct {
	logger *zap.Logger
	cfg    *config.Config

	storeClient store.ClientIFace
	expoClient  expo.ClientIFace
}

func NewFriendRequestHandler(cfg *config.Config) *FriendRequestHandler {
	return &FriendRequestHandler{
		logger:      cfg.Logger.Named(friendLoggerName),
		cfg:         cfg,
		storeClient: store.New(),
		expoClient:  expo.New(cfg.ExpoPushUrl),
	}
}

func (h *FriendRequestHandler) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	if event.RequestContext.HTTP.Method == http.MethodOptions {
		return response.Options()
	}

	var req friendRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil || req.SenderId == "" || req.ReceiverId == "" {
		return response.Err(http.StatusBadRequest, "Missing sender_id or receiver_id", "")
	}

	if err := h.storeClient.Connect(); err != nil {
		h.logger.Error("store connection failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Internal server error", "")
	}

	sender, err := h.storeClient.GetProfile(h.cfg.ProfilesTable, req.SenderId)
	if err != nil {
		h.logger.Error("sender lookup failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Internal server error", "")
	} else if sender == nil {
		return response.Err(http.StatusNotFound, "sender not found", "")
	}

	receiver, err := h.storeClient.GetProfile(h.cfg.ProfilesTable, req.ReceiverId)
	if err != nil {
		h.logger.Error("receiver lookup failed", zap.Error(err))
		return response.Err(http.StatusInternalServerError, "Internal server error", "")
	} else if receiver == nil {
		return response.Err(http.StatusNotFound, "receiver not found", "")
	}

	msg := &expo.Message{
		Title: "New Friend Request! 👋",
		Body:  fmt.Sprintf("%s sent you a friend request", sender.Username),
		Data: map[string]any{
			"type":     eventTypeFriendRequest,
			"senderId": sender.Id,
			"screen":   screenFriends,
		},
		Sound: expo.DefaultSound,
		Badge: 1,
	}

	result, err := sendToProfile(h.expoClient, receiver, msg)
	if err != nil {
		h.logger.Error("push dispatch failed", zap.Error(err))
		return dispatchErrorResponse(err)
	}
	if result == nil {
		h.logger.Info("receiver has no push token", zap.String("receiverId", receiver.Id))
		return response.OK(friendRequestResponse{
			Success: true,
			Sender:  sender.Username,
			Notice:  noTokenNotice,
		})
	}

	h.logger.Info("friend request notification sent", zap.String("receiverId", receiver.Id))
	return response.OK(friendRequestResponse{
		Success: true,
		Sender:  sender.Username,
		Result:  result,
	})
}
