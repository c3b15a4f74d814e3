package notification

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
	"doodle-functions/pkg/aws/store"
	"doodle-functions/pkg/expo"
	customError "doodle-functions/pkg/errors"
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

func strPtr(s string) *string {
	return &s
}

func Test_NewDuelHandler(t *testing.T) {
	h := NewDuelHandler(config.NewTestConfig())
	assert.NotNil(t, h)
}

func Test_DuelHandle_EndToEnd(t *testing.T) {
	cfg := config.NewTestConfig()

	duel := &store.Duel{
		Id:           "d1",
		ChallengerId: "u1",
		OpponentId:   "u2",
		Word:         "cat",
		Gamemode:     "doodleDuel",
	}
	challenger := &store.Profile{Id: "u1", Username: "alice"}
	opponent := &store.Profile{Id: "u2", Username: "bob", ExpoPushToken: strPtr("ExponentPushToken[xyz]")}

	mockStoreClient := new(store.MockClient)
	mockStoreClient.On(store.ConnectMethod).Return(nil)
	mockStoreClient.On(store.GetDuelMethod, cfg.DuelsTable, "d1").Return(duel, nil)
	mockStoreClient.On(store.GetProfileMethod, cfg.ProfilesTable, "u1").Return(challenger, nil)
	mockStoreClient.On(store.GetProfileMethod, cfg.ProfilesTable, "u2").Return(opponent, nil)

	gatewayResult := &expo.PublishResult{StatusCode: http.StatusOK, Body: json.RawMessage(`{"data":{"status":"ok"}}`)}
	mockExpoClient := new(expo.MockClient)
	mockExpoClient.On(expo.PublishMethod, mock.Anything).Return(gatewayResult, nil)

	h := &DuelHandler{
		logger:      cfg.Logger,
		cfg:         cfg,
		storeClient: mockStoreClient,
		expoClient:  mockExpoClient,
	}

	rsp := h.Handle(context.Background(), postEvent(`{"duel_id":"d1"}`))

	require.Equal(t, http.StatusOK, rsp.StatusCode)

	// Exactly one push, addressed to the opponent's device
	mockExpoClient.AssertNumberOfCalls(t, expo.PublishMethod, 1)
	sentMsg := mockExpoClient.Calls[0].Arguments.Get(0).(*expo.Message)
	assert.Equal(t, "ExponentPushToken[xyz]", sentMsg.To)
	assert.Equal(t, "Duel Challenge! ⚔️", sentMsg.Title)
	assert.Contains(t, sentMsg.Body, "alice")
	assert.Contains(t, sentMsg.Body, "Doodle Duel")
	assert.Equal(t, "DuelFriend", sentMsg.Data["screen"])
	assert.Equal(t, "d1", sentMsg.Data["duelId"])

	var body duelNotificationResponse
	require.NoError(t, json.Unmarshal([]byte(rsp.Body), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "alice", body.Challenger)
	require.NotNil(t, body.Result)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, string(body.Result.Body))
}

func Test_DuelHandle(t *testing.T) {
	mockErr := errors.New("mock error")

	duel := &store.Duel{
		Id:           "d1",
		ChallengerId: "u1",
		OpponentId:   "u2",
		Gamemode:     "doodleDuel",
	}
	challenger := &store.Profile{Id: "u1", Username: "alice"}

	tests := []struct {
		name          string
		body          string
		duel          *store.Duel
		duelErr       error
		challenger    *store.Profile
		opponent      *store.Profile
		publishErr    error
		expStatusCode int
		expStoreCall  bool
		expPublish    bool
		expNotice     string
	}{
		{
			name:          "Happy path - Notification dispatched",
			body:          `{"duel_id":"d1"}`,
			duel:          duel,
			challenger:    challenger,
			opponent:      &store.Profile{Id: "u2", ExpoPushToken: strPtr("ExpoPushToken[abc]")},
			expStatusCode: http.StatusOK,
			expStoreCall:  true,
			expPublish:    true,
		},
		{
			name:          "Happy path - Opponent without token is a no-op",
			body:          `{"duel_id":"d1"}`,
			duel:          duel,
			challenger:    challenger,
			opponent:      &store.Profile{Id: "u2"},
			expStatusCode: http.StatusOK,
			expStoreCall:  true,
			expNotice:     noTokenNotice,
		},
		{
			name:          "Happy path - Empty token string is a no-op",
			body:          `{"duel_id":"d1"}`,
			duel:          duel,
			challenger:    challenger,
			opponent:      &store.Profile{Id: "u2", ExpoPushToken: strPtr("")},
			expStatusCode: http.StatusOK,
			expStoreCall:  true,
			expNotice:     noTokenNotice,
		},
		{
			name:          "Sad path - Missing duel_id",
			body:          `{}`,
			expStatusCode: http.StatusBadRequest,
		},
		{
			name:          "Sad path - Invalid JSON body",
			body:          `{"duel_id"`,
			expStatusCode: http.StatusBadRequest,
		},
		{
			name:          "Sad path - Duel not found",
			body:          `{"duel_id":"d1"}`,
			expStatusCode: http.StatusNotFound,
			expStoreCall:  true,
		},
		{
			name:          "Sad path - Duel lookup error",
			body:          `{"duel_id":"d1"}`,
			duelErr:       mockErr,
			expStatusCode: http.StatusInternalServerError,
			expStoreCall:  true,
		},
		{
			name:          "Sad path - Challenger not found",
			body:          `{"duel_id":"d1"}`,
			duel:          duel,
			expStatusCode: http.StatusNotFound,
			expStoreCall:  true,
		},
		{
			name:          "Sad path - Opponent not found",
			body:          `{"duel_id":"d1"}`,
			duel:          duel,
			challenger:    challenger,
			expStatusCode: http.StatusNotFound,
			expStoreCall:  true,
		},
		{
			name:          "Sad path - Malformed token rejected before dispatch",
			body:          `{"duel_id":"d1"}`,
			duel:          duel,
			challenger:    challenger,
			opponent:      &store.Profile{Id: "u2", ExpoPushToken: strPtr("fcm:not-an-expo-token")},
			expStatusCode: http.StatusBadRequest,
			expStoreCall:  true,
		},
		{
			name:          "Sad path - Gateway failure",
			body:          `{"duel_id":"d1"}`,
			duel:          duel,
			challenger:    challenger,
			opponent:      &store.Profile{Id: "u2", ExpoPushToken: strPtr("ExponentPushToken[xyz]")},
			publishErr:    customError.UpstreamErr{Service: "expo", Detail: "DeviceNotRegistered"},
			expStatusCode: http.StatusInternalServerError,
			expStoreCall:  true,
			expPublish:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()

			mockStoreClient := new(store.MockClient)
			mockStoreClient.On(store.ConnectMethod).Return(nil)
			mockStoreClient.On(store.GetDuelMethod, cfg.DuelsTable, "d1").Return(tt.duel, tt.duelErr)
			mockStoreClient.On(store.GetProfileMethod, cfg.ProfilesTable, "u1").Return(tt.challenger, nil)
			mockStoreClient.On(store.GetProfileMethod, cfg.ProfilesTable, "u2").Return(tt.opponent, nil)

			mockExpoClient := new(expo.MockClient)
			mockExpoClient.On(expo.PublishMethod, mock.Anything).
				Return(&expo.PublishResult{StatusCode: http.StatusOK}, tt.publishErr)

			h := &DuelHandler{
				logger:      cfg.Logger,
				cfg:         cfg,
				storeClient: mockStoreClient,
				expoClient:  mockExpoClient,
			}

			rsp := h.Handle(context.Background(), postEvent(tt.body))

			require.Equal(t, tt.expStatusCode, rsp.StatusCode)
			if !tt.expStoreCall {
				mockStoreClient.AssertNotCalled(t, store.GetDuelMethod, mock.Anything, mock.Anything)
			}
			if !tt.expPublish {
				mockExpoClient.AssertNotCalled(t, expo.PublishMethod, mock.Anything)
			}
			if tt.expNotice != "" {
				var body duelNotificationResponse
				require.NoError(t, json.Unmarshal([]byte(rsp.Body), &body))
				assert.True(t, body.Success)
				assert.Equal(t, tt.expNotice, body.Notice)
				assert.Nil(t, body.Result)
			}
		})
	}
}
