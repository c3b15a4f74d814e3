// Package notification implements the social push handlers: duel challenge,
// duel accepted, and friend request. Each resolves the event's subjects in
// the store, builds a deep-linking push payload, and dispatches it through
// the Expo gateway.
package notification

import (
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"doodle-functions/internal/response"
	"doodle-functions/pkg/aws/store"
	"doodle-functions/pkg/expo"
	customError "doodle-functions/pkg/errors"
)

const (
	eventTypeDuelChallenge = "duel_challenge"
	eventTypeDuelAccepted  = "duel_accepted"
	eventTypeFriendRequest = "friend_request"

	screenDuelFriend = "DuelFriend"
	screenFriends    = "Friends"

	noTokenNotice = "no push token"
)

// Display names for known gamemode tags. Unknown tags fall back to the raw
// tag so a new mode never breaks notifications.
var gamemodeNames = map[string]string{
	"doodleDuel":  "Doodle Duel",
	"copycat":     "Copycat",
	"timedDoodle": "Timed Doodle",
}

func gamemodeDisplayName(tag string) string {
	if name, ok := gamemodeNames[tag]; ok {
		return name
	}
	return tag
}

// sendToProfile dispatches msg to the recipient's registered device.
// A recipient without a token is a benign no-op and returns (nil, nil);
// a malformed token is an InvalidRequestErr surfaced before any gateway
// call.
func sendToProfile(expoClient expo.ClientIFace, recipient *store.Profile, msg *expo.Message) (*expo.PublishResult, error) {
	if recipient.ExpoPushToken == nil || *recipient.ExpoPushToken == "" {
		return nil, nil
	}

	token := *recipient.ExpoPushToken
	if !expo.IsPushToken(token) {
		return nil, customError.InvalidRequestErr{Field: "expoPushToken", Reason: "is malformed"}
	}

	msg.To = token
	return expoClient.Publish(msg)
}

// dispatchErrorResponse maps a sendToProfile failure onto the error
// envelope: malformed token 400, gateway fault 500 with the gateway body.
func dispatchErrorResponse(err error) events.APIGatewayV2HTTPResponse {
	var upstreamErr customError.UpstreamErr
	if errors.As(err, &upstreamErr) {
		return response.Err(http.StatusInternalServerError, "Delivery failed", upstreamErr.Detail)
	}
	return response.FromError(err)
}
