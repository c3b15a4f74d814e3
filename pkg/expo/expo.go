package expo

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	customError "doodle-functions/pkg/errors"
)

const (
	DefaultSound = "default"

	tokenPrefixLong  = "ExponentPushToken["
	tokenPrefixShort = "ExpoPushToken["
	tokenSuffix      = "]"
)

// Message is the push envelope accepted by the Expo push API.
type Message struct {
	To    string         `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data"`
	Sound string         `json:"sound"`
	Badge int            `json:"badge"`
}

// PublishResult carries the gateway's raw reply so callers can surface it
// unmodified.
type PublishResult struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

// IsPushToken reports whether s has the Expo push token format.
func IsPushToken(s string) bool {
	if !strings.HasSuffix(s, tokenSuffix) {
		return false
	}
	return strings.HasPrefix(s, tokenPrefixLong) || strings.HasPrefix(s, tokenPrefixShort)
}

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Publish(msg *Message) (*PublishResult, error)
}

type Client struct {
	pushUrl    string
	httpClient *http.Client
}

func New(pushUrl string) *Client {
	return &Client{
		pushUrl: pushUrl,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Publish sends one message to the push gateway. A non-2xx reply is an
// UpstreamErr carrying the gateway's response body.
func (c *Client) Publish(msg *Message) (*PublishResult, error) {
	reqBody, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.pushUrl, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	rsp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, customError.UpstreamErr{Service: "expo", Detail: err.Error()}
	}
	defer rsp.Body.Close()

	rspBody, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, customError.UpstreamErr{Service: "expo", Detail: err.Error()}
	}

	if rsp.StatusCode < http.StatusOK || rsp.StatusCode >= http.StatusMultipleChoices {
		return nil, customError.UpstreamErr{Service: "expo", Detail: string(rspBody)}
	}

	return &PublishResult{
		StatusCode: rsp.StatusCode,
		Body:       rspBody,
	}, nil
}
