package expo

import (
	"github.com/stretchr/testify/mock"
)

const (
	PublishMethod = "Publish"
)

// Ensure MockClient implements ClientIFace
var _ ClientIFace = (*MockClient)(nil)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Publish(msg *Message) (*PublishResult, error) {
	args := m.Called(msg)
	result, _ := args.Get(0).(*PublishResult)
	return result, args.Error(1)
}
