package vision

import (
	"context"

	"github.com/stretchr/testify/mock"
)

const (
	CompleteMethod = "Complete"
)

// Ensure MockClient implements ClientIFace
var _ ClientIFace = (*MockClient)(nil)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Complete(ctx context.Context, model string, instruction string, imageDataUrl string) (string, Usage, error) {
	args := m.Called(ctx, model, instruction, imageDataUrl)
	return args.String(0), args.Get(1).(Usage), args.Error(2)
}
