package store

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/stretchr/testify/mock"
)

const (
	ConnectMethod            = "Connect"
	ConnectWithSessionMethod = "ConnectWithSession"
	GetSessionMethod         = "GetSession"
	GetProfileMethod         = "GetProfile"
	GetDuelMethod            = "GetDuel"
)

// Ensure MockClient implements ClientIFace
var _ ClientIFace = (*MockClient)(nil)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Connect() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) ConnectWithSession(awsSession *session.Session) {
	_ = m.Called(awsSession)
}

func (m *MockClient) GetSession() *session.Session {
	args := m.Called()
	return args.Get(0).(*session.Session)
}

func (m *MockClient) GetProfile(table string, id string) (*Profile, error) {
	args := m.Called(table, id)
	profile, _ := args.Get(0).(*Profile)
	return profile, args.Error(1)
}

func (m *MockClient) GetDuel(table string, id string) (*Duel, error) {
	args := m.Called(table, id)
	duel, _ := args.Get(0).(*Duel)
	return duel, args.Error(1)
}
