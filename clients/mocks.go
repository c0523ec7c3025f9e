package clients

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pantherasmp/models"
)

// MockLLMClient is a mock implementation of LLMClient
type MockLLMClient struct {
	mock.Mock
}

func NewMockLLMClient(name string) *MockLLMClient {
	m := &MockLLMClient{}
	m.On("Name").Return(name).Maybe()
	return m
}

func (m *MockLLMClient) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// WithCompletion configures the mock to answer every prompt with text
func (m *MockLLMClient) WithCompletion(text string) *MockLLMClient {
	m.On("Complete", mock.Anything, mock.Anything).Return(text, nil)
	return m
}

// WithError configures the mock to fail every prompt with err
func (m *MockLLMClient) WithError(err error) *MockLLMClient {
	m.On("Complete", mock.Anything, mock.Anything).Return("", err)
	return m
}

// MockKillFeedSink is a mock implementation of KillFeedSink
type MockKillFeedSink struct {
	mock.Mock
}

func NewMockKillFeedSink(name string) *MockKillFeedSink {
	m := &MockKillFeedSink{}
	m.On("Name").Return(name).Maybe()
	return m
}

func (m *MockKillFeedSink) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockKillFeedSink) PublishKill(ctx context.Context, event models.KillEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockDialer is a mock implementation of Dialer
type MockDialer struct {
	mock.Mock
}

func (m *MockDialer) Dial(ctx context.Context) (WorldClient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(WorldClient), args.Error(1)
}
