package services

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"pantherasmp/models"
)

// MockAdvisorService is a mock implementation of AdvisorService
type MockAdvisorService struct {
	mock.Mock
}

func (m *MockAdvisorService) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockAdvisorService) Decide(ctx context.Context, utterance string) mo.Option[string] {
	args := m.Called(ctx, utterance)
	return args.Get(0).(mo.Option[string])
}

// MockClassifierService is a mock implementation of ClassifierService
type MockClassifierService struct {
	mock.Mock
}

func (m *MockClassifierService) Classify(ctx context.Context, rawText, speaker string, beforeAdvise func()) models.Dispatch {
	args := m.Called(ctx, rawText, speaker, beforeAdvise)
	return args.Get(0).(models.Dispatch)
}

// MockPaletteService is a mock implementation of PaletteService
type MockPaletteService struct {
	mock.Mock
}

func (m *MockPaletteService) Execute(ctx context.Context, cmd models.Command) mo.Result[models.Outcome] {
	args := m.Called(ctx, cmd)
	return args.Get(0).(mo.Result[models.Outcome])
}

// MockKillFeedService is a mock implementation of KillFeedService
type MockKillFeedService struct {
	mock.Mock
}

func (m *MockKillFeedService) Inspect(ctx context.Context, msg models.ServerMessage) bool {
	args := m.Called(ctx, msg)
	return args.Bool(0)
}
