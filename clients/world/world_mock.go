package world

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"pantherasmp/models"
)

// MockWorldClient is a mock implementation of clients.WorldClient.
// Tests feed events through Emit and end the stream with Disconnect.
type MockWorldClient struct {
	mock.Mock
	events chan models.Event
	name   string
}

func NewMockWorldClient(username string) *MockWorldClient {
	m := &MockWorldClient{
		events: make(chan models.Event, 64),
		name:   username,
	}
	m.On("Close").Return(nil).Maybe()
	return m
}

// Emit queues an event for the consumer.
func (m *MockWorldClient) Emit(event models.Event) {
	m.events <- event
}

// Disconnect queues the final end event and closes the queue.
func (m *MockWorldClient) Disconnect(reason string) {
	m.events <- models.LifecycleEvent{Kind: models.LifecycleEnd, Reason: reason}
	close(m.events)
}

func (m *MockWorldClient) Events() <-chan models.Event {
	return m.events
}

func (m *MockWorldClient) Username() string {
	return m.name
}

func (m *MockWorldClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockWorldClient) Chat(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func (m *MockWorldClient) FindPlayer(ctx context.Context, name string) (mo.Option[models.Entity], error) {
	args := m.Called(ctx, name)
	return args.Get(0).(mo.Option[models.Entity]), args.Error(1)
}

func (m *MockWorldClient) Follow(ctx context.Context, target models.Entity, distance float64) error {
	args := m.Called(ctx, target, distance)
	return args.Error(0)
}

func (m *MockWorldClient) StopPathing(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWorldClient) FindBlock(ctx context.Context, name string, maxDistance int) (mo.Option[models.Block], error) {
	args := m.Called(ctx, name, maxDistance)
	return args.Get(0).(mo.Option[models.Block]), args.Error(1)
}

func (m *MockWorldClient) CollectBlock(ctx context.Context, block models.Block) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockWorldClient) NearestEntity(ctx context.Context, entityType models.EntityType) (mo.Option[models.Entity], error) {
	args := m.Called(ctx, entityType)
	return args.Get(0).(mo.Option[models.Entity]), args.Error(1)
}

func (m *MockWorldClient) Attack(ctx context.Context, target models.Entity) error {
	args := m.Called(ctx, target)
	return args.Error(0)
}

func (m *MockWorldClient) InventoryItems(ctx context.Context) ([]models.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockWorldClient) TossStack(ctx context.Context, item models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockWorldClient) ConfigureAutoEat(ctx context.Context, opts models.AutoEatOptions) error {
	args := m.Called(ctx, opts)
	return args.Error(0)
}
