package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCounterRepository is a mock implementation of the CounterRepository interface
type MockCounterRepository struct {
	mock.Mock
}

func (m *MockCounterRepository) IncrementAndGet(ctx context.Context, key string) (uint64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockCounterRepository) Get(ctx context.Context, key string) (uint64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(uint64), args.Error(1)
}

func TestVisitService_RecordVisit(t *testing.T) {
	tests := []struct {
		name        string
		mockCount   uint64
		mockError   error
		expected    uint64
		expectError bool
	}{
		{
			name:      "first visit",
			mockCount: 1,
			expected:  1,
		},
		{
			name:      "later visit",
			mockCount: 1042,
			expected:  1042,
		},
		{
			name:        "store error",
			mockError:   assert.AnError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockCounterRepository)
			service := NewVisitService(mockRepo)
			mockRepo.On("IncrementAndGet", mock.Anything, VisitsKey).Return(tt.mockCount, tt.mockError)

			// Execute
			result, err := service.RecordVisit(context.Background())

			// Assert
			if tt.expectError {
				assert.ErrorIs(t, err, assert.AnError)
				assert.Equal(t, uint64(0), result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestVisitService_Visits(t *testing.T) {
	mockRepo := new(MockCounterRepository)
	service := NewVisitService(mockRepo)
	mockRepo.On("Get", mock.Anything, VisitsKey).Return(uint64(7), nil)

	result, err := service.Visits(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, uint64(7), result)
	mockRepo.AssertExpectations(t)
}
