package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "carebook/internal/errors"
	"carebook/internal/model"
)

// MockCenterRepository is a mock implementation of CenterRepository.
type MockCenterRepository struct {
	mock.Mock
}

func (m *MockCenterRepository) Create(ctx context.Context, center *model.Center) error {
	args := m.Called(ctx, center)
	return args.Error(0)
}

func (m *MockCenterRepository) Update(ctx context.Context, center *model.Center) error {
	args := m.Called(ctx, center)
	return args.Error(0)
}

func (m *MockCenterRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Center, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Center), args.Error(1)
}

func (m *MockCenterRepository) List(ctx context.Context) ([]model.Center, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Center), args.Error(1)
}

func (m *MockCenterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validCenterInput() CenterInput {
	return CenterInput{
		Name:     "City  Care   Clinic",
		District: "Central",
		Location: "Downtown",
		Pincode:  "560001",
		Contact:  "9876543210",
	}
}

func TestCenterService_Create(t *testing.T) {
	actor := uuid.New()

	t.Run("successful create normalizes whitespace", func(t *testing.T) {
		mockRepo := new(MockCenterRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Center")).Return(nil)

		service := NewCenterService(mockRepo, nil)
		center, err := service.Create(context.Background(), validCenterInput(), actor)

		assert.NoError(t, err)
		assert.Equal(t, "City Care Clinic", center.Name)
		assert.Equal(t, "9876543210", center.Contact)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid contact rejected", func(t *testing.T) {
		mockRepo := new(MockCenterRepository)
		input := validCenterInput()
		input.Contact = "call me"

		service := NewCenterService(mockRepo, nil)
		center, err := service.Create(context.Background(), input, actor)

		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Nil(t, center)
		mockRepo.AssertExpectations(t)
	})
}

func TestCenterService_Get(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockCenterRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(&model.Center{ID: id, Name: "City Care Clinic"}, nil)

		service := NewCenterService(mockRepo, nil)
		center, err := service.Get(context.Background(), id)

		assert.NoError(t, err)
		assert.Equal(t, id, center.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockCenterRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		service := NewCenterService(mockRepo, nil)
		center, err := service.Get(context.Background(), id)

		assert.Nil(t, center)
		assert.Equal(t, apperrors.ErrCenterNotFound, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestCenterService_Update(t *testing.T) {
	id := uuid.New()
	actor := uuid.New()

	t.Run("successful update", func(t *testing.T) {
		mockRepo := new(MockCenterRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(&model.Center{ID: id, Name: "Old Name"}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Center")).Return(nil)

		service := NewCenterService(mockRepo, nil)
		center, err := service.Update(context.Background(), id, validCenterInput(), actor)

		assert.NoError(t, err)
		assert.Equal(t, "City Care Clinic", center.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing center", func(t *testing.T) {
		mockRepo := new(MockCenterRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		service := NewCenterService(mockRepo, nil)
		_, err := service.Update(context.Background(), id, validCenterInput(), actor)

		assert.Equal(t, apperrors.ErrCenterNotFound, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestCenterService_Delete(t *testing.T) {
	id := uuid.New()
	actor := uuid.New()

	t.Run("successful delete", func(t *testing.T) {
		mockRepo := new(MockCenterRepository)
		mockRepo.On("Delete", mock.Anything, id).Return(nil)

		service := NewCenterService(mockRepo, nil)
		assert.NoError(t, service.Delete(context.Background(), id, actor))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing center", func(t *testing.T) {
		mockRepo := new(MockCenterRepository)
		mockRepo.On("Delete", mock.Anything, id).Return(gorm.ErrRecordNotFound)

		service := NewCenterService(mockRepo, nil)
		err := service.Delete(context.Background(), id, actor)
		assert.Equal(t, apperrors.ErrCenterNotFound, err)
		mockRepo.AssertExpectations(t)
	})
}
