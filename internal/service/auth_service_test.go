package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"carebook/internal/auth"
	apperrors "carebook/internal/errors"
	"carebook/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID string, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		nameField     string
		isAdmin       bool
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:      "successful registration",
			email:     "staff@example.com",
			password:  "password123",
			nameField: "Staff User",
			isAdmin:   false,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "staff@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:      "email already registered",
			email:     "existing@example.com",
			password:  "password123",
			nameField: "Existing User",
			isAdmin:   false,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)

			service := NewAuthService(mockRepo, jwtService, mockTokenStore)
			user, err := service.Register(context.Background(), tt.email, tt.password, tt.nameField, tt.isAdmin)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.nameField, user.Name)
				assert.True(t, user.Active)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "staff@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				userID := uuid.New()
				mRepo.On("FindByEmail", mock.Anything, "staff@example.com").Return(&model.User{
					ID:           userID,
					Email:        "staff@example.com",
					PasswordHash: string(hashedPassword),
					Active:       true,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, userID.String(), "staff@example.com", auth.RefreshTokenExpiry).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "user not found",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "staff@example.com",
			password: "wrong-password",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByEmail", mock.Anything, "staff@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "staff@example.com",
					PasswordHash: string(hashedPassword),
					Active:       true,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "deactivated user",
			email:    "staff@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByEmail", mock.Anything, "staff@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "staff@example.com",
					PasswordHash: string(hashedPassword),
					Active:       false,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	userID := uuid.New()
	email := "staff@example.com"

	t.Run("successful refresh", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, email)
		assert.NoError(t, err)

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, email).Return(&model.User{
			ID: userID, Email: email, Active: true,
		}, nil)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(userID.String(), email, nil)

		service := NewAuthService(mockRepo, jwtService, mockTokenStore)
		accessToken, err := service.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		mockRepo.AssertExpectations(t)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("token not in store", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, email)
		assert.NoError(t, err)

		mockRepo := new(MockUserRepository)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return("", "", assert.AnError)

		service := NewAuthService(mockRepo, jwtService, mockTokenStore)
		_, err = service.RefreshToken(context.Background(), refreshToken)

		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))
		_, err := service.RefreshToken(context.Background(), "not-a-jwt")
		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, email)
		assert.NoError(t, err)

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, email).Return(&model.User{
			ID: userID, Email: email, Active: false,
		}, nil)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(userID.String(), email, nil)

		service := NewAuthService(mockRepo, jwtService, mockTokenStore)
		_, err = service.RefreshToken(context.Background(), refreshToken)

		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	t.Run("logout without access token", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(uuid.New(), "staff@example.com")
		assert.NoError(t, err)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
		err = service.Logout(context.Background(), refreshToken, "")

		assert.NoError(t, err)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("logout blacklists the access token", func(t *testing.T) {
		userID := uuid.New()
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "staff@example.com")
		assert.NoError(t, err)
		accessToken, err := jwtService.GenerateAccessToken(userID, "staff@example.com")
		assert.NoError(t, err)
		accessClaims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
		mockTokenStore.On("BlacklistAccessToken", mock.Anything, accessClaims.ID,
			mock.MatchedBy(func(ttl time.Duration) bool {
				return ttl > 0 && ttl <= auth.AccessTokenExpiry
			})).Return(nil)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
		err = service.Logout(context.Background(), refreshToken, accessToken)

		assert.NoError(t, err)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("malformed access token is ignored", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(uuid.New(), "staff@example.com")
		assert.NoError(t, err)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
		err = service.Logout(context.Background(), refreshToken, "not-a-jwt")

		assert.NoError(t, err)
		mockTokenStore.AssertExpectations(t)
		mockTokenStore.AssertNotCalled(t, "BlacklistAccessToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("garbage refresh token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))
		err := service.Logout(context.Background(), "not-a-jwt", "")
		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})
}
