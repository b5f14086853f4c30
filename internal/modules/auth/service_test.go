package auth

import (
	"context"
	"testing"

	"tutormatch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 123 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockJWT struct {
	mock.Mock
}

func (m *MockJWT) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestService_Register_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWT)

	mockUsers.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockUsers, mockJWT)

	user, err := service.Register(context.Background(), RegisterRequest{
		Email:    "New@Example.com ",
		Password: "secret-password",
		Name:     "New User",
		Role:     "student",
	})

	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, domain.RoleStudent, user.Role)
	// stored hash verifies against the submitted password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-password")))
}

func TestService_Register_EmailTaken(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	service := NewService(mockUsers, new(MockJWT))

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "secret-password",
		Name:     "Someone",
		Role:     "tutor",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Register_AdminRoleRejected(t *testing.T) {
	service := NewService(new(MockUserRepository), new(MockJWT))

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "admin@example.com",
		Password: "secret-password",
		Name:     "Sneaky",
		Role:     "admin",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Login_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockJWT := new(MockJWT)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.DefaultCost)
	mockUsers.On("GetByEmail", mock.Anything, "amira@example.com").Return(&domain.User{
		ID:           5,
		Email:        "amira@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
	}, nil)
	mockJWT.On("GenerateToken", int64(5), "student").Return("token-abc", nil)

	service := NewService(mockUsers, mockJWT)

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "amira@example.com",
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", result.AccessToken)
	assert.Equal(t, int64(5), result.User.ID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)

	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	mockUsers.On("GetByEmail", mock.Anything, "amira@example.com").Return(&domain.User{
		ID:           5,
		PasswordHash: string(hash),
	}, nil)

	service := NewService(mockUsers, new(MockJWT))

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "amira@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
