package service

import (
	"context"

	"farmsight-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ExistsByEmailOrName(ctx context.Context, email, name string) (bool, error) {
	args := m.Called(ctx, email, name)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCropRepo
type MockCropRepo struct {
	mock.Mock
}

func (m *MockCropRepo) Create(ctx context.Context, crop *domain.Crop) error {
	args := m.Called(ctx, crop)
	return args.Error(0)
}
func (m *MockCropRepo) GetByID(ctx context.Context, id string) (*domain.Crop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Crop), args.Error(1)
}
func (m *MockCropRepo) ListByUser(ctx context.Context, userID string) ([]domain.Crop, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Crop), args.Error(1)
}
func (m *MockCropRepo) Update(ctx context.Context, crop *domain.Crop) error {
	args := m.Called(ctx, crop)
	return args.Error(0)
}
func (m *MockCropRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReminderRepo
type MockReminderRepo struct {
	mock.Mock
}

func (m *MockReminderRepo) Create(ctx context.Context, rem *domain.Reminder) error {
	args := m.Called(ctx, rem)
	return args.Error(0)
}
func (m *MockReminderRepo) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminder), args.Error(1)
}
func (m *MockReminderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Reminder, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reminder), args.Error(1)
}
func (m *MockReminderRepo) ListDueOn(ctx context.Context, date string) ([]domain.Reminder, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reminder), args.Error(1)
}
func (m *MockReminderRepo) Update(ctx context.Context, rem *domain.Reminder) error {
	args := m.Called(ctx, rem)
	return args.Error(0)
}
func (m *MockReminderRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlotRepo
type MockPlotRepo struct {
	mock.Mock
}

func (m *MockPlotRepo) Create(ctx context.Context, plot *domain.Plot) error {
	args := m.Called(ctx, plot)
	return args.Error(0)
}
func (m *MockPlotRepo) GetByID(ctx context.Context, id string) (*domain.Plot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plot), args.Error(1)
}
func (m *MockPlotRepo) ListByUser(ctx context.Context, userID string) ([]domain.Plot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plot), args.Error(1)
}
func (m *MockPlotRepo) Update(ctx context.Context, plot *domain.Plot) error {
	args := m.Called(ctx, plot)
	return args.Error(0)
}
func (m *MockPlotRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSoilRepo
type MockSoilRepo struct {
	mock.Mock
}

func (m *MockSoilRepo) Create(ctx context.Context, reading *domain.SoilReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}
func (m *MockSoilRepo) ListByPlot(ctx context.Context, plotID string) ([]domain.SoilReading, error) {
	args := m.Called(ctx, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SoilReading), args.Error(1)
}
func (m *MockSoilRepo) LatestByPlot(ctx context.Context, userID string) ([]domain.SoilReading, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SoilReading), args.Error(1)
}
