package mocks

import (
	"context"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/JayeshPatil163/aero-logistics-nexus/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockNexusService is a mock implementation of NexusService
type MockNexusService struct {
	mock.Mock
}

func (m *MockNexusService) ListSchedules(ctx context.Context, opts store.ListOptions) ([]*models.ScheduleRecord, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ScheduleRecord), args.Error(1)
}

func (m *MockNexusService) GetSchedule(ctx context.Context, id string) (*models.ScheduleRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleRecord), args.Error(1)
}

func (m *MockNexusService) CreateSchedule(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleRecord), args.Error(1)
}

func (m *MockNexusService) UpdateSchedule(ctx context.Context, id string, req *models.CreateScheduleRequest) (*models.ScheduleRecord, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleRecord), args.Error(1)
}

func (m *MockNexusService) UpdateScheduleStatus(ctx context.Context, id, rawStatus string) (*models.ScheduleRecord, error) {
	args := m.Called(ctx, id, rawStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduleRecord), args.Error(1)
}

func (m *MockNexusService) DeleteSchedule(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNexusService) ExportSchedules(ctx context.Context, kind models.ScheduleKind) (string, error) {
	args := m.Called(ctx, kind)
	return args.String(0), args.Error(1)
}

func (m *MockNexusService) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingStateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingStateResponse), args.Error(1)
}

func (m *MockNexusService) GetBookingState(ctx context.Context, bookingID string) (*models.BookingStateResponse, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingStateResponse), args.Error(1)
}

func (m *MockNexusService) ListBookings(ctx context.Context) ([]*models.BookingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BookingRecord), args.Error(1)
}

func (m *MockNexusService) ConfirmOffer(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockNexusService) SubmitPassengerDetails(ctx context.Context, bookingID string, req *models.PassengerDetailsRequest) error {
	args := m.Called(ctx, bookingID, req)
	return args.Error(0)
}

func (m *MockNexusService) SubmitPayment(ctx context.Context, bookingID string, req *models.PaymentRequest) error {
	args := m.Called(ctx, bookingID, req)
	return args.Error(0)
}

func (m *MockNexusService) StepBack(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockNexusService) CancelBooking(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockNexusService) Chat(ctx context.Context, message string) string {
	args := m.Called(ctx, message)
	return args.String(0)
}
