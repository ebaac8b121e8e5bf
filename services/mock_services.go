// Package services file: services/mock_services.go
package services

import (
	"github.com/stretchr/testify/mock"

	"gaittrib/models"
)

// Compile-time checks that the mocks satisfy their interfaces.
var (
	_ RegistrationServiceInterface = (*MockRegistrationService)(nil)
	_ PaymentServiceInterface      = (*MockPaymentService)(nil)
	_ PaymentGateway               = (*MockPaymentGateway)(nil)
	_ UserServiceInterface         = (*MockUserService)(nil)
)

// MockRegistrationService is a testify mock of the registration lifecycle.
type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) Register(userID, eventID string, answers []AnswerInput) (*models.Registration, error) {
	args := m.Called(userID, eventID, answers)
	reg, _ := args.Get(0).(*models.Registration)
	return reg, args.Error(1)
}

func (m *MockRegistrationService) Decide(registrationID string, decision models.RegistrationStatus) (*models.Registration, error) {
	args := m.Called(registrationID, decision)
	reg, _ := args.Get(0).(*models.Registration)
	return reg, args.Error(1)
}

func (m *MockRegistrationService) Get(registrationID string) (*models.Registration, error) {
	args := m.Called(registrationID)
	reg, _ := args.Get(0).(*models.Registration)
	return reg, args.Error(1)
}

func (m *MockRegistrationService) ListForUser(userID string) ([]models.Registration, error) {
	args := m.Called(userID)
	regs, _ := args.Get(0).([]models.Registration)
	return regs, args.Error(1)
}

func (m *MockRegistrationService) ListAll() ([]models.Registration, error) {
	args := m.Called()
	regs, _ := args.Get(0).([]models.Registration)
	return regs, args.Error(1)
}

// MockPaymentService is a testify mock of the payment reconciler.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) EnsureOrder(registrationID string) (*models.Payment, error) {
	args := m.Called(registrationID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentService) ReconcileCapture(orderID string) (*models.Payment, error) {
	args := m.Called(orderID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentService) GatewayKeyID() string {
	args := m.Called()
	return args.String(0)
}

// MockUserService is a testify mock of the account service.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Signup(input SignupInput) (*models.User, error) {
	args := m.Called(input)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) Login(email, password string) (*models.User, error) {
	args := m.Called(email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) CompleteProfile(userID string, input ProfileInput) (*models.User, error) {
	args := m.Called(userID, input)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) Get(userID string) (*models.User, error) {
	args := m.Called(userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// MockPaymentGateway is a testify mock of the external gateway client.
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateOrder(amount int64, receipt string, notes map[string]interface{}) (string, error) {
	args := m.Called(amount, receipt, notes)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) KeyID() string {
	args := m.Called()
	return args.String(0)
}
