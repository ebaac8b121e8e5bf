// file: services/payment_service_test.go
package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gaittrib/models"
	"gaittrib/services"
)

func TestEnsureOrder_CreatesPaymentWithFeeSplit(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewPaymentService(db, &services.MockGateway{})

	event := seedEvent(t, db, 10, 250) // 25000 paise
	user := seedUser(t, db, "runner@gaittrib.test")
	registration := seedRegistration(t, db, user.ID, event.ID, models.RegistrationApproved)

	payment, err := svc.EnsureOrder(registration.ID)
	require.NoError(t, err)

	assert.Equal(t, "mock_"+registration.ID, payment.OrderID)
	assert.EqualValues(t, 25000, payment.Amount)
	assert.EqualValues(t, 1500, payment.PlatformFee)
	assert.EqualValues(t, 23500, payment.OrganizerAmount)
	assert.Equal(t, models.PaymentCreated, payment.Status)
}

func TestEnsureOrder_FeeCappedAtAmount(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewPaymentService(db, &services.MockGateway{})

	event := seedEvent(t, db, 10, 10) // 1000 paise, below the fixed fee
	user := seedUser(t, db, "runner@gaittrib.test")
	registration := seedRegistration(t, db, user.ID, event.ID, models.RegistrationApproved)

	payment, err := svc.EnsureOrder(registration.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1000, payment.Amount)
	assert.EqualValues(t, 1000, payment.PlatformFee)
	assert.EqualValues(t, 0, payment.OrganizerAmount)
}

func TestEnsureOrder_Idempotent(t *testing.T) {
	db := newTestDB(t)
	gateway := new(services.MockPaymentGateway)
	svc := services.NewPaymentService(db, gateway)

	event := seedEvent(t, db, 10, 250)
	user := seedUser(t, db, "runner@gaittrib.test")
	registration := seedRegistration(t, db, user.ID, event.ID, models.RegistrationApproved)

	gateway.On("CreateOrder", int64(25000), registration.ID, mock.Anything).
		Return("order_abc123", nil).
		Once()

	first, err := svc.EnsureOrder(registration.ID)
	require.NoError(t, err)

	second, err := svc.EnsureOrder(registration.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.OrderID, second.OrderID)

	var rows int64
	require.NoError(t, db.Model(&models.Payment{}).
		Where("registration_id = ?", registration.ID).
		Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	gateway.AssertExpectations(t)
}

func TestEnsureOrder_RequiresApprovedStatus(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewPaymentService(db, &services.MockGateway{})

	event := seedEvent(t, db, 10, 250)

	for _, status := range []models.RegistrationStatus{
		models.RegistrationPending,
		models.RegistrationRejected,
	} {
		user := seedUser(t, db, string(status)+"@gaittrib.test")
		registration := seedRegistration(t, db, user.ID, event.ID, status)
		_, err := svc.EnsureOrder(registration.ID)
		assert.ErrorIs(t, err, services.ErrStateConflict, "status %s", status)
	}
}

func TestEnsureOrder_UnknownRegistration(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewPaymentService(db, &services.MockGateway{})

	_, err := svc.EnsureOrder("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestEnsureOrder_GatewayFailureLeavesNoRow(t *testing.T) {
	db := newTestDB(t)
	gateway := new(services.MockPaymentGateway)
	svc := services.NewPaymentService(db, gateway)

	event := seedEvent(t, db, 10, 250)
	user := seedUser(t, db, "runner@gaittrib.test")
	registration := seedRegistration(t, db, user.ID, event.ID, models.RegistrationApproved)

	gateway.On("CreateOrder", int64(25000), registration.ID, mock.Anything).
		Return("", errors.New("gateway down")).
		Once()

	_, err := svc.EnsureOrder(registration.ID)
	require.Error(t, err)

	var rows int64
	require.NoError(t, db.Model(&models.Payment{}).
		Where("registration_id = ?", registration.ID).
		Count(&rows).Error)
	assert.EqualValues(t, 0, rows, "failed order creation must not persist a payment")
}

func TestReconcileCapture_MarksPaidAndConfirms(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewPaymentService(db, &services.MockGateway{})

	event := seedEvent(t, db, 10, 250)
	user := seedUser(t, db, "runner@gaittrib.test")
	registration := seedRegistration(t, db, user.ID, event.ID, models.RegistrationApproved)

	created, err := svc.EnsureOrder(registration.ID)
	require.NoError(t, err)

	payment, err := svc.ReconcileCapture(created.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, payment.Status)

	var reloaded models.Registration
	require.NoError(t, db.First(&reloaded, "id = ?", registration.ID).Error)
	assert.Equal(t, models.RegistrationConfirmed, reloaded.Status)
	assert.NotNil(t, reloaded.PaidAt)
}

func TestReconcileCapture_ReplayIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewPaymentService(db, &services.MockGateway{})

	event := seedEvent(t, db, 10, 250)
	user := seedUser(t, db, "runner@gaittrib.test")
	registration := seedRegistration(t, db, user.ID, event.ID, models.RegistrationApproved)

	created, err := svc.EnsureOrder(registration.ID)
	require.NoError(t, err)

	_, err = svc.ReconcileCapture(created.OrderID)
	require.NoError(t, err)

	var firstPaidAt models.Registration
	require.NoError(t, db.First(&firstPaidAt, "id = ?", registration.ID).Error)
	require.NotNil(t, firstPaidAt.PaidAt)

	// the gateway may deliver the same notification more than once
	payment, err := svc.ReconcileCapture(created.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, payment.Status)

	var reloaded models.Registration
	require.NoError(t, db.First(&reloaded, "id = ?", registration.ID).Error)
	assert.Equal(t, models.RegistrationConfirmed, reloaded.Status)
	require.NotNil(t, reloaded.PaidAt)
	assert.Equal(t, firstPaidAt.PaidAt.Unix(), reloaded.PaidAt.Unix(), "replay must not re-stamp paid_at")
}

func TestReconcileCapture_UnknownOrder(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewPaymentService(db, &services.MockGateway{})

	_, err := svc.ReconcileCapture("order_nope")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestApprovalFlow_EndToEnd(t *testing.T) {
	db := newTestDB(t)
	paymentSvc := services.NewPaymentService(db, &services.MockGateway{})
	registrationSvc := services.NewRegistrationService(db, paymentSvc)

	event := seedEvent(t, db, 2, 250)
	userA := seedUser(t, db, "a@gaittrib.test")
	userB := seedUser(t, db, "b@gaittrib.test")
	userC := seedUser(t, db, "c@gaittrib.test")

	regA, err := registrationSvc.Register(userA.ID, event.ID, nil)
	require.NoError(t, err)
	_, err = registrationSvc.Register(userB.ID, event.ID, nil)
	require.NoError(t, err)
	_, err = registrationSvc.Register(userC.ID, event.ID, nil)
	assert.ErrorIs(t, err, services.ErrCapacityExceeded)

	decided, err := registrationSvc.Decide(regA.ID, models.RegistrationApproved)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, decided.Status)

	var payment models.Payment
	require.NoError(t, db.First(&payment, "registration_id = ?", regA.ID).Error)
	assert.EqualValues(t, 25000, payment.Amount)
	assert.EqualValues(t, 1500, payment.PlatformFee)
	assert.EqualValues(t, 23500, payment.OrganizerAmount)

	_, err = paymentSvc.ReconcileCapture(payment.OrderID)
	require.NoError(t, err)

	var confirmed models.Registration
	require.NoError(t, db.First(&confirmed, "id = ?", regA.ID).Error)
	assert.Equal(t, models.RegistrationConfirmed, confirmed.Status)
}
