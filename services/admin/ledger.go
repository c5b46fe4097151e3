package admin

import (
	"context"

	"go.uber.org/zap"

	"mentorly/models"
)

func (a *DefaultAdminService) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	return a.Ledger.ListAppointments(ctx)
}

func (a *DefaultAdminService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return a.Ledger.ListPayments(ctx)
}

// DeleteAppointment refuses while a payment still points at the appointment.
func (a *DefaultAdminService) DeleteAppointment(ctx context.Context, id string) error {
	if err := a.Ledger.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	a.Logger.Info("appointment deleted", zap.String("appointment_id", id))
	return nil
}

func (a *DefaultAdminService) DeleteAllAppointments(ctx context.Context) (int64, error) {
	n, err := a.Ledger.DeleteAllAppointments(ctx)
	if err != nil {
		return 0, err
	}
	a.Logger.Info("appointments deleted", zap.Int64("count", n))
	return n, nil
}

func (a *DefaultAdminService) DeleteAllPayments(ctx context.Context) (int64, error) {
	n, err := a.Ledger.DeleteAllPayments(ctx)
	if err != nil {
		return 0, err
	}
	a.Logger.Info("payments deleted", zap.Int64("count", n))
	return n, nil
}
