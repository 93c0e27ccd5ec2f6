package service

import (
	"context"
	"errors"
	"strings"

	paymentserrors "staybook/internal/payments/errors"
	"staybook/internal/payments/gateway"
	"staybook/internal/payments/repository"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"

	"github.com/google/uuid"
)

// BookingLifecycle is the slice of the booking service the payment flow
// needs: load a booking and move it through its lifecycle.
type BookingLifecycle interface {
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error
}

// InitiateResult is what the caller needs to send the guest to checkout.
type InitiateResult struct {
	Payment     *model.Payment `json:"payment"`
	CheckoutURL string         `json:"checkout_url"`
}

type PaymentService interface {
	Initiate(ctx context.Context, bookingID, email string) (*InitiateResult, error)
	Verify(ctx context.Context, reference string) (*model.Payment, error)
	GetByReference(ctx context.Context, reference string) (*model.Payment, error)
	ListForBooking(ctx context.Context, bookingID string) ([]*model.Payment, error)
}

type paymentService struct {
	repo     repository.PaymentRepository
	bookings BookingLifecycle
	gateway  gateway.Gateway
	cfg      *config.Config
}

func NewPaymentService(
	repo repository.PaymentRepository,
	bookings BookingLifecycle,
	gw gateway.Gateway,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		repo:     repo,
		bookings: bookings,
		gateway:  gw,
		cfg:      cfg,
	}
}

// newPaymentReference mints a reference like PAY-3F2A1B4C5D6E.
func newPaymentReference() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "PAY-" + strings.ToUpper(hex[:12])
}

// Initiate opens a gateway checkout session for a pending booking. The
// payment amount is always the booking's recorded total.
func (s *paymentService) Initiate(ctx context.Context, bookingID, email string) (*InitiateResult, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status.IsTerminal() {
		return nil, apperrors.Conflict("Booking is " + booking.Status.String() + " and cannot be paid for")
	}

	payment := &model.Payment{
		BookingID:        booking.ID,
		Amount:           booking.TotalPrice,
		Status:           model.PaymentPending,
		PaymentReference: newPaymentReference(),
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		s.cfg.Log.Error("Failed to create payment",
			"booking_id", bookingID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to create payment", err)
	}

	result, err := s.gateway.Initiate(ctx, gateway.InitiateRequest{
		Amount:    payment.Amount,
		Currency:  s.cfg.CurrencyCode,
		Email:     email,
		Reference: payment.PaymentReference,
	})
	if err != nil {
		s.cfg.Log.Error("Payment gateway initiate failed",
			"booking_id", bookingID,
			"reference", payment.PaymentReference,
			"error", err,
		)
		if markErr := s.repo.MarkFailed(ctx, payment.PaymentReference, nil); markErr != nil {
			s.cfg.Log.Warn("Failed to mark payment as failed",
				"reference", payment.PaymentReference,
				"error", markErr,
			)
		}
		return nil, err
	}

	s.cfg.Log.Info("Payment initiated",
		"booking_id", bookingID,
		"reference", payment.PaymentReference,
		"amount", payment.Amount.String(),
	)

	return &InitiateResult{
		Payment:     payment,
		CheckoutURL: result.CheckoutURL,
	}, nil
}

// Verify checks the transaction with the gateway and settles the payment.
// A successful payment confirms the booking, which re-triggers the
// confirmation email.
func (s *paymentService) Verify(ctx context.Context, reference string) (*model.Payment, error) {
	if reference == "" {
		return nil, apperrors.InvalidInput("Payment reference cannot be empty")
	}

	payment, err := s.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if payment.Status == model.PaymentCompleted {
		return payment, nil
	}

	result, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	if !result.Succeeded {
		if err := s.repo.MarkFailed(ctx, reference, result.Raw); err != nil {
			s.cfg.Log.Error("Failed to mark payment as failed",
				"reference", reference,
				"error", err,
			)
			return nil, apperrors.Internal("Failed to record payment result", err)
		}
		s.cfg.Log.Info("Payment verification failed at gateway", "reference", reference)
		return s.GetByReference(ctx, reference)
	}

	if err := s.repo.MarkCompleted(ctx, reference, result.TransactionID, result.Raw); err != nil {
		s.cfg.Log.Error("Failed to mark payment as completed",
			"reference", reference,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to record payment result", err)
	}

	if err := s.bookings.UpdateStatus(ctx, payment.BookingID, model.StatusConfirmed); err != nil {
		// The payment is settled either way; surface the booking problem.
		s.cfg.Log.Error("Failed to confirm booking after payment",
			"booking_id", payment.BookingID,
			"reference", reference,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Payment completed and booking confirmed",
		"booking_id", payment.BookingID,
		"reference", reference,
		"transaction_id", result.TransactionID,
	)

	return s.GetByReference(ctx, reference)
}

func (s *paymentService) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	if reference == "" {
		return nil, apperrors.InvalidInput("Payment reference cannot be empty")
	}

	payment, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, paymentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Payment", reference)
		}
		s.cfg.Log.Error("Failed to get payment by reference",
			"reference", reference,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve payment", err)
	}

	return payment, nil
}

func (s *paymentService) ListForBooking(ctx context.Context, bookingID string) ([]*model.Payment, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	payments, err := s.repo.FindByBooking(ctx, bookingID)
	if err != nil {
		s.cfg.Log.Error("Failed to list payments", "booking_id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to list payments", err)
	}

	return payments, nil
}
