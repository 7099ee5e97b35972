package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/metrics"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/validation"
)

// PurchaseService records simulated purchases. No money moves.
type PurchaseService struct {
	purchaseRepository      repository.PurchaseRepository
	paymentMethodRepository repository.PaymentMethodRepository
}

func NewPurchaseService(
	purchaseRepository repository.PurchaseRepository,
	paymentMethodRepository repository.PaymentMethodRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepository:      purchaseRepository,
		paymentMethodRepository: paymentMethodRepository,
	}
}

func (s *PurchaseService) PaymentMethods() ([]*model.PaymentMethod, error) {
	methods, err := s.paymentMethodRepository.Enabled()
	if err != nil {
		return nil, unavailable("failed to list payment methods", err)
	}
	return methods, nil
}

// Purchase records a paid purchase for userID. Course and payment method are
// not looked up first; a missing one is rejected by the foreign keys and
// comes back as repository.ErrInvalidReference.
func (s *PurchaseService) Purchase(userID, courseID, paymentMethodID, amount string) (*model.Purchase, error) {
	cents, err := validation.ParsePrice(amount)
	if err != nil {
		return nil, err
	}

	purchase := &model.Purchase{
		ID:              uuid.New().String(),
		UserID:          userID,
		CourseID:        courseID,
		PaymentMethodID: paymentMethodID,
		AmountCents:     cents,
		Status:          model.PurchaseStatusPaid,
		CreatedAt:       time.Now().UTC(),
	}

	err = s.purchaseRepository.Create(purchase)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, err
		}
		return nil, unavailable("failed to record purchase", err)
	}

	slog.Info("purchase recorded", "purchase_id", purchase.ID, "user_id", userID, "course_id", courseID)
	metrics.PurchasesTotal.Inc()
	return purchase, nil
}

func (s *PurchaseService) History(userID string) ([]*model.PurchaseRecord, error) {
	records, err := s.purchaseRepository.ByUser(userID)
	if err != nil {
		return nil, unavailable("failed to list purchases", err)
	}
	return records, nil
}
