package service

import (
	"context"
	"errors"
	"time"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/notify"
	"github.com/agriconnect/agrimarket-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// transactionFeeRate is the platform cut applied on top of the order total.
const transactionFeeRate = 0.02

// PaymentResult is what the buyer sees after settlement: the transaction
// reference and the charged total including the fee. The raw fee is never
// returned on its own.
type PaymentResult struct {
	TransactionID string  `json:"transaction_id"`
	TotalWithFee  float64 `json:"total_amount"`
}

type PaymentService interface {
	Initiate(ctx context.Context, orderID, actorID uint64, paymentMethod string) (*PaymentResult, error)
	ReleaseEscrow(ctx context.Context, transactionID uint64, actor *model.User) error
}

type paymentService struct {
	db         *gorm.DB
	dispatcher *notify.Dispatcher
}

func NewPaymentService(db *gorm.DB, dispatcher *notify.Dispatcher) PaymentService {
	return &paymentService{db: db, dispatcher: dispatcher}
}

// Initiate settles an order. No live gateway is wired in, so the transaction
// is created pending and completed immediately; creation, completion and the
// order flip to paid commit as one unit.
func (s *paymentService) Initiate(ctx context.Context, orderID, actorID uint64, paymentMethod string) (*PaymentResult, error) {
	if paymentMethod == "" {
		paymentMethod = "mpesa"
	}

	var (
		result  PaymentResult
		ev      notify.Event
		toPhone string
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := repository.NewOrderRepository(tx)
		txns := repository.NewTransactionRepository(tx)
		crops := repository.NewCropRepository(tx)
		users := repository.NewUserRepository(tx)

		order, err := orders.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.BuyerID != actorID {
			return ErrAccessDenied
		}

		// At most one settlement per order.
		if _, err := txns.FindCompletedByOrder(ctx, order.ID); err == nil {
			return ErrAlreadyPaid
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if order.Status != model.OrderStatusDelivered {
			return ErrInvalidTransition
		}

		fee := order.TotalAmount * transactionFeeRate
		txn := &model.Transaction{
			OrderID:       order.ID,
			Amount:        order.TotalAmount,
			Fee:           fee,
			PaymentMethod: paymentMethod,
			Reference:     uuid.NewString(),
			Status:        model.TransactionStatusPending,
		}
		if err := txns.Create(ctx, txn); err != nil {
			return err
		}
		if err := txns.MarkCompleted(ctx, txn.ID, time.Now()); err != nil {
			return err
		}

		n, err := orders.UpdateStatusIf(ctx, order.ID, model.OrderStatusDelivered, model.OrderStatusPaid)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrConflict
		}

		result = PaymentResult{
			TransactionID: txn.Reference,
			TotalWithFee:  order.TotalAmount + fee,
		}

		crop, err := crops.FindByID(ctx, order.CropID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		farmer, err := users.FindByID(ctx, order.FarmerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if farmer != nil {
			toPhone = farmer.PhoneNumber
		}
		cropName := ""
		if crop != nil {
			cropName = crop.Name
		}
		ev = notify.Event{
			Kind:     notify.EventOrderPaid,
			CropName: cropName,
			Amount:   order.TotalAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, toPhone, ev)
	return &result, nil
}

// ReleaseEscrow flags a completed transaction's held funds as disbursed to
// the farmer. Admin only.
func (s *paymentService) ReleaseEscrow(ctx context.Context, transactionID uint64, actor *model.User) error {
	if actor == nil || actor.UserType != model.UserTypeAdmin {
		return ErrAccessDenied
	}
	txns := repository.NewTransactionRepository(s.db)
	txn, err := txns.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if txn.Status != model.TransactionStatusCompleted {
		return ErrInvalidTransition
	}
	return txns.ReleaseEscrow(ctx, txn.ID)
}
