package service

import (
	"context"
	"errors"
	"time"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/notify"
	"github.com/agriconnect/agrimarket-backend/internal/repository"
	"gorm.io/gorm"
)

// maxTransitionRetries bounds re-validation attempts when a concurrent
// writer invalidates the state this transition was computed from.
const maxTransitionRetries = 3

type PlaceOrderInput struct {
	CropID          uint64
	Quantity        float64
	DeliveryAddress string
	DeliveryDate    *time.Time
	Notes           string
}

type OrderService interface {
	Place(ctx context.Context, buyerID uint64, in PlaceOrderInput) (*model.Order, error)
	Get(ctx context.Context, orderID, actorID uint64) (*model.Order, error)
	ListForUser(ctx context.Context, user *model.User) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID, actorID uint64, actorRole model.UserType, newStatus model.OrderStatus) error
}

type orderService struct {
	db         *gorm.DB
	users      repository.UserRepository
	crops      repository.CropRepository
	orders     repository.OrderRepository
	dispatcher *notify.Dispatcher
}

func NewOrderService(db *gorm.DB, dispatcher *notify.Dispatcher) OrderService {
	return &orderService{
		db:         db,
		users:      repository.NewUserRepository(db),
		crops:      repository.NewCropRepository(db),
		orders:     repository.NewOrderRepository(db),
		dispatcher: dispatcher,
	}
}

func (s *orderService) Place(ctx context.Context, buyerID uint64, in PlaceOrderInput) (*model.Order, error) {
	buyer, err := s.users.FindByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if buyer.UserType != model.UserTypeBuyer {
		return nil, ErrAccessDenied
	}
	crop, err := s.crops.FindByID(ctx, in.CropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if crop.Status != model.CropStatusAvailable {
		return nil, ErrCropUnavailable
	}
	if in.Quantity <= 0 || in.Quantity > crop.Quantity {
		return nil, ErrInsufficientInventory
	}

	// TotalAmount is a snapshot of the current price; later repricing of the
	// crop must not change it.
	order := &model.Order{
		BuyerID:         buyerID,
		FarmerID:        crop.FarmerID,
		CropID:          crop.ID,
		Quantity:        in.Quantity,
		TotalAmount:     in.Quantity * crop.PricePerUnit,
		Status:          model.OrderStatusPending,
		DeliveryAddress: in.DeliveryAddress,
		DeliveryDate:    in.DeliveryDate,
		Notes:           in.Notes,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if farmer, err := s.users.FindByID(ctx, crop.FarmerID); err == nil {
		s.dispatcher.Dispatch(ctx, farmer.PhoneNumber, notify.Event{
			Kind:      notify.EventOrderPlaced,
			ActorName: buyer.Username,
			CropName:  crop.Name,
			Unit:      crop.Unit,
			Quantity:  in.Quantity,
			Amount:    order.TotalAmount,
		})
	}
	return order, nil
}

func (s *orderService) Get(ctx context.Context, orderID, actorID uint64) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.BuyerID != actorID && order.FarmerID != actorID {
		return nil, ErrAccessDenied
	}
	return order, nil
}

func (s *orderService) ListForUser(ctx context.Context, user *model.User) ([]model.Order, error) {
	if user.UserType == model.UserTypeFarmer {
		return s.orders.ListByFarmer(ctx, user.ID)
	}
	return s.orders.ListByBuyer(ctx, user.ID)
}

// validTransition holds the forward edges of the order state machine. The
// paid state is reachable only through payment settlement, never through a
// direct status update.
func validTransition(from, to model.OrderStatus) bool {
	switch from {
	case model.OrderStatusPending:
		return to == model.OrderStatusAccepted || to == model.OrderStatusRejected
	case model.OrderStatusAccepted:
		return to == model.OrderStatusDelivered
	}
	return false
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID, actorID uint64, actorRole model.UserType, newStatus model.OrderStatus) error {
	for attempt := 0; attempt < maxTransitionRetries; attempt++ {
		err := s.transition(ctx, orderID, actorID, actorRole, newStatus)
		if errors.Is(err, ErrConflict) {
			// A concurrent writer changed the row; re-validate from
			// committed state rather than blindly reapplying.
			continue
		}
		return err
	}
	return ErrConflict
}

func (s *orderService) transition(ctx context.Context, orderID, actorID uint64, actorRole model.UserType, newStatus model.OrderStatus) error {
	var (
		ev      notify.Event
		toPhone string
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := repository.NewOrderRepository(tx)
		crops := repository.NewCropRepository(tx)
		users := repository.NewUserRepository(tx)

		order, err := orders.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		switch newStatus {
		case model.OrderStatusAccepted, model.OrderStatusRejected:
			if actorRole != model.UserTypeFarmer || order.FarmerID != actorID {
				return ErrAccessDenied
			}
		case model.OrderStatusDelivered:
			if order.FarmerID != actorID && order.BuyerID != actorID {
				return ErrAccessDenied
			}
		default:
			if order.FarmerID != actorID && order.BuyerID != actorID {
				return ErrAccessDenied
			}
			return ErrInvalidTransition
		}

		if !validTransition(order.Status, newStatus) {
			return ErrInvalidTransition
		}

		crop, err := crops.FindByID(ctx, order.CropID)
		if err != nil {
			return err
		}

		if newStatus == model.OrderStatusAccepted {
			remaining, cropStatus, err := applyInventory(crop.Quantity, order.Quantity)
			if err != nil {
				return err
			}
			n, err := crops.CompareAndSwapQuantity(ctx, crop.ID, crop.Quantity, remaining, cropStatus)
			if err != nil {
				return err
			}
			if n == 0 {
				return ErrConflict
			}
		}

		n, err := orders.UpdateStatusIf(ctx, order.ID, order.Status, newStatus)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrConflict
		}

		// Counterparty of whoever triggered the transition.
		counterpartID := order.BuyerID
		if actorID == order.BuyerID {
			counterpartID = order.FarmerID
		}
		counterpart, err := users.FindByID(ctx, counterpartID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		actor, err := users.FindByID(ctx, actorID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if counterpart != nil {
			toPhone = counterpart.PhoneNumber
		}
		actorName := ""
		if actor != nil {
			actorName = actor.Username
		}
		ev = notify.Event{
			Kind:      transitionEvent(newStatus),
			ActorName: actorName,
			CropName:  crop.Name,
			Unit:      crop.Unit,
			Quantity:  order.Quantity,
			Amount:    order.TotalAmount,
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.dispatcher.Dispatch(ctx, toPhone, ev)
	return nil
}

func transitionEvent(status model.OrderStatus) notify.EventKind {
	switch status {
	case model.OrderStatusAccepted:
		return notify.EventOrderAccepted
	case model.OrderStatusRejected:
		return notify.EventOrderRejected
	case model.OrderStatusDelivered:
		return notify.EventOrderDelivered
	case model.OrderStatusPaid:
		return notify.EventOrderPaid
	}
	return ""
}
