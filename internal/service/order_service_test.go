package service

import (
	"context"
	"testing"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestPlaceOrder(t *testing.T) {
	db := newTestDB(t)
	fn := &fakeNotifier{}
	svc := NewOrderService(db, newTestDispatcher(fn))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "+254700000001")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "+254700000002")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	order, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{
		CropID:          crop.ID,
		Quantity:        40,
		DeliveryAddress: "Nakuru town",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, float64(2000), order.TotalAmount)
	assert.Equal(t, farmer.ID, order.FarmerID)
	assert.Equal(t, 1, fn.sentCount(), "farmer should get an SMS")

	// Crop stock is untouched until the farmer accepts.
	var fresh model.Crop
	require.NoError(t, db.First(&fresh, crop.ID).Error)
	assert.Equal(t, float64(100), fresh.Quantity)
}

func TestPlaceOrderValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, newTestDispatcher(nil))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	_, err := svc.Place(ctx, farmer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 10})
	assert.ErrorIs(t, err, ErrAccessDenied, "farmers cannot place orders")

	_, err = svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: 9999, Quantity: 10})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 150})
	assert.ErrorIs(t, err, ErrInsufficientInventory)

	_, err = svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 0})
	assert.ErrorIs(t, err, ErrInsufficientInventory)

	require.NoError(t, db.Model(&model.Crop{}).Where("id = ?", crop.ID).
		Update("status", model.CropStatusExpired).Error)
	_, err = svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 10})
	assert.ErrorIs(t, err, ErrCropUnavailable)
}

func TestOrderTotalAmountImmutable(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, newTestDispatcher(nil))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	order, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 40})
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Crop{}).Where("id = ?", crop.ID).
		Update("price_per_unit", 80).Error)

	fresh, err := svc.Get(ctx, order.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(2000), fresh.TotalAmount)
}

func TestAcceptDecrementsInventory(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, newTestDispatcher(nil))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "+254700000010")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	first, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 40})
	require.NoError(t, err)
	second, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 70})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, first.ID, farmer.ID, model.UserTypeFarmer, model.OrderStatusAccepted))

	var fresh model.Crop
	require.NoError(t, db.First(&fresh, crop.ID).Error)
	assert.Equal(t, float64(60), fresh.Quantity)
	assert.Equal(t, model.CropStatusAvailable, fresh.Status)

	// 70 requested against 60 remaining.
	err = svc.UpdateStatus(ctx, second.ID, farmer.ID, model.UserTypeFarmer, model.OrderStatusAccepted)
	assert.ErrorIs(t, err, ErrInsufficientInventory)

	require.NoError(t, db.First(&fresh, crop.ID).Error)
	assert.Equal(t, float64(60), fresh.Quantity)
	got, err := svc.Get(ctx, second.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, got.Status, "failed accept must leave the order untouched")
}

func TestAcceptExactQuantityMarksSold(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, newTestDispatcher(nil))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "")
	crop := newTestCrop(t, db, farmer.ID, 40, 50)

	order, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 40})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(ctx, order.ID, farmer.ID, model.UserTypeFarmer, model.OrderStatusAccepted))

	var fresh model.Crop
	require.NoError(t, db.First(&fresh, crop.ID).Error)
	assert.Equal(t, float64(0), fresh.Quantity)
	assert.Equal(t, model.CropStatusSold, fresh.Status)
}

func TestTransitionAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, newTestDispatcher(nil))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	otherFarmer := newTestUser(t, db, model.UserTypeFarmer, "")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "")
	stranger := newTestUser(t, db, model.UserTypeBuyer, "")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	order, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 10})
	require.NoError(t, err)

	err = svc.UpdateStatus(ctx, order.ID, buyer.ID, model.UserTypeBuyer, model.OrderStatusAccepted)
	assert.ErrorIs(t, err, ErrAccessDenied, "only the farmer may accept")

	err = svc.UpdateStatus(ctx, order.ID, otherFarmer.ID, model.UserTypeFarmer, model.OrderStatusAccepted)
	assert.ErrorIs(t, err, ErrAccessDenied, "only the order's farmer may accept")

	err = svc.UpdateStatus(ctx, order.ID, buyer.ID, model.UserTypeBuyer, model.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition, "pending orders cannot be delivered")

	err = svc.UpdateStatus(ctx, order.ID, farmer.ID, model.UserTypeFarmer, model.OrderStatusPaid)
	assert.ErrorIs(t, err, ErrInvalidTransition, "paid is only reachable through settlement")

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, farmer.ID, model.UserTypeFarmer, model.OrderStatusAccepted))

	err = svc.UpdateStatus(ctx, order.ID, stranger.ID, model.UserTypeBuyer, model.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Either party of the order may mark delivery.
	require.NoError(t, svc.UpdateStatus(ctx, order.ID, buyer.ID, model.UserTypeBuyer, model.OrderStatusDelivered))
}

func TestTransitionIdempotence(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, newTestDispatcher(nil))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	order, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 30})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, farmer.ID, model.UserTypeFarmer, model.OrderStatusAccepted))

	// Repeating the same transition must fail and must not decrement twice.
	err = svc.UpdateStatus(ctx, order.ID, farmer.ID, model.UserTypeFarmer, model.OrderStatusAccepted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	err = svc.UpdateStatus(ctx, order.ID, farmer.ID, model.UserTypeFarmer, model.OrderStatusAccepted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var fresh model.Crop
	require.NoError(t, db.First(&fresh, crop.ID).Error)
	assert.Equal(t, float64(70), fresh.Quantity)
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, newTestDispatcher(nil))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	order, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 10})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(ctx, order.ID, farmer.ID, model.UserTypeFarmer, model.OrderStatusRejected))

	for _, target := range []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusAccepted,
		model.OrderStatusDelivered,
		model.OrderStatusPaid,
	} {
		err := svc.UpdateStatus(ctx, order.ID, farmer.ID, model.UserTypeFarmer, target)
		assert.ErrorIs(t, err, ErrInvalidTransition, "rejected is terminal, got %v for %s", err, target)
	}

	var fresh model.Crop
	require.NoError(t, db.First(&fresh, crop.ID).Error)
	assert.Equal(t, float64(100), fresh.Quantity, "rejection must not touch inventory")
}

func TestNotifierFailureDoesNotFailTransition(t *testing.T) {
	db := newTestDB(t)
	fn := &fakeNotifier{fail: true}
	svc := NewOrderService(db, newTestDispatcher(fn))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "+254700000020")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "+254700000021")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	order, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 10})
	require.NoError(t, err, "order placement survives a dead SMS gateway")

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, farmer.ID, model.UserTypeFarmer, model.OrderStatusAccepted))
	got, err := svc.Get(ctx, order.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusAccepted, got.Status)
}

func TestConcurrentAcceptCannotOversell(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, newTestDispatcher(nil))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	const orders = 5
	ids := make([]uint64, 0, orders)
	for i := 0; i < orders; i++ {
		order, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 30})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	results := make([]error, orders)
	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			results[i] = svc.UpdateStatus(ctx, id, farmer.ID, model.UserTypeFarmer, model.OrderStatusAccepted)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	accepted, insufficient := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			accepted++
		case assert.ErrorIs(t, err, ErrInsufficientInventory):
			insufficient++
		}
	}
	assert.Equal(t, 3, accepted, "only three 30kg orders fit into 100kg")
	assert.Equal(t, 2, insufficient)

	var fresh model.Crop
	require.NoError(t, db.First(&fresh, crop.ID).Error)
	assert.Equal(t, float64(10), fresh.Quantity)
	assert.Equal(t, model.CropStatusAvailable, fresh.Status)
}

func TestConcurrentAcceptExactFit(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, newTestDispatcher(nil))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	first, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 50})
	require.NoError(t, err)
	second, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 50})
	require.NoError(t, err)

	var g errgroup.Group
	for _, id := range []uint64{first.ID, second.ID} {
		id := id
		g.Go(func() error {
			return svc.UpdateStatus(ctx, id, farmer.ID, model.UserTypeFarmer, model.OrderStatusAccepted)
		})
	}
	require.NoError(t, g.Wait())

	var fresh model.Crop
	require.NoError(t, db.First(&fresh, crop.ID).Error)
	assert.Equal(t, float64(0), fresh.Quantity)
	assert.Equal(t, model.CropStatusSold, fresh.Status)
}

func TestListForUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, newTestDispatcher(nil))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	buyer := newTestUser(t, db, model.UserTypeBuyer, "")
	other := newTestUser(t, db, model.UserTypeBuyer, "")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	_, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 10})
	require.NoError(t, err)
	_, err = svc.Place(ctx, other.ID, PlaceOrderInput{CropID: crop.ID, Quantity: 10})
	require.NoError(t, err)

	forFarmer, err := svc.ListForUser(ctx, farmer)
	require.NoError(t, err)
	assert.Len(t, forFarmer, 2)

	forBuyer, err := svc.ListForUser(ctx, buyer)
	require.NoError(t, err)
	assert.Len(t, forBuyer, 1)

	_, err = svc.Get(ctx, forBuyer[0].ID, other.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
