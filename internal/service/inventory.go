package service

import "github.com/agriconnect/agrimarket-backend/internal/model"

// applyInventory computes the crop quantity and status after reserving
// requested units. It never touches storage: the caller must apply the result
// inside the same transaction as the order status write.
func applyInventory(quantity, requested float64) (float64, model.CropStatus, error) {
	if requested <= 0 || requested > quantity {
		return 0, "", ErrInsufficientInventory
	}
	remaining := quantity - requested
	status := model.CropStatusAvailable
	if remaining <= 0 {
		status = model.CropStatusSold
	}
	return remaining, status, nil
}
