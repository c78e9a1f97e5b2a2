package service

import (
	"context"
	"testing"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCrop(t *testing.T) {
	db := newTestDB(t)
	svc := NewCropService(repository.NewCropRepository(db))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	farmer.Location = "Molo"
	farmer.County = "Nakuru"
	require.NoError(t, db.Save(farmer).Error)
	buyer := newTestUser(t, db, model.UserTypeBuyer, "")

	crop, err := svc.Create(ctx, farmer, CreateCropInput{
		Name:         " Maize ",
		Category:     "Cereals",
		Quantity:     100,
		Unit:         "kg",
		PricePerUnit: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, "Maize", crop.Name)
	assert.Equal(t, model.CropStatusAvailable, crop.Status)
	assert.Equal(t, "A", crop.QualityGrade)
	assert.Equal(t, "Molo", crop.Location, "listing inherits the farmer's location")
	assert.Equal(t, "Nakuru", crop.County)

	_, err = svc.Create(ctx, buyer, CreateCropInput{
		Name: "Maize", Category: "Cereals", Quantity: 10, Unit: "kg", PricePerUnit: 50,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Create(ctx, farmer, CreateCropInput{
		Name: "Maize", Category: "Cereals", Quantity: -5, Unit: "kg", PricePerUnit: 50,
	})
	assert.Error(t, err)
}

func TestListAvailableFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewCropService(repository.NewCropRepository(db))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")

	mk := func(name, category, county string, price float64) {
		_, err := svc.Create(ctx, farmer, CreateCropInput{
			Name: name, Category: category, Quantity: 10, Unit: "kg",
			PricePerUnit: price, County: county,
		})
		require.NoError(t, err)
	}
	mk("Maize", "Cereals", "Nakuru", 50)
	mk("Beans", "Legumes", "Nakuru", 120)
	mk("Kale", "Vegetables", "Kiambu", 30)

	all, err := svc.ListAvailable(ctx, repository.CropFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCounty, err := svc.ListAvailable(ctx, repository.CropFilter{County: "Nakuru"})
	require.NoError(t, err)
	assert.Len(t, byCounty, 2)

	cheap, err := svc.ListAvailable(ctx, repository.CropFilter{MaxPrice: 60})
	require.NoError(t, err)
	assert.Len(t, cheap, 2)

	search, err := svc.ListAvailable(ctx, repository.CropFilter{Search: "bean"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Beans", search[0].Name)
}

func TestMarkExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewCropService(repository.NewCropRepository(db))
	ctx := context.Background()

	farmer := newTestUser(t, db, model.UserTypeFarmer, "")
	other := newTestUser(t, db, model.UserTypeFarmer, "")
	crop := newTestCrop(t, db, farmer.ID, 100, 50)

	assert.ErrorIs(t, svc.MarkExpired(ctx, crop.ID, other.ID), ErrAccessDenied)
	assert.ErrorIs(t, svc.MarkExpired(ctx, 9999, farmer.ID), ErrNotFound)

	require.NoError(t, svc.MarkExpired(ctx, crop.ID, farmer.ID))

	// Expired listings drop out of the marketplace and cannot be expired again.
	available, err := svc.ListAvailable(ctx, repository.CropFilter{})
	require.NoError(t, err)
	assert.Empty(t, available)
	assert.ErrorIs(t, svc.MarkExpired(ctx, crop.ID, farmer.ID), ErrInvalidTransition)
}
