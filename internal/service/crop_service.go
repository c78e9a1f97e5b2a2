package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/repository"
	"gorm.io/gorm"
)

type CreateCropInput struct {
	Name         string
	Category     string
	Quantity     float64
	Unit         string
	PricePerUnit float64
	Description  string
	HarvestDate  *time.Time
	ExpiryDate   *time.Time
	Location     string
	County       string
	QualityGrade string
}

type CropService interface {
	Create(ctx context.Context, farmer *model.User, in CreateCropInput) (*model.Crop, error)
	Get(ctx context.Context, id uint64) (*model.Crop, error)
	ListAvailable(ctx context.Context, filter repository.CropFilter) ([]model.Crop, error)
	ListByFarmer(ctx context.Context, farmerID uint64) ([]model.Crop, error)
	MarkExpired(ctx context.Context, cropID, actorID uint64) error
}

type cropService struct {
	crops repository.CropRepository
}

func NewCropService(crops repository.CropRepository) CropService {
	return &cropService{crops: crops}
}

func (s *cropService) Create(ctx context.Context, farmer *model.User, in CreateCropInput) (*model.Crop, error) {
	if farmer == nil || farmer.UserType != model.UserTypeFarmer {
		return nil, ErrAccessDenied
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" || len(in.Name) > 100 {
		return nil, errors.New("invalid name")
	}
	if in.Category == "" {
		return nil, errors.New("category is required")
	}
	if in.Unit == "" {
		return nil, errors.New("unit is required")
	}
	if in.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if in.PricePerUnit <= 0 {
		return nil, errors.New("price must be positive")
	}
	if in.QualityGrade == "" {
		in.QualityGrade = "A"
	}
	// Listings default to the farmer's own location when none is given.
	if in.Location == "" {
		in.Location = farmer.Location
	}
	if in.County == "" {
		in.County = farmer.County
	}

	crop := &model.Crop{
		FarmerID:     farmer.ID,
		Name:         in.Name,
		Category:     in.Category,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		PricePerUnit: in.PricePerUnit,
		Description:  in.Description,
		HarvestDate:  in.HarvestDate,
		ExpiryDate:   in.ExpiryDate,
		Location:     in.Location,
		County:       in.County,
		QualityGrade: in.QualityGrade,
		Status:       model.CropStatusAvailable,
	}
	if err := s.crops.Create(ctx, crop); err != nil {
		return nil, err
	}
	return crop, nil
}

func (s *cropService) Get(ctx context.Context, id uint64) (*model.Crop, error) {
	crop, err := s.crops.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return crop, nil
}

func (s *cropService) ListAvailable(ctx context.Context, filter repository.CropFilter) ([]model.Crop, error) {
	return s.crops.ListAvailable(ctx, filter)
}

func (s *cropService) ListByFarmer(ctx context.Context, farmerID uint64) ([]model.Crop, error) {
	return s.crops.ListByFarmer(ctx, farmerID)
}

// MarkExpired soft-expires a listing. Crops are never deleted.
func (s *cropService) MarkExpired(ctx context.Context, cropID, actorID uint64) error {
	crop, err := s.crops.FindByID(ctx, cropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if crop.FarmerID != actorID {
		return ErrAccessDenied
	}
	if crop.Status != model.CropStatusAvailable {
		return ErrInvalidTransition
	}
	return s.crops.UpdateStatus(ctx, crop.ID, model.CropStatusExpired)
}
