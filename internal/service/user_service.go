package service

import (
	"context"
	"errors"
	"strings"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	UserType    model.UserType
	PhoneNumber string
	Location    string
	County      string
}

type PlatformStats struct {
	TotalUsers   int64 `json:"total_users"`
	TotalFarmers int64 `json:"total_farmers"`
	TotalBuyers  int64 `json:"total_buyers"`
	TotalCrops   int64 `json:"total_crops"`
	TotalOrders  int64 `json:"total_orders"`
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Get(ctx context.Context, id uint64) (*model.User, error)
	List(ctx context.Context, actor *model.User) ([]model.User, error)
	Stats(ctx context.Context, actor *model.User) (*PlatformStats, error)
}

type userService struct {
	users  repository.UserRepository
	crops  repository.CropRepository
	orders repository.OrderRepository
}

func NewUserService(users repository.UserRepository, crops repository.CropRepository, orders repository.OrderRepository) UserService {
	return &userService{users: users, crops: crops, orders: orders}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Username == "" || len(in.Username) > 64 {
		return nil, errors.New("invalid username")
	}
	if in.Email == "" {
		return nil, errors.New("email is required")
	}
	if len(in.Password) < 6 {
		return nil, errors.New("password too short")
	}
	switch in.UserType {
	case model.UserTypeFarmer, model.UserTypeBuyer, model.UserTypeAdmin:
	default:
		return nil, errors.New("invalid user type")
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		PhoneNumber:  in.PhoneNumber,
		UserType:     in.UserType,
		Location:     in.Location,
		County:       in.County,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, actor *model.User) ([]model.User, error) {
	if actor == nil || actor.UserType != model.UserTypeAdmin {
		return nil, ErrAccessDenied
	}
	return s.users.List(ctx)
}

func (s *userService) Stats(ctx context.Context, actor *model.User) (*PlatformStats, error) {
	if actor == nil || actor.UserType != model.UserTypeAdmin {
		return nil, ErrAccessDenied
	}
	stats := &PlatformStats{}
	var err error
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalFarmers, err = s.users.CountByType(ctx, model.UserTypeFarmer); err != nil {
		return nil, err
	}
	if stats.TotalBuyers, err = s.users.CountByType(ctx, model.UserTypeBuyer); err != nil {
		return nil, err
	}
	if stats.TotalCrops, err = s.crops.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}
