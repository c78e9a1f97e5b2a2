package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/notify"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Serialize transactions so concurrent tests exercise the
	// compare-and-set paths deterministically.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Crop{},
		&model.Order{},
		&model.Transaction{},
		&model.Message{},
	))
	return db
}

var userSeq int

func newTestUser(t *testing.T, db *gorm.DB, userType model.UserType, phone string) *model.User {
	t.Helper()
	userSeq++
	user := &model.User{
		Username:     fmt.Sprintf("%s%d", userType, userSeq),
		Email:        fmt.Sprintf("%s%d@example.com", userType, userSeq),
		PasswordHash: "x",
		PhoneNumber:  phone,
		UserType:     userType,
		County:       "Nakuru",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newTestCrop(t *testing.T, db *gorm.DB, farmerID uint64, quantity, price float64) *model.Crop {
	t.Helper()
	crop := &model.Crop{
		FarmerID:     farmerID,
		Name:         "Maize",
		Category:     "Cereals",
		Quantity:     quantity,
		Unit:         "kg",
		PricePerUnit: price,
		County:       "Nakuru",
		QualityGrade: "A",
		Status:       model.CropStatusAvailable,
	}
	require.NoError(t, db.Create(crop).Error)
	return crop
}

// fakeNotifier records outbound texts; it can be told to fail every send.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (f *fakeNotifier) Send(_ context.Context, phoneNumber, text string) error {
	if f.fail {
		return errors.New("gateway down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, phoneNumber+"|"+text)
	return nil
}

func (f *fakeNotifier) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestDispatcher(n notify.Notifier) *notify.Dispatcher {
	return notify.NewDispatcher(n)
}
