package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kavinraj/scantrack/internal/models"
	"github.com/kavinraj/scantrack/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService covers the profile CRUD surface and the scan-history reads.
type UserService struct {
	store store.UserStore
}

func NewUserService(s store.UserStore) *UserService {
	return &UserService{store: s}
}

// ProfileUpdate carries the fields a PUT may merge into the user document.
// Empty fields are left untouched.
type ProfileUpdate struct {
	Fullname string `json:"fullname"`
	Mail     string `json:"mail"`
	Timezone string `json:"timezone"`
	Password string `json:"password"`
}

func (s *UserService) Profile(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	return s.store.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) error {
	fields := map[string]interface{}{}
	if update.Fullname != "" {
		fields["fullname"] = update.Fullname
	}
	if update.Mail != "" {
		fields["mail"] = update.Mail
	}
	if update.Timezone != "" {
		fields["timezone"] = update.Timezone
	}
	if update.Password != "" {
		hashed, err := HashPassword(update.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fields["password"] = hashed
	}
	if len(fields) == 0 {
		return nil
	}
	return s.store.Update(ctx, id, fields)
}

func (s *UserService) SetAvatar(ctx context.Context, id primitive.ObjectID, url string) error {
	return s.store.Update(ctx, id, map[string]interface{}{"avatar": url})
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.store.Delete(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.Profile, error) {
	return s.store.List(ctx)
}

// History returns the full scan history joined with product records. An
// unknown id degenerates to an empty result rather than an error.
func (s *UserService) History(ctx context.Context, id primitive.ObjectID) (*store.HistoryResult, error) {
	result, err := s.store.HistoryWithProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return &store.HistoryResult{
			ID:          id,
			History:     []models.ScanEvent{},
			ProductInfo: []models.Product{},
		}, nil
	}
	return result, nil
}

// AddScan appends one scan event for the product. The product reference is
// not validated here; a dangling reference simply joins to an empty
// productInfo later.
func (s *UserService) AddScan(ctx context.Context, userID, productID primitive.ObjectID) error {
	return s.store.AppendScan(ctx, userID, productID, time.Now())
}

// StatsAndLastProduct runs the two stats branches concurrently and merges
// the present rows in the fixed order [lastScan, todayCount]. Either
// branch's failure fails the whole operation; no partial result is returned.
func (s *UserService) StatsAndLastProduct(ctx context.Context, userID primitive.ObjectID) ([]interface{}, error) {
	lastChan := make(chan struct {
		row *store.LastScan
		err error
	}, 1)
	todayChan := make(chan struct {
		row *store.TodayCount
		err error
	}, 1)

	go func() {
		row, err := s.store.LastScanWithProduct(ctx, userID)
		lastChan <- struct {
			row *store.LastScan
			err error
		}{row, err}
	}()

	go func() {
		row, err := s.store.CountScansToday(ctx, userID, time.Now())
		todayChan <- struct {
			row *store.TodayCount
			err error
		}{row, err}
	}()

	last := <-lastChan
	today := <-todayChan

	if last.err != nil {
		return nil, fmt.Errorf("stats query failed: %w", last.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("stats query failed: %w", today.err)
	}

	merged := []interface{}{}
	if last.row != nil {
		merged = append(merged, last.row)
	}
	if today.row != nil {
		merged = append(merged, today.row)
	}
	return merged, nil
}
