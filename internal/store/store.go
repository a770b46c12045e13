// Package store persists user documents and runs the scan-history
// aggregations against them.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/kavinraj/scantrack/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup or targeted write matches no user.
var ErrNotFound = errors.New("user not found")

// LastScan is the "last scan" aggregation row: the user's counter, the single
// most recent scan event, and the product record it references (empty when
// the reference is dangling).
type LastScan struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	NumberScan  int                `bson:"number_scan" json:"number_scan"`
	History     []models.ScanEvent `bson:"history" json:"history"`
	ProductInfo []models.Product   `bson:"product_info" json:"productInfo"`
}

// TodayCount is the "today" aggregation row. The row is absent entirely when
// no scan falls inside the current day.
type TodayCount struct {
	TotalToday int `bson:"total_today" json:"total_today"`
}

// HistoryResult is the full history of one user joined with product records.
type HistoryResult struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	History     []models.ScanEvent `bson:"history" json:"history"`
	ProductInfo []models.Product   `bson:"product_info" json:"productInfo"`
}

// UserStore is the persistence surface the services run against. The mongo
// implementation is the real one; the memory implementation backs tests.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error)
	GetByMail(ctx context.Context, mail string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]models.Profile, error)

	// AppendScan pushes one scan event and increments number_scan in the
	// same update, so the counter can never drift from len(history).
	AppendScan(ctx context.Context, userID, productID primitive.ObjectID, at time.Time) error

	// HistoryWithProducts returns nil when the user id matches nothing.
	HistoryWithProducts(ctx context.Context, userID primitive.ObjectID) (*HistoryResult, error)

	// LastScanWithProduct returns nil for a missing user or an empty history.
	LastScanWithProduct(ctx context.Context, userID primitive.ObjectID) (*LastScan, error)

	// CountScansToday returns nil when no event falls inside the calendar
	// day containing now.
	CountScansToday(ctx context.Context, userID primitive.ObjectID, now time.Time) (*TodayCount, error)
}
