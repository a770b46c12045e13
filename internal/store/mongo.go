package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kavinraj/scantrack/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements UserStore on top of the users and products collections.
type Mongo struct {
	users    *mongo.Collection
	products *mongo.Collection
}

var _ UserStore = (*Mongo)(nil)

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		users:    db.Collection("users"),
		products: db.Collection(productsLookup),
	}
}

// profileProjection keeps the profile-read path free of the password hash.
var profileProjection = bson.M{
	"fullname":          1,
	"mail":              1,
	"timezone":          1,
	"avatar":            1,
	"number_scan":       1,
	"registration_date": 1,
}

func (m *Mongo) Create(ctx context.Context, user models.User) error {
	if _, err := m.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (m *Mongo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := m.users.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(profileProjection)).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &profile, nil
}

func (m *Mongo) GetByMail(ctx context.Context, mail string) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"mail": mail}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (m *Mongo) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	res, err := m.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) List(ctx context.Context) ([]models.Profile, error) {
	cursor, err := m.users.Find(ctx, bson.M{}, options.Find().SetProjection(profileProjection))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}
	return profiles, nil
}

// AppendScan pushes the event and bumps the counter in one UpdateOne, so the
// number_scan == len(history) invariant holds under concurrent scans.
func (m *Mongo) AppendScan(ctx context.Context, userID, productID primitive.ObjectID, at time.Time) error {
	event := models.ScanEvent{Product: productID, DateScan: at, Owner: false}
	res, err := m.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"history": event},
		"$inc":  bson.M{"number_scan": 1},
	})
	if err != nil {
		return fmt.Errorf("failed to append scan: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) HistoryWithProducts(ctx context.Context, userID primitive.ObjectID) (*HistoryResult, error) {
	cursor, err := m.users.Aggregate(ctx, historyPipeline(userID))
	if err != nil {
		return nil, fmt.Errorf("history query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []HistoryResult
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding history: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (m *Mongo) LastScanWithProduct(ctx context.Context, userID primitive.ObjectID) (*LastScan, error) {
	cursor, err := m.users.Aggregate(ctx, lastScanPipeline(userID))
	if err != nil {
		return nil, fmt.Errorf("last scan query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []LastScan
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding last scan: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (m *Mongo) CountScansToday(ctx context.Context, userID primitive.ObjectID, now time.Time) (*TodayCount, error) {
	cursor, err := m.users.Aggregate(ctx, todayCountPipeline(userID, now))
	if err != nil {
		return nil, fmt.Errorf("today count query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []TodayCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding today count: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
