package services

import (
	"context"
	"testing"
	"time"

	"github.com/kavinraj/scantrack/internal/models"
	"github.com/kavinraj/scantrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedUser(t *testing.T, mem *store.Memory) primitive.ObjectID {
	t.Helper()
	id := primitive.NewObjectID()
	err := mem.Create(context.Background(), models.User{
		ID:               id,
		Fullname:         "Test User",
		Mail:             "test@example.com",
		Timezone:         "Europe/Paris",
		Roles:            []string{"user"},
		RegistrationDate: time.Now(),
	})
	require.NoError(t, err)
	return id
}

func TestStatsEmptyHistory(t *testing.T) {
	mem := store.NewMemory()
	svc := NewUserService(mem)
	id := seedUser(t, mem)

	merged, err := svc.StatsAndLastProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, merged)
}

func TestStatsUnknownUser(t *testing.T) {
	svc := NewUserService(store.NewMemory())

	merged, err := svc.StatsAndLastProduct(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, merged)
}

func TestStatsMergeOrderAndContent(t *testing.T) {
	mem := store.NewMemory()
	svc := NewUserService(mem)
	ctx := context.Background()
	id := seedUser(t, mem)

	product := models.Product{ID: primitive.NewObjectID(), Name: "Oat Milk", Bin: "recycling"}
	mem.SeedProduct(product)

	// AddScan timestamps with time.Now(), so every scan lands in today's
	// window and the last appended one is the most recent.
	otherProduct := primitive.NewObjectID()
	require.NoError(t, svc.AddScan(ctx, id, otherProduct))
	require.NoError(t, svc.AddScan(ctx, id, otherProduct))
	require.NoError(t, svc.AddScan(ctx, id, product.ID))

	merged, err := svc.StatsAndLastProduct(ctx, id)
	require.NoError(t, err)
	require.Len(t, merged, 2)

	last, ok := merged[0].(*store.LastScan)
	require.True(t, ok, "first merged element must be the last-scan row")
	assert.Equal(t, 3, last.NumberScan)
	require.Len(t, last.History, 1)
	assert.Equal(t, product.ID, last.History[0].Product)
	require.Len(t, last.ProductInfo, 1)
	assert.Equal(t, "Oat Milk", last.ProductInfo[0].Name)

	today, ok := merged[1].(*store.TodayCount)
	require.True(t, ok, "second merged element must be the today count")
	assert.Equal(t, 3, today.TotalToday)
}

func TestAppendInvariant(t *testing.T) {
	mem := store.NewMemory()
	svc := NewUserService(mem)
	ctx := context.Background()
	id := seedUser(t, mem)

	const n = 7
	for i := 0; i < n; i++ {
		require.NoError(t, svc.AddScan(ctx, id, primitive.NewObjectID()))
	}

	profile, err := svc.Profile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, n, profile.NumberScan)

	history, err := svc.History(ctx, id)
	require.NoError(t, err)
	assert.Len(t, history.History, n)
}

func TestHistoryPreservesAppendOrder(t *testing.T) {
	mem := store.NewMemory()
	svc := NewUserService(mem)
	ctx := context.Background()
	id := seedUser(t, mem)

	products := []primitive.ObjectID{
		primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(),
	}
	for _, p := range products {
		require.NoError(t, svc.AddScan(ctx, id, p))
	}

	history, err := svc.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history.History, len(products))
	for i, p := range products {
		assert.Equal(t, p, history.History[i].Product)
	}
}

func TestHistoryUnknownUserDegeneratesToEmpty(t *testing.T) {
	svc := NewUserService(store.NewMemory())

	history, err := svc.History(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	require.NotNil(t, history)
	assert.Empty(t, history.History)
	assert.Empty(t, history.ProductInfo)
}

func TestAddScanUnknownUser(t *testing.T) {
	svc := NewUserService(store.NewMemory())
	err := svc.AddScan(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	mem := store.NewMemory()
	svc := NewUserService(mem)
	ctx := context.Background()
	id := seedUser(t, mem)

	err := svc.UpdateProfile(ctx, id, ProfileUpdate{Fullname: "New Name", Password: "newpassword"})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New Name", profile.Fullname)

	user, err := mem.GetByMail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "newpassword", user.Password)
	assert.True(t, VerifyPassword("newpassword", user.Password))
}
