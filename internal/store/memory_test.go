package store

import (
	"context"
	"testing"
	"time"

	"github.com/kavinraj/scantrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUser(t *testing.T, m *Memory) primitive.ObjectID {
	t.Helper()
	id := primitive.NewObjectID()
	err := m.Create(context.Background(), models.User{
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

func TestAppendScanKeepsCounterInSync(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	id := newUser(t, m)

	for i := 0; i < 5; i++ {
		require.NoError(t, m.AppendScan(ctx, id, primitive.NewObjectID(), time.Now()))
	}

	profile, err := m.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, profile.NumberScan)

	history, err := m.HistoryWithProducts(ctx, id)
	require.NoError(t, err)
	assert.Len(t, history.History, 5)
}

func TestAppendScanUnknownUser(t *testing.T) {
	m := NewMemory()
	err := m.AppendScan(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLastScanEmptyHistory(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	id := newUser(t, m)

	row, err := m.LastScanWithProduct(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, row)

	// Unknown user yields zero rows, not an error.
	row, err = m.LastScanWithProduct(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestLastScanPicksMaxDate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	id := newUser(t, m)

	oldProduct := primitive.NewObjectID()
	newProduct := primitive.NewObjectID()
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	require.NoError(t, m.AppendScan(ctx, id, newProduct, base.Add(time.Hour)))
	require.NoError(t, m.AppendScan(ctx, id, oldProduct, base))

	row, err := m.LastScanWithProduct(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Len(t, row.History, 1)
	assert.Equal(t, newProduct, row.History[0].Product)
	assert.Equal(t, 2, row.NumberScan)
}

func TestLastScanTieBreakLaterAppendWins(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	id := newUser(t, m)

	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	require.NoError(t, m.AppendScan(ctx, id, first, at))
	require.NoError(t, m.AppendScan(ctx, id, second, at))

	row, err := m.LastScanWithProduct(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, second, row.History[0].Product)
}

func TestLastScanJoinsProduct(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	id := newUser(t, m)

	product := models.Product{
		ID:      primitive.NewObjectID(),
		Barcode: "3274080005003",
		Name:    "Sparkling Water",
		Bin:     "recycling",
	}
	m.SeedProduct(product)

	require.NoError(t, m.AppendScan(ctx, id, product.ID, time.Now()))

	row, err := m.LastScanWithProduct(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Len(t, row.ProductInfo, 1)
	assert.Equal(t, "Sparkling Water", row.ProductInfo[0].Name)
}

func TestLastScanDanglingProductReference(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	id := newUser(t, m)

	require.NoError(t, m.AppendScan(ctx, id, primitive.NewObjectID(), time.Now()))

	row, err := m.LastScanWithProduct(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Len(t, row.History, 1)
	assert.Empty(t, row.ProductInfo)
}

func TestCountScansTodayWindow(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	id := newUser(t, m)

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	start, end := dayWindow(now)

	product := primitive.NewObjectID()
	require.NoError(t, m.AppendScan(ctx, id, product, start))                           // midnight counts
	require.NoError(t, m.AppendScan(ctx, id, product, end))                             // 23:59:59 counts
	require.NoError(t, m.AppendScan(ctx, id, product, end.Add(999*time.Millisecond)))   // 23:59:59.999 does not
	require.NoError(t, m.AppendScan(ctx, id, product, start.Add(-time.Second)))         // day before
	require.NoError(t, m.AppendScan(ctx, id, product, start.Add(24*time.Hour)))         // day after

	row, err := m.CountScansToday(ctx, id, now)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 2, row.TotalToday)
}

func TestCountScansTodayAbsentWhenZero(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	id := newUser(t, m)

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, m.AppendScan(ctx, id, primitive.NewObjectID(), now.Add(-48*time.Hour)))

	row, err := m.CountScansToday(ctx, id, now)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestHistoryUnknownUser(t *testing.T) {
	m := NewMemory()
	result, err := m.HistoryWithProducts(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestProfileExcludesPassword(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	id := primitive.NewObjectID()
	require.NoError(t, m.Create(ctx, models.User{ID: id, Mail: "a@b.c", Password: "hash"}))

	profile, err := m.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", profile.Mail)
	// Profile has no password field at all; the full document is only
	// reachable through the login path.
	user, err := m.GetByMail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "hash", user.Password)
}
