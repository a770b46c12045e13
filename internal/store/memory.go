package store

import (
	"context"
	"sync"
	"time"

	"github.com/kavinraj/scantrack/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory UserStore for tests and local development. It
// mirrors the aggregation semantics of the mongo implementation, including
// the quirks: unknown ids yield empty aggregation results and a zero today
// count yields no row.
type Memory struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]*models.User
	products map[primitive.ObjectID]models.Product
}

var _ UserStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[primitive.ObjectID]*models.User),
		products: make(map[primitive.ObjectID]models.Product),
	}
}

// SeedProduct registers a product record for the join paths. Products are
// owned by an external catalog, so this exists only for seeding.
func (m *Memory) SeedProduct(p models.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

func (m *Memory) Create(ctx context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := user
	if u.History == nil {
		u.History = []models.ScanEvent{}
	}
	m.users[u.ID] = &u
	return nil
}

func profileOf(u *models.User) models.Profile {
	return models.Profile{
		ID:               u.ID,
		Fullname:         u.Fullname,
		Mail:             u.Mail,
		Timezone:         u.Timezone,
		Avatar:           u.Avatar,
		NumberScan:       u.NumberScan,
		RegistrationDate: u.RegistrationDate,
	}
}

func (m *Memory) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := profileOf(u)
	return &p, nil
}

func (m *Memory) GetByMail(ctx context.Context, mail string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Mail == mail {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range fields {
		s, _ := value.(string)
		switch key {
		case "fullname":
			u.Fullname = s
		case "mail":
			u.Mail = s
		case "timezone":
			u.Timezone = s
		case "password":
			u.Password = s
		case "avatar":
			u.Avatar = s
		}
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *Memory) List(ctx context.Context) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profiles := make([]models.Profile, 0, len(m.users))
	for _, u := range m.users {
		profiles = append(profiles, profileOf(u))
	}
	return profiles, nil
}

func (m *Memory) AppendScan(ctx context.Context, userID, productID primitive.ObjectID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.History = append(u.History, models.ScanEvent{Product: productID, DateScan: at, Owner: false})
	u.NumberScan++
	return nil
}

func (m *Memory) HistoryWithProducts(ctx context.Context, userID primitive.ObjectID) (*HistoryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	result := HistoryResult{
		ID:          u.ID,
		History:     append([]models.ScanEvent{}, u.History...),
		ProductInfo: []models.Product{},
	}
	for _, ev := range u.History {
		if p, ok := m.products[ev.Product]; ok {
			result.ProductInfo = append(result.ProductInfo, p)
		}
	}
	return &result, nil
}

func (m *Memory) LastScanWithProduct(ctx context.Context, userID primitive.ObjectID) (*LastScan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || len(u.History) == 0 {
		return nil, nil
	}

	// Later-appended events win timestamp ties, matching a stable
	// ascending sort followed by a tail slice.
	last := u.History[0]
	for _, ev := range u.History[1:] {
		if !ev.DateScan.Before(last.DateScan) {
			last = ev
		}
	}

	result := LastScan{
		ID:          u.ID,
		NumberScan:  u.NumberScan,
		History:     []models.ScanEvent{last},
		ProductInfo: []models.Product{},
	}
	if p, ok := m.products[last.Product]; ok {
		result.ProductInfo = append(result.ProductInfo, p)
	}
	return &result, nil
}

func (m *Memory) CountScansToday(ctx context.Context, userID primitive.ObjectID, now time.Time) (*TodayCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}

	start, end := dayWindow(now)
	count := 0
	for _, ev := range u.History {
		if !ev.DateScan.Before(start) && !ev.DateScan.After(end) {
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	return &TodayCount{TotalToday: count}, nil
}
