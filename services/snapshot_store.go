package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/accelconnect/restauration-gateway/models"
	"gorm.io/gorm"
)

// PersistedCart is the deserialized form of a cart snapshot.
type PersistedCart struct {
	Items     []models.CartLine `json:"items"`
	SavedDate string            `json:"savedDate"`
}

// SnapshotStore persists one cart snapshot per user, keyed by the user's
// identity. Load returns (nil, nil) when no snapshot exists and an error
// when one exists but cannot be decoded.
type SnapshotStore interface {
	Load(userID string) (*PersistedCart, error)
	Save(userID string, snap PersistedCart) error
	Delete(userID string) error
}

func snapshotKey(userID string) string {
	return fmt.Sprintf("cart_user_%s", userID)
}

// GormSnapshotStore keeps snapshots in the gateway database, the whole
// line collection as one JSON blob so a mutation is a single-row upsert.
type GormSnapshotStore struct {
	DB *gorm.DB
}

func NewGormSnapshotStore(db *gorm.DB) *GormSnapshotStore {
	return &GormSnapshotStore{DB: db}
}

func (g *GormSnapshotStore) Load(userID string) (*PersistedCart, error) {
	var row models.CartSnapshot
	err := g.DB.Where("user_key = ?", snapshotKey(userID)).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartLine
	if err := json.Unmarshal([]byte(row.Items), &items); err != nil {
		return nil, fmt.Errorf("corrupt cart snapshot: %w", err)
	}
	return &PersistedCart{Items: items, SavedDate: row.SavedDate}, nil
}

func (g *GormSnapshotStore) Save(userID string, snap PersistedCart) error {
	if snap.Items == nil {
		snap.Items = []models.CartLine{}
	}
	data, err := json.Marshal(snap.Items)
	if err != nil {
		return err
	}

	row := models.CartSnapshot{
		UserKey:   snapshotKey(userID),
		Items:     string(data),
		SavedDate: snap.SavedDate,
		UpdatedAt: time.Now(),
	}
	return g.DB.Save(&row).Error
}

func (g *GormSnapshotStore) Delete(userID string) error {
	return g.DB.Where("user_key = ?", snapshotKey(userID)).Delete(&models.CartSnapshot{}).Error
}

// MemorySnapshotStore is the in-process equivalent, used by tests.
type MemorySnapshotStore struct {
	mu   sync.Mutex
	rows map[string]string
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{rows: make(map[string]string)}
}

func (m *MemorySnapshotStore) Load(userID string) (*PersistedCart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.rows[snapshotKey(userID)]
	if !ok {
		return nil, nil
	}
	var snap PersistedCart
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("corrupt cart snapshot: %w", err)
	}
	return &snap, nil
}

func (m *MemorySnapshotStore) Save(userID string, snap PersistedCart) error {
	if snap.Items == nil {
		snap.Items = []models.CartLine{}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[snapshotKey(userID)] = string(data)
	return nil
}

func (m *MemorySnapshotStore) Delete(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, snapshotKey(userID))
	return nil
}

// Corrupt overwrites a stored snapshot with garbage; test helper.
func (m *MemorySnapshotStore) Corrupt(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[snapshotKey(userID)] = "{not json"
}
