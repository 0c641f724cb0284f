package services

import (
	"sync"
	"time"

	"github.com/accelconnect/restauration-gateway/models"
	"github.com/accelconnect/restauration-gateway/utils"
)

// CartStore is the sole mutable owner of one user's cart lines for the
// current calendar day. Every mutation rewrites the persisted snapshot in
// full; persistence is best-effort and never fails the mutation.
type CartStore struct {
	mu        sync.Mutex
	userID    string
	lines     []models.CartLine
	snapshots SnapshotStore
	today     func() string
}

func NewCartStore(snapshots SnapshotStore) *CartStore {
	return &CartStore{
		snapshots: snapshots,
		today: func() string {
			return time.Now().Format("2006-01-02")
		},
	}
}

// InitializeForUser binds the store to a user and reloads their same-day
// snapshot. A snapshot from another day, a missing row or a corrupt one
// all mean the same thing: the user starts today with an empty cart.
func (s *CartStore) InitializeForUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = userID
	s.lines = nil

	snap, err := s.snapshots.Load(userID)
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("cart snapshot unreadable for user %s, resetting: %v", userID, err)
		}
		s.persistLocked()
		return
	}
	if snap == nil || snap.SavedDate != s.today() {
		s.persistLocked()
		return
	}

	for _, line := range snap.Items {
		if line.Quantity >= 1 {
			s.lines = append(s.lines, line)
		}
	}
	// A filtered line means storage and memory disagree; rewrite the
	// snapshot so they match.
	if len(s.lines) != len(snap.Items) {
		s.persistLocked()
	}
}

// AddItem appends a line, or bumps the quantity when a line with the same
// (mealID, restaurantID) identity already exists.
func (s *CartStore) AddItem(line models.CartLine) {
	if line.Quantity <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].SameIdentity(line.MealID, line.RestaurantID) {
			s.lines[i].Quantity += line.Quantity
			s.persistLocked()
			return
		}
	}
	s.lines = append(s.lines, line)
	s.persistLocked()
}

// UpdateQuantity sets the matching line's quantity; zero or negative
// removes the line. Unknown identities are a silent no-op.
func (s *CartStore) UpdateQuantity(mealID, restaurantID uint, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if !s.lines[i].SameIdentity(mealID, restaurantID) {
			continue
		}
		if quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity = quantity
		}
		s.persistLocked()
		return
	}
}

func (s *CartStore) RemoveItem(mealID, restaurantID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].SameIdentity(mealID, restaurantID) {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// Clear empties the cart and persists the empty snapshot.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persistLocked()
}

// ClearUserSession empties the cart and unbinds the user without touching
// the persisted snapshot; used on logout and failed authentication.
func (s *CartStore) ClearUserSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.userID = ""
}

// Lines returns a copy of the collection in insertion order.
func (s *CartStore) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// PrepareOrderData assembles the exact checkout payload the backend
// accepts.
func (s *CartStore) PrepareOrderData() models.CreateOrderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := models.CreateOrderRequest{Items: make([]models.CreateOrderItem, 0, len(s.lines))}
	for _, line := range s.lines {
		req.Items = append(req.Items, models.CreateOrderItem{
			MealID:       line.MealID,
			RestaurantID: line.RestaurantID,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
		})
	}
	return req
}

// ApplyValidation removes the lines a validation pass flagged, treating
// the result as advisory: a line is only dropped if it is still present
// with the same quantity, so a stale result cannot undo edits the user
// made while the menu lookup was in flight. It returns the lines that
// were actually removed.
func (s *CartStore) ApplyValidation(result ValidationResult) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []models.CartLine
	for _, stale := range result.RemovedItems {
		for i := range s.lines {
			if s.lines[i].SameIdentity(stale.MealID, stale.RestaurantID) && s.lines[i].Quantity == stale.Quantity {
				removed = append(removed, s.lines[i])
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
				break
			}
		}
	}
	if len(removed) > 0 {
		s.persistLocked()
	}
	return removed
}

func (s *CartStore) persistLocked() {
	if s.userID == "" {
		return
	}
	snap := PersistedCart{
		Items:     append([]models.CartLine(nil), s.lines...),
		SavedDate: s.today(),
	}
	if err := s.snapshots.Save(s.userID, snap); err != nil && utils.ErrorLogger != nil {
		utils.ErrorLogger.Printf("failed to persist cart for user %s: %v", s.userID, err)
	}
}

// CartRegistry hands out the per-user store, creating and initializing it
// on first access.
type CartRegistry struct {
	mu        sync.Mutex
	stores    map[string]*CartStore
	snapshots SnapshotStore
}

func NewCartRegistry(snapshots SnapshotStore) *CartRegistry {
	return &CartRegistry{
		stores:    make(map[string]*CartStore),
		snapshots: snapshots,
	}
}

func (r *CartRegistry) ForUser(userID string) *CartStore {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.stores[userID]
	if !ok {
		store = NewCartStore(r.snapshots)
		store.InitializeForUser(userID)
		r.stores[userID] = store
	}
	return store
}

// Drop tears down a user's session on logout.
func (r *CartRegistry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[userID]; ok {
		store.ClearUserSession()
		delete(r.stores, userID)
	}
}
