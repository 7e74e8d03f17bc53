// AngelaMos | 2026
// memdb.go

// Package memdb keeps users, stores and ratings in process memory behind the
// same repository interfaces the PostgreSQL implementations satisfy. It
// honours the schema's unique keys, foreign keys and delete rules.
package memdb

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
	"github.com/suprilp8221/Store-Rating-Platform/internal/rating"
	"github.com/suprilp8221/Store-Rating-Platform/internal/store"
	"github.com/suprilp8221/Store-Rating-Platform/internal/user"
)

type ratingKey struct {
	storeID string
	userID  string
}

type DB struct {
	mu      sync.RWMutex
	txMu    sync.Mutex
	users   map[string]user.User
	stores  map[string]store.Store
	ratings map[ratingKey]rating.Rating
	last    time.Time
}

func New() *DB {
	return &DB{
		users:   make(map[string]user.User),
		stores:  make(map[string]store.Store),
		ratings: make(map[ratingKey]rating.Rating),
	}
}

func (db *DB) Users() user.Repository {
	return &userRepo{db: db}
}

func (db *DB) Stores() store.Repository {
	return &storeRepo{db: db}
}

func (db *DB) Ratings() rating.Repository {
	return &ratingRepo{db: db}
}

// now is strictly increasing so that ordering by update time is stable.
// Callers hold the write lock.
func (db *DB) now() time.Time {
	t := time.Now().UTC()
	if !t.After(db.last) {
		t = db.last.Add(time.Microsecond)
	}
	db.last = t
	return t
}

func (db *DB) storeStats(storeID string) (float64, int) {
	var values []int
	for k, r := range db.ratings {
		if k.storeID == storeID {
			values = append(values, r.Value)
		}
	}
	return rating.StoreAverage(values), len(values)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// compareText orders like the database: case-insensitive first, then by
// byte value.
func compareText(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// compareNullable puts NULL after every value, as an ascending ORDER BY
// does.
func compareNullable(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return compareText(*a, *b)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

type userRepo struct {
	db *DB
}

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if existing.Email == u.Email || existing.ID == u.ID {
			return core.ErrDuplicateKey
		}
	}

	now := r.db.now()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.db.users[u.ID] = *u

	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *userRepo) Update(_ context.Context, u *user.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.users[u.ID]
	if !ok {
		return core.ErrNotFound
	}

	for _, existing := range r.db.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return core.ErrDuplicateKey
		}
	}

	u.CreatedAt = current.CreatedAt
	u.UpdatedAt = r.db.now()
	r.db.users[u.ID] = *u

	return nil
}

func (r *userRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return core.ErrNotFound
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = r.db.now()
	r.db.users[id] = u

	return nil
}

// Delete drops the user's ratings and detaches any stores they owned.
func (r *userRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[id]; !ok {
		return core.ErrNotFound
	}

	delete(r.db.users, id)

	for k := range r.db.ratings {
		if k.userID == id {
			delete(r.db.ratings, k)
		}
	}

	for sid, s := range r.db.stores {
		if s.OwnerID != nil && *s.OwnerID == id {
			s.OwnerID = nil
			r.db.stores[sid] = s
		}
	}

	return nil
}

func (r *userRepo) List(_ context.Context, params user.ListUsersParams) ([]user.User, error) {
	params.Normalize()

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []user.User{}
	for _, u := range r.db.users {
		if params.Name != "" && !containsFold(u.Name, params.Name) {
			continue
		}
		if params.Email != "" && !containsFold(u.Email, params.Email) {
			continue
		}
		if params.Address != "" && (u.Address == nil || !containsFold(*u.Address, params.Address)) {
			continue
		}
		if params.Role != "" && string(u.Role) != params.Role {
			continue
		}
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool {
		var c int
		switch params.SortField {
		case user.SortByEmail:
			c = compareText(out[i].Email, out[j].Email)
		case user.SortByAddress:
			c = compareNullable(out[i].Address, out[j].Address)
		case user.SortByRole:
			c = compareText(string(out[i].Role), string(out[j].Role))
		default:
			c = compareText(out[i].Name, out[j].Name)
		}
		if params.SortOrder == user.SortDesc {
			c = -c
		}
		if c == 0 {
			return out[i].ID < out[j].ID
		}
		return c < 0
	})

	return out, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *userRepo) Count(_ context.Context) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.users), nil
}

type storeRepo struct {
	db   *DB
	inTx bool
}

// WithinTx serialises fn against other store transactions and restores the
// store table when fn fails.
func (r *storeRepo) WithinTx(
	_ context.Context,
	fn func(repo store.Repository) error,
) error {
	if r.inTx {
		return fn(r)
	}

	r.db.txMu.Lock()
	defer r.db.txMu.Unlock()

	r.db.mu.RLock()
	snapshot := make(map[string]store.Store, len(r.db.stores))
	for id, s := range r.db.stores {
		snapshot[id] = s
	}
	r.db.mu.RUnlock()

	if err := fn(&storeRepo{db: r.db, inTx: true}); err != nil {
		r.db.mu.Lock()
		r.db.stores = snapshot
		r.db.mu.Unlock()
		return err
	}

	return nil
}

// checkStore enforces the name unique key and the owner foreign key.
func (r *storeRepo) checkStore(s *store.Store) error {
	for _, existing := range r.db.stores {
		if existing.ID != s.ID && existing.Name == s.Name {
			return core.ErrDuplicateKey
		}
	}

	if s.OwnerID != nil {
		if _, ok := r.db.users[*s.OwnerID]; !ok {
			return core.ErrNotFound
		}
	}

	return nil
}

func (r *storeRepo) Create(_ context.Context, s *store.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.stores[s.ID]; ok {
		return core.ErrDuplicateKey
	}
	if err := r.checkStore(s); err != nil {
		return err
	}

	now := r.db.now()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.db.stores[s.ID] = *s

	return nil
}

func (r *storeRepo) GetByID(_ context.Context, id string) (*store.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.stores[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &s, nil
}

func (r *storeRepo) GetByName(_ context.Context, name string) (*store.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, s := range r.db.stores {
		if s.Name == name {
			return &s, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *storeRepo) Update(_ context.Context, s *store.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.stores[s.ID]
	if !ok {
		return core.ErrNotFound
	}
	if err := r.checkStore(s); err != nil {
		return err
	}

	s.CreatedAt = current.CreatedAt
	s.UpdatedAt = r.db.now()
	r.db.stores[s.ID] = *s

	return nil
}

func (r *storeRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.stores[id]; !ok {
		return core.ErrNotFound
	}

	delete(r.db.stores, id)

	for k := range r.db.ratings {
		if k.storeID == id {
			delete(r.db.ratings, k)
		}
	}

	return nil
}

func (r *storeRepo) List(
	_ context.Context,
	params store.ListParams,
	viewerID string,
) ([]store.Listing, error) {
	params.Normalize()

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []store.Listing{}
	for _, s := range r.db.stores {
		if params.Name != "" && !containsFold(s.Name, params.Name) {
			continue
		}
		if params.Address != "" && !containsFold(s.Address, params.Address) {
			continue
		}

		avg, count := r.db.storeStats(s.ID)
		l := store.Listing{
			ID:            s.ID,
			Name:          s.Name,
			Address:       s.Address,
			OwnerID:       s.OwnerID,
			OverallRating: avg,
			RatingCount:   count,
		}

		if viewerID != "" {
			if rt, ok := r.db.ratings[ratingKey{storeID: s.ID, userID: viewerID}]; ok {
				v := rt.Value
				l.UserRating = &v
			}
		}

		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool {
		var c int
		switch params.SortField {
		case store.SortByAddress:
			c = compareText(out[i].Address, out[j].Address)
		case store.SortByOverallRating:
			c = compareFloat(out[i].OverallRating, out[j].OverallRating)
		default:
			c = compareText(out[i].Name, out[j].Name)
		}
		if params.SortOrder == store.SortDesc {
			c = -c
		}
		if c == 0 {
			return compareText(out[i].Name, out[j].Name) < 0
		}
		return c < 0
	})

	return out, nil
}

func (r *storeRepo) Count(_ context.Context) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.stores), nil
}

type ratingRepo struct {
	db *DB
}

// Upsert mirrors INSERT ... ON CONFLICT (store_id, user_id) DO UPDATE.
func (r *ratingRepo) Upsert(_ context.Context, rt *rating.Rating) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.stores[rt.StoreID]; !ok {
		return core.ErrNotFound
	}
	if _, ok := r.db.users[rt.UserID]; !ok {
		return core.ErrUnauthorized
	}

	key := ratingKey{storeID: rt.StoreID, userID: rt.UserID}
	now := r.db.now()

	if existing, ok := r.db.ratings[key]; ok {
		rt.ID = existing.ID
		rt.CreatedAt = existing.CreatedAt
	} else {
		rt.CreatedAt = now
	}
	rt.UpdatedAt = now
	r.db.ratings[key] = *rt

	return nil
}

func (r *ratingRepo) ListByUser(_ context.Context, userID string) ([]rating.MyRating, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []rating.MyRating{}
	for k, rt := range r.db.ratings {
		if k.userID != userID {
			continue
		}
		s := r.db.stores[k.storeID]
		out = append(out, rating.MyRating{
			StoreID:      s.ID,
			StoreName:    s.Name,
			StoreAddress: s.Address,
			Rating:       rt.Value,
			UpdatedAt:    rt.UpdatedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return compareText(out[i].StoreName, out[j].StoreName) < 0
	})

	return out, nil
}

func (r *ratingRepo) OwnerStores(_ context.Context, ownerID string) ([]rating.StoreSummary, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []rating.StoreSummary{}
	for _, s := range r.db.stores {
		if s.OwnerID == nil || *s.OwnerID != ownerID {
			continue
		}
		avg, count := r.db.storeStats(s.ID)
		out = append(out, rating.StoreSummary{
			ID:            s.ID,
			Name:          s.Name,
			Address:       s.Address,
			AverageRating: avg,
			RatingCount:   count,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return compareText(out[i].Name, out[j].Name) < 0
	})

	return out, nil
}

func (r *ratingRepo) RatersForOwner(_ context.Context, ownerID string) ([]rating.Rater, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := []rating.Rater{}
	for k, rt := range r.db.ratings {
		s := r.db.stores[k.storeID]
		if s.OwnerID == nil || *s.OwnerID != ownerID {
			continue
		}
		u := r.db.users[k.userID]
		out = append(out, rating.Rater{
			UserID:    u.ID,
			UserName:  u.Name,
			UserEmail: u.Email,
			Rating:    rt.Value,
			StoreName: s.Name,
			StoreID:   s.ID,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if c := compareText(out[i].UserName, out[j].UserName); c != 0 {
			return c < 0
		}
		return compareText(out[i].StoreName, out[j].StoreName) < 0
	})

	return out, nil
}

func (r *ratingRepo) Count(_ context.Context) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.ratings), nil
}

var (
	_ user.Repository   = (*userRepo)(nil)
	_ store.Repository  = (*storeRepo)(nil)
	_ rating.Repository = (*ratingRepo)(nil)
)
