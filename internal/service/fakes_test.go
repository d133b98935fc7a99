package service

import (
	"context"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"carmarket/internal/model/account"
	"carmarket/internal/model/listing"
	"carmarket/internal/model/review"
	"carmarket/internal/model/shortlist"
	"carmarket/internal/pkg/mongodb"
)

// 内存实现的存储替身，语义与 Mongo 仓库保持一致

type memUsers struct {
	mu           sync.Mutex
	byID         map[string]*account.User
	failByRole   error
	failFindByID error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*account.User{}}
}

func (m *memUsers) Create(_ context.Context, user *account.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == user.Username {
			return mongodb.ErrDuplicate
		}
	}
	cp := *user
	cp.CreatedAt = time.Now()
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*account.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFindByID != nil {
		return nil, m.failFindByID
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*account.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongodb.ErrNotFound
}

func (m *memUsers) Find(_ context.Context, f account.UserFilter) ([]*account.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*account.User, 0)
	for _, u := range m.byID {
		if f.Username != "" && !containsFold(u.Username, f.Username) {
			continue
		}
		if f.Email != "" && !containsFold(u.Email, f.Email) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Suspended != nil && u.Suspended != *f.Suspended {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memUsers) Update(_ context.Context, username string, upd account.UserUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username != username {
			continue
		}
		if upd.Email != nil {
			u.Email = *upd.Email
		}
		if upd.Password != nil {
			u.Password = *upd.Password
		}
		if upd.Role != nil {
			u.Role = *upd.Role
		}
		return nil
	}
	return mongodb.ErrNotFound
}

func (m *memUsers) SetSuspended(_ context.Context, username string, suspended bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			u.Suspended = suspended
			return nil
		}
	}
	return mongodb.ErrNotFound
}

func (m *memUsers) SetSuspendedByRole(_ context.Context, role string, suspended bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failByRole != nil {
		return 0, m.failByRole
	}
	var n int64
	for _, u := range m.byID {
		if u.Role == role && u.Suspended != suspended {
			u.Suspended = suspended
			n++
		}
	}
	return n, nil
}

func (m *memUsers) get(username string) *account.User {
	u, _ := m.FindByUsername(context.Background(), username)
	return u
}

type memProfiles struct {
	mu     sync.Mutex
	byRole map[string]*account.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{byRole: map[string]*account.Profile{}}
}

func (m *memProfiles) Create(_ context.Context, p *account.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byRole[p.Role]; ok {
		return mongodb.ErrDuplicate
	}
	cp := *p
	m.byRole[p.Role] = &cp
	return nil
}

func (m *memProfiles) FindByRole(_ context.Context, role string) (*account.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byRole[role]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfiles) List(_ context.Context) ([]*account.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*account.Profile, 0, len(m.byRole))
	for _, p := range m.byRole {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out, nil
}

func (m *memProfiles) Search(_ context.Context, query string) ([]*account.Profile, error) {
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return nil, err
	}
	all, _ := m.List(context.Background())
	out := make([]*account.Profile, 0)
	for _, p := range all {
		if re.MatchString(p.Role) {
			out = append(out, p)
			continue
		}
		for _, r := range p.Rights {
			if re.MatchString(r) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (m *memProfiles) UpdateRights(_ context.Context, role string, rights []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byRole[role]
	if !ok {
		return mongodb.ErrNotFound
	}
	p.Rights = rights
	return nil
}

func (m *memProfiles) SetSuspended(_ context.Context, role string, suspended bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byRole[role]
	if !ok {
		return mongodb.ErrNotFound
	}
	p.Suspended = suspended
	return nil
}

type memListings struct {
	mu   sync.Mutex
	byID map[string]*listing.Listing
	seq  int
}

func newMemListings() *memListings {
	return &memListings{byID: map[string]*listing.Listing{}}
}

func (m *memListings) Create(_ context.Context, l *listing.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	l.CreatedAt = time.Unix(int64(m.seq), 0)
	l.UpdatedAt = l.CreatedAt
	cp := *l
	m.byID[l.ID] = &cp
	return nil
}

func (m *memListings) FindByID(_ context.Context, id string) (*listing.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.byID[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	cp := *l
	cp.Images = append([]listing.Image(nil), l.Images...)
	return &cp, nil
}

func (m *memListings) all(match func(*listing.Listing) bool) []*listing.Listing {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*listing.Listing, 0)
	for _, l := range m.byID {
		if match(l) {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memListings) List(_ context.Context, f listing.Filter) ([]*listing.Listing, error) {
	return m.all(func(l *listing.Listing) bool {
		return (f.AgentID == "" || l.AgentID == f.AgentID) && (f.SellerID == "" || l.SellerID == f.SellerID)
	}), nil
}

func (m *memListings) Search(_ context.Context, q listing.Query) ([]*listing.Listing, error) {
	var allowed map[string]bool
	if q.IDs != nil {
		allowed = map[string]bool{}
		for _, id := range q.IDs {
			allowed[id] = true
		}
	}
	return m.all(func(l *listing.Listing) bool {
		if allowed != nil && !allowed[l.ID] {
			return false
		}
		if q.Text == "" {
			return true
		}
		return containsFold(l.Make, q.Text) || containsFold(l.Model, q.Text) || containsFold(strconv.Itoa(l.Year), q.Text)
	}), nil
}

func (m *memListings) Update(_ context.Context, id string, upd listing.Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.byID[id]
	if !ok {
		return mongodb.ErrNotFound
	}
	if upd.Make != nil {
		l.Make = *upd.Make
	}
	if upd.Model != nil {
		l.Model = *upd.Model
	}
	if upd.Year != nil {
		l.Year = *upd.Year
	}
	if upd.Price != nil {
		l.Price = *upd.Price
	}
	if upd.SellerID != nil {
		l.SellerID = *upd.SellerID
	}
	return nil
}

func (m *memListings) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return mongodb.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memListings) Increment(_ context.Context, id string, counter listing.Counter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.byID[id]
	if !ok {
		return mongodb.ErrNotFound
	}
	switch counter {
	case listing.CounterViews:
		l.Views++
	case listing.CounterShortlists:
		l.Shortlists++
	}
	return nil
}

func (m *memListings) AddImage(_ context.Context, id string, img listing.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.byID[id]
	if !ok {
		return mongodb.ErrNotFound
	}
	l.Images = append(l.Images, img)
	return nil
}

func (m *memListings) RemoveImage(_ context.Context, id, imageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.byID[id]
	if !ok {
		return mongodb.ErrNotFound
	}
	for i, img := range l.Images {
		if img.ID == imageID {
			l.Images = append(l.Images[:i], l.Images[i+1:]...)
			return nil
		}
	}
	return mongodb.ErrNotFound
}

type memShortlists struct {
	mu     sync.Mutex
	byUser map[string]*shortlist.Shortlist
}

func newMemShortlists() *memShortlists {
	return &memShortlists{byUser: map[string]*shortlist.Shortlist{}}
}

func (m *memShortlists) Add(_ context.Context, userID, listingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sl, ok := m.byUser[userID]
	if !ok {
		m.byUser[userID] = &shortlist.Shortlist{ID: userID, UserID: userID, Listings: []string{listingID}}
		return true, nil
	}
	if sl.Contains(listingID) {
		return false, nil
	}
	sl.Listings = append(sl.Listings, listingID)
	return true, nil
}

func (m *memShortlists) FindByUser(_ context.Context, userID string) (*shortlist.Shortlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sl, ok := m.byUser[userID]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	cp := *sl
	cp.Listings = append([]string(nil), sl.Listings...)
	return &cp, nil
}

func (m *memShortlists) Remove(_ context.Context, userID, listingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sl, ok := m.byUser[userID]
	if !ok {
		return false, nil
	}
	return pull(sl, listingID), nil
}

func (m *memShortlists) RemoveListing(_ context.Context, listingID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, sl := range m.byUser {
		if pull(sl, listingID) {
			n++
		}
	}
	return n, nil
}

func pull(sl *shortlist.Shortlist, listingID string) bool {
	for i, id := range sl.Listings {
		if id == listingID {
			sl.Listings = append(sl.Listings[:i], sl.Listings[i+1:]...)
			return true
		}
	}
	return false
}

type memReviews struct {
	mu   sync.Mutex
	byID map[string]*review.Review
	seq  int
}

func newMemReviews() *memReviews {
	return &memReviews{byID: map[string]*review.Review{}}
}

func (m *memReviews) Create(_ context.Context, rv *review.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.byID {
		if r.AgentID == rv.AgentID && r.ListingID == rv.ListingID && r.ReviewerID == rv.ReviewerID {
			return mongodb.ErrDuplicate
		}
	}
	m.seq++
	rv.CreatedAt = time.Unix(int64(m.seq), 0).UTC()
	cp := *rv
	m.byID[rv.ID] = &cp
	return nil
}

func (m *memReviews) FindByID(_ context.Context, id string) (*review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReviews) Exists(_ context.Context, key review.Key) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.byID {
		if r.AgentID == key.AgentID && r.ListingID == key.ListingID && r.ReviewerID == key.ReviewerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviews) ListByAgent(_ context.Context, agentID string) ([]*review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*review.Review, 0)
	for _, r := range m.byID {
		if r.AgentID == agentID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memReviews) UpdateContent(_ context.Context, id string, rating float64, text string, editedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return mongodb.ErrNotFound
	}
	r.Rating = rating
	r.Review = text
	r.EditedAt = &editedAt
	return nil
}

type memStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	failWrite error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}}
}

func (m *memStorage) Upload(_ context.Context, key string, data io.Reader, _ int64, _ string) (string, error) {
	if m.failWrite != nil {
		return "", m.failWrite
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	return "http://media.test/" + key, nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memStorage) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

type memNameCache struct {
	mu    sync.Mutex
	names map[string]string
}

func newMemNameCache() *memNameCache {
	return &memNameCache{names: map[string]string{}}
}

func (m *memNameCache) GetName(_ context.Context, userID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.names[userID]
	return name, ok
}

func (m *memNameCache) SetName(_ context.Context, userID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names[userID] = name
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// seedUser 直接写入用户，绕过服务层校验
func seedUser(users *memUsers, id, username, role string) *account.User {
	u := &account.User{ID: id, Username: username, Password: "pw", Email: username + "@example.com", Role: role}
	_ = users.Create(context.Background(), u)
	return u
}
