package handler

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/iliyamo/artistlink/internal/model"
	"github.com/iliyamo/artistlink/internal/repository"
)

type memArtists struct {
	byID map[string]*model.Artist
	err  error
}

func newMemArtists(artists ...*model.Artist) *memArtists {
	m := &memArtists{byID: map[string]*model.Artist{}}
	for _, a := range artists {
		m.byID[a.ID] = a
	}
	return m
}

func (m *memArtists) GetByID(_ context.Context, id string) (*model.Artist, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memArtists) GetActiveBySlug(_ context.Context, slug string) (*model.Artist, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.byID {
		if a.Slug == slug && a.IsActive {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrArtistNotFound
}

func (m *memArtists) GetActiveContact(_ context.Context, id string) (*model.ArtistContact, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.byID[id]
	if !ok || !a.IsActive {
		return nil, repository.ErrArtistNotFound
	}
	return &model.ArtistContact{ID: a.ID, Name: a.Name, WhatsAppNumber: a.WhatsAppNumber}, nil
}

func (m *memArtists) IsActive(_ context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	a, ok := m.byID[id]
	return ok && a.IsActive, nil
}

func (m *memArtists) sorted(activeOnly bool) []*model.Artist {
	out := []*model.Artist{}
	for _, a := range m.byID {
		if !activeOnly || a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *memArtists) ListAll(context.Context) ([]*model.Artist, error) {
	return m.sorted(false), m.err
}

func (m *memArtists) ListActive(context.Context) ([]*model.Artist, error) {
	return m.sorted(true), m.err
}

func (m *memArtists) Create(_ context.Context, a *model.Artist) error {
	for _, other := range m.byID {
		if other.Slug == a.Slug {
			return repository.ErrConflict
		}
	}
	a.ID = "new-" + a.Slug
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *memArtists) Update(_ context.Context, a *model.Artist) error {
	if _, ok := m.byID[a.ID]; !ok {
		return repository.ErrArtistNotFound
	}
	for id, other := range m.byID {
		if id != a.ID && other.Slug == a.Slug {
			return repository.ErrConflict
		}
	}
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *memArtists) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrArtistNotFound
	}
	delete(m.byID, id)
	return nil
}

// memItems is a generic in-memory child collection keyed by the accessors
// passed at construction.
type memItems[T any] struct {
	items   []*T
	id      func(*T) *string
	artist  func(*T) string
	seq     int
	creates int
}

func (m *memItems[T]) ListByArtist(_ context.Context, artistID string) ([]*T, error) {
	out := []*T{}
	for _, it := range m.items {
		if m.artist(it) == artistID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memItems[T]) GetByID(_ context.Context, id string) (*T, error) {
	for _, it := range m.items {
		if *m.id(it) == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memItems[T]) Create(_ context.Context, item *T) error {
	m.seq++
	m.creates++
	*m.id(item) = "item-" + strconv.Itoa(m.seq)
	cp := *item
	m.items = append(m.items, &cp)
	return nil
}

func (m *memItems[T]) Update(_ context.Context, item *T) error {
	for i, it := range m.items {
		if *m.id(it) == *m.id(item) {
			cp := *item
			m.items[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memItems[T]) Delete(_ context.Context, id string) error {
	for i, it := range m.items {
		if *m.id(it) == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func memShows(shows ...*model.Show) *memItems[model.Show] {
	return &memItems[model.Show]{items: shows,
		id: func(s *model.Show) *string { return &s.ID }, artist: func(s *model.Show) string { return s.ArtistID }}
}

func memProjects(ps ...*model.Project) *memItems[model.Project] {
	return &memItems[model.Project]{items: ps,
		id: func(p *model.Project) *string { return &p.ID }, artist: func(p *model.Project) string { return p.ArtistID }}
}

func memTestimonials() *memItems[model.Testimonial] {
	return &memItems[model.Testimonial]{
		id: func(t *model.Testimonial) *string { return &t.ID }, artist: func(t *model.Testimonial) string { return t.ArtistID }}
}

func memPhotos(ps ...*model.Photo) *memItems[model.Photo] {
	return &memItems[model.Photo]{items: ps,
		id: func(p *model.Photo) *string { return &p.ID }, artist: func(p *model.Photo) string { return p.ArtistID }}
}

func memVideos() *memItems[model.Video] {
	return &memItems[model.Video]{
		id: func(v *model.Video) *string { return &v.ID }, artist: func(v *model.Video) string { return v.ArtistID }}
}

type memLeads struct {
	leads []*model.Lead
}

func (m *memLeads) Create(_ context.Context, l *model.Lead) error {
	l.ID, l.Status = "lead-1", model.LeadStatusNew
	m.leads = append(m.leads, l)
	return nil
}

func (m *memLeads) ListByArtist(_ context.Context, artistID string) ([]*model.Lead, error) {
	out := []*model.Lead{}
	for _, l := range m.leads {
		if l.ArtistID != nil && *l.ArtistID == artistID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memLeads) UpdateStatus(_ context.Context, id, status string) error {
	for _, l := range m.leads {
		if l.ID == id {
			l.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

type memOperators struct {
	ops []*model.Operator
}

func (m *memOperators) GetByEmail(_ context.Context, email string) (*model.Operator, error) {
	for _, o := range m.ops {
		if o.Email == email {
			return o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memOperators) GetByID(_ context.Context, id string) (*model.Operator, error) {
	for _, o := range m.ops {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fixedStats struct{ stats model.DashboardStats }

func (f fixedStats) Dashboard(context.Context) (model.DashboardStats, error) { return f.stats, nil }

type trackCall struct {
	kind, artistID, a, b string
}

type recordingTracker struct {
	mu    sync.Mutex
	calls []trackCall
}

func (r *recordingTracker) RecordPageView(_ context.Context, artistID, referrer, userAgent string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, trackCall{"page_view", artistID, referrer, userAgent})
}

func (r *recordingTracker) RecordButtonClick(_ context.Context, artistID, buttonType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, trackCall{"button_click", artistID, buttonType, ""})
}

// sortOrders adapts photo and project fakes to the reorder port.
type sortOrders struct {
	photos   *memItems[model.Photo]
	projects *memItems[model.Project]
	failAt   int
	writes   int
}

func (s *sortOrders) ListIDs(_ context.Context, c model.Collection, artistID string) ([]string, error) {
	var ids []string
	switch c {
	case model.CollectionPhotos:
		for _, p := range s.photos.items {
			if p.ArtistID == artistID {
				ids = append(ids, p.ID)
			}
		}
	case model.CollectionProjects:
		for _, p := range s.projects.items {
			if p.ArtistID == artistID {
				ids = append(ids, p.ID)
			}
		}
	}
	return ids, nil
}

func (s *sortOrders) SetSortOrder(_ context.Context, c model.Collection, _ string, id string, pos int) error {
	s.writes++
	if s.failAt > 0 && s.writes == s.failAt {
		return errBoom
	}
	if c == model.CollectionPhotos {
		for _, p := range s.photos.items {
			if p.ID == id {
				p.SortOrder = pos
			}
		}
	}
	return nil
}
