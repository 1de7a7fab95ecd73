// Package testutil provides in-memory repositories and fakes for usecase and handler tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/realboxofme/sintas/domain"
)

// Store is an in-memory table of T filtered by F. Rows are kept in insertion order.
type Store[T any, F any] struct {
	mu     sync.Mutex
	rows   []*T
	model  func(*T) *domain.SQLModel
	match  func(*T, *F) bool
	groups map[string]func(*T) string

	// Err, when set, is returned by every call.
	Err error
}

func NewStore[T any, F any](model func(*T) *domain.SQLModel, match func(*T, *F) bool, groups map[string]func(*T) string) *Store[T, F] {
	return &Store[T, F]{model: model, match: match, groups: groups}
}

func (s *Store[T, F]) Rows() []*T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*T(nil), s.rows...)
}

func (s *Store[T, F]) Create(_ context.Context, e *T) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(e)
	return nil
}

func (s *Store[T, F]) insert(e *T) {
	m := s.model(e)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	s.rows = append(s.rows, e)
}

func (s *Store[T, F]) CreateMany(_ context.Context, es []*T) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range es {
		s.insert(e)
	}
	return nil
}

func (s *Store[T, F]) FindByID(_ context.Context, id string, _ *domain.FindOneOption) (*T, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if s.model(r).ID == id {
			return clone(r), nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

// Modify applies fn to the stored row with the given id.
func (s *Store[T, F]) Modify(id string, fn func(*T)) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if s.model(r).ID == id {
			fn(r)
			s.model(r).UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

// clone returns a shallow copy so callers cannot mutate stored rows in place.
func clone[T any](r *T) *T {
	c := *r
	return &c
}

func (s *Store[T, F]) filter(f *F) []*T {
	return lo.Filter(s.rows, func(r *T, _ int) bool {
		return f == nil || s.match(r, f)
	})
}

func (s *Store[T, F]) FindOne(_ context.Context, f *F, _ *domain.FindOneOption) (*T, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rows := s.filter(f); len(rows) > 0 {
		return clone(rows[0]), nil
	}
	return nil, domain.ErrRecordNotFound
}

// FindMany returns matches newest first.
func (s *Store[T, F]) FindMany(_ context.Context, f *F, option *domain.FindManyOption) ([]*T, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.newestFirst(s.filter(f))
	if option != nil && option.Limit != nil && *option.Limit < len(rows) {
		rows = rows[:*option.Limit]
	}
	return rows, nil
}

func (s *Store[T, F]) newestFirst(rows []*T) []*T {
	out := lo.Map(rows, func(r *T, _ int) *T { return clone(r) })
	sort.SliceStable(out, func(i, j int) bool {
		return s.model(out[i]).CreatedAt.After(s.model(out[j]).CreatedAt)
	})
	return out
}

func (s *Store[T, F]) FindPage(_ context.Context, f *F, option *domain.FindPageOption) ([]*T, *domain.Pagination, error) {
	if s.Err != nil {
		return nil, nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var page, limit int
	if option != nil {
		page, limit = option.Page, option.Limit
	}
	page, limit = domain.NormalizePage(page, limit)

	rows := s.newestFirst(s.filter(f))
	total := int64(len(rows))
	start := min(domain.Offset(page, limit), len(rows))
	end := min(start+limit, len(rows))
	return rows[start:end], domain.NewPagination(page, limit, total), nil
}

func (s *Store[T, F]) Update(_ context.Context, e *T) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.model(e).ID
	for i, r := range s.rows {
		if s.model(r).ID == id {
			s.model(e).UpdatedAt = time.Now()
			s.rows[i] = e
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func (s *Store[T, F]) Delete(_ context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if s.model(r).ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func (s *Store[T, F]) DeleteMany(_ context.Context, f *F) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := lo.Reject(s.rows, func(r *T, _ int) bool { return f == nil || s.match(r, f) })
	removed := int64(len(s.rows) - len(kept))
	s.rows = kept
	return removed, nil
}

func (s *Store[T, F]) Count(_ context.Context, f *F) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filter(f))), nil
}

// CountGroupBy groups matches by one of the columns registered with NewStore, ordered by value.
func (s *Store[T, F]) CountGroupBy(_ context.Context, f *F, column string) ([]domain.GroupCount, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.groups[column]
	if !ok {
		panic("testutil: no group accessor for column " + column)
	}
	counts := lo.CountValuesBy(s.filter(f), key)
	out := make([]domain.GroupCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, domain.GroupCount{Value: v, Count: int64(n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out, nil
}

func eqPtr[V comparable](want *V, got V) bool {
	return want == nil || *want == got
}

func nePtr[V comparable](notWant *V, got V) bool {
	return notWant == nil || *notWant != got
}

func containsFold(term *string, fields ...string) bool {
	if term == nil || *term == "" {
		return true
	}
	needle := strings.ToLower(*term)
	return lo.SomeBy(fields, func(f string) bool {
		return strings.Contains(strings.ToLower(f), needle)
	})
}
