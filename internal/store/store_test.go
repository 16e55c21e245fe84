package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "energy.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(uuid, product string, pt, failed int, at time.Time) *EvaluationRecord {
	return &EvaluationRecord{
		UUID:        uuid,
		ProductName: product,
		BIOSVersion: "1.0",
		ProductType: pt,
		Category:    "Notebook Computer",
		Passed:      3,
		Failed:      failed,
		EvaluatedAt: at,
		ReportJSON:  `{"category":"Notebook Computer"}`,
	}
}

func TestInsertGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id, storedAt, err := s.Insert(ctx, record("u-1", "X1 Carbon", 1, 0, at))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id <= 0 || storedAt.IsZero() {
		t.Fatalf("Insert returned id=%d storedAt=%v", id, storedAt)
	}

	got, err := s.Get(ctx, "u-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != id || got.ProductName != "X1 Carbon" || got.Passed != 3 || !got.EvaluatedAt.Equal(at) {
		t.Errorf("Get = %+v", got)
	}
	if got.ReportJSON == "" {
		t.Error("Get should return the report body")
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Get(missing) err = %v, want sql.ErrNoRows", err)
	}
}

func TestInsertDuplicateUUID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, _, err := s.Insert(ctx, record("dup", "A", 1, 0, time.Now())); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, _, err := s.Insert(ctx, record("dup", "B", 1, 0, time.Now())); err == nil {
		t.Error("expected a unique constraint error")
	}
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, r := range []*EvaluationRecord{
		record("a", "X1 Carbon", 1, 0, base),
		record("b", "X1 Carbon", 1, 2, base.Add(24*time.Hour)),
		record("c", "PowerEdge T30", 3, 1, base.Add(48*time.Hour)),
		record("d", "Z240", 2, 0, base.Add(72*time.Hour)),
	} {
		if _, _, err := s.Insert(ctx, r); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}

	after := base.Add(36 * time.Hour)
	tests := []struct {
		name   string
		filter ListFilter
		want   []string
	}{
		{"all newest first", ListFilter{}, []string{"d", "c", "b", "a"}},
		{"by product", ListFilter{ProductName: "X1 Carbon"}, []string{"b", "a"}},
		{"by type", ListFilter{ProductType: 3}, []string{"c"}},
		{"failing", ListFilter{FailingOnly: true}, []string{"c", "b"}},
		{"after", ListFilter{EvaluatedAfter: &after}, []string{"d", "c"}},
		{"before", ListFilter{EvaluatedBefore: &after}, []string{"b", "a"}},
		{"page 2", ListFilter{PageSize: 3, Page: 2}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, total, err := s.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			var got []string
			for _, r := range recs {
				got = append(got, r.UUID)
				if r.ReportJSON != "" {
					t.Errorf("%s: summary carries a report body", r.UUID)
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
			if tt.filter.PageSize == 0 && total != len(tt.want) {
				t.Errorf("total = %d, want %d", total, len(tt.want))
			}
		})
	}
}

func TestLatestByProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Insert(ctx, record("old", "X1 Carbon", 1, 1, base))
	s.Insert(ctx, record("new", "X1 Carbon", 1, 0, base.Add(time.Hour)))

	got, err := s.LatestByProduct(ctx, "X1 Carbon")
	if err != nil {
		t.Fatalf("LatestByProduct: %v", err)
	}
	if got.UUID != "new" {
		t.Errorf("latest = %s, want new", got.UUID)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.Insert(ctx, record("gone", "A", 1, 0, time.Now()))

	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "gone"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("second Delete err = %v, want sql.ErrNoRows", err)
	}
}

func TestPurge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	s.Insert(ctx, record("stale", "A", 1, 0, now.Add(-40*24*time.Hour)))
	s.Insert(ctx, record("fresh", "A", 1, 0, now.Add(-time.Hour)))

	n, err := s.Purge(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d, want 1", n)
	}
	if _, err := s.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh record purged: %v", err)
	}
}
