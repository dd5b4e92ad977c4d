package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// fakeRow returns a fixed error from Scan.
type fakeRow struct {
	err error
}

func (r fakeRow) Scan(dest ...any) error { return r.err }

// fakeQuerier serves QueryRow and Exec from canned results.
type fakeQuerier struct {
	rowErr  error
	execErr error
	lastSQL string
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL = sql
	return nil, errors.New("not implemented")
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	return fakeRow{err: q.rowErr}
}

func (q *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.lastSQL = sql
	return pgconn.CommandTag{}, q.execErr
}

func TestNewPostgres(t *testing.T) {
	p := NewPostgres(&fakeQuerier{}, 0, zerolog.Nop())
	if p.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", p.timeout, DefaultTimeout)
	}

	p = NewPostgres(&fakeQuerier{}, time.Second, zerolog.Nop())
	if p.timeout != time.Second {
		t.Errorf("timeout = %v, want %v", p.timeout, time.Second)
	}
}

func TestNewPostgres_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewPostgres should panic with nil database")
		}
	}()
	NewPostgres(nil, 0, zerolog.Nop())
}

func TestPostgres_Get_Errors(t *testing.T) {
	dbErr := errors.New("connection reset")

	tests := []struct {
		name         string
		rowErr       error
		wantNotFound bool
		wantWrapped  error
	}{
		{
			name:         "no rows maps to not found",
			rowErr:       pgx.ErrNoRows,
			wantNotFound: true,
		},
		{
			name:        "driver error is wrapped",
			rowErr:      dbErr,
			wantWrapped: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &fakeQuerier{rowErr: tt.rowErr}
			p := NewPostgres(q, time.Second, zerolog.Nop())

			product, err := p.Get(context.Background(), 7)
			if product != nil {
				t.Errorf("Get() product = %+v, want nil", product)
			}
			if got := errors.Is(err, ErrNotFound); got != tt.wantNotFound {
				t.Errorf("errors.Is(err, ErrNotFound) = %v, want %v (err = %v)", got, tt.wantNotFound, err)
			}
			if tt.wantWrapped != nil && !errors.Is(err, tt.wantWrapped) {
				t.Errorf("Get() error = %v, want wrapping %v", err, tt.wantWrapped)
			}
		})
	}
}

func TestPostgres_Ping(t *testing.T) {
	q := &fakeQuerier{}
	p := NewPostgres(q, time.Second, zerolog.Nop())
	if err := p.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if q.lastSQL != "SELECT 1" {
		t.Errorf("Ping() ran %q, want SELECT 1", q.lastSQL)
	}

	q.execErr = errors.New("down")
	if err := p.Ping(context.Background()); err == nil {
		t.Error("Ping() should fail when the database is down")
	}
}

func TestPostgres_List_NonPositiveLimit(t *testing.T) {
	q := &fakeQuerier{}
	p := NewPostgres(q, time.Second, zerolog.Nop())

	for _, limit := range []int{0, -1} {
		products, err := p.List(context.Background(), limit)
		if err != nil {
			t.Fatalf("List(%d) error = %v", limit, err)
		}
		if len(products) != 0 {
			t.Errorf("List(%d) returned %d products, want 0", limit, len(products))
		}
	}
	if q.lastSQL != "" {
		t.Errorf("List with non-positive limit should not query, ran %q", q.lastSQL)
	}
}
