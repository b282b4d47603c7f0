package stock

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// memStore is a tiny in-memory products table behind a real database/sql
// driver, so Get/Reduce/Restore/Set run end to end with their actual
// statements and arithmetic instead of scripted results. Exec holds the
// lock for the whole statement, mirroring the row-level atomicity of the
// conditional UPDATE the ledger relies on.
type memStore struct {
	mu       sync.Mutex
	products map[int64]*memProduct
}

type memProduct struct {
	name  string
	stock int64
}

type memDriver struct{ store *memStore }

func (d *memDriver) Open(string) (driver.Conn, error) {
	return &memConn{store: d.store}, nil
}

type memConn struct{ store *memStore }

func (c *memConn) Prepare(query string) (driver.Stmt, error) {
	return &memStmt{store: c.store, query: query}, nil
}
func (c *memConn) Close() error              { return nil }
func (c *memConn) Begin() (driver.Tx, error) { return nil, errors.New("transactions not supported") }

type memStmt struct {
	store *memStore
	query string
}

func (s *memStmt) Close() error  { return nil }
func (s *memStmt) NumInput() int { return -1 }

func (s *memStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	qty, id := args[0].(int64), args[1].(int64)
	p, ok := s.store.products[id]

	switch {
	case strings.Contains(s.query, "stock = stock -"):
		if !ok || p.stock < qty {
			return driver.RowsAffected(0), nil
		}
		p.stock -= qty
		return driver.RowsAffected(1), nil
	case strings.Contains(s.query, "stock = stock +"):
		if !ok {
			return driver.RowsAffected(0), nil
		}
		p.stock += qty
		return driver.RowsAffected(1), nil
	case strings.Contains(s.query, "SET stock = $1"):
		if !ok {
			return driver.RowsAffected(0), nil
		}
		p.stock = qty
		return driver.RowsAffected(1), nil
	}
	return nil, fmt.Errorf("unexpected exec: %s", s.query)
}

func (s *memStmt) Query(args []driver.Value) (driver.Rows, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.products[args[0].(int64)]

	switch {
	case strings.Contains(s.query, "SELECT name, stock"):
		rows := &memRows{columns: []string{"name", "stock"}}
		if ok {
			rows.data = [][]driver.Value{{p.name, p.stock}}
		}
		return rows, nil
	case strings.Contains(s.query, "SELECT stock"):
		rows := &memRows{columns: []string{"stock"}}
		if ok {
			rows.data = [][]driver.Value{{p.stock}}
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unexpected query: %s", s.query)
}

type memRows struct {
	columns []string
	data    [][]driver.Value
	idx     int
}

func (r *memRows) Columns() []string { return r.columns }
func (r *memRows) Close() error      { return nil }

func (r *memRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.idx])
	r.idx++
	return nil
}

// Each store needs its own registered driver; names must be unique for
// the lifetime of the process.
var memDriverSeq atomic.Int64

func newMemLedgerDB(tb require.TestingT, products map[int64]*memProduct) *sql.DB {
	name := fmt.Sprintf("memledger_%d", memDriverSeq.Add(1))
	sql.Register(name, &memDriver{store: &memStore{products: products}})

	db, err := sql.Open(name, "")
	require.NoError(tb, err)
	return db
}

func TestLedger_ReduceRestoreRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		initial := rapid.IntRange(0, 500).Draw(rt, "initial")
		qty := rapid.IntRange(1, 600).Draw(rt, "qty")

		db := newMemLedgerDB(rt, map[int64]*memProduct{
			1: {name: "Whey Protein", stock: int64(initial)},
		})
		defer db.Close()

		ctx := context.Background()
		err := Reduce(ctx, db, 1, qty)

		if qty > initial {
			// A short reduce rejects the whole operation and changes nothing.
			var insufficient *InsufficientStockError
			require.ErrorAs(rt, err, &insufficient)
			assert.Equal(rt, initial, insufficient.Available)

			got, err := Get(ctx, db, 1)
			require.NoError(rt, err)
			assert.Equal(rt, initial, got)
			return
		}

		require.NoError(rt, err)

		mid, err := Get(ctx, db, 1)
		require.NoError(rt, err)
		assert.Equal(rt, initial-qty, mid)
		assert.GreaterOrEqual(rt, mid, 0)

		// Restoring exactly what was reduced lands back on the prior value.
		require.NoError(rt, Restore(ctx, db, 1, qty))

		final, err := Get(ctx, db, 1)
		require.NoError(rt, err)
		assert.Equal(rt, initial, final)
	})
}

func TestLedger_ConcurrentReduceNeverOversells(t *testing.T) {
	const (
		initial   = 50
		workers   = 20
		perWorker = 10
		reduceQty = 3
	)

	db := newMemLedgerDB(t, map[int64]*memProduct{
		1: {name: "Whey Protein", stock: initial},
	})
	defer db.Close()

	ctx := context.Background()

	// Far more demand than stock, so most attempts must lose the race.
	var sold atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := Reduce(ctx, db, 1, reduceQty); err == nil {
					sold.Add(reduceQty)
				}
			}
		}()
	}
	wg.Wait()

	final, err := Get(ctx, db, 1)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, final, 0)
	assert.Equal(t, initial-int(sold.Load()), final)
	assert.LessOrEqual(t, int(sold.Load()), initial)
}
