package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errQueryFailed = errors.New("query failed")

// stubTx satisfies pgx.Tx; only Query is usable.
type stubTx struct {
	pgx.Tx
	queries []string
}

func (s *stubTx) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	s.queries = append(s.queries, sql)
	return nil, errQueryFailed
}

func TestReadOnly_ReusesTransactionInContext(t *testing.T) {
	m := &TxManager{}
	tx := &stubTx{}
	ctx := context.WithValue(context.Background(), txKey{}, pgx.Tx(tx))

	var got Querier
	err := m.ReadOnly(ctx, func(ctx context.Context) error {
		got = m.GetQuerier(ctx)
		return nil
	})
	require.NoError(t, err)
	assert.Same(t, tx, got)
}

func TestRecent_QueriesInsideTransaction(t *testing.T) {
	tx := &stubTx{}
	j, err := NewRunJournal(&TxManager{})
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), txKey{}, pgx.Tx(tx))
	entries, err := j.Recent(ctx, 3)

	assert.Nil(t, entries)
	assert.ErrorIs(t, err, errQueryFailed)
	assert.Contains(t, err.Error(), "select provision_runs")
	require.Len(t, tx.queries, 1)
	assert.Contains(t, tx.queries[0], "LIMIT 3")
}
