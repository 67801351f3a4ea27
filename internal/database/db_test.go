package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Exec(context.Context, string, ...any) (int64, error) { return 1, nil }
func (t *fakeTx) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(context.Context, string, ...any) Row { return nil }
func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (d *fakeDB) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (d *fakeDB) QueryRow(context.Context, string, ...any) Row { return nil }
func (d *fakeDB) Ping(context.Context) error { return nil }
func (d *fakeDB) Close() error { return nil }
func (d *fakeDB) SQLDB() *sql.DB { return nil }
func (d *fakeDB) Begin(context.Context) (Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func TestWithTx_Commits(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	err := WithTx(context.Background(), db, func(q Querier) error {
		_, err := q.Exec(context.Background(), "INSERT INTO skills (name) VALUES ($1)", "Go")
		return err
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !db.tx.committed || db.tx.rolledBack {
		t.Fatalf("expected commit without rollback, got %+v", db.tx)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	boom := errors.New("boom")
	if err := WithTx(context.Background(), db, func(Querier) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	if db.tx.committed || !db.tx.rolledBack {
		t.Fatalf("expected rollback, got %+v", db.tx)
	}
}

func TestWithTx_BeginAndCommitErrors(t *testing.T) {
	beginErr := errors.New("pool closed")
	if err := WithTx(context.Background(), &fakeDB{beginErr: beginErr}, func(Querier) error { return nil }); !errors.Is(err, beginErr) {
		t.Fatalf("expected begin error, got %v", err)
	}

	commitErr := errors.New("serialization failure")
	db := &fakeDB{tx: &fakeTx{commitErr: commitErr}}
	if err := WithTx(context.Background(), db, func(Querier) error { return nil }); !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
}
