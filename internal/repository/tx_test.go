package repository

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTx struct {
	rollbackErr error
	rollbacks   int
}

func (s *stubTx) Commit(context.Context) error { return nil }

func (s *stubTx) Rollback(context.Context) error {
	s.rollbacks++
	return s.rollbackErr
}

func TestSafeRollback(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantLog bool
	}{
		{"rolled back", nil, false},
		{"already committed pgx", errors.New(ErrMsgTxClosed), false},
		{"already committed database/sql", sql.ErrTxDone, false},
		{"connection lost", errors.New("conn closed"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			previous := slog.Default()
			slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
			t.Cleanup(func() { slog.SetDefault(previous) })

			tx := &stubTx{rollbackErr: tt.err}
			SafeRollback(context.Background(), tx)

			assert.Equal(t, 1, tx.rollbacks)
			if tt.wantLog {
				assert.Contains(t, buf.String(), LogMsgRollbackFailed)
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
