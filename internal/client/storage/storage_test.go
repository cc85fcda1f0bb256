package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestOpen_MigratesAndServesRepositories(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "chattr.db")

	st, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()

	require.NoError(t, st.Session.Set(ctx, "authToken", "tok"))
	v, err := st.Session.Get(ctx, "authToken")
	require.NoError(t, err)
	require.Equal(t, "tok", v)

	got, err := st.Messages.ListByChat(ctx, "none")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestOpen_IsIdempotentAcrossRestarts(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "chattr.db")
	ctx := context.Background()

	st, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, st.Session.Set(ctx, "currentUser", "alice"))
	require.NoError(t, st.Close())

	// second open must not re-run migrations destructively
	st, err = Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	v, err := st.Session.Get(ctx, "currentUser")
	require.NoError(t, err)
	require.Equal(t, "alice", v)
}
