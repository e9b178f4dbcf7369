package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Kalilinux212222/pass-gene/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "passgene.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestLoadStateEmpty(t *testing.T) {
	st := openTestStore(t)
	snap, err := st.LoadState(context.Background())
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if snap.HasCurrent || len(snap.History) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestSaveAndLoadState(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	in := model.Snapshot{
		CurrentPassword:   "ab12",
		CurrentObfuscated: "21ba",
		LastGenerated:     "ab12",
		HasCurrent:        true,
		History:           []string{"x,y", "ab12"},
	}
	if err := st.SaveState(ctx, in); err != nil {
		t.Fatalf("save state: %v", err)
	}
	in.History = append(in.History, "later")
	in.CurrentPassword = "later"
	if err := st.SaveState(ctx, in); err != nil {
		t.Fatalf("save state again: %v", err)
	}

	out, err := st.LoadState(ctx)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if !out.HasCurrent || out.CurrentPassword != "later" || out.CurrentObfuscated != "21ba" {
		t.Fatalf("unexpected current pair: %+v", out)
	}
	if len(out.History) != 3 || out.History[0] != "x,y" || out.History[2] != "later" {
		t.Fatalf("unexpected history: %v", out.History)
	}
}

func TestSaveStateEmptyPassword(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.SaveState(ctx, model.Snapshot{HasCurrent: true, History: []string{""}}); err != nil {
		t.Fatalf("save state: %v", err)
	}
	out, err := st.LoadState(ctx)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if !out.HasCurrent || len(out.History) != 1 || out.History[0] != "" {
		t.Fatalf("expected one empty entry, got %+v", out)
	}
}

func TestImportedAndReset(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	pairs := []model.Pair{{Plaintext: "beta", Obfuscated: "ateb"}, {Plaintext: "alpha", Obfuscated: "ahpla"}}
	if err := st.PutImported(ctx, pairs); err != nil {
		t.Fatalf("put imported: %v", err)
	}
	if err := st.PutImported(ctx, []model.Pair{{Plaintext: "alpha", Obfuscated: "changed"}}); err != nil {
		t.Fatalf("put imported overwrite: %v", err)
	}
	got, err := st.ListImported(ctx)
	if err != nil {
		t.Fatalf("list imported: %v", err)
	}
	if len(got) != 2 || got[0].Plaintext != "alpha" || got[0].Obfuscated != "changed" {
		t.Fatalf("unexpected imported pairs: %+v", got)
	}
	if err := st.SaveState(ctx, model.Snapshot{CurrentPassword: "a", HasCurrent: true, History: []string{"a"}}); err != nil {
		t.Fatalf("save state: %v", err)
	}

	if err := st.ResetState(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, err = st.ListImported(ctx)
	if err != nil {
		t.Fatalf("list imported: %v", err)
	}
	snap, err := st.LoadState(ctx)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if len(got) != 0 || snap.HasCurrent || len(snap.History) != 0 {
		t.Fatalf("expected empty store after reset, got %+v %+v", got, snap)
	}
}

func TestSaveStateRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO kv").
		WithArgs(NamespaceState, KeyCurrentPassword, "pw").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO kv").
		WithArgs(NamespaceState, KeyCurrentObfuscated, "wp").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	st := New(db)
	err = st.SaveState(context.Background(), model.Snapshot{
		CurrentPassword:   "pw",
		CurrentObfuscated: "wp",
		HasCurrent:        true,
		History:           []string{"pw"},
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPutImportedRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO kv").
		WithArgs(NamespaceImport, "alpha", "ahpla").
		WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	st := New(db)
	err = st.PutImported(context.Background(), []model.Pair{{Plaintext: "alpha", Obfuscated: "ahpla"}})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetStateBeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("unavailable"))

	st := New(db)
	require.Error(t, st.ResetState(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
