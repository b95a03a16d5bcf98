package clipstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(":memory:", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Add(ctx, "first")
	require.NoError(t, err)
	_, err = s.Add(ctx, "second", "Path", "path", " ")
	require.NoError(t, err)

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "second", entries[0].Content)
	require.Equal(t, []string{"path"}, entries[0].Tags)
	require.Equal(t, "first", entries[1].Content)
	require.NotEmpty(t, entries[0].ID)
}

func TestAddSkipsRepeatOfNewest(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a, err := s.Add(ctx, "same")
	require.NoError(t, err)
	b, err := s.Add(ctx, "same")
	require.NoError(t, err)
	require.Equal(t, a.ID, b.ID)

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestHistoryIsCapped(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, WithMaxItems(5))
	for i := 0; i < 8; i++ {
		_, err := s.Add(ctx, fmt.Sprintf("item %d", i))
		require.NoError(t, err)
	}
	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 5)
	require.Equal(t, "item 7", entries[0].Content)
	require.Equal(t, "item 3", entries[4].Content)
}

func TestDefaultCapIs200(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for i := 0; i < DefaultMaxItems+3; i++ {
		_, err := s.Add(ctx, fmt.Sprintf("%d", i))
		require.NoError(t, err)
	}
	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, DefaultMaxItems)
}

func TestPreviewTruncates(t *testing.T) {
	long := strings.Repeat("ż", 150)
	p := Preview(long)
	require.Equal(t, strings.Repeat("ż", 100)+"...", p)
	require.Equal(t, "short", Preview("short"))
}

func TestFilterByTermAndTag(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	_, err := s.Add(ctx, "C:/Users/Public", "path")
	require.NoError(t, err)
	_, err = s.Add(ctx, "hello world", "text")
	require.NoError(t, err)
	_, err = s.Add(ctx, "/home/user", "path")
	require.NoError(t, err)

	byTerm, err := s.List(ctx, Filter{Term: "PUBLIC"})
	require.NoError(t, err)
	require.Len(t, byTerm, 1)

	byTag, err := s.List(ctx, Filter{Tag: "path"})
	require.NoError(t, err)
	require.Len(t, byTag, 2)
	require.Equal(t, "/home/user", byTag[0].Content)

	counts, err := s.TagCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []TagCount{{Name: "path", Count: 2}, {Name: "text", Count: 1}}, counts)
}

func TestDeleteClearAndTags(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	e, err := s.Add(ctx, "one", "a")
	require.NoError(t, err)
	_, err = s.Add(ctx, "two")
	require.NoError(t, err)

	require.NoError(t, s.SetTags(ctx, e.ID, []string{"x", "y"}))
	entries, err := s.List(ctx, Filter{Tag: "y"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, []string{"x", "y"}, entries[0].Tags)

	require.NoError(t, s.Delete(ctx, e.ID))
	require.ErrorIs(t, s.Delete(ctx, e.ID), ErrNotFound)
	require.ErrorIs(t, s.SetTags(ctx, e.ID, nil), ErrNotFound)

	counts, err := s.TagCounts(ctx)
	require.NoError(t, err)
	require.Empty(t, counts)

	require.NoError(t, s.Clear(ctx))
	entries, err = s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestTemplates(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := openTestStore(t, WithClock(func() time.Time { return fixed }))

	_, err := s.AddTemplate(ctx, " ", "x")
	require.Error(t, err)

	a, err := s.AddTemplate(ctx, "sig", "Regards")
	require.NoError(t, err)
	_, err = s.AddTemplate(ctx, "addr", "Main St")
	require.NoError(t, err)

	tpls, err := s.Templates(ctx)
	require.NoError(t, err)
	require.Len(t, tpls, 2)
	require.Equal(t, "sig", tpls[0].Name)
	require.True(t, tpls[0].CreatedAt.Equal(fixed))

	require.NoError(t, s.DeleteTemplate(ctx, a.ID))
	require.ErrorIs(t, s.DeleteTemplate(ctx, a.ID), ErrNotFound)

	require.NoError(t, s.Clear(ctx))
	tpls, err = s.Templates(ctx)
	require.NoError(t, err)
	require.Len(t, tpls, 1)
}

func TestStorePersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "clipboard.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Add(ctx, "kept")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "kept", entries[0].Content)
}
