package store_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/alexanderramin/shutterflow/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes_CRUD(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	st := newStore(t, backend)

	n := st.CreateNote(ctx, domain.NoteInput{Title: "Visite", Location: "Lyon", Tags: []string{"a"}, Content: "RAS"})
	assert.Empty(t, n.Images)
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)

	got, ok := st.GetNote(ctx, n.ID)
	require.True(t, ok)
	assert.Equal(t, "Visite", got.Title)

	updated, ok := st.UpdateNote(ctx, n.ID, domain.NotePatch{Content: domain.StrPtr("Volet bloqué"), Tags: []string{"b", "c"}})
	require.True(t, ok)
	assert.Equal(t, "Volet bloqué", updated.Content)
	assert.Equal(t, "Lyon", updated.Location)
	assert.Equal(t, []string{"b", "c"}, updated.Tags)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	reloaded := newStore(t, backend)
	again, ok := reloaded.GetNote(ctx, n.ID)
	require.True(t, ok)
	assert.Equal(t, "Volet bloqué", again.Content)

	require.True(t, st.DeleteNote(ctx, n.ID))
	assert.False(t, st.DeleteNote(ctx, n.ID))
	assert.Empty(t, st.GetNotes(ctx))
	_, ok = st.UpdateNote(ctx, n.ID, domain.NotePatch{})
	assert.False(t, ok)
}

func TestNotes_Images(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, nil)
	n := st.CreateNote(ctx, domain.NoteInput{Title: "Photos"})

	_, ok := st.AddNoteImage(ctx, n.ID, "data:image/jpeg;base64,AAA")
	require.True(t, ok)
	got, ok := st.AddNoteImage(ctx, n.ID, "data:image/jpeg;base64,BBB")
	require.True(t, ok)
	assert.Equal(t, []string{"data:image/jpeg;base64,AAA", "data:image/jpeg;base64,BBB"}, got.Images)

	_, ok = st.RemoveNoteImage(ctx, n.ID, 5)
	assert.False(t, ok)

	got, ok = st.RemoveNoteImage(ctx, n.ID, 0)
	require.True(t, ok)
	assert.Equal(t, []string{"data:image/jpeg;base64,BBB"}, got.Images)

	_, ok = st.AddNoteImage(ctx, "missing", "x")
	assert.False(t, ok)
}
