package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newView(t *testing.T, labels ...string) *View {
	t.Helper()
	s, err := NewStore(labels)
	require.NoError(t, err)
	return NewView(s)
}

func labelsOf(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Label
	}
	return out
}

func TestViewRowsHaveStableIDs(t *testing.T) {
	v := newView(t, "A", "B", "C")
	before := v.Rows()
	require.Len(t, before, 3)
	for i, r := range before {
		assert.Equal(t, i, r.Position)
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, Viewing, r.State)
	}

	rm, err := v.BeginRemove(0)
	require.NoError(t, err)
	_, ok := v.FinishRemove(rm.RowID)
	require.True(t, ok)

	after := v.Rows()
	assert.Equal(t, []string{"B", "C"}, labelsOf(after))
	assert.Equal(t, before[1].ID, after[0].ID)
	assert.Equal(t, 0, after[0].Position)
}

func TestViewAdd(t *testing.T) {
	v := newView(t, "A")
	row, err := v.Add(" B ")
	require.NoError(t, err)
	assert.Equal(t, "B", row.Label)
	assert.Equal(t, 1, row.Position)
	assert.Equal(t, row.ID, v.Rows()[1].ID)

	_, err = v.Add("a")
	assert.ErrorIs(t, err, ErrDuplicateSkill)
	assert.Equal(t, 2, v.Len())
}

func TestViewRemovalIsDeferred(t *testing.T) {
	v := newView(t, "A", "B", "C")

	rm, err := v.BeginRemove(1)
	require.NoError(t, err)
	assert.Equal(t, "B", rm.Label)

	rows := v.Rows()
	assert.Equal(t, []string{"A", "B", "C"}, labelsOf(rows))
	assert.Equal(t, Removing, rows[1].State)

	label, ok := v.FinishRemove(rm.RowID)
	assert.True(t, ok)
	assert.Equal(t, "B", label)
	assert.Equal(t, []string{"A", "C"}, labelsOf(v.Rows()))
}

func TestViewDoubleRemoveOfSameRowIsRejected(t *testing.T) {
	v := newView(t, "A", "B", "C")

	first, err := v.BeginRemove(1)
	require.NoError(t, err)
	_, err = v.BeginRemove(1)
	assert.ErrorIs(t, err, ErrRemovalPending)

	_, ok := v.FinishRemove(first.RowID)
	require.True(t, ok)
	_, ok = v.FinishRemove(first.RowID)
	assert.False(t, ok)
	assert.Equal(t, []string{"A", "C"}, labelsOf(v.Rows()))
}

func TestViewOverlappingRemovalsHitTheirOwnRows(t *testing.T) {
	v := newView(t, "A", "B", "C", "D")

	rmA, err := v.BeginRemove(0)
	require.NoError(t, err)
	rmC, err := v.BeginRemove(2)
	require.NoError(t, err)

	// A finishes first and shifts C from 2 to 1.
	_, ok := v.FinishRemove(rmA.RowID)
	require.True(t, ok)
	label, ok := v.FinishRemove(rmC.RowID)
	require.True(t, ok)
	assert.Equal(t, "C", label)
	assert.Equal(t, []string{"B", "D"}, labelsOf(v.Rows()))
}

func TestViewRemoveOutOfRange(t *testing.T) {
	v := newView(t, "A")
	_, err := v.BeginRemove(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = v.BeginRemove(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestViewEditLifecycle(t *testing.T) {
	v := newView(t, "Git", "Linux")

	row, err := v.BeginEdit(0)
	require.NoError(t, err)
	assert.Equal(t, "Git", row.Label)
	assert.Equal(t, Editing, v.Rows()[0].State)

	row, changed, err := v.CommitEdit(0, " GitHub ")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "GitHub", row.Label)
	assert.Equal(t, Viewing, row.State)
}

func TestViewEditNoOps(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unchanged with whitespace", "  Git "},
		{"blank", "  "},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(t, "Git")
			_, err := v.BeginEdit(0)
			require.NoError(t, err)
			row, changed, err := v.CommitEdit(0, tt.input)
			require.NoError(t, err)
			assert.False(t, changed)
			assert.Equal(t, "Git", row.Label)
			assert.Equal(t, Viewing, row.State)
		})
	}
}

func TestViewCancelEdit(t *testing.T) {
	v := newView(t, "Git")
	_, err := v.BeginEdit(0)
	require.NoError(t, err)
	row, err := v.CancelEdit(0)
	require.NoError(t, err)
	assert.Equal(t, Viewing, row.State)
	assert.Equal(t, "Git", row.Label)
}

func TestViewEditWhileRemovingIsRejected(t *testing.T) {
	v := newView(t, "Git")
	_, err := v.BeginRemove(0)
	require.NoError(t, err)

	_, err = v.BeginEdit(0)
	assert.ErrorIs(t, err, ErrRemovalPending)
	_, _, err = v.CommitEdit(0, "Other")
	assert.ErrorIs(t, err, ErrRemovalPending)
	assert.Equal(t, []string{"Git"}, labelsOf(v.Rows()))
}

func TestViewResolve(t *testing.T) {
	v := newView(t, "A", "B")
	rows := v.Rows()

	got, err := v.Resolve(1, rows[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Label)

	_, err = v.Resolve(1, rows[0].ID)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	got, err = v.Resolve(0, "")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Label)
}

func TestRowStateString(t *testing.T) {
	assert.Equal(t, "viewing", Viewing.String())
	assert.Equal(t, "editing", Editing.String())
	assert.Equal(t, "removing", Removing.String())
}
