package skills

import (
	"fmt"

	"github.com/google/uuid"
)

// RowState is where a rendered row sits in its edit/remove lifecycle.
type RowState int

const (
	Viewing RowState = iota
	Editing
	Removing
)

func (s RowState) String() string {
	switch s {
	case Editing:
		return "editing"
	case Removing:
		return "removing"
	default:
		return "viewing"
	}
}

// Row is a snapshot of one rendered skill. Position is only valid until the
// next mutation.
type Row struct {
	ID       string
	Position int
	Label    string
	State    RowState
}

// Removal identifies a row whose exit animation is running. The removal is
// applied by FinishRemove once the animation has elapsed.
type Removal struct {
	RowID string
	Label string
}

type rowMeta struct {
	id    string
	state RowState
}

// View tracks per-row state alongside a Store. Row ids stay attached to their
// label while positions shift, so a deferred removal always hits the element
// it was started for.
type View struct {
	store *Store
	rows  []rowMeta
}

func NewView(store *Store) *View {
	v := &View{store: store, rows: make([]rowMeta, store.Len())}
	for i := range v.rows {
		v.rows[i] = rowMeta{id: uuid.NewString()}
	}
	return v
}

// Rows returns the current rows with positions derived from store order.
func (v *View) Rows() []Row {
	labels := v.store.Labels()
	out := make([]Row, len(labels))
	for i, label := range labels {
		out[i] = Row{ID: v.rows[i].id, Position: i, Label: label, State: v.rows[i].state}
	}
	return out
}

func (v *View) Len() int {
	return v.store.Len()
}

// Row returns the row at pos.
func (v *View) Row(pos int) (Row, error) {
	label, err := v.store.At(pos)
	if err != nil {
		return Row{}, err
	}
	return Row{ID: v.rows[pos].id, Position: pos, Label: label, State: v.rows[pos].state}, nil
}

// Resolve returns the row at pos and checks that it still carries rowID.
// A mismatch means the caller rendered against an older order.
func (v *View) Resolve(pos int, rowID string) (Row, error) {
	row, err := v.Row(pos)
	if err != nil {
		return Row{}, err
	}
	if rowID != "" && row.ID != rowID {
		return Row{}, fmt.Errorf("%w: row %d is no longer %s", ErrIndexOutOfRange, pos, rowID)
	}
	return row, nil
}

// Add appends label and returns the new row so the caller can play its entry
// animation.
func (v *View) Add(label string) (Row, error) {
	stored, err := v.store.Add(label)
	if err != nil {
		return Row{}, err
	}
	meta := rowMeta{id: uuid.NewString()}
	v.rows = append(v.rows, meta)
	return Row{ID: meta.id, Position: len(v.rows) - 1, Label: stored}, nil
}

// BeginEdit moves the row at pos into Editing and returns it with the label
// to pre-fill.
func (v *View) BeginEdit(pos int) (Row, error) {
	row, err := v.Row(pos)
	if err != nil {
		return Row{}, err
	}
	if row.State == Removing {
		return Row{}, ErrRemovalPending
	}
	v.rows[pos].state = Editing
	row.State = Editing
	return row, nil
}

// CommitEdit leaves Editing and writes input when it is a real change.
func (v *View) CommitEdit(pos int, input string) (Row, bool, error) {
	if _, err := v.Row(pos); err != nil {
		return Row{}, false, err
	}
	if v.rows[pos].state == Removing {
		return Row{}, false, ErrRemovalPending
	}
	changed, err := v.store.Update(pos, input)
	if err != nil {
		return Row{}, false, err
	}
	v.rows[pos].state = Viewing
	row, err := v.Row(pos)
	return row, changed, err
}

// CancelEdit returns the row at pos to Viewing with its label untouched.
func (v *View) CancelEdit(pos int) (Row, error) {
	row, err := v.Row(pos)
	if err != nil {
		return Row{}, err
	}
	if row.State == Editing {
		v.rows[pos].state = Viewing
		row.State = Viewing
	}
	return row, nil
}

// BeginRemove marks the row at pos as Removing. The element stays in the
// store until FinishRemove runs; a second call for the same row fails with
// ErrRemovalPending.
func (v *View) BeginRemove(pos int) (Removal, error) {
	row, err := v.Row(pos)
	if err != nil {
		return Removal{}, err
	}
	if row.State == Removing {
		return Removal{}, ErrRemovalPending
	}
	v.rows[pos].state = Removing
	return Removal{RowID: row.ID, Label: row.Label}, nil
}

// FinishRemove deletes the row carrying rowID from wherever it sits now.
func (v *View) FinishRemove(rowID string) (string, bool) {
	pos := v.indexOf(rowID)
	if pos < 0 {
		return "", false
	}
	label, err := v.store.RemoveAt(pos)
	if err != nil {
		return "", false
	}
	v.rows = append(v.rows[:pos], v.rows[pos+1:]...)
	return label, true
}

func (v *View) indexOf(rowID string) int {
	for i, meta := range v.rows {
		if meta.id == rowID {
			return i
		}
	}
	return -1
}
