package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/projects"
	"github.com/Zachkp/portfolio/internal/skills"
)

type fakeCounter struct {
	n   int64
	err error
}

func (f *fakeCounter) RecordDownload(context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.n++
	return f.n, nil
}

func (f *fakeCounter) DownloadCount(context.Context) (int64, error) {
	return f.n, f.err
}

func newTestModel(t *testing.T, seed ...string) (Model, *skills.View) {
	t.Helper()
	portfolio, err := content.Load("")
	require.NoError(t, err)

	if seed == nil {
		seed = portfolio.Skills
	}
	store, err := skills.NewStore(seed)
	require.NoError(t, err)
	view := skills.NewView(store)

	list, err := portfolio.ProjectList()
	require.NoError(t, err)

	m := New(Options{
		Portfolio:      portfolio,
		Skills:         view,
		Projects:       projects.NewView(projects.NewCatalog(list)),
		Downloads:      &fakeCounter{},
		SkillAnimation: 400 * time.Millisecond,
		ProjectFade:    400 * time.Millisecond,
		Now:            func() time.Time { return time.Date(2024, 8, 15, 9, 0, 0, 0, time.UTC) },
	})
	return m, view
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	var next tea.Model = m
	for _, msg := range msgs {
		next, cmd = next.Update(msg)
	}
	return next.(Model), cmd
}

func labels(v *skills.View) []string {
	rows := v.Rows()
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Label
	}
	return out
}

func TestAddSkill(t *testing.T) {
	m, view := newTestModel(t, "C", "Go")

	m, _ = send(m, key("a"))
	require.Equal(t, modeAdding, m.mode)

	m.input.SetValue("  Rust ")
	m, cmd := send(m, key("enter"))

	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"C", "Go", "Rust"}, labels(view))
	assert.Equal(t, notify.Added("Rust"), m.notice)
	assert.Equal(t, 2, m.cursor)
	assert.NotEmpty(t, m.entering)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, modeAdding, m.mode, "input stays open for the next skill")

	m, _ = send(m, entryDoneMsg{id: m.entering})
	assert.Empty(t, m.entering)
}

func TestAddSkillRejected(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "Please enter a skill."},
		{"blank", "   ", "Please enter a skill."},
		{"duplicate", "go", `Skill "go" already exists!`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, view := newTestModel(t, "C", "Go")
			m, _ = send(m, key("a"))
			m.input.SetValue(tt.input)

			m, _ = send(m, key("enter"))
			assert.Equal(t, tt.want, m.notice.Message)
			assert.Equal(t, notify.LevelError, m.notice.Level)
			assert.Equal(t, []string{"C", "Go"}, labels(view))
			assert.Equal(t, tt.input, m.input.Value(), "rejected input is kept")
		})
	}
}

func TestEscapeClearsThenClosesAddInput(t *testing.T) {
	m, _ := newTestModel(t, "C")
	m, _ = send(m, key("a"))
	m.input.SetValue("draft")

	m, _ = send(m, key("esc"))
	assert.Empty(t, m.input.Value())
	assert.Equal(t, modeAdding, m.mode)

	m, _ = send(m, key("esc"))
	assert.Equal(t, modeBrowse, m.mode)
}

func TestDeleteWaitsForAnimation(t *testing.T) {
	m, view := newTestModel(t, "C", "Go", "Rust")
	m, _ = send(m, key("down"))

	m, cmd := send(m, key("d"))
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"C", "Go", "Rust"}, labels(view), "still present during the exit animation")
	assert.Equal(t, skills.Removing, view.Rows()[1].State)

	id := view.Rows()[1].ID
	m, _ = send(m, removeDoneMsg{id: id})
	assert.Equal(t, []string{"C", "Rust"}, labels(view))
	assert.Equal(t, notify.Removed("Go"), m.notice)
}

func TestDeleteTwiceIsIgnored(t *testing.T) {
	m, view := newTestModel(t, "C", "Go")

	m, cmd := send(m, key("d"))
	require.NotNil(t, cmd)
	id := view.Rows()[0].ID

	m, cmd = send(m, key("d"))
	assert.Nil(t, cmd)
	assert.True(t, m.notice.IsZero())

	m, _ = send(m, removeDoneMsg{id: id}, removeDoneMsg{id: id})
	assert.Equal(t, []string{"Go"}, labels(view))
}

func TestRemovalFollowsShiftedRow(t *testing.T) {
	m, view := newTestModel(t, "A", "B", "C")

	// Start removing C, then A; A finishes first and C shifts down.
	m, _ = send(m, key("down"), key("down"), key("d"))
	idC := view.Rows()[2].ID
	m.cursor = 0
	m, _ = send(m, key("d"))
	idA := view.Rows()[0].ID

	m, _ = send(m, removeDoneMsg{id: idA})
	assert.Equal(t, []string{"B", "C"}, labels(view))

	m, _ = send(m, removeDoneMsg{id: idC})
	assert.Equal(t, []string{"B"}, labels(view))
	assert.Equal(t, 0, m.cursor)
}

func TestEditSkill(t *testing.T) {
	m, view := newTestModel(t, "C", "Go")
	m, _ = send(m, key("down"), key("enter"))

	require.Equal(t, modeEditing, m.mode)
	assert.Equal(t, "Go", m.input.Value(), "input is pre-filled")
	assert.Equal(t, skills.Editing, view.Rows()[1].State)

	m.input.SetValue(" Golang ")
	m, _ = send(m, key("enter"))
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, []string{"C", "Golang"}, labels(view))
	assert.Equal(t, notify.Updated("Golang"), m.notice)
}

func TestEditWithoutChange(t *testing.T) {
	for _, input := range []string{"Go", "  Go  ", "", "   "} {
		m, view := newTestModel(t, "C", "Go")
		m, _ = send(m, key("down"), key("enter"))
		m.input.SetValue(input)

		m, _ = send(m, key("enter"))
		assert.Equal(t, []string{"C", "Go"}, labels(view), "input %q", input)
		assert.True(t, m.notice.IsZero(), "input %q", input)
		assert.Equal(t, skills.Viewing, view.Rows()[1].State)
	}
}

func TestEditSkipsDuplicateCheck(t *testing.T) {
	m, view := newTestModel(t, "C", "Go")
	m, _ = send(m, key("enter"))
	m.input.SetValue("go")

	_, _ = send(m, key("enter"))
	assert.Equal(t, []string{"go", "Go"}, labels(view))
}

func TestCancelEdit(t *testing.T) {
	m, view := newTestModel(t, "C", "Go")
	m, _ = send(m, key("enter"))
	m.input.SetValue("changed")

	m, _ = send(m, key("esc"))
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, []string{"C", "Go"}, labels(view))
	assert.Equal(t, skills.Viewing, view.Rows()[0].State)
}

func TestEditFollowsRowAfterRemoval(t *testing.T) {
	m, view := newTestModel(t, "A", "B", "C")

	m, _ = send(m, key("d"))
	idA := view.Rows()[0].ID
	m, _ = send(m, key("down"), key("down"), key("enter"))
	require.Equal(t, modeEditing, m.mode)

	m, _ = send(m, removeDoneMsg{id: idA})
	m.input.SetValue("Z")
	m, _ = send(m, key("enter"))

	assert.Equal(t, []string{"B", "Z"}, labels(view))
	assert.Equal(t, 1, m.cursor)
}

func TestSortFades(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := send(m, key("s"))
	require.NotNil(t, cmd)
	assert.Equal(t, projects.FadingOut, m.gallery.Phase())
	assert.Equal(t, projects.SortEarliest, m.gallery.Mode())

	m, _ = send(m, key("s"))
	assert.Equal(t, projects.SortLatest, m.gallery.Mode())

	// The first request is stale; only the latest generation applies.
	m, _ = send(m, fadeOutDoneMsg{gen: 1})
	assert.Equal(t, projects.FadingOut, m.gallery.Phase())

	m, cmd = send(m, fadeOutDoneMsg{gen: 2})
	require.NotNil(t, cmd)
	assert.Equal(t, projects.FadingIn, m.gallery.Phase())
	shown := m.gallery.Shown()
	require.Len(t, shown, 3)
	assert.Equal(t, "Ongoing Project: AI Chatbot", shown[0].Title)

	m, _ = send(m, fadeInDoneMsg{gen: 2})
	assert.Equal(t, projects.Visible, m.gallery.Phase())
}

func TestRecordDownload(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := send(m, key("r"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.EqualValues(t, 1, m.count)
	assert.Contains(t, m.View(), "Resume downloaded: 1 time(s)")
}

func TestRecordDownloadFailure(t *testing.T) {
	m, _ := newTestModel(t)
	m.downloads = &fakeCounter{err: errors.New("db closed")}

	m, cmd := send(m, key("r"))
	m, _ = send(m, cmd())
	assert.Equal(t, "Could not record download", m.notice.Message)
}

func TestNoticeExpires(t *testing.T) {
	m, _ := newTestModel(t, "C")
	m, _ = send(m, key("a"), key("enter"))
	require.False(t, m.notice.IsZero())
	seq := m.noticeSeq

	m, _ = send(m, noticeDoneMsg{seq: seq - 1})
	assert.False(t, m.notice.IsZero(), "an older timer does not clear a newer notice")

	m, _ = send(m, noticeDoneMsg{seq: seq})
	assert.True(t, m.notice.IsZero())
}

func TestFocusLimitsSkillKeys(t *testing.T) {
	m, view := newTestModel(t, "C", "Go")
	m, _ = send(m, key("tab"))
	require.Equal(t, focusProjects, m.focus)

	m, cmd := send(m, key("d"))
	assert.Nil(t, cmd)
	assert.Equal(t, skills.Viewing, view.Rows()[0].State)

	m, _ = send(m, key("tab"))
	assert.Equal(t, focusSkills, m.focus)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := send(m, key("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestViewRendersPage(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()

	for _, want := range []string{
		"Hello, my name is Kacy Souvanna! Welcome to my portfolio!",
		"Problem-Solving",
		"Projects (sort: none)",
		"Status: Completed",
		"Status: Due Today!",
		"Status: Ongoing",
		"Deadline: 6/1/2024",
		"Northern Arizona University",
		"Contact Information",
	} {
		assert.True(t, strings.Contains(out, want), "missing %q", want)
	}
}
