package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/projects"
	"github.com/Zachkp/portfolio/internal/skills"
)

// noticeTTL is how long a notice stays on screen.
const noticeTTL = 3 * time.Second

// DownloadCounter keeps the resume download total. analytics.Store
// implements it.
type DownloadCounter interface {
	RecordDownload(ctx context.Context) (int64, error)
	DownloadCount(ctx context.Context) (int64, error)
}

type Options struct {
	Portfolio      *content.Portfolio
	Skills         *skills.View
	Projects       *projects.View
	Downloads      DownloadCounter
	SkillAnimation time.Duration
	ProjectFade    time.Duration
	Now            func() time.Time
}

type focusArea int

const (
	focusSkills focusArea = iota
	focusProjects
)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdding
	modeEditing
)

// Continuations scheduled with tea.Tick.
type (
	entryDoneMsg   struct{ id string }
	removeDoneMsg  struct{ id string }
	fadeOutDoneMsg struct{ gen int }
	fadeInDoneMsg  struct{ gen int }
	noticeDoneMsg  struct{ seq int }
)

type downloadMsg struct {
	count int64
	err   error
}

// Model is the Bubble Tea model for the portfolio page.
type Model struct {
	portfolio *content.Portfolio
	skills    *skills.View
	gallery   *projects.View
	downloads DownloadCounter
	anim      time.Duration
	fade      time.Duration
	now       func() time.Time

	input  textinput.Model
	mode   inputMode
	focus  focusArea
	cursor int
	editID string

	entering  string
	notice    notify.Notice
	noticeSeq int
	count     int64

	width    int
	quitting bool
}

func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "New skill"
	ti.CharLimit = 64
	ti.Width = 40

	m := Model{
		portfolio: opts.Portfolio,
		skills:    opts.Skills,
		gallery:   opts.Projects,
		downloads: opts.Downloads,
		anim:      opts.SkillAnimation,
		fade:      opts.ProjectFade,
		now:       opts.Now,
		input:     ti,
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadDownloads
}

func (m Model) loadDownloads() tea.Msg {
	if m.downloads == nil {
		return downloadMsg{}
	}
	n, err := m.downloads.DownloadCount(context.Background())
	return downloadMsg{count: n, err: err}
}

func (m Model) recordDownload() tea.Msg {
	if m.downloads == nil {
		return downloadMsg{err: errors.New("downloads are not tracked")}
	}
	n, err := m.downloads.RecordDownload(context.Background())
	return downloadMsg{count: n, err: err}
}

func after(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdding:
			return m.updateAdding(msg)
		case modeEditing:
			return m.updateEditing(msg)
		}
		return m.updateBrowse(msg)

	case entryDoneMsg:
		if m.entering == msg.id {
			m.entering = ""
		}
		return m, nil

	case removeDoneMsg:
		label, ok := m.skills.FinishRemove(msg.id)
		if !ok {
			return m, nil
		}
		m.clampCursor()
		cmd := m.setNotice(notify.Removed(label))
		return m, cmd

	case fadeOutDoneMsg:
		if m.gallery.FadeOutDone(msg.gen) {
			return m, after(m.fade, fadeInDoneMsg{gen: msg.gen})
		}
		return m, nil

	case fadeInDoneMsg:
		m.gallery.FadeInDone(msg.gen)
		return m, nil

	case noticeDoneMsg:
		if msg.seq == m.noticeSeq {
			m.notice = notify.Notice{}
		}
		return m, nil

	case downloadMsg:
		if msg.err != nil {
			cmd := m.setNotice(notify.Notice{Level: notify.LevelError, Message: "Could not record download"})
			return m, cmd
		}
		m.count = msg.count
		return m, nil
	}

	var cmd tea.Cmd
	if m.mode != modeBrowse {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		if m.focus == focusSkills {
			m.focus = focusProjects
		} else {
			m.focus = focusSkills
		}
		return m, nil
	case "a":
		m.mode = modeAdding
		m.input.Reset()
		cmd := m.input.Focus()
		return m, cmd
	case "s":
		gen := m.gallery.RequestSort(m.gallery.Mode().Next())
		return m, after(m.fade, fadeOutDoneMsg{gen: gen})
	case "r":
		return m, m.recordDownload
	}

	if m.focus != focusSkills {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.skills.Len()-1 {
			m.cursor++
		}
	case "enter":
		row, err := m.skills.BeginEdit(m.cursor)
		if err != nil {
			cmd := m.reject(err, "")
			return m, cmd
		}
		m.mode = modeEditing
		m.editID = row.ID
		m.input.SetValue(row.Label)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case "d":
		removal, err := m.skills.BeginRemove(m.cursor)
		if err != nil {
			cmd := m.reject(err, "")
			return m, cmd
		}
		return m, after(m.anim, removeDoneMsg{id: removal.RowID})
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := m.input.Value()
		row, err := m.skills.Add(input)
		if err != nil {
			cmd := m.reject(err, input)
			return m, cmd
		}
		m.input.Reset()
		m.entering = row.ID
		m.cursor = row.Position
		cmd := m.setNotice(notify.Added(row.Label))
		return m, tea.Batch(cmd, after(m.anim, entryDoneMsg{id: row.ID}))
	case tea.KeyEsc:
		if m.input.Value() != "" {
			m.input.Reset()
			return m, nil
		}
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		pos := m.positionOf(m.editID)
		m.mode = modeBrowse
		m.input.Blur()
		if pos < 0 {
			m.editID = ""
			m.input.Reset()
			cmd := m.reject(skills.ErrIndexOutOfRange, "")
			return m, cmd
		}
		m.cursor = pos

		if msg.Type == tea.KeyEsc {
			m.skills.CancelEdit(pos)
			m.editID = ""
			m.input.Reset()
			return m, nil
		}

		row, changed, err := m.skills.CommitEdit(pos, m.input.Value())
		m.editID = ""
		m.input.Reset()
		if err != nil {
			cmd := m.reject(err, "")
			return m, cmd
		}
		if changed {
			cmd := m.setNotice(notify.Updated(row.Label))
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// reject shows the notice for a refused operation. A repeated delete has
// none and is ignored.
func (m *Model) reject(err error, input string) tea.Cmd {
	n := notify.FromError(err, input)
	if n.IsZero() {
		return nil
	}
	return m.setNotice(n)
}

func (m *Model) setNotice(n notify.Notice) tea.Cmd {
	m.noticeSeq++
	m.notice = n
	return after(noticeTTL, noticeDoneMsg{seq: m.noticeSeq})
}

func (m *Model) clampCursor() {
	if n := m.skills.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) positionOf(id string) int {
	for _, row := range m.skills.Rows() {
		if row.ID == id {
			return row.Position
		}
	}
	return -1
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.portfolio.Greeting()))
	b.WriteString("\n")
	b.WriteString(m.portfolio.Summary)
	b.WriteString("\n\n")

	b.WriteString(m.heading("Skills", m.focus == focusSkills))
	b.WriteString("\n")
	b.WriteString(m.viewSkills())
	b.WriteString("\n")

	b.WriteString(m.heading(fmt.Sprintf("Projects (sort: %s)", m.gallery.Mode()), m.focus == focusProjects))
	b.WriteString("\n")
	b.WriteString(m.viewProjects())
	b.WriteString("\n")

	b.WriteString(m.viewTables())

	b.WriteString(headingStyle.Render("Contact Information"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Email: %s\nGitHub: %s\n", m.portfolio.Contact.Email, m.portfolio.Contact.GitHub)
	fmt.Fprintf(&b, "Resume downloaded: %d time(s)\n", m.count)

	if !m.notice.IsZero() {
		b.WriteString("\n")
		b.WriteString(noticeStyle(m.notice.Level).Render(m.notice.Message))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) heading(text string, active bool) string {
	if active {
		return activeHeadingStyle.Render(text)
	}
	return headingStyle.Render(text)
}

func (m Model) viewSkills() string {
	var b strings.Builder
	for _, row := range m.skills.Rows() {
		marker := "  "
		if m.focus == focusSkills && row.Position == m.cursor {
			marker = selectedStyle.Render("> ")
		}

		label := row.Label
		switch {
		case row.State == skills.Editing && m.mode == modeEditing && row.ID == m.editID:
			label = m.input.View()
		case row.State == skills.Removing:
			label = removingStyle.Render(label)
		case row.ID == m.entering:
			label = enteringStyle.Render(label)
		}
		b.WriteString(marker + label + "\n")
	}

	if m.mode == modeAdding {
		b.WriteString("Add: " + m.input.View() + "\n")
	}
	return b.String()
}

func (m Model) viewProjects() string {
	phase := m.gallery.Phase()
	var b strings.Builder
	for _, card := range projects.Cards(m.gallery.Shown(), m.now()) {
		var body strings.Builder
		body.WriteString(cardTitleStyle.Render(card.Title))
		body.WriteString("\n")
		body.WriteString(card.Description)
		body.WriteString("\n")
		body.WriteString(statusStyle(card.Status).Render("Status: " + card.Status.String()))
		body.WriteString("\n")
		body.WriteString(dimStyle.Render("Deadline: " + card.DeadlineText))
		if card.HasImage() {
			body.WriteString("\n")
			body.WriteString(dimStyle.Render("[image: " + card.ImageAlt + "]"))
		}

		rendered := cardStyle.Render(body.String())
		if phase != projects.Visible {
			rendered = fadedStyle.Render(rendered)
		}
		b.WriteString(rendered)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewTables() string {
	var b strings.Builder
	if len(m.portfolio.Education) > 0 {
		b.WriteString(headingStyle.Render("Education"))
		b.WriteString("\n")
		for _, row := range m.portfolio.Education {
			b.WriteString(strings.Join(row.Cells(), " | "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if len(m.portfolio.Experience) > 0 {
		b.WriteString(headingStyle.Render("Experience"))
		b.WriteString("\n")
		for _, row := range m.portfolio.Experience {
			b.WriteString(strings.Join(row.Cells(), " | "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) help() string {
	switch m.mode {
	case modeAdding:
		return "enter add • esc clear/close"
	case modeEditing:
		return "enter save • esc cancel"
	}
	return "tab focus • ↑/↓ select • a add • enter edit • d delete • s sort • r download resume • q quit"
}
