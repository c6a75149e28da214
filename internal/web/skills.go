package web

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/skills"
)

// refreshSlack is added to the exit animation before the list re-fetches,
// so the deferred removal has been applied by the time it is rendered.
const refreshSlack = 50 * time.Millisecond

type skillRowView struct {
	skills.Row
	Entering bool
	Removing bool
	Hidden   bool
	AnimMs   int64
}

type skillsListView struct {
	Rows       []skillRowView
	RefreshURL string
	RefreshMs  int64
}

func (s *Server) animMs() int64 {
	return s.cfg.UI.SkillAnimation.Milliseconds()
}

func (s *Server) rowView(row skills.Row) skillRowView {
	return skillRowView{Row: row, AnimMs: s.animMs(), Hidden: row.State == skills.Removing}
}

// skillsListView marks the entering row and the row whose exit animation
// starts with this render. Rows already removing from an earlier render
// stay hidden and the list polls until their removal lands.
func (s *Server) skillsListView(rows []skills.Row, entering string, removal *skills.Removal) skillsListView {
	view := skillsListView{Rows: make([]skillRowView, len(rows))}
	pending := false
	for i, row := range rows {
		rv := s.rowView(row)
		rv.Entering = row.ID == entering
		if removal != nil && row.ID == removal.RowID {
			rv.Removing, rv.Hidden = true, false
		}
		pending = pending || rv.Hidden
		view.Rows[i] = rv
	}

	switch {
	case removal != nil:
		q := url.Values{"removed": {removal.RowID}, "label": {removal.Label}}
		view.RefreshURL = "/skills?" + q.Encode()
		view.RefreshMs = (s.cfg.UI.SkillAnimation + refreshSlack).Milliseconds()
	case pending:
		view.RefreshURL = "/skills"
		view.RefreshMs = refreshSlack.Milliseconds()
	}
	return view
}

func (s *Server) listSkills(c *gin.Context) {
	removedID, label := c.Query("removed"), c.Query("label")

	var view skillsListView
	pending, gone := false, false
	if !s.onLoop(c, func() {
		rows := s.skills.Rows()
		view = s.skillsListView(rows, "", nil)
		if removedID != "" {
			pending = containsRow(rows, removedID)
			gone = !pending
		}
	}) {
		return
	}

	switch {
	case pending:
		// Removal not applied yet. Keep asking so its notice still shows.
		view.RefreshURL = "/skills?" + url.Values{"removed": {removedID}, "label": {label}}.Encode()
		view.RefreshMs = refreshSlack.Milliseconds()
	case gone && label != "":
		setNotice(c, notify.Removed(label))
	}
	c.HTML(http.StatusOK, "skills-list", view)
}

func (s *Server) addSkill(c *gin.Context) {
	input := c.PostForm("skill")

	var (
		row  skills.Row
		err  error
		view skillsListView
	)
	if !s.onLoop(c, func() {
		row, err = s.skills.Add(input)
		if err == nil {
			view = s.skillsListView(s.skills.Rows(), row.ID, nil)
		}
	}) {
		return
	}
	if err != nil {
		s.reject(c, err, input)
		return
	}

	setNotice(c, notify.Added(row.Label))
	c.HTML(http.StatusOK, "skills-list", view)
}

func (s *Server) editSkill(c *gin.Context) {
	pos, rid := position(c), c.Query("rid")

	var (
		row skills.Row
		err error
	)
	if !s.onLoop(c, func() {
		if _, err = s.skills.Resolve(pos, rid); err != nil {
			return
		}
		row, err = s.skills.BeginEdit(pos)
	}) {
		return
	}
	if err != nil {
		s.reject(c, err, "")
		return
	}
	c.HTML(http.StatusOK, "skill-edit", s.rowView(row))
}

func (s *Server) cancelEdit(c *gin.Context) {
	pos, rid := position(c), c.Query("rid")

	var (
		row skills.Row
		err error
	)
	if !s.onLoop(c, func() {
		if _, err = s.skills.Resolve(pos, rid); err != nil {
			return
		}
		row, err = s.skills.CancelEdit(pos)
	}) {
		return
	}
	if err != nil {
		s.reject(c, err, "")
		return
	}
	c.HTML(http.StatusOK, "skill-row", s.rowView(row))
}

func (s *Server) commitEdit(c *gin.Context) {
	pos, rid := position(c), c.Query("rid")
	input := c.PostForm("skill")

	var (
		row     skills.Row
		changed bool
		err     error
	)
	if !s.onLoop(c, func() {
		if _, err = s.skills.Resolve(pos, rid); err != nil {
			return
		}
		row, changed, err = s.skills.CommitEdit(pos, input)
	}) {
		return
	}
	if err != nil {
		s.reject(c, err, input)
		return
	}

	if changed {
		setNotice(c, notify.Updated(row.Label))
	}
	c.HTML(http.StatusOK, "skill-row", s.rowView(row))
}

// deleteSkill starts the exit animation. The element is removed from the
// store by a continuation scheduled on the loop once the animation is over.
func (s *Server) deleteSkill(c *gin.Context) {
	pos, rid := position(c), c.Query("rid")

	var (
		removal skills.Removal
		err     error
		view    skillsListView
	)
	if !s.onLoop(c, func() {
		if _, err = s.skills.Resolve(pos, rid); err != nil {
			return
		}
		if removal, err = s.skills.BeginRemove(pos); err != nil {
			return
		}
		id := removal.RowID
		s.loop.After(s.cfg.UI.SkillAnimation, func() {
			if label, ok := s.skills.FinishRemove(id); ok {
				log.Printf("Skill %q removed", label)
			}
		})
		view = s.skillsListView(s.skills.Rows(), "", &removal)
	}) {
		return
	}
	if errors.Is(err, skills.ErrRemovalPending) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		s.reject(c, err, "")
		return
	}
	c.HTML(http.StatusOK, "skills-list", view)
}

// reject answers a refused skill operation. Stale positions re-render the
// whole list; everything else leaves the page as it is.
func (s *Server) reject(c *gin.Context, err error, input string) {
	if n := notify.FromError(err, input); !n.IsZero() {
		setNotice(c, n)
	}

	if errors.Is(err, skills.ErrIndexOutOfRange) {
		var view skillsListView
		if !s.onLoop(c, func() { view = s.skillsListView(s.skills.Rows(), "", nil) }) {
			return
		}
		c.Header("HX-Retarget", "#dynamic-skills-list")
		c.Header("HX-Reswap", "outerHTML")
		c.HTML(http.StatusOK, "skills-list", view)
		return
	}

	c.Header("HX-Reswap", "none")
	c.Status(http.StatusOK)
}

func setNotice(c *gin.Context, n notify.Notice) {
	c.Header("HX-Trigger", n.Trigger())
}

// position parses :pos; anything unparsable maps to -1, which every
// store operation rejects as out of range.
func position(c *gin.Context) int {
	pos, err := strconv.Atoi(c.Param("pos"))
	if err != nil {
		return -1
	}
	return pos
}

func containsRow(rows []skills.Row, id string) bool {
	for _, r := range rows {
		if r.ID == id {
			return true
		}
	}
	return false
}
