package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/100-hours-a-week/3-ellim-community-tui/core"
	"github.com/100-hours-a-week/3-ellim-community-tui/core/binding"
	"github.com/100-hours-a-week/3-ellim-community-tui/core/reorder"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/api"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/store"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/validate"
	"github.com/100-hours-a-week/3-ellim-community-tui/widgets"
)

const (
	composerTitle = iota
	composerContent
	composerImages
)

const autosaveInterval = 3 * time.Second

type composerSavedMsg struct {
	post api.Post
	err  error
}

type draftSavedMsg struct {
	err error
}

type composerTickMsg struct{}

// ComposerScreen writes a new post or edits an existing one. Attachments are
// a reorderable list: rows can be dragged with the mouse or grabbed and
// stepped with the keyboard, and the resulting order is what gets submitted.
// The work in progress autosaves to a local draft.
type ComposerScreen struct {
	app     *core.Model
	editing *api.Post // nil when composing a new post
	draftID string

	title   textinput.Model
	content textarea.Model
	images  []string
	adding  bool
	addIn   textinput.Model

	focus    int
	sel      int // selected attachment row while the pane has focus
	ctrl     *reorder.Controller
	imageTop int // line of the first attachment row in the last render

	errMsg string
	busy   bool
	dirty  bool
	saved  time.Time
}

// composerItems adapts the screen's image slice to the reorder controller.
type composerItems struct{ s *ComposerScreen }

func (it composerItems) Len() int { return len(it.s.images) }

func (it composerItems) Move(from, to int) {
	images := it.s.images
	if from < 0 || from >= len(images) || to < 0 || to >= len(images) {
		return
	}
	img := images[from]
	images = append(images[:from], images[from+1:]...)
	images = append(images[:to], append([]string{img}, images[to:]...)...)
	it.s.images = images
	it.s.sel = to
}

func (it composerItems) Refresh() {
	it.s.dirty = true
}

// NewComposerScreen builds the composer. A non-nil post switches it to edit
// mode, pre-filled from the post and any local draft for it; composing a new
// post always starts on a fresh draft row.
func NewComposerScreen(m *core.Model, editing *api.Post) (*ComposerScreen, tea.Cmd) {
	s := newComposer(m, editing)
	s.loadDraft()
	return s, s.finishSetup()
}

// NewComposerScreenFromDraft resumes exactly the given draft, keeping its id
// so autosave writes back to the same row.
func NewComposerScreenFromDraft(m *core.Model, d store.Draft) (*ComposerScreen, tea.Cmd) {
	s := newComposer(m, nil)
	s.applyDraft(d)
	return s, s.finishSetup()
}

func newComposer(m *core.Model, editing *api.Post) *ComposerScreen {
	title := textinput.New()
	title.Prompt = "title> "
	title.Placeholder = "up to 26 characters"
	title.CharLimit = 26
	title.Focus()

	content := textarea.New()
	content.Placeholder = "write your post"
	content.SetHeight(8)

	addIn := textinput.New()
	addIn.Prompt = "image url> "

	s := &ComposerScreen{
		app:      m,
		editing:  editing,
		title:    title,
		content:  content,
		addIn:    addIn,
		imageTop: -1,
	}
	if editing != nil {
		s.title.SetValue(editing.Title)
		s.content.SetValue(editing.Content)
		s.images = append([]string(nil), editing.Images...)
	}
	return s
}

func (s *ComposerScreen) finishSetup() tea.Cmd {
	s.ctrl = reorder.New(s.app.Bindings(), s.Scope(), composerItems{s: s})
	s.ctrl.Attach()
	return tea.Tick(autosaveInterval, func(time.Time) tea.Msg { return composerTickMsg{} })
}

// loadDraft restores the autosaved draft of the post being edited, preferring
// it over the post body. New posts never guess at an existing draft: resuming
// one goes through NewComposerScreenFromDraft with the chosen row.
func (s *ComposerScreen) loadDraft() {
	st := s.app.Store
	if st == nil || s.editing == nil {
		s.draftID = uuid.NewString()
		return
	}
	d, err := st.DraftForPost(s.editing.ID)
	if err != nil {
		s.draftID = uuid.NewString()
		return
	}
	s.applyDraft(d)
}

func (s *ComposerScreen) applyDraft(d store.Draft) {
	s.draftID = d.ID
	s.title.SetValue(d.Title)
	s.content.SetValue(d.Content)
	s.images = append([]string(nil), d.Images...)
}

func (s *ComposerScreen) Title() string {
	if s.editing != nil {
		return "Edit post"
	}
	return "New post"
}

func (s *ComposerScreen) Scope() string { return "screen:composer" }

// Close releases the reorder controller's list and row targets on pop. The
// esc path destroys the controller eagerly; doing it again here is a no-op.
func (s *ComposerScreen) Close(reg *binding.Registry) {
	s.ctrl.Destroy()
}

func (s *ComposerScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case composerTickMsg:
		rearm := tea.Tick(autosaveInterval, func(time.Time) tea.Msg { return composerTickMsg{} })
		if !s.dirty {
			return s, rearm, false
		}
		return s, tea.Batch(rearm, s.saveDraft()), false
	case draftSavedMsg:
		if msg.err != nil {
			return s, core.ErrorCmd(msg.err), false
		}
		s.dirty = false
		s.saved = time.Now()
		return s, nil, false
	case composerSavedMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil, false
		}
		s.dropDraft()
		verb := "published"
		if s.editing != nil {
			verb = "updated"
		}
		s.ctrl.Destroy()
		return s, core.StatusCmd("Post " + verb), true
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, s.forwardToFocused(msg), false
}

func (s *ComposerScreen) handleKey(msg tea.KeyMsg) (core.Screen, tea.Cmd, bool) {
	if s.busy {
		return s, nil, false
	}
	if s.adding {
		switch msg.String() {
		case "esc":
			s.adding = false
			s.addIn.Blur()
			return s, nil, false
		case "enter":
			url := strings.TrimSpace(s.addIn.Value())
			if url != "" {
				s.images = append(s.images, url)
				s.dirty = true
				s.ctrl.Attach()
			}
			s.addIn.SetValue("")
			s.adding = false
			s.addIn.Blur()
			return s, nil, false
		}
		var cmd tea.Cmd
		s.addIn, cmd = s.addIn.Update(msg)
		return s, cmd, false
	}

	reg := s.app.Bindings()
	if s.focus == composerImages && s.ctrl.Dragging() {
		switch msg.String() {
		case "up", "k":
			return s, reg.Dispatch(s.ctrl.List(), reorder.EventStep, -1), false
		case "down", "j":
			return s, reg.Dispatch(s.ctrl.List(), reorder.EventStep, +1), false
		case "enter", " ":
			return s, reg.Dispatch(s.ctrl.List(), reorder.EventDrop, nil), false
		case "esc":
			return s, reg.Dispatch(s.ctrl.List(), reorder.EventCancel, nil), false
		}
		return s, nil, false
	}

	switch msg.String() {
	case "esc":
		if s.focus == composerContent && s.content.Focused() {
			s.content.Blur()
			return s, nil, false
		}
		s.ctrl.Destroy()
		if s.dirty {
			return s, s.saveDraft(), true
		}
		return s, nil, true
	case "tab":
		return s, s.cycleFocus(1), false
	case "shift+tab":
		return s, s.cycleFocus(-1), false
	case "ctrl+s":
		return s, s.submit(), false
	case "ctrl+d":
		return s, s.saveDraft(), false
	}

	if s.focus == composerImages {
		switch msg.String() {
		case "up", "k":
			if s.sel > 0 {
				s.sel--
			}
			return s, nil, false
		case "down", "j":
			if s.sel < len(s.images)-1 {
				s.sel++
			}
			return s, nil, false
		case "enter", " ", "g":
			if len(s.images) > 0 {
				return s, reg.Dispatch(s.ctrl.List(), reorder.EventGrab, s.sel), false
			}
			return s, nil, false
		case "a":
			s.adding = true
			return s, s.addIn.Focus(), false
		case "d":
			if s.sel >= 0 && s.sel < len(s.images) {
				s.images = append(s.images[:s.sel], s.images[s.sel+1:]...)
				if s.sel >= len(s.images) && s.sel > 0 {
					s.sel--
				}
				s.dirty = true
				s.ctrl.Attach()
			}
			return s, nil, false
		}
		return s, nil, false
	}
	return s, s.forwardToFocused(msg), false
}

func (s *ComposerScreen) cycleFocus(dir int) tea.Cmd {
	s.title.Blur()
	s.content.Blur()
	s.focus = (s.focus + dir + 3) % 3
	switch s.focus {
	case composerTitle:
		return s.title.Focus()
	case composerContent:
		return s.content.Focus()
	}
	return nil
}

func (s *ComposerScreen) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case composerTitle:
		before := s.title.Value()
		s.title, cmd = s.title.Update(msg)
		if s.title.Value() != before {
			s.dirty = true
		}
	case composerContent:
		before := s.content.Value()
		s.content, cmd = s.content.Update(msg)
		if s.content.Value() != before {
			s.dirty = true
		}
	}
	return cmd
}

// HandleMouse drives the pointer modality: press lifts the row under the
// cursor, motion updates the drop candidate, release commits.
func (s *ComposerScreen) HandleMouse(m *core.Model, msg tea.MouseMsg) (bool, tea.Cmd) {
	if s.imageTop < 0 {
		return false, nil
	}
	row := msg.Y - s.imageTop
	reg := m.Bindings()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return false, nil
		}
		if t := s.ctrl.Row(row); t != 0 {
			s.focus = composerImages
			s.title.Blur()
			s.content.Blur()
			s.sel = row
			return true, reg.Dispatch(t, reorder.EventPress, row)
		}
	case tea.MouseActionMotion:
		if !s.ctrl.Dragging() {
			return false, nil
		}
		if t := s.ctrl.Row(row); t != 0 {
			return true, reg.Dispatch(t, reorder.EventMove, row)
		}
		return true, nil
	case tea.MouseActionRelease:
		if !s.ctrl.Dragging() {
			return false, nil
		}
		sess, _ := s.ctrl.Session()
		target := sess.Source
		if t := s.ctrl.Row(target); t != 0 {
			return true, reg.Dispatch(t, reorder.EventRelease, nil)
		}
	}
	return false, nil
}

func (s *ComposerScreen) saveDraft() tea.Cmd {
	st := s.app.Store
	if st == nil {
		return nil
	}
	var postID int64
	if s.editing != nil {
		postID = s.editing.ID
	}
	d := store.Draft{
		ID:      s.draftID,
		PostID:  postID,
		Title:   s.title.Value(),
		Content: s.content.Value(),
		Images:  append([]string(nil), s.images...),
	}
	return func() tea.Msg {
		return draftSavedMsg{err: st.SaveDraft(&d)}
	}
}

func (s *ComposerScreen) dropDraft() {
	if s.app.Store != nil {
		_ = s.app.Store.DeleteDraft(s.draftID)
	}
}

func (s *ComposerScreen) submit() tea.Cmd {
	title := strings.TrimSpace(s.title.Value())
	content := strings.TrimSpace(s.content.Value())
	if err := validate.PostTitle(title); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if err := validate.PostContent(content); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.busy = true
	client := s.app.API
	images := append([]string(nil), s.images...)
	editing := s.editing
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var (
			post api.Post
			err  error
		)
		if editing != nil {
			post, err = client.UpdatePost(ctx, editing.ID, title, content, images)
		} else {
			post, err = client.CreatePost(ctx, title, content, images)
		}
		return composerSavedMsg{post: post, err: err}
	}
}

func (s *ComposerScreen) View(width, height int) string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(s.Title()), "")
	lines = append(lines, s.title.View())
	lines = append(lines, strings.Split(s.content.View(), "\n")...)
	lines = append(lines, "")
	label := fmt.Sprintf("Attachments (%d)", len(s.images))
	if s.focus == composerImages {
		label = lipgloss.NewStyle().Bold(true).Render(label)
	}
	lines = append(lines, label)

	s.imageTop = len(lines)
	rows := make([]widgets.Row, 0, len(s.images))
	for i, img := range s.images {
		mark := widgets.RowPlain
		switch s.ctrl.RowState(i) {
		case reorder.RowLifted:
			mark = widgets.RowLifted
		case reorder.RowHighlight:
			mark = widgets.RowHighlight
		default:
			if s.focus == composerImages && i == s.sel {
				mark = widgets.RowSelected
			}
		}
		rows = append(rows, widgets.Row{Text: img, Mark: mark})
	}
	if len(rows) == 0 {
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render("  none · press a to add"))
	} else {
		lines = append(lines, strings.Split(widgets.RowList{Rows: rows}.Render(width, len(rows)), "\n")...)
	}

	if s.adding {
		lines = append(lines, "", s.addIn.View())
	}
	lines = append(lines, "")
	switch {
	case s.busy:
		lines = append(lines, "Saving...")
	case s.errMsg != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Render(s.errMsg))
	case s.ctrl.Dragging():
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render("↑/↓ move · enter drop · esc cancel"))
	default:
		hint := "tab focus · ctrl+s publish · ctrl+d draft · esc close"
		if s.focus == composerImages {
			hint = "enter/g grab · a add · d remove · " + hint
		}
		if !s.saved.IsZero() {
			hint += " · draft saved " + s.saved.Format("15:04:05")
		}
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render(hint))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
