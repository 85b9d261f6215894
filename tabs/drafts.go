package tabs

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/100-hours-a-week/3-ellim-community-tui/core"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/store"
	"github.com/100-hours-a-week/3-ellim-community-tui/screens"
	"github.com/100-hours-a-week/3-ellim-community-tui/widgets"
)

type draftsLoadedMsg struct {
	drafts []store.Draft
	err    error
}

type draftRemovedMsg struct {
	id  string
	err error
}

// DraftsTab lists locally autosaved composer drafts, newest first.
type DraftsTab struct {
	drafts []store.Draft
	sel    int
}

func NewDraftsTab() *DraftsTab { return &DraftsTab{} }

func (t *DraftsTab) ID() string    { return "drafts" }
func (t *DraftsTab) Title() string { return "Drafts" }
func (t *DraftsTab) Scope() string { return "tab:drafts" }

func (t *DraftsTab) InitTab(m *core.Model) tea.Cmd {
	return t.reload(m)
}

// Activate refreshes the list so drafts saved while another tab was active
// show up.
func (t *DraftsTab) Activate(m *core.Model) tea.Cmd {
	return t.reload(m)
}

func (t *DraftsTab) reload(m *core.Model) tea.Cmd {
	st := m.Store
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		drafts, err := st.ListDrafts()
		return draftsLoadedMsg{drafts: drafts, err: err}
	}
}

func (t *DraftsTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case draftsLoadedMsg:
		if msg.err != nil {
			return core.ErrorCmd(msg.err)
		}
		t.drafts = msg.drafts
		if t.sel >= len(t.drafts) {
			t.sel = len(t.drafts) - 1
		}
		if t.sel < 0 {
			t.sel = 0
		}
		return nil
	case draftRemovedMsg:
		if msg.err != nil {
			return core.ErrorCmd(msg.err)
		}
		return tea.Batch(core.StatusCmd("Draft deleted"), t.reload(m))
	case tea.KeyMsg:
		keys := m.Keys()
		switch {
		case keys.IsAction(msg, "row-down", t.Scope()):
			if t.sel < len(t.drafts)-1 {
				t.sel++
			}
		case keys.IsAction(msg, "row-up", t.Scope()):
			if t.sel > 0 {
				t.sel--
			}
		case keys.IsAction(msg, "open", t.Scope()):
			return t.open(m)
		case msg.String() == "x":
			if t.sel < len(t.drafts) {
				d := t.drafts[t.sel]
				st := m.Store
				return core.PushCmd(screens.NewConfirmScreen(
					"Delete draft",
					"Delete draft \""+d.Title+"\"?",
					func() tea.Msg { return draftRemovedMsg{id: d.ID, err: st.DeleteDraft(d.ID)} },
				))
			}
		}
	}
	return nil
}

// open resumes the selected draft. New-post drafts go straight into the
// composer carrying their row id; drafts of an existing post reopen against
// the live post, whose composer picks the draft up through the post id.
func (t *DraftsTab) open(m *core.Model) tea.Cmd {
	if t.sel >= len(t.drafts) {
		return nil
	}
	d := t.drafts[t.sel]
	if d.PostID != 0 {
		detail, load := screens.NewDetailScreen(m, d.PostID)
		return tea.Batch(core.PushCmd(detail), load)
	}
	composer, tick := screens.NewComposerScreenFromDraft(m, d)
	return tea.Batch(core.PushCmd(composer), tick)
}

func (t *DraftsTab) Build(m *core.Model) widgets.Widget {
	rows := make([]widgets.Row, 0, len(t.drafts))
	for i, d := range t.drafts {
		mark := widgets.RowPlain
		if i == t.sel {
			mark = widgets.RowSelected
		}
		title := strings.TrimSpace(d.Title)
		if title == "" {
			title = "(untitled)"
		}
		kind := "new post"
		if d.PostID != 0 {
			kind = fmt.Sprintf("edit of post %d", d.PostID)
		}
		rows = append(rows, widgets.Row{
			Text: fmt.Sprintf("%-26s  %s · %d images · %s", clipTitle(title), kind, len(d.Images), d.UpdatedAt),
			Mark: mark,
		})
	}
	title := fmt.Sprintf("Drafts (%d)", len(t.drafts))
	if len(rows) == 0 {
		return widgets.Box{Title: title, Content: "No drafts. The composer autosaves here."}
	}
	return widgets.RowList{Title: title, Rows: rows}
}
