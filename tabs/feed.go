package tabs

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/100-hours-a-week/3-ellim-community-tui/core"
	"github.com/100-hours-a-week/3-ellim-community-tui/core/binding"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/api"
	"github.com/100-hours-a-week/3-ellim-community-tui/screens"
	"github.com/100-hours-a-week/3-ellim-community-tui/widgets"
)

type feedPageMsg struct {
	page    api.PostPage
	replace bool
	err     error
}

// FeedTab is the cursor-paginated post list. Moving past the last loaded row
// fetches the next page; rows are click targets in the binding registry.
type FeedTab struct {
	posts   []api.Post
	cursor  int64
	hasMore bool
	loading bool
	sel     int
	top     int // first visible row
	rowsTg  []binding.Target
}

func NewFeedTab() *FeedTab {
	return &FeedTab{hasMore: true}
}

func (t *FeedTab) ID() string    { return "feed" }
func (t *FeedTab) Title() string { return "Feed" }
func (t *FeedTab) Scope() string { return "tab:feed" }

func (t *FeedTab) InitTab(m *core.Model) tea.Cmd {
	return t.loadPage(m, 0, true)
}

// Activate rebuilds the tab's click targets; the registry dropped them when
// the tab was switched away from.
func (t *FeedTab) Activate(m *core.Model) tea.Cmd {
	t.bindRows(m)
	return nil
}

func (t *FeedTab) bindRows(m *core.Model) {
	reg := m.Bindings()
	for _, tg := range t.rowsTg {
		reg.ReleaseTarget(tg)
	}
	t.rowsTg = t.rowsTg[:0]
	for i := range t.posts {
		idx := i
		tg := reg.Target(fmt.Sprintf("feed/post-%d", t.posts[i].ID))
		reg.Register(tg, "click", binding.Func(func(binding.Event) tea.Cmd {
			t.sel = idx
			return t.open(m)
		}), binding.WithScope(t.Scope()))
		t.rowsTg = append(t.rowsTg, tg)
	}
}

func (t *FeedTab) loadPage(m *core.Model, cursor int64, replace bool) tea.Cmd {
	if t.loading {
		return nil
	}
	t.loading = true
	client := m.API
	limit := m.PageSize
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		page, err := client.ListPosts(ctx, cursor, limit)
		return feedPageMsg{page: page, replace: replace, err: err}
	}
}

func (t *FeedTab) open(m *core.Model) tea.Cmd {
	if t.sel < 0 || t.sel >= len(t.posts) {
		return nil
	}
	detail, load := screens.NewDetailScreen(m, t.posts[t.sel].ID)
	return tea.Batch(core.PushCmd(detail), load)
}

func (t *FeedTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case feedPageMsg:
		t.loading = false
		if msg.err != nil {
			return core.ErrorCmd(msg.err)
		}
		if msg.replace {
			t.posts = msg.page.Posts
			t.sel, t.top = 0, 0
		} else {
			t.posts = append(t.posts, msg.page.Posts...)
		}
		t.cursor = msg.page.NextCursor
		t.hasMore = msg.page.HasMore
		t.bindRows(m)
		return nil
	case tea.KeyMsg:
		keys := m.Keys()
		switch {
		case keys.IsAction(msg, "row-down", t.Scope()):
			if t.sel < len(t.posts)-1 {
				t.sel++
				return nil
			}
			if t.hasMore {
				return t.loadPage(m, t.cursor, false)
			}
		case keys.IsAction(msg, "row-up", t.Scope()):
			if t.sel > 0 {
				t.sel--
			}
		case keys.IsAction(msg, "open", t.Scope()):
			return t.open(m)
		case keys.IsAction(msg, "compose", t.Scope()):
			if !m.LoggedIn {
				return core.PushCmd(screens.NewLoginScreen(m))
			}
			composer, tick := screens.NewComposerScreen(m, nil)
			return tea.Batch(core.PushCmd(composer), tick)
		case keys.IsAction(msg, "reload", t.Scope()):
			return t.loadPage(m, 0, true)
		}
	}
	return nil
}

// HandleMouse maps clicks and wheel events onto feed rows. Row i renders at
// body line i-top+1, after the title line.
func (t *FeedTab) HandleMouse(m *core.Model, msg tea.MouseMsg) (bool, tea.Cmd) {
	_, bodyY := m.BodyOrigin()
	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		if t.sel < len(t.posts)-1 {
			t.sel++
		} else if t.hasMore {
			return true, t.loadPage(m, t.cursor, false)
		}
		return true, nil
	case msg.Button == tea.MouseButtonWheelUp:
		if t.sel > 0 {
			t.sel--
		}
		return true, nil
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		row := msg.Y - bodyY - 1 + t.top
		if row >= 0 && row < len(t.rowsTg) {
			return true, m.Bindings().Dispatch(t.rowsTg[row], "click", nil)
		}
	}
	return false, nil
}

func (t *FeedTab) Build(m *core.Model) widgets.Widget {
	rows := make([]widgets.Row, 0, len(t.posts)+1)
	for i, p := range t.posts {
		mark := widgets.RowPlain
		if i == t.sel {
			mark = widgets.RowSelected
		}
		rows = append(rows, widgets.Row{
			Text: fmt.Sprintf("%-26s  %s · ♥%d 💬%d 👁%d", clipTitle(p.Title), p.Author.Nickname, p.LikeCount, p.CommentCount, p.ViewCount),
			Mark: mark,
		})
	}
	title := "Posts"
	if t.loading {
		title = "Posts (loading...)"
	} else if t.hasMore {
		title = "Posts (more below)"
	}
	return widgets.RowList{Title: title, Rows: rows}
}

func clipTitle(s string) string {
	r := []rune(s)
	if len(r) > 26 {
		return string(r[:25]) + "…"
	}
	return s
}
