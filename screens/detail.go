package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/100-hours-a-week/3-ellim-community-tui/core"
	"github.com/100-hours-a-week/3-ellim-community-tui/core/binding"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/api"
)

type detailLoadedMsg struct {
	post     api.Post
	comments []api.Comment
	err      error
}

type likeDoneMsg struct {
	result api.LikeResult
	err    error
}

type commentAddedMsg struct {
	comment api.Comment
	err     error
}

type commentUpdatedMsg struct {
	comment api.Comment
	err     error
}

type commentDeletedMsg struct {
	id  int64
	err error
}

type postDeletedMsg struct {
	err error
}

// DetailScreen shows one post with its comment thread. The like button is a
// binding target; the l key and a click on the button line both dispatch
// through the registry, so there is exactly one toggle path.
type DetailScreen struct {
	app      *core.Model
	postID   int64
	post     api.Post
	comments []api.Comment
	loading  bool
	errMsg   string

	likeBtn  binding.Target
	likeLine int // line index of the like button in the last render, -1 unknown

	input      textinput.Model
	commenting bool
	editingID  int64 // comment being edited, 0 when adding
	selected   int   // highlighted comment, -1 none
}

func NewDetailScreen(m *core.Model, postID int64) (*DetailScreen, tea.Cmd) {
	in := textinput.New()
	in.Placeholder = "write a comment"
	in.Prompt = "comment> "
	s := &DetailScreen{
		app:      m,
		postID:   postID,
		loading:  true,
		likeLine: -1,
		selected: -1,
		input:    in,
	}
	reg := m.Bindings()
	s.likeBtn = reg.Target(fmt.Sprintf("post-%d/like", postID))
	reg.Register(s.likeBtn, "click", binding.Func(func(binding.Event) tea.Cmd {
		return s.toggleLike()
	}), binding.WithScope(s.Scope()))
	return s, s.load()
}

func (s *DetailScreen) Title() string { return "Post" }
func (s *DetailScreen) Scope() string { return "screen:detail" }

// Close releases the like button's target once the screen is popped.
func (s *DetailScreen) Close(reg *binding.Registry) {
	reg.ReleaseTarget(s.likeBtn)
	s.likeBtn = 0
}

func (s *DetailScreen) load() tea.Cmd {
	client := s.app.API
	id := s.postID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		post, err := client.GetPost(ctx, id)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		comments, err := client.ListComments(ctx, id)
		if err != nil {
			return detailLoadedMsg{err: err}
		}
		return detailLoadedMsg{post: post, comments: comments}
	}
}

func (s *DetailScreen) toggleLike() tea.Cmd {
	client := s.app.API
	id := s.postID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		res, err := client.ToggleLike(ctx, id)
		return likeDoneMsg{result: res, err: err}
	}
}

func (s *DetailScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		s.loading = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil, false
		}
		s.post = msg.post
		s.comments = msg.comments
		s.errMsg = ""
		return s, nil, false
	case likeDoneMsg:
		if msg.err != nil {
			return s, core.ErrorCmd(msg.err), false
		}
		s.post.Liked = msg.result.Liked
		s.post.LikeCount = msg.result.LikeCount
		return s, nil, false
	case commentAddedMsg:
		if msg.err != nil {
			return s, core.ErrorCmd(msg.err), false
		}
		s.comments = append(s.comments, msg.comment)
		s.post.CommentCount++
		return s, core.StatusCmd("Comment added"), false
	case commentUpdatedMsg:
		if msg.err != nil {
			return s, core.ErrorCmd(msg.err), false
		}
		for i := range s.comments {
			if s.comments[i].ID == msg.comment.ID {
				s.comments[i] = msg.comment
			}
		}
		return s, core.StatusCmd("Comment updated"), false
	case commentDeletedMsg:
		if msg.err != nil {
			return s, core.ErrorCmd(msg.err), false
		}
		s.comments = removeComment(s.comments, msg.id)
		if s.post.CommentCount > 0 {
			s.post.CommentCount--
		}
		if s.selected >= len(s.comments) {
			s.selected = len(s.comments) - 1
		}
		return s, core.StatusCmd("Comment deleted"), false
	case postDeletedMsg:
		if msg.err != nil {
			return s, core.ErrorCmd(msg.err), false
		}
		return s, core.StatusCmd("Post deleted"), true
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	if s.commenting {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd, false
	}
	return s, nil, false
}

func (s *DetailScreen) handleKey(msg tea.KeyMsg) (core.Screen, tea.Cmd, bool) {
	if s.commenting {
		switch msg.String() {
		case "esc":
			s.commenting = false
			s.editingID = 0
			s.input.SetValue("")
			s.input.Blur()
			return s, nil, false
		case "enter":
			text := strings.TrimSpace(s.input.Value())
			if text == "" {
				return s, nil, false
			}
			editing := s.editingID
			s.input.SetValue("")
			s.commenting = false
			s.editingID = 0
			s.input.Blur()
			if editing != 0 {
				return s, s.updateComment(editing, text), false
			}
			return s, s.addComment(text), false
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd, false
	}
	switch msg.String() {
	case "esc", "q":
		return s, nil, true
	case "l":
		return s, s.app.Bindings().Dispatch(s.likeBtn, "click", nil), false
	case "c":
		s.commenting = true
		return s, s.input.Focus(), false
	case "down", "j":
		if s.selected < len(s.comments)-1 {
			s.selected++
		}
		return s, nil, false
	case "up", "k":
		if s.selected > -1 {
			s.selected--
		}
		return s, nil, false
	case "x":
		if s.selected >= 0 && s.selected < len(s.comments) {
			c := s.comments[s.selected]
			if c.Author.ID != s.app.User.ID {
				return s, core.StatusCmd("You can only delete your own comments"), false
			}
			return s, core.PushCmd(NewConfirmScreen(
				"Delete comment",
				"Delete this comment? This cannot be undone.",
				s.deleteComment(c.ID),
			)), false
		}
	case "D":
		if s.post.Author.ID == s.app.User.ID {
			return s, core.PushCmd(NewConfirmScreen(
				"Delete post",
				"Delete this post? This cannot be undone.",
				s.deletePost(),
			)), false
		}
		return s, core.StatusCmd("You can only delete your own posts"), false
	case "e":
		// With a comment highlighted, e edits the comment; otherwise the post.
		if s.selected >= 0 && s.selected < len(s.comments) {
			c := s.comments[s.selected]
			if c.Author.ID != s.app.User.ID {
				return s, core.StatusCmd("You can only edit your own comments"), false
			}
			s.commenting = true
			s.editingID = c.ID
			s.input.SetValue(c.Content)
			return s, s.input.Focus(), false
		}
		if s.post.Author.ID == s.app.User.ID {
			edit, cmd := NewComposerScreen(s.app, &s.post)
			return s, tea.Batch(core.PushCmd(edit), cmd), false
		}
		return s, core.StatusCmd("You can only edit your own posts"), false
	}
	return s, nil, false
}

func (s *DetailScreen) addComment(text string) tea.Cmd {
	client := s.app.API
	id := s.postID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c, err := client.AddComment(ctx, id, text)
		return commentAddedMsg{comment: c, err: err}
	}
}

func (s *DetailScreen) updateComment(commentID int64, text string) tea.Cmd {
	client := s.app.API
	id := s.postID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c, err := client.UpdateComment(ctx, id, commentID, text)
		return commentUpdatedMsg{comment: c, err: err}
	}
}

func (s *DetailScreen) deleteComment(commentID int64) tea.Cmd {
	client := s.app.API
	id := s.postID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := client.DeleteComment(ctx, id, commentID)
		return commentDeletedMsg{id: commentID, err: err}
	}
}

func (s *DetailScreen) deletePost() tea.Cmd {
	client := s.app.API
	id := s.postID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return postDeletedMsg{err: client.DeletePost(ctx, id)}
	}
}

// HandleMouse hit-tests clicks against the like button line recorded during
// the last render.
func (s *DetailScreen) HandleMouse(m *core.Model, msg tea.MouseMsg) (bool, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false, nil
	}
	if s.likeLine >= 0 && msg.Y == s.likeLine {
		return true, m.Bindings().Dispatch(s.likeBtn, "click", nil)
	}
	return false, nil
}

func removeComment(comments []api.Comment, id int64) []api.Comment {
	out := comments[:0]
	for _, c := range comments {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func (s *DetailScreen) View(width, height int) string {
	if s.loading {
		return "Loading post..."
	}
	if s.errMsg != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Render(s.errMsg)
	}
	var lines []string
	title := lipgloss.NewStyle().Bold(true).Render(s.post.Title)
	meta := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(
		"%s · %s · views %d",
		s.post.Author.Nickname, s.post.CreatedAt.Format("2006-01-02 15:04"), s.post.ViewCount,
	))
	lines = append(lines, title, meta, "")
	for _, l := range strings.Split(strings.TrimRight(s.post.Content, "\n"), "\n") {
		lines = append(lines, l)
	}
	lines = append(lines, "")

	heart := "♡"
	if s.post.Liked {
		heart = "♥"
	}
	s.likeLine = len(lines)
	likeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	lines = append(lines, likeStyle.Render(fmt.Sprintf("[%s %d]", heart, s.post.LikeCount))+
		lipgloss.NewStyle().Faint(true).Render("  l or click to like"))
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Comments (%d)", s.post.CommentCount)))
	for i, c := range s.comments {
		line := fmt.Sprintf("%s: %s", c.Author.Nickname, c.Content)
		if i == s.selected {
			line = lipgloss.NewStyle().Reverse(true).Render(line)
		}
		lines = append(lines, line)
	}
	if s.commenting {
		lines = append(lines, "", s.input.View())
	} else {
		lines = append(lines, "", lipgloss.NewStyle().Faint(true).Render("c comment · l like · e edit · x delete comment · D delete post · esc close"))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
