package core

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
)

type Command struct {
	ID          string
	Name        string
	Description string
	Scopes      []string
	Execute     func(m *Model) tea.Cmd
	Disabled    func(m *Model) (bool, string)
}

type CommandResult struct {
	CommandID string
	Name      string
	Desc      string
	Disabled  bool
	Reason    string
}

type CommandRegistry struct {
	commands map[string]Command
}

func NewCommandRegistry(cmds []Command) *CommandRegistry {
	reg := &CommandRegistry{commands: map[string]Command{}}
	for _, c := range cmds {
		reg.Register(c)
	}
	return reg
}

func (r *CommandRegistry) Register(c Command) {
	if c.ID == "" {
		return
	}
	r.commands[c.ID] = c
}

// Search returns the commands matching query in scope, best match first.
// Substring matches rank ahead of fuzzy ones; fuzzy matching tolerates an
// edit distance of up to 2 against any name token.
func (r *CommandRegistry) Search(query, scope string, m *Model) []CommandResult {
	q := strings.ToLower(strings.TrimSpace(query))
	type scored struct {
		res  CommandResult
		rank int
	}
	results := make([]scored, 0, len(r.commands))
	for _, c := range r.commands {
		if !scopeMatch(scope, c.Scopes) {
			continue
		}
		rank, ok := matchRank(q, c)
		if !ok {
			continue
		}
		disabled := false
		reason := ""
		if c.Disabled != nil {
			disabled, reason = c.Disabled(m)
		}
		results = append(results, scored{
			res: CommandResult{
				CommandID: c.ID,
				Name:      c.Name,
				Desc:      c.Description,
				Disabled:  disabled,
				Reason:    reason,
			},
			rank: rank,
		})
	}
	slices.SortFunc(results, func(a, b scored) int {
		if a.res.Disabled != b.res.Disabled {
			if !a.res.Disabled {
				return -1
			}
			return 1
		}
		if a.rank != b.rank {
			return cmp.Compare(a.rank, b.rank)
		}
		return cmp.Compare(a.res.Name, b.res.Name)
	})
	out := make([]CommandResult, len(results))
	for i, s := range results {
		out[i] = s.res
	}
	return out
}

// scopeMatch reports whether a scope list admits scope; empty and "*" admit
// everything.
func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

func matchRank(q string, c Command) (int, bool) {
	if q == "" {
		return 0, true
	}
	haystack := strings.ToLower(c.Name + " " + c.Description + " " + c.ID)
	if strings.Contains(haystack, q) {
		return 0, true
	}
	best := -1
	for _, token := range strings.Fields(strings.ToLower(c.Name)) {
		d := levenshtein.ComputeDistance(q, token)
		if best < 0 || d < best {
			best = d
		}
	}
	if best >= 0 && best <= 2 {
		return best, true
	}
	return 0, false
}

func (r *CommandRegistry) Execute(id string, m *Model) tea.Cmd {
	c, ok := r.commands[id]
	if !ok {
		return StatusCmd("Unknown command: " + id)
	}
	if c.Disabled != nil {
		disabled, reason := c.Disabled(m)
		if disabled {
			if reason == "" {
				reason = "command is disabled"
			}
			return StatusCmd(reason)
		}
	}
	if c.Execute == nil {
		return nil
	}
	return c.Execute(m)
}
