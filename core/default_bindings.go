package core

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: []string{"tab:feed", "tab:drafts", "tab:profile"}},
		{Keys: []string{"ctrl+k"}, Action: "open-command-palette", Description: "commands", Scopes: []string{"*"}},
		{Keys: []string{"1"}, Action: "switch-tab-1", Description: "feed", Scopes: []string{"*"}},
		{Keys: []string{"2"}, Action: "switch-tab-2", Description: "drafts", Scopes: []string{"*"}},
		{Keys: []string{"3"}, Action: "switch-tab-3", Description: "profile", Scopes: []string{"*"}},
		{Keys: []string{"j", "down"}, Action: "row-down", Description: "next", Scopes: []string{"tab:feed", "tab:drafts"}},
		{Keys: []string{"k", "up"}, Action: "row-up", Description: "prev", Scopes: []string{"tab:feed", "tab:drafts"}},
		{Keys: []string{"enter"}, Action: "open", Description: "open", Scopes: []string{"tab:feed", "tab:drafts"}},
		{Keys: []string{"n"}, Action: "compose", Description: "new post", Scopes: []string{"tab:feed"}},
		{Keys: []string{"r"}, Action: "reload", Description: "reload", Scopes: []string{"tab:feed"}},
		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{"screen:detail", "screen:composer", "screen:command", "screen:confirm", "screen:profile-edit", "screen:password"}},
		{Keys: []string{"l"}, Action: "like", Description: "like", Scopes: []string{"screen:detail"}},
		{Keys: []string{"c"}, Action: "comment", Description: "comment", Scopes: []string{"screen:detail"}},
		{Keys: []string{"space"}, Action: "grab", Description: "grab image", Scopes: []string{"screen:composer"}},
	}
}
