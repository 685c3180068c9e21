package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Save     key.Binding
	Start    key.Binding
	Stop     key.Binding
	Toggle   key.Binding
	Preset   key.Binding
	Mode     key.Binding
	Notes    key.Binding
	Clear    key.Binding
	Custom   key.Binding
	Notify   key.Binding
	PrevItem key.Binding
	NextItem key.Binding
	Export   key.Binding
	Tab1     key.Binding
	Tab2     key.Binding
	Tab3     key.Binding
	Tab4     key.Binding
	Tab5     key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Help     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Quit     key.Binding
}

// bind builds a binding whose help shows label.
func bind(label, desc string, ks ...string) key.Binding {
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(label, desc))
}

var keys = keyMap{
	Save:     bind("s", "save check-in", "s"),
	Start:    bind("s", "start", "s"),
	Stop:     bind("x", "stop", "x"),
	Toggle:   bind("space", "toggle mood", " "),
	Preset:   bind("p", "preset", "p"),
	Mode:     bind("m", "mode", "m"),
	Notes:    bind("n", "notes", "n"),
	Clear:    bind("r", "reset", "r"),
	Custom:   bind("c", "customize", "c"),
	Notify:   bind("n", "enable notifications", "n"),
	PrevItem: bind("[", "previous", "["),
	NextItem: bind("]", "next", "]"),
	Export:   bind("e", "export", "e"),
	Tab1:     bind("1", "home", "1"),
	Tab2:     bind("2", "relief", "2"),
	Tab3:     bind("3", "insights", "3"),
	Tab4:     bind("4", "journal", "4"),
	Tab5:     bind("5", "profile", "5"),
	Tab:      bind("tab", "next view", "tab"),
	ShiftTab: bind("shift+tab", "previous view", "shift+tab"),
	Help:     bind("?", "help", "?"),
	Enter:    bind("enter", "select", "enter"),
	Back:     bind("esc", "back", "esc"),
	Up:       bind("↑/k", "up", "up", "k"),
	Down:     bind("↓/j", "down", "down", "j"),
	Left:     bind("←/h", "left", "left", "h"),
	Right:    bind("→/l", "right", "right", "l"),
	Quit:     bind("q", "quit", "q", "ctrl+c"),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Save, k.Start, k.Stop, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Preset, k.Mode, k.Toggle, k.Notes, k.Save},
		{k.Start, k.Stop, k.Custom, k.PrevItem, k.NextItem},
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5, k.Export},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
