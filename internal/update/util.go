package update

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// updateInput appends typed runes directly so input works whether or not
// the field currently holds focus; other keys go to the bubble.
func updateInput(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	switch msg.Type {
	case tea.KeyRunes:
		in.SetValue(in.Value() + string(msg.Runes))
		in.CursorEnd()
		return in
	case tea.KeySpace:
		in.SetValue(in.Value() + " ")
		in.CursorEnd()
		return in
	}
	in, _ = in.Update(msg)
	return in
}

func goalPercent(spent, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	p := float64(spent) / float64(goal)
	if p > 1 {
		p = 1
	}
	return p
}
