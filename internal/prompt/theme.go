package prompt

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme styles the prompt. Every function must be pure.
type Theme struct {
	Prefix  func(status Status) string
	Message func(text string, status Status) string
	Answer  func(text string) string
	Error   func(text string) string
}

var (
	colorPrimary = lipgloss.Color("6")
	colorSuccess = lipgloss.Color("2")
	colorError   = lipgloss.Color("1")
)

// DefaultTheme renders a cyan "?" while idle, a green check once accepted,
// bold labels, cyan answers and red errors.
func DefaultTheme() Theme {
	pending := lipgloss.NewStyle().Foreground(colorPrimary)
	done := lipgloss.NewStyle().Foreground(colorSuccess)
	message := lipgloss.NewStyle().Bold(true)
	answer := lipgloss.NewStyle().Foreground(colorPrimary)
	errStyle := lipgloss.NewStyle().Foreground(colorError)

	return Theme{
		Prefix: func(status Status) string {
			if status == StatusAccepted {
				return done.Render("✔")
			}
			return pending.Render("?")
		},
		Message: func(text string, _ Status) string {
			return message.Render(text)
		},
		Answer: func(text string) string {
			return answer.Render(text)
		},
		Error: func(text string) string {
			return errStyle.Render("> " + text)
		},
	}
}

// PlainTheme renders without any styling.
func PlainTheme() Theme {
	return Theme{
		Prefix: func(status Status) string {
			if status == StatusAccepted {
				return "✔"
			}
			return "?"
		},
		Message: func(text string, _ Status) string { return text },
		Answer:  func(text string) string { return text },
		Error:   func(text string) string { return "> " + text },
	}
}

func (t Theme) withDefaults() Theme {
	def := DefaultTheme()
	if t.Prefix == nil {
		t.Prefix = def.Prefix
	}
	if t.Message == nil {
		t.Message = def.Message
	}
	if t.Answer == nil {
		t.Answer = def.Answer
	}
	if t.Error == nil {
		t.Error = def.Error
	}
	return t
}
