package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const toastLifetime = 5 * time.Second

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
	toastNetwork
)

// toast is the single transient notification. A newer toast replaces the
// current one wholesale; the expiry tick of a replaced toast is ignored via
// the sequence number.
type toast struct {
	kind  toastKind
	title string
	desc  string
}

// showToast installs a toast and schedules its expiry.
func (a *App) showToast(kind toastKind, title, desc string) tea.Cmd {
	a.toast = &toast{kind: kind, title: title, desc: desc}
	a.toastSeq++
	seq := a.toastSeq
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (a *App) viewToast() string {
	if a.toast == nil {
		return ""
	}
	style := toastErrorStyle
	mark := "✖ "
	if a.toast.kind == toastSuccess {
		style = toastSuccessStyle
		mark = "✔ "
	}
	body := mark + a.toast.title
	if a.toast.desc != "" {
		body += "\n" + mutedStyle.Render(a.toast.desc)
	}
	return style.Render(body)
}
