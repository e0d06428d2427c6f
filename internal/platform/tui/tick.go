// Package tui provides the Bubble Tea front end for mirrorgrid.
// It runs the frame loop, maps keys to actions and draws the game screen.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per UI frame.
type FrameMsg time.Time

// frameCmd returns a command that sends a FrameMsg after one frame interval.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
