package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mirrorgrid/internal/core"
)

// Game is what the front end drives. Implementations hold no Bubble Tea
// state; the model handles input mapping, timing and display.
type Game interface {
	// Reset starts or restarts the game.
	Reset(cfg core.RuntimeConfig)

	// Step processes one UI frame of input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst. dst is cleared by the game.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for a running game.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	quitting   bool
	back       bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, screenHeight(cfg.ScreenH, false)),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
	}
}

// screenHeight leaves room for the help footer below the game screen.
func screenHeight(termH int, fullHelp bool) int {
	footer := 1
	if fullHelp {
		footer = 3
	}
	return max(termH-footer-1, 0)
}

// Init starts the frame loop. The game is reset before the program starts.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(msg.Width, screenHeight(msg.Height, m.help.ShowAll))
		return m, nil

	case FrameMsg:
		return m.handleFrame()
	}

	return m, nil
}

// handleKey records actions for the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, screenHeight(m.config.ScreenH, m.help.ShowAll))
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.back = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleFrame steps the game once and schedules the next frame.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	return m, frameCmd(m.config.TickRate)
}

// View renders the game screen and the help footer.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Result reports how a game session ended.
type Result struct {
	Back  bool // User asked for the level menu
	State core.GameState
}

// Run resets the game and runs it until the user quits or goes back.
func Run(game Game, cfg core.RuntimeConfig) (Result, error) {
	game.Reset(cfg)
	model := NewModel(game, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return Result{State: game.State()}, err
	}

	res := Result{State: game.State()}
	if m, ok := final.(Model); ok {
		res.Back = m.back
	}
	return res, nil
}
