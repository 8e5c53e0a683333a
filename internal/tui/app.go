package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/vs/internal/model"
	"github.com/nikbrunner/vs/internal/scroller"
	"github.com/nikbrunner/vs/internal/search"
	"github.com/nikbrunner/vs/internal/tui/layout"
)

// wheelLines is how far one mouse wheel step scrolls.
const wheelLines = 3

// mountMsg asks the app to mount the controller on its viewport.
type mountMsg struct{}

// windowMsg carries the result of an asynchronous window fetch.
type windowMsg struct {
	req  scroller.Request
	data []model.Item
	err  error
}

// App is the main bubbletea model for the virtual list.
type App struct {
	controller   *scroller.Controller[model.Item]
	store        *model.Store // optional, enables fuzzy jumps
	viewport     *Viewport
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	row          RowFunc
	copyText     func(string) error

	// Terminal fitting
	autoAmount bool
	tolerance  int // configured tolerance, capped per fit

	mode Mode
	jump JumpState

	// In-flight window fetch
	cancelFetch context.CancelFunc
	fetchSeq    uint64

	// For gg command
	lastKeyWasG bool

	// Message line
	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Controller   *scroller.Controller[model.Item]
	Store        *model.Store         // optional, enables fuzzy jumps
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Row          RowFunc              // optional, uses DefaultRow if nil
	Clipboard    func(string) error   // optional, uses the system clipboard if nil
	AutoAmount   bool                 // fit Amount to the terminal height
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	row := params.Row
	if row == nil {
		row = DefaultRow
	}

	copyText := params.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	g := params.Controller.Geometry()
	viewport := NewViewport(g.ViewportHeight, g.TotalHeight)
	viewport.SetOnChange(func(offset int) {
		log.Printf("scroll offset %d", offset)
	})

	return App{
		controller:   params.Controller,
		store:        params.Store,
		viewport:     viewport,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		row:          row,
		copyText:     copyText,
		autoAmount:   params.AutoAmount,
		tolerance:    params.Controller.Settings().Tolerance,
		mode:         ModeNormal,
		jump:         NewJumpState(layoutCfg),
		width:        80,
		height:       24,
	}
}

// WithDimensions returns a copy of the app sized to width x height, as if a
// window size message had arrived.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Controller returns the scroll controller.
func (a App) Controller() *scroller.Controller[model.Item] {
	return a.controller
}

// Offset returns the viewport offset.
func (a App) Offset() int {
	return a.viewport.Offset()
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Message returns the message line text.
func (a App) Message() string {
	return a.messageText
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return func() tea.Msg { return mountMsg{} }
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountMsg:
		if err := a.controller.Mount(context.Background(), a.viewport); err != nil {
			a.setMessage(MessageError, err.Error())
			log.Printf("mount: %v", err)
		} else {
			log.Printf("mounted at offset %d", a.viewport.Offset())
		}
		cmd := a.syncScroll()
		return a, cmd

	case windowMsg:
		return a.handleWindow(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		cmd := a.fitToTerminal()
		return a, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.viewport.ScrollBy(-wheelLines)
		case tea.MouseButtonWheelDown:
			a.viewport.ScrollBy(wheelLines)
		}
		cmd := a.syncScroll()
		return a, cmd

	case tea.KeyMsg:
		if a.mode == ModeJump {
			return a.updateJump(msg)
		}
		return a.updateNormal(msg)
	}

	if a.mode == ModeJump {
		var cmd tea.Cmd
		a.jump.Input, cmd = a.jump.Input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// updateNormal handles keys while scrolling.
func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG || msg.String() == "home" {
			a.lastKeyWasG = false
			a.viewport.ScrollToStart()
			cmd := a.syncScroll()
			return a, cmd
		}
		// First g - wait for second
		a.lastKeyWasG = true
		return a, nil
	}

	// Reset g flag for any other key
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.stopFetch()
		a.controller.Unmount()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.viewport.ScrollBy(1)

	case key.Matches(msg, a.keys.Up):
		a.viewport.ScrollBy(-1)

	case key.Matches(msg, a.keys.HalfPageDown):
		a.viewport.ScrollBy(max(a.viewport.ViewHeight()/2, 1))

	case key.Matches(msg, a.keys.HalfPageUp):
		a.viewport.ScrollBy(-max(a.viewport.ViewHeight()/2, 1))

	case key.Matches(msg, a.keys.PageDown):
		a.viewport.PageBy(1)

	case key.Matches(msg, a.keys.PageUp):
		a.viewport.PageBy(-1)

	case key.Matches(msg, a.keys.Bottom):
		a.viewport.ScrollToEnd()

	case key.Matches(msg, a.keys.Yank):
		a.yankTopRow()

	case key.Matches(msg, a.keys.Jump):
		a.mode = ModeJump
		a.jump.Reset()
		cmd := a.jump.Input.Focus()
		return a, cmd
	}

	cmd := a.syncScroll()
	return a, cmd
}

// updateJump handles keys while the jump prompt is open.
func (a App) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		a.mode = ModeNormal
		a.jump.Reset()
		return a, nil

	case tea.KeyEnter:
		query := strings.TrimSpace(a.jump.Input.Value())
		a.mode = ModeNormal
		a.jump.Reset()
		if query == "" {
			return a, nil
		}
		a.jumpTo(query)
		cmd := a.syncScroll()
		return a, cmd
	}

	var cmd tea.Cmd
	a.jump.Input, cmd = a.jump.Input.Update(msg)
	return a, cmd
}

// jumpTo scrolls the row for query to the top of the viewport. A number
// inside the list range is taken as an index, anything else as fuzzy text.
func (a *App) jumpTo(query string) {
	s := a.controller.Settings()

	index, err := strconv.Atoi(query)
	if err != nil || index < s.MinIndex || index > s.MaxIndex {
		var ok bool
		if a.store != nil {
			index, ok = search.BestIndex(a.store, query)
		}
		if !ok {
			a.setMessage(MessageWarning, fmt.Sprintf("no match for %q", query))
			return
		}
	}

	a.viewport.SetOffset((index - s.MinIndex) * s.ItemHeight)
	if a.store != nil {
		if it := a.store.GetItemByIndex(index); it != nil {
			a.setMessage(MessageInfo, fmt.Sprintf("jumped to %d: %s", index, it.Text))
			return
		}
	}
	a.setMessage(MessageInfo, fmt.Sprintf("jumped to %d", index))
}

// yankTopRow copies the text of the first visible row.
func (a *App) yankTopRow() {
	index, item, ok := a.topItem()
	if !ok {
		a.setMessage(MessageWarning, "nothing loaded at the top of the view")
		return
	}
	if err := a.copyText(item.Text); err != nil {
		a.setMessage(MessageError, fmt.Sprintf("yank: %v", err))
		return
	}
	a.setMessage(MessageSuccess, fmt.Sprintf("yanked item %d", index))
}

// topItem returns the loaded item drawn on the first visible line.
func (a App) topItem() (int, model.Item, bool) {
	s := a.controller.Settings()
	w := a.controller.Window()
	index, ok := w.IndexAt(a.viewport.Offset(), s.ItemHeight, s.MinIndex)
	if !ok {
		return 0, model.Item{}, false
	}
	row := index - max(w.Index, s.MinIndex)
	return index, w.Data[row], true
}

// fitToTerminal resizes Amount to the body height when AutoAmount is on.
func (a *App) fitToTerminal() tea.Cmd {
	if !a.autoAmount {
		return nil
	}
	current := a.controller.Settings()

	next := current
	body := layout.CalculateBodyHeight(a.height, a.layoutConfig.Viewport)
	next.Amount = min(layout.FitAmount(body, current.ItemHeight), current.Count())
	next.Tolerance = min(a.tolerance, max(next.MaxTolerance(), 0))
	if next == current {
		return nil
	}

	index, _, anchored := a.topItem()
	if anchored {
		next.StartIndex = index
	}
	if !a.resetSettings(next) {
		return nil
	}
	// The reset scrolls to the initial position, which sits below the top
	// row when it is within Tolerance of MinIndex.
	if anchored {
		a.viewport.SetOffset((index - next.MinIndex) * next.ItemHeight)
	}
	return a.syncScroll()
}

// resetSettings resizes the viewport and hands the settings to the
// controller, which moves the viewport back to the initial position.
// It reports whether the settings were applied.
func (a *App) resetSettings(s scroller.Settings) bool {
	initial, err := scroller.DeriveInitialState(s)
	if err != nil {
		a.setMessage(MessageError, err.Error())
		log.Printf("settings rejected: %v", err)
		return false
	}

	a.stopFetch()
	a.viewport.SetViewHeight(initial.Geometry.ViewportHeight)
	a.viewport.SetContentHeight(initial.Geometry.TotalHeight)
	if err := a.controller.SetSettings(context.Background(), s); err != nil {
		a.setMessage(MessageError, err.Error())
		log.Printf("settings: %v", err)
		return false
	}
	log.Printf("settings %+v", s)
	return true
}

// syncScroll turns an unreported viewport move into a window fetch.
func (a *App) syncScroll() tea.Cmd {
	offset, ok := a.viewport.TakeChange()
	if !ok || !a.controller.Mounted() {
		return nil
	}
	return a.fetchCmd(offset)
}

// fetchCmd plans a window for offset and fetches it off the update loop.
// Starting a fetch cancels the previous one.
func (a *App) fetchCmd(offset int) tea.Cmd {
	a.stopFetch()
	ctx, cancel := context.WithCancel(context.Background())
	req := a.controller.Plan(offset)
	a.cancelFetch = cancel
	a.fetchSeq = req.Seq

	source := a.controller.Source()
	return func() tea.Msg {
		data, err := source.Fetch(ctx, req.Index, req.Count)
		return windowMsg{req: req, data: data, err: err}
	}
}

func (a *App) stopFetch() {
	if a.cancelFetch != nil {
		a.cancelFetch()
		a.cancelFetch = nil
	}
}

// handleWindow commits a fetched window. Stale and rejected windows leave
// the current one in place.
func (a App) handleWindow(msg windowMsg) (tea.Model, tea.Cmd) {
	if msg.req.Seq == a.fetchSeq {
		a.stopFetch()
	}

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return a, nil
		}
		err := fmt.Errorf("fetch window at %d: %w", msg.req.Index, msg.err)
		a.setMessage(MessageError, err.Error())
		log.Print(err)
		return a, nil
	}

	committed, err := a.controller.Commit(msg.req, msg.data)
	if err != nil {
		a.setMessage(MessageError, err.Error())
		log.Printf("rejected batch: %v", err)
		return a, nil
	}
	if !committed {
		log.Printf("dropped stale window for offset %d", msg.req.ScrollTop)
		return a, nil
	}
	if a.messageType == MessageError {
		a.clearMessage()
	}
	return a, nil
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageType = MessageInfo
	a.messageText = ""
}
