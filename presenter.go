package main

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"github.com/afroash/rdma-viz/choreo"
	"github.com/afroash/rdma-viz/config"
	"github.com/afroash/rdma-viz/playback"
	"github.com/afroash/rdma-viz/timeline"
	"github.com/afroash/rdma-viz/trace"
	"github.com/afroash/rdma-viz/ui"
)

// Presenter is the live player window
type Presenter struct {
	app           fyne.App
	window        fyne.Window
	cfg           config.Config
	traceWriter   trace.TraceWriter
	view          *ui.SceneView
	meter         *ui.MeterPanel
	phaseLabel    *widget.Label
	progress      *widget.ProgressBar
	playButton    *widget.Button
	stopButton    *widget.Button
	restartButton *widget.Button
	player        *playback.Player
	playerMutex   sync.RWMutex
}

// NewPresenter creates the window. tw may be nil.
func NewPresenter(cfg config.Config, tw trace.TraceWriter) *Presenter {
	return newPresenter(app.New(), cfg, tw)
}

func newPresenter(myApp fyne.App, cfg config.Config, tw trace.TraceWriter) *Presenter {
	window := myApp.NewWindow(choreo.TitleText)
	window.Resize(fyne.NewSize(1280, 820))

	p := &Presenter{
		app:         myApp,
		window:      window,
		cfg:         cfg,
		traceWriter: tw,
	}

	p.setupUI()
	p.setupMenu()
	p.setupCloseHandler()
	return p
}

func (p *Presenter) setupUI() {
	p.playButton = widget.NewButton("Play", p.onPlay)
	p.stopButton = widget.NewButton("Stop", p.onStop)
	p.restartButton = widget.NewButton("Restart", p.onRestart)
	p.stopButton.Disable()
	p.restartButton.Disable()

	p.phaseLabel = widget.NewLabel(choreo.PhaseInit.String())
	p.phaseLabel.TextStyle = fyne.TextStyle{Bold: true}

	p.progress = widget.NewProgressBar()

	topBar := container.NewBorder(nil, nil,
		p.phaseLabel,
		container.NewHBox(p.playButton, p.stopButton, p.restartButton),
		p.progress)

	p.view = ui.NewSceneView()
	p.meter = ui.NewMeterPanel()

	content := container.NewBorder(topBar, p.meter.Content(), nil, nil, p.view)
	p.window.SetContent(content)
}

// setupMenu creates the application menu with File/Quit option
func (p *Presenter) setupMenu() {
	quitItem := fyne.NewMenuItem("Quit", func() {
		p.onQuit()
	})

	fileMenu := fyne.NewMenu("File", quitItem)
	mainMenu := fyne.NewMainMenu(fileMenu)
	p.window.SetMainMenu(mainMenu)
}

// setupCloseHandler handles window close events
func (p *Presenter) setupCloseHandler() {
	p.window.SetCloseIntercept(func() {
		p.onQuit()
	})
}

// onQuit stops playback and closes the application
func (p *Presenter) onQuit() {
	p.stopPlayer()
	p.app.Quit()
}

func (p *Presenter) stopPlayer() {
	p.playerMutex.Lock()
	player := p.player
	p.player = nil
	p.playerMutex.Unlock()

	if player != nil {
		player.Stop()
	}
}

func (p *Presenter) onPlay() {
	p.playButton.Disable()
	p.stopButton.Enable()
	p.restartButton.Enable()
	p.meter.Reset()

	player := playback.NewPlayer(p.cfg.FPS, p.cfg.Speed)
	player.AcceptHook(timeline.NewLogHook(nil))
	if p.traceWriter != nil {
		player.AcceptHook(trace.NewRecorder("play", p.traceWriter))
	}

	if err := player.Start(); err != nil {
		log.WithError(err).Error("starting playback")
		dialog.ShowError(err, p.window)
		p.resetButtons()
		return
	}

	p.playerMutex.Lock()
	p.player = player
	p.playerMutex.Unlock()

	go p.handleUpdates(player)
}

func (p *Presenter) onStop() {
	p.stopPlayer()
	p.resetButtons()
}

func (p *Presenter) onRestart() {
	p.stopPlayer()
	p.onPlay()
}

func (p *Presenter) resetButtons() {
	p.playButton.Enable()
	p.stopButton.Disable()
}

// handleUpdates copies frames from the player into the widgets. It runs in a
// background goroutine and hands every change to the UI goroutine.
func (p *Presenter) handleUpdates(player *playback.Player) {
	for update := range player.Updates() {
		update := update // per-iteration copy; go.mod targets go 1.21
		fyne.Do(func() {
			p.apply(player, update)
		})
	}

	if err := player.Err(); err != nil {
		fyne.Do(func() {
			if !p.isCurrent(player) {
				return
			}
			dialog.ShowError(err, p.window)
			p.resetButtons()
		})
	}
}

// isCurrent reports whether player is the one the window is showing.
// Updates still buffered from a stopped player are dropped.
func (p *Presenter) isCurrent(player *playback.Player) bool {
	p.playerMutex.RLock()
	defer p.playerMutex.RUnlock()
	return p.player == player
}

// apply shows one update. It must run on the UI goroutine.
func (p *Presenter) apply(player *playback.Player, update playback.FrameUpdate) bool {
	if !p.isCurrent(player) {
		return false
	}

	p.view.SetFrame(update.Frame)
	p.phaseLabel.SetText(update.Frame.Phase)
	p.progress.SetValue(update.Progress)
	if update.MeterLive {
		p.meter.Set(update.Meter)
	}
	if update.Done {
		p.resetButtons()
	}
	return true
}

// Run shows the window and blocks until it is closed
func (p *Presenter) Run() {
	p.window.ShowAndRun()
}
