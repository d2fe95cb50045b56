package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldkit/isovt/vtclient"
)

const maxLogEntries = 200

// model is vtmonitor's tea.Model: a single always-redrawing dashboard over
// one live vtclient.Client, following status/model.go's Init/Update/View
// split rather than the fuller list/textinput-driven control model the pack
// also shows — this dashboard has nothing to type into, only state to watch.
type model struct {
	client *vtclient.Client

	log    []string
	width  int
	height int
}

func newModel(client *vtclient.Client) *model {
	return &model{client: client}
}

// wireEvents subscribes to the four dispatcher lists and forwards every
// event into the running program as a logLineMsg. Subscriptions must be
// wired against a live *tea.Program rather than inside Init, since the
// dispatcher calls its handlers from vtclient/driver.go's handleReceive on
// the network manager's receive goroutine, not from bubbletea's Update loop;
// Program.Send is the one thread-safe crossing point between the two.
func (m *model) wireEvents(p *tea.Program) []func() {
	return []func(){
		m.client.SubscribeSoftKey(func(_ *vtclient.Client, e *vtclient.SoftKeyEvent) {
			p.Send(logLineMsg(fmt.Sprintf("softkey  obj=%d mask=%d key=%d %s", e.ObjectID, e.MaskID, e.KeyNumber, e.KeyCode)))
		}),
		m.client.SubscribeButton(func(_ *vtclient.Client, e *vtclient.ButtonEvent) {
			p.Send(logLineMsg(fmt.Sprintf("button   obj=%d parent=%d key=%d %s", e.ObjectID, e.ParentObjectID, e.KeyNumber, e.KeyCode)))
		}),
		m.client.SubscribePointing(func(_ *vtclient.Client, e *vtclient.PointingEvent) {
			p.Send(logLineMsg(fmt.Sprintf("pointing x=%d y=%d %s", e.X, e.Y, e.TouchState)))
		}),
		m.client.SubscribeSelectInput(func(_ *vtclient.Client, e *vtclient.SelectInputObjectEvent) {
			p.Send(logLineMsg(fmt.Sprintf("select   obj=%d selected=%v open=%v", e.ObjectID, e.Selected, e.OpenForInput)))
		}),
	}
}

type tickMsg time.Time

type logLineMsg string

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Init() tea.Cmd {
	return tickCmd()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case logLineMsg:
		m.appendLog(string(msg))

	case tickMsg:
		return m, tickCmd()
	}
	return m, nil
}

func (m *model) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > maxLogEntries {
		m.log = m.log[len(m.log)-maxLogEntries:]
	}
}

func (m *model) View() string {
	state := m.client.State()
	caps := m.client.Capabilities()
	stats := m.client.Stats()

	statePanel := styles.panel.Render(
		styles.title.Render("connection") + "\n" +
			styles.key.Render("state:   ") + styles.value.Render(state.String()) + "\n" +
			styles.key.Render("sent:    ") + styles.value.Render(fmt.Sprintf("%d frames", stats.FramesSent)) + "\n" +
			styles.key.Render("recv:    ") + styles.value.Render(fmt.Sprintf("%d frames", stats.FramesReceived)) + "\n" +
			styles.key.Render("upload:  ") + styles.value.Render(fmt.Sprintf("%d bytes", stats.BytesUploaded)) + "\n" +
			styles.key.Render("retries: ") + styles.value.Render(fmt.Sprintf("%d", stats.RetriesDrained)),
	)

	capsPanel := styles.panel.Render(
		styles.title.Render("capabilities") + "\n" +
			styles.key.Render("screen:    ") + styles.value.Render(fmt.Sprintf("%dx%d", caps.ScreenWidthPixels, caps.ScreenHeightPixels)) + "\n" +
			styles.key.Render("softkeys:  ") + styles.value.Render(fmt.Sprintf("%d virtual / %d physical", caps.VirtualSoftKeyCount, caps.PhysicalSoftKeyCount)) + "\n" +
			styles.key.Render("vt version:") + styles.value.Render(fmt.Sprintf("%d", caps.ConnectedVTVersionRaw)),
	)

	logPanel := styles.panel.Render(
		styles.title.Render("events") + "\n" + strings.Join(m.log, "\n"),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, statePanel, capsPanel) + "\n" + logPanel + "\n" + styles.help.Render("q to quit")
}
