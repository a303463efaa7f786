package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/shared"
	"github.com/desertthunder/plantx/internal/tasks"
)

// ViewState represents the current screen.
type ViewState int

const (
	AuthView ViewState = iota
	DiscoverView
	AddView
	MineView
)

func (v ViewState) String() string {
	switch v {
	case AuthView:
		return "Sign in"
	case DiscoverView:
		return "Discover"
	case AddView:
		return "Add plant"
	case MineView:
		return "My plants"
	default:
		return ""
	}
}

// Tab is the user's selected destination once authenticated.
type Tab int

const (
	DiscoverTab Tab = iota
	AddTab
	MineTab
)

var tabs = []Tab{DiscoverTab, AddTab, MineTab}

// resolveView is the routing rule: no identity means [AuthView], otherwise the selected tab.
func resolveView(identity *models.Identity, tab Tab) ViewState {
	if identity == nil {
		return AuthView
	}
	switch tab {
	case AddTab:
		return AddView
	case MineTab:
		return MineView
	default:
		return DiscoverView
	}
}

// Session is the slice of the session store the TUI reads and mutates.
type Session interface {
	Identity() *models.Identity
	Logout(ctx context.Context) error
}

// Deps are the view-models the TUI renders.
type Deps struct {
	Session Session
	Auth    *tasks.AuthForm
	Feed    *tasks.Feed
	Form    *tasks.ListingForm
	Owned   *tasks.Owned
	Logger  *log.Logger
}

// Model is the main TUI model following Elm architecture.
type Model struct {
	ctx     context.Context
	session Session
	auth    *tasks.AuthForm
	feed    *tasks.Feed
	form    *tasks.ListingForm
	owned   *tasks.Owned
	logger  *log.Logger

	tab        Tab
	authInputs []textinput.Model
	authFocus  int
	formInputs []textinput.Model
	formFocus  int
	sample     int
	feedList   list.Model
	mineList   list.Model
	likers     <-chan tasks.LikersResult
	loading    bool
	width      int
	height     int

	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model.
func NewModel(ctx context.Context, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = shared.NewLogger(io.Discard)
	}

	feedList := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	feedList.Title = DiscoverView.String()
	feedList.SetShowHelp(false)
	feedList.SetFilteringEnabled(false)

	mineList := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	mineList.Title = MineView.String()
	mineList.SetShowHelp(false)
	mineList.SetFilteringEnabled(false)

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		ctx:        ctx,
		session:    deps.Session,
		auth:       deps.Auth,
		feed:       deps.Feed,
		form:       deps.Form,
		owned:      deps.Owned,
		logger:     deps.Logger,
		authInputs: newAuthInputs(),
		formInputs: newFormInputs(),
		sample:     -1,
		feedList:   feedList,
		mineList:   mineList,
		width:      80,
		height:     24,
		spinner:    s,
		help:       help.New(),
		keys:       newKeyMap(),
	}
	m.authInputs[0].Focus()
	m.formInputs[0].Focus()
	return m
}

func newAuthInputs() []textinput.Model {
	inputs := make([]textinput.Model, 3)
	for i, p := range []string{"Username", "Email", "Password"} {
		ti := textinput.New()
		ti.Placeholder = p
		ti.Prompt = fmt.Sprintf("%-10s ", p)
		inputs[i] = ti
	}
	inputs[tasks.AuthPassword].EchoMode = textinput.EchoPassword
	inputs[tasks.AuthPassword].EchoCharacter = '•'
	return inputs
}

func newFormInputs() []textinput.Model {
	inputs := make([]textinput.Model, len(tasks.Fields))
	for i, f := range tasks.Fields {
		ti := textinput.New()
		ti.Placeholder = f.Label()
		ti.Prompt = fmt.Sprintf("%-12s ", f.Label())
		inputs[i] = ti
	}
	inputs[tasks.FieldPrice].Placeholder = "12.50"
	return inputs
}

// current resolves the screen to render from the session and selected tab.
func (m Model) current() ViewState {
	return resolveView(m.session.Identity(), m.tab)
}

// Init returns the initial command: a feed load when a restored session is already authenticated.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.current() != AuthView {
		cmds = append(cmds, m.enter(m.current()))
	}
	return tea.Batch(cmds...)
}

// Update handles all state transitions (Elm architecture).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.feedList.SetSize(msg.Width, max(msg.Height-6, 4))
		m.mineList.SetSize(msg.Width, max(msg.Height-6, 4))
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case Msg:
		return m.handleMsg(msg)
	}
	return m, nil
}

func (m Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgAuthDone:
		if msg.Err() != nil {
			return m, nil
		}
		m.resetAuthInputs()
		m.tab = DiscoverTab
		if m.current() == AuthView {
			return m, nil
		}
		return m, m.enter(DiscoverView)
	case MsgLoggedOut:
		if err := msg.Err(); err != nil {
			m.logger.Error("failed to clear persisted credential", "error", err)
		}
		m.loading = false
		m.tab = DiscoverTab
		m.form.Reset()
		m.resetFormInputs()
		m.feedList.SetItems(nil)
		m.mineList.SetItems(nil)
		m.likers = nil
		return m, nil
	case MsgFeedLoaded, MsgLikeDone:
		// Read and like failures are logged by the feed; the list keeps its last state.
		m.loading = false
		return m, m.refreshFeed()
	case MsgSamplesLoaded:
		return m, nil
	case MsgPlantCreated:
		m.loading = false
		if msg.Err() == nil {
			m.resetFormInputs()
			m.sample = -1
		}
		return m, nil
	case MsgOwnedLoaded:
		m.loading = false
		data := msg.data.(ownedPayload)
		if data.err != nil {
			return m, nil
		}
		m.likers = data.results
		return m, tea.Batch(m.refreshMine(), waitForLikers(data.results))
	case MsgLikersArrived:
		data := msg.data.(likersPayload)
		if !data.ok || data.results != m.likers {
			return m, nil
		}
		return m, tea.Batch(m.refreshMine(), waitForLikers(data.results))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	view := m.current()
	if view != AuthView {
		switch {
		case key.Matches(msg, m.keys.nextTab):
			return m.switchTab(tabs[(int(m.tab)+1)%len(tabs)])
		case key.Matches(msg, m.keys.prevTab):
			return m.switchTab(tabs[(int(m.tab)+len(tabs)-1)%len(tabs)])
		case key.Matches(msg, m.keys.logout):
			return m, m.logout()
		}
	}

	switch view {
	case AuthView:
		return m.handleAuthKeys(msg)
	case DiscoverView:
		return m.handleDiscoverKeys(msg)
	case AddView:
		return m.handleAddKeys(msg)
	case MineView:
		return m.handleMineKeys(msg)
	}
	return m, nil
}

func (m Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.mode):
		m.auth.Toggle()
		m.focusAuth(0)
		return m, nil
	case key.Matches(msg, m.keys.up):
		m.focusAuth(m.prevAuthField())
		return m, nil
	case key.Matches(msg, m.keys.down):
		m.focusAuth(m.nextAuthField())
		return m, nil
	case key.Matches(msg, m.keys.submit):
		return m, m.submitAuth()
	case key.Matches(msg, m.keys.enter):
		if m.authFocus == int(tasks.AuthPassword) {
			return m, m.submitAuth()
		}
		m.focusAuth(m.nextAuthField())
		return m, nil
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	m.auth.Set(tasks.AuthField(m.authFocus), m.authInputs[m.authFocus].Value())
	return m, cmd
}

// nextAuthField skips the email input in login mode.
func (m Model) nextAuthField() int {
	next := (m.authFocus + 1) % len(m.authInputs)
	if next == int(tasks.AuthEmail) && m.auth.Mode() == tasks.LoginMode {
		next++
	}
	return next
}

func (m Model) prevAuthField() int {
	prev := (m.authFocus + len(m.authInputs) - 1) % len(m.authInputs)
	if prev == int(tasks.AuthEmail) && m.auth.Mode() == tasks.LoginMode {
		prev--
	}
	return prev
}

func (m *Model) focusAuth(i int) {
	m.authFocus = i
	for j := range m.authInputs {
		if j == i {
			m.authInputs[j].Focus()
		} else {
			m.authInputs[j].Blur()
		}
	}
}

func (m Model) handleDiscoverKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.like):
		item, ok := m.feedList.SelectedItem().(plantItem)
		if !ok || !item.canLike {
			return m, nil
		}
		return m, m.toggleLike(item.plant.ID)
	case key.Matches(msg, m.keys.refresh):
		return m, m.enter(DiscoverView)
	case msg.String() == "q":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.feedList, cmd = m.feedList.Update(msg)
	return m, cmd
}

func (m Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.up):
		m.focusForm((m.formFocus + len(m.formInputs) - 1) % len(m.formInputs))
		return m, nil
	case key.Matches(msg, m.keys.down):
		m.focusForm((m.formFocus + 1) % len(m.formInputs))
		return m, nil
	case key.Matches(msg, m.keys.sample):
		samples := m.form.Samples()
		if len(samples) == 0 {
			return m, nil
		}
		m.sample = (m.sample + 1) % len(samples)
		if err := m.form.SelectSample(m.sample); err == nil {
			m.formInputs[tasks.FieldPhotoURL].SetValue(samples[m.sample])
		}
		return m, nil
	case key.Matches(msg, m.keys.submit):
		return m, m.submitPlant()
	case key.Matches(msg, m.keys.enter):
		if m.formFocus == len(m.formInputs)-1 {
			return m, m.submitPlant()
		}
		m.focusForm(m.formFocus + 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	m.form.Set(tasks.Fields[m.formFocus], m.formInputs[m.formFocus].Value())
	return m, cmd
}

func (m *Model) focusForm(i int) {
	m.formFocus = i
	for j := range m.formInputs {
		if j == i {
			m.formInputs[j].Focus()
		} else {
			m.formInputs[j].Blur()
		}
	}
}

func (m Model) handleMineKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.refresh):
		return m, m.enter(MineView)
	case msg.String() == "q":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.mineList, cmd = m.mineList.Update(msg)
	return m, cmd
}

// switchTab moves to tab, clearing the creation form when the tab changes.
func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	if tab != m.tab {
		m.form.Reset()
		m.resetFormInputs()
		m.sample = -1
	}
	m.tab = tab
	return m, m.enter(m.current())
}

// enter returns the load command for view.
func (m *Model) enter(view ViewState) tea.Cmd {
	switch view {
	case DiscoverView:
		m.loading = true
		return m.loadFeed()
	case AddView:
		return m.loadSamples()
	case MineView:
		m.loading = true
		return m.loadOwned()
	default:
		return nil
	}
}

func (m *Model) resetAuthInputs() {
	for i := range m.authInputs {
		m.authInputs[i].SetValue("")
	}
	m.focusAuth(0)
}

func (m *Model) resetFormInputs() {
	draft := m.form.Draft()
	values := []string{draft.Name, draft.Description, draft.Price, draft.PhotoURL}
	for i := range m.formInputs {
		m.formInputs[i].SetValue(values[i])
	}
	m.focusForm(0)
}

func (m *Model) refreshFeed() tea.Cmd {
	identity := m.session.Identity()
	plants := m.feed.Plants()
	items := make([]list.Item, len(plants))
	for i, p := range plants {
		items[i] = plantItem{plant: p, canLike: tasks.CanLike(p, identity)}
	}
	return m.feedList.SetItems(items)
}

func (m *Model) refreshMine() tea.Cmd {
	plants := m.owned.Plants()
	items := make([]list.Item, len(plants))
	for i, p := range plants {
		_, loaded := m.owned.Likers(p.ID)
		items[i] = ownedItem{plant: p, loaded: loaded}
	}
	return m.mineList.SetItems(items)
}

// View renders the current UI state.
func (m Model) View() string {
	var b strings.Builder

	view := m.current()
	b.WriteString(m.renderHeader(view))
	b.WriteString("\n\n")

	switch view {
	case AuthView:
		b.WriteString(m.renderAuth())
	case DiscoverView:
		b.WriteString(m.renderList(m.feedList, "No plants yet."))
	case AddView:
		b.WriteString(m.renderAdd())
	case MineView:
		b.WriteString(m.renderList(m.mineList, "You have not listed any plants."))
	}

	b.WriteString("\n" + m.help.ShortHelpView(m.bindings(view)))
	return b.String()
}

func (m Model) renderHeader(view ViewState) string {
	if view == AuthView {
		return styles.title.Render("🌱 plantx")
	}

	parts := make([]string, 0, len(tabs)+1)
	parts = append(parts, styles.title.Render("🌱 plantx"))
	for _, t := range tabs {
		label := resolveView(&models.Identity{}, t).String()
		if t == m.tab {
			parts = append(parts, styles.activeTab.Render(label))
		} else {
			parts = append(parts, styles.tab.Render(label))
		}
	}
	if identity := m.session.Identity(); identity != nil {
		parts = append(parts, styles.help.Render("@"+identity.Username))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderAuth() string {
	var b strings.Builder
	mode := m.auth.Mode()
	if mode == tasks.LoginMode {
		b.WriteString(styles.title.Render("Log in") + "\n")
	} else {
		b.WriteString(styles.title.Render("Create an account") + "\n")
	}

	for i, input := range m.authInputs {
		if i == int(tasks.AuthEmail) && mode == tasks.LoginMode {
			continue
		}
		b.WriteString(input.View() + "\n")
	}

	if msg := m.auth.Message(); msg != "" {
		b.WriteString("\n" + styles.err.Render(msg) + "\n")
	}
	return b.String()
}

func (m Model) renderList(l list.Model, empty string) string {
	if m.loading && len(l.Items()) == 0 {
		return m.spinner.View() + " Loading..."
	}
	if len(l.Items()) == 0 {
		return styles.warn.Render(empty)
	}
	return l.View()
}

func (m Model) renderAdd() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("List a plant") + "\n")
	for _, input := range m.formInputs {
		b.WriteString(input.View() + "\n")
	}

	if samples := m.form.Samples(); len(samples) > 0 {
		b.WriteString("\n" + styles.help.Render("Sample photos (ctrl+n):") + "\n")
		for i, s := range samples {
			marker := "  "
			if i == m.sample {
				marker = "▸ "
			}
			b.WriteString(marker + s + "\n")
		}
	}

	switch {
	case m.form.Success():
		b.WriteString("\n" + styles.ok.Render("✓ Plant listed!") + "\n")
	case m.form.Message() != "":
		b.WriteString("\n" + styles.err.Render(m.form.Message()) + "\n")
	}
	return b.String()
}

func (m Model) bindings(view ViewState) []key.Binding {
	switch view {
	case AuthView:
		return []key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.mode, m.keys.quit}
	case DiscoverView:
		return []key.Binding{m.keys.like, m.keys.refresh, m.keys.nextTab, m.keys.logout, m.keys.quit}
	case AddView:
		return []key.Binding{m.keys.up, m.keys.down, m.keys.sample, m.keys.submit, m.keys.nextTab, m.keys.quit}
	case MineView:
		return []key.Binding{m.keys.refresh, m.keys.nextTab, m.keys.logout, m.keys.quit}
	default:
		return m.keys.ShortHelp()
	}
}

func (m Model) submitAuth() tea.Cmd {
	return func() tea.Msg {
		return errMsg(MsgAuthDone, m.auth.Submit(m.ctx))
	}
}

func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		return errMsg(MsgLoggedOut, m.session.Logout(m.ctx))
	}
}

func (m Model) loadFeed() tea.Cmd {
	return func() tea.Msg {
		return errMsg(MsgFeedLoaded, m.feed.Load(m.ctx))
	}
}

func (m Model) toggleLike(id models.ID) tea.Cmd {
	return func() tea.Msg {
		return errMsg(MsgLikeDone, m.feed.Toggle(m.ctx, id))
	}
}

func (m Model) loadSamples() tea.Cmd {
	return func() tea.Msg {
		return errMsg(MsgSamplesLoaded, m.form.LoadSamples(m.ctx))
	}
}

func (m Model) submitPlant() tea.Cmd {
	return func() tea.Msg {
		plant, err := m.form.Submit(m.ctx)
		return plantCreatedMsg(plant, err)
	}
}

func (m Model) loadOwned() tea.Cmd {
	return func() tea.Msg {
		plants, results, err := m.owned.Load(m.ctx)
		return ownedLoadedMsg(plants, results, err)
	}
}

// waitForLikers listens for the next likers result on the fan-out channel.
func waitForLikers(results <-chan tasks.LikersResult) tea.Cmd {
	if results == nil {
		return nil
	}
	return func() tea.Msg {
		res, ok := <-results
		return likersArrivedMsg(res, results, ok)
	}
}

// Run starts the TUI application.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(NewModel(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
