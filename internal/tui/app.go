package tui

import (
	"context"
	"fmt"
	"strings"

	"sheet-cli/internal/dnd"
	"sheet-cli/internal/model"
	"sheet-cli/internal/source"
	"sheet-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Store *store.TreeStore
	// Fetcher loads the initial sheet in the background. Nil means Store is already loaded.
	Fetcher source.Fetcher
	// Saver receives the full snapshot on "s".
	Saver source.Saver
	// Workspace, when set, is written after every edit.
	Workspace source.Saver
	Log       *logrus.Logger
	Glyphs    string
}

type mode int

const (
	modeBrowse mode = iota
	modeInput
	modeConfirm
)

type inputPurpose int

const (
	inputAddTopic inputPurpose = iota
	inputAddSubTopic
	inputAddQuestion
	inputEditTitle
)

type loadedMsg struct{ tree model.Tree }

type savedMsg struct{ err error }

type persistedMsg struct{ err error }

type appModel struct {
	store     *store.TreeStore
	resolver  *dnd.Resolver
	saver     source.Saver
	workspace source.Saver
	fetcher   source.Fetcher
	log       *logrus.Logger

	tree      model.Tree
	rows      []sheetRow
	cursor    int
	collapsed map[string]bool

	width  int
	height int

	mode    mode
	purpose inputPurpose
	// target is the row an input or confirmation applies to.
	target sheetRow

	loading bool
	saving  bool
	// writing is set while a workspace write is in flight; dirty records edits made
	// during it, which are flushed from the latest snapshot once it lands.
	writing bool
	dirty   bool
	status  string
	isError bool

	spinner  spinner.Model
	progress progress.Model
	input    textinput.Model
	help     help.Model
	keys     keyMap
}

func newAppModel(opts Options) appModel {
	ts := opts.Store
	if ts == nil {
		ts = store.NewTreeStore(store.Options{Logger: opts.Log})
	}
	saver := opts.Saver
	if saver == nil {
		saver = source.LogSaver{Log: opts.Log}
	}
	applyGlyphPreference(opts.Glyphs)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	pr := progress.New(
		progress.WithSolidFill(pickColor(colorProgressFull)),
		progress.WithoutPercentage(),
		progress.WithWidth(24),
	)
	pr.EmptyColor = pickColor(colorProgressEmpty)

	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 200

	m := appModel{
		store:     ts,
		resolver:  dnd.NewResolver(ts),
		saver:     saver,
		workspace: opts.Workspace,
		fetcher:   opts.Fetcher,
		log:       opts.Log,
		collapsed: map[string]bool{},
		loading:   opts.Fetcher != nil,
		spinner:   sp,
		progress:  pr,
		input:     in,
		help:      help.New(),
		keys:      defaultKeyMap(),
	}
	m.refresh(ts.Snapshot())
	return m
}

func pickColor(c lipgloss.AdaptiveColor) string {
	if lipgloss.HasDarkBackground() {
		return c.Dark
	}
	return c.Light
}

func (m appModel) Init() tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	f, lg := m.fetcher, m.log
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return loadedMsg{tree: source.LoadOrEmpty(context.Background(), f, lg)}
	})
}

// refresh replaces the rendered tree and keeps the cursor on the same entity when it
// still exists.
func (m *appModel) refresh(t model.Tree) {
	var keep *sheetRow
	if r, ok := m.selected(); ok {
		keep = &r
	}
	m.tree = t
	m.rows = flattenSheet(t, m.collapsed)
	if keep != nil {
		for i, r := range m.rows {
			if r.sameItem(*keep) {
				m.cursor = i
				return
			}
		}
	}
	m.clampCursor()
}

func (m *appModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m appModel) selected() (sheetRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return sheetRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m *appModel) setStatus(msg string) {
	m.status = msg
	m.isError = false
}

func (m *appModel) setError(err error) {
	m.status = err.Error()
	m.isError = true
}

// edited refreshes from t and schedules a workspace write. At most one write is in
// flight at a time.
func (m *appModel) edited(t model.Tree) tea.Cmd {
	m.refresh(t)
	if m.workspace == nil {
		return nil
	}
	if m.writing {
		m.dirty = true
		return nil
	}
	return m.persist(t)
}

func (m *appModel) persist(t model.Tree) tea.Cmd {
	m.writing = true
	m.dirty = false
	ws := m.workspace
	return func() tea.Msg {
		return persistedMsg{err: ws.Save(context.Background(), t)}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.loading = false
		t := m.store.LoadData(msg.tree)
		if len(t) == 0 {
			m.setStatus("sheet is empty; press a to add a topic")
		} else {
			m.setStatus(fmt.Sprintf("loaded %d questions", t.QuestionCount()))
		}
		cmd := m.edited(t)
		return m, cmd

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.setError(fmt.Errorf("save failed: %w", msg.err))
		} else {
			m.setStatus("saved")
		}
		return m, nil

	case persistedMsg:
		m.writing = false
		if msg.err != nil {
			m.setError(fmt.Errorf("workspace write failed: %w", msg.err))
		}
		if m.dirty {
			cmd := m.persist(m.store.Snapshot())
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}

	row, ok := m.selected()
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveDown):
		if !ok {
			return m, nil
		}
		cmd := m.move(row, row.index+1)
		return m, cmd

	case key.Matches(msg, m.keys.MoveUp):
		if !ok {
			return m, nil
		}
		cmd := m.move(row, row.index-1)
		return m, cmd

	case key.Matches(msg, m.keys.Collapse):
		if !ok || row.kind == rowQuestion {
			return m, nil
		}
		k := topicKey(row.topicID)
		if row.kind == rowSubTopic {
			k = subTopicKey(row.topicID, row.subTopicID)
		}
		m.collapsed[k] = !m.collapsed[k]
		m.refresh(m.tree)
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if !ok || row.kind != rowQuestion {
			return m, nil
		}
		cmd := m.edited(m.store.ToggleSolved(row.topicID, row.subTopicID, row.id))
		return m, cmd

	case key.Matches(msg, m.keys.Difficulty):
		if !ok || row.kind != rowQuestion {
			return m, nil
		}
		next := nextDifficulty(row.question.Difficulty)
		t, err := m.store.UpdateQuestion(row.topicID, row.subTopicID, row.id, model.QuestionPatch{Difficulty: &next})
		if err != nil {
			m.setError(err)
			return m, nil
		}
		cmd := m.edited(t)
		return m, cmd

	case key.Matches(msg, m.keys.AddTopic):
		cmd := m.startInput(inputAddTopic, row, "New topic", "")
		return m, cmd

	case key.Matches(msg, m.keys.AddSubTopic):
		if !ok {
			m.setError(fmt.Errorf("select a topic first"))
			return m, nil
		}
		cmd := m.startInput(inputAddSubTopic, row, "New sub-topic", "")
		return m, cmd

	case key.Matches(msg, m.keys.AddQuestion):
		if !ok {
			m.setError(fmt.Errorf("select a topic first"))
			return m, nil
		}
		cmd := m.startInput(inputAddQuestion, row, "New question", "")
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		if !ok {
			return m, nil
		}
		cmd := m.startInput(inputEditTitle, row, "Title", row.title)
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		if !ok {
			return m, nil
		}
		m.mode = modeConfirm
		m.target = row
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if m.saving {
			return m, nil
		}
		m.saving = true
		m.setStatus("saving…")
		saver, t := m.saver, m.store.Snapshot()
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return savedMsg{err: saver.Save(context.Background(), t)}
		})
	}
	return m, nil
}

// move routes a keyboard reorder through the drop resolver, the same path a
// pointer drag would take.
func (m *appModel) move(row sheetRow, to int) tea.Cmd {
	if to < 0 || to >= row.siblings {
		return nil
	}
	z := row.zone()
	dest := dnd.Location{Zone: z, Index: to}
	t, op, err := m.resolver.Drop(dnd.Drop{
		Kind:      row.dragKind(),
		Source:    dnd.Location{Zone: z, Index: row.index},
		Dest:      &dest,
		DraggedID: row.id,
	})
	if err != nil {
		m.setError(err)
		return nil
	}
	if op.Kind == dnd.OpNone {
		return nil
	}
	m.setStatus("")
	return m.edited(t)
}

func nextDifficulty(d model.Difficulty) model.Difficulty {
	switch d {
	case model.DifficultyEasy:
		return model.DifficultyMedium
	case model.DifficultyMedium:
		return model.DifficultyHard
	default:
		return model.DifficultyEasy
	}
}

func (m *appModel) startInput(p inputPurpose, target sheetRow, placeholder, value string) tea.Cmd {
	m.mode = modeInput
	m.purpose = p
	m.target = target
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.mode = modeBrowse
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		m.mode = modeBrowse
		m.input.Blur()
		m.input.Reset()
		t, err := m.submit(value)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		cmd := m.edited(t)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) submit(value string) (model.Tree, error) {
	r := m.target
	switch m.purpose {
	case inputAddTopic:
		return m.store.AddTopic(model.TopicInput{Title: value})
	case inputAddSubTopic:
		return m.store.AddSubTopic(r.topicID, model.SubTopicInput{Title: value})
	case inputAddQuestion:
		// A question row adds to its own sibling group; a topic row to the topic's
		// direct questions; a sub-topic row to that sub-topic.
		subID := r.subTopicID
		if r.kind == rowTopic {
			subID = ""
		}
		return m.store.AddQuestion(r.topicID, subID, model.QuestionInput{Title: value})
	default:
		switch r.kind {
		case rowTopic:
			return m.store.UpdateTopic(r.topicID, model.TopicPatch{Title: &value})
		case rowSubTopic:
			return m.store.UpdateSubTopic(r.topicID, r.subTopicID, model.SubTopicPatch{Title: &value})
		default:
			return m.store.UpdateQuestion(r.topicID, r.subTopicID, r.id, model.QuestionPatch{Title: &value})
		}
	}
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeBrowse
		r := m.target
		var t model.Tree
		switch r.kind {
		case rowTopic:
			t = m.store.DeleteTopic(r.topicID)
		case rowSubTopic:
			t = m.store.DeleteSubTopic(r.topicID, r.subTopicID)
		default:
			t = m.store.DeleteQuestion(r.topicID, r.subTopicID, r.id)
		}
		m.setStatus(fmt.Sprintf("deleted %q", r.title))
		cmd := m.edited(t)
		return m, cmd
	case "n", "N", "esc", "q":
		m.mode = modeBrowse
		return m, nil
	}
	return m, nil
}
