package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sheet-cli/internal/model"
	"sheet-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func fixtureTree() model.Tree {
	return model.Tree{
		{
			ID: "t1", Title: "Arrays", Description: "**core** problems",
			Questions: []model.Question{
				{ID: "q1", Title: "Two Sum", Difficulty: model.DifficultyEasy},
				{ID: "q2", Title: "Three Sum", Difficulty: model.DifficultyMedium},
			},
			SubTopics: []model.SubTopic{
				{ID: "st-0", Title: "Sliding Window", Questions: []model.Question{
					{ID: "s1", Title: "Max Window", Difficulty: model.DifficultyHard},
					{ID: "s2", Title: "Min Window", Difficulty: model.DifficultyHard, Solved: true},
				}},
			},
		},
		{ID: "t2", Title: "Graphs"},
	}
}

type recordingSaver struct {
	calls int
	last  model.Tree
	err   error
}

func (s *recordingSaver) Save(_ context.Context, t model.Tree) error {
	s.calls++
	s.last = t
	return s.err
}

func newTestModel(t *testing.T) (appModel, *store.TreeStore, *recordingSaver) {
	t.Helper()
	ts := store.NewTreeStore(store.Options{IDs: &store.SequenceIDs{Prefix: "new"}})
	ts.LoadData(fixtureTree())
	ws := &recordingSaver{}
	m := newAppModel(Options{Store: ts, Workspace: ws, Glyphs: "ascii"})
	return m, ts, ws
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// press sends msg and drops the returned command.
func press(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mAny, _ := m.Update(msg)
	return mAny.(appModel)
}

// pressRun sends msg, runs the returned command and feeds its message back in.
func pressRun(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mAny, cmd := m.Update(msg)
	m = mAny.(appModel)
	if cmd == nil {
		return m
	}
	if out := cmd(); out != nil {
		mAny, _ = m.Update(out)
		m = mAny.(appModel)
	}
	return m
}

func rowTitles(m appModel) []string {
	var out []string
	for _, r := range m.rows {
		out = append(out, r.title)
	}
	return out
}

func TestFlattenSheet_OrderAndCollapse(t *testing.T) {
	rows := flattenSheet(fixtureTree(), map[string]bool{})
	want := []string{"Arrays", "Two Sum", "Three Sum", "Sliding Window", "Max Window", "Min Window", "Graphs"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, r := range rows {
		if r.title != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], r.title)
		}
	}
	if z := rows[4].zone().ID(); z != "subtopic-st-0" {
		t.Fatalf("expected sub-topic zone, got %q", z)
	}
	if z := rows[1].zone().ID(); z != "topic-t1-questions" {
		t.Fatalf("expected direct-question zone, got %q", z)
	}

	rows = flattenSheet(fixtureTree(), map[string]bool{subTopicKey("t1", "st-0"): true})
	if len(rows) != 5 {
		t.Fatalf("expected collapsed sub-topic to hide 2 rows, got %d rows", len(rows))
	}
}

func TestMoveDown_ReordersThroughResolverAndKeepsSelection(t *testing.T) {
	m, ts, ws := newTestModel(t)
	m = press(t, m, runes("j")) // Two Sum

	m = pressRun(t, m, runes("J"))

	got := ts.Snapshot()[0].Questions
	if got[0].ID != "q2" || got[1].ID != "q1" {
		t.Fatalf("expected q1 moved below q2, got %s,%s", got[0].ID, got[1].ID)
	}
	if got[1].Order != 1 {
		t.Fatalf("expected dense order, got %d", got[1].Order)
	}
	if r, _ := m.selected(); r.id != "q1" {
		t.Fatalf("expected selection to follow the moved question, got %q", r.id)
	}
	if ws.calls != 1 {
		t.Fatalf("expected one workspace write, got %d", ws.calls)
	}

	// Already last in its group: no-op.
	m = pressRun(t, m, runes("J"))
	if ws.calls != 1 {
		t.Fatalf("expected no write for an out-of-range move, got %d", ws.calls)
	}
}

func TestMoveUp_SubTopicQuestion(t *testing.T) {
	m, ts, _ := newTestModel(t)
	for i := 0; i < 5; i++ {
		m = press(t, m, runes("j"))
	}
	if r, _ := m.selected(); r.id != "s2" {
		t.Fatalf("expected cursor on s2, got %q", r.id)
	}
	m = press(t, m, runes("K"))
	qs := ts.Snapshot()[0].SubTopics[0].Questions
	if qs[0].ID != "s2" {
		t.Fatalf("expected s2 first, got %s", qs[0].ID)
	}
	if r, _ := m.selected(); r.id != "s2" || r.index != 0 {
		t.Fatalf("expected selection on s2 at index 0, got %q@%d", r.id, r.index)
	}
}

func TestToggleSolved(t *testing.T) {
	m, ts, _ := newTestModel(t)
	m = press(t, m, runes("j"))
	m = press(t, m, runes("x"))
	if !ts.Snapshot()[0].Questions[0].Solved {
		t.Fatalf("expected q1 solved")
	}
	m = press(t, m, runes("x"))
	if ts.Snapshot()[0].Questions[0].Solved {
		t.Fatalf("expected q1 unsolved after second toggle")
	}
	_ = m
}

func TestWorkspaceWrites_OneInFlightAndLatestWins(t *testing.T) {
	ts := store.NewTreeStore(store.Options{})
	ts.LoadData(fixtureTree())
	ws := store.Store{Dir: t.TempDir()}
	m := newAppModel(Options{Store: ts, Workspace: ws, Glyphs: "ascii"})
	m = press(t, m, runes("j")) // Two Sum

	mAny, first := m.Update(runes("x"))
	m = mAny.(appModel)
	if first == nil || !m.writing {
		t.Fatalf("expected a workspace write in flight")
	}
	mAny, second := m.Update(runes("x"))
	m = mAny.(appModel)
	if second != nil {
		t.Fatalf("expected no second write while one is in flight")
	}
	if !m.dirty {
		t.Fatalf("expected the pending edit to be recorded")
	}

	// The first write lands with the solved=true snapshot; the flush carries the latest.
	mAny, flush := m.Update(first())
	m = mAny.(appModel)
	if flush == nil {
		t.Fatalf("expected a follow-up write for the pending edit")
	}
	mAny, rest := m.Update(flush())
	m = mAny.(appModel)
	if rest != nil || m.writing || m.dirty {
		t.Fatalf("expected writes settled, writing=%v dirty=%v", m.writing, m.dirty)
	}

	got, err := ws.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := ts.Snapshot()[0].Questions[0].Solved; got[0].Questions[0].Solved != want {
		t.Fatalf("workspace solved=%v, store solved=%v", got[0].Questions[0].Solved, want)
	}
	if got[0].Questions[0].Solved {
		t.Fatalf("expected the second toggle to be persisted")
	}
}

func TestCollapseTopic(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := rowTitles(m); len(got) != 2 || got[1] != "Graphs" {
		t.Fatalf("expected Arrays collapsed, got %v", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.rows) != 7 {
		t.Fatalf("expected Arrays expanded again, got %d rows", len(m.rows))
	}
}

func TestAddQuestionToSubTopic(t *testing.T) {
	m, ts, _ := newTestModel(t)
	for i := 0; i < 3; i++ {
		m = press(t, m, runes("j"))
	}
	m = press(t, m, runes("n"))
	if m.mode != modeInput {
		t.Fatalf("expected input mode")
	}
	m = press(t, m, runes("Coin Change"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	qs := ts.Snapshot()[0].SubTopics[0].Questions
	if len(qs) != 3 {
		t.Fatalf("expected 3 sub-topic questions, got %d", len(qs))
	}
	q := qs[2]
	if q.Title != "Coin Change" || q.Order != 2 || q.Solved || q.Difficulty != model.DifficultyMedium {
		t.Fatalf("unexpected new question: %+v", q)
	}
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode after submit")
	}
}

func TestAddTopic_EmptyTitleShowsError(t *testing.T) {
	m, ts, _ := newTestModel(t)
	m = press(t, m, runes("a"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.isError || !strings.Contains(m.status, "title") {
		t.Fatalf("expected validation error in status, got %q", m.status)
	}
	if len(ts.Snapshot()) != 2 {
		t.Fatalf("expected no topic added")
	}
}

func TestEditTitle(t *testing.T) {
	m, ts, _ := newTestModel(t)
	m = press(t, m, runes("e"))
	if m.input.Value() != "Arrays" {
		t.Fatalf("expected input prefilled, got %q", m.input.Value())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = press(t, m, runes("Z"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := ts.Snapshot()[0].Title; got != "ArrayZ" {
		t.Fatalf("expected renamed topic, got %q", got)
	}
}

func TestDeleteRequiresConfirm(t *testing.T) {
	m, ts, _ := newTestModel(t)
	m = press(t, m, runes("D"))
	if m.mode != modeConfirm {
		t.Fatalf("expected confirm mode")
	}
	m = press(t, m, runes("n"))
	if len(ts.Snapshot()) != 2 {
		t.Fatalf("expected cancel to keep the topic")
	}

	m = press(t, m, runes("D"))
	m = press(t, m, runes("y"))
	tree := ts.Snapshot()
	if len(tree) != 1 || tree[0].ID != "t2" || tree[0].Order != 0 {
		t.Fatalf("expected only t2 left with order 0, got %+v", tree)
	}
	if got := rowTitles(m); len(got) != 1 || got[0] != "Graphs" {
		t.Fatalf("unexpected rows after delete: %v", got)
	}
}

func TestSave_ReportsFailure(t *testing.T) {
	m, _, _ := newTestModel(t)
	saver := &recordingSaver{err: errors.New("boom")}
	m.saver = saver

	mAny, cmd := m.Update(runes("s"))
	m = mAny.(appModel)
	if !m.saving || cmd == nil {
		t.Fatalf("expected save in flight")
	}
	mAny, _ = m.Update(savedMsg{err: saver.Save(context.Background(), m.store.Snapshot())})
	m = mAny.(appModel)
	if !m.isError || !strings.Contains(m.status, "boom") {
		t.Fatalf("expected save failure in status, got %q", m.status)
	}
	if m.saving {
		t.Fatalf("expected saving cleared")
	}
}

func TestLoadedMsg_ReplacesTree(t *testing.T) {
	ts := store.NewTreeStore(store.Options{})
	ws := &recordingSaver{}
	m := newAppModel(Options{Store: ts, Workspace: ws})
	m.loading = true

	m = press(t, m, runes("j"))
	if len(m.rows) != 0 {
		t.Fatalf("expected empty sheet while loading")
	}
	m = pressRun(t, m, loadedMsg{tree: fixtureTree()})
	if m.loading {
		t.Fatalf("expected loading cleared")
	}
	if len(m.rows) != 7 || ws.calls != 1 {
		t.Fatalf("expected loaded rows and one workspace write, got rows=%d writes=%d", len(m.rows), ws.calls)
	}
}

func TestView_RendersProgressAndDetail(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	out := m.View()
	if !strings.Contains(out, "1/4 solved (25%)") {
		t.Fatalf("expected overall progress in header, got:\n%s", out)
	}
	if !strings.Contains(out, "core") {
		t.Fatalf("expected topic description in detail pane")
	}
	if !strings.Contains(out, "[ ] Two Sum") {
		t.Fatalf("expected ascii checkbox row")
	}
}
