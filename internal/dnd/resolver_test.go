package dnd

import (
	"errors"
	"reflect"
	"testing"

	"sheet-cli/internal/model"
	"sheet-cli/internal/store"
)

func sampleTree() model.Tree {
	return model.Tree{
		{ID: "t1", Title: "Arrays", Questions: []model.Question{{ID: "d1"}, {ID: "d2"}, {ID: "d3"}},
			SubTopics: []model.SubTopic{
				{ID: "st-0", Questions: []model.Question{{ID: "a"}, {ID: "b"}}},
				{ID: "st-1"},
			}},
		{ID: "0191f7a2-7c1e-7b3a-9a3e-2f7c1d9e4b10", Title: "Graphs",
			SubTopics: []model.SubTopic{{ID: "st-2", Questions: []model.Question{{ID: "g1"}, {ID: "g2"}}}}},
	}
}

func at(z Zone, i int) *Location { return &Location{Zone: z, Index: i} }

type recorder struct {
	calls []Op
	tree  model.Tree
}

func (r *recorder) ReorderTopics(from, to int) model.Tree {
	r.calls = append(r.calls, Op{Kind: OpReorderTopics, From: from, To: to})
	return r.tree
}

func (r *recorder) ReorderSubTopics(topicID string, from, to int) model.Tree {
	r.calls = append(r.calls, Op{Kind: OpReorderSubTopics, TopicID: topicID, From: from, To: to})
	return r.tree
}

func (r *recorder) ReorderQuestions(topicID, subTopicID string, from, to int) model.Tree {
	r.calls = append(r.calls, Op{Kind: OpReorderQuestions, TopicID: topicID, SubTopicID: subTopicID, From: from, To: to})
	return r.tree
}

func (r *recorder) Snapshot() model.Tree { return r.tree }

func mustResolve(t *testing.T, tree model.Tree, d Drop) Op {
	t.Helper()
	op, err := Resolve(tree, d)
	if err != nil {
		t.Fatalf("Resolve(%+v): %v", d, err)
	}
	return op
}

func TestResolve_SubTopicQuestionsFindsOwner(t *testing.T) {
	zone, err := ParseZoneID("subtopic-st-0")
	if err != nil {
		t.Fatalf("ParseZoneID: %v", err)
	}
	op := mustResolve(t, sampleTree(), Drop{
		Kind:   KindQuestion,
		Source: Location{Zone: zone, Index: 1},
		Dest:   at(zone, 0),
	})
	if want := (Op{Kind: OpReorderQuestions, TopicID: "t1", SubTopicID: "st-0", From: 1, To: 0}); op != want {
		t.Fatalf("expected %v, got %v", want, op)
	}
}

func TestResolve_TopicDirectQuestions(t *testing.T) {
	z := TopicQuestions("t1")
	op := mustResolve(t, sampleTree(), Drop{Kind: KindQuestion, Source: Location{Zone: z, Index: 0}, Dest: at(z, 2)})
	if want := (Op{Kind: OpReorderQuestions, TopicID: "t1", From: 0, To: 2}); op != want {
		t.Fatalf("expected %v, got %v", want, op)
	}
}

func TestResolve_TopicsAndSubTopics(t *testing.T) {
	op := mustResolve(t, sampleTree(), Drop{Kind: KindTopic, Source: Location{Zone: Topics(), Index: 1}, Dest: at(Topics(), 0)})
	if want := (Op{Kind: OpReorderTopics, From: 1, To: 0}); op != want {
		t.Fatalf("expected %v, got %v", want, op)
	}

	z := TopicSubTopics("t1")
	op = mustResolve(t, sampleTree(), Drop{Kind: KindSubTopic, Source: Location{Zone: z, Index: 0}, Dest: at(z, 1)})
	if want := (Op{Kind: OpReorderSubTopics, TopicID: "t1", From: 0, To: 1}); op != want {
		t.Fatalf("expected %v, got %v", want, op)
	}
}

func TestResolve_NoOps(t *testing.T) {
	z := TopicQuestions("t1")
	if op := mustResolve(t, sampleTree(), Drop{Kind: KindQuestion, Source: Location{Zone: z, Index: 1}}); op.Kind != OpNone {
		t.Fatalf("no destination: expected none, got %v", op)
	}
	if op := mustResolve(t, sampleTree(), Drop{Kind: KindQuestion, Source: Location{Zone: z, Index: 1}, Dest: at(z, 1)}); op.Kind != OpNone {
		t.Fatalf("same zone and index: expected none, got %v", op)
	}
}

func TestResolve_Rejections(t *testing.T) {
	tree := sampleTree()
	st0 := SubTopicQuestions("st-0")
	ghost := SubTopicQuestions("ghost")

	cases := []struct {
		name string
		drop Drop
		want error
	}{
		{"cross zone", Drop{Kind: KindQuestion, Source: Location{Zone: TopicQuestions("t1"), Index: 0}, Dest: at(st0, 0)}, ErrCrossZone},
		{"kind mismatch", Drop{Kind: KindTopic, Source: Location{Zone: TopicQuestions("t1"), Index: 0}, Dest: at(TopicQuestions("t1"), 1)}, ErrKindMismatch},
		{"no owner", Drop{Kind: KindQuestion, Source: Location{Zone: ghost, Index: 0}, Dest: at(ghost, 1)}, ErrNoOwner},
		{"stale source", Drop{Kind: KindQuestion, Source: Location{Zone: st0, Index: 0}, Dest: at(st0, 1), DraggedID: "b"}, ErrStaleSource},
	}
	for _, c := range cases {
		if _, err := Resolve(tree, c.drop); !errors.Is(err, c.want) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, err)
		}
	}

	op := mustResolve(t, tree, Drop{Kind: KindQuestion, Source: Location{Zone: st0, Index: 1}, Dest: at(st0, 0), DraggedID: "b"})
	if op.SubTopicID != "st-0" {
		t.Fatalf("expected st-0, got %q", op.SubTopicID)
	}
}

func TestParseZoneID_HyphenatedIDs(t *testing.T) {
	uuidID := "0191f7a2-7c1e-7b3a-9a3e-2f7c1d9e4b10"
	cases := map[string]Zone{
		"topics":                         Topics(),
		"topic-" + uuidID + "-questions": TopicQuestions(uuidID),
		"topic-" + uuidID + "-subtopics": TopicSubTopics(uuidID),
		"subtopic-st-12":                 SubTopicQuestions("st-12"),
		"topic-a-subtopics-questions":    TopicQuestions("a-subtopics"),
		"subtopic-" + uuidID:             SubTopicQuestions(uuidID),
	}
	for in, want := range cases {
		got, err := ParseZoneID(in)
		if err != nil {
			t.Fatalf("ParseZoneID(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseZoneID(%q) = %+v, want %+v", in, got, want)
		}
		if got.ID() != in {
			t.Fatalf("round trip: %q became %q", in, got.ID())
		}
	}

	for _, bad := range []string{"", "topic", "topic--questions", "subtopic-", "topic-x", "board"} {
		if _, err := ParseZoneID(bad); !errors.Is(err, ErrBadZoneID) {
			t.Fatalf("ParseZoneID(%q): expected ErrBadZoneID, got %v", bad, err)
		}
	}
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("subtopic-st-0:3")
	if err != nil {
		t.Fatalf("ParseLocation: %v", err)
	}
	if want := (Location{Zone: SubTopicQuestions("st-0"), Index: 3}); loc != want {
		t.Fatalf("expected %+v, got %+v", want, loc)
	}
	if loc.String() != "subtopic-st-0:3" {
		t.Fatalf("unexpected String(): %q", loc.String())
	}

	for _, bad := range []string{"subtopic-st-0", "topics:x"} {
		if _, err := ParseLocation(bad); !errors.Is(err, ErrBadZoneID) {
			t.Fatalf("ParseLocation(%q): expected ErrBadZoneID, got %v", bad, err)
		}
	}
}

func TestResolver_DropIssuesExactlyOneCall(t *testing.T) {
	rec := &recorder{tree: sampleTree()}
	r := NewResolver(rec)

	z := SubTopicQuestions("st-2")
	_, op, err := r.Drop(Drop{Kind: KindQuestion, Source: Location{Zone: z, Index: 1}, Dest: at(z, 0)})
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if len(rec.calls) != 1 || rec.calls[0] != op {
		t.Fatalf("expected exactly the resolved call, got %v", rec.calls)
	}
	if rec.calls[0].TopicID != "0191f7a2-7c1e-7b3a-9a3e-2f7c1d9e4b10" {
		t.Fatalf("unexpected owner %q", rec.calls[0].TopicID)
	}

	_, _, err = r.Drop(Drop{Kind: KindQuestion, Source: Location{Zone: z, Index: 1}, Dest: at(TopicQuestions("t1"), 0)})
	if !errors.Is(err, ErrCrossZone) {
		t.Fatalf("expected ErrCrossZone, got %v", err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("rejected drop reached the store: %v", rec.calls)
	}
}

func TestResolver_AgainstTreeStore(t *testing.T) {
	ts := store.NewTreeStore(store.Options{})
	ts.LoadData(sampleTree())
	r := NewResolver(ts)

	z := TopicQuestions("t1")
	got, _, err := r.Drop(Drop{Kind: KindQuestion, Source: Location{Zone: z, Index: 0}, Dest: at(z, 2), DraggedID: "d1"})
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	ids := []string{}
	for i, q := range got[0].Questions {
		ids = append(ids, q.ID)
		if q.Order != i {
			t.Fatalf("%s: expected order %d, got %d", q.ID, i, q.Order)
		}
	}
	if !reflect.DeepEqual(ids, []string{"d2", "d3", "d1"}) {
		t.Fatalf("unexpected order: %v", ids)
	}
}
