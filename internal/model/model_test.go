package model

import (
	"reflect"
	"testing"
)

func TestParseDifficulty(t *testing.T) {
	for in, want := range map[string]Difficulty{
		"easy":    DifficultyEasy,
		" EASY ":  DifficultyEasy,
		"Medium":  DifficultyMedium,
		"hard":    DifficultyHard,
		"":        DifficultyMedium,
		"extreme": DifficultyMedium,
	} {
		if got := ParseDifficulty(in); got != want {
			t.Fatalf("ParseDifficulty(%q) = %q, want %q", in, got, want)
		}
	}
	if Difficulty("easy").Valid() {
		t.Fatalf("expected lowercase difficulty to be invalid as a stored value")
	}
}

func TestStatsPercent(t *testing.T) {
	cases := []struct {
		s    Stats
		want int
	}{
		{Stats{}, 0},
		{Stats{Total: 3, Solved: 1}, 33},
		{Stats{Total: 3, Solved: 2}, 67},
		{Stats{Total: 8, Solved: 1}, 13},
		{Stats{Total: 4, Solved: 4}, 100},
	}
	for _, c := range cases {
		if got := c.s.Percent(); got != c.want {
			t.Fatalf("%+v: expected %d%%, got %d%%", c.s, c.want, got)
		}
	}
}

func TestTopicStats_IncludesDirectAndNested(t *testing.T) {
	tp := Topic{
		Questions: []Question{{Solved: true}, {}},
		SubTopics: []SubTopic{
			{Questions: []Question{{Solved: true}}},
			{},
		},
	}
	if got := tp.Stats(); got != (Stats{Total: 3, Solved: 2}) {
		t.Fatalf("unexpected topic stats: %+v", got)
	}
	tree := Tree{tp, {Questions: []Question{{}}}}
	if got := tree.Stats(); got != (Stats{Total: 4, Solved: 2}) {
		t.Fatalf("unexpected tree stats: %+v", got)
	}
	if tree.QuestionCount() != 4 {
		t.Fatalf("expected 4 questions, got %d", tree.QuestionCount())
	}
}

func TestTreeClone_DoesNotAlias(t *testing.T) {
	orig := Tree{{ID: "t", SubTopics: []SubTopic{{ID: "s", Questions: []Question{{ID: "q", Tags: []string{"a"}}}}}}}
	cp := orig.Clone()
	cp[0].SubTopics[0].Questions[0].Tags[0] = "changed"
	cp[0].SubTopics[0].Title = "changed"
	if orig[0].SubTopics[0].Questions[0].Tags[0] != "a" || orig[0].SubTopics[0].Title != "" {
		t.Fatalf("clone aliases the original: %+v", orig)
	}
}

func TestLookups(t *testing.T) {
	tree := Tree{
		{ID: "t1", Questions: []Question{{ID: "d"}}},
		{ID: "t2", SubTopics: []SubTopic{{ID: "st-0", Questions: []Question{{ID: "n"}}}}},
	}
	if owner, ok := tree.OwnerOfSubTopic("st-0"); !ok || owner.ID != "t2" {
		t.Fatalf("expected t2 to own st-0")
	}
	if _, ok := tree.OwnerOfSubTopic("st-9"); ok {
		t.Fatalf("expected no owner for unknown sub-topic")
	}
	if qs, ok := tree.QuestionGroup("t1", ""); !ok || len(qs) != 1 || qs[0].ID != "d" {
		t.Fatalf("expected direct group of t1")
	}
	if _, ok := tree.QuestionGroup("t1", "st-0"); ok {
		t.Fatalf("expected st-0 to be scoped to its own topic")
	}
	if _, ok := FindQuestion(tree[1].SubTopics[0].Questions, "n"); !ok {
		t.Fatalf("expected to find n")
	}
}

func TestParseTags(t *testing.T) {
	if got := ParseTags(" dp, ,greedy ,"); !reflect.DeepEqual(got, []string{"dp", "greedy"}) {
		t.Fatalf("unexpected tags: %#v", got)
	}
	if got := ParseTags(""); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestQuestionPatchApply(t *testing.T) {
	q := Question{ID: "q", Title: "old", Difficulty: DifficultyEasy, Tags: []string{"x"}}
	title := "new"
	solved := true
	tags := []string{"y", "z"}
	QuestionPatch{Title: &title, Solved: &solved, Tags: &tags}.Apply(&q)
	if q.Title != "new" || !q.Solved || q.Difficulty != DifficultyEasy || !reflect.DeepEqual(q.Tags, tags) {
		t.Fatalf("unexpected patched question: %+v", q)
	}
	tags[0] = "mutated"
	if q.Tags[0] != "y" {
		t.Fatalf("patch aliases caller tags")
	}
}
