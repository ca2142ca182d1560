package model

import "strings"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty accepts any casing of Easy/Medium/Hard.
// Unknown or empty values map to Medium, matching the add form default.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

type Question struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Tags        []string   `json:"tags" yaml:"tags"`
	VideoLink   string     `json:"videoLink,omitempty" yaml:"videoLink,omitempty"`
	Solved      bool       `json:"solved" yaml:"solved"`
	Order       int        `json:"order" yaml:"order"`
}

type SubTopic struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Order       int        `json:"order" yaml:"order"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

type Topic struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Order       int        `json:"order" yaml:"order"`
	SubTopics   []SubTopic `json:"subTopics" yaml:"subTopics"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// Tree is the ordered top-level topic sequence.
type Tree []Topic

func (q Question) Clone() Question {
	out := q
	out.Tags = append([]string{}, q.Tags...)
	return out
}

func (st SubTopic) Clone() SubTopic {
	out := st
	out.Questions = cloneQuestions(st.Questions)
	return out
}

func (t Topic) Clone() Topic {
	out := t
	out.Questions = cloneQuestions(t.Questions)
	out.SubTopics = make([]SubTopic, len(t.SubTopics))
	for i := range t.SubTopics {
		out.SubTopics[i] = t.SubTopics[i].Clone()
	}
	return out
}

// Clone returns a deep copy; no slice in the result aliases t.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for i := range t {
		out[i] = t[i].Clone()
	}
	return out
}

func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i := range qs {
		out[i] = qs[i].Clone()
	}
	return out
}

func (t Tree) FindTopic(id string) (*Topic, bool) {
	for i := range t {
		if t[i].ID == id {
			return &t[i], true
		}
	}
	return nil, false
}

func (t *Topic) FindSubTopic(id string) (*SubTopic, bool) {
	for i := range t.SubTopics {
		if t.SubTopics[i].ID == id {
			return &t.SubTopics[i], true
		}
	}
	return nil, false
}

// OwnerOfSubTopic scans every topic for the one holding subTopicID.
func (t Tree) OwnerOfSubTopic(subTopicID string) (*Topic, bool) {
	for i := range t {
		if _, ok := t[i].FindSubTopic(subTopicID); ok {
			return &t[i], true
		}
	}
	return nil, false
}

// QuestionGroup returns the sibling group addressed by (topicID, subTopicID).
// An empty subTopicID addresses the topic's direct questions.
func (t Tree) QuestionGroup(topicID, subTopicID string) ([]Question, bool) {
	tp, ok := t.FindTopic(topicID)
	if !ok {
		return nil, false
	}
	if subTopicID == "" {
		return tp.Questions, true
	}
	st, ok := tp.FindSubTopic(subTopicID)
	if !ok {
		return nil, false
	}
	return st.Questions, true
}

func FindQuestion(qs []Question, id string) (*Question, bool) {
	for i := range qs {
		if qs[i].ID == id {
			return &qs[i], true
		}
	}
	return nil, false
}

// QuestionCount counts every question in the tree, direct and nested.
func (t Tree) QuestionCount() int {
	n := 0
	for _, tp := range t {
		n += len(tp.Questions)
		for _, st := range tp.SubTopics {
			n += len(st.Questions)
		}
	}
	return n
}

// ParseTags splits comma-separated tag input, trimming and dropping empties.
func ParseTags(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
