package store

import (
	"context"
	"fmt"
	"strings"

	"sheet-cli/internal/model"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level" yaml:"level"`
	Code    string           `json:"code" yaml:"code"`
	Message string           `json:"message" yaml:"message"`

	EntityKind string `json:"entityKind,omitempty" yaml:"entityKind,omitempty"`
	EntityID   string `json:"entityId,omitempty" yaml:"entityId,omitempty"`
	TopicID    string `json:"topicId,omitempty" yaml:"topicId,omitempty"`
	SubTopicID string `json:"subTopicId,omitempty" yaml:"subTopicId,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues" yaml:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor checks the persisted workspace snapshot.
func (s Store) Doctor(ctx context.Context) DoctorReport {
	t, err := s.Load(ctx)
	if err != nil {
		return DoctorReport{Issues: []DoctorIssue{{
			Level:   DoctorIssueLevelError,
			Code:    "snapshot_load_failed",
			Message: err.Error(),
		}}}
	}
	return DoctorTree(t)
}

// DoctorTree reports structural problems in t: duplicate ids inside a scope, blank
// titles, unknown difficulties, and order fields that disagree with position.
// Order drift is a warning since loading the tree re-derives it.
func DoctorTree(t model.Tree) DoctorReport {
	var issues []DoctorIssue
	add := func(it DoctorIssue) { issues = append(issues, it) }

	topicIDs := map[string]bool{}
	for ti, tp := range t {
		checkEntity(add, "topic", tp.ID, tp.Title, tp.Order, ti, topicIDs, tp.ID, "")
		checkQuestions(add, tp.ID, "", tp.Questions)

		subIDs := map[string]bool{}
		for si, st := range tp.SubTopics {
			checkEntity(add, "subtopic", st.ID, st.Title, st.Order, si, subIDs, tp.ID, st.ID)
			checkQuestions(add, tp.ID, st.ID, st.Questions)
		}
	}
	if issues == nil {
		issues = []DoctorIssue{}
	}
	return DoctorReport{Issues: issues}
}

func checkQuestions(add func(DoctorIssue), topicID, subTopicID string, qs []model.Question) {
	seen := map[string]bool{}
	for qi, q := range qs {
		checkEntity(add, "question", q.ID, q.Title, q.Order, qi, seen, topicID, subTopicID)
		if !q.Difficulty.Valid() {
			add(DoctorIssue{
				Level:      DoctorIssueLevelError,
				Code:       "question_bad_difficulty",
				Message:    fmt.Sprintf("difficulty %q is not Easy, Medium or Hard", q.Difficulty),
				EntityKind: "question",
				EntityID:   q.ID,
				TopicID:    topicID,
				SubTopicID: subTopicID,
			})
		}
	}
}

func checkEntity(add func(DoctorIssue), kind, id, title string, order, pos int, seen map[string]bool, topicID, subTopicID string) {
	base := DoctorIssue{EntityKind: kind, EntityID: id, TopicID: topicID, SubTopicID: subTopicID}

	switch {
	case strings.TrimSpace(id) == "":
		it := base
		it.Level, it.Code = DoctorIssueLevelError, kind+"_missing_id"
		it.Message = fmt.Sprintf("%s at position %d has no id", kind, pos)
		add(it)
	case seen[id]:
		it := base
		it.Level, it.Code = DoctorIssueLevelError, kind+"_duplicate_id"
		it.Message = fmt.Sprintf("%s id %q appears more than once in its group", kind, id)
		add(it)
	}
	seen[id] = true

	if strings.TrimSpace(title) == "" {
		it := base
		it.Level, it.Code = DoctorIssueLevelError, kind+"_blank_title"
		it.Message = fmt.Sprintf("%s %q has a blank title", kind, id)
		add(it)
	}
	if order != pos {
		it := base
		it.Level, it.Code = DoctorIssueLevelWarn, kind+"_order_drift"
		it.Message = fmt.Sprintf("%s %q has order %d at position %d", kind, id, order, pos)
		add(it)
	}
}
