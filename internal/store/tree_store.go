package store

import (
	"io"
	"strings"
	"sync"

	"sheet-cli/internal/model"

	"github.com/sirupsen/logrus"
)

type Options struct {
	// Logger receives best-effort warnings for mutations that address unknown ids.
	// Nil means a logger that discards everything.
	Logger *logrus.Logger
	// IDs mints ids for new entities. Nil means ClockIDs.
	IDs IDSource
}

// TreeStore owns the canonical Topic -> SubTopic -> Question tree.
//
// Every operation computes a new tree from a deep copy of the current one, assigns it,
// and returns a copy of the result, so callers never share slices with the store.
// Mutations addressing unknown ids are no-ops that log a warning; only input
// validation produces errors.
type TreeStore struct {
	mu   sync.Mutex
	tree model.Tree
	ids  IDSource
	log  *logrus.Logger
}

func NewTreeStore(opts Options) *TreeStore {
	lg := opts.Logger
	if lg == nil {
		lg = logrus.New()
		lg.SetOutput(io.Discard)
	}
	ids := opts.IDs
	if ids == nil {
		ids = ClockIDs{}
	}
	return &TreeStore{tree: model.Tree{}, ids: ids, log: lg}
}

func (s *TreeStore) Snapshot() model.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Clone()
}

// commit runs fn against a private copy of the tree, stores the copy and returns
// another copy for the caller.
func (s *TreeStore) commit(fn func(t model.Tree) model.Tree) model.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.tree.Clone())
	s.tree = next
	return next.Clone()
}

func (s *TreeStore) warn(op, msg string, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["op"] = op
	s.log.WithFields(fields).Warn(msg)
}

// LoadData replaces the whole tree. Order fields are re-derived from position.
func (s *TreeStore) LoadData(t model.Tree) model.Tree {
	return s.commit(func(model.Tree) model.Tree {
		next := t.Clone()
		normalizeOrders(next)
		return next
	})
}

func (s *TreeStore) AddTopic(in model.TopicInput) (model.Tree, error) {
	if err := validateTopicInput(&in); err != nil {
		return s.Snapshot(), err
	}
	return s.commit(func(t model.Tree) model.Tree {
		return append(t, model.Topic{
			ID:          s.ids.NewID(),
			Title:       in.Title,
			Description: in.Description,
			Order:       len(t),
			SubTopics:   []model.SubTopic{},
			Questions:   []model.Question{},
		})
	}), nil
}

func (s *TreeStore) UpdateTopic(topicID string, patch model.TopicPatch) (model.Tree, error) {
	title, err := normalizeTitle(patch.Title)
	if err != nil {
		return s.Snapshot(), err
	}
	patch.Title = title
	return s.commit(func(t model.Tree) model.Tree {
		tp, ok := t.FindTopic(topicID)
		if !ok {
			s.warn("updateTopic", "unknown topic", logrus.Fields{"topicId": topicID})
			return t
		}
		patch.Apply(tp)
		return t
	}), nil
}

// DeleteTopic removes the topic with every sub-topic and question it contains.
func (s *TreeStore) DeleteTopic(topicID string) model.Tree {
	return s.commit(func(t model.Tree) model.Tree {
		out := t[:0]
		found := false
		for _, tp := range t {
			if tp.ID == topicID {
				found = true
				continue
			}
			out = append(out, tp)
		}
		if !found {
			s.warn("deleteTopic", "unknown topic", logrus.Fields{"topicId": topicID})
		}
		reindexTopics(out)
		return out
	})
}

func (s *TreeStore) AddSubTopic(topicID string, in model.SubTopicInput) (model.Tree, error) {
	if err := validateSubTopicInput(&in); err != nil {
		return s.Snapshot(), err
	}
	return s.commit(func(t model.Tree) model.Tree {
		tp, ok := t.FindTopic(topicID)
		if !ok {
			s.warn("addSubTopic", "unknown topic", logrus.Fields{"topicId": topicID})
			return t
		}
		tp.SubTopics = append(tp.SubTopics, model.SubTopic{
			ID:          s.ids.NewID(),
			Title:       in.Title,
			Description: in.Description,
			Order:       len(tp.SubTopics),
			Questions:   []model.Question{},
		})
		return t
	}), nil
}

func (s *TreeStore) UpdateSubTopic(topicID, subTopicID string, patch model.SubTopicPatch) (model.Tree, error) {
	title, err := normalizeTitle(patch.Title)
	if err != nil {
		return s.Snapshot(), err
	}
	patch.Title = title
	return s.commit(func(t model.Tree) model.Tree {
		st, ok := findSubTopic(t, topicID, subTopicID)
		if !ok {
			s.warn("updateSubTopic", "unknown sub-topic", logrus.Fields{"topicId": topicID, "subTopicId": subTopicID})
			return t
		}
		patch.Apply(st)
		return t
	}), nil
}

// DeleteSubTopic removes the sub-topic and its questions from the named topic only.
func (s *TreeStore) DeleteSubTopic(topicID, subTopicID string) model.Tree {
	return s.commit(func(t model.Tree) model.Tree {
		tp, ok := t.FindTopic(topicID)
		if !ok {
			s.warn("deleteSubTopic", "unknown topic", logrus.Fields{"topicId": topicID, "subTopicId": subTopicID})
			return t
		}
		out := tp.SubTopics[:0]
		found := false
		for _, st := range tp.SubTopics {
			if st.ID == subTopicID {
				found = true
				continue
			}
			out = append(out, st)
		}
		if !found {
			s.warn("deleteSubTopic", "unknown sub-topic", logrus.Fields{"topicId": topicID, "subTopicId": subTopicID})
		}
		reindexSubTopics(out)
		tp.SubTopics = out
		return t
	})
}

// AddQuestion appends to the topic's direct questions when subTopicID is empty,
// otherwise to that sub-topic's questions. New questions always start unsolved.
func (s *TreeStore) AddQuestion(topicID, subTopicID string, in model.QuestionInput) (model.Tree, error) {
	if err := validateQuestionInput(&in); err != nil {
		return s.Snapshot(), err
	}
	return s.commit(func(t model.Tree) model.Tree {
		group, ok := questionGroup(t, topicID, subTopicID)
		if !ok {
			s.warn("addQuestion", "unknown question group", logrus.Fields{"topicId": topicID, "subTopicId": subTopicID})
			return t
		}
		difficulty := in.Difficulty
		if difficulty == "" {
			difficulty = model.DifficultyMedium
		}
		tags := []string{}
		for _, tag := range in.Tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		*group = append(*group, model.Question{
			ID:          s.ids.NewID(),
			Title:       in.Title,
			Description: in.Description,
			Difficulty:  difficulty,
			Tags:        tags,
			VideoLink:   in.VideoLink,
			Solved:      false,
			Order:       len(*group),
		})
		return t
	}), nil
}

func (s *TreeStore) UpdateQuestion(topicID, subTopicID, questionID string, patch model.QuestionPatch) (model.Tree, error) {
	patch, err := normalizeQuestionPatch(patch)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.commit(func(t model.Tree) model.Tree {
		q, ok := findQuestion(t, topicID, subTopicID, questionID)
		if !ok {
			s.warn("updateQuestion", "unknown question", logrus.Fields{"topicId": topicID, "subTopicId": subTopicID, "questionId": questionID})
			return t
		}
		patch.Apply(q)
		return t
	}), nil
}

// ToggleSolved flips the solved flag of one question in its addressed group.
func (s *TreeStore) ToggleSolved(topicID, subTopicID, questionID string) model.Tree {
	return s.commit(func(t model.Tree) model.Tree {
		q, ok := findQuestion(t, topicID, subTopicID, questionID)
		if !ok {
			s.warn("toggleSolved", "unknown question", logrus.Fields{"topicId": topicID, "subTopicId": subTopicID, "questionId": questionID})
			return t
		}
		q.Solved = !q.Solved
		return t
	})
}

func (s *TreeStore) DeleteQuestion(topicID, subTopicID, questionID string) model.Tree {
	return s.commit(func(t model.Tree) model.Tree {
		group, ok := questionGroup(t, topicID, subTopicID)
		if !ok {
			s.warn("deleteQuestion", "unknown question group", logrus.Fields{"topicId": topicID, "subTopicId": subTopicID, "questionId": questionID})
			return t
		}
		out := (*group)[:0]
		found := false
		for _, q := range *group {
			if q.ID == questionID {
				found = true
				continue
			}
			out = append(out, q)
		}
		if !found {
			s.warn("deleteQuestion", "unknown question", logrus.Fields{"topicId": topicID, "subTopicId": subTopicID, "questionId": questionID})
		}
		reindexQuestions(out)
		*group = out
		return t
	})
}

// ReorderTopics moves the topic at from to position to (splice semantics).
func (s *TreeStore) ReorderTopics(from, to int) model.Tree {
	return s.commit(func(t model.Tree) model.Tree {
		out, ok := moveIndex(t, from, to)
		if !ok {
			s.warn("reorderTopics", "source index out of range", logrus.Fields{"from": from, "to": to, "len": len(t)})
			return t
		}
		reindexTopics(out)
		return out
	})
}

func (s *TreeStore) ReorderSubTopics(topicID string, from, to int) model.Tree {
	return s.commit(func(t model.Tree) model.Tree {
		tp, ok := t.FindTopic(topicID)
		if !ok {
			s.warn("reorderSubTopics", "unknown topic", logrus.Fields{"topicId": topicID})
			return t
		}
		out, ok := moveIndex(tp.SubTopics, from, to)
		if !ok {
			s.warn("reorderSubTopics", "source index out of range", logrus.Fields{"topicId": topicID, "from": from, "to": to, "len": len(tp.SubTopics)})
			return t
		}
		reindexSubTopics(out)
		tp.SubTopics = out
		return t
	})
}

func (s *TreeStore) ReorderQuestions(topicID, subTopicID string, from, to int) model.Tree {
	return s.commit(func(t model.Tree) model.Tree {
		group, ok := questionGroup(t, topicID, subTopicID)
		if !ok {
			s.warn("reorderQuestions", "unknown question group", logrus.Fields{"topicId": topicID, "subTopicId": subTopicID})
			return t
		}
		out, ok := moveIndex(*group, from, to)
		if !ok {
			s.warn("reorderQuestions", "source index out of range", logrus.Fields{"topicId": topicID, "subTopicId": subTopicID, "from": from, "to": to, "len": len(*group)})
			return t
		}
		reindexQuestions(out)
		*group = out
		return t
	})
}

// TopicStats aggregates the topic's direct questions and all sub-topic questions.
// Unknown ids yield zero stats.
func (s *TreeStore) TopicStats(topicID string) model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	tp, ok := s.tree.FindTopic(topicID)
	if !ok {
		return model.Stats{}
	}
	return tp.Stats()
}

func (s *TreeStore) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Stats()
}

func findSubTopic(t model.Tree, topicID, subTopicID string) (*model.SubTopic, bool) {
	tp, ok := t.FindTopic(topicID)
	if !ok {
		return nil, false
	}
	return tp.FindSubTopic(subTopicID)
}

// questionGroup addresses one sibling group by (topicID, subTopicID) and returns a
// pointer to its slice so callers can replace it. Questions are never looked up
// across groups by id alone.
func questionGroup(t model.Tree, topicID, subTopicID string) (*[]model.Question, bool) {
	tp, ok := t.FindTopic(topicID)
	if !ok {
		return nil, false
	}
	if subTopicID == "" {
		return &tp.Questions, true
	}
	st, ok := tp.FindSubTopic(subTopicID)
	if !ok {
		return nil, false
	}
	return &st.Questions, true
}

func findQuestion(t model.Tree, topicID, subTopicID, questionID string) (*model.Question, bool) {
	group, ok := questionGroup(t, topicID, subTopicID)
	if !ok {
		return nil, false
	}
	return model.FindQuestion(*group, questionID)
}
