package cli

import (
	"fmt"

	"sheet-cli/internal/model"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

// The store absorbs unknown ids as no-ops; the CLI reports them instead.

func requireTopic(t model.Tree, topicID string) (*model.Topic, error) {
	tp, ok := t.FindTopic(topicID)
	if !ok {
		return nil, errNotFound("topic", topicID)
	}
	return tp, nil
}

func requireSubTopic(t model.Tree, topicID, subTopicID string) (*model.SubTopic, error) {
	tp, err := requireTopic(t, topicID)
	if err != nil {
		return nil, err
	}
	st, ok := tp.FindSubTopic(subTopicID)
	if !ok {
		return nil, errNotFound("subtopic", subTopicID)
	}
	return st, nil
}

func requireGroup(t model.Tree, topicID, subTopicID string) ([]model.Question, error) {
	if subTopicID != "" {
		st, err := requireSubTopic(t, topicID, subTopicID)
		if err != nil {
			return nil, err
		}
		return st.Questions, nil
	}
	tp, err := requireTopic(t, topicID)
	if err != nil {
		return nil, err
	}
	return tp.Questions, nil
}

func requireQuestion(t model.Tree, topicID, subTopicID, questionID string) (*model.Question, error) {
	qs, err := requireGroup(t, topicID, subTopicID)
	if err != nil {
		return nil, err
	}
	q, ok := model.FindQuestion(qs, questionID)
	if !ok {
		return nil, errNotFound("question", questionID)
	}
	return q, nil
}
