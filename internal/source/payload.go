// Package source supplies the initial sheet snapshot and accepts full snapshots
// for persistence.
package source

import (
	"strconv"

	"sheet-cli/internal/model"
)

// Response is the envelope returned by the public sheet endpoint.
type Response struct {
	Data Payload `json:"data"`
}

type Payload struct {
	Sheet     Sheet             `json:"sheet"`
	Questions []PayloadQuestion `json:"questions"`
}

type Sheet struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PayloadQuestion struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	SubTopic string `json:"subTopic"`
	// Resource is usually a video walkthrough.
	Resource   string          `json:"resource"`
	QuestionID *QuestionDetail `json:"questionId"`
}

type QuestionDetail struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Topics      []string `json:"topics"`
}

// MapSheet turns a payload into a one-topic tree. Questions without a sub-topic
// become the topic's direct questions; the rest are bucketed into synthesized
// sub-topics "st-<i>" in first-seen order. Imported questions are never solved.
func MapSheet(p Payload) model.Tree {
	tp := model.Topic{
		ID:          p.Sheet.ID,
		Title:       p.Sheet.Name,
		Description: p.Sheet.Description,
		SubTopics:   []model.SubTopic{},
		Questions:   []model.Question{},
	}

	bucket := map[string]int{}
	for _, pq := range p.Questions {
		q := mapQuestion(pq)
		// Grouping is by the exact name; only an empty one means "no sub-topic".
		name := pq.SubTopic
		if name == "" {
			q.Order = len(tp.Questions)
			tp.Questions = append(tp.Questions, q)
			continue
		}
		si, ok := bucket[name]
		if !ok {
			si = len(tp.SubTopics)
			bucket[name] = si
			tp.SubTopics = append(tp.SubTopics, model.SubTopic{
				ID:        "st-" + strconv.Itoa(si),
				Title:     name,
				Order:     si,
				Questions: []model.Question{},
			})
		}
		st := &tp.SubTopics[si]
		q.Order = len(st.Questions)
		st.Questions = append(st.Questions, q)
	}
	return model.Tree{tp}
}

func mapQuestion(pq PayloadQuestion) model.Question {
	q := model.Question{
		ID:         pq.ID,
		Title:      pq.Title,
		Difficulty: model.DifficultyMedium,
		Tags:       []string{},
		VideoLink:  pq.Resource,
	}
	if d := pq.QuestionID; d != nil {
		if q.Title == "" {
			q.Title = d.Name
		}
		q.Description = d.Description
		q.Difficulty = model.ParseDifficulty(d.Difficulty)
		if d.Topics != nil {
			q.Tags = append([]string{}, d.Topics...)
		}
	}
	return q
}
