package model

// TopicInput carries the raw fields from an add form.
type TopicInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type SubTopicInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type QuestionInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	Tags        []string   `json:"tags"`
	VideoLink   string     `json:"videoLink" validate:"omitempty,url"`
}

// Patches merge shallowly: nil fields are left untouched.
// Identity, order and children are owned by the store and cannot be patched.

type TopicPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type SubTopicPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type QuestionPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Difficulty  *Difficulty `json:"difficulty,omitempty"`
	Tags        *[]string   `json:"tags,omitempty"`
	VideoLink   *string     `json:"videoLink,omitempty"`
	Solved      *bool       `json:"solved,omitempty"`
}

func (p TopicPatch) Apply(t *Topic) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
}

func (p SubTopicPatch) Apply(st *SubTopic) {
	if p.Title != nil {
		st.Title = *p.Title
	}
	if p.Description != nil {
		st.Description = *p.Description
	}
}

func (p QuestionPatch) Apply(q *Question) {
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Description != nil {
		q.Description = *p.Description
	}
	if p.Difficulty != nil {
		q.Difficulty = *p.Difficulty
	}
	if p.Tags != nil {
		q.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.VideoLink != nil {
		q.VideoLink = *p.VideoLink
	}
	if p.Solved != nil {
		q.Solved = *p.Solved
	}
}
