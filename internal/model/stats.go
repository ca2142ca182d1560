package model

import "math"

type Stats struct {
	Total  int `json:"total" yaml:"total"`
	Solved int `json:"solved" yaml:"solved"`
}

func (s Stats) Add(o Stats) Stats {
	return Stats{Total: s.Total + o.Total, Solved: s.Solved + o.Solved}
}

// Percent is the rounded solved share, 0 for an empty set.
func (s Stats) Percent() int {
	if s.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(s.Solved) / float64(s.Total) * 100))
}

func QuestionStats(qs []Question) Stats {
	out := Stats{Total: len(qs)}
	for _, q := range qs {
		if q.Solved {
			out.Solved++
		}
	}
	return out
}

func (st SubTopic) Stats() Stats { return QuestionStats(st.Questions) }

// Stats aggregates direct questions plus every sub-topic's questions.
func (t Topic) Stats() Stats {
	out := QuestionStats(t.Questions)
	for _, st := range t.SubTopics {
		out = out.Add(st.Stats())
	}
	return out
}

func (t Tree) Stats() Stats {
	var out Stats
	for _, tp := range t {
		out = out.Add(tp.Stats())
	}
	return out
}
