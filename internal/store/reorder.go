package store

import "sheet-cli/internal/model"

// moveIndex realizes a single-element splice move: remove at from, then insert at to
// in the shortened list. It never mutates xs.
//
// from must address an element; ok=false otherwise. to is clamped into [0, len(xs)-1].
func moveIndex[T any](xs []T, from, to int) (out []T, ok bool) {
	n := len(xs)
	if from < 0 || from >= n {
		return nil, false
	}
	to = ClampIndex(n, to)

	out = make([]T, 0, n)
	out = append(out, xs[:from]...)
	out = append(out, xs[from+1:]...)
	moved := xs[from]
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out, true
}

// ClampIndex reports the index moveIndex would actually use for to.
func ClampIndex(n, to int) int {
	if to < 0 || n == 0 {
		return 0
	}
	if to > n-1 {
		return n - 1
	}
	return to
}

// Order is re-derived from position after every structural mutation; stored order
// values are never trusted.

func reindexTopics(ts model.Tree) {
	for i := range ts {
		ts[i].Order = i
	}
}

func reindexSubTopics(sts []model.SubTopic) {
	for i := range sts {
		sts[i].Order = i
	}
}

func reindexQuestions(qs []model.Question) {
	for i := range qs {
		qs[i].Order = i
	}
}

// normalizeOrders reindexes every sibling group in t and replaces nil groups and
// tag lists with empty ones.
func normalizeOrders(t model.Tree) {
	reindexTopics(t)
	for i := range t {
		tp := &t[i]
		if tp.SubTopics == nil {
			tp.SubTopics = []model.SubTopic{}
		}
		tp.Questions = normalizeQuestions(tp.Questions)
		reindexSubTopics(tp.SubTopics)
		for j := range tp.SubTopics {
			tp.SubTopics[j].Questions = normalizeQuestions(tp.SubTopics[j].Questions)
		}
	}
}

func normalizeQuestions(qs []model.Question) []model.Question {
	if qs == nil {
		return []model.Question{}
	}
	for i := range qs {
		if qs[i].Tags == nil {
			qs[i].Tags = []string{}
		}
	}
	reindexQuestions(qs)
	return qs
}
