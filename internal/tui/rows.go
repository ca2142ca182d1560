package tui

import (
	"sheet-cli/internal/dnd"
	"sheet-cli/internal/model"
)

type rowKind int

const (
	rowTopic rowKind = iota
	rowSubTopic
	rowQuestion
)

// sheetRow is one visible line of the flattened tree.
type sheetRow struct {
	kind  rowKind
	depth int

	topicID    string
	subTopicID string
	id         string

	// index is the position inside the row's sibling group; siblings is the group length.
	index    int
	siblings int

	title       string
	description string
	stats       model.Stats
	question    model.Question

	hasChildren bool
	collapsed   bool
}

func topicKey(topicID string) string                { return "t:" + topicID }
func subTopicKey(topicID, subTopicID string) string { return "s:" + topicID + "/" + subTopicID }

// flattenSheet walks the tree in display order: each topic, then its direct
// questions, then its sub-topics with their questions. Collapsed parents hide
// their children.
func flattenSheet(t model.Tree, collapsed map[string]bool) []sheetRow {
	var out []sheetRow
	for ti, tp := range t {
		tc := collapsed[topicKey(tp.ID)]
		out = append(out, sheetRow{
			kind:        rowTopic,
			topicID:     tp.ID,
			id:          tp.ID,
			index:       ti,
			siblings:    len(t),
			title:       tp.Title,
			description: tp.Description,
			stats:       tp.Stats(),
			hasChildren: len(tp.Questions)+len(tp.SubTopics) > 0,
			collapsed:   tc,
		})
		if tc {
			continue
		}
		for qi, q := range tp.Questions {
			out = append(out, questionRow(tp.ID, "", q, qi, len(tp.Questions), 1))
		}
		for si, st := range tp.SubTopics {
			sc := collapsed[subTopicKey(tp.ID, st.ID)]
			out = append(out, sheetRow{
				kind:        rowSubTopic,
				depth:       1,
				topicID:     tp.ID,
				subTopicID:  st.ID,
				id:          st.ID,
				index:       si,
				siblings:    len(tp.SubTopics),
				title:       st.Title,
				description: st.Description,
				stats:       st.Stats(),
				hasChildren: len(st.Questions) > 0,
				collapsed:   sc,
			})
			if sc {
				continue
			}
			for qi, q := range st.Questions {
				out = append(out, questionRow(tp.ID, st.ID, q, qi, len(st.Questions), 2))
			}
		}
	}
	return out
}

func questionRow(topicID, subTopicID string, q model.Question, index, siblings, depth int) sheetRow {
	return sheetRow{
		kind:        rowQuestion,
		depth:       depth,
		topicID:     topicID,
		subTopicID:  subTopicID,
		id:          q.ID,
		index:       index,
		siblings:    siblings,
		title:       q.Title,
		description: q.Description,
		question:    q,
	}
}

// zone is the drop zone holding the row's sibling group.
func (r sheetRow) zone() dnd.Zone {
	switch r.kind {
	case rowTopic:
		return dnd.Topics()
	case rowSubTopic:
		return dnd.TopicSubTopics(r.topicID)
	default:
		if r.subTopicID == "" {
			return dnd.TopicQuestions(r.topicID)
		}
		return dnd.SubTopicQuestions(r.subTopicID)
	}
}

func (r sheetRow) dragKind() dnd.Kind {
	switch r.kind {
	case rowTopic:
		return dnd.KindTopic
	case rowSubTopic:
		return dnd.KindSubTopic
	default:
		return dnd.KindQuestion
	}
}

// sameItem reports whether r and o address the same entity.
func (r sheetRow) sameItem(o sheetRow) bool {
	return r.kind == o.kind && r.topicID == o.topicID && r.subTopicID == o.subTopicID && r.id == o.id
}
