package dnd

import (
	"errors"
	"fmt"

	"sheet-cli/internal/model"
)

var (
	// ErrCrossZone rejects drops whose destination is a different sibling group.
	// Reordering never changes an item's parent.
	ErrCrossZone = errors.New("cross-zone drop not supported")
	// ErrKindMismatch rejects a draggable dropped from a zone that does not hold its kind.
	ErrKindMismatch = errors.New("drag kind does not match zone")
	// ErrNoOwner means no topic contains the sub-topic named by the zone.
	ErrNoOwner = errors.New("sub-topic has no owning topic")
	// ErrStaleSource means the dragged id is no longer at the source index.
	ErrStaleSource = errors.New("dragged item is not at the source index")
)

// Drop is a completed drag gesture. Dest is nil when the item was released outside
// any zone.
type Drop struct {
	Kind   Kind
	Source Location
	Dest   *Location
	// DraggedID is optional; when set it must match the item at Source.Index.
	DraggedID string
}

type OpKind int

const (
	OpNone OpKind = iota
	OpReorderTopics
	OpReorderSubTopics
	OpReorderQuestions
)

func (k OpKind) String() string {
	switch k {
	case OpReorderTopics:
		return "reorderTopics"
	case OpReorderSubTopics:
		return "reorderSubTopics"
	case OpReorderQuestions:
		return "reorderQuestions"
	default:
		return "none"
	}
}

// Op is one Tree Store reorder call. SubTopicID is empty for a topic's direct questions.
type Op struct {
	Kind       OpKind `json:"op"`
	TopicID    string `json:"topicId,omitempty"`
	SubTopicID string `json:"subTopicId,omitempty"`
	From       int    `json:"from"`
	To         int    `json:"to"`
}

func (o Op) String() string {
	switch o.Kind {
	case OpReorderTopics:
		return fmt.Sprintf("reorderTopics(%d, %d)", o.From, o.To)
	case OpReorderSubTopics:
		return fmt.Sprintf("reorderSubTopics(%q, %d, %d)", o.TopicID, o.From, o.To)
	case OpReorderQuestions:
		return fmt.Sprintf("reorderQuestions(%q, %q, %d, %d)", o.TopicID, o.SubTopicID, o.From, o.To)
	default:
		return "none"
	}
}

// Resolve decides which reorder a drop means against tree. A drop with no destination
// or an unchanged position resolves to OpNone with no error.
func Resolve(tree model.Tree, d Drop) (Op, error) {
	if d.Dest == nil {
		return Op{Kind: OpNone}, nil
	}
	src, dst := d.Source, *d.Dest
	if src.Zone == dst.Zone && src.Index == dst.Index {
		return Op{Kind: OpNone}, nil
	}
	if src.Zone != dst.Zone {
		return Op{Kind: OpNone}, fmt.Errorf("%w: %s -> %s", ErrCrossZone, src.Zone.ID(), dst.Zone.ID())
	}
	if src.Zone.Accepts() != d.Kind {
		return Op{Kind: OpNone}, fmt.Errorf("%w: %s in %s", ErrKindMismatch, d.Kind, src.Zone.ID())
	}

	var op Op
	switch d.Kind {
	case KindTopic:
		op = Op{Kind: OpReorderTopics}
	case KindSubTopic:
		op = Op{Kind: OpReorderSubTopics, TopicID: src.Zone.TopicID}
	case KindQuestion:
		switch src.Zone.Kind {
		case ZoneTopicQuestions:
			op = Op{Kind: OpReorderQuestions, TopicID: src.Zone.TopicID}
		case ZoneSubTopicQuestions:
			owner, ok := tree.OwnerOfSubTopic(src.Zone.SubTopicID)
			if !ok {
				return Op{Kind: OpNone}, fmt.Errorf("%w: %s", ErrNoOwner, src.Zone.SubTopicID)
			}
			op = Op{Kind: OpReorderQuestions, TopicID: owner.ID, SubTopicID: src.Zone.SubTopicID}
		}
	}
	op.From = src.Index
	op.To = dst.Index

	if d.DraggedID != "" {
		if id, ok := idAt(tree, op, src.Index); !ok || id != d.DraggedID {
			return Op{Kind: OpNone}, fmt.Errorf("%w: want %s at %s", ErrStaleSource, d.DraggedID, src.String())
		}
	}
	return op, nil
}

// idAt returns the id at index within the sibling group op addresses.
func idAt(tree model.Tree, op Op, index int) (string, bool) {
	switch op.Kind {
	case OpReorderTopics:
		if index >= 0 && index < len(tree) {
			return tree[index].ID, true
		}
	case OpReorderSubTopics:
		tp, ok := tree.FindTopic(op.TopicID)
		if ok && index >= 0 && index < len(tp.SubTopics) {
			return tp.SubTopics[index].ID, true
		}
	case OpReorderQuestions:
		qs, ok := tree.QuestionGroup(op.TopicID, op.SubTopicID)
		if ok && index >= 0 && index < len(qs) {
			return qs[index].ID, true
		}
	}
	return "", false
}

// Reorderer is the slice of the Tree Store a drop can touch.
type Reorderer interface {
	ReorderTopics(from, to int) model.Tree
	ReorderSubTopics(topicID string, from, to int) model.Tree
	ReorderQuestions(topicID, subTopicID string, from, to int) model.Tree
}

// Apply issues op against r. ok is false for OpNone, in which case tree is nil.
func Apply(r Reorderer, op Op) (tree model.Tree, ok bool) {
	switch op.Kind {
	case OpReorderTopics:
		return r.ReorderTopics(op.From, op.To), true
	case OpReorderSubTopics:
		return r.ReorderSubTopics(op.TopicID, op.From, op.To), true
	case OpReorderQuestions:
		return r.ReorderQuestions(op.TopicID, op.SubTopicID, op.From, op.To), true
	default:
		return nil, false
	}
}

// Store is what a Resolver needs: read access for resolution plus the reorder calls.
type Store interface {
	Reorderer
	Snapshot() model.Tree
}

// Resolver binds Resolve and Apply to one store.
type Resolver struct {
	Store Store
}

func NewResolver(s Store) *Resolver { return &Resolver{Store: s} }

// Drop resolves d against the current snapshot and applies it. The returned tree is
// the post-drop snapshot, or the unchanged one when the drop is a no-op or rejected.
func (r *Resolver) Drop(d Drop) (model.Tree, Op, error) {
	cur := r.Store.Snapshot()
	op, err := Resolve(cur, d)
	if err != nil {
		return cur, op, err
	}
	next, ok := Apply(r.Store, op)
	if !ok {
		return cur, op, nil
	}
	return next, op, nil
}
