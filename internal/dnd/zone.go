// Package dnd translates completed drag-and-drop gestures into Tree Store reorder calls.
//
// Drop zones are a small tagged type built by the presentation layer. The legacy
// string encoding ("topics", "topic-<id>-subtopics", "topic-<id>-questions",
// "subtopic-<id>") is still accepted by ParseZoneID and produced by Zone.ID.
package dnd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is what is being dragged.
type Kind int

const (
	KindTopic Kind = iota
	KindSubTopic
	KindQuestion
)

func (k Kind) String() string {
	switch k {
	case KindTopic:
		return "topic"
	case KindSubTopic:
		return "subtopic"
	case KindQuestion:
		return "question"
	default:
		return "unknown"
	}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "topic":
		return KindTopic, nil
	case "subtopic", "sub-topic":
		return KindSubTopic, nil
	case "question":
		return KindQuestion, nil
	default:
		return 0, fmt.Errorf("unknown drag kind %q (want topic|subtopic|question)", s)
	}
}

type ZoneKind int

const (
	ZoneTopics ZoneKind = iota
	ZoneTopicSubTopics
	ZoneTopicQuestions
	ZoneSubTopicQuestions
)

// Zone identifies one sibling group a draggable can be dropped into.
type Zone struct {
	Kind       ZoneKind
	TopicID    string
	SubTopicID string
}

func Topics() Zone { return Zone{Kind: ZoneTopics} }

func TopicSubTopics(topicID string) Zone {
	return Zone{Kind: ZoneTopicSubTopics, TopicID: topicID}
}

func TopicQuestions(topicID string) Zone {
	return Zone{Kind: ZoneTopicQuestions, TopicID: topicID}
}

// SubTopicQuestions carries no topic id; the owner is found by scanning the tree.
func SubTopicQuestions(subTopicID string) Zone {
	return Zone{Kind: ZoneSubTopicQuestions, SubTopicID: subTopicID}
}

// Accepts reports the draggable kind this zone holds.
func (z Zone) Accepts() Kind {
	switch z.Kind {
	case ZoneTopics:
		return KindTopic
	case ZoneTopicSubTopics:
		return KindSubTopic
	default:
		return KindQuestion
	}
}

// ID renders the legacy zone-id string.
func (z Zone) ID() string {
	switch z.Kind {
	case ZoneTopics:
		return "topics"
	case ZoneTopicSubTopics:
		return "topic-" + z.TopicID + "-subtopics"
	case ZoneTopicQuestions:
		return "topic-" + z.TopicID + "-questions"
	case ZoneSubTopicQuestions:
		return "subtopic-" + z.SubTopicID
	default:
		return ""
	}
}

func (z Zone) String() string { return z.ID() }

var ErrBadZoneID = errors.New("bad zone id")

// ParseZoneID decodes a legacy zone id. Ids are matched by prefix and suffix, so topic
// and sub-topic ids may themselves contain '-' (UUIDs do).
func ParseZoneID(s string) (Zone, error) {
	s = strings.TrimSpace(s)
	if s == "topics" {
		return Topics(), nil
	}
	if rest, ok := strings.CutPrefix(s, "subtopic-"); ok {
		if rest == "" {
			return Zone{}, fmt.Errorf("%w: %q has no sub-topic id", ErrBadZoneID, s)
		}
		return SubTopicQuestions(rest), nil
	}
	if rest, ok := strings.CutPrefix(s, "topic-"); ok {
		if id, ok := strings.CutSuffix(rest, "-questions"); ok && id != "" {
			return TopicQuestions(id), nil
		}
		if id, ok := strings.CutSuffix(rest, "-subtopics"); ok && id != "" {
			return TopicSubTopics(id), nil
		}
	}
	return Zone{}, fmt.Errorf("%w: %q", ErrBadZoneID, s)
}

// Location is a position inside a zone.
type Location struct {
	Zone  Zone
	Index int
}

// ParseLocation decodes "<zone-id>:<index>".
func ParseLocation(s string) (Location, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return Location{}, fmt.Errorf("%w: %q is not <zone>:<index>", ErrBadZoneID, s)
	}
	z, err := ParseZoneID(s[:i])
	if err != nil {
		return Location{}, err
	}
	idx, err := strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return Location{}, fmt.Errorf("%w: bad index in %q", ErrBadZoneID, s)
	}
	return Location{Zone: z, Index: idx}, nil
}

func (l Location) String() string { return l.Zone.ID() + ":" + strconv.Itoa(l.Index) }
