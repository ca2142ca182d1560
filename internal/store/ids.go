package store

import (
	"crypto/rand"
	"encoding/base32"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDSource mints ids for new topics, sub-topics and questions.
type IDSource interface {
	NewID() string
}

type IDFunc func() string

func (f IDFunc) NewID() string { return f() }

// ClockIDs mints UUIDv7 ids: the leading 48 bits are a millisecond timestamp and the
// rest is monotonic within the process, so ids sort by creation time.
type ClockIDs struct{}

func (ClockIDs) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Entropy failure; fall back to a random suffix rather than failing the add.
		s, rerr := newRandomID("id")
		if rerr != nil {
			return uuid.NewString()
		}
		return s
	}
	return id.String()
}

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// SequenceIDs mints prefix-1, prefix-2, ... and is meant for tests and fixtures.
type SequenceIDs struct {
	Prefix string
	n      int
}

func (s *SequenceIDs) NewID() string {
	s.n++
	p := s.Prefix
	if p == "" {
		p = "id"
	}
	return p + "-" + strconv.Itoa(s.n)
}
