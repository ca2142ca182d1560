package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sheet-cli/internal/model"
	"sheet-cli/internal/store"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var ErrSave = errors.New("save sheet")

// Saver accepts a full snapshot. store.Store satisfies it.
type Saver interface {
	Save(ctx context.Context, t model.Tree) error
}

// LogSaver records the snapshot summary and reports success.
type LogSaver struct {
	Log *logrus.Logger
}

func (s LogSaver) Save(_ context.Context, t model.Tree) error {
	if s.Log == nil {
		return nil
	}
	st := t.Stats()
	s.Log.WithFields(logrus.Fields{
		"topics":    len(t),
		"questions": st.Total,
		"solved":    st.Solved,
	}).Info("saving sheet")
	return nil
}

// HTTPSaver POSTs the snapshot as JSON.
type HTTPSaver struct {
	URL  string
	http *resty.Client
}

func NewHTTPSaver(url string) *HTTPSaver {
	return &HTTPSaver{URL: url, http: resty.New().SetTimeout(30 * time.Second)}
}

func (s *HTTPSaver) Save(ctx context.Context, t model.Tree) error {
	if strings.TrimSpace(s.URL) == "" {
		return fmt.Errorf("%w: no save url configured", ErrSave)
	}
	if t == nil {
		t = model.Tree{}
	}
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(t).
		Post(s.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: %s returned %d", ErrSave, s.URL, resp.StatusCode())
	}
	return nil
}

// NewSaver picks a saver for mode. ws backs the sqlite mode.
func NewSaver(mode, url string, ws store.Store, log *logrus.Logger) (Saver, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", store.SaveModeLog:
		return LogSaver{Log: log}, nil
	case store.SaveModeHTTP:
		return NewHTTPSaver(url), nil
	case store.SaveModeSQLite:
		return ws, nil
	default:
		return nil, fmt.Errorf("unknown save mode %q (want log|http|sqlite)", mode)
	}
}
