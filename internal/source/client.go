package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"sheet-cli/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var ErrFetch = errors.New("fetch sheet")

// Fetcher yields an initial snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (model.Tree, error)
}

// Client fetches sheets from the public endpoint. The slug is appended to BaseURL.
type Client struct {
	BaseURL string
	Slug    string
	http    *resty.Client
}

func NewClient(baseURL, slug string) *Client {
	return &Client{
		BaseURL: baseURL,
		Slug:    slug,
		http: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("Accept", "application/json"),
	}
}

func (c *Client) url() string {
	base := strings.TrimSpace(c.BaseURL)
	if c.Slug == "" {
		return base
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + c.Slug
}

func (c *Client) Fetch(ctx context.Context) (model.Tree, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.url())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetch, c.url(), resp.StatusCode())
	}
	var out Response
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFetch, err)
	}
	return MapSheet(out.Data), nil
}

// File reads a payload saved from the endpoint, for offline use.
type File struct {
	Path string
}

func (f File) Fetch(context.Context) (model.Tree, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer fh.Close()
	return ReadSheet(fh)
}

// ReadSheet decodes either the endpoint envelope or a bare payload.
func ReadSheet(r io.Reader) (model.Tree, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	var env Response
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFetch, err)
	}
	if env.Data.Sheet.ID == "" && len(env.Data.Questions) == 0 {
		var p Payload
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, fmt.Errorf("%w: decode: %v", ErrFetch, err)
		}
		env.Data = p
	}
	return MapSheet(env.Data), nil
}

// LoadOrEmpty runs f once. Any failure is logged and yields an empty tree, so a
// broken source never blocks the editor.
func LoadOrEmpty(ctx context.Context, f Fetcher, log *logrus.Logger) model.Tree {
	t, err := f.Fetch(ctx)
	if err != nil {
		if log != nil {
			log.WithError(err).Error("loading sheet failed; starting empty")
		}
		return model.Tree{}
	}
	return t
}
