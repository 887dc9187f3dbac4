package source

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/ShayCichocki/trellis/pkg/models"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 32 << 20

// RemoteConfig holds the settings for the REST-backed source.
type RemoteConfig struct {
	// BaseURL is the API root, e.g. https://api.trello.com/1.
	BaseURL string
	// Key is the API key sent with every request.
	Key string
	// Token is the API token sent with every request.
	Token string
	// Client is the HTTP client to use. http.DefaultClient if nil.
	Client *http.Client
}

// Remote reads boards from a Trello-style REST API.
type Remote struct {
	baseURL string
	key     string
	token   string
	client  *http.Client
}

var _ Source = (*Remote)(nil)

// NewRemote creates a Remote source.
func NewRemote(cfg RemoteConfig) (*Remote, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote source: base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("remote source: invalid base url: %w", err)
	}

	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}

	return &Remote{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		key:     cfg.Key,
		token:   cfg.Token,
		client:  client,
	}, nil
}

// ListBoards implements Source.
func (r *Remote) ListBoards(ctx context.Context) ([]models.Board, error) {
	body, target, err := r.get(ctx, OpListBoards, "members/me/boards", false)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Board](OpListBoards, target, body)
}

// ListColumns implements Source. An unknown board id yields no columns.
func (r *Remote) ListColumns(ctx context.Context, boardID string) ([]models.Column, error) {
	body, target, err := r.get(ctx, OpListColumns, "boards/"+url.PathEscape(boardID)+"/lists", true)
	if err != nil || body == nil {
		return nil, err
	}
	return decodeList[models.Column](OpListColumns, target, body)
}

// ListCards implements Source. An unknown column id yields no cards.
func (r *Remote) ListCards(ctx context.Context, columnID string) ([]models.Card, error) {
	body, target, err := r.get(ctx, OpListCards, "lists/"+url.PathEscape(columnID)+"/cards", true)
	if err != nil || body == nil {
		return nil, err
	}
	return decodeList[models.Card](OpListCards, target, body)
}

// get performs GET {base}/{path}?key=...&token=... and returns the body
// together with the redacted URL used for errors and logs. When scoped is
// set, a 400 or 404 answer means the id is unknown and a nil body with a
// nil error is returned.
func (r *Remote) get(ctx context.Context, op, path string, scoped bool) ([]byte, string, error) {
	target := r.baseURL + "/" + path

	query := url.Values{}
	query.Set("key", r.key)
	query.Set("token", r.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target+"?"+query.Encode(), nil)
	if err != nil {
		return nil, target, unavailable(op, target, err)
	}
	req.Header.Set("Accept", "application/json")

	log.Printf("[remote] GET %s", target)
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, target, unavailable(op, target, redactErr(err))
	}
	defer resp.Body.Close()

	if scoped && (resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest) {
		log.Printf("[remote] %s answered %d, treating as empty", target, resp.StatusCode)
		return nil, target, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, target, unavailable(op, target, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, target, unavailable(op, target, fmt.Errorf("reading body: %w", err))
	}
	return body, target, nil
}

// redactErr strips the query string (and with it the credentials) from the
// URL that net/http embeds in transport errors.
func redactErr(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		if i := strings.IndexByte(urlErr.URL, '?'); i >= 0 {
			return &url.Error{Op: urlErr.Op, URL: urlErr.URL[:i], Err: urlErr.Err}
		}
	}
	return err
}
