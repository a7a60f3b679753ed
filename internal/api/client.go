package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/abhisek/cardz/internal/cards"
)

const defaultTimeout = 15 * time.Second

// Client talks to the flashcard backend's REST API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListDecks fetches all decks.
func (c *Client) ListDecks(ctx context.Context) ([]Deck, error) {
	var decks []Deck
	if err := c.do(ctx, http.MethodGet, "/api/v1/decks", nil, &decks); err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	return decks, nil
}

// ListTopics fetches the topics of a deck.
func (c *Client) ListTopics(ctx context.Context, deckID string) ([]Topic, error) {
	var topics []Topic
	path := fmt.Sprintf("/api/v1/decks/%s/topics", url.PathEscape(deckID))
	if err := c.do(ctx, http.MethodGet, path, nil, &topics); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// ListCards fetches all cards of a topic in position order.
func (c *Client) ListCards(ctx context.Context, topicID string) ([]cards.Card, error) {
	var cs []cards.Card
	path := fmt.Sprintf("/api/v1/topics/%s/cards", url.PathEscape(topicID))
	if err := c.do(ctx, http.MethodGet, path, nil, &cs); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cs, nil
}

// GetCard fetches the authoritative content of a single card.
func (c *Client) GetCard(ctx context.Context, topicID string, position int) (cards.Card, error) {
	var card cards.Card
	path := fmt.Sprintf("/api/v1/topics/%s/cards/%d", url.PathEscape(topicID), position)
	if err := c.do(ctx, http.MethodGet, path, nil, &card); err != nil {
		return cards.Card{}, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

// CreateCards appends cards to a topic.
func (c *Client) CreateCards(ctx context.Context, topicID string, cs []cards.Card) error {
	path := fmt.Sprintf("/api/v1/topics/%s/cards", url.PathEscape(topicID))
	if err := c.do(ctx, http.MethodPost, path, cs, nil); err != nil {
		return fmt.Errorf("create cards: %w", err)
	}
	return nil
}

// UpdateCard replaces the card at (card.TopicID, card.Position).
func (c *Client) UpdateCard(ctx context.Context, card cards.Card) error {
	path := fmt.Sprintf("/api/v1/topics/%s/cards/%d", url.PathEscape(card.TopicID), card.Position)
	if err := c.do(ctx, http.MethodPut, path, card, nil); err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	return nil
}

// DeleteCard removes the card at (topicID, position).
func (c *Client) DeleteCard(ctx context.Context, topicID string, position int) error {
	path := fmt.Sprintf("/api/v1/topics/%s/cards/%d", url.PathEscape(topicID), position)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return nil
}

// DueBatch fetches the next page of due cards for a deck.
func (c *Client) DueBatch(ctx context.Context, deckID string, limit int) (BatchResponse, error) {
	var batch BatchResponse
	path := fmt.Sprintf("/api/v1/decks/%s/due?limit=%s", url.PathEscape(deckID), strconv.Itoa(limit))
	if err := c.do(ctx, http.MethodGet, path, nil, &batch); err != nil {
		return BatchResponse{}, fmt.Errorf("due batch: %w", err)
	}
	return batch, nil
}

// PracticeBatch fetches a page of practice cards for a deck, due or not.
func (c *Client) PracticeBatch(ctx context.Context, deckID string, limit int) (BatchResponse, error) {
	var batch BatchResponse
	path := fmt.Sprintf("/api/v1/decks/%s/practice?limit=%s", url.PathEscape(deckID), strconv.Itoa(limit))
	if err := c.do(ctx, http.MethodGet, path, nil, &batch); err != nil {
		return BatchResponse{}, fmt.Errorf("practice batch: %w", err)
	}
	return batch, nil
}

// DueCount fetches a deck's due-card count.
func (c *Client) DueCount(ctx context.Context, deckID string) (int, error) {
	var resp DueCountResponse
	path := fmt.Sprintf("/api/v1/decks/%s/due-count", url.PathEscape(deckID))
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return 0, fmt.Errorf("due count: %w", err)
	}
	return resp.DueCount, nil
}

// SubmitScore posts a recall grade for the card at (topicID, position). The
// endpoint applies the grade to the card's schedule on every call, so callers
// must not repeat it for the same card.
func (c *Client) SubmitScore(ctx context.Context, topicID string, position int, grade string) (ScoreResponse, error) {
	var resp ScoreResponse
	path := fmt.Sprintf("/api/v1/topics/%s/cards/%d/score", url.PathEscape(topicID), position)
	if err := c.do(ctx, http.MethodPost, path, ScoreRequest{Grade: grade}, &resp); err != nil {
		return ScoreResponse{}, fmt.Errorf("submit score: %w", err)
	}
	return resp, nil
}

// ServerInfo fetches the backend's version metadata.
func (c *Client) ServerInfo(ctx context.Context) (ServerInfo, error) {
	var info ServerInfo
	if err := c.do(ctx, http.MethodGet, "/api/v1/server-info", nil, &info); err != nil {
		return ServerInfo{}, fmt.Errorf("server info: %w", err)
	}
	return info, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		apiErr.Message = payload.Error
	}
	return apiErr
}
