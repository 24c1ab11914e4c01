package youtube

import (
	"context"
	"errors"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var (
	// ErrNotLive is returned when the video exists but has no active live chat.
	ErrNotLive = errors.New("video has no active live chat")
	// ErrVideoNotFound is returned when the video ID does not resolve.
	ErrVideoNotFound = errors.New("video not found")
)

// ChatMessage is a single live chat message, reduced to the fields the
// reward pipeline needs.
type ChatMessage struct {
	ChannelID   string
	DisplayName string
	Text        string
	PublishedAt time.Time
}

// ChatPage is one page of live chat messages plus paging metadata.
type ChatPage struct {
	Messages      []ChatMessage
	NextPageToken string
	// PollInterval is how long the API asks us to wait before the next fetch.
	PollInterval time.Duration
}

// Client wraps the YouTube Data API v3 for live chat polling.
type Client struct {
	svc *youtube.Service
}

// NewClient builds a client authenticated with an API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// LiveChatID resolves the active live chat ID for a video.
func (c *Client) LiveChatID(ctx context.Context, videoID string) (string, error) {
	resp, err := c.svc.Videos.List([]string{"liveStreamingDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", ErrVideoNotFound
	}
	details := resp.Items[0].LiveStreamingDetails
	if details == nil || details.ActiveLiveChatId == "" {
		return "", ErrNotLive
	}
	return details.ActiveLiveChatId, nil
}

// ChatMessages fetches one page of live chat messages. Pass an empty
// pageToken for the first fetch and the returned NextPageToken afterwards.
func (c *Client) ChatMessages(ctx context.Context, liveChatID, pageToken string) (*ChatPage, error) {
	call := c.svc.LiveChatMessages.List(liveChatID, []string{"snippet", "authorDetails"}).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, err
	}
	page := &ChatPage{
		NextPageToken: resp.NextPageToken,
		PollInterval:  time.Duration(resp.PollingIntervalMillis) * time.Millisecond,
	}
	for _, item := range resp.Items {
		if item.Snippet == nil || item.AuthorDetails == nil {
			continue
		}
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			publishedAt = time.Now()
		}
		page.Messages = append(page.Messages, ChatMessage{
			ChannelID:   item.AuthorDetails.ChannelId,
			DisplayName: item.AuthorDetails.DisplayName,
			Text:        item.Snippet.DisplayMessage,
			PublishedAt: publishedAt,
		})
	}
	return page, nil
}
