package worker

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"poinku/internal/models"
	"poinku/pkg/youtube"

	"gorm.io/gorm"
)

// Status strings reported over the worker control API.
const (
	StatusOnline  = "ONLINE"
	StatusOffline = "OFFLINE"
)

// ChatSource fetches live chat pages. Satisfied by *youtube.Client.
type ChatSource interface {
	LiveChatID(ctx context.Context, videoID string) (string, error)
	ChatMessages(ctx context.Context, liveChatID, pageToken string) (*youtube.ChatPage, error)
}

// Awarder settles chat rewards for a single message.
type Awarder interface {
	Award(channelID string, messageAt time.Time) ([]models.LedgerEntry, error)
}

// StreamSource yields the livestream the worker should poll.
type StreamSource interface {
	Active() (*models.Livestream, error)
}

// Manager runs the live chat polling loop as a single in-process goroutine.
// Start and Stop are idempotent; at most one loop runs at a time.
type Manager struct {
	source  ChatSource
	streams StreamSource
	awarder Awarder

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewManager(source ChatSource, streams StreamSource, awarder Awarder) *Manager {
	return &Manager{source: source, streams: streams, awarder: awarder}
}

// Start launches the polling loop. Returns false if it was already running
// or no chat source is configured.
func (m *Manager) Start() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil || m.source == nil {
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
	return true
}

// Stop cancels the loop and waits for it to exit. Returns false if it was
// not running.
func (m *Manager) Stop() bool {
	m.mu.Lock()
	if m.cancel == nil {
		m.mu.Unlock()
		return false
	}
	cancel, done := m.cancel, m.done
	m.cancel = nil
	m.done = nil
	m.mu.Unlock()

	cancel()
	<-done
	return true
}

// Status reports ONLINE while the loop is running.
func (m *Manager) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return StatusOnline
	}
	return StatusOffline
}

// fallbackInterval is used when the API does not suggest a polling delay,
// and while waiting for a stream to become active.
const fallbackInterval = 10 * time.Second

func (m *Manager) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	var (
		streamID   uint
		liveChatID string
		pageToken  string
		started    = time.Now()
	)

	for {
		interval := fallbackInterval

		stream, err := m.streams.Active()
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			liveChatID = ""
		case err != nil:
			log.Printf("worker: load active stream: %v", err)
		default:
			if stream.ID != streamID {
				// New stream: resolve its chat and reset paging. Messages
				// sent before the worker started are skipped on replay.
				streamID = stream.ID
				pageToken = ""
				started = time.Now()
				liveChatID = stream.LiveChatID
				if liveChatID == "" {
					liveChatID, err = m.source.LiveChatID(ctx, stream.VideoID)
					if err != nil {
						log.Printf("worker: resolve live chat for %s: %v", stream.VideoID, err)
						streamID = 0
					}
				}
			}
			if liveChatID != "" {
				if next := m.poll(ctx, liveChatID, pageToken, started); next != nil {
					pageToken = next.NextPageToken
					if next.PollInterval > 0 {
						interval = next.PollInterval
					}
				}
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

func (m *Manager) poll(ctx context.Context, liveChatID, pageToken string, since time.Time) *youtube.ChatPage {
	page, err := m.source.ChatMessages(ctx, liveChatID, pageToken)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("worker: fetch chat page: %v", err)
		}
		return nil
	}
	for _, msg := range page.Messages {
		if msg.PublishedAt.Before(since) {
			continue
		}
		if _, err := m.awarder.Award(msg.ChannelID, msg.PublishedAt); err != nil {
			log.Printf("worker: award chat bonus for %s: %v", msg.ChannelID, err)
		}
	}
	return page
}
