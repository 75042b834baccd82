package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gtuk/discordwebhook"

	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// subscriberID is the hub subscription used by the relay
const subscriberID = "discord-relay"

// maxContentLength is the Discord message content limit
const maxContentLength = 2000

// SendFunc delivers one webhook message
type SendFunc func(url string, message discordwebhook.Message) error

// DiscordNotifier relays moderation hub events to a Discord webhook
type DiscordNotifier struct {
	hub      *service.EventHub
	url      string
	username string
	send     SendFunc

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// DiscordNotifierConfig holds configuration for the relay
type DiscordNotifierConfig struct {
	Hub        *service.EventHub
	WebhookURL string
	Username   string
	// Send overrides delivery; defaults to discordwebhook.SendMessage
	Send SendFunc
}

// NewDiscordNotifier creates a relay. It does nothing when WebhookURL is empty.
func NewDiscordNotifier(cfg DiscordNotifierConfig) *DiscordNotifier {
	send := cfg.Send
	if send == nil {
		send = discordwebhook.SendMessage
	}
	return &DiscordNotifier{
		hub:      cfg.Hub,
		url:      cfg.WebhookURL,
		username: cfg.Username,
		send:     send,
	}
}

// Enabled reports whether the relay has somewhere to post
func (n *DiscordNotifier) Enabled() bool {
	return n.url != "" && n.hub != nil
}

// Start subscribes to the hub and relays events until Stop or ctx ends
func (n *DiscordNotifier) Start(ctx context.Context) {
	if !n.Enabled() {
		slog.Info("discord relay disabled")
		return
	}

	n.mu.Lock()
	if n.running {
		n.mu.Unlock()
		return
	}
	n.running = true
	ctx, n.cancel = context.WithCancel(ctx)
	n.mu.Unlock()

	sub := n.hub.Subscribe(subscriberID)
	n.wg.Add(1)
	go n.run(ctx, sub)
	slog.Info("discord relay started")
}

// Stop unsubscribes and waits for the relay goroutine
func (n *DiscordNotifier) Stop() {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return
	}
	n.running = false
	n.cancel()
	n.mu.Unlock()

	n.wg.Wait()
	slog.Info("discord relay stopped")
}

func (n *DiscordNotifier) run(ctx context.Context, sub *service.Subscriber) {
	defer n.wg.Done()
	defer n.hub.Unsubscribe(sub.ID)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case event, ok := <-sub.Events:
			if !ok {
				return
			}
			n.relay(event)
		}
	}
}

// relay posts one event. Delivery errors are logged and dropped.
func (n *DiscordNotifier) relay(event *service.HubEvent) {
	content, ok := Describe(event)
	if !ok {
		return
	}
	message := discordwebhook.Message{Content: &content}
	if n.username != "" {
		username := n.username
		message.Username = &username
	}
	if err := n.send(n.url, message); err != nil {
		slog.Warn("discord relay send failed",
			slog.String("event", string(event.Type)),
			slog.String("error", err.Error()),
		)
	}
}

// Describe renders a hub event as a short chat line. Heartbeats and
// unknown events report false.
func Describe(event *service.HubEvent) (string, bool) {
	if event == nil {
		return "", false
	}

	var content string
	switch event.Type {
	case service.HubReportFiled:
		r, ok := event.Data.(*model.Report)
		if !ok {
			return "", false
		}
		content = fmt.Sprintf("New %s report: **%s**\n%s", r.Type, r.Title, r.Description)
	case service.HubContactFiled:
		c, ok := event.Data.(*model.ContactMessage)
		if !ok {
			return "", false
		}
		content = fmt.Sprintf("New contact message (%s): **%s**", c.Category, c.Subject)
	case service.HubMediaSubmitted:
		m, ok := event.Data.(*model.MediaItem)
		if !ok {
			return "", false
		}
		content = fmt.Sprintf("Media awaiting review: **%s** by %s\n%s", m.Title, m.CreditName, m.URL)
	case service.HubMediaApproved, service.HubMediaRejected:
		m, ok := event.Data.(*model.MediaItem)
		if !ok {
			return "", false
		}
		content = fmt.Sprintf("Media %s: **%s**", m.Status, m.Title)
	case service.HubUserKicked:
		k, ok := event.Data.(*model.KickRecord)
		if !ok {
			return "", false
		}
		content = fmt.Sprintf("Kicked %s (%s)", k.Name, k.Email) + reasonSuffix(k.Reason)
	case service.HubUserBanned, service.HubUserUnbanned, service.HubUserTempbanned:
		data, ok := event.Data.(map[string]interface{})
		if !ok {
			return "", false
		}
		name, _ := data["name"].(string)
		reason, _ := data["reason"].(string)
		switch event.Type {
		case service.HubUserBanned:
			content = "Banned " + name + reasonSuffix(reason)
		case service.HubUserUnbanned:
			content = "Unbanned " + name
		default:
			content = "Temporarily banned " + name + reasonSuffix(reason)
		}
	default:
		return "", false
	}

	if len(content) > maxContentLength {
		content = content[:maxContentLength-3] + "..."
	}
	return content, true
}

func reasonSuffix(reason string) string {
	if reason == "" {
		return ""
	}
	return ": " + reason
}
