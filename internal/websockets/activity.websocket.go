package websockets

import (
	"context"
	"strings"
	"sync"
	"time"

	"inventory/internal/events"
	"inventory/internal/types"
)

// debouncer runs only the last function triggered within delay.
type debouncer struct {
	delay time.Duration
	timer *time.Timer
	mutex sync.Mutex
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) Trigger(fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

func (d *debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func filterFromData(data map[string]any) types.ActivityFilter {
	filter := types.ActivityFilter{}

	if value, ok := data["type"].(string); ok {
		filter.Type = strings.TrimSpace(value)
	}
	if value, ok := data["role"].(string); ok {
		filter.Role = strings.TrimSpace(value)
	}
	if value, ok := data["search"].(string); ok {
		filter.Search = value
	}
	if value, ok := data["limit"].(float64); ok {
		filter.Limit = int(value)
	}
	if value, ok := data["offset"].(float64); ok {
		filter.Offset = int(value)
	}

	return filter
}

// handleActivityFilter applies a new filter. Type, role and paging changes query right
// away; a search edit is applied after the debounce delay.
func (c *Client) handleActivityFilter(message Message) {
	filter := filterFromData(message.Data)
	search := filter.Search

	c.mutex.Lock()
	current := c.filter
	searchChanged := search != current.Search
	filter.Search = current.Search
	otherChanged := filter != current
	c.filter = filter
	c.mutex.Unlock()

	if !searchChanged {
		c.search.Stop()
		c.Manager.pushActivity(c)
		return
	}

	if otherChanged {
		c.Manager.pushActivity(c)
	}

	c.search.Trigger(func() {
		c.mutex.Lock()
		c.filter.Search = search
		c.mutex.Unlock()
		c.Manager.pushActivity(c)
	})
}

func (m *Manager) pushActivity(client *Client) {
	log := m.log.Function("pushActivity")

	client.mutex.Lock()
	filter := client.filter
	client.mutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), WRITE_TIMEOUT)
	defer cancel()

	page, err := m.activity.Query(ctx, filter)
	if err != nil {
		log.Er("failed to query activity", err, "clientID", client.ID)
		client.deliver(newMessage(events.ERROR, string(events.ACTIVITY_CHANNEL), "query_failed", map[string]any{
			"reason": "Failed to load activity",
		}))
		return
	}

	client.deliver(newMessage(events.ACTIVITY_LOGS, string(events.ACTIVITY_CHANNEL), "results", map[string]any{
		"entries": page.Entries,
		"total":   page.Total,
		"filter":  filter,
	}))
}
