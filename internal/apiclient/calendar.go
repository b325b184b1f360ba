package apiclient

import (
	"context"
	"net/url"
	"time"
)

// CalendarEventInput is the payload for creating or updating an event.
type CalendarEventInput struct {
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	CaseID   string    `json:"case_id,omitempty"`
	Location string    `json:"location,omitempty"`
}

func (c *Client) ListCalendarEvents(ctx context.Context, from, to time.Time) ([]CalendarEvent, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.Format(time.RFC3339))
	}
	if !to.IsZero() {
		q.Set("to", to.Format(time.RFC3339))
	}
	path := "/api/calendar-events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []CalendarEvent
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCalendarEvent(ctx context.Context, in CalendarEventInput) (*CalendarEvent, error) {
	var out CalendarEvent
	if err := c.post(ctx, "/api/calendar-events", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCalendarEvent(ctx context.Context, id string, in CalendarEventInput) (*CalendarEvent, error) {
	var out CalendarEvent
	if err := c.put(ctx, "/api/calendar-events/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCalendarEvent(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/calendar-events/"+url.PathEscape(id))
}
