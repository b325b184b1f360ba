package apiclient

import "context"

func (c *Client) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	var out DashboardSummary
	if err := c.get(ctx, "/api/dashboard/summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDashboardUpcoming(ctx context.Context) ([]CalendarEvent, error) {
	var out []CalendarEvent
	if err := c.get(ctx, "/api/dashboard/upcoming", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDashboardActivity(ctx context.Context) ([]ActivityEntry, error) {
	var out []ActivityEntry
	if err := c.get(ctx, "/api/dashboard/activity", &out); err != nil {
		return nil, err
	}
	return out, nil
}
