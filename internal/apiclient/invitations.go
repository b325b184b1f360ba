package apiclient

import (
	"context"
	"net/url"
)

// VerifyInvitation checks an invitation token and returns the invitation
// context (invited email, case title, client name). Token reuse and expiry
// are enforced by the backend; any non-2xx surfaces through the error
// taxonomy.
func (c *Client) VerifyInvitation(ctx context.Context, token string) (*Invitation, error) {
	var inv Invitation
	if err := c.get(ctx, "/api/invitations/"+url.PathEscape(token), &inv); err != nil {
		return nil, err
	}
	if inv.Token == "" {
		inv.Token = token
	}
	return &inv, nil
}

// AcceptInvitation consumes the single-use token, creating the portal
// account with the given password and full name.
func (c *Client) AcceptInvitation(ctx context.Context, token, fullName, password string) error {
	body := map[string]string{
		"token":     token,
		"full_name": fullName,
		"password":  password,
	}
	return c.post(ctx, "/api/invitations/accept", body, nil)
}
