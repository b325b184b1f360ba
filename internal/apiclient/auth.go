package apiclient

import "context"

// Login authenticates against the backend. On success the backend sets its
// session cookie into the client's jar; the user object is NOT returned here,
// callers must follow up with Me for the authoritative user.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	return c.post(ctx, "/auth/login", body, nil)
}

// Me fetches the authoritative current user. A 2xx with an empty body yields
// a nil user, which callers must treat as "not authenticated".
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

// Logout invalidates the backend session cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, fullName, email, password string) error {
	body := map[string]string{
		"full_name": fullName,
		"email":     email,
		"password":  password,
	}
	return c.post(ctx, "/auth/register", body, nil)
}

// ForgotPassword requests a password-reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword consumes a reset token. This is the only flow where the
// client handles a token directly; session auth stays cookie-only.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{
		"token":    token,
		"password": password,
	}
	return c.post(ctx, "/auth/reset-password", body, nil)
}

// UpdateProfile updates the current user's profile and returns the updated
// user object.
func (c *Client) UpdateProfile(ctx context.Context, fullName string) (*User, error) {
	var user User
	body := map[string]string{"full_name": fullName}
	if err := c.put(ctx, "/auth/me", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the current user's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	}
	return c.put(ctx, "/auth/change-password", body, nil)
}
