package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Identity is the identity returned by a successful login.
type Identity struct {
	ID   string
	Name string
}

// Login authenticates a student with a username and password.
func (c *Client) Login(ctx context.Context, username, password string) (*Identity, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var out struct {
		UserID flexibleID `json:"user_id"`
		Name   string     `json:"name"`
	}
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/auth/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &out)
	if err != nil {
		return nil, loginError(err)
	}

	return &Identity{ID: string(out.UserID), Name: out.Name}, nil
}

// AdminLogin authenticates a lecturer with an email and password.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*Identity, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("email", email); err != nil {
		return nil, err
	}
	if err := w.WriteField("password", password); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out struct {
		LecturerID flexibleID `json:"lecturer_id"`
		Name       string     `json:"name"`
	}
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/admin/login",
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, &out)
	if err != nil {
		return nil, loginError(err)
	}

	return &Identity{ID: string(out.LecturerID), Name: out.Name}, nil
}

func loginError(err error) error {
	var se *ServerError
	if errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, se.Detail)
	}
	return fmt.Errorf("login: %w", err)
}
