package mailgun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Credential is an SMTP login scoped to a sending domain.
type Credential struct {
	Login     string `json:"login"`
	Password  string `json:"password,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CredentialsAPI is the collection-level handle over a domain's SMTP
// credentials.
type CredentialsAPI struct {
	client *Client
	domain string
}

type credentialListResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []Credential `json:"items"`
}

// List returns the SMTP credentials configured for the domain.
func (a *CredentialsAPI) List(ctx context.Context) ([]Credential, error) {
	raw, err := a.client.Get(ctx, a.path(), nil)
	if err != nil {
		return nil, err
	}
	var resp credentialListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse credential list: %w", err)
	}
	return resp.Items, nil
}

// Create adds a new SMTP login to the domain.
func (a *CredentialsAPI) Create(ctx context.Context, login, password string) error {
	data := url.Values{}
	data.Set("login", login)
	data.Set("password", password)
	_, err := a.client.Post(ctx, a.path(), data)
	return err
}

func (a *CredentialsAPI) path() string {
	return "/domains/" + url.PathEscape(a.domain) + "/credentials"
}

// CredentialAPI is the item-level handle over one SMTP login.
type CredentialAPI struct {
	client *Client
	domain string
	login  string
}

// Update changes the password for the login.
func (a *CredentialAPI) Update(ctx context.Context, password string) error {
	data := url.Values{}
	data.Set("password", password)
	_, err := a.client.Put(ctx, a.path(), data)
	return err
}

// Delete removes the login from the domain.
func (a *CredentialAPI) Delete(ctx context.Context) error {
	_, err := a.client.Delete(ctx, a.path())
	return err
}

func (a *CredentialAPI) path() string {
	return "/domains/" + url.PathEscape(a.domain) + "/credentials/" + url.PathEscape(a.login)
}
