package mailgun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// MailingList describes a Mailgun mailing list.
type MailingList struct {
	Address      string `json:"address"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	AccessLevel  string `json:"access_level"`
	MembersCount int    `json:"members_count"`
	CreatedAt    string `json:"created_at"`
}

// CreateListRequest holds the parameters for creating a mailing list.
type CreateListRequest struct {
	Address     string
	Name        string
	Description string

	// AccessLevel is "readonly", "members", or "everyone".
	AccessLevel string
}

// UpdateListRequest holds the changes to apply to a mailing list. Empty
// fields are left untouched.
type UpdateListRequest struct {
	Address     string
	Name        string
	Description string
	AccessLevel string
}

// ListsAPI is the collection-level handle over mailing lists.
type ListsAPI struct {
	client *Client
}

type mailingListResponse struct {
	List MailingList `json:"list"`
}

type mailingListListResponse struct {
	TotalCount int           `json:"total_count"`
	Items      []MailingList `json:"items"`
}

// List returns the account's mailing lists.
func (a *ListsAPI) List(ctx context.Context) ([]MailingList, error) {
	raw, err := a.client.Get(ctx, "/lists", nil)
	if err != nil {
		return nil, err
	}
	var resp mailingListListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse mailing lists: %w", err)
	}
	return resp.Items, nil
}

// Create creates a new mailing list.
func (a *ListsAPI) Create(ctx context.Context, req CreateListRequest) (*MailingList, error) {
	data := url.Values{}
	data.Set("address", req.Address)
	if req.Name != "" {
		data.Set("name", req.Name)
	}
	if req.Description != "" {
		data.Set("description", req.Description)
	}
	if req.AccessLevel != "" {
		data.Set("access_level", req.AccessLevel)
	}

	raw, err := a.client.Post(ctx, "/lists", data)
	if err != nil {
		return nil, err
	}
	var resp mailingListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse mailing list: %w", err)
	}
	return &resp.List, nil
}

// ListAPI is the item-level handle over one mailing list.
type ListAPI struct {
	client  *Client
	address string
}

// Info returns the mailing list details.
func (a *ListAPI) Info(ctx context.Context) (*MailingList, error) {
	raw, err := a.client.Get(ctx, a.path(), nil)
	if err != nil {
		return nil, err
	}
	var resp mailingListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse mailing list: %w", err)
	}
	return &resp.List, nil
}

// Update applies the non-empty fields of req to the mailing list.
func (a *ListAPI) Update(ctx context.Context, req UpdateListRequest) (*MailingList, error) {
	data := url.Values{}
	if req.Address != "" {
		data.Set("address", req.Address)
	}
	if req.Name != "" {
		data.Set("name", req.Name)
	}
	if req.Description != "" {
		data.Set("description", req.Description)
	}
	if req.AccessLevel != "" {
		data.Set("access_level", req.AccessLevel)
	}

	raw, err := a.client.Put(ctx, a.path(), data)
	if err != nil {
		return nil, err
	}
	var resp mailingListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse mailing list: %w", err)
	}
	return &resp.List, nil
}

// Delete removes the mailing list and its members.
func (a *ListAPI) Delete(ctx context.Context) error {
	_, err := a.client.Delete(ctx, a.path())
	return err
}

// Members returns the collection-level members handle for the list.
func (a *ListAPI) Members() *MembersAPI {
	return &MembersAPI{client: a.client, list: a.address}
}

// Member returns the item-level handle for one list member.
func (a *ListAPI) Member(address string) *MemberAPI {
	return &MemberAPI{client: a.client, list: a.address, address: address}
}

func (a *ListAPI) path() string {
	return "/lists/" + url.PathEscape(a.address)
}
