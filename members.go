package mailgun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Member is a mailing list member.
type Member struct {
	Address    string                 `json:"address"`
	Name       string                 `json:"name"`
	Vars       map[string]interface{} `json:"vars,omitempty"`
	Subscribed bool                   `json:"subscribed"`
}

// CreateMemberRequest holds the parameters for adding a list member.
type CreateMemberRequest struct {
	Address string
	Name    string
	Vars    map[string]interface{}

	// Subscribed defaults to true when nil.
	Subscribed *bool

	// Upsert updates the member in place if the address already exists
	// instead of failing.
	Upsert bool
}

// UpdateMemberRequest holds the changes to apply to a member. Nil fields
// are left untouched.
type UpdateMemberRequest struct {
	Address    string
	Name       *string
	Vars       map[string]interface{}
	Subscribed *bool
}

// MembersAPI is the collection-level handle over a mailing list's members.
type MembersAPI struct {
	client *Client
	list   string
}

type memberResponse struct {
	Member Member `json:"member"`
}

type memberListResponse struct {
	TotalCount int      `json:"total_count"`
	Items      []Member `json:"items"`
}

// List returns the members of the mailing list.
func (a *MembersAPI) List(ctx context.Context) ([]Member, error) {
	raw, err := a.client.Get(ctx, a.path(), nil)
	if err != nil {
		return nil, err
	}
	var resp memberListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse member list: %w", err)
	}
	return resp.Items, nil
}

// Create adds a member to the mailing list.
func (a *MembersAPI) Create(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	data := url.Values{}
	data.Set("address", req.Address)
	if req.Name != "" {
		data.Set("name", req.Name)
	}
	if len(req.Vars) > 0 {
		vars, err := json.Marshal(req.Vars)
		if err != nil {
			return nil, fmt.Errorf("mailgun: failed to encode member vars: %w", err)
		}
		data.Set("vars", string(vars))
	}
	if req.Subscribed != nil {
		data.Set("subscribed", yesNo(*req.Subscribed))
	}
	if req.Upsert {
		data.Set("upsert", "yes")
	}

	raw, err := a.client.Post(ctx, a.path(), data)
	if err != nil {
		return nil, err
	}
	var resp memberResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse member: %w", err)
	}
	return &resp.Member, nil
}

func (a *MembersAPI) path() string {
	return "/lists/" + url.PathEscape(a.list) + "/members"
}

// MemberAPI is the item-level handle over one list member.
type MemberAPI struct {
	client  *Client
	list    string
	address string
}

// Info returns the member details.
func (a *MemberAPI) Info(ctx context.Context) (*Member, error) {
	raw, err := a.client.Get(ctx, a.path(), nil)
	if err != nil {
		return nil, err
	}
	var resp memberResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse member: %w", err)
	}
	return &resp.Member, nil
}

// Update applies the non-nil fields of req to the member.
func (a *MemberAPI) Update(ctx context.Context, req UpdateMemberRequest) (*Member, error) {
	data := url.Values{}
	if req.Address != "" {
		data.Set("address", req.Address)
	}
	if req.Name != nil {
		data.Set("name", *req.Name)
	}
	if len(req.Vars) > 0 {
		vars, err := json.Marshal(req.Vars)
		if err != nil {
			return nil, fmt.Errorf("mailgun: failed to encode member vars: %w", err)
		}
		data.Set("vars", string(vars))
	}
	if req.Subscribed != nil {
		data.Set("subscribed", yesNo(*req.Subscribed))
	}

	raw, err := a.client.Put(ctx, a.path(), data)
	if err != nil {
		return nil, err
	}
	var resp memberResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse member: %w", err)
	}
	return &resp.Member, nil
}

// Delete removes the member from the mailing list.
func (a *MemberAPI) Delete(ctx context.Context) error {
	_, err := a.client.Delete(ctx, a.path())
	return err
}

func (a *MemberAPI) path() string {
	return "/lists/" + url.PathEscape(a.list) + "/members/" + url.PathEscape(a.address)
}
