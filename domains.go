package mailgun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Domain describes a sending domain registered with Mailgun.
type Domain struct {
	Name         string `json:"name"`
	SMTPLogin    string `json:"smtp_login"`
	SMTPPassword string `json:"smtp_password"`
	SpamAction   string `json:"spam_action"`
	State        string `json:"state"`
	Wildcard     bool   `json:"wildcard"`
	CreatedAt    string `json:"created_at"`
}

// DNSRecord is a DNS entry Mailgun expects for a verified domain.
type DNSRecord struct {
	RecordType string `json:"record_type"`
	Name       string `json:"name"`
	Value      string `json:"value"`
	Valid      string `json:"valid"`
	Priority   string `json:"priority,omitempty"`
}

// DomainInfo is a domain together with the DNS records Mailgun expects for
// it.
type DomainInfo struct {
	Domain           Domain      `json:"domain"`
	ReceivingRecords []DNSRecord `json:"receiving_dns_records"`
	SendingRecords   []DNSRecord `json:"sending_dns_records"`
}

// CreateDomainRequest holds the parameters for registering a new domain.
type CreateDomainRequest struct {
	Name string

	// SMTPPassword is the password for the domain's default SMTP login.
	SMTPPassword string

	// SpamAction is "disabled", "block", or "tag".
	SpamAction string

	// Wildcard accepts email for subdomains of Name.
	Wildcard bool
}

// DomainsAPI is the collection-level handle over registered domains.
type DomainsAPI struct {
	client *Client
}

type domainListResponse struct {
	TotalCount int      `json:"total_count"`
	Items      []Domain `json:"items"`
}

// List returns the domains registered with the account.
func (a *DomainsAPI) List(ctx context.Context) ([]Domain, error) {
	raw, err := a.client.Get(ctx, "/domains", nil)
	if err != nil {
		return nil, err
	}
	var resp domainListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse domain list: %w", err)
	}
	return resp.Items, nil
}

// Create registers a new sending domain.
func (a *DomainsAPI) Create(ctx context.Context, req CreateDomainRequest) (*Domain, error) {
	data := url.Values{}
	data.Set("name", req.Name)
	if req.SMTPPassword != "" {
		data.Set("smtp_password", req.SMTPPassword)
	}
	if req.SpamAction != "" {
		data.Set("spam_action", req.SpamAction)
	}
	if req.Wildcard {
		data.Set("wildcard", "true")
	}

	raw, err := a.client.Post(ctx, "/domains", data)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Domain Domain `json:"domain"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse domain: %w", err)
	}
	return &resp.Domain, nil
}

// DomainAPI is the item-level handle over one registered domain.
type DomainAPI struct {
	client *Client
	name   string
}

// Info returns the domain together with its expected DNS records.
func (a *DomainAPI) Info(ctx context.Context) (*DomainInfo, error) {
	raw, err := a.client.Get(ctx, "/domains/"+url.PathEscape(a.name), nil)
	if err != nil {
		return nil, err
	}
	var info DomainInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse domain: %w", err)
	}
	return &info, nil
}

// Verify triggers a re-check of the domain's DNS records.
func (a *DomainAPI) Verify(ctx context.Context) (*DomainInfo, error) {
	raw, err := a.client.Put(ctx, "/domains/"+url.PathEscape(a.name)+"/verify", nil)
	if err != nil {
		return nil, err
	}
	var info DomainInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse domain: %w", err)
	}
	return &info, nil
}

// Delete removes the domain from the account.
func (a *DomainAPI) Delete(ctx context.Context) error {
	_, err := a.client.Delete(ctx, "/domains/"+url.PathEscape(a.name))
	return err
}

// Credentials returns the collection-level SMTP credentials handle for the
// domain.
func (a *DomainAPI) Credentials() *CredentialsAPI {
	return &CredentialsAPI{client: a.client, domain: a.name}
}

// Credential returns the item-level handle for one SMTP login.
func (a *DomainAPI) Credential(login string) *CredentialAPI {
	return &CredentialAPI{client: a.client, domain: a.name, login: login}
}
