package keenetic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/miekg/dns"

	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/utils"
)

// Client provides typed RCI operations on an authenticated Session.
//
// Every method logs in first, so callers never manage the login lifecycle.
// Transport failures are ErrTransport, non-2xx statuses and malformed bodies
// are ErrInvalidResponse. Missing data is returned as an empty result.
type Client struct {
	session *Session
}

// NewClient creates a client on top of session.
func NewClient(session *Session) *Client {
	return &Client{session: session}
}

// NewClientForRouter is a shorthand for NewClient(NewSession(...)).
func NewClientForRouter(address, login, password string, opts ...SessionOption) *Client {
	return NewClient(NewSession(address, login, password, opts...))
}

// BaseURL returns the normalized router base URL.
func (c *Client) BaseURL() string {
	return c.session.BaseURL()
}

// Login authenticates the underlying session.
func (c *Client) Login(ctx context.Context) error {
	return c.session.Login(ctx)
}

// fetchAndDeserialize logs in, GETs endpoint and decodes the body into T.
func fetchAndDeserialize[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var result T

	if err := c.session.Login(ctx); err != nil {
		return result, err
	}

	body, err := c.session.Do(ctx, endpoint, nil)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return result, kerrors.NewInvalidResponseError(fmt.Sprintf("failed to decode %s", endpoint), err)
	}
	return result, nil
}

// post logs in and POSTs payload to endpoint, discarding the response body.
func (c *Client) post(ctx context.Context, endpoint string, payload any) error {
	if err := c.session.Login(ctx); err != nil {
		return err
	}
	_, err := c.session.Do(ctx, endpoint, payload)
	return err
}

// ListCertificates returns the domains of the router's ACME certificates,
// i.e. its KeenDNS names. Entries without a valid domain are skipped.
func (c *Client) ListCertificates(ctx context.Context) ([]string, error) {
	data, err := fetchAndDeserialize[any](ctx, c, certificatesEndpoint)
	if err != nil {
		return nil, err
	}

	var domains []string
	for _, item := range asArray(data) {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		domain, ok := stringField(obj, "domain")
		if !ok {
			continue
		}
		if _, valid := dns.IsDomainName(domain); !valid {
			log.Debugf("Skipping certificate with malformed domain %q", domain)
			continue
		}
		domains = append(domains, domain)
	}
	return domains, nil
}

// GetBridgeIP returns the address of the router's home bridge (Bridge0), or
// "" if the router does not report one.
func (c *Client) GetBridgeIP(ctx context.Context) (string, error) {
	data, err := fetchAndDeserialize[any](ctx, c, bridgeIPEndpoint)
	if err != nil {
		return "", err
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return "", nil
	}
	address, _ := stringField(obj, "address")
	return address, nil
}

// ListPolicies returns the router policies keyed by name.
func (c *Client) ListPolicies(ctx context.Context) (map[string]PolicyInfo, error) {
	data, err := fetchAndDeserialize[any](ctx, c, policiesEndpoint)
	if err != nil {
		return nil, err
	}

	policies := make(map[string]PolicyInfo)
	obj, ok := data.(map[string]any)
	if !ok {
		return policies, nil
	}
	for name, value := range obj {
		info := PolicyInfo{}
		if fields, ok := value.(map[string]any); ok {
			info.Description = optionalString(fields, "description")
		}
		policies[name] = info
	}
	return policies, nil
}

// ListRawClients returns the hotspot host table as reported by the router.
// The same MAC may appear in several rows.
func (c *Client) ListRawClients(ctx context.Context) ([]RawClient, error) {
	data, err := fetchAndDeserialize[any](ctx, c, hotspotHostsEndpoint)
	if err != nil {
		return nil, err
	}

	var rows []RawClient
	for _, item := range asArray(data) {
		if obj, ok := item.(map[string]any); ok {
			rows = append(rows, RawClient(obj))
		}
	}
	return rows, nil
}

// ListClients returns the reconciled client table keyed by MAC.
func (c *Client) ListClients(ctx context.Context) (map[string]*ClientRecord, error) {
	rows, err := c.ListRawClients(ctx)
	if err != nil {
		return nil, err
	}
	return Reconcile(rows), nil
}

// SetClientPolicy assigns policy to the client with the given MAC and
// permits it.
func (c *Client) SetClientPolicy(ctx context.Context, mac string, policy PolicyAssignment) error {
	log.Debugf("Setting policy %s for %s on %s", policy, mac, c.BaseURL())
	return c.post(ctx, hotspotHostEndpoint, hotspotPolicyRequest{
		MAC:      utils.NormalizeMAC(mac),
		Policy:   policy,
		Permit:   true,
		Schedule: false,
	})
}

// ApplyDefaultPolicy restores the default policy for the client.
func (c *Client) ApplyDefaultPolicy(ctx context.Context, mac string) error {
	return c.SetClientPolicy(ctx, mac, ClearPolicy())
}

// BlockClient denies network access to the client.
func (c *Client) BlockClient(ctx context.Context, mac string) error {
	log.Debugf("Blocking %s on %s", mac, c.BaseURL())
	return c.post(ctx, hotspotHostEndpoint, hotspotDenyRequest{
		MAC:      utils.NormalizeMAC(mac),
		Schedule: false,
		Deny:     true,
	})
}

// ListDNSServers returns the upstreams of the router's System DNS proxy
// profile. A router without that profile yields an empty list.
func (c *Client) ListDNSServers(ctx context.Context) ([]DNSServerInfo, error) {
	resp, err := fetchAndDeserialize[dnsProxyResponse](ctx, c, dnsProxyEndpoint)
	if err != nil {
		return nil, err
	}

	for _, status := range resp.ProxyStatus {
		if status.ProxyName == systemDNSProfile {
			return ParseDNSProxyConfig(status.ProxyConfig), nil
		}
	}
	return nil, nil
}

func asArray(data any) []any {
	list, _ := data.([]any)
	return list
}
