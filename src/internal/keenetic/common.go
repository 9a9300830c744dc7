package keenetic

const (
	authEndpoint         = "auth"
	certificatesEndpoint = "rci/ip/http/ssl/acme/list/certificate"
	bridgeIPEndpoint     = "rci/sc/interface/Bridge0/ip/address"
	policiesEndpoint     = "rci/show/rc/ip/policy"
	hotspotHostsEndpoint = "rci/show/ip/hotspot/host"
	hotspotHostEndpoint  = "rci/ip/hotspot/host"
	dnsProxyEndpoint     = "rci/show/dns-proxy"
)

const (
	headerRealm     = "X-NDM-Realm"
	headerChallenge = "X-NDM-Challenge"
)

// KeeneticLinkUp is the value of the "link" field of an online hotspot host.
const KeeneticLinkUp = "up"

// systemDNSProfile is the DNS proxy profile used by hosts without a policy.
const systemDNSProfile = "System"

const (
	dnsServerPrefix  = "dns_server = "
	localhostPrefix  = "127.0.0.1:"
	httpsPrefix      = "https://"
	atSymbol         = "@"
	dotSymbol        = "."
	commentDelimiter = "#"
)

// PolicyInfo describes a router-side policy. The policy name is the map key
// returned by Client.ListPolicies.
type PolicyInfo struct {
	Description *string `json:"description,omitempty"`
}

// DNSServerType is the transport a DNS proxy upstream uses.
type DNSServerType string

const (
	DNSServerTypePlain     DNSServerType = "IP4"
	DNSServerTypePlainIPv6 DNSServerType = "IP6"
	DNSServerTypeDoT       DNSServerType = "DoT"
	DNSServerTypeDoH       DNSServerType = "DoH"
)

// DNSServerInfo is one upstream of the router's DNS proxy.
type DNSServerInfo struct {
	Type     DNSServerType `json:"type"`
	Domain   *string       `json:"domain,omitempty"`
	Proxy    string        `json:"proxy"`
	Endpoint string        `json:"endpoint"` // DoT: SNI, DoH: URI, plain: same as Proxy
	Port     string        `json:"port,omitempty"`
}

type dnsProxyResponse struct {
	ProxyStatus []dnsProxyStatus `json:"proxy-status"`
}

type dnsProxyStatus struct {
	ProxyName   string `json:"proxy-name"`
	ProxyConfig string `json:"proxy-config"`
}

type authRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type hotspotPolicyRequest struct {
	MAC      string           `json:"mac"`
	Policy   PolicyAssignment `json:"policy"`
	Permit   bool             `json:"permit"`
	Schedule bool             `json:"schedule"`
}

type hotspotDenyRequest struct {
	MAC      string `json:"mac"`
	Schedule bool   `json:"schedule"`
	Deny     bool   `json:"deny"`
}
