package service

import (
	"context"
	"testing"

	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
	"github.com/maksimkurb/keen-tray/src/internal/mocks"
)

func TestDNSService_GetDNSServers(t *testing.T) {
	env := newTestEnv(t, map[string]string{"home": "pw"})
	env.fleet.Add("192.168.1.1", &mocks.MockRouterClient{
		ListDNSServersFunc: func(context.Context) ([]keenetic.DNSServerInfo, error) {
			return []keenetic.DNSServerInfo{
				{Type: keenetic.DNSServerTypePlain, Endpoint: "8.8.8.8", Proxy: "8.8.8.8"},
				{Type: keenetic.DNSServerTypeDoT, Endpoint: "dns.google", Domain: strPtr("example.com"), Proxy: "127.0.0.1", Port: "40500"},
			}, nil
		},
	})
	svc := NewDNSService(env.deps)
	target := RouterTarget{Router: router("home", "192.168.1.1", ""), Address: "192.168.1.1"}

	servers, err := svc.GetDNSServers(context.Background(), target)
	if err != nil {
		t.Fatalf("GetDNSServers() error = %v", err)
	}
	if len(servers) != 2 || servers[1].Port != "40500" || *servers[1].Domain != "example.com" {
		t.Fatalf("GetDNSServers() = %+v", servers)
	}

	want := "  [" + string(keenetic.DNSServerTypePlain) + "] 8.8.8.8                             [for domain: -              ] 8.8.8.8\n" +
		"  [" + string(keenetic.DNSServerTypeDoT) + "] dns.google                          [for domain: example.com    ] 127.0.0.1:40500\n"
	if got := svc.FormatDNSServers(servers); got != want {
		t.Errorf("FormatDNSServers() =\n%s\nwant\n%s", got, want)
	}
}

func TestDNSService_NoActiveRouter(t *testing.T) {
	env := newTestEnv(t, nil)
	if _, err := NewDNSService(env.deps).GetDNSServers(context.Background(), RouterTarget{}); err == nil {
		t.Error("GetDNSServers() expected an error")
	}
}
