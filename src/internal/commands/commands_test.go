package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/credentials"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/keenetic"
	"github.com/maksimkurb/keen-tray/src/internal/log"
	"github.com/maksimkurb/keen-tray/src/internal/mocks"
	"github.com/maksimkurb/keen-tray/src/internal/networking"
	"github.com/maksimkurb/keen-tray/src/internal/service"
)

const (
	testMAC    = "aa:bb:cc:dd:ee:ff"
	testConfig = `config_version = 1

[general]
refresh_interval_seconds = 5

[[router]]
name = "home"
address = "http://192.168.1.1"
login = "admin"
network_ip = "192.168.1.1"
`
)

type testEnv struct {
	app    *AppContext
	out    *bytes.Buffer
	fleet  *mocks.MockRouterFleet
	router *mocks.MockRouterClient
	store  *credentials.MemoryStore
	policy string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "keen-tray.toml")
	if err := os.WriteFile(path, []byte(testConfig), 0644); err != nil {
		t.Fatal(err)
	}

	env := &testEnv{
		out:    &bytes.Buffer{},
		fleet:  mocks.NewMockRouterFleet(),
		store:  credentials.NewMemoryStore(map[string]string{"home": "secret"}),
		policy: "Policy0",
	}
	description := "VPN"
	env.router = env.fleet.Add("192.168.1.1", &mocks.MockRouterClient{
		ListPoliciesFunc: func(context.Context) (map[string]keenetic.PolicyInfo, error) {
			return map[string]keenetic.PolicyInfo{"Policy0": {Description: &description}, "Policy1": {}}, nil
		},
		ListClientsFunc: func(context.Context) (map[string]*keenetic.ClientRecord, error) {
			policy := env.policy
			return map[string]*keenetic.ClientRecord{
				testMAC: {MAC: testMAC, Policy: &policy, Raw: keenetic.RawClient{"link": "up"}},
			}, nil
		},
	})

	ifaces := mocks.NewMockInterfaceSource(networking.LocalInterface{
		Name: "wlan0",
		MAC:  testMAC,
		IPv4: []netip.Prefix{netip.MustParsePrefix("192.168.1.34/24")},
	})
	env.app = &AppContext{
		ConfigPath: path,
		Out:        env.out,
		Deps:       domain.NewTestDependencies(env.fleet.Factory(), env.store, ifaces, nil),
	}
	return env
}

func runCommand(t *testing.T, cmd Runner, args []string, app *AppContext) error {
	t.Helper()
	if err := cmd.Init(args, app); err != nil {
		return err
	}
	return cmd.Run()
}

func TestStatusCommand(t *testing.T) {
	env := newTestEnv(t)

	if err := runCommand(t, CreateStatusCommand(), nil, env.app); err != nil {
		t.Fatalf("status error = %v", err)
	}

	out := env.out.String()
	for _, want := range []string{"Router:  home (192.168.1.1)", "Tooltip: Keenetic Tray - VPN", "wlan0", "policy: VPN", "policy|aabbccddeeff|set|Policy1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestStatusCommand_NoRouters(t *testing.T) {
	env := newTestEnv(t)
	env.app.ConfigPath = filepath.Join(t.TempDir(), "missing.toml")

	if err := runCommand(t, CreateStatusCommand(), nil, env.app); err != nil {
		t.Fatalf("status error = %v", err)
	}
	if !strings.Contains(env.out.String(), "No routers configured") {
		t.Errorf("output = %q", env.out.String())
	}
}

func TestRoutersCommand(t *testing.T) {
	env := newTestEnv(t)

	if err := runCommand(t, CreateRoutersCommand(), nil, env.app); err != nil {
		t.Fatalf("routers error = %v", err)
	}
	if out := env.out.String(); !strings.Contains(out, "home") || !strings.Contains(out, "network IP: 192.168.1.1") {
		t.Errorf("output = %q", out)
	}
}

func TestAddAndRemoveRouterCommands(t *testing.T) {
	env := newTestEnv(t)
	env.fleet.Add("http://10.0.0.1", &mocks.MockRouterClient{
		GetBridgeIPFunc: func(context.Context) (string, error) { return "10.0.0.1", nil },
	})
	t.Setenv(defaultPasswordEnv, "")
	env.app.In = strings.NewReader("office-secret\n")

	err := runCommand(t, CreateAddRouterCommand(), []string{"-name", "office", "-address", "10.0.0.1"}, env.app)
	if err != nil {
		t.Fatalf("add-router error = %v", err)
	}

	cfg, err := config.LoadConfig(env.app.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	office, ok := cfg.FindRouter("office")
	if !ok || office.NetworkIP != "10.0.0.1" || office.Login != "admin" {
		t.Errorf("saved router = %+v, %v", office, ok)
	}
	if password, _, _ := env.store.Get("office"); password != "office-secret" {
		t.Errorf("stored password = %q", password)
	}

	if err := runCommand(t, CreateRemoveRouterCommand(), []string{"-name", "office"}, env.app); err != nil {
		t.Fatalf("remove-router error = %v", err)
	}
	cfg, _ = config.LoadConfig(env.app.ConfigPath)
	if _, ok := cfg.FindRouter("office"); ok {
		t.Error("router still configured after removal")
	}

	if err := runCommand(t, CreateRemoveRouterCommand(), []string{"-name", "office"}, env.app); err == nil {
		t.Error("removing an unknown router should fail")
	}
}

func TestAddRouterCommand_PasswordFromEnv(t *testing.T) {
	env := newTestEnv(t)
	env.fleet.Add("http://10.0.0.1", nil)
	t.Setenv("OFFICE_PASSWORD", "from-env")
	stdin := strings.NewReader("typed\n")
	env.app.In = stdin

	err := runCommand(t, CreateAddRouterCommand(), []string{"-name", "office", "-address", "10.0.0.1", "-password-env", "OFFICE_PASSWORD"}, env.app)
	if err != nil {
		t.Fatalf("add-router error = %v", err)
	}
	calls := env.fleet.Calls()
	if len(calls) != 1 || calls[0].Password != "from-env" {
		t.Errorf("factory calls = %+v", calls)
	}
	if stdin.Len() != len("typed\n") {
		t.Error("password prompt was read although the environment variable is set")
	}
	if strings.Contains(env.out.String(), "Password for") {
		t.Errorf("unexpected prompt in output: %q", env.out.String())
	}
}

func TestReadPassword_NonTerminal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"line", "secret\n", "secret"},
		{"windows line ending", "secret\r\n", "secret"},
		{"no trailing newline", "secret", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPassword(strings.NewReader(tt.input), io.Discard)
			if err != nil {
				t.Fatalf("readPassword() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("readPassword() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("pipe", func(t *testing.T) {
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatal(err)
		}
		defer r.Close()
		if _, err := w.WriteString("piped-secret\n"); err != nil {
			t.Fatal(err)
		}
		w.Close()

		got, err := readPassword(r, io.Discard)
		if err != nil {
			t.Fatalf("readPassword() error = %v", err)
		}
		if got != "piped-secret" {
			t.Errorf("readPassword() = %q, want piped-secret", got)
		}
	})

	if _, err := readPassword(strings.NewReader(""), io.Discard); err == nil {
		t.Error("expected an error for empty input")
	}
}

func TestPolicyCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"set", []string{"-mac", "AA:BB:CC:DD:EE:FF", "-set", "Policy1"}, mocks.MutationSetPolicy},
		{"default", []string{"-mac", "aabbccddeeff", "-default"}, mocks.MutationDefault},
		{"block", []string{"-mac", testMAC, "-block"}, mocks.MutationBlock},
		{"choice", []string{"-choice", "policy|aabbccddeeff|blocked"}, mocks.MutationBlock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if err := runCommand(t, CreatePolicyCommand(), tt.args, env.app); err != nil {
				t.Fatalf("policy error = %v", err)
			}
			mutations := env.router.Mutations()
			if len(mutations) != 1 || mutations[0].Kind != tt.want || mutations[0].MAC != testMAC {
				t.Errorf("mutations = %+v, want one %s", mutations, tt.want)
			}
		})
	}
}

func TestPolicyCommand_InvalidArguments(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"-mac", testMAC},
		{"-mac", testMAC, "-block", "-default"},
		{"-choice", "policy|aabbccddeeff|reboot"},
	} {
		env := newTestEnv(t)
		if err := CreatePolicyCommand().Init(args, env.app); err == nil {
			t.Errorf("Init(%v) expected an error", args)
		}
	}
}

func TestWatchCommand_PrintsOnlyChanges(t *testing.T) {
	env := newTestEnv(t)
	cmd := CreateWatchCommand()
	if err := cmd.Init(nil, env.app); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if cmd.interval != 5*time.Second {
		t.Errorf("interval = %v, want 5s from the configuration", cmd.interval)
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := cmd.poll(ctx); err != nil {
			t.Fatalf("poll() error = %v", err)
		}
	}
	if got := strings.Count(env.out.String(), "Router:"); got != 1 {
		t.Errorf("state printed %d times for an unchanged router, want 1", got)
	}

	env.policy = "Policy1"
	if err := cmd.poll(ctx); err != nil {
		t.Fatalf("poll() error = %v", err)
	}
	if got := strings.Count(env.out.String(), "Router:"); got != 2 {
		t.Errorf("state printed %d times after a change, want 2", got)
	}
}

func TestRestartableRunner_RestartsOnError(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(io.Discard, &logs)
	t.Cleanup(func() { log.SetOutput(nil, nil) })

	var calls atomic.Int32
	runner := NewRestartableRunner(RunnerConfig{
		Name:           "test",
		MaxRestarts:    3,
		RestartBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
	}, func(ctx context.Context) error {
		if calls.Add(1) == 2 {
			panic("boom")
		}
		return kerrors.NewTransportError("router unreachable", nil)
	})

	if err := runner.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	select {
	case <-runner.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not give up")
	}

	if got := calls.Load(); got != 3 {
		t.Errorf("runs = %d, want 3", got)
	}
	if runner.RestartCount() != 3 || !errors.Is(runner.LastError(), kerrors.ErrTransport) {
		t.Errorf("restarts = %d, last error = %v", runner.RestartCount(), runner.LastError())
	}
	for _, want := range []string{"failed [TRANSPORT_ERROR]", "failed [INTERNAL_ERROR]", "panic: boom", "giving up after 3 restarts, last failure [TRANSPORT_ERROR]"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log does not contain %q:\n%s", want, logs.String())
		}
	}
	if err := runner.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestRestartableRunner_Stop(t *testing.T) {
	runner := NewRestartableRunner(RunnerConfig{Name: "test"}, func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	if err := runner.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := runner.Start(context.Background()); err == nil {
		t.Error("second Start() should fail while running")
	}
	if err := runner.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if runner.IsRunning() {
		t.Error("runner still running after Stop()")
	}
}

func TestFormatSnapshot_NoReachableRouter(t *testing.T) {
	out := formatSnapshot(&service.Snapshot{Status: service.StatusNoReachableRouter})
	if !strings.Contains(out, "No configured router is reachable") {
		t.Errorf("formatSnapshot() = %q", out)
	}
}
