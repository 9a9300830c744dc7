package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool

	// Out receives command output; os.Stdout if nil.
	Out io.Writer
	// In is read for prompted input; os.Stdin if nil.
	In io.Reader
	// Deps replaces the production dependencies when set.
	Deps *domain.AppDependencies
}

func (a *AppContext) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *AppContext) in() io.Reader {
	if a.In == nil {
		return os.Stdin
	}
	return a.In
}

// dependencies returns the injected dependencies or builds the production
// ones from the general settings of cfg.
func (a *AppContext) dependencies(cfg *config.Config) *domain.AppDependencies {
	if a.Deps != nil {
		return a.Deps
	}
	return domain.NewAppDependencies(domain.AppConfig{
		RequestTimeout:   cfg.General.RequestTimeout(),
		ResolveHostnames: cfg.General.ResolveHostnames,
		DNSServers:       cfg.General.DNSServers,
	})
}

// loadAndValidateConfigOrFail loads configuration from file and validates it.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// readLine reads one line from r without the line terminator.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword reads a password from in. A terminal is switched to no-echo
// mode for the duration of the read; other readers are read line by line.
func readPassword(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(password), nil
	}
	return readLine(in)
}
