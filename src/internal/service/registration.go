package service

import (
	"context"
	"fmt"

	"github.com/maksimkurb/keen-tray/src/internal/config"
	"github.com/maksimkurb/keen-tray/src/internal/credentials"
	"github.com/maksimkurb/keen-tray/src/internal/domain"
	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/log"
)

// RegisterRequest adds a router, or edits the one named OriginalName.
type RegisterRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Login        string `json:"login"`
	Password     string `json:"password"`
	OriginalName string `json:"original_name,omitempty"`
}

// RouterRegistration adds, edits and removes configured routers together
// with their stored passwords.
type RouterRegistration struct {
	clients     domain.ClientFactory
	credentials credentials.Store
}

// NewRouterRegistration creates a registration service.
func NewRouterRegistration(deps *domain.AppDependencies) *RouterRegistration {
	return &RouterRegistration{
		clients:     deps.ClientFactory(),
		credentials: deps.Credentials(),
	}
}

// Register verifies the credentials against the router, discovers its LAN IP
// and KeenDNS names, stores the password and saves the configuration.
//
// Discovery failures are logged and leave the corresponding fields empty.
// When OriginalName is set, that entry is replaced in place and its stored
// password is removed.
func (r *RouterRegistration) Register(ctx context.Context, cfg *config.Config, req RegisterRequest) (config.RouterConfig, error) {
	router, err := r.Verify(ctx, cfg, req)
	if err != nil {
		return router, err
	}
	return router, r.Save(cfg, req, router)
}

// Verify checks the request against cfg, logs in to the router and runs
// discovery. It returns the entry to save and changes neither cfg nor the
// credential store.
func (r *RouterRegistration) Verify(ctx context.Context, cfg *config.Config, req RegisterRequest) (config.RouterConfig, error) {
	router := config.NewRouterConfig(req.Name, req.Address, req.Login)
	if router.Name == "" || router.Address == "" || router.Login == "" {
		return router, kerrors.NewValidationError("name, address and login are required", nil)
	}
	if err := checkName(cfg, router.Name, req.OriginalName); err != nil {
		return router, err
	}

	client := r.clients(router.Address, router.Login, req.Password)
	if err := client.Login(ctx); err != nil {
		if kerrors.CodeOf(err) == kerrors.ErrCodeAuthFailed {
			return router, kerrors.NewAuthFailedError("Authentication failed", err)
		}
		return router, err
	}

	if ip, err := client.GetBridgeIP(ctx); err != nil {
		log.Warnf("Failed to discover the LAN IP of %q: %v", router.Name, err)
	} else {
		router.NetworkIP = ip
	}
	if domains, err := client.ListCertificates(ctx); err != nil {
		log.Warnf("Failed to discover KeenDNS names of %q: %v", router.Name, err)
	} else {
		router.KeenDNSURLs = domains
	}
	return router, nil
}

// Save stores the password of a verified router, puts the router into cfg and
// writes the configuration. The name is checked again, since cfg may have
// changed since Verify.
func (r *RouterRegistration) Save(cfg *config.Config, req RegisterRequest, router config.RouterConfig) error {
	if err := checkName(cfg, router.Name, req.OriginalName); err != nil {
		return err
	}

	if req.OriginalName != "" && req.OriginalName != router.Name {
		if err := r.credentials.Delete(req.OriginalName); err != nil {
			log.Warnf("Failed to delete the password of %q: %v", req.OriginalName, err)
		}
	}
	if err := r.credentials.Set(router.Name, req.Password); err != nil {
		return err
	}
	if err := cfg.ReplaceRouter(req.OriginalName, router); err != nil {
		return err
	}
	if err := cfg.WriteConfig(); err != nil {
		return err
	}

	log.Infof("Saved router %q (%s, network IP %q)", router.Name, router.Address, router.NetworkIP)
	return nil
}

func checkName(cfg *config.Config, name, originalName string) error {
	if existing, ok := cfg.FindRouter(name); ok && existing.Name != originalName {
		return kerrors.NewValidationError(fmt.Sprintf("router %q already exists", name), nil)
	}
	return nil
}

// Remove deletes the router and its stored password and saves the
// configuration. Removing an unknown router is not an error.
func (r *RouterRegistration) Remove(cfg *config.Config, name string) error {
	if !cfg.RemoveRouter(name) {
		log.Debugf("Router %q is not configured", name)
	}
	if err := r.credentials.Delete(name); err != nil {
		return err
	}
	return cfg.WriteConfig()
}
