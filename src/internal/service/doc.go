// Package service orchestrates the keenetic, networking, config and
// credentials packages for the CLI and the local API.
//
// # Key Services
//
// Pipeline: selects the active router for the current network and builds
// its ActiveState (interfaces, policies, chosen interface).
//
// PolicyService: applies a policy, the default policy or a block to a
// client of the active router.
//
// RouterRegistration: adds, edits and removes configured routers.
//
// DNSService: lists the upstream DNS servers of the active router.
//
// # Example Usage
//
//	deps := domain.NewAppDependencies(domain.AppConfig{RequestTimeout: cfg.General.RequestTimeout()})
//	state, status, err := service.NewPipeline(deps).Run(ctx, cfg.Routers)
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if status == service.StatusReachable {
//	    fmt.Println(service.FormatTooltip(cfg.General.TooltipFormat, state))
//	}
package service
