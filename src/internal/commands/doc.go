// Package commands implements the CLI subcommands of keen-tray.
//
// Each command implements the Runner interface and delegates to the service
// layer:
//   - Init(): parse arguments, load configuration, build dependencies
//   - Run(): execute the command
//   - Name(): return the command name for routing
//
// # Available Commands
//
//   - status: select the active router and print its state
//   - routers: list configured routers
//   - add-router / remove-router: manage routers and their stored passwords
//   - policy: set, reset or block the policy of a client
//   - dns: show the System DNS proxy upstreams of the active router
//   - watch: print the state whenever it changes
//   - serve: run the localhost JSON API
//
// # Example Usage
//
//	cmd := commands.CreateStatusCommand()
//	ctx := &commands.AppContext{ConfigPath: path}
//	if err := cmd.Init(args, ctx); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package commands
