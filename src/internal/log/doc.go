// Package log provides leveled console logging for keen-tray.
//
// Four levels are supported: DEBUG (only with verbose mode), INFO, WARN and ERROR.
// Each line is prefixed with a coloured level tag. ERROR lines go to stderr,
// everything else to stdout unless SetForceStdErr is enabled.
//
//	log.SetVerbose(true)
//	log.Debugf("Trying router %q at %s", name, addr)
//	log.Warnf("Router %q rejected credentials", name)
//
// The destinations can be replaced with SetOutput, which tests use to capture
// what a component logged.
package log
