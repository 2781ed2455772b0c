// Package cli provides CLI discovery, version validation, and command building
// for the agent CLI binary.
//
// This package provides three main capabilities:
//
// # CLI Discovery
//
// The Discoverer interface locates and validates the agent CLI binary:
//
//	discoverer := cli.NewDiscoverer(&cli.Config{
//	    CLIPath: "",           // Optional explicit path
//	    Logger:  slog.Default(),
//	})
//	cliPath, err := discoverer.Discover(ctx)
//
// Discovery searches in the following order:
//  1. Explicit path in Config.CLIPath (if provided)
//  2. System PATH
//  3. Common installation directories (/usr/local/bin, /usr/bin, ~/.local/bin)
//
// # Version Validation
//
// During discovery, the CLI version is validated against MinimumVersion.
// A warning is logged if the version is below minimum. Version checking can be
// skipped via Config.SkipVersionCheck or the AGENTWIRE_SKIP_VERSION_CHECK
// environment variable.
//
// # Command Building
//
// The package provides functions to build CLI command arguments and environment:
//
//	args, err := cli.BuildArgs("prompt", options, isStreaming)
//	env := cli.BuildEnvironment(options)
package cli
