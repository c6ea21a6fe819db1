package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-analysis-mcp/internal/config"
	"github.com/ironsheep/image-analysis-mcp/internal/logging"
	"github.com/ironsheep/image-analysis-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usage = `image-analysis-mcp - MCP server for edge detection, morphology and line voting

Usage: image-analysis-mcp [options]

Options:
  --config PATH        Read configuration from PATH (YAML)
  --init-config PATH   Write the default configuration to PATH and exit
  --version, -v        Print version information
  --help, -h           Print this help message

Environment variables:
  IMAGE_MCP_CONFIG=PATH        Configuration file when --config is not given
  IMAGE_MCP_LOG_LEVEL=debug    Override log.level

This server communicates via MCP protocol over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).
`

func main() {
	fs := flag.NewFlagSet("image-analysis-mcp", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	var (
		configPath  string
		initConfig  string
		showVersion bool
	)
	fs.StringVar(&configPath, "config", "", "configuration file")
	fs.StringVar(&initConfig, "init-config", "", "write the default configuration")
	fs.BoolVar(&showVersion, "version", false, "print version information")
	fs.BoolVar(&showVersion, "v", false, "print version information")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if showVersion {
		fmt.Printf("image-analysis-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	if initConfig != "" {
		if err := config.CreateDefaultConfigFile(initConfig); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote default configuration to %s\n", initConfig)
		return
	}

	cfg, err := config.LoadConfig(config.ResolvePath(configPath, os.Getenv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout is reserved for MCP frames.
	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("image analysis MCP server starting")

	srv := server.New(cfg, logger, server.WithVersion(Version))
	if err := srv.Run(); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}
