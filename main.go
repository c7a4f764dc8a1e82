package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"marketmodel/config"
	"marketmodel/logger"
)

const usage = `usage: marketmodel [-config path] <command> [flags]

commands:
  formats    list the formats compiled into this binary
  fieldids   print the field identifier snapshot of every entity
  check      verify the tables against the published snapshot
  convert    re-encode one entity in another format
  migrate    convert an entity to the other schema generation
  export     write entities to a parquet table with metadata
`

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

// run parses the global flags, loads configuration and dispatches to a
// command.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("marketmodel", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "Path to configuration file")
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.GetLogger()
	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}

	cmd := &command{
		cfg:    cfg,
		log:    log.WithFields(logger.Fields(cfg.Logging.Fields)),
		stdin:  stdin,
		stdout: stdout,
	}
	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd.log.WithEnv("APP_ENV").WithFields(logger.Fields{
		"command": name,
		"version": cfg.Marketmodel.Version,
	}).Debug("starting marketmodel")

	switch name {
	case "formats":
		return cmd.formats(rest)
	case "fieldids":
		return cmd.fieldIDs(rest)
	case "check":
		return cmd.check(rest)
	case "convert":
		return cmd.convert(rest)
	case "migrate":
		return cmd.migrate(rest)
	case "export":
		return cmd.export(rest)
	}
	fs.Usage()
	return fmt.Errorf("unknown command %q", name)
}
