package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"adviseek/internal/config"
	"adviseek/internal/logging"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	name    = "adviseek"
	version = "v0.0.1-default"
	commit  = ""
)

// app holds the settings shared by every command.
type app struct {
	cfg    config.Config
	out    io.Writer
	format string
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fatalErr(err)
	}
	cfg := config.Load()
	logging.Init(cfg.LogLevel)

	if err := newApp(cfg, os.Stdout).Run(os.Args); err != nil {
		fatalErr(err)
	}
}

func newApp(cfg config.Config, out io.Writer) *cli.App {
	a := &app{cfg: cfg, out: out, format: formatJSON}

	debugFlag := &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}
	formatFlag := &cli.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}
	dbFlag := &cli.StringFlag{
		Name:  "db",
		Usage: "Path to the Sqlite response database",
		Value: cfg.DBPath,
	}
	dataDirFlag := &cli.StringFlag{
		Name:  "data-dir",
		Usage: "Local reference data directory",
		Value: cfg.DataDir,
	}
	dataURLFlag := &cli.StringFlag{
		Name:  "data-url",
		Usage: "Base URL of the published reference data",
		Value: cfg.DataURL,
	}

	return &cli.App{
		Name:     name,
		Version:  fmt.Sprintf("%s - (commit: %s)", version, commit),
		Compiled: time.Now(),
		Usage:    "Derives RIASEC and work value codes and recommends majors and modules",
		Writer:   out,
		Flags: []cli.Flag{
			debugFlag,
			formatFlag,
			dbFlag,
			dataDirFlag,
			dataURLFlag,
		},
		Commands: []*cli.Command{
			a.moduleIDCmd(),
			a.codeCmd(),
			a.importCmd(),
			a.majorsCmd(),
			a.recommendCmd(),
		},
		Before: func(c *cli.Context) error {
			if c.Bool(debugFlag.Name) {
				log.SetLevel(log.DebugLevel)
			}

			switch f := c.String(formatFlag.Name); f {
			case formatJSON, "":
				a.format = formatJSON
			case formatYAML, "yml":
				a.format = formatYAML
			default:
				return errors.Errorf("unsupported format: %s", f)
			}

			a.cfg.DBPath = c.String(dbFlag.Name)
			a.cfg.DataDir = c.String(dataDirFlag.Name)
			a.cfg.DataURL = c.String(dataURLFlag.Name)
			return nil
		},
	}
}

func (a *app) encode(v any) error {
	if a.format == formatYAML {
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "error encoding yaml")
		}
		return enc.Close()
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(err, "error encoding %T", v)
	}
	return nil
}

func fatalErr(err error) {
	if err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}
