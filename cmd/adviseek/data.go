package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"adviseek/internal/catalog"
	"adviseek/internal/domain"
	"adviseek/internal/matching"
	"adviseek/internal/store/sqlite"
)

type importResult struct {
	File     string `json:"file" yaml:"file"`
	Imported int    `json:"imported" yaml:"imported"`
	Users    int    `json:"users" yaml:"users"`
	Duration string `json:"duration" yaml:"duration"`
}

// source picks the reference data location: a local directory first, then
// the published URL.
func (a *app) source() (catalog.Source, error) {
	switch {
	case a.cfg.DataDir != "":
		return catalog.DirSource{Root: a.cfg.DataDir}, nil
	case a.cfg.DataURL != "":
		return catalog.NewHTTPSource(a.cfg.DataURL, a.cfg.HTTPAttempts), nil
	}
	return nil, errors.New("reference data not configured: set --data-dir (ADVISEEK_DATA_DIR) or --data-url (ADVISEEK_DATA_URL)")
}

func (a *app) importCmd() *cli.Command {
	fileFlag := &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "JSON array of quiz responses (user_id, quiz_type, component, score)",
		Required: true,
	}

	return &cli.Command{
		Name:    "import",
		Aliases: []string{"i"},
		Usage:   "Imports quiz responses into the local Sqlite database",
		Flags:   []cli.Flag{fileFlag},
		Action: func(c *cli.Context) error {
			start := time.Now()
			path := c.String(fileFlag.Name)

			b, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "error reading %s", path)
			}
			var responses []domain.Response
			if err := json.Unmarshal(b, &responses); err != nil {
				return errors.Wrapf(err, "error parsing %s", path)
			}

			store, err := sqlite.Open(a.cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveResponses(c.Context, responses); err != nil {
				return errors.Wrap(err, "failed to import responses")
			}
			users, err := store.Users(c.Context)
			if err != nil {
				return err
			}

			log.WithField("count", len(responses)).Debug("responses imported")
			return a.encode(importResult{
				File:     path,
				Imported: len(responses),
				Users:    len(users),
				Duration: time.Since(start).String(),
			})
		},
	}
}

func (a *app) majorsCmd() *cli.Command {
	riasecFlag := &cli.StringFlag{
		Name:     "riasec",
		Usage:    "RIASEC signature code, e.g. IRC",
		Required: true,
	}
	workValueFlag := &cli.StringFlag{
		Name:  "work-value",
		Usage: "Work value signature code, e.g. AIW",
	}

	return &cli.Command{
		Name:    "majors",
		Aliases: []string{"m"},
		Usage:   "Matches majors against signature codes",
		Flags:   []cli.Flag{riasecFlag, workValueFlag},
		Action: func(c *cli.Context) error {
			src, err := a.source()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(c.Context, 2*time.Minute)
			defer cancel()

			mappings, err := src.OccupationMappings(ctx)
			if err != nil {
				return errors.Wrap(err, "failed to load occupation mappings")
			}
			return a.encode(matching.MatchMajors(mappings, c.String(riasecFlag.Name), c.String(workValueFlag.Name)))
		},
	}
}
