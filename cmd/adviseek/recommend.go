package main

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"adviseek/internal/advisor"
	"adviseek/internal/export"
	"adviseek/internal/sftpclient"
	"adviseek/internal/store/postgres"
	"adviseek/internal/store/sqlite"
)

type responseStore interface {
	advisor.ResponseStore
	io.Closer
}

// uploader is swapped in tests.
var uploader = sftpclient.UploadFile

func (a *app) store(ctx context.Context, usePostgres bool, dsn string) (responseStore, error) {
	if !usePostgres {
		return sqlite.Open(a.cfg.DBPath)
	}
	if dsn == "" {
		return nil, errors.New("--database-url (DATABASE_URL) is required with --postgres")
	}
	return postgres.Open(ctx, dsn)
}

func (a *app) recommendCmd() *cli.Command {
	userFlag := &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "Id of the user whose responses are scored",
		Required: true,
	}
	postgresFlag := &cli.BoolFlag{
		Name:  "postgres",
		Usage: "Read responses from the hosted PostgreSQL database instead of Sqlite",
	}
	databaseURLFlag := &cli.StringFlag{
		Name:  "database-url",
		Usage: "PostgreSQL connection string",
		Value: a.cfg.DatabaseURL,
	}
	limitFlag := &cli.IntFlag{
		Name:  "limit",
		Usage: "Number of recommended majors modules are drawn from (negative: all)",
		Value: a.cfg.MajorLimit,
	}
	outFlag := &cli.StringFlag{
		Name:  "out",
		Usage: "Writes the recommended modules as CSV to this file",
	}
	sftpFlag := &cli.BoolFlag{
		Name:  "sftp",
		Usage: "Uploads the CSV written with --out over SFTP",
	}

	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"r"},
		Usage:   "Scores a user's quiz responses and recommends majors and modules",
		Flags:   []cli.Flag{userFlag, postgresFlag, databaseURLFlag, limitFlag, outFlag, sftpFlag},
		Action: func(c *cli.Context) error {
			out := c.String(outFlag.Name)
			if c.Bool(sftpFlag.Name) && out == "" {
				return errors.New("--sftp requires --out")
			}

			src, err := a.source()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(c.Context, 5*time.Minute)
			defer cancel()

			store, err := a.store(ctx, c.Bool(postgresFlag.Name), c.String(databaseURLFlag.Name))
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := advisor.NewService(store, src, c.Int(limitFlag.Name)).Recommend(ctx, c.String(userFlag.Name))
			if err != nil {
				return err
			}

			if out != "" {
				if err := export.WriteModulesCSVFile(out, res.Modules); err != nil {
					return err
				}
				log.WithField("file", out).Info("modules written")

				if c.Bool(sftpFlag.Name) {
					if err := uploader(ctx, a.cfg.SFTP(), out, filepath.Base(out)); err != nil {
						return errors.Wrap(err, "failed to upload modules")
					}
				}
			}

			return a.encode(res)
		},
	}
}
