package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"adviseek/internal/catalog"
	"adviseek/internal/domain"
	"adviseek/internal/mappers"
	"adviseek/internal/profile"
)

type moduleIDResult struct {
	Code string `json:"code" yaml:"code"`
	ID   int64  `json:"id" yaml:"id"`
}

type codeResult struct {
	Kind       string   `json:"kind" yaml:"kind"`
	Components []string `json:"components" yaml:"components"`
	Code       string   `json:"code" yaml:"code"`
}

func (a *app) moduleIDCmd() *cli.Command {
	return &cli.Command{
		Name:      "module-id",
		Aliases:   []string{"id"},
		Usage:     "Derives the numeric id of module codes",
		ArgsUsage: "CODE...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.ShowSubcommandHelp(c)
			}
			list := make([]moduleIDResult, 0, c.NArg())
			for _, code := range c.Args().Slice() {
				list = append(list, moduleIDResult{Code: code, ID: catalog.ModuleID(code)})
			}
			return a.encode(list)
		},
	}
}

func (a *app) codeCmd() *cli.Command {
	kindFlag := &cli.StringFlag{
		Name:  "kind",
		Usage: "Category family [riasec, work-value]",
		Value: profile.RIASEC.Name,
	}

	return &cli.Command{
		Name:      "code",
		Usage:     "Forms the signature code of categories ordered by score, highest first",
		ArgsUsage: "LABEL...",
		Flags:     []cli.Flag{kindFlag},
		Action: func(c *cli.Context) error {
			kind, ok := profile.KindByName(strings.TrimSpace(c.String(kindFlag.Name)))
			if !ok {
				return errors.Errorf("unknown kind: %s", c.String(kindFlag.Name))
			}
			labels := c.Args().Slice()
			return a.encode(codeResult{
				Kind:       kind.Name,
				Components: labels,
				Code:       mappers.FormCode(rank(labels), kind.Mapper),
			})
		},
	}
}

// rank turns labels given in order into scored categories.
func rank(labels []string) []domain.ScoredCategory {
	out := make([]domain.ScoredCategory, len(labels))
	for i, l := range labels {
		score := float64(len(labels) - i)
		out[i] = domain.ScoredCategory{Component: l, Average: score, Score: score}
	}
	return out
}
