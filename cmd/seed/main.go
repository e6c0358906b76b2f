package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"ProductStore/internal/fixtures"
	"ProductStore/pkg/kit"
)

func main() {
	log := kit.NewLogger("seed", os.Getenv("LOG_LEVEL"))
	defer func() { _ = log.Sync() }()

	app := &cli.App{
		Name:  "seed",
		Usage: "reset a catalog service and load products through its HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "catalog service base URL",
				Value:   "http://localhost:8080",
				EnvVars: []string{"BASE_URL"},
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "fixture table (CSV or pipe table), - for stdin",
				Value:   "-",
			},
			&cli.BoolFlag{
				Name:  "reset-only",
				Usage: "delete every product and stop",
			},
		},
		Action: func(c *cli.Context) error {
			l := fixtures.NewLoader(c.String("base-url"), log)

			if c.Bool("reset-only") {
				n, err := l.Reset(c.Context)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "deleted %d products\n", n)
				return nil
			}

			rows, err := readRows(c.String("file"))
			if err != nil {
				return err
			}

			ids, err := l.Load(c.Context, rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "created %d products: %v\n", len(ids), ids)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
}

func readRows(path string) ([]fixtures.Row, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return fixtures.ReadTable(r)
}
