// The waymark command is the table author's toolkit: it validates the
// bilingual route tables, translates single paths from the command line,
// scaffolds a fresh configuration directory, and runs the dev playground
// server.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/codegangsta/cli"
	"github.com/gestorhq/waymark"
)

func main() {
	app := cli.NewApp()
	app.Name = "waymark"
	app.Usage = "bidirectional navigation path translation toolkit"
	app.Version = waymark.VERSION

	baseFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "path, p",
			Value: ".",
			Usage: "base path of the configuration directory",
		},
		cli.StringFlag{
			Name:  "mode, m",
			Value: "dev",
			Usage: "run mode section of app.conf to use",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "check",
			Usage:  "load and validate all tables, reporting configuration defects",
			Flags:  baseFlags,
			Action: runCheck,
		},
		{
			Name:      "resolve",
			Usage:     "translate a path into the opposite vocabulary",
			ArgsUsage: "PATH",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "dir, d",
					Value: "localized",
					Usage: "translation direction: localized or canonical",
				},
				cli.BoolFlag{
					Name:  "compose, c",
					Usage: "wrap the result with its routing group prefix",
				},
				cli.BoolFlag{
					Name:  "title, t",
					Usage: "also print the screen title of the result",
				},
			}, baseFlags...),
			Action: runResolve,
		},
		{
			Name:      "title",
			Usage:     "print the screen title for a canonical path",
			ArgsUsage: "PATH",
			Flags:     baseFlags,
			Action:    runTitle,
		},
		{
			Name:  "serve",
			Usage: "run the dev playground server",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "port",
					Usage: "port to listen on (defaults to http.port from app.conf)",
				},
			}, baseFlags...),
			Action: runServe,
		},
		{
			Name:      "init",
			Usage:     "write the default configuration set into a directory",
			ArgsUsage: "DIR",
			Action:    runInit,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runCheck loads the tables without going through waymark.Init, so defects
// are reported instead of aborting the process.
func runCheck(c *cli.Context) error {
	base := c.String("path")

	cfg := waymark.NewEmptyConfig()
	cfgPath := filepath.Join(base, waymark.ConfigFile)
	if _, err := os.Stat(cfgPath); err == nil {
		cfg, err = waymark.LoadConfig(cfgPath)
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("defect: %s", err), 1)
		}
	}
	if mode := c.String("mode"); cfg.HasSection(mode) {
		cfg.SetSection(mode)
	}

	tables, err := waymark.LoadTables(base, cfg)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("defect: %s", err), 1)
	}

	if findings := tables.Vet(); len(findings) > 0 {
		for _, finding := range findings {
			fmt.Fprintln(os.Stderr, "defect:", finding)
		}
		return cli.NewExitError(fmt.Sprintf("%d defect(s) found", len(findings)), 1)
	}

	fmt.Printf("ok: %d routes, %d vocabulary entries (%s)\n",
		len(tables.Table.Decls()), tables.Vocab.Len(), tables.Vocab.Locale())
	return nil
}

func runResolve(c *cli.Context) error {
	p := c.Args().First()
	if p == "" {
		return cli.NewExitError("no path given", 1)
	}

	waymark.Init(c.String("mode"), c.String("path"))

	result := waymark.MainNav.Resolve(p, waymark.ParseDirection(c.String("dir")))
	if c.Bool("compose") {
		result = waymark.MainNav.Compose(result)
	}
	fmt.Println(result)

	if c.Bool("title") {
		fmt.Println(waymark.MainNav.ScreenTitle(p))
	}
	return nil
}

func runTitle(c *cli.Context) error {
	p := c.Args().First()
	if p == "" {
		return cli.NewExitError("no path given", 1)
	}

	waymark.Init(c.String("mode"), c.String("path"))
	fmt.Println(waymark.MainNav.ScreenTitle(p))
	return nil
}

func runServe(c *cli.Context) error {
	waymark.Init(c.String("mode"), c.String("path"))
	waymark.Run(c.Int("port"))
	return nil
}

func runInit(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		dir = "."
	}
	if err := waymark.WriteSkeleton(dir); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Println("Configuration written to", dir)
	return nil
}
