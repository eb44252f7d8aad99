package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "StayLoft Community"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Serves the contest, submission, vote, and comment apis.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start the cron service",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Runs scheduled jobs, including contest period resolution.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Brings the database schema to the latest version.`,
		},
	}

	s.app = app
}
