package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "instructorhub",
		Usage: "Instructor onboarding service",
		Commands: []*cli.Command{
			serveCommand,
			configCommand,
			nanoidCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
