package main

import (
	"os"

	"github.com/connctd/merkdown"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "merkdown"
	app.Usage = "Convert markdown into pptx, odp and beamer slides"
	app.UsageText = "merkdown [command] [options] <input.md>, the command defaults to convert"
	app.Version = merkdown.Version
	app.Flags = conversionFlags
	app.OnUsageError = onUsageError
	app.Commands = []cli.Command{
		convertCommand,
		watchCommand,
		serveCommand,
		templateCommand,
	}
	return app
}

// withDefaultCommand inserts the convert command unless args already name a
// command or ask for help. Only subcommands let flags follow the input file.
func withDefaultCommand(app *cli.App, args []string) []string {
	if len(args) > 1 {
		switch args[1] {
		case "help", "h", "-h", "--help", "-v", "--version":
			return args
		}
		if app.Command(args[1]) != nil {
			return args
		}
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, args[0], convertCommand.Name)
	if len(args) > 1 {
		out = append(out, args[1:]...)
	}
	return out
}

func onUsageError(ctx *cli.Context, err error, isSubcommand bool) error {
	return usageError("%v", err)
}

func runMain(args []string) error {
	app := newApp()
	return app.Run(withDefaultCommand(app, args))
}

func main() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if err := runMain(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
