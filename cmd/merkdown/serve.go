package main

import (
	"github.com/connctd/merkdown"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var httpAddr string

var serveCommand = cli.Command{
	Name:        "serve",
	Aliases:     []string{"s"},
	Description: "Serve an HTML preview of the presentation that reloads on change",
	Usage:       "serve [--addr :8080] <input.md>",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:        "addr",
			Usage:       "Specify the address to listen on",
			Value:       ":8080",
			Destination: &httpAddr,
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	},
	OnUsageError: onUsageError,
	Action: func(ctx *cli.Context) error {
		if ctx.Bool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
		input := ctx.Args().First()
		if input == "" {
			return usageError("missing input markdown file")
		}

		cctx, cancel := signalContext()
		defer cancel()

		server, err := merkdown.NewPresentationServer(cctx, input, httpAddr)
		if err != nil {
			return err
		}
		watcher, err := watchFile(input)
		if err != nil {
			return err
		}
		if err := server.Run(); err != nil {
			watcher.Close()
			return err
		}
		defer func() {
			if err := server.Close(); err != nil {
				log.WithError(err).Warn("preview server shutdown")
			}
		}()
		log.WithFields(log.Fields{"addr": server.Addr().String(), "input": input}).Info("serving presentation")

		return watcher.Run(cctx, func() {
			if err := server.Rerender(); err != nil {
				log.WithError(err).Error("rerender failed")
			}
		})
	},
}
