package main

import (
	"github.com/connctd/merkdown"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var templateCommand = cli.Command{
	Name:      "template",
	Aliases:   []string{"t"},
	Usage:     "Write the built-in beamer template to a directory for customisation",
	ArgsUsage: "[dir]",
	Action: func(ctx *cli.Context) error {
		destDir := ctx.Args().First()
		if destDir == "" {
			destDir = "."
		}
		path, err := merkdown.EmitTeXTemplate(destDir)
		if err != nil {
			return err
		}
		log.WithField("path", path).Info("wrote template")
		return nil
	},
}
