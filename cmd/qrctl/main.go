package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/qrcodeapi/service/internal/config"
	"github.com/qrcodeapi/service/internal/logging"
	"github.com/qrcodeapi/service/internal/qrcode"
	"github.com/qrcodeapi/service/internal/storage"
)

func dataArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("%s expects exactly one <data> argument", c.Command.Name)
	}
	return c.Args().First(), nil
}

func keyHandler(c *cli.Context) error {
	data, err := dataArg(c)
	if err != nil {
		return err
	}
	key, err := qrcode.DeriveKey(data)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, key)
	return err
}

func renderHandler(c *cli.Context) error {
	data, err := dataArg(c)
	if err != nil {
		return err
	}
	png, err := qrcode.NewRenderer(c.Int("size")).Render(data)
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "-" {
		_, err = c.App.Writer.Write(png)
		return err
	}
	if err := os.WriteFile(out, png, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	_, err = fmt.Fprintf(c.App.Writer, "wrote %d bytes to %s\n", len(png), out)
	return err
}

func newService(c *cli.Context) (*qrcode.Service, func(), error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.IsProduction(), c.String("log-level"))
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.New(c.Context, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return qrcode.NewService(qrcode.NewRenderer(cfg.QRSize), store, logger), func() { _ = logger.Sync() }, nil
}

func uploadHandler(c *cli.Context) error {
	data, err := dataArg(c)
	if err != nil {
		return err
	}
	svc, done, err := newService(c)
	if err != nil {
		return err
	}
	defer done()

	res, err := svc.Generate(c.Context, data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, res.URL)
	return err
}

func deleteHandler(c *cli.Context) error {
	data, err := dataArg(c)
	if err != nil {
		return err
	}
	svc, done, err := newService(c)
	if err != nil {
		return err
	}
	defer done()

	key, err := svc.Delete(c.Context, data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "deleted %s\n", key)
	return err
}

func buildCLI(w io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "qrctl"
	app.Usage = "derive keys for, render and upload QR codes"
	app.Version = "0.1.0"
	app.Writer = w
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "warn",
			Usage:   "zap log level",
			EnvVars: []string{"LOG_LEVEL"},
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "key",
			Usage:     "print the storage key for <data>",
			ArgsUsage: "<data>",
			Action:    keyHandler,
		},
		{
			Name:      "render",
			Usage:     "render <data> as a PNG QR code",
			ArgsUsage: "<data>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Value:   "qr.png",
					Usage:   "output file, - for stdout",
				},
				&cli.IntFlag{
					Name:    "size",
					Aliases: []string{"s"},
					Value:   qrcode.DefaultSize,
					Usage:   "image edge length in pixels",
				},
			},
			Action: renderHandler,
		},
		{
			Name:      "upload",
			Usage:     "render <data> and upload it to the configured store, printing the public URL",
			ArgsUsage: "<data>",
			Action:    uploadHandler,
		},
		{
			Name:      "delete",
			Usage:     "remove the stored QR code for <data>",
			ArgsUsage: "<data>",
			Action:    deleteHandler,
		},
	}

	return app
}

func main() {
	if err := buildCLI(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
