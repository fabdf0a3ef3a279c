package command

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/shurlty-go/internal/cli/output"
	"github.com/yndnr/shurlty-go/internal/cli/view"
)

// LinksCommand returns the links subcommand group.
func LinksCommand() *cli.Command {
	return &cli.Command{
		Name:  "links",
		Usage: "Manage your short links",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List your links",
				Action:  linksList,
			},
			{
				Name:      "create",
				Usage:     "Shorten a URL",
				ArgsUsage: "URL",
				Action:    linksCreate,
			},
			{
				Name:      "qr",
				Usage:     "Print a QR code for a short link",
				ArgsUsage: "CODE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "png",
						Usage: "Write a PNG image to this file instead",
					},
					&cli.IntFlag{
						Name:  "size",
						Value: 256,
						Usage: "PNG size in pixels",
					},
				},
				Action: linksQR,
			},
		},
	}
}

func linksList(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	if err := requireLogin(c, env); err != nil {
		return err
	}

	page := env.App.LinksPage()
	if err := page.Load(c.Context); err != nil {
		return sessionError(env, page.Err(), err)
	}

	items := page.Items()
	if env.Format == output.FormatTable {
		return view.RenderLinksTable(env.Out, items, false, "", env.Links.ShortURL)
	}
	for i := range items {
		items[i].ShortURL = env.Links.ShortURL(items[i].Code)
	}
	return env.Formatter().Format(env.Out, items)
}

func linksCreate(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return fmt.Errorf("URL required")
	}
	if err := requireLogin(c, env); err != nil {
		return err
	}

	f := env.App.CreateForm()
	f.SetURL(strings.Join(c.Args().Slice(), " "))
	if err := f.Submit(c.Context); err != nil {
		return sessionError(env, f.Err(), err)
	}

	created := f.Created()
	if env.Format == output.FormatTable {
		fmt.Fprintf(env.Out, "Short URL: %s\n", created.ShortURL)
		fmt.Fprintf(env.Out, "Expires:   %s\n", created.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	}
	return env.Formatter().Format(env.Out, created)
}

func linksQR(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	code := c.Args().First()
	if code == "" {
		return fmt.Errorf("short code required")
	}
	if err := requireLogin(c, env); err != nil {
		return err
	}

	url := env.Links.ShortURL(code)
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("generate qr code: %w", err)
	}

	if path := c.String("png"); path != "" {
		if err := q.WriteFile(c.Int("size"), path); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		fmt.Fprintf(env.Out, "QR code for %s written to %s\n", url, path)
		return nil
	}

	fmt.Fprint(env.Out, q.ToSmallString(false))
	fmt.Fprintln(env.Out, url)
	return nil
}
