package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"adventure-us/app"
	"adventure-us/config"
	"adventure-us/logger"
	"adventure-us/services"
)

func main() {
	cliApp := cli.App{
		Name:  "adventure",
		Usage: "pick a random place to eat near a location",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the full result as JSON instead of the summary",
			},
		},
		Commands: []*cli.Command{{
			Name:        "random",
			Description: "find one random open food venue",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "location",
					Aliases:  []string{"l"},
					Usage:    "free-text place, e.g. \"Philadelphia, PA\"",
					Required: true,
				},
				&cli.IntFlag{
					Name:    "radius",
					Aliases: []string{"r"},
					Usage:   "search radius in miles (1-50)",
				},
				&cli.BoolFlag{
					Name:  "near",
					Usage: "search by place name instead of geocoding to a coordinate",
				},
				&cli.StringFlag{
					Name:  "category",
					Usage: "keep only venues whose categories contain this text",
				},
				&cli.StringFlag{
					Name:  "category-id",
					Usage: "restrict the upstream search to a category id or slug",
				},
			},
			Action: withApp(func(a *app.App, ctx *cli.Context) error {
				req := services.Request{
					Location:    ctx.String("location"),
					RadiusMiles: ctx.Int("radius"),
					Category:    ctx.String("category"),
				}
				if ctx.Bool("near") {
					req.Mode = services.ModePlace
				}
				if ref := ctx.String("category-id"); ref != "" {
					c, err := a.Categories.Resolve(ctx.Context, ref)
					if err != nil {
						return err
					}
					req.CategoryID = c.ID
				}

				d, err := a.Venues.FindRandom(ctx.Context, req)
				if err != nil {
					return err
				}
				if ctx.Bool("json") {
					return printJSON(d)
				}
				fmt.Println(d.Display.Summary.Text)
				return nil
			}),
		}, {
			Name:        "categories",
			Description: "list the known food categories",
			Action: withApp(func(a *app.App, ctx *cli.Context) error {
				categories, err := a.Categories.List(ctx.Context)
				if err != nil {
					return err
				}
				if ctx.Bool("json") {
					return printJSON(categories)
				}
				for _, c := range categories {
					fmt.Printf("%-6s %-28s %s\n", strconv.Itoa(c.ID), c.Name, c.Slug)
				}
				return nil
			}),
		}, {
			Name:        "geocode",
			Description: "resolve a place to latitude,longitude",
			ArgsUsage:   "<place>",
			Action: withApp(func(a *app.App, ctx *cli.Context) error {
				if ctx.NArg() != 1 {
					return fmt.Errorf("usage: adventure geocode <place>")
				}
				coord, err := a.Venues.Geocode(ctx.Context, ctx.Args().First())
				if err != nil {
					return err
				}
				if ctx.Bool("json") {
					return printJSON(coord)
				}
				fmt.Println(coord.String())
				return nil
			}),
		}},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func withApp(f func(*app.App, *cli.Context) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// stdout belongs to the command output; logs only go to the file
		// when one is configured.
		lc := cfg.Logger()
		if cfg.LogFile == "" {
			logger.SetGlobal(logger.Nop())
		} else {
			lc.Output = "file"
			l, err := logger.New(lc)
			if err != nil {
				return err
			}
			defer l.Sync()
			logger.SetGlobal(l)
		}

		a, err := app.New(ctx.Context, cfg, logger.L())
		if err != nil {
			return err
		}
		defer a.Close(ctx.Context)
		return f(a, ctx)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
