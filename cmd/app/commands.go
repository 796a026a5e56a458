package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/starford/bodygraph/internal"
	"github.com/starford/bodygraph/internal/models"
	"github.com/starford/bodygraph/internal/parser"
	pkgconfig "github.com/starford/bodygraph/pkg/config"
)

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:   "bodygraph",
		Usage:  "Human Design chart and Placidus house engine",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio",
				Action: serveMCP,
			},
			{
				Name:  "chart",
				Usage: "Compute one chart and print it as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Birth date YYYY-MM-DD"},
					&cli.StringFlag{Name: "time", Aliases: []string{"t"}, Usage: "Local birth time HH:MM"},
					&cli.FloatFlag{Name: "offset", Usage: "UTC offset in hours"},
					&cli.FloatFlag{Name: "lat", Usage: "Latitude, north positive"},
					&cli.FloatFlag{Name: "lon", Usage: "Longitude, east positive"},
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "YAML or TOML birth file, or a Markdown note with birth frontmatter"},
				},
				Action: chart,
			},
			{
				Name:  "houses",
				Usage: "Compute Placidus house cusps and print them as JSON",
				Flags: []cli.Flag{
					&cli.FloatFlag{Name: "jde", Usage: "Julian Ephemeris Day; overrides date and time"},
					&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Date YYYY-MM-DD"},
					&cli.StringFlag{Name: "time", Aliases: []string{"t"}, Usage: "Local time HH:MM"},
					&cli.FloatFlag{Name: "offset", Usage: "UTC offset in hours"},
					&cli.FloatFlag{Name: "lat", Usage: "Latitude, north positive", Required: true},
					&cli.FloatFlag{Name: "lon", Usage: "Longitude, east positive", Required: true},
				},
				Action: houses,
			},
		},
	}
}

// loadConfig reads the config file if it exists and falls back to defaults.
func loadConfig(cmd *cli.Command) (*internal.Config, string, error) {
	path := cmd.String("config")
	cfg := internal.NewDefaultConfig()
	loaded, err := pkgconfig.LoadOptional(path, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if !loaded {
		path = ""
	}
	return cfg, path, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithConfigPath(path),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, internal.WithConfig(cfg))
}

func chart(ctx context.Context, cmd *cli.Command) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	req := &models.ChartRequest{}
	if file := cmd.String("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read birth file: %w", err)
		}
		if req, err = parser.ParseBirthFile(file, data); err != nil {
			return err
		}
	}
	// Flags override file values.
	if cmd.IsSet("date") {
		req.BirthDate = cmd.String("date")
	}
	if cmd.IsSet("time") {
		req.BirthTime = cmd.String("time")
	}
	setFloat(cmd, "offset", &req.UTCOffset)
	setFloat(cmd, "lat", &req.Latitude)
	setFloat(cmd, "lon", &req.Longitude)

	result, err := internal.NewChartService(cfg).Chart(ctx, *req)
	if err != nil {
		return err
	}
	return printJSON(output(cmd), result)
}

func houses(ctx context.Context, cmd *cli.Command) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lat, lon := cmd.Float("lat"), cmd.Float("lon")
	req := models.HouseRequest{
		Date:      cmd.String("date"),
		Time:      cmd.String("time"),
		Latitude:  &lat,
		Longitude: &lon,
	}
	setFloat(cmd, "jde", &req.JDE)
	setFloat(cmd, "offset", &req.UTCOffset)

	result, err := internal.NewChartService(cfg).Houses(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(output(cmd), result)
}

func setFloat(cmd *cli.Command, name string, dst **float64) {
	if cmd.IsSet(name) {
		v := cmd.Float(name)
		*dst = &v
	}
}

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
