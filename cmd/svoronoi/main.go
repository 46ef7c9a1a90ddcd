// Command svoronoi is a small demo around the svoronoi library: it
// generates random sphere points and builds their Voronoi diagram,
// printing a summary table.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/RomanAkberov/spherical-voronoi"
	"github.com/RomanAkberov/spherical-voronoi/internal/builder"
)

func main() {
	cmd := &cli.Command{
		Name:  "svoronoi",
		Usage: "build and inspect spherical Voronoi diagrams",
		Commands: []*cli.Command{
			buildCommand(),
			genCommand(),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "svoronoi:", err)
		os.Exit(1)
	}
}

type sitePayload struct {
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Z     float64 `json:"z,omitempty"`
	Theta float64 `json:"theta,omitempty"`
	Phi   float64 `json:"phi,omitempty"`
}

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "build the Voronoi diagram of a JSON site list",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Usage: "path to a JSON site array, - for stdin", Value: "-"},
			&cli.UintFlag{Name: "relaxations", Usage: "number of Lloyd relaxation passes", Value: 1},
			&cli.BoolFlag{Name: "trace", Usage: "log sweep events at trace level"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			points, err := readSites(cmd.String("in"))
			if err != nil {
				return err
			}
			var opts []svoronoi.Option
			if cmd.Bool("trace") {
				logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: builder.LevelTrace}))
				opts = append(opts, svoronoi.WithLogger(logger))
			}
			d, err := svoronoi.Build(points, cmd.Uint("relaxations"), opts...)
			if err != nil {
				return err
			}
			return printSummary(d)
		},
	}
}

func genCommand() *cli.Command {
	return &cli.Command{
		Name:  "gen",
		Usage: "emit N random unit-sphere sites as JSON",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "n", Usage: "number of sites", Value: 20},
			&cli.Uint64Flag{Name: "seed", Usage: "PRNG seed"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rng := rand.New(rand.NewPCG(cmd.Uint64("seed"), cmd.Uint64("seed")^0x9e3779b97f4a7c15))
			sites := make([]sitePayload, cmd.Uint("n"))
			for i := range sites {
				// Uniform sampling on the sphere via the standard
				// z-uniform / phi-uniform construction.
				z := 2*rng.Float64() - 1
				phi := 2 * math.Pi * rng.Float64()
				r := math.Sqrt(1 - z*z)
				sites[i] = sitePayload{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
			}
			return json.NewEncoder(os.Stdout).Encode(sites)
		},
	}
}

func readSites(path string) ([]svoronoi.Point, error) {
	var data []byte
	var err error
	if path == "-" || path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("svoronoi: reading sites: %w", err)
	}
	var payloads []sitePayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("svoronoi: parsing sites: %w", err)
	}
	points := make([]svoronoi.Point, len(payloads))
	for i, p := range payloads {
		if p.X == 0 && p.Y == 0 && p.Z == 0 {
			points[i] = svoronoi.FromAngles(p.Theta, p.Phi)
		} else {
			points[i] = svoronoi.FromCartesian(p.X, p.Y, p.Z)
		}
	}
	return points, nil
}

func printSummary(d *svoronoi.Diagram) error {
	cells := d.Cells()
	minArea, maxArea := math.Inf(1), math.Inf(-1)
	for _, c := range cells {
		area := d.CellArea(c)
		minArea = math.Min(minArea, area)
		maxArea = math.Max(maxArea, area)
	}
	if len(cells) == 0 {
		minArea, maxArea = 0, 0
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Spherical Voronoi Diagram")
	t.AppendHeader(table.Row{"cells", "vertices", "edges", "min area", "max area"})
	t.AppendRow(table.Row{len(cells), len(d.Vertices()), len(d.Edges()), minArea, maxArea})
	t.Render()
	return nil
}
