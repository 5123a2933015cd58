package main

import (
	"fmt"
	"image/png"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	mafe "github.com/maproom/mafe"
	"github.com/maproom/mafe/internal/ast"
	"github.com/maproom/mafe/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		mapFile    string
		configFile string
		width      int
		height     int
		format     string
		out        string
		labels     bool
		labelSeed  int64
		verbose    bool

		east, north, west, south float64
	)

	cmd := &cobra.Command{
		Use:          "mafe",
		Short:        "A convivial map processor",
		Long:         "mafe compiles a map specification into drawing operations and optionally renders them.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}

			cfg := config.Default()
			if configFile != "" {
				loaded, err := config.Load(configFile)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			applyFlags(cmd.Flags(), &cfg, width, height, format, out, labels, labelSeed)

			spec, err := mafe.ParseFile(mapFile)
			if err != nil {
				return err
			}

			ops, err := mafe.Run(spec)
			if err != nil {
				return err
			}

			if cfg.Labels {
				ops = mafe.PlaceLabels(ops, cfg.LabelSeed)
			}

			extent, _ := spec.Map.Extent()
			if cmd.Flags().Changed("west") || cmd.Flags().Changed("east") ||
				cmd.Flags().Changed("south") || cmd.Flags().Changed("north") {
				extent = &ast.Extent{
					MinX: ast.Float(west),
					MinY: ast.Float(south),
					MaxX: ast.Float(east),
					MaxY: ast.Float(north),
				}
			}

			switch cfg.Format {
			case "ops":
				for _, o := range ops {
					fmt.Fprintf(cmd.OutOrStdout(), "op> %s\n", o)
				}
				return nil
			case "json":
				framed := mafe.Frame(*extent, float64(cfg.Width), float64(cfg.Height), ops)
				b, err := mafe.MarshalOpsJSON(framed)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			case "png":
				framed := mafe.Frame(*extent, float64(cfg.Width), float64(cfg.Height), ops)
				img := mafe.RenderImage(framed, cfg.Width, cfg.Height)
				f, err := os.Create(cfg.Out)
				if err != nil {
					return err
				}
				defer f.Close()
				return png.Encode(f, img)
			default:
				return fmt.Errorf("unknown format %q, want ops, json or png", cfg.Format)
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&mapFile, "map_file", "f", "", "the map file to process")
	flags.StringVarP(&configFile, "config", "c", "", "YAML render configuration")
	flags.IntVar(&width, "width", 800, "canvas width in pixels")
	flags.IntVar(&height, "height", 600, "canvas height in pixels")
	flags.StringVar(&format, "format", "ops", "output format: ops, json or png")
	flags.StringVarP(&out, "out", "o", "map.png", "output path for png format")
	flags.BoolVar(&labels, "labels", false, "run the label placement pass")
	flags.Int64Var(&labelSeed, "label_seed", 1, "seed for the label placement pass")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.Float64Var(&east, "east", 0, "view extent east bound")
	flags.Float64Var(&north, "north", 0, "view extent north bound")
	flags.Float64Var(&west, "west", 0, "view extent west bound")
	flags.Float64Var(&south, "south", 0, "view extent south bound")
	cobra.CheckErr(cmd.MarkFlagRequired("map_file"))

	return cmd
}

// applyFlags overrides configuration fields whose flags were set
// explicitly.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config, width, height int, format, out string, labels bool, labelSeed int64) {
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("out") {
		cfg.Out = out
	}
	if flags.Changed("labels") {
		cfg.Labels = labels
	}
	if flags.Changed("label_seed") {
		cfg.LabelSeed = labelSeed
	}
}
