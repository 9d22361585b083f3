package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ubck/survey-cli/internal/route"
)

var routesOut string

var routesCmd = &cobra.Command{
	Use:   "routes <area>",
	Short: "Export a survey area's route shapefiles as GeoJSON",
	Long: "Loads the configured line/polygon/point shapefiles for an area, " +
		"assigns sector colors and label anchors, and writes a GeoJSON " +
		"FeatureCollection for the map renderer.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		spec, ok := cfg.Routes.Area(args[0])
		if !ok {
			names := make([]string, 0, len(cfg.Routes.Areas))
			for _, a := range cfg.Routes.Areas {
				names = append(names, a.Name)
			}
			return eris.Errorf("unknown area %q (configured: %v)", args[0], names)
		}

		area, err := route.LoadArea(ctx, spec)
		if err != nil {
			return err
		}

		data, err := route.EncodeGeoJSON(area)
		if err != nil {
			return err
		}

		if routesOut == "" {
			_, err = os.Stdout.Write(append(data, '\n'))
			return eris.Wrap(err, "write geojson")
		}

		if err := os.WriteFile(routesOut, data, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", routesOut)
		}
		zap.L().Info("routes exported",
			zap.String("area", area.Name),
			zap.Int("features", len(area.Features)),
			zap.String("path", routesOut),
		)
		return nil
	},
}

func init() {
	routesCmd.Flags().StringVar(&routesOut, "out", "", "output file (default stdout)")
	rootCmd.AddCommand(routesCmd)
}
