package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/profileplot"
	"github.com/aPeter1/musrfit-fork-sub004/internal/usecase"
)

func plotCmd(v *viper.Viper) *cobra.Command {
	var (
		xml  string
		out  string
		sets []int
	)

	c := &cobra.Command{
		Use:   "plot",
		Short: "Plot the stopping profiles n(z) of a startup file (png, svg, pdf, ...)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(v)
			if err != nil {
				return err
			}

			if xml == "" {
				xml = v.GetString("xml")
			}
			if xml == "" {
				if xml, err = app.finder.Locate(app.cfg.Startup.DepthProfileFile); err != nil {
					return err
				}
			}

			r := profileplot.NewRenderer(profileplot.WithSizeCM(app.cfg.Plot.WidthCM, app.cfg.Plot.HeightCM))
			if err := usecase.NewPlotProfiles(usecase.OpenRge(), r).Execute(xml, out, sets); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	c.Flags().StringVarP(&xml, "xml", "x", "", "path-name of the startup file (default: located depth profile startup file)")
	c.Flags().StringVarP(&out, "output", "o", "rge_profiles.png", "Image file to write")
	c.Flags().IntSliceVarP(&sets, "set", "s", nil, "Sets to plot, counted from 1 (default all)")
	return c
}
