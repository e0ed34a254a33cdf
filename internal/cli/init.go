package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/startupgen"
	"github.com/aPeter1/musrfit-fork-sub004/internal/usecase"
)

func initCmd() *cobra.Command {
	var (
		out      string
		dataPath string
		prefix   string
		energies []int
		comment  string
		force    bool
	)

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a depth profile startup file (xml, or yaml for a .yaml/.yml output)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startup := domain.RgeStartup{
				DataPath: dataPath,
				FlnPre:   prefix,
				Energies: energies,
			}

			var opts []startupgen.Option
			if comment != "" {
				opts = append(opts, startupgen.WithComment(comment))
			}

			uc := usecase.NewInitStartup(startupgen.NewGenerator(opts...))
			if err := uc.Execute(out, startup, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d energies)\n", out, len(energies))
			return nil
		},
	}

	c.Flags().StringVarP(&out, "output", "o", domain.DefaultConfig().Startup.DepthProfileFile, "Startup file to write")
	c.Flags().StringVar(&dataPath, "data-path", "", "Directory of the rge-files (required)")
	c.Flags().StringVar(&prefix, "prefix", "", "rge file name prefix, e.g. LCCO_E (required)")
	c.Flags().IntSliceVarP(&energies, "energy", "e", nil, "Implantation energies in eV (repeatable or comma separated)")
	c.Flags().StringVar(&comment, "comment", "", "Comment stored in the startup file")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing startup file")

	_ = c.MarkFlagRequired("data-path")
	_ = c.MarkFlagRequired("prefix")
	return c
}
