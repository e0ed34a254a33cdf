package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/evalstore"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/logger"
	"github.com/aPeter1/musrfit-fork-sub004/internal/usecase"
)

func evalCmd(v *viper.Viper) *cobra.Command {
	var (
		req     usecase.EvalRequest
		save    bool
		runsDir string
	)

	c := &cobra.Command{
		Use:   "eval <plugin>",
		Short: "Evaluate a user function plugin on a time grid",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &exitError{code: exitUsage, err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(v)
			if err != nil {
				return err
			}
			req.Plugin = args[0]

			var opts []usecase.EvalOption
			if save {
				if runsDir != "" {
					app.cfg.Paths.RunsDir = runsDir
				}
				opts = append(opts, usecase.WithEvalStore(evalstore.NewJSONStore(app.root, app.cfg, evalstore.WithIndex(true))))
			}

			art, id, err := usecase.NewEvalUserFcn(app.newUserFcn, opts...).Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			printPoints(cmd.OutOrStdout(), art.Points)
			if id != "" {
				logger.L().Info("eval scan saved", "id", id, "plugin", req.Plugin, "points", len(art.Points))
				fmt.Fprintf(cmd.ErrOrStderr(), "saved scan %s\n", id)
			}
			return nil
		},
	}

	c.Flags().Float64SliceVarP(&req.Params, "param", "p", nil, "Parameter vector (comma separated)")
	c.Flags().Float64Var(&req.TStart, "t-start", 0, "First time (µs)")
	c.Flags().Float64Var(&req.TEnd, "t-end", 10, "Last time (µs)")
	c.Flags().Float64Var(&req.TStep, "t-step", 0.1, "Time step (µs)")
	c.Flags().BoolVar(&save, "save", false, "Save the scan as JSON below the runs directory")
	c.Flags().StringVar(&runsDir, "runs-dir", "", "Runs directory (overrides rgehandler.yaml)")
	return c
}

func printPoints(w io.Writer, pts []domain.EvalPoint) {
	fmt.Fprintln(w, "t (us), value")
	for _, p := range pts {
		fmt.Fprintf(w, "%s, %s\n", num(p.T), num(p.Value))
	}
}
