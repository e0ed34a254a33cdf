// Package cli implements the rgehandler command line tool.
//
// Without subcommand it behaves like the classic rgeHandlerTest tool:
//
//	rgehandler -x <startup.xml> [-d] [-s <no>]
//
// and reports failures through its exit code (see exitCode).
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aPeter1/musrfit-fork-sub004/internal/buildinfo"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/logger"
	"github.com/aPeter1/musrfit-fork-sub004/internal/usecase"
)

const envPrefix = "RGEHANDLER"

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	st := &state{}
	defer st.close()

	cmd := newRootCmd(viper.New(), st)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	code := exitCode(err)
	if err != nil && !isReported(err) {
		fmt.Fprintf(stderr, "\n**ERROR** %v\n\n", err)
		if code == exitUsage {
			fmt.Fprint(stderr, cmd.UsageString())
		}
	}
	return code
}

// state holds what has to be released after the command ran.
type state struct {
	cleanup func() error
}

func (s *state) close() {
	if s.cleanup != nil {
		_ = s.cleanup()
		s.cleanup = nil
	}
}

type rootOptions struct {
	xml     string
	dump    bool
	set     string
	version bool
	debug   bool
}

func newRootCmd(v *viper.Viper, st *state) *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "rgehandler",
		Short:         "Inspect TRIM.SP rge depth profiles listed in a startup file",
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(v, st)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.version {
				fmt.Fprintf(cmd.OutOrStdout(), "\nrgehandler Version: %s\n\n", buildinfo.Version)
				return nil
			}
			if cmd.Flags().NFlag() == 0 {
				return cmd.Usage()
			}
			opts.xml = v.GetString("xml")
			return runRge(cmd, opts)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: exitUsage, err: err}
	})

	f := cmd.Flags()
	f.StringVarP(&opts.xml, "xml", "x", "", "path-name of the xml-startup file (env "+envPrefix+"_XML)")
	f.BoolVarP(&opts.dump, "dump", "d", false, "dump rge-infos")
	f.StringVarP(&opts.set, "set", "s", "", "dump rge-vector number <no>")
	f.BoolVarP(&opts.version, "version", "v", false, "rgehandler version")

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to .rgehandler/logs/rgehandler.log (env "+envPrefix+"_DEBUG)")

	bindEnv(v, f, cmd.PersistentFlags())

	cmd.AddCommand(initCmd(), plotCmd(v), evalCmd(v), versionCmd())
	return cmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &exitError{code: exitUsage, err: fmt.Errorf("unknown command or argument %q for %q", args[0], cmd.CommandPath())}
	}
	return nil
}

func bindEnv(v *viper.Viper, flags ...*pflag.FlagSet) {
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for _, fs := range flags {
		for _, name := range []string{"xml", "debug"} {
			if fl := fs.Lookup(name); fl != nil {
				_ = v.BindPFlag(name, fl)
			}
		}
	}
	_ = v.BindEnv(startupPathKey, startupPathEnv)
}

func setupLogging(v *viper.Viper, st *state) error {
	if !v.GetBool("debug") {
		return nil
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	cleanup, err := logger.Setup(logger.Config{Root: wd, Debug: true})
	if err != nil {
		return err
	}
	st.cleanup = cleanup
	return nil
}

// parseSetNo parses the -s/--set argument; "" and "-1" mean no set.
func parseSetNo(s string) (int, error) {
	if s == "" {
		return usecase.NoSet, nil
	}
	n, err := strconv.Atoi(s)
	if err == nil {
		return n, nil
	}

	msg := fmt.Sprintf("set number '%s' leads to an unexpected error", s)
	if ne, ok := err.(*strconv.NumError); ok {
		switch ne.Err {
		case strconv.ErrSyntax:
			msg = fmt.Sprintf("set number '%s' is not a number", s)
		case strconv.ErrRange:
			msg = fmt.Sprintf("set number '%s' is out-of-range", s)
		}
	}
	return 0, &exitError{code: exitBadSetNo, msg: msg, err: err}
}
