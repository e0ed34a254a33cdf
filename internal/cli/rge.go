package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/logger"
	"github.com/aPeter1/musrfit-fork-sub004/internal/usecase"
)

func runRge(cmd *cobra.Command, opts rootOptions) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	setNo, err := parseSetNo(opts.set)
	if err != nil {
		fmt.Fprintf(errOut, "\n**ERROR** %v.\n\n", err)
		return reported(exitCode(err), err)
	}

	rep, err := usecase.NewInspectRge(usecase.OpenRge()).Execute(opts.xml, setNo)
	if err != nil && rep.Sets == nil {
		logger.L().Error("rge handler invalid", "path", opts.xml, "err", err)
		fmt.Fprintf(errOut, "\n>> **ERROR** startup handler too unhappy. Will terminate unfriendly, sorry.\n")
		fmt.Fprintf(errOut, ">> %v\n\n", err)
		return reported(exitInvalid, err)
	}

	if opts.dump {
		printDump(out, rep)
	}
	if err != nil {
		fmt.Fprintf(errOut, "\n**ERROR** %s.\n\n", setErrorMessage(err, rep))
		return reported(exitSetOutside, err)
	}
	if rep.Set != nil {
		printSet(out, rep.SetNo, *rep.Set)
	}
	return nil
}

func setErrorMessage(err error, rep usecase.RgeReport) string {
	switch {
	case errors.Is(err, usecase.ErrSetZero):
		return "rge set-number count start at 1 not 0"
	case errors.Is(err, usecase.ErrSetOutOfRange):
		return fmt.Sprintf("requested set number %d > number of rge-data sets (%d)", rep.SetNo, len(rep.Sets))
	default:
		return err.Error()
	}
}

func printDump(w io.Writer, rep usecase.RgeReport) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "RGE info from xml-startup-file %s\n", rep.Path)
	fmt.Fprintf(w, "number of rge data sets: %d\n", len(rep.Sets))
	for i, s := range rep.Sets {
		fmt.Fprintf(w, "rge set #%d: energy: %s (eV), no of particles: %s\n", i+1, num(s.Energy), num(s.NoOfParticles))
	}
	fmt.Fprintln(w)
}

func printSet(w io.Writer, n int, s domain.RgeData) {
	fmt.Fprintf(w, "rge-data set %d: energy: %s (eV), no-of-particles: %s\n", n, num(s.Energy), num(s.NoOfParticles))
	fmt.Fprintln(w, "depth (nm), ampl, amplNorm")
	for i := range s.Depth {
		fmt.Fprintf(w, "%s, %s, %s\n", num(s.Depth[i]), num(s.Amplitude[i]), num(s.NN[i]))
	}
}

// num formats with 6 significant digits.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
