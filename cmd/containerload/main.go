// Command containerload runs the end-to-end container-loading pipeline of
// spec.md §6: decode the input and Phase-2 settings documents, run the
// orchestrator, and encode the output array document. Grounded on
// original_source/main.py's argparse-driven script and
// vleiciu-go-task/main.go's stdlib-flag CLI idiom for this problem class.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	log "github.com/golang/glog"

	"github.com/sabbadino/container-optimizations/internal/errs"
	"github.com/sabbadino/container-optimizations/internal/ingest"
	"github.com/sabbadino/container-optimizations/internal/model"
	"github.com/sabbadino/container-optimizations/internal/orchestrator"
	"github.com/sabbadino/container-optimizations/internal/outdoc"
)

func main() {
	os.Exit(run())
}

func run() int {
	inputPath := flag.String("input", "", "Path to the input document (spec.md §6)")
	outputPath := flag.String("output", "", "Path to write the output document; defaults to stdout")
	noALNS := flag.Bool("no-alns", false, "skip the ALNS improvement loop (spec.md §4.9 step 4)")
	verbose := flag.Bool("verbose", false, "enable solver progress and ALNS iteration logging")
	seed := flag.Int64("seed", 0, "RNG seed for the ALNS loop and, where supported, the solver")
	flag.Parse()

	return mainArgs(*inputPath, *outputPath, orchestrator.Options{
		NoALNS:  *noALNS,
		Verbose: *verbose,
		Seed:    *seed,
	})
}

func mainArgs(inputPath, outputPath string, opts orchestrator.Options) int {
	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "containerload: -input is required")
		return errs.KindInputMalformed.ExitCode()
	}

	f, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "containerload: opening input: %v\n", err)
		return errs.KindInputMalformed.ExitCode()
	}
	defer f.Close()

	in, err := ingest.DecodeInput(f)
	if err != nil {
		return reportAndExit(err)
	}

	sf, err := os.Open(in.Step2SettingsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "containerload: opening step2_settings_file: %v\n", err)
		return errs.KindInputMalformed.ExitCode()
	}
	defer sf.Close()

	settings, err := ingest.DecodeSettings(sf)
	if err != nil {
		return reportAndExit(err)
	}

	state, err := orchestrator.Run(in, settings, opts)
	if err != nil {
		return reportAndExit(err)
	}

	out := os.Stdout
	if outputPath != "" {
		o, err := os.Create(outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "containerload: creating output: %v\n", err)
			return errs.KindSolverInternal.ExitCode()
		}
		defer o.Close()
		out = o
	}

	if err := outdoc.Encode(out, in.Container.Size, toOutdocContainers(state, in.Boxes)); err != nil {
		fmt.Fprintf(os.Stderr, "containerload: encoding output: %v\n", err)
		return errs.KindSolverInternal.ExitCode()
	}

	return 0
}

// toOutdocContainers flattens a solved model.State into outdoc.Container
// entries, one per instance, in stable ascending box-index order
// (spec.md §3: "correctness never depends on [box order], only stable
// reporting does").
func toOutdocContainers(state model.State, boxes []model.Box) []outdoc.Container {
	out := make([]outdoc.Container, len(state.Assignment.Instances))
	for j, inst := range state.Assignment.Instances {
		cp := state.ContainerPlacements[j]
		c := outdoc.Container{ID: j + 1, Status: cp.Status}

		for _, bi := range inst.SortedBoxes() {
			pl, ok := cp.Placements[bi]
			if !ok {
				continue
			}
			b := boxes[bi]
			c.Entries = append(c.Entries, outdoc.Entry{
				BoxID:     b.ID,
				Rotation:  b.Rotation,
				Placement: pl,
			})
		}
		out[j] = c
	}
	return out
}

func reportAndExit(err error) int {
	var e *errs.Error
	if errors.As(err, &e) {
		log.Errorf("containerload: %v", e)
		fmt.Fprintf(os.Stderr, "containerload: %v\n", e)
		return e.Kind.ExitCode()
	}
	log.Errorf("containerload: %v", err)
	fmt.Fprintf(os.Stderr, "containerload: %v\n", err)
	return errs.KindSolverInternal.ExitCode()
}
