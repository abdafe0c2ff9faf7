// Command clasp is the command-line front end: it reads a DIMACS CNF
// or aspif instance, builds a SharedContext, solves it with a bounded
// pool of attached Solvers, and prints the model (or refutation) the
// way clasp's own CLI reports a run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	cfgpkg "github.com/go-clasp/clasp/config"
	"github.com/go-clasp/clasp/facade"
	"github.com/go-clasp/clasp/internal/aspif"
	sharedctx "github.com/go-clasp/clasp/internal/context"
	"github.com/go-clasp/clasp/internal/dimacs"
	"github.com/go-clasp/clasp/internal/enumerator"
	"github.com/go-clasp/clasp/internal/heuristic"
	"github.com/go-clasp/clasp/internal/litvar"
	"github.com/go-clasp/clasp/internal/solver"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagThreads = flag.Int(
	"t",
	1,
	"number of solvers to run in parallel",
)

var flagSet settings

func init() {
	flag.Var(&flagSet, "set", "override a configuration key, e.g. -set solver.heuristic=vsids (repeatable)")
}

// settings collects repeated -set key=value flags.
type settings []string

func (s *settings) String() string { return strings.Join(*s, ",") }
func (s *settings) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type config struct {
	instanceFile string
	memProfile   bool
	cpuProfile   bool
	threads      int
	overrides    []string
}

func parseConfig() (*config, error) {
	flag.Parse()
	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		threads:      *flagThreads,
		overrides:    []string(flagSet),
	}, nil
}

func loadSettings(overrides []string) (*cfgpkg.Config, error) {
	cfg := cfgpkg.Default()
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed -set %q, want key=value", kv)
		}
		if err := cfg.Set(parts[0], parts[1]); err != nil {
			return nil, fmt.Errorf("-set %q: %w", kv, err)
		}
	}
	return cfg, nil
}

func run(cfg *config) error {
	appCfg, err := loadSettings(cfg.overrides)
	if err != nil {
		return err
	}

	sc := sharedctx.New(solver.Options{
		Heuristic:   heuristic.Kind(appCfg.Solver.Heuristic),
		RestartInit: appCfg.Solver.Restart.Base,
		RestartInc:  appCfg.Solver.Restart.Factor,
	})
	if err := sc.SetShareModeString(appCfg.ShareMode); err != nil {
		return err
	}
	f, err := os.Open(cfg.instanceFile)
	if err != nil {
		return fmt.Errorf("could not open instance: %w", err)
	}
	defer f.Close()

	var enumMinimize []litvar.Literal
	if strings.EqualFold(filepath.Ext(cfg.instanceFile), ".aspif") {
		prog, err := aspif.Read(f)
		if err != nil {
			return fmt.Errorf("could not parse instance: %w", err)
		}
		res, err := aspif.Ground(prog, sc)
		if err != nil {
			return fmt.Errorf("could not ground instance: %w", err)
		}
		enumMinimize = res.Minimize
	} else {
		target := dimacsTarget{sc: sc}
		if err := dimacs.Load(f, target); err != nil {
			return fmt.Errorf("could not parse instance: %w", err)
		}
	}

	fmt.Printf("c variables:  %d\n", sc.NumVars())

	if !sc.EndInit(true) {
		fmt.Println("s UNSATISFIABLE")
		return nil
	}

	fr := facade.New(sc)
	t := time.Now()

	// solve.models == 1 (clasp's default) wants only the first model, so
	// the portfolio race in RunParallel is the right driver. Any other
	// value, or an instance carrying a minimize statement, asks for
	// enumeration (§4.9: all models, brave/cautious/optimise accumulation
	// across them), which is inherently a single sequential search rather
	// than a race between independent workers.
	if appCfg.Solve.Models == 1 && len(enumMinimize) == 0 {
		threads := cfg.threads
		if threads < 1 {
			threads = 1
		}
		res, err := fr.RunParallel(context.Background(), threads, nil)
		elapsed := time.Since(t)
		if err != nil {
			return fmt.Errorf("solve: %w", err)
		}
		fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
		fmt.Printf("c winner:     %d\n", res.WinnerID)
		switch res.Status {
		case facade.StatusSat:
			fmt.Println("s SATISFIABLE")
			printModel(res.Model)
		case facade.StatusUnsat:
			fmt.Println("s UNSATISFIABLE")
		default:
			fmt.Println("s UNKNOWN")
		}
		return nil
	}

	e := enumerator.New(enumModeFromString(appCfg.Solve.EnumMode), optModeFromString(appCfg.Solve.OptMode))
	e.SetMinimize(enumMinimize)
	e.OnModel(printModel)
	res, err := fr.RunEnumerate(context.Background(), e, nil)
	elapsed := time.Since(t)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c models:     %d\n", len(res.Models))
	switch res.Status {
	case facade.StatusSat:
		fmt.Println("s SATISFIABLE")
		if res.Optimal {
			fmt.Printf("c optimum:    %d\n", res.Bound)
		}
	case facade.StatusUnsat:
		fmt.Println("s UNSATISFIABLE")
	default:
		fmt.Println("s UNKNOWN")
	}
	return nil
}

// enumModeFromString maps §6's solve.enum_mode value onto an
// enumerator.Mode, defaulting to ModeAuto for an empty or unrecognised
// string.
func enumModeFromString(s string) enumerator.Mode {
	switch s {
	case "brave":
		return enumerator.ModeBrave
	case "cautious":
		return enumerator.ModeCautious
	case "record":
		return enumerator.ModeRecord
	case "dom_record":
		return enumerator.ModeDomRecord
	case "query":
		return enumerator.ModeQuery
	default:
		return enumerator.ModeAuto
	}
}

// optModeFromString maps §6's solve.opt_mode value onto an
// enumerator.OptMode, defaulting to OptIgnore for an empty or
// unrecognised string.
func optModeFromString(s string) enumerator.OptMode {
	switch s {
	case "optimize", "optimise":
		return enumerator.OptOptimise
	case "enumopt":
		return enumerator.OptEnumOpt
	default:
		return enumerator.OptIgnore
	}
}

func printModel(model []bool) {
	var sb strings.Builder
	sb.WriteString("v")
	for v, val := range model {
		if val {
			fmt.Fprintf(&sb, " %d", v+1)
		} else {
			fmt.Fprintf(&sb, " -%d", v+1)
		}
	}
	sb.WriteString(" 0")
	fmt.Println(sb.String())
}

// dimacsTarget adapts SharedContext to internal/dimacs.Target.
type dimacsTarget struct {
	sc *sharedctx.SharedContext
}

func (t dimacsTarget) Grow() litvar.Var { return t.sc.AddVars(1, litvar.VarPlain) }
func (t dimacsTarget) AddClause(lits []litvar.Literal) error {
	return t.sc.AddClause(lits)
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
