// Command tonegen renders synthetic test signals to WAV files.
//
// Usage:
//
//	tonegen [flags] [family ...]
//
// Every named family is rendered concurrently into <out>/<family>.wav.
// Without arguments it renders a 1 kHz tone.
//
// Examples:
//
//	tonegen tone saw rect
//	tonegen -dur 10 -report white pink brown violet gray
//	tonegen -variant generator -seed 7 pink
//	tonegen -chain chain.json -out /tmp
//	tonegen -play -freq 440 tone
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-tonegen/dsp/dither"
	"github.com/cwbudde/algo-tonegen/dsp/synth"
)

func main() {
	log.SetFlags(log.Lshortfile)

	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("tonegen", flag.ContinueOnError)

	cfg := defaultRenderConfig()
	fs.Float64Var(&cfg.sampleRate, "rate", cfg.sampleRate, "sample rate in Hz")
	fs.Float64Var(&cfg.duration, "dur", cfg.duration, "duration in seconds")
	fs.Float64Var(&cfg.frequency, "freq", cfg.frequency, "oscillator frequency in Hz")
	fs.Float64Var(&cfg.damping, "damping", cfg.damping, "oscillator damping")
	fs.Float64Var(&cfg.phase, "phase", cfg.phase, "initial phase in degrees")
	fs.Float64Var(&cfg.gainDB, "gain", cfg.gainDB, "output gain in dB")
	fs.Float64Var(&cfg.mean, "mean", cfg.mean, "noise mean")
	fs.Float64Var(&cfg.std, "std", cfg.std, "noise standard deviation")
	fs.Uint64Var(&cfg.seed, "seed", cfg.seed, "noise seed (0 picks a random seed)")
	variant := fs.String("variant", "colored", "noise constants: colored or generator")
	ditherKind := fs.String("dither", "tpdf", "PCM dither: none, rpdf, tpdf or gauss")
	outDir := fs.String("out", ".", "output directory")
	chainPath := fs.String("chain", "", "render an effect chain JSON file instead of families")
	report := fs.Bool("report", false, "print level and spectrum statistics")
	play := fs.Bool("play", false, "play the first family live instead of writing files")
	list := fs.Bool("list", false, "list available family names")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: tonegen [flags] [family ...]\n\n")
		fmt.Fprintf(fs.Output(), "Renders synthetic test signals to 16-bit WAV files.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *list {
		for _, f := range synth.Families() {
			fmt.Println(strings.ToLower(f.String()))
		}
		return nil
	}

	v, err := parseVariant(*variant)
	if err != nil {
		return err
	}
	cfg.variant = v
	if cfg.dither, err = dither.ParseKind(*ditherKind); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *chainPath != "" {
		raw, err := os.ReadFile(*chainPath)
		if err != nil {
			return fmt.Errorf("read chain: %w", err)
		}
		name := strings.TrimSuffix(filepath.Base(*chainPath), filepath.Ext(*chainPath))
		samples, err := renderChain(cfg, string(raw))
		if err != nil {
			return fmt.Errorf("render chain: %w", err)
		}
		return emit(cfg, *outDir, name, samples, *report)
	}

	families, err := parseFamilies(fs.Args())
	if err != nil {
		return err
	}

	if *play {
		if err := playLive(ctx, cfg, families[0]); err != nil {
			return fmt.Errorf("play: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, f := range families {
		g.Go(func() error {
			samples, err := renderFamily(ctx, cfg, f)
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			return emit(cfg, *outDir, strings.ToLower(f.String()), samples, *report)
		})
	}
	return g.Wait()
}

func emit(cfg renderConfig, dir, name string, samples []float64, report bool) error {
	q, err := newQuantizer(cfg.dither, cfg.seed)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, name+".wav")
	if err := writeWAV(path, samples, int(cfg.sampleRate), q); err != nil {
		return err
	}
	log.Println("wrote", path)

	if !report {
		return nil
	}
	r, err := analyze(name, samples, cfg.sampleRate)
	if err != nil {
		return err
	}
	// Reports from concurrent renders are printed whole.
	reportMu.Lock()
	defer reportMu.Unlock()
	return r.write(os.Stdout)
}

func parseFamilies(names []string) ([]synth.Family, error) {
	if len(names) == 0 {
		return []synth.Family{synth.FamilyTone}, nil
	}

	seen := make(map[synth.Family]bool, len(names))
	out := make([]synth.Family, 0, len(names))
	for _, name := range names {
		f, ok := synth.ParseFamily(name, synth.FamilyTone)
		if !ok {
			return nil, fmt.Errorf("unknown family %q (use -list to see available)", name)
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

func parseVariant(name string) (synth.Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "colored", "coloured", "noise":
		return synth.VariantColored, nil
	case "generator":
		return synth.VariantGenerator, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", name)
	}
}
