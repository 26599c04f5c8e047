package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/rsa-attacks/pkg/attack"
	"golang.org/x/sync/errgroup"
)

const (
	exitOK          = 0
	exitNotCoprime  = 1
	exitUsage       = 2
	exitWriteFailed = 3
)

// Options holds the parsed command line.
type Options struct {
	Moduli, Exponents, Ciphertexts IntList

	Attack  string
	In      string
	Out     string
	Show    string
	Verbose bool

	// Batch holds request files given as positional arguments.
	Batch []string
}

// ParseOptions parses args, not including the program name.
func ParseOptions(args []string, stderr io.Writer) (*Options, error) {
	var o Options
	fs := flag.NewFlagSet("rsattack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&o.Moduli, "n", "RSA moduli, comma separated or repeated (at least one)")
	fs.Var(&o.Exponents, "e", "RSA public exponents, comma separated or repeated (at least one)")
	fs.Var(&o.Ciphertexts, "c", "RSA ciphertexts, comma separated or repeated (at least two)")
	fs.StringVar(&o.Attack, "attack", "", "Attack to run (crt or common); prompts when empty")
	fs.StringVar(&o.In, "in", "", "Path to a request file (JSON or CBOR) instead of -n/-e/-c")
	fs.StringVar(&o.Out, "out", "", "Path to write the result as CBOR")
	fs.StringVar(&o.Show, "show", "", "Path to a result file to print")
	fs.BoolVar(&o.Verbose, "v", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.Batch = fs.Args()
	for _, arg := range o.Batch {
		if _, err := ParseInt(arg); err == nil {
			return nil, fmt.Errorf("argument %q is not a request file: separate values with commas (-c 1,2) or repeat the flag (-c 1 -c 2)", arg)
		}
	}

	fromFlags := len(o.Moduli) > 0 || len(o.Exponents) > 0 || len(o.Ciphertexts) > 0
	sources := 0
	for _, used := range []bool{fromFlags, o.In != "", len(o.Batch) > 0, o.Show != ""} {
		if used {
			sources++
		}
	}
	if sources != 1 {
		fs.Usage()
		return nil, errors.New("use exactly one of -n/-e/-c, -in, -show or request files")
	}
	if len(o.Batch) > 0 && o.Out != "" {
		return nil, errors.New("-out cannot be used with several request files")
	}
	return &o, nil
}

// NewLogger returns the console logger used by the command.
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: zerolog.SyncWriter(w), NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

// Main runs the command and returns its exit status.
//
// Only ErrNotCoprime and usage errors produce a non-zero status, every other
// failure is reported and the command returns normally.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := ParseOptions(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitUsage
	}
	r := &runner{
		log:    NewLogger(stderr, o.Verbose),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	switch {
	case o.Show != "":
		return r.show(o.Show)
	case len(o.Batch) > 0:
		return r.batch(o)
	default:
		return r.single(o)
	}
}

type runner struct {
	log            zerolog.Logger
	stdin          io.Reader
	stdout, stderr io.Writer
}

// fail reports err, and returns the matching exit status.
func (r *runner) fail(err error) int {
	fmt.Fprintf(r.stderr, "Error: %v\n", err)
	if errors.Is(err, attack.ErrNotCoprime) {
		return exitNotCoprime
	}
	return exitOK
}

func (r *runner) input(o *Options) (Input, error) {
	if o.In != "" {
		r.log.Debug().Str("path", o.In).Msg("reading request file")
		return ReadInput(o.In)
	}
	return Input{
		Moduli:      o.Moduli,
		Exponents:   o.Exponents,
		Ciphertexts: o.Ciphertexts,
	}, nil
}

func (r *runner) single(o *Options) int {
	in, err := r.input(o)
	if err != nil {
		return r.fail(err)
	}
	if o.Attack != "" {
		in.Attack = o.Attack
	}
	cfg, err := NewConfig(in)
	if err != nil {
		return r.fail(err)
	}
	PrintConfig(r.stdout, cfg)

	kind := cfg.Kind
	if kind == attack.KindUnknown {
		if kind, err = Prompt(r.stdin, r.stdout); err != nil {
			return r.fail(err)
		}
	}

	req, res, err := r.run(cfg, kind)
	if err != nil {
		return r.fail(err)
	}
	PrintResult(r.stdout, res)

	if o.Out != "" {
		if err := WriteResult(o.Out, res, req); err != nil {
			fmt.Fprintf(r.stderr, "Error: failed to write result: %v\n", err)
			return exitWriteFailed
		}
		r.log.Info().Str("path", o.Out).Msg("result written")
	}
	return exitOK
}

// run builds the request for kind and executes it.
func (r *runner) run(cfg *Config, kind attack.Kind) (*attack.Request, *attack.Result, error) {
	req, err := cfg.Request(kind)
	if err != nil {
		return nil, nil, err
	}
	log := r.log.With().
		Str("attack", kind.String()).
		Hex("request", req.Digest()[:8]).
		Int("samples", len(cfg.Ciphertexts)).
		Logger()

	log.Debug().Msg("starting attack")
	res, err := attack.Run(req)
	if err != nil {
		log.Debug().Err(err).Msg("attack failed")
		return nil, nil, err
	}
	if !res.Verified {
		log.Warn().Msg("recovered plaintext does not re-encrypt to every ciphertext")
	}
	log.Debug().Int("bits", res.Plaintext.Message.BitLen()).Msg("attack completed")
	return req, res, nil
}

type outcome struct {
	res *attack.Result
	err error
}

// batch runs every request file concurrently. Files must name their attack,
// unless -attack is given.
func (r *runner) batch(o *Options) int {
	outcomes := make([]outcome, len(o.Batch))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range o.Batch {
		i, path := i, path
		g.Go(func() error {
			outcomes[i] = r.batchOne(path, o.Attack)
			return nil
		})
	}
	_ = g.Wait()

	status := exitOK
	for i, out := range outcomes {
		fmt.Fprintf(r.stdout, "== %s\n", o.Batch[i])
		if out.err != nil {
			fmt.Fprintf(r.stdout, "[-] %v\n\n", out.err)
			if errors.Is(out.err, attack.ErrNotCoprime) {
				status = exitNotCoprime
			}
			continue
		}
		PrintResult(r.stdout, out.res)
		fmt.Fprintln(r.stdout)
	}
	return status
}

func (r *runner) batchOne(path, kindOverride string) outcome {
	in, err := ReadInput(path)
	if err != nil {
		return outcome{err: err}
	}
	if kindOverride != "" {
		in.Attack = kindOverride
	}
	cfg, err := NewConfig(in)
	if err != nil {
		return outcome{err: err}
	}
	if cfg.Kind == attack.KindUnknown {
		return outcome{err: fmt.Errorf("%w: no attack selected, set \"attack\" or use -attack", attack.ErrInvalidInput)}
	}
	_, res, err := r.run(cfg, cfg.Kind)
	return outcome{res: res, err: err}
}

func (r *runner) show(path string) int {
	res, req, err := ReadResult(path)
	if err != nil {
		return r.fail(err)
	}
	if req != nil {
		r.log.Debug().Int("samples", len(req.Samples())).Msg("result includes its request")
	}
	PrintResult(r.stdout, res)
	return exitOK
}
