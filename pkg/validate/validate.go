// Package validate runs the external pluginval validator against a bundle
// and reports pass or fail from its exit status.
package validate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrValidatorNotFound is returned when no pluginval binary can be located.
	ErrValidatorNotFound = errors.New("pluginval not found")
	// ErrValidationFailed is returned when the validator exits non-zero.
	ErrValidationFailed = errors.New("validation failed")
	// ErrTimeout is returned when the validator does not finish in time.
	ErrTimeout = errors.New("validation timed out")
	// ErrUnknownLevel is returned for level names that are not defined.
	ErrUnknownLevel = errors.New("unknown validation level")
)

// Strictness bounds accepted by pluginval
const (
	MinStrictness = 1
	MaxStrictness = 10
)

// DefaultTimeout bounds a whole validator run
const DefaultTimeout = 5 * time.Minute

// Levels are the named strictness presets
var Levels = map[string]int{
	"quick":         5,
	"comprehensive": 10,
	"ci":            8,
}

// LevelStrictness looks up a named level
func LevelStrictness(name string) (int, error) {
	s, ok := Levels[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return s, nil
}

// Result describes one validator run
type Result struct {
	Passed   bool
	ExitCode int
	Output   string
	Duration time.Duration
}

// Runner invokes pluginval
type Runner struct {
	// Path is an explicit validator binary; empty searches PATH and SearchPaths
	Path       string
	Strictness int
	Timeout    time.Duration
	Logger     *zap.Logger

	// SearchPaths are tried after PATH
	SearchPaths []string
	// Stream receives validator output as it runs
	Stream io.Writer
}

// NewRunner creates a runner with the default search paths
func NewRunner(path string, strictness int, timeout time.Duration, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Path:        path,
		Strictness:  strictness,
		Timeout:     timeout,
		Logger:      logger,
		SearchPaths: DefaultSearchPaths(),
	}
}

// DefaultSearchPaths lists where pluginval is usually installed
func DefaultSearchPaths() []string {
	paths := []string{
		filepath.Join("tools", "pluginval"),
		filepath.Join("pluginval", "pluginval"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".local", "bin", "pluginval"))
	}

	switch runtime.GOOS {
	case "darwin":
		paths = append(paths,
			"/Applications/pluginval.app/Contents/MacOS/pluginval",
			filepath.Join("pluginval.app", "Contents", "MacOS", "pluginval"),
		)
	case "windows":
		paths = append(paths, filepath.Join("tools", "pluginval.exe"), `C:\Program Files\pluginval\pluginval.exe`)
	default:
		paths = append(paths, "/usr/local/bin/pluginval", "/opt/pluginval/pluginval")
	}
	return paths
}

// Locate returns the validator binary to run
func (r *Runner) Locate() (string, error) {
	if r.Path != "" {
		if isExecutable(r.Path) {
			return r.Path, nil
		}
		return "", fmt.Errorf("%w: %s", ErrValidatorNotFound, r.Path)
	}

	if p, err := exec.LookPath("pluginval"); err == nil {
		return p, nil
	}
	for _, p := range r.SearchPaths {
		if isExecutable(p) {
			return p, nil
		}
	}
	return "", ErrValidatorNotFound
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return runtime.GOOS == "windows" || info.Mode()&0o111 != 0
}

func (r *Runner) strictness() int {
	return min(max(r.Strictness, MinStrictness), MaxStrictness)
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

// Args builds the validator command line for bundle
func (r *Runner) Args(bundle string) []string {
	return []string{
		"--strictness-level", strconv.Itoa(r.strictness()),
		"--validate-in-process",
		"--timeout-ms", strconv.FormatInt(r.timeout().Milliseconds(), 10),
		"--validate", bundle,
	}
}

// Run validates bundle. A non-zero exit returns the result together with
// ErrValidationFailed.
func (r *Runner) Run(ctx context.Context, bundle string) (Result, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if _, err := os.Stat(bundle); err != nil {
		return Result{}, fmt.Errorf("bundle: %w", err)
	}
	bin, err := r.Locate()
	if err != nil {
		return Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	args := r.Args(bundle)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.WaitDelay = time.Second

	var output bytes.Buffer
	var w io.Writer = &output
	if r.Stream != nil {
		w = io.MultiWriter(&output, r.Stream)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	log.Info("running validator",
		zap.String("binary", bin),
		zap.String("bundle", bundle),
		zap.Int("strictness", r.strictness()),
		zap.Duration("timeout", r.timeout()),
	)

	start := time.Now()
	runErr := cmd.Run()
	res := Result{
		Output:   output.String(),
		Duration: time.Since(start),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		log.Warn("validator interrupted", zap.Duration("after", res.Duration))
		return res, fmt.Errorf("validator interrupted: %w", ctx.Err())
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Error("validator timed out", zap.Duration("after", res.Duration))
		return res, fmt.Errorf("%w after %s", ErrTimeout, r.timeout())
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		res.Passed = true
		log.Info("validation passed", zap.Duration("took", res.Duration))
		return res, nil
	case errors.As(runErr, &exitErr):
		log.Error("validation failed", zap.Int("exit_code", res.ExitCode))
		return res, fmt.Errorf("%w: exit status %d", ErrValidationFailed, res.ExitCode)
	default:
		return res, fmt.Errorf("run validator: %w", runErr)
	}
}
