// Package convert orchestrates the conversion run: it scans the source
// directory for every icon identity, packs the Windows containers, stages the
// macOS iconsets, and finishes the macOS packing where the host allows it.
package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pain-lang/painicons/internal/config"
	"github.com/pain-lang/painicons/internal/icns"
	"github.com/pain-lang/painicons/internal/ico"
	"github.com/pain-lang/painicons/internal/iconset"
)

// Status is the terminal state of one conversion target.
type Status string

const (
	// StatusPacked means the final container was written.
	StatusPacked Status = "packed"
	// StatusAwaitingExternalTool means staging completed but the native
	// packing tool is unavailable on this host. Deferred, not failed: the
	// staged tree is complete and the step can be finished on a mac.
	StatusAwaitingExternalTool Status = "awaiting-external-tool"
)

const (
	// TargetICO is the Windows container target.
	TargetICO = "ico"
	// TargetICNS is the macOS container target.
	TargetICNS = "icns"
)

// Result records the outcome for one identity/target pair.
type Result struct {
	Identity string
	Target   string
	Path     string
	Status   Status
	// Sizes are the resolutions that made it into the output.
	Sizes []int
	// Skipped are resolutions present in the source set that the target
	// format cannot represent.
	Skipped []int
}

// Report aggregates the outcomes of a whole run.
type Report struct {
	Results []Result
}

// Incomplete reports whether any target was deferred to another host.
func (r *Report) Incomplete() bool {
	for _, res := range r.Results {
		if res.Status == StatusAwaitingExternalTool {
			return true
		}
	}
	return false
}

// Logger is a small logging interface used for non-fatal notices.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Runner executes a conversion run. The external-tool hooks exist so tests
// can exercise both terminal states on any host.
type Runner struct {
	Config *config.Config
	Log    Logger

	// ProbeICNSTool reports whether the native macOS packer can run here.
	ProbeICNSTool func() bool
	// PackICNS turns a staged iconset into the final container.
	PackICNS func(staging, out string) error
}

// New builds a Runner with the production probe and packer wired in.
func New(cfg *config.Config, log Logger) *Runner {
	if log == nil {
		log = nopLogger{}
	}
	return &Runner{
		Config:        cfg,
		Log:           log,
		ProbeICNSTool: icns.ToolAvailable,
		PackICNS:      icns.Pack,
	}
}

// Identities returns the identities this run covers.
func (r *Runner) Identities() []string {
	if len(r.Config.Identities) > 0 {
		return r.Config.Identities
	}
	return iconset.Identities
}

// Run performs the whole conversion synchronously. Every identity is scanned
// before any output path is touched, so a missing identity aborts the run
// with no partial artifacts.
func (r *Runner) Run() (*Report, error) {
	var sets []*iconset.Set
	for _, identity := range r.Identities() {
		set, err := iconset.Scan(r.Config.SourceDir, identity)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}

	report := &Report{}
	for _, set := range sets {
		res, err := r.packICO(set)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, res)

		res, err = r.stageICNS(set)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func (r *Runner) packICO(set *iconset.Set) (Result, error) {
	if err := os.MkdirAll(r.Config.ICODir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}
	packable, skipped := ico.PackableSizes(set)
	for _, size := range skipped {
		r.Log.Printf("%s: %dpx exceeds the ICO directory limit, skipping", set.Identity, size)
	}
	path := filepath.Join(r.Config.ICODir, set.Identity+".ico")
	if err := ico.WriteFile(path, set); err != nil {
		return Result{}, err
	}
	if err := ico.Verify(path); err != nil {
		return Result{}, err
	}
	return Result{
		Identity: set.Identity,
		Target:   TargetICO,
		Path:     path,
		Status:   StatusPacked,
		Sizes:    packable,
		Skipped:  skipped,
	}, nil
}

func (r *Runner) stageICNS(set *iconset.Set) (Result, error) {
	if err := os.MkdirAll(r.Config.ICNSDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}
	staging, err := icns.Stage(r.Config.ICNSDir, set)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Identity: set.Identity,
		Target:   TargetICNS,
		Sizes:    set.Sizes(),
	}
	if !r.ProbeICNSTool() {
		r.Log.Printf("%s: %s not found, leaving %s for a later run", set.Identity, icns.Tool, staging)
		res.Path = staging
		res.Status = StatusAwaitingExternalTool
		return res, nil
	}
	out := filepath.Join(r.Config.ICNSDir, set.Identity+".icns")
	if err := r.PackICNS(staging, out); err != nil {
		return Result{}, err
	}
	res.Path = out
	res.Status = StatusPacked
	return res, nil
}
