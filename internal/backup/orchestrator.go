package backup

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"BucketBackup/internal/archive"
	"BucketBackup/internal/config"
	"BucketBackup/internal/progress"
)

type State int

const (
	StateStart State = iota
	StatePrune
	StateBuild
	StateUpload
	StateCleanup
	StateSummary
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePrune:
		return "prune"
	case StateBuild:
		return "build"
	case StateUpload:
		return "upload"
	case StateCleanup:
		return "cleanup"
	case StateSummary:
		return "summary"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// transitions is the linear happy path. Any stage failure moves to
// StateAborted instead, skipping every later stage including cleanup: a
// failure after the build intentionally leaves the local archive on disk
// for manual recovery.
var transitions = map[State]State{
	StateStart:   StatePrune,
	StatePrune:   StateBuild,
	StateBuild:   StateUpload,
	StateUpload:  StateCleanup,
	StateCleanup: StateSummary,
	StateSummary: StateDone,
}

// Summary is the run's aggregate report.
type Summary struct {
	Source      string
	ArchiveName string
	SizeBytes   int64
	Checksum    string
	Deleted     int
	Location    string

	// CleanupWarning records a post-upload local delete failure, which
	// does not fail an otherwise successful run.
	CleanupWarning string
}

// SizeMB reports the archive size in megabytes for two-decimal rendering.
func (s *Summary) SizeMB() float64 {
	return float64(s.SizeBytes) / 1024 / 1024
}

// Orchestrator sequences one backup run: prune the store, build the local
// archive, upload it, remove the local copy, summarize. Stages run strictly
// in order; each must fully succeed before the next begins. The archive file
// is owned exclusively by the orchestrator for the run's duration.
type Orchestrator struct {
	Store  Store
	Policy config.RetentionPolicy
	Source string
	OutDir string
	Format archive.Format

	PruneMeter  progress.Meter
	BuildMeter  progress.Meter
	UploadMeter progress.Meter

	Log *zap.Logger

	// Now is the clock for retention cutoffs and archive naming. Nil
	// means time.Now.
	Now func() time.Time

	state   State
	archive *archive.Archive
}

// State reports the machine's current (or terminal) state.
func (o *Orchestrator) State() State { return o.state }

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) log() *zap.Logger {
	if o.Log != nil {
		return o.Log
	}
	return zap.NewNop()
}

// Run drives the state machine to StateDone and returns the summary, or
// stops at StateAborted with the failing stage's error.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	o.state = StateStart
	sum := &Summary{Source: o.Source}

	for o.state != StateDone {
		next, ok := transitions[o.state]
		if !ok {
			return nil, fmt.Errorf("no transition from state %s", o.state)
		}
		o.log().Debug("entering stage", zap.Stringer("state", next))
		if err := o.enter(ctx, next, sum); err != nil {
			o.state = StateAborted
			o.log().Debug("run aborted", zap.Stringer("stage", next), zap.Error(err))
			return nil, err
		}
		o.state = next
	}
	return sum, nil
}

func (o *Orchestrator) enter(ctx context.Context, s State, sum *Summary) error {
	switch s {
	case StatePrune:
		deleted, err := Prune(ctx, o.Store, o.Policy, o.now(), o.PruneMeter)
		sum.Deleted = deleted
		return err

	case StateBuild:
		b := &archive.Builder{
			Source: o.Source,
			OutDir: o.OutDir,
			Format: o.Format,
			Meter:  o.BuildMeter,
			Now:    o.Now,
		}
		a, err := b.Build(ctx)
		if err != nil {
			return IOErr(err)
		}
		o.archive = a
		sum.ArchiveName = a.Name
		sum.SizeBytes = a.Size
		sum.Checksum = a.Checksum
		return nil

	case StateUpload:
		obj, err := Upload(ctx, o.Store, o.archive.Path, o.archive.Checksum, o.UploadMeter)
		if err != nil {
			return err
		}
		sum.Location = o.Store.Location(obj.Key)
		return nil

	case StateCleanup:
		// Re-stat before deleting so the summary reports the size of
		// the file that was actually uploaded.
		if info, err := os.Stat(o.archive.Path); err == nil {
			sum.SizeBytes = info.Size()
		}
		if err := os.Remove(o.archive.Path); err != nil {
			sum.CleanupWarning = fmt.Sprintf("could not remove local archive %s: %v", o.archive.Path, err)
			o.log().Warn("local cleanup failed", zap.String("path", o.archive.Path), zap.Error(err))
		}
		return nil

	case StateSummary:
		// Everything the summary reports was recorded by earlier
		// stages.
		return nil
	}
	return nil
}
