package vcs

import (
	"context"
	"log/slog"
)

// Compile-time checks.
var (
	_ VCS = (*Fake)(nil)
	_ VCS = (*DryRun)(nil)
)

// Fake is a configurable in-memory VCS for testing. It records every
// operation; function fields override individual behaviors.
type Fake struct {
	ValidateFunc func() error
	CommitFunc   func(message string) error
	TagFunc      func(name, annotation string) error
	PushFunc     func() error

	Commits []string
	Tags    []string
	Pushed  int
}

func (f *Fake) Validate(context.Context) error {
	if f.ValidateFunc != nil {
		return f.ValidateFunc()
	}
	return nil
}

func (f *Fake) Commit(_ context.Context, message string) error {
	if f.CommitFunc != nil {
		if err := f.CommitFunc(message); err != nil {
			return err
		}
	}
	f.Commits = append(f.Commits, message)
	return nil
}

func (f *Fake) Tag(_ context.Context, name, annotation string) error {
	if f.TagFunc != nil {
		if err := f.TagFunc(name, annotation); err != nil {
			return err
		}
	}
	f.Tags = append(f.Tags, name)
	return nil
}

func (f *Fake) Push(context.Context) error {
	if f.PushFunc != nil {
		if err := f.PushFunc(); err != nil {
			return err
		}
	}
	f.Pushed++
	return nil
}

// DryRun logs each operation instead of delegating it. Validate still
// runs for real so a broken repository is reported even in dryrun.
type DryRun struct {
	Wrapped VCS
	Log     *slog.Logger
}

func (d *DryRun) logger() *slog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return slog.Default()
}

func (d *DryRun) Validate(ctx context.Context) error {
	return d.Wrapped.Validate(ctx)
}

func (d *DryRun) Commit(_ context.Context, message string) error {
	d.logger().Info("dryrun", "commit", message)
	return nil
}

func (d *DryRun) Tag(_ context.Context, name, annotation string) error {
	d.logger().Info("dryrun", "tag", name)
	return nil
}

func (d *DryRun) Push(context.Context) error {
	d.logger().Info("dryrun", "push", "origin")
	return nil
}
