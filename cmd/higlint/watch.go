package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sh4d0w/ios-mobile-designer/internal/engine"
	"github.com/sh4d0w/ios-mobile-designer/internal/extractor"
	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/report"
	"github.com/sh4d0w/ios-mobile-designer/internal/rules"
)

const watchDebounce = 300 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var (
		packs    []string
		disabled []string
	)

	cmd := &cobra.Command{
		Use:   "watch [sources...]",
		Short: "Re-validate whenever a scene document changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := args
			if len(sources) == 0 {
				sources = cfg.Validation.Sources
			}
			if len(sources) == 0 {
				return errNoSources
			}

			reg, err := buildRegistry(packs, disabled, "")
			if err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			for _, src := range sources {
				if err := addWatchTargets(watcher, src); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			revalidate(ctx, reg, sources)

			// Editors fire several events per save; collapse bursts
			// behind a short debounce timer.
			timer := time.NewTimer(0)
			if !timer.Stop() {
				<-timer.C
			}
			log.WithField("sources", strings.Join(sources, ",")).Info("watching")
			for {
				select {
				case <-ctx.Done():
					log.Info("watch stopped")
					return nil
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !relevantEvent(ev) {
						continue
					}
					if ev.Op.Has(fsnotify.Create) {
						if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
							_ = watcher.Add(ev.Name)
							continue
						}
					}
					log.WithField("file", ev.Name).Debug("change detected")
					timer.Reset(watchDebounce)
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					log.WithError(err).Warn("watch error")
				case <-timer.C:
					revalidate(ctx, reg, sources)
				}
			}
		},
	}

	cmd.Flags().StringArrayVar(&packs, "rules", nil, "extra YAML rule pack (repeatable)")
	cmd.Flags().StringArrayVar(&disabled, "disable", nil, "rule ID to skip (repeatable)")
	return cmd
}

var errNoSources = &cobraArgError{"no input: pass scene files or set validation.sources in config"}

type cobraArgError struct{ msg string }

func (e *cobraArgError) Error() string { return e.msg }

func addWatchTargets(w *fsnotify.Watcher, src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(src))
	}
	return filepath.WalkDir(src, func(p string, d os.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
}

func relevantEvent(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
		return false
	}
	if strings.HasSuffix(strings.ToLower(ev.Name), ".json") {
		return true
	}
	// directory create events carry no extension
	info, err := os.Stat(ev.Name)
	return err == nil && info.IsDir()
}

func revalidate(ctx context.Context, reg *rules.Registry, sources []string) {
	var scenes []ir.Scene
	for _, src := range sources {
		parsed, err := extractor.ParsePath(src)
		if err != nil {
			log.WithField("source", src).WithError(err).Error("parse input")
			return
		}
		scenes = append(scenes, parsed...)
	}

	run := engine.Validate(ctx, reg, scenes, engine.Options{
		Source:   strings.Join(sources, ","),
		Parallel: cfg.Validation.Parallel,
		Workers:  cfg.Validation.Workers,
	})
	report.WriteText(os.Stdout, run.Report)
	log.WithField("overall", run.Report.Overall).
		WithField("fail", run.Report.Summary.Fail).
		WithField("warn", run.Report.Summary.Warn).
		Info("revalidated")
}
