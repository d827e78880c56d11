package migration

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/wunderlist/clickonce-to-squirrel/util"
)

const resultFile = "result.json"

// Result is the outcome of a migrator run, written for the process that launched it
type Result struct {
	Direction  string
	State      string
	Success    bool
	Error      string `json:",omitempty"`
	Warnings   string `json:",omitempty"`
	ExecutedAt time.Time
}

// NewResult builds a Result from the final state and error of a run
func NewResult(direction string, state State, err error) Result {
	r := Result{
		Direction:  direction,
		State:      state.String(),
		Success:    err == nil,
		ExecutedAt: time.Now().UTC(),
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// WithWarnings records the non-fatal failures of a successful run
func (r Result) WithWarnings(warnings error) Result {
	if warnings != nil {
		r.Warnings = warnings.Error()
	}
	return r
}

// ResultHandler reads and writes the result file
type ResultHandler struct {
	resultFile string
	// pollInterval is how often Watch checks for the result directory to appear
	pollInterval time.Duration
}

// NewResultHandler uses "result.json" inside dir
func NewResultHandler(dir string) *ResultHandler {
	return &ResultHandler{
		resultFile:   filepath.Join(dir, resultFile),
		pollInterval: 300 * time.Millisecond,
	}
}

func (rh *ResultHandler) Path() string {
	return rh.resultFile
}

// Watch blocks until a result is written and returns it. The file is removed afterwards.
func (rh *ResultHandler) Watch(ctx context.Context) (Result, error) {
	log.Infof("start watching result: %s", rh.resultFile)

	defer func() {
		if err := rh.Cleanup(); err != nil {
			log.Warnf("failed to cleanup result file: %v", err)
		}
	}()

	// the migrator may have finished before we started watching
	if result, err := rh.tryReadResult(); err == nil {
		log.Infof("migration result: %+v", result)
		return result, nil
	}

	dir := filepath.Dir(rh.resultFile)
	if err := rh.waitForDir(ctx, dir); err != nil {
		return Result{}, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return Result{}, fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Warnf("failed to close watcher: %v", err)
		}
	}()

	if err := watcher.Add(dir); err != nil {
		return Result{}, fmt.Errorf("watch directory %s: %w", dir, err)
	}

	// the file may have appeared between the first read and watcher.Add
	if result, err := rh.tryReadResult(); err == nil {
		log.Infof("migration result: %+v", result)
		return result, nil
	}

	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return Result{}, errors.New("watcher closed unexpectedly")
			}
			if filepath.Clean(event.Name) != filepath.Clean(rh.resultFile) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			result, err := rh.tryReadResult()
			if err != nil {
				log.Debugf("error while reading result: %v", err)
				continue
			}
			log.Infof("migration result: %+v", result)
			return result, nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return Result{}, errors.New("watcher closed unexpectedly")
			}
			return Result{}, fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (rh *ResultHandler) waitForDir(ctx context.Context, dir string) error {
	if util.DirExists(dir) {
		return nil
	}

	ticker := time.NewTicker(rh.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if util.DirExists(dir) {
				return nil
			}
		}
	}
}

// Write stores the result atomically
func (rh *ResultHandler) Write(ctx context.Context, result Result) error {
	log.Infof("write out migration result to: %s", rh.resultFile)
	if err := util.WriteJson(ctx, rh.resultFile, result); err != nil {
		log.Errorf("failed to write result file %s: %v", rh.resultFile, err)
		return err
	}
	return nil
}

// Cleanup removes the result file if it exists
func (rh *ResultHandler) Cleanup() error {
	if err := util.RemoveJson(rh.resultFile); err != nil {
		return err
	}
	log.Debugf("delete migration result file: %s", rh.resultFile)
	return nil
}

func (rh *ResultHandler) tryReadResult() (Result, error) {
	var result Result
	if _, err := util.ReadJson(rh.resultFile, &result); err != nil {
		return Result{}, err
	}
	return result, nil
}
