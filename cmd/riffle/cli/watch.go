package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/deepnoodle-ai/riffle"
	"github.com/deepnoodle-ai/riffle/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// WatchOptions holds configuration for the watch command
type WatchOptions struct {
	Path     string
	Debounce time.Duration
	Resolve  resolveOptions
}

// FileWatcher re-resolves a changeset document whenever it, or any of
// its companion files, changes on disk.
type FileWatcher struct {
	options   WatchOptions
	watcher   *fsnotify.Watcher
	logger    log.Logger
	debouncer map[string]time.Time
	previous  []string
}

// NewFileWatcher creates a new file watcher instance
func NewFileWatcher(options WatchOptions) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &FileWatcher{
		options:   options,
		watcher:   watcher,
		logger:    newLogger(),
		debouncer: make(map[string]time.Time),
	}, nil
}

// watchedFiles lists the files whose changes trigger a re-resolution:
// the changeset document and the optional rules and request files.
func (fw *FileWatcher) watchedFiles() []string {
	files := []string{fw.options.Path}
	if fw.options.Resolve.RulesFile != "" {
		files = append(files, fw.options.Resolve.RulesFile)
	}
	if fw.options.Resolve.RequestFile != "" {
		files = append(files, fw.options.Resolve.RequestFile)
	}
	return files
}

// Start begins watching. It blocks until the context is cancelled.
func (fw *FileWatcher) Start(ctx context.Context) error {
	defer fw.watcher.Close()

	if err := fw.addWatchPaths(); err != nil {
		return err
	}

	files := fw.watchedFiles()
	fmt.Println(headerStyle.Sprint("Watching for changes"))
	fmt.Printf("Files: %s\n", strings.Join(files, ", "))
	fmt.Println("Press Ctrl+C to stop...")
	fmt.Println()

	if err := fw.reresolve(); err != nil {
		fmt.Println(errorStyle.Sprint(err))
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nWatcher stopped")
			return nil
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if err := fw.handleFileEvent(event); err != nil {
				fw.logger.Error("error handling file event", "error", err, "file", event.Name)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// addWatchPaths watches the directories containing the watched files.
// Editors replace files on save, so watching the parent directory is the
// reliable way to see every change.
func (fw *FileWatcher) addWatchPaths() error {
	watchedDirs := make(map[string]bool)
	for _, file := range fw.watchedFiles() {
		dir := filepath.Dir(file)
		if watchedDirs[dir] {
			continue
		}
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		fw.logger.Debug("watching directory", "dir", dir)
		watchedDirs[dir] = true
	}
	return nil
}

// handleFileEvent processes a file system event
func (fw *FileWatcher) handleFileEvent(event fsnotify.Event) error {
	if !fw.matchesWatchedFile(event.Name) {
		return nil
	}

	// Debounce rapid file changes
	now := time.Now()
	if lastTime, exists := fw.debouncer[event.Name]; exists {
		if now.Sub(lastTime) < fw.options.Debounce {
			return nil
		}
	}
	fw.debouncer[event.Name] = now

	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
		fmt.Printf("%s %s\n\n", mutedStyle.Sprint(event.Op.String()), event.Name)
		if err := fw.reresolve(); err != nil {
			// Keep watching through bad intermediate states
			fmt.Println(errorStyle.Sprint(err))
		}
	}
	return nil
}

func (fw *FileWatcher) matchesWatchedFile(path string) bool {
	for _, file := range fw.watchedFiles() {
		if filepath.Clean(path) == filepath.Clean(file) {
			return true
		}
	}
	return false
}

// reresolve loads the document, resolves it, and prints the plan. When a
// previous order exists, changes against it are printed as a diff.
func (fw *FileWatcher) reresolve() error {
	cs, err := loadChangeSet(fw.options.Path)
	if err != nil {
		return err
	}
	if err := fw.options.Resolve.prepare(cs); err != nil {
		return err
	}
	res, err := riffle.Resolve(cs)
	if err != nil {
		return err
	}

	fmt.Print(renderResolution(res, cs))

	lines := orderLines(res)
	if fw.previous != nil {
		if diff := generateOrderDiff(fw.previous, lines, "previous", "current", 3); diff != "" {
			fmt.Println()
			printColoredDiff(diff)
		}
	}
	fw.previous = lines
	fmt.Println()
	return nil
}

var watchCmd = &cobra.Command{
	Use:   "watch [changeset]",
	Short: "Re-resolve a changeset whenever it changes",
	Long: `Watch a changeset document and re-resolve it on every change.

The new review order is printed after each change, along with a diff
against the previous order. Rules and request files passed via flags are
watched too.

Examples:
  riffle watch changes.yaml
  riffle watch changes.yaml --request review.md
  riffle watch changes.yaml --debounce 1000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debounceMs, err := cmd.Flags().GetInt("debounce")
		if err != nil {
			return fmt.Errorf("error getting debounce flag: %w", err)
		}
		opts, err := resolveOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		options := WatchOptions{
			Path:     args[0],
			Debounce: time.Duration(debounceMs) * time.Millisecond,
			Resolve:  opts,
		}
		return runWatch(options)
	},
}

func runWatch(options WatchOptions) error {
	watcher, err := NewFileWatcher(options)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watcher.Start(ctx)
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntP("debounce", "", 500, "Debounce time in milliseconds to avoid rapid triggers")
	watchCmd.Flags().Bool("classify", false, "Infer layer hints from node identifiers")
	watchCmd.Flags().String("rules", "", "Classification rules file (implies --classify)")
	watchCmd.Flags().String("request", "", "Review request file providing an order override")
}
