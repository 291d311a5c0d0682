package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/appboardguru/boardguru/pkg/config"
)

// configurationWatchCmd represents the configuration watch command
var configurationWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the configuration file and reload the server on changes",
	Long: `Watch the BoardGuru configuration file and signal the running server to
reload whenever the file is modified.

The file is validated before each reload; invalid changes are reported and
skipped, and the server keeps its current configuration.

Note that this will NOT incorporate changes to environment variables because
Linux process environments are static once a process has started.

Example:
  boardctl configuration watch
  boardctl configuration watch --no-signal`,
	Run: func(cmd *cobra.Command, args []string) {
		noSignal, _ := cmd.Flags().GetBool("no-signal")

		if err := watchConfiguration(noSignal); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationWatchCmd)
	configurationWatchCmd.Flags().Bool("no-signal", false, "Validate changes without signalling the server")
}

func watchConfiguration(noSignal bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	filename := cfg.ConfigFilePath()
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("cannot watch %s: %w", filename, err)
	}

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the file itself; editors that replace the file emit Create.
	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for configuration changes\n", filename)

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] Configuration file modified, validating...\n", time.Now().Format(time.RFC3339))

				cfg, err := config.Load()
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
					continue
				}
				if err := cfg.Validate(); err != nil {
					fmt.Fprintf(os.Stderr, "Configuration invalid, skipping reload: %v\n", err)
					continue
				}

				if noSignal {
					fmt.Println("Configuration is valid.")
					continue
				}

				if err := signalServerReload(); err != nil {
					fmt.Fprintf(os.Stderr, "Error signalling server: %v\n", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}
