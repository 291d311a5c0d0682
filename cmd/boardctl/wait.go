package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the BoardGuru server to be ready",
	Long: `Wait for the BoardGuru server to be ready by polling its health endpoint.

The server reports ready only once it can reach the database, so this
also covers migrations still running at startup.

Example:
  boardctl wait
  boardctl wait --port 3000 --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		retries, _ := cmd.Flags().GetInt("retries")

		if err := waitForServer(port, retries); err != nil {
			fmt.Fprintf(os.Stderr, "Server did not become ready: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("port", "p", defaultPortInt(), "Server port to check")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

// healthStatus mirrors the body of GET /health.
type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func checkHealth(client *http.Client, url string) (healthStatus, error) {
	var health healthStatus

	resp, err := client.Get(url)
	if err != nil {
		return health, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return health, fmt.Errorf("decode health response: %w", err)
	}
	return health, nil
}

func waitForServer(port, retries int) error {
	url := fmt.Sprintf("http://localhost:%d/health", port)
	client := &http.Client{Timeout: 2 * time.Second}

	fmt.Println("Waiting for BoardGuru to be ready...")

	var lastDatabase string
	for i := 0; i < retries; i++ {
		health, err := checkHealth(client, url)
		if err == nil {
			if health.Status == "ok" {
				fmt.Println()
				fmt.Println("BoardGuru is ready!")
				return nil
			}
			// reachable but unhealthy, usually the database
			lastDatabase = health.Database
		}

		fmt.Print(".")
		time.Sleep(1 * time.Second)
	}

	fmt.Println()
	if lastDatabase != "" && lastDatabase != "ok" {
		return fmt.Errorf("BoardGuru is not ready after %d seconds (database: %s)", retries, lastDatabase)
	}
	return fmt.Errorf("BoardGuru is not ready after %d seconds", retries)
}
