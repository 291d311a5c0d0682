package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/appboardguru/boardguru/pkg/cache"
	"github.com/appboardguru/boardguru/pkg/cipher"
	"github.com/appboardguru/boardguru/pkg/config"
	"github.com/appboardguru/boardguru/pkg/db"
	"github.com/appboardguru/boardguru/pkg/mailer"
	"github.com/appboardguru/boardguru/pkg/scheduler"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/endpoints"
	storegorm "github.com/appboardguru/boardguru/pkg/server/store/gorm"
	"github.com/appboardguru/boardguru/pkg/session"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the BoardGuru application server",
	Long: `Run the BoardGuru application server.

To run the server requires the environment variables BOARDGURU_DATA_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		dataKeyB64, ok := os.LookupEnv("BOARDGURU_DATA_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "BOARDGURU_DATA_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		dataKey, err := base64.StdEncoding.DecodeString(dataKeyB64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad BOARDGURU_DATA_KEY:", err)
			os.Exit(1)
		}

		dataCipher, err := cipher.NewSymmetric(dataKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to initiate cipher:", err)
			os.Exit(1)
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{Cipher: dataCipher})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		keystore := session.NewKeyStore(database, dataCipher)
		if _, err := keystore.Active(); err != nil {
			log.Println("No session signing key found, generating one...")
			if _, err := keystore.Rotate(); err != nil {
				fmt.Fprintln(os.Stderr, "Unable to create session signing key:", err)
				os.Exit(1)
			}
		}

		var c *cache.Cache
		if cfg.RedisURL != "" {
			c, err = cache.New(cfg.RedisURL)
			if err != nil {
				// The cache is an optimization; the server runs without it.
				log.Printf("Redis unavailable, continuing without cache: %v", err)
				c = nil
			}
		}

		mail := mailer.New(cfg.SMTPAddress, cfg.SMTPFrom)
		if !mail.Enabled() {
			log.Println("SMTP not configured, email delivery disabled")
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(cfg, database, keystore, c, mail, host, port)

		endpoints.RegisterAll(s)

		sched := scheduler.New(
			storegorm.NewMeetingsStore(database),
			storegorm.NewRegistrationsStore(database),
			s.Notifier,
			mail,
			cfg.ReminderLead(),
		)
		if err := sched.Start(); err != nil {
			fmt.Fprintln(os.Stderr, "Unable to start scheduler:", err)
			os.Exit(1)
		}

		go handleSignals(s, sched)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

// handleSignals reloads configuration on SIGHUP and drains the server
// on SIGINT/SIGTERM.
func handleSignals(s *server.Server, sched *scheduler.Scheduler) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	for sig := range signals {
		switch sig {
		case syscall.SIGHUP:
			log.Println("Reloading configuration...")
			if err := config.Reload(); err != nil {
				log.Printf("Configuration reload failed: %v", err)
			}
		case syscall.SIGINT, syscall.SIGTERM:
			log.Println("Shutting down...")
			sched.Stop()
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			_ = s.Shutdown(ctx)
			cancel()
			os.Exit(0)
		}
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
