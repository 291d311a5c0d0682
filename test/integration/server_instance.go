package integration

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/cipher"
	"github.com/appboardguru/boardguru/pkg/config"
	"github.com/appboardguru/boardguru/pkg/mailer"
	"github.com/appboardguru/boardguru/pkg/server"
	"github.com/appboardguru/boardguru/pkg/server/endpoints"
	"github.com/appboardguru/boardguru/pkg/session"
)

// startInlineServer starts the server in-process (no binary needed)
func startInlineServer(gormDB *gorm.DB, dataCipher cipher.Symmetric, port string) (*server.Server, context.CancelFunc, error) {
	_, cancel := context.WithCancel(context.Background())

	keystore := session.NewKeyStore(gormDB, dataCipher)
	if _, err := keystore.Rotate(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to create signing key: %w", err)
	}

	// No Redis and no SMTP in integration runs
	s := server.NewServer(config.Get(), gormDB, keystore, nil, mailer.New("", ""), "127.0.0.1", port)
	endpoints.RegisterAll(s)

	go func() {
		_ = s.Start()
	}()

	return s, cancel, nil
}

// startBinary starts the boardctl server binary
func startBinary(binaryPath, dbURL string, dataKey []byte, port string) (*exec.Cmd, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// Use --no-migrate since we already ran migrations in the test setup
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"BOARDGURU_DATA_KEY="+base64.StdEncoding.EncodeToString(dataKey),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to start binary: %w", err)
	}

	return cmd, cancel, nil
}

// waitForServer polls the server until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}
