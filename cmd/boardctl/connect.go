package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/appboardguru/boardguru/pkg/cipher"
	"github.com/appboardguru/boardguru/pkg/db"
)

// openDatabase connects to the database with the data-key cipher attached,
// the way the admin subcommands need it.
func openDatabase() (*gorm.DB, cipher.Symmetric, error) {
	dataKeyB64, ok := os.LookupEnv("BOARDGURU_DATA_KEY")
	if !ok {
		return nil, nil, fmt.Errorf("BOARDGURU_DATA_KEY environment variable is required")
	}

	dataKey, err := base64.StdEncoding.DecodeString(dataKeyB64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid BOARDGURU_DATA_KEY: %w", err)
	}

	dataCipher, err := cipher.NewSymmetric(dataKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	database, err := db.Connect(db.Config{Cipher: dataCipher})
	if err != nil {
		return nil, nil, err
	}

	return database, dataCipher, nil
}
