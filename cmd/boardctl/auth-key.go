package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appboardguru/boardguru/pkg/session"
)

// authKeyCmd represents the auth-key command
var authKeyCmd = &cobra.Command{
	Use:   "auth-key",
	Short: "Manage the session token signing key",
	Long:  `Manage the RSA key used to sign session tokens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'auth-key' requires a subcommand (rotate, show)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// authKeyRotateCmd represents the auth-key rotate command
var authKeyRotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Rotate the session token signing key",
	Long: `Rotate the session token signing key.

A new 2048-bit RSA key is generated and made active. The previous key is
retired but kept in the keystore so tokens signed with it remain valid
until they expire.

Example:
  boardctl auth-key rotate`,
	Run: func(cmd *cobra.Command, args []string) {
		database, dataCipher, err := openDatabase()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rotate signing key: %v\n", err)
			os.Exit(1)
		}

		keystore := session.NewKeyStore(database, dataCipher)
		key, err := keystore.Rotate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rotate signing key: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintln(os.Stderr, "Rotated session signing key")
		fmt.Printf("Fingerprint: %s\n", key.Fingerprint)
	},
}

// authKeyShowCmd represents the auth-key show command
var authKeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active signing key fingerprint",
	Run: func(cmd *cobra.Command, args []string) {
		database, dataCipher, err := openDatabase()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read signing key: %v\n", err)
			os.Exit(1)
		}

		keystore := session.NewKeyStore(database, dataCipher)
		key, err := keystore.Active()
		if err != nil {
			fmt.Fprintf(os.Stderr, "No active signing key: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Fingerprint: %s\n", key.Fingerprint)
	},
}

func init() {
	rootCmd.AddCommand(authKeyCmd)
	authKeyCmd.AddCommand(authKeyRotateCmd)
	authKeyCmd.AddCommand(authKeyShowCmd)
}
