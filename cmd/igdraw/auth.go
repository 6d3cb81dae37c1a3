package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"igdraw/pkg/auth"
	"igdraw/pkg/config"
	"igdraw/pkg/logger"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Instagram credentials",
	Long: `Manage stored Instagram credentials securely.

Credentials are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (INSTAGRAM_USERNAME / INSTAGRAM_PASSWORD)

Never share your credentials or config files!`,
}

// authLoginCmd stores credentials
var authLoginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Store Instagram credentials securely",
	Long: `Store Instagram credentials in the system keychain or an encrypted file.

You will be prompted for the username (if not provided) and the password.
The password is read without echoing.`,
	Example: `  # Interactive login
  igdraw auth login

  # Login with username
  igdraw auth login myusername`,
	Args: cobra.MaximumNArgs(1),
	Run:  runAuthLogin,
}

// authLogoutCmd removes stored credentials
var authLogoutCmd = &cobra.Command{
	Use:   "logout <username>",
	Short: "Remove stored credentials",
	Args:  cobra.ExactArgs(1),
	Run:   runAuthLogout,
}

// authListCmd lists stored accounts
var authListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored accounts",
	Run:   runAuthList,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authListCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		cmd.PrintErrf("Failed to initialize credential manager: %v\n", err)
		os.Exit(1)
	}

	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		fmt.Print("Instagram username: ")
		reader := bufio.NewReader(os.Stdin)
		input, err := reader.ReadString('\n')
		if err != nil {
			cmd.PrintErrf("Failed to read username: %v\n", err)
			os.Exit(1)
		}
		username = strings.TrimSpace(input)
	}

	if username == "" {
		cmd.PrintErrln("Username is required")
		os.Exit(1)
	}

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		cmd.PrintErrf("Failed to read password: %v\n", err)
		os.Exit(1)
	}

	account := &auth.Account{
		Username: username,
		Password: string(passwordBytes),
	}

	if err := manager.Store(account); err != nil {
		cmd.PrintErrf("Failed to store credentials: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Credentials stored for @%s\n", username)
}

func runAuthLogout(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		cmd.PrintErrf("Failed to initialize credential manager: %v\n", err)
		os.Exit(1)
	}

	username := args[0]
	if err := manager.Delete(username); err != nil {
		cmd.PrintErrf("Failed to remove credentials: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Credentials removed for @%s\n", username)
}

func runAuthList(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		cmd.PrintErrf("Failed to initialize credential manager: %v\n", err)
		os.Exit(1)
	}

	accounts, err := manager.List()
	if err != nil {
		cmd.PrintErrf("Failed to list accounts: %v\n", err)
		os.Exit(1)
	}

	if len(accounts) == 0 {
		fmt.Println("No stored accounts.")
		return
	}

	fmt.Println("Stored accounts:")
	for _, account := range accounts {
		fmt.Printf("  @%s (updated %s)\n", account.Username, account.LastModified.Format("2006-01-02 15:04"))
	}
}

// resolveCredentials fills missing config credentials from the credential
// manager so accounts stored via "igdraw auth login" are picked up
func resolveCredentials(cfg *config.Config, log logger.Logger) {
	if cfg.HasCredentials() {
		return
	}

	manager, err := auth.NewManager()
	if err != nil {
		log.WithError(err).Debug("credential manager unavailable")
		return
	}

	account, err := manager.RetrieveDefault()
	if err != nil {
		log.Debug("no stored credentials found")
		return
	}

	cfg.Instagram.Username = account.Username
	cfg.Instagram.Password = account.Password
	log.WithField("username", account.Username).Info("using stored credentials")
}
