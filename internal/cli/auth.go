package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/existflow/taskmaster/server"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API authentication",
	Long:  `Manage the bearer token that protects the HTTP API.`,
}

var authTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Hash an API token for the server config",
	Long: `Read a token (or generate one) and print its bcrypt hash. With --save
the hash is written to the config file as server.token_hash.

Examples:
  taskmaster auth token --generate --save
  echo -n "s3cret" | taskmaster auth token`,
	RunE: runAuthToken,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the API requires a token",
	RunE:  runAuthStatus,
}

var (
	authGenerate bool
	authSave     bool
)

func init() {
	authCmd.AddCommand(authTokenCmd)
	authCmd.AddCommand(authStatusCmd)

	authTokenCmd.Flags().BoolVar(&authGenerate, "generate", false, "Generate a random token")
	authTokenCmd.Flags().BoolVar(&authSave, "save", false, "Save the hash to the config file")
}

func runAuthToken(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var token string
	if authGenerate {
		generated, err := server.GenerateToken()
		if err != nil {
			return err
		}
		token = generated
		fmt.Fprintf(out, "🔑 Token: %s\n", token)
		fmt.Fprintln(out, "   Store it now, it cannot be shown again.")
	} else {
		read, err := readToken(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		token = read
	}

	hash, err := server.HashToken(token)
	if err != nil {
		return err
	}

	if !authSave {
		fmt.Fprintf(out, "Hash: %s\n", hash)
		return nil
	}

	cfg.Server.TokenHash = hash
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(out, "✅ Token hash saved to %s\n", cfg.Path())
	return nil
}

// readToken prompts without echo on a terminal, else reads one line
func readToken(in io.Reader, out io.Writer) (string, error) {
	var token string
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		token = string(b)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("token required")
	}
	return token, nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	if cfg.Server.TokenHash == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "🔓 API is open (no token hash configured)")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "🔒 API requires a bearer token")
	return nil
}
