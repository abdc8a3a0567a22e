package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tm-cli/tm/internal/clierr"
	"github.com/tm-cli/tm/internal/render"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update tm to the latest version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("🔄 Checking for updates...")
		fmt.Printf("Current version: %s\n", render.OK(version))

		latest, err := latestVersion(cfg.ResolvedVersionURL())
		if err != nil {
			fmt.Printf("⚠️  Could not check latest version: %v\n", err)
			fmt.Println("Proceeding with update anyway...")
		} else {
			fmt.Printf("Latest version: %s\n", render.OK(latest))
			if strings.TrimPrefix(version, "v") == strings.TrimPrefix(latest, "v") {
				fmt.Println("✅ You're already running the latest version!")
				return nil
			}
		}

		fmt.Println()
		fmt.Println("Downloading and running the latest installer...")

		installURL := cfg.ResolvedInstallURL()
		out, err := exec.Command("bash", "-c", fmt.Sprintf("curl -fsSL %s | bash", installURL)).CombinedOutput()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Update failed: %s\n", strings.TrimSpace(string(out)))
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, "You can try updating manually:")
			fmt.Fprintf(os.Stderr, "  curl -fsSL %s | bash\n", installURL)
			return &clierr.SilentError{Code: 1}
		}

		fmt.Println("✅ Update completed successfully!")
		fmt.Println("Run 'tm --version' to verify the new version.")
		return nil
	},
}

// latestVersion asks the release endpoint for the newest version string.
func latestVersion(url string) (string, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("version endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding version response: %w", err)
	}
	if payload.Version == "" {
		return "", fmt.Errorf("version endpoint returned no version")
	}
	return payload.Version, nil
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
