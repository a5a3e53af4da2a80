package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// GetDataDir resolves the base directory for all local storage. It checks
// BRS_AGENT_DIR first, then XDG paths, and finally falls back to the user's
// home directory.
func GetDataDir() string {
	if explicit := os.Getenv("BRS_AGENT_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "brs-agent")
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "brs-agent")
}

// GetDBPath returns the absolute path to the SQLite database file.
func GetDBPath() string {
	return filepath.Join(GetDataDir(), "index.db")
}

// GetObjectsDir returns the directory that stores exported document snapshots.
func GetObjectsDir() string {
	return filepath.Join(GetDataDir(), "objects")
}

// EncodeFileName sanitizes document names so they can be used as directory names.
func EncodeFileName(fileName string) string {
	replacer := strings.NewReplacer("/", "-", ".", "-", "_", "-")
	return replacer.Replace(fileName)
}

// OpenAIAPIKey returns the API key for the generation provider, empty if unset.
func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// OpenAIModel returns the chat model used to implement document edits.
func OpenAIModel() string {
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		return model
	}
	return "o3-mini"
}

// ListenAddr returns the address the HTTP API binds to.
func ListenAddr() string {
	if addr := os.Getenv("BRS_LISTEN_ADDR"); addr != "" {
		return addr
	}
	return ":8090"
}
