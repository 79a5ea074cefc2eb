package progression

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Run is one finished battle as recorded in the run log.
type Run struct {
	Battle     string    `json:"battle"`
	Encounter  string    `json:"encounter"`
	Class      string    `json:"class"`
	Victory    bool      `json:"victory"`
	Turns      int       `json:"turns"`
	Experience int       `json:"experience"`
	Finished   time.Time `json:"finished"`
}

// AppendRun adds run as one JSON line to runs.jsonl in dir.
func AppendRun(dir string, run Run) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("progression: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("progression: open run log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("progression: encode run: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("progression: write run log: %w", err)
	}
	return nil
}

// DataDir is where progression and run logs live by default:
// $XDG_DATA_HOME/skirmish, or ~/.local/share/skirmish.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "skirmish"), nil
}
