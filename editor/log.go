package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thinkeridea/lpteach/convex/lp"
)

// sensitivityLogName is the fixed append-only filename §6.3 names --
// unlike the timestamped per-driver result files, every edit in a session
// (and across sessions sharing a ReportDir) appends to the same file.
const sensitivityLogName = "sensitivity_analysis_log.txt"

// appendSensitivityLog appends one timestamped record to
// <cfg.ReportDir>/sensitivity_analysis_log.txt. A disabled ReportDir is a
// no-op, matching WriteResultFile's own "empty dir disables the write"
// convention; a write failure is returned for the caller to log but never
// propagated as a reason to undo the edit already applied in memory.
func appendSensitivityLog(cfg lp.SolverConfig, record string) error {
	if cfg.ReportDir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(cfg.ReportDir, sensitivityLogName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	line := fmt.Sprintf("[%s] %s\n", time.Now().Format(time.RFC3339), record)
	_, err = f.WriteString(line)
	return err
}
