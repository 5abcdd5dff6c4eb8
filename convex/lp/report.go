package lp

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// WriteResultFile renders sol/trace into the "<Driver>_Result_<timestamp>.txt"
// report format from §6.2 and writes it under dir (if dir is non-empty).
// A write failure is never fatal to the caller's solve: it is appended to
// trace as a final line and logged at Warn, per §7 ("file-write failures
// are recorded as final trace lines but never abort a solve already in
// memory").
func WriteResultFile(cfg SolverConfig, dir, driver string, sol Solution, tr *Trace, note string) (string, error) {
	if dir == "" {
		return "", nil
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_Result_%s.txt", driver, time.Now().Format("20060102_150405")))

	labels := make([]string, 0, len(sol.X))
	for label := range sol.X {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	content := fmt.Sprintf("Driver: %s\nStatus: %s\nZ: %.6g\n", driver, sol.Status, sol.Z)
	for _, label := range labels {
		content += fmt.Sprintf("%s = %.6g\n", label, sol.X[label])
	}
	if note != "" {
		content += fmt.Sprintf("\nNote: %s\n", note)
	}
	content += "\nStep log:\n" + tr.String()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		tr.Append("result file not written: %v", err)
		cfg.Log.Warn().Err(err).Str("dir", dir).Msg("could not create report directory")
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tr.Append("result file not written: %v", err)
		cfg.Log.Warn().Err(err).Str("path", path).Msg("could not write report file")
		return "", err
	}
	return path, nil
}
