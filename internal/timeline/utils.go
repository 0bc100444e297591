package timeline

import (
	"fmt"
	"path/filepath"
	"time"
)

// GeneratePlanPath creates a timestamped plan filename inside dir
func GeneratePlanPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("timeline_%s.yaml", timestamp))
}
