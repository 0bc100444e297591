package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/motion2video/internal/system"
)

func (p *VideoProject) report(total, concat time.Duration) {
	cfg := p.Config
	fps := float64(p.total) / total.Seconds()
	usage := system.CurrentUsage()

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Mode: %s\n"+
			"Total Time: %.2fs\n"+
			"Render+Encode: %.2fs\n"+
			"Concatenation: %.2fs\n"+
			"Frames: %d (buffers allocated: %d)\n"+
			"Effective FPS: %.2f (x%.2f realtime)\n"+
			"CPU: %.0f%% of %d | RAM: %d MB (%.0f%%)\n"+
			"----------------------------\n",
		cfg.BuildVersion, cfg.Mode, total.Seconds(), (total - concat).Seconds(), concat.Seconds(),
		p.total, p.Pool.Allocated(), fps, fps/float64(cfg.FPS),
		usage.CPUPercent, usage.LogicalCPUs, usage.MemUsedMB, usage.MemPercent,
	)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Output: %s | Mode: %s | %dx%d@%d | Frames: %d | Total: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		cfg.BuildVersion,
		filepath.Base(cfg.OutputVideo),
		cfg.Mode,
		cfg.Width, cfg.Height, cfg.FPS,
		p.total,
		total.Seconds(),
		fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		return
	}
	f.WriteString(logEntry)
	f.Close()
}
