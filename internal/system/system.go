package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
	}
}

// FindLatest returns the most recently modified file in dir whose extension
// is one of exts (case-insensitive).
func FindLatest(dir string, exts ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExt(f.Name(), exts) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено файлов %s", dir, strings.Join(exts, ", "))
	}
	return latestFile, nil
}

func hasExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

var (
	encodersOnce sync.Once
	encodersList string
)

func ffmpegEncoders() string {
	encodersOnce.Do(func() {
		out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
		if err == nil {
			encodersList = string(out)
		}
	})
	return encodersList
}

// GetBestH264Encoder picks a hardware H.264 encoder when ffmpeg offers one.
// The second value is the default quality for it.
func GetBestH264Encoder() (string, int) {
	// Приоритеты:
	// 1. MacOS (VideoToolbox)
	// 2. NVIDIA (NVENC)
	// 3. Software (libx264)
	list := ffmpegEncoders()
	for _, enc := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(list, enc) {
			return enc, DefaultQuality(enc)
		}
	}
	return "libx264", DefaultQuality("libx264")
}

// DefaultQuality is the quality value that gives a comparable result per encoder.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // битрейт 7.5 Мбит/с
	case "h264_nvenc":
		return 28 // эквивалент CRF для NVENC
	default:
		return 23 // стандартный CRF для x264
	}
}

// FFmpegAvailable reports whether the ffmpeg binary is on PATH.
func FFmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// DefaultWorkers is the number of physical cores, or the logical count when
// the physical one is unknown.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// MaxInFlightFrames bounds how many RGBA frames of the given size may be alive
// at once: a quarter of the available memory, at least 2, at most 256.
func MaxInFlightFrames(width, height int) int {
	frame := uint64(width) * uint64(height) * 4
	if frame == 0 {
		return 2
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 16
	}
	n := vm.Available / 4 / frame
	switch {
	case n < 2:
		return 2
	case n > 256:
		return 256
	}
	return int(n)
}

// Usage is a snapshot of host load used in the performance report.
type Usage struct {
	CPUPercent  float64
	MemUsedMB   uint64
	MemPercent  float64
	LogicalCPUs int
}

func CurrentUsage() Usage {
	var u Usage
	if p, err := cpu.Percent(0, false); err == nil && len(p) > 0 {
		u.CPUPercent = p[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		u.MemUsedMB = vm.Used / (1 << 20)
		u.MemPercent = vm.UsedPercent
	}
	if n, err := cpu.Counts(true); err == nil {
		u.LogicalCPUs = n
	}
	return u
}
