package platform

import (
	"fmt"
	"os/exec"
)

// Dependencies names the external binaries ytweb shells out to.
type Dependencies struct {
	Tool   string // yt-dlp, required
	FFmpeg string // optional, needed for merging and audio conversion
}

// Report is what ValidateDependencies found on PATH.
type Report struct {
	ToolPath   string
	FFmpegPath string
}

func (r Report) FFmpegAvailable() bool {
	return r.FFmpegPath != ""
}

func ValidateDependencies(deps Dependencies) (Report, error) {
	var report Report

	path, err := exec.LookPath(deps.Tool)
	if err != nil {
		return report, fmt.Errorf("required dependency: '%s' not found in PATH", deps.Tool)
	}
	report.ToolPath = path

	if deps.FFmpeg != "" {
		if p, err := exec.LookPath(deps.FFmpeg); err == nil {
			report.FFmpegPath = p
		}
	}

	return report, nil
}
