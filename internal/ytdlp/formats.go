package ytdlp

import (
	"encoding/json"
	"fmt"

	"github.com/datallboy/ytweb/internal/domain"
)

type rawInfo struct {
	Title    string      `json:"title"`
	Duration *float64    `json:"duration"`
	Uploader string      `json:"uploader"`
	Formats  []rawFormat `json:"formats"`
}

type rawFormat struct {
	FormatID   string   `json:"format_id"`
	Ext        string   `json:"ext"`
	VCodec     *string  `json:"vcodec"`
	ACodec     *string  `json:"acodec"`
	FormatNote *string  `json:"format_note"`
	Filesize   *int64   `json:"filesize"`
	Resolution string   `json:"resolution"`
	FPS        *float64 `json:"fps"`
	ABR        *float64 `json:"abr"`
	VBR        *float64 `json:"vbr"`
}

// parseInfo turns --dump-json output into MediaInfo.
func parseInfo(data []byte) (*domain.MediaInfo, error) {
	var raw rawInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse media info: %w", err)
	}

	info := &domain.MediaInfo{
		Title:    raw.Title,
		Duration: raw.Duration,
		Uploader: raw.Uploader,
		Formats:  make([]domain.Format, 0, len(raw.Formats)),
	}

	for _, f := range raw.Formats {
		kind, ok := classify(f)
		if !ok {
			continue
		}

		quality := "Unknown"
		if f.FormatNote != nil {
			quality = *f.FormatNote
		}

		info.Formats = append(info.Formats, domain.Format{
			FormatID:   f.FormatID,
			Ext:        f.Ext,
			Quality:    quality,
			Filesize:   f.Filesize,
			Type:       kind,
			Resolution: f.Resolution,
			FPS:        f.FPS,
			ABR:        f.ABR,
			VBR:        f.VBR,
		})
	}

	return info, nil
}

// classify sorts a format into audio or video. A missing codec field counts
// as "present"; formats with neither stream (storyboards) are dropped.
func classify(f rawFormat) (domain.FormatType, bool) {
	noVideo := f.VCodec != nil && *f.VCodec == "none"
	noAudio := f.ACodec != nil && *f.ACodec == "none"

	switch {
	case noVideo && noAudio:
		return "", false
	case noVideo:
		return domain.FormatAudio, true
	default:
		return domain.FormatVideo, true
	}
}
