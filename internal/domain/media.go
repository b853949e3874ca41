package domain

// FormatType is the coarse classification yt-dlp formats are sorted into.
type FormatType string

const (
	FormatAudio FormatType = "audio"
	FormatVideo FormatType = "video"
)

// MediaInfo is the subset of yt-dlp's --dump-json output the UI needs.
type MediaInfo struct {
	Title    string   `json:"title"`
	Duration *float64 `json:"duration"`
	Uploader string   `json:"uploader"`
	Formats  []Format `json:"formats"`
}

// Format describes a single downloadable stream.
type Format struct {
	FormatID   string     `json:"format_id"`
	Ext        string     `json:"ext"`
	Quality    string     `json:"quality"`
	Filesize   *int64     `json:"filesize"`
	Type       FormatType `json:"type"`
	Resolution string     `json:"resolution"`
	FPS        *float64   `json:"fps"`
	ABR        *float64   `json:"abr"`
	VBR        *float64   `json:"vbr"`
}

func (f Format) IsAudio() bool {
	return f.Type == FormatAudio
}

// FindFormat returns the format with the given id, or nil.
func (m *MediaInfo) FindFormat(id string) *Format {
	for i := range m.Formats {
		if m.Formats[i].FormatID == id {
			return &m.Formats[i]
		}
	}
	return nil
}
