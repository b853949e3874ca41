// Package ytdlp wraps the yt-dlp command line tool.
//
// It covers the three calls ytweb makes: describing a URL (--dump-json),
// downloading one format while streaming combined stdout/stderr line by
// line, and self-updating (-U). Command execution goes through Executor so
// tests can replace the real process.
package ytdlp
