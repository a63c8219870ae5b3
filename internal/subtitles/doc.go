// Package subtitles turns speech model segments into SRT files.
//
// The SRT helpers format and parse the numbered-block format. Generator is
// the transcription stage: it runs the injected transcript.Transcriber for
// one extracted audio file under a warning-suppression scope and writes the
// result next to the other run artifacts.
package subtitles
