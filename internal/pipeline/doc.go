// Package pipeline drives one autosub run: extract audio from every input,
// transcribe each extracted file to SRT, then burn the subtitles into a new
// MP4 unless only subtitles were requested.
//
// Stages run strictly in sequence and each drains the whole batch before the
// next starts. Extraction failures drop the file and the run continues.
// Transcription and burn-in failures abort the run unless KeepGoing is set,
// in which case every stage isolates failures per file and the run reports
// ErrItemsFailed at the end.
package pipeline
