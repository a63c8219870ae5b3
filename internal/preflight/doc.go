// Package preflight provides readiness checks for the executables and
// directories a run depends on.
//
// The CLI "autosub check" command prints every result; a normal run calls
// RunAll before touching any input and aborts when a check fails, so a
// missing ffmpeg is reported once instead of once per video.
package preflight
