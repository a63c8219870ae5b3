// Package services defines shared utilities consumed by the pipeline stages
// and external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp the source video and stage name for
//     logging.
//   - Structured error markers plus the Wrap helper so failures carry the
//     stage that produced them and a classifiable kind.
//   - The CommandRunner abstraction that makes ffmpeg and model invocations
//     testable.
package services
