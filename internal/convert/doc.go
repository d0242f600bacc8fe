// Package convert provides the convert pipeline: unpacking downloaded .zip
// archives and turning the disc images inside them into CHD files with
// chdman.
//
// # Processor
//
// For every .zip at the top level of the source folder, in name order, the
// Processor:
//
//  1. Extracts the archive into a scratch directory named after it
//  2. Converts each .iso and .cue in the scratch directory with
//     "chdman createcd -i <image> -o <image>.chd"
//  3. Deletes each source image whose conversion exited 0
//  4. Cleans up the scratch directory
//  5. Writes an .m3u playlist, if configured and the archive held several discs
//  6. Deletes the archive, if configured and nothing failed
//
// A failure affects only the archive or image it happened in; the run moves
// on to the next one. Archives are processed one at a time and each chdman
// invocation blocks until the process exits.
//
// # Basic Usage
//
//	proc := convert.NewProcessor(convertCfg, convert.NewChdmanConverter(convertCfg.ChdmanPath), onProgress)
//	summary, err := proc.ProcessFolder(ctx)
//
// # Converters
//
// The Converter interface lets tests and alternative tools stand in for
// chdman. ChdmanConverter reports a missing binary as ErrConverterNotFound
// and a non-zero exit through Result.ExitCode, so the two cases stay
// distinguishable.
package convert
