// Package model defines the core data structures shared by the fetch and
// convert pipelines of rom-archiver.
//
// # DownloadTask
//
// DownloadTask is one archive discovered on a directory listing page:
//
//	task := model.DownloadTask{
//	    URL:      "https://example.org/roms/Super%20Game%20%28USA%29.zip",
//	    FileName: "Super Game (USA).zip",
//	}
//
// Tasks are created by the link extractor and consumed exactly once by a
// download worker. They are passed by value and never mutated.
//
// # Region
//
// Region selects a release variant by a case-insensitive substring match
// against the decoded file name:
//
//	region, err := model.ParseRegion("japan")
//	region.Matches("Game (Japan).zip") // true
//	model.RegionAll.Matches("anything.zip") // true
package model
