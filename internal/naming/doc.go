// Package naming provides filesystem-safe names and the file extensions
// used for report artifacts.
//
// Every file a report writes (pages, images, plain-text tables) is named
// from user supplied titles. Those titles may contain spaces, accents,
// path separators and other characters that break relative links once
// the report folder is zipped or moved. SafeFileName folds them into a
// portable subset.
package naming
