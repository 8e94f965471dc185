// Package logtail reads the tail of bookshelf's own log file and splits
// slog text records into fields for the activity overlay.
//
// Read keeps a ring of the last maxLines lines, so memory stays bounded no
// matter how large the file grows. A missing file yields no lines and no
// error; the log may simply not exist yet on a first run.
//
// Parse understands the key=value layout written by slog.TextHandler:
//
//	time=2026-10-14T15:30:00.000+02:00 level=WARN msg="catalog request failed" method=GET path=/api/books
//
// Lines that do not follow that layout come back with only Raw and Message
// set.
package logtail
