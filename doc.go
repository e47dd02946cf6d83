/*
Package revdump is a set of libraries for extracting revision
metadata from MediaWiki-style XML dumps.

Dumps are streamed, never loaded whole: the extract package drives a
push-based record extractor from encoding/xml tokens, assembling one
record tree at a time from the elements a schema.Policy selects. Each
completed record is handed to a callback, typically a project.Projector
flattening it into one TSV row per repeated child.

The pipeline package wires these to (optionally gzip compressed) files
via dumpio and tsv, and the timeframe package counts per-user edits in
date ranges from the resulting rows. See cmd/revdump for the command
line tool.
*/
package revdump
