/*
Package pipeline wires the record extractor to its input and output.

An extraction Pipeline reads a (possibly gzip compressed) XML dump,
feeds it through an extract.Extractor configured with a field
selection policy, projects each completed record into rows and
writes them as TSV to the (possibly compressed) output.

Pipelines are created using New and executed with Run, which opens
the configured input and output paths, or with Extract, which uses
caller supplied streams. The pipeline State carries its Status,
counters and any errors seen.

Timeframes is the second stage: it reads the revision rows an
extraction pipeline wrote and counts each registered user's edits
within a set of date ranges.
*/
package pipeline
