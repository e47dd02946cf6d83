// Package extract provides the streaming record extractor.
//
// An Extractor consumes a flat sequence of element start, character
// data and element end events and rebuilds one bounded record tree at a
// time. Which elements form records, which create container nodes and
// which leaf text is captured is decided by a *schema.Policy.
//
// Extractor states
//
//   AwaitingRecord
//       No record is open. Only a record start event is accepted.
//
//   InRecord
//       The record root is open and the current node is the innermost
//       open container. On the record's end event the callback is run
//       with the completed tree, after which the tree is cleared and the
//       extractor returns to AwaitingRecord.
//
// Any other event sequence is a structural error (see package xerr).
// The first error halts the extractor: every later call returns it.
//
// Event sources
//
// Parse drives an Extractor from an XML document using encoding/xml,
// one token at a time. Elements outside records (such as the
// <mediawiki> and <siteinfo> envelope of a MediaWiki dump) are skipped
// by Parse, so the Extractor only sees record events.
package extract
