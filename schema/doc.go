// Copyright 2018 Andrew Fort

// Package schema provides the field selector policy used by the
// record extractor.
//
// A Policy is an immutable table built from a Config. It declares
// three disjoint sets of element tags:
//
//   record
//       The single top-level record tag (e.g. <page>). Each closed
//       record element is handed to the extractor's callback.
//
//   containers
//       Tags which group leaf fields and/or further containers
//       (e.g. <revision>, <contributor>). Each occurrence creates a
//       node in the record tree.
//
//   leaves
//       Tags whose character data is captured verbatim, but only when
//       the (container, leaf) pair appears in the field table.
//
// The same leaf tag may be declared under several containers; each
// (container, leaf) pair resolves to its own field, so <id> under
// <page> and <id> under <revision> never share storage.
//
// Schema files
//
// Load reads a Policy from an XML schema file of the form
//
//   <schema record="page">
//     <container name="revision"/>
//     <field container="page" tag="title"/>
//     <field container="revision" tag="id" name="rev_id"/>
//   </schema>
//
// where a field's name defaults to its tag.
package schema
