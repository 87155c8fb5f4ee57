// Package attackcsv turns a MITRE ATT&CK STIX bundle into one table per
// object type.
//
// The flow is [Decode] → [Convert] → [Write]. Convert validates the bundle,
// groups objects by their "type" field with [GroupByType], and builds a
// [Sheet] per group whose header comes from [BuildHeader]. Rows are
// produced lazily by [Project] when a sheet is written.
//
// # Headers
//
// Every header starts with type, id, created and modified. With
// [Options].DerivedID set, a mitre_attack_id column follows, filled from the
// first external reference whose source_name is "mitre-attack". The rest of
// the header is every field name seen in the group, in first-seen order.
// Records missing a column get "".
//
// # Descriptions
//
// The description column is passed through [Rewrite], which converts the
// small markdown dialect used by ATT&CK into plain text or HTML:
//
//	attackcsv.Rewrite("See <code>whoami</code>", attackcsv.ModePlain) // "See `whoami`"
//
// Plain text is used for every format except HTML; see [Format.Mode].
//
// # Formats
//
// Use [ParseFormat] to convert a CLI flag string into a [Format]:
//
//   - CSV: every field quoted, CRLF line ends, header row first
//   - TSV, JSON, JSONL, YAML, Markdown, HTML
//   - GoTemplate: "go-template=<tmpl>", executed against each row's column map
//
// [Summary] renders a bordered overview of the sheets for terminals.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidBundle] — malformed JSON, missing spec_version or objects
//   - [ErrUnsupportedVersion] — spec_version is not in [SupportedVersions]
//   - [ErrUnsupportedFormat] — unknown format string
//   - [ErrInvalidTemplate] — invalid go-template syntax
//   - [ErrInvalidMode], [ErrInvalidBorder] — bad mode or border names
package attackcsv
