// Package assemble builds the Markdown prompt document.
//
// Files are processed one at a time in the order given: privacy is checked
// first, then each file is classified, extracted (whole for code, head and
// tail windows otherwise), redacted, and appended as a section. Private
// files that are not opted in never reach the table of contents or the
// body. The only cross-file state is the Stats counter block.
package assemble
