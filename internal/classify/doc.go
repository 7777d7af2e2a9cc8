// Package classify decides, per file, whether it is binary, private or
// code-like, and which Markdown fence language it should be shown with.
//
// All lookups go through Tables: special file names, code extensions, fence
// languages and the sensitive-file glob patterns. A languages.yml file can
// extend the code tables at startup.
package classify
