// Package redact removes credentials from text before it is placed in a
// prompt document.
//
// Two rule tables drive it. Key rules match line-oriented assignments such
// as API_KEY=... and replace only the value. Token rules match secret shapes
// anywhere in the text: JWTs, AWS access key IDs and quoted secret keys,
// vendor API keys, bearer headers and PEM private key blocks.
//
// Detection is heuristic and best effort.
package redact
