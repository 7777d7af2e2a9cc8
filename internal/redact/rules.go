package redact

// Marker replaces every piece of detected secret material. It must not match
// any rule below, which keeps redaction idempotent.
const Marker = "[REDACTED]"

// KeyRule names a sensitive key. Pattern is a regular expression fragment
// for the key name, matched case-insensitively at the end of an assignment
// target, so "token" also covers GITHUB_TOKEN.
type KeyRule struct {
	Name    string
	Pattern string
}

// TokenRule describes a secret shape found anywhere in the text. When Group
// is non-zero only that capture group is replaced.
type TokenRule struct {
	Name    string
	Pattern string
	Group   int
}

// DefaultKeyRules are applied first, in order.
var DefaultKeyRules = []KeyRule{
	{Name: "password", Pattern: `passw(?:or)?d`},
	{Name: "secret", Pattern: `secret`},
	{Name: "token", Pattern: `token`},
	{Name: "api key", Pattern: `api[_-]?key`},
	{Name: "access token", Pattern: `access[_-]?token`},
	{Name: "refresh token", Pattern: `refresh[_-]?token`},
	{Name: "private key", Pattern: `private[_-]?key`},
	{Name: "jwt", Pattern: `jwt`},
	{Name: "auth", Pattern: `auth`},
	{Name: "client secret", Pattern: `client[_-]?secret`},
	{Name: "db password", Pattern: `db[_-]?password`},
}

// DefaultTokenRules run after the key rules, in order. JWTs come before the
// bearer rule so a bearer JWT is counted once.
var DefaultTokenRules = []TokenRule{
	{Name: "private key block", Pattern: `(?s)-----BEGIN [A-Z0-9 ]*PRIVATE KEY-----.*?-----END [A-Z0-9 ]*PRIVATE KEY-----`},
	{Name: "jwt", Pattern: `\beyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`},
	{Name: "aws access key id", Pattern: `\b(?:AKIA|ASIA|AGPA|AIDA|AROA|AIPA|ANPA|ANVA)[0-9A-Z]{16}\b`},
	{Name: "aws secret access key", Pattern: `(?i)aws.{0,20}?(?:secret|key).{0,20}?['"]([A-Za-z0-9/+=]{40})['"]`, Group: 1},
	{Name: "anthropic api key", Pattern: `\bsk-ant-[A-Za-z0-9_-]{20,}`},
	{Name: "openai api key", Pattern: `\bsk-(?:proj-)?[A-Za-z0-9_-]{20,}`},
	{Name: "github token", Pattern: `\b(?:ghp|gho|ghu|ghs|ghr)_[A-Za-z0-9]{36,}`},
	{Name: "github fine-grained token", Pattern: `\bgithub_pat_[A-Za-z0-9_]{22,}`},
	{Name: "gitlab token", Pattern: `\bglpat-[A-Za-z0-9_-]{20,}`},
	{Name: "slack token", Pattern: `\bxox[abposr]-[A-Za-z0-9-]{10,}`},
	{Name: "stripe key", Pattern: `\b(?:sk|rk|pk)_(?:live|test)_[A-Za-z0-9]{16,}`},
	{Name: "google api key", Pattern: `\bAIza[0-9A-Za-z_-]{35}`},
	{Name: "bearer token", Pattern: `(?i)\bbearer[ \t]+([A-Za-z0-9._~+/-]{20,}=*)`, Group: 1},
}
