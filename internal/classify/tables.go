package classify

// Tables holds the declarative data the Classifier works from. Every lookup
// the classifier does goes through one of these; nothing is hard-coded in
// the decision functions.
type Tables struct {
	// SpecialNames maps exact (case-sensitive) file names to a fence language.
	// An empty language still marks the file as code.
	SpecialNames map[string]string
	// CodeExtensions holds lowercase extensions (".go") and lowercase full
	// file names ("dockerfile") that are included in full.
	CodeExtensions map[string]bool
	// Languages maps a lowercase extension to a Markdown fence language.
	Languages map[string]string
	// PrivatePatterns are glob patterns matched against the bare name and the
	// slash-separated relative path. A "**/" prefix matches at any depth.
	PrivatePatterns []string
	// PublicNames are exact names exempt from the privacy test.
	PublicNames []string
	// BinaryMIMEMajors are top-level MIME types treated as binary.
	BinaryMIMEMajors []string
	// BinaryMIMETypes are exact MIME types treated as binary.
	BinaryMIMETypes []string
}

var defaultSpecialNames = map[string]string{
	"Dockerfile":     "docker",
	"Makefile":       "make",
	"GNUmakefile":    "make",
	"Justfile":       "make",
	"Procfile":       "procfile",
	"Gemfile":        "ruby",
	"Rakefile":       "ruby",
	"Vagrantfile":    "ruby",
	"Jenkinsfile":    "groovy",
	"CMakeLists.txt": "cmake",
	".gitignore":     "gitignore",
	".gitattributes": "gitattributes",
	".dockerignore":  "gitignore",
	".editorconfig":  "ini",
	".env":           "",
	".env.local":     "",
	".tool-versions": "",
	"LICENSE":        "",
	"LICENCE":        "",
	"COPYING":        "",
}

var defaultCodeExtensions = []string{
	// general
	".txt", ".md", ".rst",
	// web / js
	".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs",
	".css", ".scss", ".sass", ".less", ".html", ".vue", ".svelte",
	// python
	".py", ".pyi",
	// jvm
	".java", ".kt", ".kts", ".scala", ".groovy",
	// c family
	".c", ".cc", ".cpp", ".cxx", ".h", ".hh", ".hpp", ".m", ".mm",
	".cs",
	".go", ".rs", ".swift", ".dart", ".zig",
	".rb", ".php", ".lua", ".pl", ".ex", ".exs", ".erl", ".hs",
	// shell / devops
	".sh", ".bash", ".zsh", ".fish", ".ps1", ".bat",
	"dockerfile",
	".env.example", ".env.template",
	".yml", ".yaml", ".toml", ".ini", ".cfg", ".conf",
	".json", ".jsonc",
	".tf", ".hcl", ".proto", ".graphql",
	// data
	".sql", ".csv", ".tsv",
	".gradle", ".properties",
}

var defaultLanguages = map[string]string{
	".py": "python", ".pyi": "python",
	".js": "javascript", ".mjs": "javascript", ".cjs": "javascript",
	".ts": "typescript", ".tsx": "tsx", ".jsx": "jsx",
	".vue": "vue", ".svelte": "svelte",
	".java": "java", ".kt": "kotlin", ".kts": "kotlin",
	".scala": "scala", ".groovy": "groovy", ".gradle": "groovy",
	".c": "c", ".cc": "cpp", ".cpp": "cpp", ".cxx": "cpp",
	".h": "cpp", ".hh": "cpp", ".hpp": "cpp",
	".m": "objective-c", ".mm": "objective-c",
	".cs": "csharp", ".go": "go", ".rs": "rust", ".swift": "swift",
	".dart": "dart", ".zig": "zig",
	".rb": "ruby", ".php": "php", ".lua": "lua", ".pl": "perl",
	".ex": "elixir", ".exs": "elixir", ".erl": "erlang", ".hs": "haskell",
	".sh": "bash", ".bash": "bash", ".zsh": "bash", ".fish": "bash",
	".ps1": "powershell", ".bat": "bat",
	".yml": "yaml", ".yaml": "yaml", ".toml": "toml",
	".ini": "ini", ".cfg": "ini", ".conf": "ini", ".properties": "properties",
	".json": "json", ".jsonc": "json",
	".tf": "hcl", ".hcl": "hcl", ".proto": "protobuf", ".graphql": "graphql",
	".css": "css", ".scss": "scss", ".sass": "sass", ".less": "less",
	".html": "html", ".md": "markdown", ".rst": "rst",
	".sql": "sql", ".csv": "csv", ".tsv": "tsv",
	".xml": "xml",
}

var defaultPrivatePatterns = []string{
	// env files
	".env", ".env.*", "*.env",
	// keys and certificates
	"*.pem", "*.key", "*.p12", "*.pfx", "*.jks", "*.keystore", "*.ppk",
	"*.crt", "*.cer", "*.gpg",
	"id_rsa", "id_dsa", "id_ecdsa", "id_ed25519",
	// credential and config files
	"credentials", "*credentials*.json", "credentials.y*ml", "credentials.xml",
	"secrets.json", "secrets.y*ml", "secrets.toml", "*.secret", "*.secrets",
	".netrc", ".npmrc", ".pypirc", ".pgpass", ".htpasswd", ".dockercfg",
	"*.tfvars", "*.tfstate", "*.tfstate.*",
	"kubeconfig",
	// cloud credentials
	"service-account*.json", "application_default_credentials.json",
	"**/.aws/credentials", "**/.aws/config",
	"**/.docker/config.json",
	"**/.kube/config",
	"**/.azure/*",
	"**/.config/gcloud/*",
}

var defaultPublicNames = []string{
	".env.example", ".env.template", ".env.sample", ".env.dist",
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	t := Tables{
		SpecialNames:     make(map[string]string, len(defaultSpecialNames)),
		CodeExtensions:   make(map[string]bool, len(defaultCodeExtensions)),
		Languages:        make(map[string]string, len(defaultLanguages)),
		PrivatePatterns:  append([]string(nil), defaultPrivatePatterns...),
		PublicNames:      append([]string(nil), defaultPublicNames...),
		BinaryMIMEMajors: []string{"image", "audio", "video", "font"},
		BinaryMIMETypes:  []string{"application/pdf", "application/zip"},
	}
	for name, lang := range defaultSpecialNames {
		t.SpecialNames[name] = lang
	}
	for _, ext := range defaultCodeExtensions {
		t.CodeExtensions[ext] = true
	}
	for ext, lang := range defaultLanguages {
		t.Languages[ext] = lang
	}
	return t
}

// mimeOverrides pins the MIME guess for extensions whose mapping would
// otherwise depend on the host's mime.types file.
var mimeOverrides = map[string]string{
	".png": "image/png", ".jpg": "image/jpeg", ".jpeg": "image/jpeg",
	".gif": "image/gif", ".bmp": "image/bmp", ".ico": "image/vnd.microsoft.icon",
	".webp": "image/webp", ".svg": "image/svg+xml", ".tif": "image/tiff",
	".tiff": "image/tiff", ".avif": "image/avif",
	".mp3": "audio/mpeg", ".wav": "audio/x-wav", ".ogg": "audio/ogg",
	".flac": "audio/flac", ".m4a": "audio/mp4",
	".mp4": "video/mp4", ".mov": "video/quicktime", ".avi": "video/x-msvideo",
	".mkv": "video/x-matroska", ".webm": "video/webm",
	".ttf": "font/ttf", ".otf": "font/otf", ".woff": "font/woff",
	".woff2": "font/woff2",
	".pdf": "application/pdf", ".zip": "application/zip",
	".md": "text/markdown",
}
