package domain

// CredentialGroup names a shared secret. The value is also the environment
// variable holding that secret.
type CredentialGroup string

const (
	GroupYouTube CredentialGroup = "YT_API_KEY"
	GroupLRX     CredentialGroup = "LRX_API_KEY"
	GroupITFE    CredentialGroup = "ITFE_API_KEY"
)

// PlatformAlias binds one lower-case platform alias to its credential group.
type PlatformAlias struct {
	Alias string
	Group CredentialGroup
}

var platformAliases = []PlatformAlias{
	// YouTube
	{"youtube", GroupYouTube},
	{"yt", GroupYouTube},

	// LinkedIn, Reddit, X
	{"linkedin", GroupLRX},
	{"reddit", GroupLRX},
	{"x", GroupLRX},
	{"twitter", GroupLRX},

	// Instagram, TikTok, Facebook, Email
	{"instagram", GroupITFE},
	{"insta", GroupITFE},
	{"tiktok", GroupITFE},
	{"facebook", GroupITFE},
	{"fb", GroupITFE},
	{"email", GroupITFE},
}

// PlatformAliases returns a copy of the alias table in declaration order.
func PlatformAliases() []PlatformAlias {
	out := make([]PlatformAlias, len(platformAliases))
	copy(out, platformAliases)
	return out
}

// GroupFor returns the credential group of a lower-case alias.
func GroupFor(alias string) (CredentialGroup, bool) {
	for _, pa := range platformAliases {
		if pa.Alias == alias {
			return pa.Group, true
		}
	}
	return "", false
}

// DefaultEditModel is the model used by the edit path.
const DefaultEditModel = "meta-llama/llama-4-maverick:free"

var defaultFallbackModels = []string{
	"openai/gpt-oss-120b:free",
	"openai/gpt-oss-20b:free",
	"meta-llama/llama-4-maverick:free",
}

// DefaultFallbackModels returns a copy of the built-in model fallback chain.
func DefaultFallbackModels() []string {
	out := make([]string, len(defaultFallbackModels))
	copy(out, defaultFallbackModels)
	return out
}
