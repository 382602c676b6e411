package entities

import (
	"path"
	"strings"
)

// DefaultMaxFileChars is the number of characters returned by a read before truncation.
const DefaultMaxFileChars = 20000

// DefaultIgnoredExtensions lists extensions of binary or lock files that are never read.
func DefaultIgnoredExtensions() []string {
	return []string{".lock", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".pdf", ".zip"}
}

// DefaultIgnoredFiles lists dependency-lock filenames hidden from listings and never read.
func DefaultIgnoredFiles() []string {
	return []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "composer.lock"}
}

// SafetyPolicy is the immutable set of rules applied to every façade request.
// It is built once at startup and shared read-only.
type SafetyPolicy struct {
	ignoredExtensions map[string]struct{}
	ignoredFiles      map[string]struct{}
	maxFileChars      int
}

// NewSafetyPolicy creates a policy. A non-positive maxFileChars falls back to DefaultMaxFileChars.
func NewSafetyPolicy(ignoredExtensions, ignoredFiles []string, maxFileChars int) *SafetyPolicy {
	if maxFileChars <= 0 {
		maxFileChars = DefaultMaxFileChars
	}
	return &SafetyPolicy{
		ignoredExtensions: toSet(ignoredExtensions),
		ignoredFiles:      toSet(ignoredFiles),
		maxFileChars:      maxFileChars,
	}
}

// NewDefaultSafetyPolicy creates the policy shipped by default.
func NewDefaultSafetyPolicy() *SafetyPolicy {
	return NewSafetyPolicy(DefaultIgnoredExtensions(), DefaultIgnoredFiles(), DefaultMaxFileChars)
}

// MaxFileChars returns the truncation limit.
func (p *SafetyPolicy) MaxFileChars() int { return p.maxFileChars }

// IsIgnoredFile reports whether the base name of filePath is a denylisted filename.
func (p *SafetyPolicy) IsIgnoredFile(filePath string) bool {
	_, ok := p.ignoredFiles[path.Base(filePath)]
	return ok
}

// IsIgnoredExtension reports whether the extension of filePath is denylisted.
func (p *SafetyPolicy) IsIgnoredExtension(filePath string) bool {
	ext := Extension(filePath)
	if ext == "" {
		return false
	}
	_, ok := p.ignoredExtensions[ext]
	return ok
}

// Rejects reports whether a read of filePath must be refused without contacting the upstream.
func (p *SafetyPolicy) Rejects(filePath string) bool {
	return p.IsIgnoredExtension(filePath) || p.IsIgnoredFile(filePath)
}

// Extension returns the extension of the base name of filePath, including the dot.
// Leading dots do not start an extension, so ".gitignore" and "..." have none.
func Extension(filePath string) string {
	base := path.Base(filePath)
	trimmed := strings.TrimLeft(base, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 {
		return ""
	}
	return trimmed[idx:]
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
