package sanitize

import (
	"os"
	"path/filepath"
	"strings"
)

// PathOptions configures SanitizePath.
type PathOptions struct {
	// ToPosix converts the sanitized path to forward slashes.
	ToPosix bool

	// AllowAbsolute permits absolute results. Without it an absolute
	// input (or an absolute residue after rooting) is rejected.
	AllowAbsolute bool

	// RootDir, when set, confines the path to this directory. The
	// sanitized result is returned relative to it.
	RootDir string
}

// PathResult is the outcome of a successful SanitizePath call. Produced
// fresh per call and never mutated afterwards.
type PathResult struct {
	// Sanitized is the cleaned path.
	Sanitized string

	// Original is the caller's input, recorded for audit purposes.
	Original string

	// WasAbsolute reports whether the original input was absolute.
	WasAbsolute bool

	// ConvertedToRelative reports whether an absolute input was rewritten
	// relative to RootDir.
	ConvertedToRelative bool

	// Options echoes the options the call was made with.
	Options PathOptions
}

// SanitizePath normalizes a filesystem path and guards against directory
// traversal.
//
// With RootDir set the path is resolved against the root and must stay
// inside it; the result is relative to the root ("." for the root
// itself). Without RootDir, absolute paths require AllowAbsolute and
// relative paths must stay within the current working directory, so
// "../../etc/passwd" is rejected either way.
func (s *Sanitizer) SanitizePath(input string, opts PathOptions) (*PathResult, error) {
	if input == "" {
		rejectionsTotal.WithLabelValues(opPath).Inc()
		return nil, validationErrorf(opPath, "empty path")
	}
	if strings.ContainsRune(input, 0) {
		rejectionsTotal.WithLabelValues(opPath).Inc()
		return nil, validationErrorf(opPath, "path contains NUL byte")
	}

	wasAbsolute := filepath.IsAbs(input)
	normalized := filepath.Clean(input)

	var sanitized string
	convertedToRelative := false

	if opts.RootDir != "" {
		root, err := filepath.Abs(filepath.Clean(opts.RootDir))
		if err != nil {
			return nil, validationErrorf(opPath, "cannot resolve root %q: %v", opts.RootDir, err)
		}

		resolved := normalized
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(root, resolved)
		}
		resolved = filepath.Clean(resolved)

		if !withinRoot(resolved, root) {
			rejectionsTotal.WithLabelValues(opPath).Inc()
			return nil, validationErrorf(opPath, "path escapes root directory")
		}

		rel, err := filepath.Rel(root, resolved)
		if err != nil {
			rejectionsTotal.WithLabelValues(opPath).Inc()
			return nil, validationErrorf(opPath, "cannot relativize path: %v", err)
		}
		if filepath.IsAbs(rel) && !opts.AllowAbsolute {
			rejectionsTotal.WithLabelValues(opPath).Inc()
			return nil, validationErrorf(opPath, "absolute paths are not allowed")
		}

		sanitized = rel
		convertedToRelative = wasAbsolute
	} else {
		if filepath.IsAbs(normalized) {
			if !opts.AllowAbsolute {
				rejectionsTotal.WithLabelValues(opPath).Inc()
				return nil, validationErrorf(opPath, "absolute paths are not allowed")
			}
			sanitized = normalized
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, validationErrorf(opPath, "cannot resolve working directory: %v", err)
			}
			resolved := filepath.Clean(filepath.Join(cwd, normalized))
			if !withinRoot(resolved, cwd) {
				rejectionsTotal.WithLabelValues(opPath).Inc()
				return nil, validationErrorf(opPath, "path escapes working directory")
			}
			sanitized = normalized
		}
	}

	if opts.ToPosix {
		sanitized = filepath.ToSlash(sanitized)
	}

	return &PathResult{
		Sanitized:           sanitized,
		Original:            input,
		WasAbsolute:         wasAbsolute,
		ConvertedToRelative: convertedToRelative,
		Options:             opts,
	}, nil
}

// withinRoot reports whether path equals root or sits below it.
func withinRoot(path, root string) bool {
	if path == root {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
