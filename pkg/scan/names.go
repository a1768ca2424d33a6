package scan

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownVersion is the version SplitName reports when the filename carries none.
const UnknownVersion = "Unknown"

// PackageExtensions are the file extensions recognised as mod packages.
var PackageExtensions = []string{".jar", ".zip"}

// IsPackage reports whether filename has a mod package extension, ignoring case.
func IsPackage(filename string) bool {
	ext := filepath.Ext(filename)
	for _, candidate := range PackageExtensions {
		if strings.EqualFold(ext, candidate) {
			return true
		}
	}
	return false
}

// Stem strips a trailing package extension from filename.
func Stem(filename string) string {
	if IsPackage(filename) {
		return filename[:len(filename)-len(filepath.Ext(filename))]
	}
	return filename
}

// SplitName infers a display name and version from a package filename. The
// split happens at the first '-' followed by a digit or 'v':
//
//	CoolMod-1.2.3.jar -> CoolMod, 1.2.3
//	CoolMod-v2.jar    -> CoolMod, v2
//	WeirdName.jar     -> WeirdName, Unknown
func SplitName(filename string) (name, version string) {
	stem := Stem(filename)
	for i := 0; i < len(stem); i++ {
		if stem[i] != '-' {
			continue
		}
		next, _ := utf8.DecodeRuneInString(stem[i+1:])
		if next == 'v' || unicode.IsNumber(next) {
			return stem[:i], stem[i+1:]
		}
	}
	return stem, UnknownVersion
}
