package utils

import (
	"strings"
)

const (
	SourceExtension      = ".h5"
	DestinationExtension = ".root"
)

// SplitExt splits path into root and extension the way os.path.splitext does:
// leading dots of the base name never start an extension.
func SplitExt(path string) (root, ext string) {
	dot := strings.LastIndex(path, ".")
	sep := strings.LastIndexAny(path, `/\`)
	if dot <= sep {
		return path, ""
	}
	if strings.Trim(path[sep+1:dot], ".") == "" {
		return path, ""
	}
	return path[:dot], path[dot:]
}

func hasExtension(path, ext string) bool {
	_, got := SplitExt(path)
	return strings.ToLower(strings.TrimSpace(got)) == ext
}

// ResolveInputPath appends the source extension when it is missing and
// returns the base used to derive a default output name.
func ResolveInputPath(input string) (path, base string) {
	if !hasExtension(input, SourceExtension) {
		return input + SourceExtension, input
	}
	root, _ := SplitExt(input)
	return input, root
}

// ResolveOutputPath derives the output from base when output is empty and
// appends the destination extension when it is missing. It never strips an
// unrelated extension.
func ResolveOutputPath(base, output string) string {
	if output == "" {
		return base + DestinationExtension
	}
	if !hasExtension(output, DestinationExtension) {
		return output + DestinationExtension
	}
	return output
}

// SplitNames parses a comma separated list, dropping blanks.
func SplitNames(list string) []string {
	var names []string
	for _, n := range strings.Split(list, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
