package chain

import (
	"regexp"
	"strings"

	prerrors "prchain.dev/prchain/internal/errors"
)

const (
	// Keyword is the long spelling of the annotation keyword
	Keyword = "git-pr-chain"
	// ShortKeyword is accepted as a synonym for Keyword
	ShortKeyword = "GPC"
	// StopMarker as an annotation value keeps the commit and its descendants local
	StopMarker = "STOP"
)

var (
	annotationRegex = regexp.MustCompile(`(?m)^(?:` + regexp.QuoteMeta(Keyword) + `|` + regexp.QuoteMeta(ShortKeyword) + `):[ \t]*(.*)$`)
	stopRegex       = regexp.MustCompile(`^` + StopMarker + `(\s|$)`)
)

// Annotation is the parsed annotation line of a single commit message.
type Annotation struct {
	Found  bool
	Branch string
	Stop   bool
}

// ParseAnnotation scans a commit message for its annotation line.
// A message with more than one annotation line is rejected whatever the values.
func ParseAnnotation(c Commit) (Annotation, error) {
	matches := annotationRegex.FindAllStringSubmatch(c.Message, -1)
	switch len(matches) {
	case 0:
		return Annotation{}, nil
	case 1:
	default:
		return Annotation{}, prerrors.NewMultipleAnnotationsError(c.Hash, len(matches))
	}

	value := strings.TrimSpace(matches[0][1])
	if stopRegex.MatchString(value) {
		return Annotation{Found: true, Stop: true}, nil
	}
	if value == "" {
		return Annotation{}, prerrors.NewEmptyAnnotationError(c.Hash)
	}
	return Annotation{Found: true, Branch: value}, nil
}

// Resolve derives the label and stop state of c from its own annotation and
// its already resolved parent. parent is nil for the root of the chain.
func Resolve(c Commit, parent *Commit) (Commit, error) {
	ann, err := ParseAnnotation(c)
	if err != nil {
		return c, err
	}

	c.Stop = ann.Stop || (parent != nil && parent.Stop)
	switch {
	case c.Stop:
		c.Label = ""
	case ann.Found:
		c.Label = ann.Branch
	case parent != nil:
		c.Label = parent.Label
	default:
		c.Label = ""
	}
	return c, nil
}

// Annotate resolves every commit in one forward pass, oldest first.
// The input slice is not modified.
func Annotate(commits []Commit) ([]Commit, error) {
	out := make([]Commit, len(commits))
	for i, c := range commits {
		var parent *Commit
		if i > 0 {
			parent = &out[i-1]
		}
		resolved, err := Resolve(c, parent)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}
