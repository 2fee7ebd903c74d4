package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const maxBranchSlugLen = 48

var (
	ErrEmptySlug = errors.New("slug cannot be empty")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

func Slugify(input, fallback string) (string, error) {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}

// BranchName builds the branch used for documentation pull requests,
// e.g. "docugen/update-readme-1745432". The suffix keeps repeated runs apart.
func BranchName(title string, suffix int64) (string, error) {
	slug, err := Slugify(title, "docs")
	if err != nil {
		return "", err
	}
	if len(slug) > maxBranchSlugLen {
		slug = strings.TrimRight(slug[:maxBranchSlugLen], "-")
	}
	return fmt.Sprintf("docugen/%s-%d", slug, suffix), nil
}

func slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	return strings.Trim(slug, "-")
}
