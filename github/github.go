package github

import (
	"net/url"
	"strings"
)

const baseURL = "https://github.com/"

// RepoURL returns the GitHub page of an owner/repo path, or "" if the path is not owner/repo
func RepoURL(repo string) string {
	repo = strings.Trim(strings.TrimSpace(repo), "/")
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return ""
	}
	return baseURL + url.PathEscape(owner) + "/" + url.PathEscape(name)
}
