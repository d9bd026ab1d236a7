// Package github aggregates public GitHub profile statistics for the
// portfolio stats widget.
package github

import (
	"errors"
	"time"
)

var (
	ErrInvalidLogin = errors.New("invalid github username")
	ErrUserNotFound = errors.New("github user not found")
	ErrRateLimited  = errors.New("github rate limit exceeded")
)

type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

type Repo struct {
	Name            string `json:"name"`
	Fork            bool   `json:"fork"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
}

type LanguageCount struct {
	Language string `json:"language"`
	Repos    int    `json:"repos"`
}

// Stats is what the widget shows. Forks are excluded from Stars and
// TopLanguages.
type Stats struct {
	Login        string          `json:"login"`
	Name         string          `json:"name"`
	AvatarURL    string          `json:"avatar_url"`
	HTMLURL      string          `json:"html_url"`
	PublicRepos  int             `json:"public_repos"`
	Followers    int             `json:"followers"`
	Stars        int             `json:"stars"`
	Forks        int             `json:"forks"`
	TopLanguages []LanguageCount `json:"top_languages"`
	FetchedAt    time.Time       `json:"fetched_at"`
}
