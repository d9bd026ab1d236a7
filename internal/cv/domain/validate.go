package domain

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	MaxTextLen        = 200
	MaxDescriptionLen = 10000
	MaxTechnologies   = 30
)

type problems []string

func (p *problems) required(field, v string) {
	if v == "" {
		*p = append(*p, field+" is required")
	}
}

func (p *problems) maxLen(field, v string, n int) {
	if len(v) > n {
		*p = append(*p, fmt.Sprintf("%s must be at most %d characters", field, n))
	}
}

func (p *problems) link(field, v string) {
	if v == "" {
		return
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		*p = append(*p, field+" must be an http(s) URL")
	}
}

func (p *problems) period(start, end *Date) {
	if start != nil && end != nil && end.Before(start.Time) {
		*p = append(*p, "end_date must not be before start_date")
	}
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Errors: p}
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func (x *Profile) Normalize() {
	trim(&x.FullName, &x.Headline, &x.Location, &x.Email, &x.Phone, &x.Website, &x.GitHub, &x.LinkedIn, &x.AvatarURL)
}

func (x *Profile) Validate() error {
	var p problems
	p.maxLen("full_name", x.FullName, MaxTextLen)
	p.maxLen("headline", x.Headline, MaxTextLen)
	p.maxLen("bio", x.Bio, MaxDescriptionLen)
	if x.Email != "" && !strings.Contains(x.Email, "@") {
		p = append(p, "email is invalid")
	}
	p.link("website", x.Website)
	p.link("avatar_url", x.AvatarURL)
	return p.err()
}

func (x *Education) Normalize() { trim(&x.Institution, &x.Degree, &x.Field) }

func (x *Education) Validate() error {
	var p problems
	p.required("institution", x.Institution)
	p.maxLen("institution", x.Institution, MaxTextLen)
	p.maxLen("description", x.Description, MaxDescriptionLen)
	p.period(x.StartDate, x.EndDate)
	return p.err()
}

// Normalize drops the end date of a current position.
func (x *Experience) Normalize() {
	trim(&x.Company, &x.Position, &x.Location)
	if x.IsCurrent {
		x.EndDate = nil
	}
}

func (x *Experience) Validate() error {
	var p problems
	p.required("company", x.Company)
	p.maxLen("company", x.Company, MaxTextLen)
	p.maxLen("position", x.Position, MaxTextLen)
	p.maxLen("description", x.Description, MaxDescriptionLen)
	p.period(x.StartDate, x.EndDate)
	return p.err()
}

func (x *Skill) Normalize() { trim(&x.Name, &x.Level, &x.Category) }

func (x *Skill) Validate() error {
	var p problems
	p.required("name", x.Name)
	p.maxLen("name", x.Name, MaxTextLen)
	return p.err()
}

func (x *Language) Normalize() { trim(&x.Name, &x.Proficiency) }

func (x *Language) Validate() error {
	var p problems
	p.required("name", x.Name)
	p.maxLen("name", x.Name, MaxTextLen)
	return p.err()
}

func (x *Achievement) Normalize() { trim(&x.Title, &x.Issuer, &x.URL) }

func (x *Achievement) Validate() error {
	var p problems
	p.required("title", x.Title)
	p.maxLen("title", x.Title, MaxTextLen)
	p.maxLen("description", x.Description, MaxDescriptionLen)
	p.link("url", x.URL)
	return p.err()
}

// Normalize trims technologies and removes blanks and case-insensitive
// duplicates, keeping first occurrences.
func (x *Project) Normalize() {
	trim(&x.Name, &x.RepoURL, &x.LiveURL, &x.ImageURL)
	seen := make(map[string]bool, len(x.Technologies))
	out := make([]string, 0, len(x.Technologies))
	for _, t := range x.Technologies {
		t = strings.TrimSpace(t)
		k := strings.ToLower(t)
		if t == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	x.Technologies = out
}

func (x *Project) Validate() error {
	var p problems
	p.required("name", x.Name)
	p.maxLen("name", x.Name, MaxTextLen)
	p.maxLen("description", x.Description, MaxDescriptionLen)
	if len(x.Technologies) > MaxTechnologies {
		p = append(p, fmt.Sprintf("at most %d technologies", MaxTechnologies))
	}
	p.link("repo_url", x.RepoURL)
	p.link("live_url", x.LiveURL)
	p.link("image_url", x.ImageURL)
	return p.err()
}
