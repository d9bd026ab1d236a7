package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/foliocraft/foliocraft-backend/internal/cv/domain"
)

// CVRepository groups the per-record tables of a CV.
type CVRepository struct {
	db           *sql.DB
	Educations   *Table[domain.Education, *domain.Education]
	Experiences  *Table[domain.Experience, *domain.Experience]
	Skills       *Table[domain.Skill, *domain.Skill]
	Languages    *Table[domain.Language, *domain.Language]
	Achievements *Table[domain.Achievement, *domain.Achievement]
	Projects     *Table[domain.Project, *domain.Project]
}

func NewCVRepository(db *sql.DB) *CVRepository {
	return &CVRepository{
		db: db,
		Educations: &Table[domain.Education, *domain.Education]{
			db: db, name: "educations",
			columns: []string{"institution", "degree", "field", "start_date", "end_date", "description"},
			orderBy: "start_date DESC NULLS FIRST, created_at",
			fields: func(x *domain.Education) []any {
				return []any{&x.Institution, &x.Degree, &x.Field, &x.StartDate, &x.EndDate, &x.Description}
			},
			values: func(x *domain.Education) []any {
				return []any{x.Institution, x.Degree, x.Field, x.StartDate, x.EndDate, x.Description}
			},
		},
		Experiences: &Table[domain.Experience, *domain.Experience]{
			db: db, name: "experiences",
			columns: []string{"company", "position", "location", "start_date", "end_date", "is_current", "description"},
			orderBy: "is_current DESC, start_date DESC NULLS FIRST, created_at",
			fields: func(x *domain.Experience) []any {
				return []any{&x.Company, &x.Position, &x.Location, &x.StartDate, &x.EndDate, &x.IsCurrent, &x.Description}
			},
			values: func(x *domain.Experience) []any {
				return []any{x.Company, x.Position, x.Location, x.StartDate, x.EndDate, x.IsCurrent, x.Description}
			},
		},
		Skills: &Table[domain.Skill, *domain.Skill]{
			db: db, name: "skills",
			columns: []string{"name", "level", "category"},
			orderBy: "category, name",
			fields:  func(x *domain.Skill) []any { return []any{&x.Name, &x.Level, &x.Category} },
			values:  func(x *domain.Skill) []any { return []any{x.Name, x.Level, x.Category} },
		},
		Languages: &Table[domain.Language, *domain.Language]{
			db: db, name: "languages",
			columns: []string{"name", "proficiency"},
			orderBy: "created_at",
			fields:  func(x *domain.Language) []any { return []any{&x.Name, &x.Proficiency} },
			values:  func(x *domain.Language) []any { return []any{x.Name, x.Proficiency} },
		},
		Achievements: &Table[domain.Achievement, *domain.Achievement]{
			db: db, name: "achievements",
			columns: []string{"title", "issuer", "awarded_on", "url", "description"},
			orderBy: "awarded_on DESC NULLS LAST, created_at",
			fields: func(x *domain.Achievement) []any {
				return []any{&x.Title, &x.Issuer, &x.AwardedOn, &x.URL, &x.Description}
			},
			values: func(x *domain.Achievement) []any {
				return []any{x.Title, x.Issuer, x.AwardedOn, x.URL, x.Description}
			},
		},
		Projects: &Table[domain.Project, *domain.Project]{
			db: db, name: "projects",
			columns: []string{"name", "description", "technologies", "repo_url", "live_url", "image_url"},
			orderBy: "created_at DESC",
			fields: func(x *domain.Project) []any {
				return []any{&x.Name, &x.Description, pq.Array(&x.Technologies), &x.RepoURL, &x.LiveURL, &x.ImageURL}
			},
			values: func(x *domain.Project) []any {
				return []any{x.Name, x.Description, pq.Array(x.Technologies), x.RepoURL, x.LiveURL, x.ImageURL}
			},
		},
	}
}

const profileColumns = `user_id::text, full_name, headline, bio, location, email, phone, website, github, linkedin, avatar_url, updated_at`

func scanProfile(s scanner) (*domain.Profile, error) {
	var p domain.Profile
	err := s.Scan(&p.UserID, &p.FullName, &p.Headline, &p.Bio, &p.Location, &p.Email, &p.Phone,
		&p.Website, &p.GitHub, &p.LinkedIn, &p.AvatarURL, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *CVRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1::uuid;`, userID))
}

// UpsertProfile creates or replaces the user's single profile row.
func (r *CVRepository) UpsertProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	const q = `
INSERT INTO profiles (user_id, full_name, headline, bio, location, email, phone, website, github, linkedin, avatar_url)
VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (user_id) DO UPDATE SET
  full_name = EXCLUDED.full_name, headline = EXCLUDED.headline, bio = EXCLUDED.bio,
  location = EXCLUDED.location, email = EXCLUDED.email, phone = EXCLUDED.phone,
  website = EXCLUDED.website, github = EXCLUDED.github, linkedin = EXCLUDED.linkedin,
  avatar_url = EXCLUDED.avatar_url, updated_at = now()
RETURNING ` + profileColumns + `;
`
	return scanProfile(r.db.QueryRowContext(ctx, q, p.UserID, p.FullName, p.Headline, p.Bio, p.Location,
		p.Email, p.Phone, p.Website, p.GitHub, p.LinkedIn, p.AvatarURL))
}
