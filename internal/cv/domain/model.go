package domain

import "time"

// Meta is shared by every list record. It is embedded, so its fields are
// flattened into the record's JSON.
type Meta struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Meta) EntryMeta() *Meta { return m }

// Entry is implemented by pointers to the list record types.
type Entry interface {
	EntryMeta() *Meta
	Normalize()
	Validate() error
}

type Profile struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Headline  string    `json:"headline"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Website   string    `json:"website"`
	GitHub    string    `json:"github"`
	LinkedIn  string    `json:"linkedin"`
	AvatarURL string    `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Education struct {
	Meta
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   *Date  `json:"start_date,omitempty"`
	EndDate     *Date  `json:"end_date,omitempty"`
	Description string `json:"description"`
}

type Experience struct {
	Meta
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   *Date  `json:"start_date,omitempty"`
	EndDate     *Date  `json:"end_date,omitempty"`
	IsCurrent   bool   `json:"is_current"`
	Description string `json:"description"`
}

type Skill struct {
	Meta
	Name     string `json:"name"`
	Level    string `json:"level"`
	Category string `json:"category"`
}

type Language struct {
	Meta
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

type Achievement struct {
	Meta
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	AwardedOn   *Date  `json:"awarded_on,omitempty"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type Project struct {
	Meta
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	RepoURL      string   `json:"repo_url"`
	LiveURL      string   `json:"live_url"`
	ImageURL     string   `json:"image_url"`
}

// CV aggregates everything a user has recorded.
type CV struct {
	Profile      *Profile       `json:"profile"`
	Educations   []*Education   `json:"educations"`
	Experiences  []*Experience  `json:"experiences"`
	Skills       []*Skill       `json:"skills"`
	Languages    []*Language    `json:"languages"`
	Achievements []*Achievement `json:"achievements"`
	Projects     []*Project     `json:"projects"`
}
