package github

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	topLanguages = 5
	fetchTimeout = 15 * time.Second
)

var loginRe = regexp.MustCompile(`^[A-Za-z0-9](?:-?[A-Za-z0-9]){0,38}$`)

// API is implemented by Client.
type API interface {
	User(ctx context.Context, login string) (*User, error)
	Repos(ctx context.Context, login string) ([]Repo, error)
}

// Cache is implemented by RedisCache. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, login string) (*Stats, error)
	Set(ctx context.Context, s *Stats) error
}

type StatsService struct {
	api    API
	cache  Cache
	group  singleflight.Group
	logger *zap.Logger
	now    func() time.Time
}

func NewStatsService(api API, cache Cache, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{api: api, cache: cache, logger: logger, now: time.Now}
}

// Stats serves from cache when possible. Concurrent misses for the same
// login share one upstream fetch. Cache failures are logged, never returned.
func (s *StatsService) Stats(ctx context.Context, login string) (*Stats, error) {
	if !loginRe.MatchString(login) {
		return nil, ErrInvalidLogin
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, login)
		if err != nil {
			s.logger.Warn("github stats cache read failed", zap.String("login", login), zap.Error(err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	// The shared fetch is detached from any single caller; each waiter
	// gives up on its own context.
	ch := s.group.DoChan(strings.ToLower(login), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return s.fetch(fetchCtx, login)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Stats), nil
	}
}

func (s *StatsService) fetch(ctx context.Context, login string) (*Stats, error) {
	u, err := s.api.User(ctx, login)
	if err != nil {
		return nil, err
	}
	repos, err := s.api.Repos(ctx, u.Login)
	if err != nil {
		return nil, err
	}

	st := Aggregate(u, repos)
	st.FetchedAt = s.now().UTC()

	if s.cache != nil {
		if err := s.cache.Set(ctx, st); err != nil {
			s.logger.Warn("github stats cache write failed", zap.String("login", login), zap.Error(err))
		}
	}
	return st, nil
}

// Aggregate sums stars and forks and ranks languages by repository count,
// ties broken by name.
func Aggregate(u *User, repos []Repo) *Stats {
	st := &Stats{
		Login:       u.Login,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		HTMLURL:     u.HTMLURL,
		PublicRepos: u.PublicRepos,
		Followers:   u.Followers,
	}

	langs := map[string]int{}
	for _, r := range repos {
		if r.Fork {
			continue
		}
		st.Stars += r.StargazersCount
		st.Forks += r.ForksCount
		if r.Language != "" {
			langs[r.Language]++
		}
	}

	st.TopLanguages = make([]LanguageCount, 0, len(langs))
	for l, n := range langs {
		st.TopLanguages = append(st.TopLanguages, LanguageCount{Language: l, Repos: n})
	}
	sort.Slice(st.TopLanguages, func(i, j int) bool {
		a, b := st.TopLanguages[i], st.TopLanguages[j]
		if a.Repos != b.Repos {
			return a.Repos > b.Repos
		}
		return a.Language < b.Language
	})
	if len(st.TopLanguages) > topLanguages {
		st.TopLanguages = st.TopLanguages[:topLanguages]
	}
	return st
}
