package leaderboard

import (
	"time"

	"skillsync-backend/lib/scrapers/skillssh"
)

// Config is the ambient fixed configuration of a sync run, passed
// into the service at startup.
type Config struct {
	OutputDir      string            `json:"output_dir"`
	UserAgent      string            `json:"user_agent"`
	TimeoutSeconds int               `json:"timeout_seconds"`
	SourceURLs     map[string]string `json:"source_urls"`
}

func DefaultConfig() Config {
	return Config{
		OutputDir:      "skills_sh",
		UserAgent:      skillssh.DefaultUserAgent,
		TimeoutSeconds: 20,
		SourceURLs: map[string]string{
			skillssh.CategoryAllTime:  "https://skills.sh/",
			skillssh.CategoryTrending: "https://skills.sh/trending",
			skillssh.CategoryHot:      "https://skills.sh/hot",
		},
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
