package inkpress

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

// CVData is the full résumé document loaded from the YAML data file.
type CVData struct {
	Personal                Personal     `yaml:"personal"`
	Contact                 Contact      `yaml:"contact"`
	Summary                 string       `yaml:"summary"`
	Experience              []Engagement `yaml:"experience"`
	OpenSourceContributions []Engagement `yaml:"openSourceContributions"`
	Skills                  Skills       `yaml:"skills"`
	Talks                   []Talk       `yaml:"talks"`
	Projects                []Project    `yaml:"projects"`
	Certifications          []string     `yaml:"certifications"`
}

// Personal is the name/title header of the CV.
type Personal struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Contact holds the ways to reach the CV's owner.
type Contact struct {
	Email        string `yaml:"email"`
	Phone        string `yaml:"phone"`
	LinkedIn     string `yaml:"linkedin"`
	LinkedInLink string `yaml:"linkedinLink"`
	GitHub       string `yaml:"github"`
}

// Engagement is one employer or open-source engagement: a company with one
// or more positions held there. Responsibilities can be listed per position
// or once for the whole engagement.
type Engagement struct {
	Company          string     `yaml:"company"`
	Location         string     `yaml:"location"`
	Skills           []string   `yaml:"skills"`
	Positions        []Position `yaml:"positions"`
	Responsibilities []string   `yaml:"responsibilities"`
}

// Position is a title held for a period within an Engagement.
type Position struct {
	Title            string   `yaml:"title"`
	Period           string   `yaml:"period"`
	Responsibilities []string `yaml:"responsibilities"`
}

// Skills groups skills by discipline.
type Skills struct {
	Frontend []string `yaml:"frontend"`
	Backend  []string `yaml:"backend"`
}

// Talk is one conference or meetup appearance with its sessions.
type Talk struct {
	Venue    string    `yaml:"venue"`
	Date     string    `yaml:"date"`
	Location string    `yaml:"location"`
	Sessions []Session `yaml:"sessions"`
}

// Session is one session within a Talk.
type Session struct {
	Name    string       `yaml:"name"`
	Summary string       `yaml:"summary"`
	Type    string       `yaml:"type"`
	With    string       `yaml:"with"` // co-presenter, if any
	Links   SessionLinks `yaml:"links"`
}

// SessionLinks are the recording/code/slides links for a session.
type SessionLinks struct {
	YouTube string `yaml:"youtube"`
	GitHub  string `yaml:"github"`
	Slides  string `yaml:"slides"`
}

// Project is one side project entry.
type Project struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
}

// ParseCV unmarshals and validates a CV document.
func ParseCV(raw []byte) (*CVData, error) {
	var cv CVData
	if err := yaml.Unmarshal(raw, &cv); err != nil {
		return nil, fmt.Errorf("parse cv data: %w", err)
	}
	if err := cv.Validate(); err != nil {
		return nil, err
	}
	return &cv, nil
}

// Validate checks the structural fields the presentation layer cannot render
// without. It reports the first missing field by name rather than letting
// empty values propagate into the page.
func (cv *CVData) Validate() error {
	if cv.Personal.Name == "" {
		return fmt.Errorf("cv data: personal.name is required")
	}
	if cv.Personal.Title == "" {
		return fmt.Errorf("cv data: personal.title is required")
	}
	if cv.Summary == "" {
		return fmt.Errorf("cv data: summary is required")
	}
	for i, e := range cv.Experience {
		if err := e.validate(fmt.Sprintf("experience[%d]", i)); err != nil {
			return err
		}
	}
	for i, e := range cv.OpenSourceContributions {
		if err := e.validate(fmt.Sprintf("openSourceContributions[%d]", i)); err != nil {
			return err
		}
	}
	for i, t := range cv.Talks {
		if t.Venue == "" {
			return fmt.Errorf("cv data: talks[%d].venue is required", i)
		}
		for j, s := range t.Sessions {
			if s.Name == "" {
				return fmt.Errorf("cv data: talks[%d].sessions[%d].name is required", i, j)
			}
		}
	}
	return nil
}

func (e Engagement) validate(path string) error {
	if e.Company == "" {
		return fmt.Errorf("cv data: %s.company is required", path)
	}
	if len(e.Positions) == 0 {
		return fmt.Errorf("cv data: %s.positions must not be empty", path)
	}
	for i, p := range e.Positions {
		if p.Title == "" {
			return fmt.Errorf("cv data: %s.positions[%d].title is required", path, i)
		}
		if p.Period == "" {
			return fmt.Errorf("cv data: %s.positions[%d].period is required", path, i)
		}
	}
	return nil
}

// CVLoader fetches and caches the CV document for the session. Like the
// article Loader it is base-path-aware and coalesces concurrent fetches.
type CVLoader struct {
	loader *Loader

	group singleflight.Group

	mu     sync.Mutex
	cached *CVData
}

// NewCVLoader creates a CVLoader sharing the Loader's HTTP configuration.
func NewCVLoader(cfg LoaderConfig) *CVLoader {
	return &CVLoader{loader: NewLoader(cfg)}
}

// Load fetches, parses, and validates the CV document, caching the result.
// Unlike LoadAll, a failure here is returned to the caller: the CV page has
// no sensible empty state to degrade to.
func (c *CVLoader) Load(ctx context.Context) (*CVData, error) {
	c.mu.Lock()
	if c.cached != nil {
		cv := c.cached
		c.mu.Unlock()
		return cv, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("cv", func() (interface{}, error) {
		raw, err := c.loader.get(ctx, "/cv-data.yaml", "cv data")
		if err != nil {
			return nil, err
		}
		cv, err := ParseCV(raw)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cached = cv
		c.mu.Unlock()
		return cv, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CVData), nil
}

// ClearCache drops the cached CV document.
func (c *CVLoader) ClearCache() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}
