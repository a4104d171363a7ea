package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Service struct {
	repo    Repo
	members Members

	audit func(action string, fields map[string]string)
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

func NewService(repo Repo, members Members) *Service {
	return &Service{
		repo:    repo,
		members: members,

		audit: func(string, map[string]string) {},
		log:   zerolog.Nop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

func (s *Service) WithLogger(lg zerolog.Logger) *Service {
	s.log = lg.With().Str("component", "project").Logger()
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) WithIDs(newID func() string) *Service {
	if newID != nil {
		s.newID = newID
	}
	return s
}
