package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	libraryRepo "github.com/Astemirdum/library-lending/library/internal/repository"
	"github.com/Astemirdum/library-lending/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type Clock interface {
	Now() time.Time
}

// EventPublisher receives lending events after the transaction that produced them commits.
type EventPublisher interface {
	Publish(ctx context.Context, event kafka.LendingEvent) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, kafka.LendingEvent) error { return nil }

type Service struct {
	log       *zap.Logger
	repo      libraryRepo.Repository
	clock     Clock
	publisher EventPublisher
}

type Option func(s *Service)

func WithClock(clock Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithPublisher(publisher EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func NewService(repo libraryRepo.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:       log.Named("service"),
		repo:      repo,
		clock:     realClock{},
		publisher: nopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
