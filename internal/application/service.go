package application

import (
	"sync"
	"time"

	"github.com/dolmengate/label-cms/internal/ports"
)

type Config struct {
	ServiceName string
	// AdminResolveTimeout bounds the membership lookup during session
	// resolution; expiry resolves to non-admin rather than hanging.
	AdminResolveTimeout time.Duration
	TokenTTL            time.Duration
	PublicCacheTTL      time.Duration
	MediaKeyPrefix      string
}

type Service struct {
	cfg      Config
	artists  ports.ArtistRepository
	releases ports.ReleaseRepository
	theme    ports.ThemeRepository
	admins   ports.AdminMembershipRepository
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenSigner
	oauth    ports.OAuthProvider
	storage  ports.ObjectStorage
	cache    ports.Cache
	events   ports.EventPublisher
	nowFn    func() time.Time

	subMu       sync.Mutex
	subscribers map[int]func(IdentityEvent)
	nextSubID   int
}

type Dependencies struct {
	Config   Config
	Artists  ports.ArtistRepository
	Releases ports.ReleaseRepository
	Theme    ports.ThemeRepository
	Admins   ports.AdminMembershipRepository
	Users    ports.UserRepository
	Hasher   ports.PasswordHasher
	Tokens   ports.TokenSigner
	OAuth    ports.OAuthProvider
	Storage  ports.ObjectStorage
	Cache    ports.Cache
	Events   ports.EventPublisher
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "label-cms"
	}
	if cfg.AdminResolveTimeout <= 0 {
		cfg.AdminResolveTimeout = 10 * time.Second
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.PublicCacheTTL <= 0 {
		cfg.PublicCacheTTL = time.Minute
	}
	if cfg.MediaKeyPrefix == "" {
		cfg.MediaKeyPrefix = "artist-images"
	}

	return &Service{
		cfg:         cfg,
		artists:     deps.Artists,
		releases:    deps.Releases,
		theme:       deps.Theme,
		admins:      deps.Admins,
		users:       deps.Users,
		hasher:      deps.Hasher,
		tokens:      deps.Tokens,
		oauth:       deps.OAuth,
		storage:     deps.Storage,
		cache:       deps.Cache,
		events:      deps.Events,
		nowFn:       func() time.Time { return time.Now().UTC() },
		subscribers: map[int]func(IdentityEvent){},
	}
}

// SubscribeIdentityEvents registers a callback invoked on every sign-in and
// sign-out. The returned function removes the subscription.
func (s *Service) SubscribeIdentityEvents(fn func(IdentityEvent)) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *Service) emitIdentityEvent(event IdentityEvent) {
	s.subMu.Lock()
	fns := make([]func(IdentityEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(event)
	}
}
