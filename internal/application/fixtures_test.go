package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dolmengate/label-cms/internal/domain"
	"github.com/dolmengate/label-cms/internal/ports"
)

type fakeArtistRepo struct {
	mu      sync.Mutex
	rows    []domain.Artist
	listErr error
	saveErr error

	inserts int
	updates int
	deletes int
}

func (f *fakeArtistRepo) ListOrdered(context.Context) ([]domain.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := append([]domain.Artist(nil), f.rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeArtistRepo) Insert(_ context.Context, params ports.SaveArtistParams) (domain.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.saveErr != nil {
		return domain.Artist{}, f.saveErr
	}
	row := domain.Artist{
		ArtistID: uuid.New(), Name: params.Name, Genre: params.Genre, Bio: params.Bio,
		ImageURL: params.ImageURL, Color: params.Color, Instagram: params.Instagram,
		Twitter: params.Twitter, Spotify: params.Spotify, SoundCloud: params.SoundCloud,
		Featured: params.Featured, OrderIndex: params.OrderIndex,
		CreatedAt: params.Now, UpdatedAt: params.Now,
	}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeArtistRepo) Update(_ context.Context, params ports.SaveArtistParams) (domain.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.saveErr != nil {
		return domain.Artist{}, f.saveErr
	}
	for i, row := range f.rows {
		if row.ArtistID == params.ArtistID {
			row.Name = params.Name
			row.Genre = params.Genre
			row.Bio = params.Bio
			row.ImageURL = params.ImageURL
			row.Color = params.Color
			row.Instagram = params.Instagram
			row.Twitter = params.Twitter
			row.Spotify = params.Spotify
			row.SoundCloud = params.SoundCloud
			row.Featured = params.Featured
			row.OrderIndex = params.OrderIndex
			row.UpdatedAt = params.Now
			f.rows[i] = row
			return row, nil
		}
	}
	return domain.Artist{}, domain.ErrNotFound
}

func (f *fakeArtistRepo) Delete(_ context.Context, artistID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	for i, row := range f.rows {
		if row.ArtistID == artistID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeReleaseRepo struct {
	mu      sync.Mutex
	rows    []domain.Release
	listErr error

	inserts int
	updates int
	deletes int
}

func (f *fakeReleaseRepo) ListOrdered(context.Context) ([]domain.Release, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := append([]domain.Release(nil), f.rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeReleaseRepo) Insert(_ context.Context, params ports.SaveReleaseParams) (domain.Release, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	row := domain.Release{
		ReleaseID: uuid.New(), Title: params.Title, ArtistName: params.ArtistName,
		ArtistID: params.ArtistID, ArtworkURL: params.ArtworkURL, Year: params.Year,
		Color: params.Color, SpotifyURL: params.SpotifyURL, AppleMusicURL: params.AppleMusicURL,
		SoundCloudURL: params.SoundCloudURL, Featured: params.Featured, OrderIndex: params.OrderIndex,
		CreatedAt: params.Now, UpdatedAt: params.Now,
	}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeReleaseRepo) Update(_ context.Context, params ports.SaveReleaseParams) (domain.Release, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	for i, row := range f.rows {
		if row.ReleaseID == params.ReleaseID {
			row.Title = params.Title
			row.ArtistName = params.ArtistName
			row.ArtistID = params.ArtistID
			row.ArtworkURL = params.ArtworkURL
			row.Year = params.Year
			row.Color = params.Color
			row.SpotifyURL = params.SpotifyURL
			row.AppleMusicURL = params.AppleMusicURL
			row.SoundCloudURL = params.SoundCloudURL
			row.Featured = params.Featured
			row.OrderIndex = params.OrderIndex
			row.UpdatedAt = params.Now
			f.rows[i] = row
			return row, nil
		}
	}
	return domain.Release{}, domain.ErrNotFound
}

func (f *fakeReleaseRepo) Delete(_ context.Context, releaseID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	for i, row := range f.rows {
		if row.ReleaseID == releaseID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeThemeRepo struct {
	mu      sync.Mutex
	row     domain.ThemeSettings
	exists  bool
	getErr  error
	updates int
}

func (f *fakeThemeRepo) Get(context.Context) (domain.ThemeSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return domain.ThemeSettings{}, f.getErr
	}
	if !f.exists {
		return domain.ThemeSettings{}, domain.ErrNotFound
	}
	return f.row, nil
}

func (f *fakeThemeRepo) Update(_ context.Context, params ports.SaveThemeParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if !f.exists {
		return domain.ErrNotFound
	}
	f.row.PrimaryColor = params.PrimaryColor
	f.row.SecondaryColor = params.SecondaryColor
	f.row.AccentColor = params.AccentColor
	f.row.ExtraColor1 = params.ExtraColor1
	f.row.ExtraColor2 = params.ExtraColor2
	f.row.BackgroundColor = params.BackgroundColor
	f.row.BorderColor = params.BorderColor
	f.row.TextColor = params.TextColor
	f.row.LabelName = params.LabelName
	f.row.UpdatedAt = params.Now
	return nil
}

type fakeAdminRepo struct {
	mu      sync.Mutex
	members map[string]bool
	err     error
	// delay simulates a slow membership lookup; the call honors context
	// cancellation so resolver timeouts can be exercised.
	delay time.Duration
}

func (f *fakeAdminRepo) IsAdmin(ctx context.Context, email string) (bool, error) {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.members[strings.ToLower(email)], nil
}

func (f *fakeAdminRepo) Add(_ context.Context, email string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.members == nil {
		f.members = map[string]bool{}
	}
	f.members[strings.ToLower(email)] = true
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, params ports.CreateUserParams) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.users == nil {
		f.users = map[string]domain.User{}
	}
	if _, ok := f.users[params.Email]; ok {
		return domain.User{}, domain.ErrConflict
	}
	user := domain.User{
		UserID: uuid.New(), Email: params.Email, PasswordHash: params.PasswordHash,
		CreatedAt: params.Now, UpdatedAt: params.Now,
	}
	f.users[params.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeSigner struct {
	mu     sync.Mutex
	tokens map[string]ports.AuthClaims
	next   int
	// parseErr, when set, fails every parse with a non-auth error.
	parseErr error
}

func (f *fakeSigner) Sign(claims ports.AuthClaims) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tokens == nil {
		f.tokens = map[string]ports.AuthClaims{}
	}
	f.next++
	token := fmt.Sprintf("tok-%d", f.next)
	f.tokens[token] = claims
	return token, nil
}

func (f *fakeSigner) ParseAndValidate(token string) (ports.AuthClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.parseErr != nil {
		return ports.AuthClaims{}, f.parseErr
	}
	claims, ok := f.tokens[token]
	if !ok {
		return ports.AuthClaims{}, fmt.Errorf("%w: unknown token", domain.ErrUnauthorized)
	}
	return claims, nil
}

func (f *fakeSigner) issue(email string) string {
	token, _ := f.Sign(ports.AuthClaims{UserID: uuid.New(), Email: email})
	return token
}

type fakeOAuth struct {
	identity ports.OAuthIdentity
	err      error
}

func (f *fakeOAuth) AuthCodeURL(state string) string {
	return "https://oauth.example.com/authorize?state=" + state
}

func (f *fakeOAuth) Exchange(context.Context, string) (ports.OAuthIdentity, error) {
	if f.err != nil {
		return ports.OAuthIdentity{}, f.err
	}
	return f.identity, nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (f *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://media.example.com/" + key
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
	return nil
}

type testFixture struct {
	service  *Service
	artists  *fakeArtistRepo
	releases *fakeReleaseRepo
	theme    *fakeThemeRepo
	admins   *fakeAdminRepo
	users    *fakeUserRepo
	signer   *fakeSigner
	oauth    *fakeOAuth
	storage  *fakeStorage
	cache    *fakeCache
	events   *fakePublisher
}

func newTestFixture() *testFixture {
	f := &testFixture{
		artists:  &fakeArtistRepo{},
		releases: &fakeReleaseRepo{},
		theme:    &fakeThemeRepo{row: domain.DefaultTheme(), exists: true},
		admins:   &fakeAdminRepo{members: map[string]bool{"admin@example.com": true}},
		users:    &fakeUserRepo{},
		signer:   &fakeSigner{},
		oauth:    &fakeOAuth{},
		storage:  &fakeStorage{},
		cache:    &fakeCache{},
		events:   &fakePublisher{},
	}
	f.service = NewService(Dependencies{
		Config: Config{
			ServiceName:         "label-cms-test",
			AdminResolveTimeout: 50 * time.Millisecond,
		},
		Artists:  f.artists,
		Releases: f.releases,
		Theme:    f.theme,
		Admins:   f.admins,
		Users:    f.users,
		Hasher:   fakeHasher{},
		Tokens:   f.signer,
		OAuth:    f.oauth,
		Storage:  f.storage,
		Cache:    f.cache,
		Events:   f.events,
	})
	return f
}

func adminIdentity() *domain.Identity {
	return &domain.Identity{UserID: uuid.New(), Email: "admin@example.com"}
}
