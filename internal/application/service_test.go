package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dolmengate/label-cms/internal/domain"
)

func validArtistForm() ArtistForm {
	return ArtistForm{
		Name:     "Nova",
		Genre:    "Techno",
		Color:    "#112233",
		Featured: true,
	}
}

func validReleaseForm() ReleaseForm {
	return ReleaseForm{
		Title:      "Night Drive",
		ArtistName: "Nova",
		ArtworkURL: "https://cdn.example.com/nd.png",
		Year:       "2024",
		Color:      "#112233",
		Featured:   true,
	}
}

func TestResolveAdminStatusBlankToken(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	res := f.service.ResolveAdminStatus(context.Background(), "   ")
	if res.Status != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", res.Status)
	}
	if res.Alert != "" {
		t.Fatalf("blank token should not alert, got %q", res.Alert)
	}
}

func TestResolveAdminStatusInvalidToken(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	res := f.service.ResolveAdminStatus(context.Background(), "garbage")
	if res.Status != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", res.Status)
	}
	if res.Alert != "" {
		t.Fatalf("expired/invalid token is benign, got alert %q", res.Alert)
	}
}

func TestResolveAdminStatusProviderFailureAlerts(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	f.signer.parseErr = errors.New("provider exploded")
	res := f.service.ResolveAdminStatus(context.Background(), "tok-whatever")
	if res.Status != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", res.Status)
	}
	if res.Alert != "provider exploded" {
		t.Fatalf("expected provider failure alert, got %q", res.Alert)
	}
}

func TestResolveAdminStatusMemberAndNonMember(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	adminToken := f.signer.issue("admin@example.com")
	res := f.service.ResolveAdminStatus(context.Background(), adminToken)
	if res.Status != domain.StatusAdmin {
		t.Fatalf("expected admin, got %s", res.Status)
	}
	if res.Identity == nil || res.Identity.Email != "admin@example.com" {
		t.Fatalf("expected resolved identity, got %+v", res.Identity)
	}

	otherToken := f.signer.issue("visitor@example.com")
	res = f.service.ResolveAdminStatus(context.Background(), otherToken)
	if res.Status != domain.StatusNonAdmin {
		t.Fatalf("expected non-admin, got %s", res.Status)
	}
}

func TestResolveAdminStatusSlowLookupResolvesNonAdmin(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	f.admins.delay = 500 * time.Millisecond
	token := f.signer.issue("admin@example.com")

	start := time.Now()
	res := f.service.ResolveAdminStatus(context.Background(), token)
	if res.Status != domain.StatusNonAdmin {
		t.Fatalf("timed-out lookup must deny, got %s", res.Status)
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Fatalf("resolution should stop at the deadline, took %s", elapsed)
	}
}

func TestSignUpAndSignIn(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	ctx := context.Background()

	resp, err := f.service.SignUp(ctx, SignUpRequest{Email: "New@Example.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if resp.Email != "new@example.com" {
		t.Fatalf("email should be normalized, got %q", resp.Email)
	}
	if resp.Token == "" {
		t.Fatalf("expected session token")
	}

	if _, err := f.service.SignIn(ctx, SignInRequest{Email: "new@example.com", Password: "wrong"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := f.service.SignIn(ctx, SignInRequest{Email: "nobody@example.com", Password: "hunter2hunter2"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email must not be distinguishable, got %v", err)
	}
	if _, err := f.service.SignIn(ctx, SignInRequest{Email: "new@example.com", Password: "hunter2hunter2"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	_, err := f.service.SignUp(context.Background(), SignUpRequest{Email: "a@b.com", Password: "short"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestIdentityEventsOnSignInAndOut(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	var events []IdentityEvent
	unsubscribe := f.service.SubscribeIdentityEvents(func(e IdentityEvent) { events = append(events, e) })
	defer unsubscribe()

	resp, err := f.service.SignUp(context.Background(), SignUpRequest{Email: "a@b.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	f.service.SignOut(resp.Token)

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != IdentitySignedIn || events[0].Token != resp.Token {
		t.Fatalf("unexpected first event %+v", events[0])
	}
	if events[1].Kind != IdentitySignedOut || events[1].Email != "a@b.com" {
		t.Fatalf("unexpected second event %+v", events[1])
	}
}

func TestSaveArtistCreates(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	view, err := f.service.SaveArtist(context.Background(), adminIdentity(), validArtistForm())
	if err != nil {
		t.Fatalf("save artist: %v", err)
	}
	if view.ID == "" || view.Name != "Nova" || view.Color != "#112233" || !view.Featured {
		t.Fatalf("unexpected view %+v", view)
	}
	if f.artists.inserts != 1 || f.artists.updates != 0 {
		t.Fatalf("expected one insert, got inserts=%d updates=%d", f.artists.inserts, f.artists.updates)
	}
	if len(f.events.events) != 1 || f.events.events[0] != "artist.saved" {
		t.Fatalf("expected artist.saved event, got %v", f.events.events)
	}
}

func TestSaveArtistValidationLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	form := validArtistForm()
	form.Name = ""
	form.Color = "nope"

	_, err := f.service.SaveArtist(context.Background(), adminIdentity(), form)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["name"] == "" || verr.Fields["color"] == "" {
		t.Fatalf("expected both field errors, got %v", verr.Fields)
	}
	if f.artists.inserts != 0 && f.artists.updates != 0 {
		t.Fatalf("validation failure must not reach the repository")
	}
}

func TestSaveArtistRequiresAdmin(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	visitor := &domain.Identity{UserID: uuid.New(), Email: "visitor@example.com"}
	if _, err := f.service.SaveArtist(context.Background(), visitor, validArtistForm()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := f.service.SaveArtist(context.Background(), nil, validArtistForm()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for nil identity, got %v", err)
	}
}

func TestSaveArtistUploadsPendingImageFirst(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	form := validArtistForm()
	form.PendingImage = &ImageUpload{FileName: "nova.png", ContentType: "image/png", Data: []byte{1, 2, 3}}

	view, err := f.service.SaveArtist(context.Background(), adminIdentity(), form)
	if err != nil {
		t.Fatalf("save artist: %v", err)
	}
	if len(f.storage.objects) != 1 {
		t.Fatalf("expected one uploaded object, got %d", len(f.storage.objects))
	}
	if view.ImageURL == "" {
		t.Fatalf("expected persisted image url")
	}
}

func TestSaveArtistUploadFailureAbortsSave(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	f.storage.err = errors.New("disk full")
	form := validArtistForm()
	form.PendingImage = &ImageUpload{FileName: "nova.png", Data: []byte{1}}

	_, err := f.service.SaveArtist(context.Background(), adminIdentity(), form)
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}
	if f.artists.inserts != 0 {
		t.Fatalf("failed upload must not persist the row")
	}
}

func TestSaveArtistUpdateIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	ctx := context.Background()
	created, err := f.service.SaveArtist(ctx, adminIdentity(), validArtistForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	form := validArtistForm()
	form.ArtistID = uuid.MustParse(created.ID)
	form.Bio = "Updated bio"
	for i := 0; i < 2; i++ {
		if _, err := f.service.SaveArtist(ctx, adminIdentity(), form); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	rows, _ := f.artists.ListOrdered(ctx)
	if len(rows) != 1 {
		t.Fatalf("repeated updates must not duplicate, got %d rows", len(rows))
	}
	if rows[0].Bio != "Updated bio" {
		t.Fatalf("update not applied: %+v", rows[0])
	}
}

func TestPublicCreateArtistRequiresNameAndImage(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	_, err := f.service.PublicCreateArtist(context.Background(), ArtistForm{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["name"] == "" || verr.Fields["image_url"] != "Image URL is required" {
		t.Fatalf("expected name and image_url errors, got %v", verr.Fields)
	}
	if f.artists.inserts != 0 {
		t.Fatalf("validation failure must not reach the repository")
	}
}

func TestPublicCreateArtistAppendsWithDefaults(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	ctx := context.Background()
	if _, err := f.service.SaveArtist(ctx, adminIdentity(), validArtistForm()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	view, err := f.service.PublicCreateArtist(ctx, ArtistForm{
		Name:     "Aria",
		ImageURL: "https://cdn.example.com/aria.png",
	})
	if err != nil {
		t.Fatalf("public create: %v", err)
	}
	if view.Color != "#3B82F6" {
		t.Fatalf("color should default, got %q", view.Color)
	}
	if view.OrderIndex != 1 {
		t.Fatalf("new artist should append to the ordering, got %d", view.OrderIndex)
	}
	if f.artists.inserts != 2 {
		t.Fatalf("expected insert, got %d", f.artists.inserts)
	}
}

func TestDeleteArtistWithoutConfirmation(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	err := f.service.DeleteArtist(context.Background(), adminIdentity(), uuid.New(), false)
	if !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Fatalf("expected confirmation required, got %v", err)
	}
	if f.artists.deletes != 0 {
		t.Fatalf("unconfirmed delete must not reach the repository")
	}
}

func TestSaveReleaseCreatesAndValidates(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	ctx := context.Background()

	view, err := f.service.SaveRelease(ctx, adminIdentity(), validReleaseForm())
	if err != nil {
		t.Fatalf("save release: %v", err)
	}
	if view.Title != "Night Drive" || view.Year != "2024" {
		t.Fatalf("unexpected view %+v", view)
	}

	bad := validReleaseForm()
	bad.Year = "1899"
	_, err = f.service.SaveRelease(ctx, adminIdentity(), bad)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Fields["year"] == "" {
		t.Fatalf("expected year validation error, got %v", err)
	}
}

func TestPublicArtistsServesFromCacheAfterFirstRead(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	ctx := context.Background()
	if _, err := f.service.SaveArtist(ctx, adminIdentity(), validArtistForm()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	first, err := f.service.PublicArtists(ctx)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected one artist, got %d", len(first))
	}

	// Break the repository; the cached copy must still serve.
	f.artists.listErr = errors.New("db down")
	second, err := f.service.PublicArtists(ctx)
	if err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if len(second) != 1 || second[0].Name != "Nova" {
		t.Fatalf("expected cached artist list, got %+v", second)
	}
}

func TestSaveArtistInvalidatesPublicCache(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	ctx := context.Background()
	if _, err := f.service.SaveArtist(ctx, adminIdentity(), validArtistForm()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := f.service.PublicArtists(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	second := validArtistForm()
	second.Name = "Aria"
	if _, err := f.service.SaveArtist(ctx, adminIdentity(), second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	views, err := f.service.PublicArtists(ctx)
	if err != nil {
		t.Fatalf("read after save: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("cache should have been invalidated, got %d artists", len(views))
	}
}

func TestSaveThemeUpdatesSingletonAndReloads(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	form := ThemeForm{
		PrimaryColor:    "#101010",
		SecondaryColor:  "#202020",
		AccentColor:     "#303030",
		ExtraColor1:     "#404040",
		ExtraColor2:     "#505050",
		BackgroundColor: "#606060",
		BorderColor:     "#707070",
		TextColor:       "#808080",
		LabelName:       "Midnight Records",
	}
	view, err := f.service.SaveTheme(context.Background(), adminIdentity(), form)
	if err != nil {
		t.Fatalf("save theme: %v", err)
	}
	if view.ID != domain.ThemeSettingsID.String() {
		t.Fatalf("theme must keep the singleton id, got %s", view.ID)
	}
	if view.Colors["primary_color"] != "#101010" || view.LabelName != "Midnight Records" {
		t.Fatalf("reloaded view does not reflect the update: %+v", view)
	}
	if f.theme.updates != 1 {
		t.Fatalf("expected one update, got %d", f.theme.updates)
	}
}

func TestSaveThemeRequiresAdmin(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	visitor := &domain.Identity{UserID: uuid.New(), Email: "visitor@example.com"}
	form := ThemeForm{
		PrimaryColor: "#101010", SecondaryColor: "#202020", AccentColor: "#303030",
		ExtraColor1: "#404040", ExtraColor2: "#505050", BackgroundColor: "#606060",
		BorderColor: "#707070", TextColor: "#808080", LabelName: "Midnight Records",
	}
	if _, err := f.service.SaveTheme(context.Background(), visitor, form); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if f.theme.updates != 0 {
		t.Fatalf("gate failure must not reach the repository")
	}
}

func TestSaveThemeNeverInserts(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	f.theme.exists = false
	form := ThemeForm{
		PrimaryColor: "#101010", SecondaryColor: "#202020", AccentColor: "#303030",
		ExtraColor1: "#404040", ExtraColor2: "#505050", BackgroundColor: "#606060",
		BorderColor: "#707070", TextColor: "#808080", LabelName: "Midnight Records",
	}
	if _, err := f.service.SaveTheme(context.Background(), adminIdentity(), form); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing singleton must surface not-found, got %v", err)
	}
}

func TestPublicThemeFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	f.theme.getErr = errors.New("db down")
	view := f.service.PublicTheme(context.Background())
	if view.Colors["primary_color"] != "#3B82F6" {
		t.Fatalf("expected default theme, got %+v", view)
	}
	if view.StyleVars["--color-primary"] != "#3B82F6" || view.StyleVars["--color-text"] != "#000000" {
		t.Fatalf("style vars should map defaults, got %v", view.StyleVars)
	}
}

func TestOAuthExchangeCreatesUserOnFirstSignIn(t *testing.T) {
	t.Parallel()

	f := newTestFixture()
	f.oauth.identity.Email = "Artist@Label.com"
	f.oauth.identity.Provider = "google"

	resp, err := f.service.OAuthExchange(context.Background(), "code-123")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if resp.Email != "artist@label.com" {
		t.Fatalf("expected normalized email, got %q", resp.Email)
	}

	again, err := f.service.OAuthExchange(context.Background(), "code-456")
	if err != nil {
		t.Fatalf("second exchange: %v", err)
	}
	if again.UserID != resp.UserID {
		t.Fatalf("repeat sign-in must reuse the user, got %s vs %s", again.UserID, resp.UserID)
	}
}
