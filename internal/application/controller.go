package application

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/dolmengate/label-cms/internal/domain"
)

// Tab is the admin panel section currently in front of the operator.
type Tab string

const (
	TabArtists  Tab = "artists"
	TabReleases Tab = "releases"
	TabTheme    Tab = "theme"
)

// AdminController holds the server-side state of one admin panel session:
// resolved status, the entity lists on screen, one edit buffer per entity
// kind, the field errors attached to each buffer, and a queue of alerts.
// All methods are safe for concurrent use.
type AdminController struct {
	mu  sync.Mutex
	svc *Service

	token    string
	status   domain.AdminStatus
	identity *domain.Identity

	activeTab Tab
	artists   []ArtistView
	releases  []ReleaseView
	theme     ThemeView

	artistForm    *ArtistForm
	artistErrors  domain.FormErrors
	releaseForm   *ReleaseForm
	releaseErrors domain.FormErrors
	themeForm     *ThemeForm
	themeErrors   domain.FormErrors

	alerts      []string
	unsubscribe func()
}

// NewAdminController starts a controller in the unauthenticated state and
// subscribes it to identity events so sign-ins and sign-outs re-drive
// resolution without the caller's involvement.
func NewAdminController(svc *Service) *AdminController {
	c := &AdminController{
		svc:       svc,
		status:    domain.StatusUnauthenticated,
		activeTab: TabArtists,
	}
	c.unsubscribe = svc.SubscribeIdentityEvents(func(event IdentityEvent) {
		switch event.Kind {
		case IdentitySignedIn:
			c.Resolve(context.Background(), event.Token)
		case IdentitySignedOut:
			c.Reset()
		}
	})
	return c
}

// Close detaches the controller from identity events.
func (c *AdminController) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Resolve runs the session state machine for the given token and, when it
// lands on admin, loads the three entity lists. The status flips to
// authenticating for the duration so observers never see a stale answer.
func (c *AdminController) Resolve(ctx context.Context, token string) domain.AdminStatus {
	c.mu.Lock()
	c.token = token
	c.status = domain.StatusAuthenticating
	c.mu.Unlock()

	res := c.svc.ResolveAdminStatus(ctx, token)

	c.mu.Lock()
	c.status = res.Status
	c.identity = res.Identity
	if res.Alert != "" {
		c.alerts = append(c.alerts, res.Alert)
	}
	c.mu.Unlock()

	if res.Status == domain.StatusAdmin {
		c.refreshAll(ctx)
	}
	return res.Status
}

// Reset returns the controller to its initial state after a sign-out.
func (c *AdminController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.status = domain.StatusUnauthenticated
	c.identity = nil
	c.artists = nil
	c.releases = nil
	c.theme = ThemeView{}
	c.artistForm = nil
	c.artistErrors = nil
	c.releaseForm = nil
	c.releaseErrors = nil
	c.themeForm = nil
	c.themeErrors = nil
	c.activeTab = TabArtists
}

func (c *AdminController) Status() domain.AdminStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *AdminController) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

func (c *AdminController) SetActiveTab(tab Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch tab {
	case TabArtists, TabReleases, TabTheme:
		c.activeTab = tab
	}
}

func (c *AdminController) Artists() []ArtistView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ArtistView(nil), c.artists...)
}

func (c *AdminController) Releases() []ReleaseView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ReleaseView(nil), c.releases...)
}

func (c *AdminController) Theme() ThemeView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// DrainAlerts returns queued alerts and clears the queue.
func (c *AdminController) DrainAlerts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.alerts
	c.alerts = nil
	return out
}

func (c *AdminController) pushAlert(message string) {
	c.mu.Lock()
	c.alerts = append(c.alerts, message)
	c.mu.Unlock()
}

// refreshAll refetches every list from the repositories. A list whose fetch
// fails keeps its previous contents; the failure is queued as an alert
// instead of blanking rows the operator may be working against.
func (c *AdminController) refreshAll(ctx context.Context) {
	c.refreshArtists(ctx)
	c.refreshReleases(ctx)
	c.refreshTheme(ctx)
}

func (c *AdminController) refreshArtists(ctx context.Context) {
	c.mu.Lock()
	identity := c.identity
	c.mu.Unlock()

	views, err := c.svc.ListArtists(ctx, identity)
	if err != nil {
		c.pushAlert(domain.Classify(err))
		return
	}
	c.mu.Lock()
	c.artists = views
	c.mu.Unlock()
}

func (c *AdminController) refreshReleases(ctx context.Context) {
	c.mu.Lock()
	identity := c.identity
	c.mu.Unlock()

	views, err := c.svc.ListReleases(ctx, identity)
	if err != nil {
		c.pushAlert(domain.Classify(err))
		return
	}
	c.mu.Lock()
	c.releases = views
	c.mu.Unlock()
}

func (c *AdminController) refreshTheme(ctx context.Context) {
	c.mu.Lock()
	identity := c.identity
	c.mu.Unlock()

	view, err := c.svc.LoadTheme(ctx, identity)
	if err != nil {
		c.pushAlert(domain.Classify(err))
		return
	}
	c.mu.Lock()
	c.theme = view
	c.mu.Unlock()
}

// BeginArtistEdit opens the artist buffer. With a nil subject it seeds a
// blank form: default blue, featured on, and an order index appending to the
// current list. With a subject it copies the row so edits stay off-list
// until submit.
func (c *AdminController) BeginArtistEdit(subject *ArtistView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.artistErrors = nil
	if subject == nil {
		c.artistForm = &ArtistForm{
			Color:      "#3B82F6",
			Featured:   true,
			OrderIndex: len(c.artists),
		}
		return
	}
	id, _ := uuid.Parse(subject.ID)
	c.artistForm = &ArtistForm{
		ArtistID:   id,
		Name:       subject.Name,
		Genre:      subject.Genre,
		Bio:        subject.Bio,
		ImageURL:   subject.ImageURL,
		Color:      subject.Color,
		Instagram:  subject.Instagram,
		Twitter:    subject.Twitter,
		Spotify:    subject.Spotify,
		SoundCloud: subject.SoundCloud,
		Featured:   subject.Featured,
		OrderIndex: subject.OrderIndex,
	}
}

// SetArtistField writes one field into the open buffer and clears any error
// attached to that field. Errors on other fields stay until the next submit.
func (c *AdminController) SetArtistField(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.artistForm == nil {
		return
	}
	switch field {
	case "name":
		c.artistForm.Name = value
	case "genre":
		c.artistForm.Genre = value
	case "bio":
		c.artistForm.Bio = value
	case "image_url":
		c.artistForm.ImageURL = value
	case "color":
		c.artistForm.Color = value
	case "instagram":
		c.artistForm.Instagram = value
	case "twitter":
		c.artistForm.Twitter = value
	case "spotify":
		c.artistForm.Spotify = value
	case "soundcloud":
		c.artistForm.SoundCloud = value
	case "featured":
		c.artistForm.Featured = value == "true"
	case "order_index":
		if n, err := strconv.Atoi(value); err == nil {
			c.artistForm.OrderIndex = n
		}
	default:
		return
	}
	delete(c.artistErrors, field)
}

// AttachArtistImage stages a file upload on the open buffer.
func (c *AdminController) AttachArtistImage(upload *ImageUpload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.artistForm == nil {
		return
	}
	c.artistForm.PendingImage = upload
	delete(c.artistErrors, "image_url")
}

func (c *AdminController) ArtistForm() *ArtistForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.artistForm == nil {
		return nil
	}
	form := *c.artistForm
	return &form
}

func (c *AdminController) ArtistErrors() domain.FormErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneFormErrors(c.artistErrors)
}

// SubmitArtist pushes the open buffer through the save pipeline. Validation
// failure replaces the field-error set wholesale and surfaces the first
// message as an alert; the buffer stays open either way until success.
func (c *AdminController) SubmitArtist(ctx context.Context) error {
	c.mu.Lock()
	if c.artistForm == nil {
		c.mu.Unlock()
		return nil
	}
	form := *c.artistForm
	identity := c.identity
	c.mu.Unlock()

	_, err := c.svc.SaveArtist(ctx, identity, form)
	if err != nil {
		c.recordSubmitFailure(err, &c.artistErrors)
		return err
	}

	c.mu.Lock()
	c.artistForm = nil
	c.artistErrors = nil
	c.mu.Unlock()
	c.refreshArtists(ctx)
	return nil
}

// CancelArtistEdit discards the buffer and its errors.
func (c *AdminController) CancelArtistEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.artistForm = nil
	c.artistErrors = nil
}

// DeleteArtist forwards the confirmed flag untouched: without confirmation
// the service refuses and nothing reaches the repository.
func (c *AdminController) DeleteArtist(ctx context.Context, artistID uuid.UUID, confirmed bool) error {
	c.mu.Lock()
	identity := c.identity
	c.mu.Unlock()

	if err := c.svc.DeleteArtist(ctx, identity, artistID, confirmed); err != nil {
		if !errors.Is(err, domain.ErrConfirmationRequired) {
			c.pushAlert(domain.Classify(err))
		}
		return err
	}
	c.refreshArtists(ctx)
	return nil
}

func (c *AdminController) BeginReleaseEdit(subject *ReleaseView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseErrors = nil
	if subject == nil {
		c.releaseForm = &ReleaseForm{
			Year:       strconv.Itoa(c.svc.nowFn().Year()),
			Color:      "#3B82F6",
			Featured:   true,
			OrderIndex: len(c.releases),
		}
		return
	}
	id, _ := uuid.Parse(subject.ID)
	form := &ReleaseForm{
		ReleaseID:     id,
		Title:         subject.Title,
		ArtistName:    subject.ArtistName,
		ArtworkURL:    subject.ArtworkURL,
		Year:          subject.Year,
		Color:         subject.Color,
		SpotifyURL:    subject.SpotifyURL,
		AppleMusicURL: subject.AppleMusicURL,
		SoundCloudURL: subject.SoundCloudURL,
		Featured:      subject.Featured,
		OrderIndex:    subject.OrderIndex,
	}
	if subject.ArtistID != "" {
		if artistID, err := uuid.Parse(subject.ArtistID); err == nil {
			form.ArtistID = &artistID
		}
	}
	c.releaseForm = form
}

func (c *AdminController) SetReleaseField(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.releaseForm == nil {
		return
	}
	switch field {
	case "title":
		c.releaseForm.Title = value
	case "artist_name":
		c.releaseForm.ArtistName = value
	case "artist_id":
		if value == "" {
			c.releaseForm.ArtistID = nil
		} else if artistID, err := uuid.Parse(value); err == nil {
			c.releaseForm.ArtistID = &artistID
		}
	case "artwork_url":
		c.releaseForm.ArtworkURL = value
	case "year":
		c.releaseForm.Year = value
	case "color":
		c.releaseForm.Color = value
	case "spotify_url":
		c.releaseForm.SpotifyURL = value
	case "apple_music_url":
		c.releaseForm.AppleMusicURL = value
	case "soundcloud_url":
		c.releaseForm.SoundCloudURL = value
	case "featured":
		c.releaseForm.Featured = value == "true"
	case "order_index":
		if n, err := strconv.Atoi(value); err == nil {
			c.releaseForm.OrderIndex = n
		}
	default:
		return
	}
	delete(c.releaseErrors, field)
}

func (c *AdminController) ReleaseForm() *ReleaseForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.releaseForm == nil {
		return nil
	}
	form := *c.releaseForm
	return &form
}

func (c *AdminController) ReleaseErrors() domain.FormErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneFormErrors(c.releaseErrors)
}

func (c *AdminController) SubmitRelease(ctx context.Context) error {
	c.mu.Lock()
	if c.releaseForm == nil {
		c.mu.Unlock()
		return nil
	}
	form := *c.releaseForm
	identity := c.identity
	c.mu.Unlock()

	_, err := c.svc.SaveRelease(ctx, identity, form)
	if err != nil {
		c.recordSubmitFailure(err, &c.releaseErrors)
		return err
	}

	c.mu.Lock()
	c.releaseForm = nil
	c.releaseErrors = nil
	c.mu.Unlock()
	c.refreshReleases(ctx)
	return nil
}

func (c *AdminController) CancelReleaseEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseForm = nil
	c.releaseErrors = nil
}

func (c *AdminController) DeleteRelease(ctx context.Context, releaseID uuid.UUID, confirmed bool) error {
	c.mu.Lock()
	identity := c.identity
	c.mu.Unlock()

	if err := c.svc.DeleteRelease(ctx, identity, releaseID, confirmed); err != nil {
		if !errors.Is(err, domain.ErrConfirmationRequired) {
			c.pushAlert(domain.Classify(err))
		}
		return err
	}
	c.refreshReleases(ctx)
	return nil
}

// BeginThemeEdit copies the loaded theme into the buffer so color tweaks
// stay local until submit.
func (c *AdminController) BeginThemeEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.themeErrors = nil
	colors := c.theme.Colors
	if colors == nil {
		colors = toThemeView(domain.DefaultTheme()).Colors
	}
	c.themeForm = &ThemeForm{
		PrimaryColor:    colors["primary_color"],
		SecondaryColor:  colors["secondary_color"],
		AccentColor:     colors["accent_color"],
		ExtraColor1:     colors["extra_color_1"],
		ExtraColor2:     colors["extra_color_2"],
		BackgroundColor: colors["background_color"],
		BorderColor:     colors["border_color"],
		TextColor:       colors["text_color"],
		LabelName:       c.theme.LabelName,
	}
}

func (c *AdminController) SetThemeField(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.themeForm == nil {
		return
	}
	switch field {
	case "primary_color":
		c.themeForm.PrimaryColor = value
	case "secondary_color":
		c.themeForm.SecondaryColor = value
	case "accent_color":
		c.themeForm.AccentColor = value
	case "extra_color_1":
		c.themeForm.ExtraColor1 = value
	case "extra_color_2":
		c.themeForm.ExtraColor2 = value
	case "background_color":
		c.themeForm.BackgroundColor = value
	case "border_color":
		c.themeForm.BorderColor = value
	case "text_color":
		c.themeForm.TextColor = value
	case "label_name":
		c.themeForm.LabelName = value
	default:
		return
	}
	delete(c.themeErrors, field)
}

func (c *AdminController) ThemeForm() *ThemeForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.themeForm == nil {
		return nil
	}
	form := *c.themeForm
	return &form
}

func (c *AdminController) ThemeErrors() domain.FormErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneFormErrors(c.themeErrors)
}

func (c *AdminController) SubmitTheme(ctx context.Context) error {
	c.mu.Lock()
	if c.themeForm == nil {
		c.mu.Unlock()
		return nil
	}
	form := *c.themeForm
	identity := c.identity
	c.mu.Unlock()

	view, err := c.svc.SaveTheme(ctx, identity, form)
	if err != nil {
		c.recordSubmitFailure(err, &c.themeErrors)
		return err
	}

	c.mu.Lock()
	c.theme = view
	c.themeForm = nil
	c.themeErrors = nil
	c.mu.Unlock()
	return nil
}

func (c *AdminController) CancelThemeEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.themeForm = nil
	c.themeErrors = nil
}

// recordSubmitFailure replaces the buffer's error set with the validation
// result, or queues a classified alert for non-validation failures.
func (c *AdminController) recordSubmitFailure(err error, target *domain.FormErrors) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.mu.Lock()
		*target = cloneFormErrors(verr.Fields)
		c.mu.Unlock()
		c.pushAlert(verr.Error())
		return
	}
	c.pushAlert(domain.Classify(err))
}

func cloneFormErrors(src domain.FormErrors) domain.FormErrors {
	if src == nil {
		return nil
	}
	out := make(domain.FormErrors, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
