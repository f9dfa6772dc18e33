package postgres

import (
	"time"

	"github.com/google/uuid"
)

type artistModel struct {
	ArtistID   uuid.UUID `gorm:"column:artist_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string    `gorm:"column:name"`
	Genre      string    `gorm:"column:genre"`
	Bio        string    `gorm:"column:bio"`
	ImageURL   string    `gorm:"column:image_url"`
	Color      string    `gorm:"column:color"`
	Instagram  string    `gorm:"column:instagram"`
	Twitter    string    `gorm:"column:twitter"`
	Spotify    string    `gorm:"column:spotify"`
	SoundCloud string    `gorm:"column:soundcloud"`
	Featured   bool      `gorm:"column:featured"`
	OrderIndex int       `gorm:"column:order_index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (artistModel) TableName() string { return "artists" }

type releaseModel struct {
	ReleaseID     uuid.UUID  `gorm:"column:release_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string     `gorm:"column:title"`
	ArtistName    string     `gorm:"column:artist_name"`
	ArtistID      *uuid.UUID `gorm:"column:artist_id"`
	ArtworkURL    string     `gorm:"column:artwork_url"`
	Year          string     `gorm:"column:year"`
	Color         string     `gorm:"column:color"`
	SpotifyURL    string     `gorm:"column:spotify_url"`
	AppleMusicURL string     `gorm:"column:apple_music_url"`
	SoundCloudURL string     `gorm:"column:soundcloud_url"`
	Featured      bool       `gorm:"column:featured"`
	OrderIndex    int        `gorm:"column:order_index"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (releaseModel) TableName() string { return "releases" }

type themeSettingsModel struct {
	ThemeID         uuid.UUID `gorm:"column:theme_id;type:uuid;primaryKey"`
	PrimaryColor    string    `gorm:"column:primary_color"`
	SecondaryColor  string    `gorm:"column:secondary_color"`
	AccentColor     string    `gorm:"column:accent_color"`
	ExtraColor1     string    `gorm:"column:extra_color_1"`
	ExtraColor2     string    `gorm:"column:extra_color_2"`
	BackgroundColor string    `gorm:"column:background_color"`
	BorderColor     string    `gorm:"column:border_color"`
	TextColor       string    `gorm:"column:text_color"`
	LabelName       string    `gorm:"column:label_name"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (themeSettingsModel) TableName() string { return "theme_settings" }

type adminUserModel struct {
	AdminUserID uuid.UUID `gorm:"column:admin_user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email       string    `gorm:"column:email"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (adminUserModel) TableName() string { return "admin_users" }

type userModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }
