package postgres

import "github.com/dolmengate/label-cms/internal/domain"

func toDomainArtist(m artistModel) domain.Artist {
	return domain.Artist{
		ArtistID: m.ArtistID, Name: m.Name, Genre: m.Genre, Bio: m.Bio,
		ImageURL: m.ImageURL, Color: m.Color, Instagram: m.Instagram,
		Twitter: m.Twitter, Spotify: m.Spotify, SoundCloud: m.SoundCloud,
		Featured: m.Featured, OrderIndex: m.OrderIndex,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toDomainRelease(m releaseModel) domain.Release {
	return domain.Release{
		ReleaseID: m.ReleaseID, Title: m.Title, ArtistName: m.ArtistName, ArtistID: m.ArtistID,
		ArtworkURL: m.ArtworkURL, Year: m.Year, Color: m.Color,
		SpotifyURL: m.SpotifyURL, AppleMusicURL: m.AppleMusicURL, SoundCloudURL: m.SoundCloudURL,
		Featured: m.Featured, OrderIndex: m.OrderIndex,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toDomainTheme(m themeSettingsModel) domain.ThemeSettings {
	return domain.ThemeSettings{
		ThemeID: m.ThemeID, PrimaryColor: m.PrimaryColor, SecondaryColor: m.SecondaryColor,
		AccentColor: m.AccentColor, ExtraColor1: m.ExtraColor1, ExtraColor2: m.ExtraColor2,
		BackgroundColor: m.BackgroundColor, BorderColor: m.BorderColor, TextColor: m.TextColor,
		LabelName: m.LabelName, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func toDomainUser(m userModel) domain.User {
	return domain.User{
		UserID: m.UserID, Email: m.Email, PasswordHash: m.PasswordHash,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}
