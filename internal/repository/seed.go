package repository

import "github.com/spec-kit/movie-browser/internal/domain"

// DefaultAvatarURL is used by every seeded profile.
const DefaultAvatarURL = "/default-avatar.jpg"

// SeedUsers returns the demo accounts, all sharing one password hash.
func SeedUsers(passwordHash string) []domain.User {
	return []domain.User{
		{ID: "user1", Email: "user@example.com", PasswordHash: passwordHash},
		{ID: "user2", Email: "user2@example.com", PasswordHash: passwordHash},
	}
}

// SeedProfiles returns the demo viewing profiles.
func SeedProfiles() []domain.Profile {
	return []domain.Profile{
		{ID: "p1", UserID: "user1", Name: "A", AvatarURL: DefaultAvatarURL},
		{ID: "p2", UserID: "user1", Name: "B", AvatarURL: DefaultAvatarURL},
		{ID: "p3", UserID: "user1", Name: "C", AvatarURL: DefaultAvatarURL},
		{ID: "p4", UserID: "user2", Name: "D", AvatarURL: DefaultAvatarURL},
		{ID: "p5", UserID: "user2", Name: "F", AvatarURL: DefaultAvatarURL},
		{ID: "p6", UserID: "user2", Name: "G", AvatarURL: DefaultAvatarURL},
		{ID: "p7", UserID: "user2", Name: "H", AvatarURL: DefaultAvatarURL},
	}
}
