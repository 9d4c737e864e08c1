package handler

import (
	"time"

	"github.com/galaxyhq/galaxy/internal/model"
)

// Response DTOs. Models carry db tags only; the wire shape is defined here so
// schema changes never leak into the API by accident.

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func userResponseFrom(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

type categoryResponse struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func categoryResponseFrom(c *model.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Slug: c.Slug, Name: c.Name}
}

type exifResponse struct {
	Make         *string    `json:"make,omitempty"`
	Model        *string    `json:"model,omitempty"`
	LensModel    *string    `json:"lensModel,omitempty"`
	FNumber      *float64   `json:"fNumber,omitempty"`
	ExposureTime *string    `json:"exposureTime,omitempty"`
	Iso          *int       `json:"iso,omitempty"`
	FocalLength  *float64   `json:"focalLength,omitempty"`
	TakenAt      *time.Time `json:"takenAt,omitempty"`
}

type photoResponse struct {
	ID           string       `json:"id"`
	AuthorID     string       `json:"authorId"`
	CategorySlug string       `json:"categorySlug,omitempty"`
	CategoryName string       `json:"categoryName,omitempty"`
	Caption      *string      `json:"caption"`
	Visibility   string       `json:"visibility"`
	AssetURL     string       `json:"assetUrl"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	Format       string       `json:"format"`
	Exif         exifResponse `json:"exif"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func photoResponseFrom(p *model.Photo) photoResponse {
	return photoResponse{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		CategorySlug: p.CategorySlug,
		CategoryName: p.CategoryName,
		Caption:      p.Caption,
		Visibility:   p.Visibility,
		AssetURL:     p.AssetURL,
		Width:        p.Width,
		Height:       p.Height,
		Format:       p.Format,
		Exif: exifResponse{
			Make:         p.ExifMake,
			Model:        p.ExifModel,
			LensModel:    p.ExifLensModel,
			FNumber:      p.ExifFNumber,
			ExposureTime: p.ExifExposureTime,
			Iso:          p.ExifIso,
			FocalLength:  p.ExifFocalLength,
			TakenAt:      p.ExifTakenAt,
		},
		CreatedAt: p.CreatedAt,
	}
}

func photoResponsesFrom(photos []*model.Photo) []photoResponse {
	out := make([]photoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, photoResponseFrom(p))
	}
	return out
}

type commentAuthorResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

type commentResponse struct {
	ID        string                `json:"id"`
	PhotoID   string                `json:"photoId"`
	Body      string                `json:"body"`
	Author    commentAuthorResponse `json:"author"`
	CreatedAt time.Time             `json:"createdAt"`
}

func commentResponseFrom(c *model.Comment) commentResponse {
	return commentResponse{
		ID:      c.ID,
		PhotoID: c.PhotoID,
		Body:    c.Body,
		Author: commentAuthorResponse{
			ID:        c.AuthorID,
			Username:  c.AuthorUsername,
			Name:      c.AuthorName,
			AvatarURL: c.AuthorAvatar,
		},
		CreatedAt: c.CreatedAt,
	}
}

func commentResponsesFrom(comments []*model.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentResponseFrom(c))
	}
	return out
}
