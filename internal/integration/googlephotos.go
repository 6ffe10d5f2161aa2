package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const photosSearchURL = "https://photoslibrary.googleapis.com/v1/mediaItems:search"

// Photo is one candidate from the external photo library.
type Photo struct {
	ID           string `json:"id"`
	BaseURL      string `json:"baseUrl"`
	Filename     string `json:"filename"`
	Width        string `json:"width"`
	Height       string `json:"height"`
	CreationTime string `json:"creationTime"`
}

// PhotoTokens is the result of the OAuth code exchange. Tokens are cached
// client-side only; the server never persists them.
type PhotoTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// PhotoLibrary is the photo-library adapter: OAuth handshake plus search.
type PhotoLibrary interface {
	AuthURL() string
	Exchange(ctx context.Context, code string) (*PhotoTokens, error)
	Search(ctx context.Context, query, accessToken string) ([]Photo, error)
}

// GooglePhotos implements PhotoLibrary against the Google Photos Library API.
// The search call goes over plain HTTP: google.golang.org/api no longer ships
// a photoslibrary client.
type GooglePhotos struct {
	oauth *oauth2.Config
	http  *http.Client
}

func NewGooglePhotos(clientID, clientSecret, redirectURL string) *GooglePhotos {
	return &GooglePhotos{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/photoslibrary.readonly"},
			Endpoint:     google.Endpoint,
		},
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthURL returns the consent URL opened in the browser popup.
func (g *GooglePhotos) AuthURL() string {
	return g.oauth.AuthCodeURL("state", oauth2.AccessTypeOffline)
}

func (g *GooglePhotos) Exchange(ctx context.Context, code string) (*PhotoTokens, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange auth code: %w", err)
	}
	return &PhotoTokens{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}, nil
}

func (g *GooglePhotos) Search(ctx context.Context, query, accessToken string) ([]Photo, error) {
	body, _ := json.Marshal(map[string]any{
		"pageSize": 20,
		"filters": map[string]any{
			"mediaTypeFilter": map[string]any{"mediaTypes": []string{"PHOTO"}},
			"textFilter":      map[string]any{"query": query},
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, photosSearchURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photos search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photos search: unexpected status %s", res.Status)
	}

	var parsed struct {
		MediaItems []struct {
			ID            string `json:"id"`
			BaseURL       string `json:"baseUrl"`
			Filename      string `json:"filename"`
			MediaMetadata struct {
				Width        string `json:"width"`
				Height       string `json:"height"`
				CreationTime string `json:"creationTime"`
			} `json:"mediaMetadata"`
		} `json:"mediaItems"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode photos response: %w", err)
	}

	photos := make([]Photo, 0, len(parsed.MediaItems))
	for _, item := range parsed.MediaItems {
		photos = append(photos, Photo{
			ID:           item.ID,
			BaseURL:      item.BaseURL,
			Filename:     item.Filename,
			Width:        item.MediaMetadata.Width,
			Height:       item.MediaMetadata.Height,
			CreationTime: item.MediaMetadata.CreationTime,
		})
	}
	return photos, nil
}

var _ PhotoLibrary = (*GooglePhotos)(nil)
