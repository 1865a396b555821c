package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/api/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

const discordProfileURL = "https://discord.com/api/users/@me"

// Discord handles the OAuth code exchange and profile lookup against the
// Discord API.
type Discord struct {
	oauth      *oauth2.Config
	profileURL string
	client     *http.Client
}

func NewDiscord(clientID, clientSecret, redirectURL string) *Discord {
	return &Discord{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"identify", "email"},
			Endpoint:     discordEndpoint,
		},
		profileURL: discordProfileURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL builds the authorize redirect carrying the state nonce.
func (d *Discord) AuthURL(state string) string {
	return d.oauth.AuthCodeURL(state)
}

type Profile struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
}

// DisplayName prefers the account's global display name over the username.
func (p Profile) DisplayName() string {
	if p.GlobalName != "" {
		return p.GlobalName
	}
	return p.Username
}

// Exchange trades the authorization code for an access token and resolves the
// caller's Discord profile.
func (d *Discord) Exchange(ctx context.Context, code string) (*Profile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, d.client)
	tok, err := d.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("discord token exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.profileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discord profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord profile: status %d", resp.StatusCode)
	}

	var prof Profile
	if err := json.NewDecoder(resp.Body).Decode(&prof); err != nil {
		return nil, fmt.Errorf("discord profile: %w", err)
	}
	if prof.ID == "" {
		return nil, fmt.Errorf("discord profile: empty user id")
	}
	return &prof, nil
}
