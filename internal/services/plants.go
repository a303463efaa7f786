package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries a per-request uuid for correlating client and backend logs.
const RequestIDHeader = "X-Request-ID"

// PlantServiceOpts configures a [PlantService].
type PlantServiceOpts struct {
	BaseURL string
	// Tokens supplies the bearer credential for authenticated endpoints.
	Tokens oauth2.TokenSource
	// HTTPClient is the base client. Its Transport is wrapped for authenticated calls.
	HTTPClient *http.Client
	Timeout    time.Duration
	// RequestsPerSecond enables a client-side rate limit when positive.
	RequestsPerSecond float64
	Logger            *log.Logger
}

// PlantService implements [PlantAPI] over HTTP.
type PlantService struct {
	baseURL string
	public  *http.Client
	authed  *http.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewPlantService builds a client with a public and an authenticated [http.Client].
func NewPlantService(opts PlantServiceOpts) *PlantService {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	public := opts.HTTPClient
	if public == nil {
		public = &http.Client{Timeout: opts.Timeout}
	}

	authed := &http.Client{
		Timeout:   public.Timeout,
		Transport: &oauth2.Transport{Source: opts.Tokens, Base: public.Transport},
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := max(int(opts.RequestsPerSecond), 1)
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &PlantService{
		baseURL: strings.TrimRight(baseURL, "/"),
		public:  public,
		authed:  authed,
		limiter: limiter,
		logger:  logger,
	}
}

// Raw returns an [APIService] that shares the authenticated client.
func (s *PlantService) Raw() *APIService {
	return NewAPIService(s.baseURL, s.authed)
}

// BaseURL returns the normalized base URL.
func (s *PlantService) BaseURL() string {
	return s.baseURL
}

func (s *PlantService) Register(ctx context.Context, creds models.Credentials) (string, error) {
	var tok models.TokenResponse
	if err := s.do(ctx, s.public, http.MethodPost, "/register", creds, &tok); err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

func (s *PlantService) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}

	var tok models.TokenResponse
	if err := s.do(ctx, s.public, http.MethodPost, "/login", body, &tok); err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// Me resolves the identity for an explicit token rather than the session's current one, since
// verification runs against a candidate credential.
func (s *PlantService) Me(ctx context.Context, token string) (*models.Identity, error) {
	var identity models.Identity
	bearer := func(req *http.Request) {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}
	if err := s.do(ctx, s.public, http.MethodGet, "/me", nil, &identity, bearer); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *PlantService) Feed(ctx context.Context) ([]models.Plant, error) {
	var plants []models.Plant
	if err := s.do(ctx, s.authed, http.MethodGet, "/plants", nil, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

func (s *PlantService) Like(ctx context.Context, plantID models.ID) error {
	return s.do(ctx, s.authed, http.MethodPost, plantPath(plantID, "like"), nil, nil)
}

func (s *PlantService) Unlike(ctx context.Context, plantID models.ID) error {
	return s.do(ctx, s.authed, http.MethodDelete, plantPath(plantID, "like"), nil, nil)
}

func (s *PlantService) CreatePlant(ctx context.Context, plant models.NewPlant) (*models.Plant, error) {
	var created models.Plant
	if err := s.do(ctx, s.authed, http.MethodPost, "/plants", plant, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *PlantService) MyPlants(ctx context.Context) ([]models.Plant, error) {
	var plants []models.Plant
	if err := s.do(ctx, s.authed, http.MethodGet, "/plants/my", nil, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

func (s *PlantService) Likers(ctx context.Context, plantID models.ID) ([]models.Liker, error) {
	var summary models.LikesSummary
	if err := s.do(ctx, s.authed, http.MethodGet, plantPath(plantID, "likes"), nil, &summary); err != nil {
		return nil, err
	}
	return summary.LikedBy, nil
}

func (s *PlantService) SampleImages(ctx context.Context) ([]string, error) {
	var payload struct {
		Images []string `json:"images"`
	}
	if err := s.do(ctx, s.public, http.MethodGet, "/sample-images", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Images, nil
}

func plantPath(id models.ID, action string) string {
	return "/plants/" + url.PathEscape(id.String()) + "/" + action
}

// do sends a JSON request and decodes a 2xx body into result when result is non-nil.
func (s *PlantService) do(ctx context.Context, client *http.Client, method, path string, body, result any, opts ...func(*http.Request)) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", shared.ErrTimeout, err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := shared.GenerateID()
	req.Header.Set(RequestIDHeader, requestID)
	for _, opt := range opts {
		opt(req)
	}

	s.logger.Debug("sending request", "method", method, "path", path, "request_id", requestID)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, raw)
		s.logger.Debug("request rejected", "path", path, "status", resp.StatusCode, "request_id", requestID)
		return apiErr
	}

	if result == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
