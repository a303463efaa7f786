package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/plantx/internal/services"
	"github.com/desertthunder/plantx/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the backend
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	return r.apiCall(ctx, cmd, http.MethodGet, nil)
}

// APIPost makes a direct POST request to the backend
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	var body []byte
	if data := cmd.String("data"); data != "" {
		var jsonTest any
		if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
			return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
		}
		body = []byte(data)
	}
	return r.apiCall(ctx, cmd, http.MethodPost, body)
}

// APIDelete makes a direct DELETE request to the backend
func (r *Runner) APIDelete(ctx context.Context, cmd *cli.Command) error {
	return r.apiCall(ctx, cmd, http.MethodDelete, nil)
}

// apiCall sends the request with the session's bearer when logged in, and prints the response body.
func (r *Runner) apiCall(ctx context.Context, cmd *cli.Command, method string, body []byte) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	if err := r.connect(ctx); err != nil {
		return err
	}

	api := services.NewAPIService(r.plants.BaseURL(), r.httpClient)
	if r.session.Authenticated() {
		api = r.plants.Raw()
	}

	r.logger.Info(method+" request", "path", path, "authenticated", r.session.Authenticated())

	resp, err := api.Do(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, cmd.Bool("pretty"))
	}

	if len(resp.Body) > 0 {
		return r.writePlain("%s\n", resp.Body)
	}
	return r.writePlain("✓ %d\n", resp.StatusCode)
}
