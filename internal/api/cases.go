package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/casedesk/cli/internal/models"
	"github.com/casedesk/cli/internal/utils"
)

// ListCases returns every case visible to the session
func (c *Client) ListCases(ctx context.Context, token string) ([]models.Case, error) {
	var cases []models.Case
	if err := c.getJSON(ctx, "/api/cases", token, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// GetCase returns a single case
func (c *Client) GetCase(ctx context.Context, token string, id int) (*models.Case, error) {
	var cs models.Case
	if err := c.getJSON(ctx, fmt.Sprintf("/api/cases/%d", id), token, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// ListHearings returns scheduled hearings
func (c *Client) ListHearings(ctx context.Context, token string) ([]models.Hearing, error) {
	var hearings []models.Hearing
	if err := c.getJSON(ctx, "/api/hearings", token, &hearings); err != nil {
		return nil, err
	}
	return hearings, nil
}

func (c *Client) getJSON(ctx context.Context, path, token string, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return utils.ErrUnauthorized
	}
	if !resp.ok() {
		return utils.NewAPIError(resp.StatusCode, errorMessage(resp.Body, http.StatusText(resp.StatusCode)))
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
