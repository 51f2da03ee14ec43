package hotpepper_client

import (
	"context"
	"fmt"
	"net/url"
)

type Genre struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Catch string `json:"catch,omitempty"`
}

type Budget struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (c *HotPepperClient) GetGenres(ctx context.Context) ([]Genre, error) {
	body, err := c.Get(ctx, c.endpoint(GenreEndpoint, url.Values{}))
	if err != nil {
		return nil, fmt.Errorf("failed to get genres: %w", err)
	}
	res, err := decode[struct {
		Genre []Genre `json:"genre"`
	}](body)
	if err != nil {
		return nil, err
	}
	return res.Genre, nil
}

func (c *HotPepperClient) GetBudgets(ctx context.Context) ([]Budget, error) {
	body, err := c.Get(ctx, c.endpoint(BudgetEndpoint, url.Values{}))
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}
	res, err := decode[struct {
		Budget []Budget `json:"budget"`
	}](body)
	if err != nil {
		return nil, err
	}
	return res.Budget, nil
}
