package cmd

import (
	"fmt"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/projects"
	"github.com/Zachkp/portfolio/internal/skills"
)

// pageState is everything a front end needs to render the page.
type pageState struct {
	portfolio *content.Portfolio
	skills    *skills.View
	catalog   *projects.Catalog
}

func loadPageState(cfg *config.Config) (*pageState, error) {
	portfolio, err := content.Load(cfg.Content.Path)
	if err != nil {
		return nil, err
	}

	store, err := skills.NewStore(portfolio.Skills)
	if err != nil {
		return nil, fmt.Errorf("seed skills: %w", err)
	}

	list, err := portfolio.ProjectList()
	if err != nil {
		return nil, err
	}

	return &pageState{
		portfolio: portfolio,
		skills:    skills.NewView(store),
		catalog:   projects.NewCatalog(list),
	}, nil
}
