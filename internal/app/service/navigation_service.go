package service

import (
	"slices"

	"yieldhop/internal/domain/entity"
)

// Route keys of the navigation surface.
const (
	RouteLanding   = "landing"
	RouteStaking   = "staking"
	RoutePortfolio = "portfolio"
)

// NavigationService serves the static screens list and landing content.
type NavigationService struct {
	routes  []entity.NavRoute
	landing entity.LandingContent
}

// NewNavigationService creates the navigation surface with its three screens.
func NewNavigationService() *NavigationService {
	return &NavigationService{
		routes: []entity.NavRoute{
			{Key: RouteLanding, Title: "Home", Path: "/"},
			{Key: RouteStaking, Title: "Stake", Path: "/stake"},
			{Key: RoutePortfolio, Title: "Portfolio", Path: "/portfolio"},
		},
		landing: entity.LandingContent{
			Tagline:  "The journey to smarter finance starts here",
			Headline: []string{"Earn", "across", "chains", "with", "YieldHop"},
			Highlight: entity.Highlight{
				Title: "Chainlink CCIP Automation",
				Body:  "Chainlink CCIP and Automation enable secure, automated cross-chain yield transfers and smart contract execution.",
			},
			Timeline: []entity.TimelineItem{
				{ID: 1, Title: "Planning", Date: "Jan 2024", Content: "Project planning and requirements gathering phase.", Category: "Planning", RelatedIDs: []int{2}, Status: "completed", Energy: 100},
				{ID: 2, Title: "Design", Date: "Feb 2024", Content: "UI/UX design and system architecture.", Category: "Design", RelatedIDs: []int{1, 3}, Status: "completed", Energy: 90},
				{ID: 3, Title: "Development", Date: "Mar 2024", Content: "Core features implementation and testing.", Category: "Development", RelatedIDs: []int{2, 4}, Status: "in-progress", Energy: 60},
				{ID: 4, Title: "Testing", Date: "Apr 2024", Content: "User testing and bug fixes.", Category: "Testing", RelatedIDs: []int{3, 5}, Status: "pending", Energy: 30},
				{ID: 5, Title: "Release", Date: "May 2024", Content: "Final deployment and release.", Category: "Release", RelatedIDs: []int{4}, Status: "pending", Energy: 10},
			},
		},
	}
}

// Routes returns the screens in display order.
func (s *NavigationService) Routes() []entity.NavRoute {
	return slices.Clone(s.routes)
}

// Route looks a screen up by key.
func (s *NavigationService) Route(key string) (entity.NavRoute, bool) {
	for _, r := range s.routes {
		if r.Key == key {
			return r, true
		}
	}
	return entity.NavRoute{}, false
}

// Landing returns the landing screen content.
func (s *NavigationService) Landing() entity.LandingContent {
	c := s.landing
	c.Headline = slices.Clone(s.landing.Headline)
	c.Timeline = make([]entity.TimelineItem, len(s.landing.Timeline))
	for i, item := range s.landing.Timeline {
		item.RelatedIDs = slices.Clone(item.RelatedIDs)
		c.Timeline[i] = item
	}
	return c
}
