package port

import "yieldhop/internal/domain/entity"

// NavigationService serves the static screen list and landing content.
type NavigationService interface {
	Routes() []entity.NavRoute
	Route(key string) (entity.NavRoute, bool)
	Landing() entity.LandingContent
}
