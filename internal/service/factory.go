package service

import (
	"time"

	"golang.org/x/oauth2"

	"github.com/Adv-2005/DocuGenAI/internal/flow"
	"github.com/Adv-2005/DocuGenAI/internal/store"
)

type Deps struct {
	Stores           *store.Stores
	Sessions         store.SessionStore
	TxRunner         TxRunner
	Identity         IdentityProvider
	Hosts            HostResolver
	GitHubOAuth      *oauth2.Config
	Orchestrator     *flow.Orchestrator
	Registry         *flow.Registry
	SessionTTL       time.Duration
	BatchConcurrency int
}

type Services struct {
	auth          AuthService
	connections   ConnectionService
	documentation DocumentationService
}

func NewServices(d Deps) *Services {
	return &Services{
		auth: NewAuthService(d.Identity, d.Stores.Users(), d.Sessions, d.SessionTTL),
		connections: NewConnectionService(
			d.Stores.RepositoryConnections(),
			d.TxRunner,
			d.Hosts,
			d.GitHubOAuth,
		),
		documentation: NewDocumentationService(
			d.Orchestrator,
			d.Registry,
			d.Hosts,
			d.Stores.RepositoryConnections(),
			d.Stores.DocumentationDrafts(),
			d.BatchConcurrency,
		),
	}
}

func (s *Services) Auth() AuthService {
	return s.auth
}

func (s *Services) Connections() ConnectionService {
	return s.connections
}

func (s *Services) Documentation() DocumentationService {
	return s.documentation
}
