package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/khunglong92/dogiadung-sub001/config"
	"github.com/khunglong92/dogiadung-sub001/internal/adapters/oidc"
	"github.com/khunglong92/dogiadung-sub001/internal/adapters/redis"
	"github.com/khunglong92/dogiadung-sub001/internal/data"
	domainauth "github.com/khunglong92/dogiadung-sub001/internal/domain/auth"
	"github.com/khunglong92/dogiadung-sub001/internal/ports"
	"github.com/khunglong92/dogiadung-sub001/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Categories *service.CategoryService
	Products   *service.ProductService
	Offerings  *service.OfferingService
	Projects   *service.ProjectService
	Contacts   *service.ContactService
	Users      *service.UserService
	Sinks      *service.WebhookSinkService
	Auth       *service.AuthService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient goredis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	CategoryRepo    *data.CategoryRepo
	ProductRepo     *data.ProductRepo
	ServiceRepo     *data.ServiceRepo
	ProjectRepo     *data.ProjectRepo
	ContactRepo     *data.ContactRepo
	UserRepo        *data.UserRepo
	WebhookSinkRepo *data.WebhookSinkRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		CategoryRepo:    data.NewCategoryRepo(db),
		ProductRepo:     data.NewProductRepo(db),
		ServiceRepo:     data.NewServiceRepo(db),
		ProjectRepo:     data.NewProjectRepo(db),
		ContactRepo:     data.NewContactRepo(db),
		UserRepo:        data.NewUserRepo(db),
		WebhookSinkRepo: data.NewWebhookSinkRepo(db),
	}
}

// NewServices wires repositories and services together.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos := buildRepositories(deps.DB)

	dispatcher := service.NewContactDispatcher(service.ContactDispatcherOptions{
		SinkRepo: repos.WebhookSinkRepo,
		Logger:   logger,
	})

	auth, err := newAuthService(deps.Config, repos, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Categories: service.NewCategoryService(service.CategoryServiceOptions{
			CategoryRepo: repos.CategoryRepo,
		}),
		Products: service.NewProductService(service.ProductServiceOptions{
			ProductRepo:  repos.ProductRepo,
			CategoryRepo: repos.CategoryRepo,
		}),
		Offerings: service.NewOfferingService(service.OfferingServiceOptions{
			ServiceRepo: repos.ServiceRepo,
		}),
		Projects: service.NewProjectService(service.ProjectServiceOptions{
			ProjectRepo: repos.ProjectRepo,
		}),
		Contacts: service.NewContactService(service.ContactServiceOptions{
			ContactRepo: repos.ContactRepo,
			Notifier:    dispatcher,
			Logger:      logger,
		}),
		Users: service.NewUserService(service.UserServiceOptions{
			UserRepo: repos.UserRepo,
		}),
		Sinks: service.NewWebhookSinkService(service.WebhookSinkServiceOptions{
			SinkRepo: repos.WebhookSinkRepo,
		}),
		Auth: auth,
	}, nil
}

// newAuthService builds the auth service, including the OIDC provider when
// the application runs in oauth mode. Provider construction performs a
// discovery fetch, so it can fail at startup.
func newAuthService(
	cfg *config.AppConfig,
	repos *serviceRepositories,
	redisClient goredis.UniversalClient,
) (*service.AuthService, error) {
	issuer := domainauth.NewTokenIssuer(domainauth.TokenIssuerOptions{
		SigningKey: cfg.Auth.Token.SigningKey,
		Issuer:     cfg.Auth.Token.Issuer,
		AccessTTL:  cfg.Auth.Token.AccessTTL,
	})

	var provider ports.AuthProvider
	if cfg.Auth.Mode == config.AuthModeOAuth {
		p, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     cfg.Auth.OAuth.ClientID,
			ClientSecret: cfg.Auth.OAuth.ClientSecret,
			RedirectURL:  cfg.Auth.OAuth.RedirectURL,
			Scope:        cfg.Auth.OAuth.Scope,
			DiscoveryURL: cfg.Auth.OAuth.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("init oidc provider: %w", err)
		}
		provider = p
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Users:      repos.UserRepo,
		Tokens:     issuer,
		Refresh:    redis.NewRefreshTokenStore(redisClient),
		Provider:   provider,
		RefreshTTL: cfg.Auth.Token.RefreshTTL,
	}), nil
}
