package api

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/auraleaf/aura-api/internal/api/handler"
	customMiddleware "github.com/auraleaf/aura-api/internal/api/middleware"
	"github.com/auraleaf/aura-api/internal/companion"
	"github.com/auraleaf/aura-api/internal/config"
	"github.com/auraleaf/aura-api/internal/lexicon"
	"github.com/auraleaf/aura-api/internal/repository/postgres"
	"github.com/auraleaf/aura-api/internal/repository/redis"
	"github.com/auraleaf/aura-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router. redisClient may be nil,
// in which case rate limiting and the feed cache are disabled.
func NewRouter(
	cfg *config.Config,
	db *postgres.DB,
	redisClient *redis.Client,
	lex *lexicon.Lexicon,
	sched service.Scheduler,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-Name", "X-User-Email"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(customMiddleware.Identity)

	// Initialize repositories
	convRepo := postgres.NewConversationRepository(db.Pool)
	messageRepo := postgres.NewMessageRepository(db.Pool)
	reactionRepo := postgres.NewReactionRepository(db.Pool)
	postRepo := postgres.NewPostRepository(db.Pool)
	commentRepo := postgres.NewCommentRepository(db.Pool)
	postReactionRepo := postgres.NewPostReactionRepository(db.Pool)

	// Initialize the response generator
	gen := companion.NewGenerator(lex, companion.Config{
		PersonalizationProbability: cfg.Companion.PersonalizationProbability,
		FollowupProbability:        cfg.Companion.FollowupProbability,
	}, rand.NewSource(time.Now().UnixNano()))

	// Initialize services
	companionService := service.NewCompanionService(
		convRepo,
		messageRepo,
		reactionRepo,
		gen,
		sched,
		service.CompanionOptions{
			MaxMessageLength: cfg.Companion.MaxMessageLength,
			ReplyDelay:       cfg.Companion.ReplyDelay,
			ReplyJitter:      cfg.Companion.ReplyJitter,
			FollowupDelay:    cfg.Companion.FollowupDelay,
			ReplyTimeout:     cfg.Companion.ReplyTimeout,
		},
	)

	var feedCache service.FeedCache
	if redisClient != nil && cfg.Feed.CacheEnabled {
		feedCache = redis.NewFeedCache(redisClient)
	}
	feedService := service.NewFeedService(postRepo, commentRepo, postReactionRepo, feedCache)

	// Initialize handlers
	companionHandler := handler.NewCompanionHandler(companionService)
	feedHandler := handler.NewFeedHandler(feedService)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		r.Group(func(r chi.Router) {
			if redisClient != nil {
				rateLimiter := redis.NewRateLimiter(
					redisClient,
					cfg.Security.RateLimit.RequestsPerMinute,
					cfg.Security.RateLimit.Burst,
				)
				r.Use(customMiddleware.NewRateLimitMiddleware(rateLimiter).Limit)
			}

			// Companion routes
			r.Route("/companion", func(r chi.Router) {
				r.Post("/conversations", companionHandler.StartConversation)
				r.Get("/conversations/current", companionHandler.CurrentConversation)

				r.Get("/messages", companionHandler.GetMessages)
				r.Post("/messages", companionHandler.SubmitMessage)
				r.Post("/messages/{messageID}/reactions", companionHandler.ToggleReaction)

				r.Post("/resources", companionHandler.PostResources)
			})

			// Feed routes
			r.Route("/posts", func(r chi.Router) {
				r.Get("/", feedHandler.ListPosts)
				r.Post("/", feedHandler.CreatePost)

				r.Route("/{postID}", func(r chi.Router) {
					r.Get("/comments", feedHandler.ListComments)
					r.Post("/comments", feedHandler.AddComment)
					r.Post("/heart", feedHandler.Heart)
					r.Post("/reactions", feedHandler.ToggleReaction)
				})
			})
		})
	})

	return r
}
