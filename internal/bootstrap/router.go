package bootstrap

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/carelink-app/carelink-backend/config"
	accountshttp "github.com/carelink-app/carelink-backend/internal/accounts/http"
	accountsrepo "github.com/carelink-app/carelink-backend/internal/accounts/repository"
	accountssvc "github.com/carelink-app/carelink-backend/internal/accounts/service"
	httpapi "github.com/carelink-app/carelink-backend/internal/api/http"
	"github.com/carelink-app/carelink-backend/internal/api/http/middleware"
	"github.com/carelink-app/carelink-backend/internal/auth"
	authmw "github.com/carelink-app/carelink-backend/internal/auth/middleware"
	emailchangehttp "github.com/carelink-app/carelink-backend/internal/emailchange/http"
	emailchangerepo "github.com/carelink-app/carelink-backend/internal/emailchange/repository"
	emailchangesvc "github.com/carelink-app/carelink-backend/internal/emailchange/service"
	familyhttp "github.com/carelink-app/carelink-backend/internal/family/http"
	familyrepo "github.com/carelink-app/carelink-backend/internal/family/repository"
	familysvc "github.com/carelink-app/carelink-backend/internal/family/service"
	feedbackhttp "github.com/carelink-app/carelink-backend/internal/feedback/http"
	feedbackrepo "github.com/carelink-app/carelink-backend/internal/feedback/repository"
	guidescache "github.com/carelink-app/carelink-backend/internal/guides/cache"
	guidescms "github.com/carelink-app/carelink-backend/internal/guides/cms"
	guideshttp "github.com/carelink-app/carelink-backend/internal/guides/http"
	guidessvc "github.com/carelink-app/carelink-backend/internal/guides/service"
	"github.com/carelink-app/carelink-backend/internal/identity"
	mediahttp "github.com/carelink-app/carelink-backend/internal/media/http"
	mediasvc "github.com/carelink-app/carelink-backend/internal/media/service"
	mediastorage "github.com/carelink-app/carelink-backend/internal/media/storage"
	notifyhttp "github.com/carelink-app/carelink-backend/internal/notify/http"
	"github.com/carelink-app/carelink-backend/internal/notify/mail"
	"github.com/carelink-app/carelink-backend/internal/notify/push"
	schedulehttp "github.com/carelink-app/carelink-backend/internal/schedule/http"
	schedulerepo "github.com/carelink-app/carelink-backend/internal/schedule/repository"
	schedulesvc "github.com/carelink-app/carelink-backend/internal/schedule/service"
)

// RouterDeps carries the shared clients the feature modules are wired from.
type RouterDeps struct {
	ServiceName string
	Version     string
	Config      *appconfig.Config
	DB          *pgxpool.Pool
	Firebase    *auth.Clients
	Redis       *redis.Client
	S3          mediasvc.S3API
	S3Presigner mediasvc.Presigner
}

// familyOfUser adapts the profile store to the family-lookup surface the
// family and media handlers authorize against.
type familyOfUser struct {
	users *accountsrepo.UserRepository
}

func (f familyOfUser) FamilyIDForUser(ctx context.Context, userID string) (string, error) {
	user, err := f.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.FamilyID, nil
}

// BuildRouter wires every feature module onto one gin engine.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.Config.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB).RegisterRoutes(r)

	// Credential endpoints get a tighter per-IP budget than the rest of the
	// API.
	limiter := middleware.NewRateLimiter(1, 5)
	limited := middleware.RateLimit(limiter)
	authed := authmw.RequireUser(dep.Firebase.Auth)

	admin := identity.NewAdmin(dep.Firebase.Auth)
	verifier := auth.NewPasswordClient(dep.Config.Firebase.WebAPIKey)

	users := accountsrepo.NewUserRepository(dep.DB)
	profileCache := accountsrepo.NewProfileCache(dep.Firebase.Firestore)

	families := familysvc.NewFamilyService(familyrepo.NewLinkRepository(dep.DB))
	lookup := familyOfUser{users: users}

	accounts := accountssvc.NewAccountService(admin, verifier, families, users, profileCache)

	mailer := mail.NewClient(dep.Config.Mail.BaseURL, dep.Config.Mail.APIKey, dep.Config.Mail.From)
	emailChange := emailchangesvc.NewEmailChangeService(
		admin, users, profileCache, mailer, emailchangerepo.NewRequestRepository(dep.DB))

	guideMatcher := guidessvc.NewGuideService(
		users,
		guidescms.NewClient(dep.Config.CMS.BaseURL, dep.Config.CMS.Token),
		guidescache.NewRelationCache(dep.Redis),
	)

	avatars := mediasvc.NewAvatarService(
		mediastorage.NewFirebaseBucket(dep.Firebase.Bucket), users, profileCache)
	familyMedia := mediasvc.NewFamilyMediaService(dep.S3, dep.S3Presigner, dep.Config.Storage.Bucket)

	schedule := schedulesvc.NewScheduleService(
		schedulerepo.NewAppointmentRepository(dep.DB),
		schedulerepo.NewLogRepository(dep.DB),
	)

	api := r.Group("/api")
	accountshttp.New(accounts).Routes(api, limited, authed)
	emailchangehttp.New(emailChange).Routes(api)
	familyhttp.New(families, lookup).Routes(api)
	guideshttp.New(guideMatcher).Routes(api)
	feedbackhttp.New(feedbackrepo.NewFeedbackRepository(dep.DB)).Routes(api)
	schedulehttp.New(schedule).Routes(api, authed)
	mediahttp.New(avatars, familyMedia, lookup).Routes(api, authed)
	notifyhttp.New(push.NewRepository(dep.Firebase.Firestore)).Routes(api, authed)

	return r
}
