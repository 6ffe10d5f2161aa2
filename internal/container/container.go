package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/recipehub/recipehub/config"
	"github.com/recipehub/recipehub/internal/imagestore"
	"github.com/recipehub/recipehub/internal/integration"
	"github.com/recipehub/recipehub/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	images      imagestore.Store

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client

	recipeLookup integration.RecipeLookup
	photoLibrary integration.PhotoLibrary
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetPGPool(p *pgxpool.Pool) { pgPool = p }
func GetPGPool() *pgxpool.Pool  { return pgPool }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetImages(s imagestore.Store) { images = s }
func GetImages() imagestore.Store  { return images }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }

func SetRecipeLookup(l integration.RecipeLookup) { recipeLookup = l }
func GetRecipeLookup() integration.RecipeLookup  { return recipeLookup }

func SetPhotoLibrary(p integration.PhotoLibrary) { photoLibrary = p }
func GetPhotoLibrary() integration.PhotoLibrary  { return photoLibrary }
