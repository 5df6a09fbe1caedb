package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/synergy-india/admin-api/internal/config"
	"github.com/synergy-india/admin-api/internal/database"
	"github.com/synergy-india/admin-api/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Set bundles one repository per entity, all backed by the same database.
type Set struct {
	AdminUsers   Repository[models.AdminUser]
	LoginHistory Repository[models.LoginHistory]
	Services     Repository[models.Service]
	Gallery      Repository[models.GalleryImage]
	Leads        Repository[models.Lead]
	ContactForm  Repository[models.ContactFormSettings]
	CTA          Repository[models.CTASettings]
	General      Repository[models.GeneralSettings]
	AccessLogs   Repository[models.AccessLog]

	closer func(ctx context.Context) error
}

// Open connects to the backend named by cfg.DBBackend.
func Open(ctx context.Context, logger *logrus.Logger, cfg *config.Config) (*Set, error) {
	switch cfg.DBBackend {
	case config.BackendMongo:
		client, db, err := database.NewMongoDB(ctx, logger, cfg.MongoURL, cfg.DBName)
		if err != nil {
			return nil, err
		}
		return NewMongoSet(client, db), nil
	case config.BackendPostgres:
		db, err := database.NewPostgresDB(logger, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		return NewGormSet(db), nil
	case config.BackendSQLite:
		db, err := database.NewSQLiteDB(logger, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return NewGormSet(db), nil
	case config.BackendMemory:
		logger.WithField("component", "database").Warn("Using in-memory backend, data is lost on exit")
		return NewMemorySet(), nil
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.DBBackend)
	}
}

func NewGormSet(db *gorm.DB) *Set {
	return &Set{
		AdminUsers:   NewGormRepository[models.AdminUser](db),
		LoginHistory: NewGormRepository[models.LoginHistory](db),
		Services:     NewGormRepository[models.Service](db),
		Gallery:      NewGormRepository[models.GalleryImage](db),
		Leads:        NewGormRepository[models.Lead](db),
		ContactForm:  NewGormRepository[models.ContactFormSettings](db),
		CTA:          NewGormRepository[models.CTASettings](db),
		General:      NewGormRepository[models.GeneralSettings](db),
		AccessLogs:   NewGormRepository[models.AccessLog](db),
		closer: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func NewMongoSet(client *mongo.Client, db *mongo.Database) *Set {
	return &Set{
		AdminUsers:   NewMongoRepository[models.AdminUser](db),
		LoginHistory: NewMongoRepository[models.LoginHistory](db),
		Services:     NewMongoRepository[models.Service](db),
		Gallery:      NewMongoRepository[models.GalleryImage](db),
		Leads:        NewMongoRepository[models.Lead](db),
		ContactForm:  NewMongoRepository[models.ContactFormSettings](db),
		CTA:          NewMongoRepository[models.CTASettings](db),
		General:      NewMongoRepository[models.GeneralSettings](db),
		AccessLogs:   NewMongoRepository[models.AccessLog](db),
		closer:       client.Disconnect,
	}
}

func NewMemorySet() *Set {
	return &Set{
		AdminUsers:   NewMemoryRepository[models.AdminUser]("username"),
		LoginHistory: NewMemoryRepository[models.LoginHistory](),
		Services:     NewMemoryRepository[models.Service](),
		Gallery:      NewMemoryRepository[models.GalleryImage](),
		Leads:        NewMemoryRepository[models.Lead](),
		ContactForm:  NewMemoryRepository[models.ContactFormSettings](),
		CTA:          NewMemoryRepository[models.CTASettings](),
		General:      NewMemoryRepository[models.GeneralSettings](),
		AccessLogs:   NewMemoryRepository[models.AccessLog](),
	}
}

func (s *Set) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}
