package services_test

import (
	"context"
	"io"
	"testing"

	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/services"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeSession struct {
	userID uint
}

func (s *fakeSession) Login(userID uint) error {
	s.userID = userID
	return nil
}

func (s *fakeSession) Logout() error {
	s.userID = 0
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fixture struct {
	gdb   *gorm.DB
	store *repository.GormStore
	auth  *services.AuthService
	posts *services.PostService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := db.Open("sqlite://", nil)
	require.NoError(t, err)
	return fixtureFor(gdb)
}

// newLegacyFixture opens a database whose connection does not enforce
// foreign keys, like an old file created before cascades were declared.
func newLegacyFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))
	return fixtureFor(gdb)
}

func fixtureFor(gdb *gorm.DB) *fixture {
	store := repository.NewGormStore(gdb)
	log := quietLogger()
	return &fixture{
		gdb:   gdb,
		store: store,
		auth:  services.NewAuthService(store, log),
		posts: services.NewPostService(store, log),
	}
}

func (f *fixture) register(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), username, "pw123")
	require.NoError(t, err)
	return user
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.gdb.Model(model).Count(&n).Error)
	return n
}
