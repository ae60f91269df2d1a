package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bobatcal/internal/app/bobatcal/entity"
)

// ShopRepositoryTestSuite тестовый suite для PostgreSQL repository
type ShopRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  ShopRepository
	sqlDB *sql.DB
}

func TestShopRepositorySuite(t *testing.T) {
	suite.Run(t, new(ShopRepositoryTestSuite))
}

func (s *ShopRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewShopRepository(s.db)
}

func (s *ShopRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== Create Tests =====================

func (s *ShopRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()
	city := "Portland"
	shop := &entity.Shop{
		ID:        uuid.New(),
		Name:      "Boba Bliss",
		Address:   "1 Tea St",
		City:      &city,
		CreatedAt: time.Now(),
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "shops"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Create(ctx, shop)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ShopRepositoryTestSuite) TestCreate_DuplicatePlaceID() {
	ctx := context.Background()
	placeID := "place-1"
	shop := &entity.Shop{
		ID:      uuid.New(),
		Name:    "Twin",
		Address: "3 Tea St",
		PlaceID: &placeID,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "shops"`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Create(ctx, shop)

	// Assert
	s.ErrorIs(err, ErrDuplicatePlace)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ShopRepositoryTestSuite) TestCreate_DBError() {
	ctx := context.Background()
	shop := &entity.Shop{ID: uuid.New(), Name: "Broken", Address: "0 Tea St"}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "shops"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Create(ctx, shop)

	// Assert
	s.Error(err)
	s.NotErrorIs(err, ErrDuplicatePlace)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByID Tests =====================

func (s *ShopRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()
	shopID := uuid.New()
	createdAt := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "address", "city", "zip_code", "phone", "hours", "place_id", "created_at"}).
		AddRow(shopID, "Boba Bliss", "1 Tea St", "Portland", nil, nil, nil, nil, createdAt)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shops" WHERE id = $1`)).
		WithArgs(shopID, 1).
		WillReturnRows(rows)

	// Act
	shop, err := s.repo.GetByID(ctx, shopID)

	// Assert
	s.NoError(err)
	s.NotNil(shop)
	s.Equal(shopID, shop.ID)
	s.Equal("Boba Bliss", shop.Name)
	s.NotNil(shop.City)
	s.Equal("Portland", *shop.City)
	s.Nil(shop.ZipCode)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ShopRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()
	shopID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shops" WHERE id = $1`)).
		WithArgs(shopID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	shop, err := s.repo.GetByID(ctx, shopID)

	// Assert
	s.ErrorIs(err, ErrShopNotFound)
	s.Nil(shop)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetAll Tests =====================

func (s *ShopRepositoryTestSuite) TestGetAll_SortedByName() {
	ctx := context.Background()
	createdAt := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "address", "city", "zip_code", "phone", "hours", "place_id", "created_at"}).
		AddRow(uuid.New(), "Alpha", "1 Tea St", nil, nil, nil, nil, nil, createdAt).
		AddRow(uuid.New(), "Beta", "2 Tea St", nil, nil, nil, nil, nil, createdAt)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shops" ORDER BY name ASC`)).
		WillReturnRows(rows)

	// Act
	shops, err := s.repo.GetAll(ctx)

	// Assert
	s.NoError(err)
	s.Len(shops, 2)
	s.Equal("Alpha", shops[0].Name)
	s.Equal("Beta", shops[1].Name)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ShopRepositoryTestSuite) TestGetAll_Empty() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "address", "city", "zip_code", "phone", "hours", "place_id", "created_at"})

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shops" ORDER BY name ASC`)).
		WillReturnRows(rows)

	// Act
	shops, err := s.repo.GetAll(ctx)

	// Assert
	s.NoError(err)
	s.Empty(shops)

	s.NoError(s.mock.ExpectationsWereMet())
}
