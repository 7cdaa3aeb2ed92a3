package migrate_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing/fstest"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fractal.app/api/core/migrate"
)

var _ = Describe("Manager", func() {
	var (
		ctx   context.Context
		db    *sql.DB
		mock  sqlmock.Sqlmock
		files fstest.MapFS
		mgr   *migrate.Manager
		now   time.Time
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, mock, err = sqlmock.New()
		Expect(err).NotTo(HaveOccurred())

		now = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		files = fstest.MapFS{
			"0001_init.up.sql":     {Data: []byte("-- users\nCREATE TABLE users (id BIGINT);\nCREATE INDEX idx ON users (id);")},
			"0001_init.down.sql":   {Data: []byte("DROP TABLE users;")},
			"0002_extra.up.sql":    {Data: []byte("INSERT INTO users VALUES (1); -- seed 'a;b'")},
			"0002_extra.down.sql":  {Data: []byte("DELETE FROM users WHERE name = 'x;y';")},
			"migrations.go":        {Data: []byte("package migrations")},
		}
		mgr = migrate.NewManager(db, files, migrate.WithClock(func() time.Time { return now }))
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
		db.Close()
	})

	expectEnsure := func() {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	It("applies only pending migrations in order", func() {
		expectEnsure()
		mock.ExpectQuery("SELECT name FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("0001_init.up.sql"))

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users VALUES (1)")).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs("0002_extra.up.sql", now).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		ran, err := mgr.Up(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(ran).To(Equal([]string{"0002_extra.up.sql"}))
	})

	It("rolls back a failing migration and reports it", func() {
		expectEnsure()
		mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(sqlmock.NewRows([]string{"name"}))

		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE users").WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		ran, err := mgr.Up(ctx)
		Expect(err).To(MatchError(ContainSubstring("0001_init.up.sql")))
		Expect(ran).To(BeEmpty())
	})

	It("rolls back the most recent migration with its down file", func() {
		expectEnsure()
		mock.ExpectQuery("SELECT name FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("0001_init.up.sql").AddRow("0002_extra.up.sql"))

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE name = 'x;y'")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs("0002_extra.up.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		name, err := mgr.Down(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("0002_extra.up.sql"))
	})

	It("refuses to roll back when nothing is applied", func() {
		expectEnsure()
		mock.ExpectQuery("SELECT name FROM schema_migrations").WillReturnRows(sqlmock.NewRows([]string{"name"}))

		_, err := mgr.Down(ctx)
		Expect(err).To(MatchError(migrate.ErrNothingToRollback))
	})

	It("reports applied migrations", func() {
		expectEnsure()
		mock.ExpectQuery("SELECT name FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("0001_init.up.sql"))

		names, err := mgr.Status(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"0001_init.up.sql"}))
	})
})
