package postgres

import (
	"context"
	"testing"
	"time"

	"farmsight-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		u := &domain.User{ID: "u1", Name: "jo", Email: "jo@farm.example", PasswordHash: "hash", Occupation: "farmer"}

		mock.ExpectExec("INSERT INTO users").
			WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.Occupation, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, u)
		assert.NoError(t, err)
		assert.False(t, u.CreatedOn.IsZero())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	columns := []string{"id", "name", "email", "password_hash", "occupation", "created_on"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\)").
			WithArgs("jo@farm.example").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("u1", "jo", "jo@farm.example", "hash", "farmer", time.Now()))

		u, err := repo.GetByEmail(ctx, "jo@farm.example")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\)").
			WithArgs("nobody@farm.example").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByEmail(ctx, "nobody@farm.example")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserRepository_ExistsByEmailOrName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Taken", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("jo@farm.example", "jo").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		taken, err := repo.ExistsByEmailOrName(ctx, "jo@farm.example", "jo")
		require.NoError(t, err)
		assert.True(t, taken)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM users").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
