package repository

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/mad69sparco-cmd/Reservo/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepo создает репозиторий поверх временной sqlite-базы.
func newTestRepo(t *testing.T) *BookingRepository {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	// Одно соединение, чтобы параллельные транзакции не ловили SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := NewBookingRepository(db)
	require.NoError(t, repo.InitSchema())
	return repo
}

func mustCreate(t *testing.T, repo *BookingRepository, name, date, timeStr string, userID int64) *model.Booking {
	t.Helper()
	created, err := repo.Create(&model.Booking{
		Username: "tester",
		Name:     name,
		Date:     date,
		Time:     timeStr,
		UserID:   userID,
	})
	require.NoError(t, err)
	return created
}

func TestInitSchema_Idempotent(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.InitSchema())
	require.NoError(t, repo.InitSchema())
}

func TestCreate_AssignsMonotonicIDs(t *testing.T) {
	repo := newTestRepo(t)

	first := mustCreate(t, repo, "Алиса", "25.12.2030", "14:30", 42)
	second := mustCreate(t, repo, "Боб", "25.12.2030", "15:00", 42)

	assert.Greater(t, first.ID, 0)
	assert.Greater(t, second.ID, first.ID)
}

func TestCreate_AllowsDuplicateSlots(t *testing.T) {
	repo := newTestRepo(t)

	// Ограничений на вместимость слота нет: одинаковые дата/время/владелец допустимы.
	mustCreate(t, repo, "Алиса", "25.12.2030", "14:30", 42)
	mustCreate(t, repo, "Алиса", "25.12.2030", "14:30", 42)

	bookings, err := repo.ListByOwner(42)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestListByOwner_Empty(t *testing.T) {
	repo := newTestRepo(t)

	bookings, err := repo.ListByOwner(42)
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestListByOwner_SingleMatch(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, "Алиса", "25.12.2030", "14:30", 42)

	bookings, err := repo.ListByOwner(42)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Алиса", bookings[0].Name)
	assert.Equal(t, "25.12.2030", bookings[0].Date)
	assert.Equal(t, "14:30", bookings[0].Time)
	assert.Equal(t, int64(42), bookings[0].UserID)
}

func TestListByOwner_SortedByDateTime(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, "Поздняя", "01.01.2031", "09:00", 42)
	mustCreate(t, repo, "Ранняя", "01.01.2031", "08:00", 42)

	bookings, err := repo.ListByOwner(42)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "08:00", bookings[0].Time)
	assert.Equal(t, "09:00", bookings[1].Time)
}

func TestListByOwner_DoesNotLeakOtherOwners(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, "Алиса", "25.12.2030", "14:30", 42)
	mustCreate(t, repo, "Боб", "25.12.2030", "15:00", 99)

	bookings, err := repo.ListByOwner(42)
	require.NoError(t, err)
	for _, b := range bookings {
		assert.Equal(t, int64(42), b.UserID)
	}
	require.Len(t, bookings, 1)
}

func TestDeleteIfOwned_Success(t *testing.T) {
	repo := newTestRepo(t)
	created := mustCreate(t, repo, "Алиса", "25.12.2030", "14:30", 42)

	deleted, err := repo.DeleteIfOwned(created.ID, 42)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "Алиса", deleted.Name)

	remaining, err := repo.ListByOwner(42)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestDeleteIfOwned_WrongOwner(t *testing.T) {
	repo := newTestRepo(t)
	created := mustCreate(t, repo, "Боб", "25.12.2030", "14:30", 99)

	deleted, err := repo.DeleteIfOwned(created.ID, 42)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	// Чужая запись осталась нетронутой.
	all, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
}

func TestDeleteIfOwned_MissingID(t *testing.T) {
	repo := newTestRepo(t)

	deleted, err := repo.DeleteIfOwned(12345, 42)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestDeleteIfOwned_ConcurrentDoubleDelete(t *testing.T) {
	repo := newTestRepo(t)
	created := mustCreate(t, repo, "Алиса", "25.12.2030", "14:30", 42)

	const attempts = 2
	results := make([]*model.Booking, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.DeleteIfOwned(created.ID, 42)
		}(i)
	}
	wg.Wait()

	successes := 0
	for i := 0; i < attempts; i++ {
		require.NoError(t, errs[i])
		if results[i] != nil {
			successes++
		}
	}
	// Ровно одна из гонящихся отмен должна получить запись.
	assert.Equal(t, 1, successes)
}

func TestPurgeAll(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, "Алиса", "25.12.2030", "14:30", 42)
	mustCreate(t, repo, "Боб", "26.12.2030", "10:00", 99)

	require.NoError(t, repo.PurgeAll())

	all, err := repo.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListAll_SortedByDateTime(t *testing.T) {
	repo := newTestRepo(t)
	mustCreate(t, repo, "Вторая", "02.01.2031", "10:00", 1)
	mustCreate(t, repo, "Первая", "01.01.2031", "12:00", 2)

	all, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "01.01.2031", all[0].Date)
	assert.Equal(t, "02.01.2031", all[1].Date)
}
