package repositoryImp

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"scls/entities"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Grade{}))
	return db
}

func TestLatestNilWhenUngraded(t *testing.T) {
	repo := New(testDB(t))

	g, err := repo.Latest("alice@whu.edu", 0, "Ch.3")

	require.NoError(t, err, "no grade yet is not an error")
	assert.Nil(t, g)
}

func TestLatestPicksNewestRegrade(t *testing.T) {
	repo := New(testDB(t))
	base := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(&entities.Grade{Email: "alice@whu.edu", QuestionIdx: 0, Grade: "Redo Part B", Section: "Ch.3", GradedAt: base}))
	require.NoError(t, repo.Save(&entities.Grade{Email: "alice@whu.edu", QuestionIdx: 0, Grade: "Well done", Section: "Ch.3", GradedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, repo.Save(&entities.Grade{Email: "alice@whu.edu", QuestionIdx: 1, Grade: "Other question", Section: "Ch.3", GradedAt: base.Add(3 * time.Hour)}))

	g, err := repo.Latest("alice@whu.edu", 0, "Ch.3")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "Well done", g.Grade)

	history, err := repo.ListByEmail("alice@whu.edu", "Ch.3")
	require.NoError(t, err)
	require.Len(t, history, 3, "regrading keeps the full history")
	assert.Equal(t, "Redo Part B", history[0].Grade)
}

func TestLatestScopedToSection(t *testing.T) {
	repo := New(testDB(t))
	base := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(&entities.Grade{Email: "alice@whu.edu", QuestionIdx: 0, Grade: "case grade", Section: "7-Eleven Case 2015", GradedAt: base}))

	g, err := repo.Latest("alice@whu.edu", 0, "Ch.3")
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestSaveStampsGradedAt(t *testing.T) {
	repo := New(testDB(t))
	g := &entities.Grade{Email: " Alice@WHU.edu ", QuestionIdx: 2, Grade: "Good", Section: "Ch.3"}

	require.NoError(t, repo.Save(g))

	assert.Equal(t, "alice@whu.edu", g.Email)
	assert.False(t, g.GradedAt.IsZero())
}
