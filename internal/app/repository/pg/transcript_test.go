package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yourtranscript/internal/app/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestTranscriptUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTranscriptRepo(db)

	transcript := &model.Transcript{
		VideoID:  "abc12345678",
		Language: "en",
		Segments: []model.TranscriptSegment{
			{Text: "hello", Start: 0, Duration: 1.5},
		},
		TextBlob:  "hello",
		UpdatedAt: time.Now(),
	}
	segments, err := json.Marshal(transcript.Segments)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO transcripts .+ ON CONFLICT \(video_id\) DO UPDATE`).
		WithArgs("abc12345678", "en", segments, "hello", transcript.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), transcript))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranscriptGetByVideoID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTranscriptRepo(db)

	updatedAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	segments := `[{"text":"hello","start":0,"duration":1.5}]`

	mock.ExpectQuery(`SELECT video_id, language, segments, text_blob, updated_at`).
		WithArgs("abc12345678").
		WillReturnRows(sqlmock.NewRows([]string{"video_id", "language", "segments", "text_blob", "updated_at"}).
			AddRow("abc12345678", "en", []byte(segments), "hello", updatedAt))

	got, err := repo.GetByVideoID(context.Background(), "abc12345678")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "en", got.Language)
	require.Len(t, got.Segments, 1)
	assert.Equal(t, "hello", got.Segments[0].Text)
	assert.Equal(t, 1.5, got.Segments[0].Duration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranscriptGetByVideoIDAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTranscriptRepo(db)

	mock.ExpectQuery(`SELECT video_id, language, segments, text_blob, updated_at`).
		WithArgs("unknownvid0").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByVideoID(context.Background(), "unknownvid0")
	require.NoError(t, err)
	assert.Nil(t, got)
}
