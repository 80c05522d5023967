package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/roomshare/roomshare/internal/dto"
	"github.com/roomshare/roomshare/internal/model"
	"github.com/roomshare/roomshare/pkg/apperror"
)

// roomWithMembers creates a professor-owned room and joins the given students.
func roomWithMembers(t *testing.T, env *testEnv, professor *model.User, code string, students ...*model.User) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	created, err := env.rooms.Create(ctx, professor.ID, dto.CreateRoomRequest{Name: "Room " + code, Code: code})
	require.NoError(t, err)

	for _, s := range students {
		_, err := env.rooms.Join(ctx, s.ID, dto.JoinRoomRequest{Code: code})
		require.NoError(t, err)
	}

	return created.RoomID
}

func TestUploadAndListFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	student := createTestUser(t, env.db, model.RoleStudent, "student@example.com")
	roomID := roomWithMembers(t, env, professor, "FILES", student)

	uploaded, err := env.files.Upload(ctx, student.ID, roomID, "beleske.pdf",
		bytesReader("pdf-bytes"), int64(len("pdf-bytes")))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, uploaded.FileID)

	files, err := env.files.List(ctx, student.ID, roomID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "beleske.pdf", files[0].OriginalName)
	require.Equal(t, student.ID, files[0].UploaderID)
	require.Equal(t, student.FullName(), files[0].UploaderName)
	require.EqualValues(t, len("pdf-bytes"), files[0].Size)
}

func TestListFiles_OrderedByUploadTimeDesc(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	roomID := roomWithMembers(t, env, professor, "ORDER")

	older := &model.File{RoomID: roomID, UploaderID: professor.ID, OriginalName: "older.txt",
		StorageKey: uuid.NewString(), UploadedAt: time.Now().Add(-2 * time.Hour)}
	newer := &model.File{RoomID: roomID, UploaderID: professor.ID, OriginalName: "newer.txt",
		StorageKey: uuid.NewString(), UploadedAt: time.Now().Add(-1 * time.Hour)}
	require.NoError(t, env.db.Create(older).Error)
	require.NoError(t, env.db.Create(newer).Error)

	files, err := env.files.List(ctx, professor.ID, roomID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "newer.txt", files[0].OriginalName)
	require.Equal(t, "older.txt", files[1].OriginalName)
}

func TestListFiles_NonMemberForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	outsider := createTestUser(t, env.db, model.RoleStudent, "outsider@example.com")
	roomID := roomWithMembers(t, env, professor, "PRIV")

	_, err := env.files.List(ctx, outsider.ID, roomID)
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestUpload_NonMemberForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	outsider := createTestUser(t, env.db, model.RoleStudent, "outsider@example.com")
	roomID := roomWithMembers(t, env, professor, "UP")

	_, err := env.files.Upload(ctx, outsider.ID, roomID, "x.txt", bytesReader("x"), 1)
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestUpload_EmptyFilename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	roomID := roomWithMembers(t, env, professor, "NAME")

	_, err := env.files.Upload(ctx, professor.ID, roomID, "  ", bytesReader("x"), 1)
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestDeleteFile_ByUploader(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	student := createTestUser(t, env.db, model.RoleStudent, "student@example.com")
	roomID := roomWithMembers(t, env, professor, "DELS", student)

	uploaded, err := env.files.Upload(ctx, student.ID, roomID, "mine.txt", bytesReader("mine"), 4)
	require.NoError(t, err)

	require.NoError(t, env.files.Delete(ctx, student.ID, uploaded.FileID))

	var count int64
	require.NoError(t, env.db.Model(&model.File{}).Where("id = ?", uploaded.FileID).Count(&count).Error)
	require.Zero(t, count)
}

func TestDeleteFile_ProfessorOverride(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	student := createTestUser(t, env.db, model.RoleStudent, "student@example.com")
	roomID := roomWithMembers(t, env, professor, "OVR", student)

	uploaded, err := env.files.Upload(ctx, student.ID, roomID, "student.txt", bytesReader("s"), 1)
	require.NoError(t, err)

	// A professor member may delete a file they did not upload.
	require.NoError(t, env.files.Delete(ctx, professor.ID, uploaded.FileID))
}

func TestDeleteFile_StudentCannotDeleteOthers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	uploader := createTestUser(t, env.db, model.RoleStudent, "uploader@example.com")
	other := createTestUser(t, env.db, model.RoleStudent, "other@example.com")
	roomID := roomWithMembers(t, env, professor, "NOPE", uploader, other)

	uploaded, err := env.files.Upload(ctx, uploader.ID, roomID, "theirs.txt", bytesReader("t"), 1)
	require.NoError(t, err)

	err = env.files.Delete(ctx, other.ID, uploaded.FileID)
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestDeleteFile_NonMemberForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	outsider := createTestUser(t, env.db, model.RoleProfessor, "outsider@example.com")
	roomID := roomWithMembers(t, env, professor, "OUT")

	uploaded, err := env.files.Upload(ctx, professor.ID, roomID, "in.txt", bytesReader("i"), 1)
	require.NoError(t, err)

	// Even a professor cannot delete files in a room they do not belong to.
	err = env.files.Delete(ctx, outsider.ID, uploaded.FileID)
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestDeleteFile_NotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")

	err := env.files.Delete(ctx, professor.ID, uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteFile_MissingBlobTolerated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	roomID := roomWithMembers(t, env, professor, "BLOB")

	uploaded, err := env.files.Upload(ctx, professor.ID, roomID, "gone.txt", bytesReader("g"), 1)
	require.NoError(t, err)

	var file model.File
	require.NoError(t, env.db.First(&file, "id = ?", uploaded.FileID).Error)
	require.NoError(t, env.blobs.Delete(ctx, file.StorageKey))

	// Blob already absent: the metadata row is still removed.
	require.NoError(t, env.files.Delete(ctx, professor.ID, uploaded.FileID))
}

func TestDownloadFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	student := createTestUser(t, env.db, model.RoleStudent, "student@example.com")
	roomID := roomWithMembers(t, env, professor, "DOWN", student)

	content := "hello room"
	uploaded, err := env.files.Upload(ctx, student.ID, roomID, "белешке.pdf",
		bytesReader(content), int64(len(content)))
	require.NoError(t, err)

	dl, err := env.files.Download(ctx, professor.ID, uploaded.FileID)
	require.NoError(t, err)
	defer dl.Content.Close()

	data, err := io.ReadAll(dl.Content)
	require.NoError(t, err)
	require.Equal(t, content, string(data))
	require.EqualValues(t, len(content), dl.Size)
	require.Equal(t, "белешке.pdf", dl.OriginalName)

	// The suggested name is ASCII-safe while the original is preserved.
	for _, r := range dl.DownloadName {
		require.Less(t, r, rune(128))
	}
	require.NotEmpty(t, dl.DownloadName)
}

func TestDownloadFile_NonMemberGetsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := createTestUser(t, env.db, model.RoleProfessor, "prof@example.com")
	outsider := createTestUser(t, env.db, model.RoleStudent, "outsider@example.com")
	roomID := roomWithMembers(t, env, professor, "HIDE")

	uploaded, err := env.files.Upload(ctx, professor.ID, roomID, "secret.txt", bytesReader("s"), 1)
	require.NoError(t, err)

	// Unlike room info, access failure here is indistinguishable from a
	// missing file.
	_, err = env.files.Download(ctx, outsider.ID, uploaded.FileID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
	require.NotErrorIs(t, err, apperror.ErrForbidden)
}

func TestDownloadFile_AbsentFileNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := createTestUser(t, env.db, model.RoleStudent, "student@example.com")

	_, err := env.files.Download(ctx, student.ID, uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
