package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink-app/carelink-backend/internal/auth"
	"github.com/carelink-app/carelink-backend/internal/media/domain"
)

type fakeAvatars struct {
	err error
}

func (f *fakeAvatars) Upload(_ context.Context, userID string, _ *multipart.FileHeader) (*domain.Object, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Object{Key: "avatars/" + userID + "/1_x.png", SignedURL: "https://signed.example/x"}, nil
}

type fakeFamilyMedia struct {
	objects []domain.Object
}

func (f *fakeFamilyMedia) Upload(_ context.Context, familyID string, _ *multipart.FileHeader) (*domain.Object, error) {
	return &domain.Object{Key: "family/" + familyID + "/1_x.jpg"}, nil
}

func (f *fakeFamilyMedia) List(_ context.Context, _ string) ([]domain.Object, error) {
	return f.objects, nil
}

type fakeFamilies struct {
	familyID string
}

func (f *fakeFamilies) FamilyIDForUser(_ context.Context, _ string) (string, error) {
	return f.familyID, nil
}

func setupRouter(avatars Avatars, fm FamilyMedia, families FamilyLookup, authedUID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := func(c *gin.Context) {
		if authedUID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}
		c.Set(auth.CtxUserID, authedUID)
		c.Next()
	}
	New(avatars, fm, families).Routes(r, authed)
	return r
}

func multipartRequest(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadAvatar(t *testing.T) {
	r := setupRouter(&fakeAvatars{}, &fakeFamilyMedia{}, &fakeFamilies{familyID: "fam-1"}, "u1")

	body, contentType := multipartRequest(t, "image", "me.png", []byte("png bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload-avatar", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "avatarUrl")
}

func TestUploadAvatarMissingFile(t *testing.T) {
	r := setupRouter(&fakeAvatars{}, &fakeFamilyMedia{}, &fakeFamilies{familyID: "fam-1"}, "u1")

	req := httptest.NewRequest(http.MethodPost, "/upload-avatar", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadAvatarTooLarge(t *testing.T) {
	r := setupRouter(&fakeAvatars{err: domain.ErrFileTooLarge}, &fakeFamilyMedia{}, &fakeFamilies{familyID: "fam-1"}, "u1")

	body, contentType := multipartRequest(t, "image", "big.png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/upload-avatar", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestListFamilyMediaForbiddenForOtherFamily(t *testing.T) {
	r := setupRouter(&fakeAvatars{}, &fakeFamilyMedia{}, &fakeFamilies{familyID: "fam-1"}, "u1")

	req := httptest.NewRequest(http.MethodGet, "/family-media/fam-2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/family-media/fam-1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
