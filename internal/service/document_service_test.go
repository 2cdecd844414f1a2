package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func newDocumentService(t *testing.T, f projectFixture) *DocumentService {
	return NewDocumentService(repository.NewDocumentRepository(f.db), f.projects, newLocalStorage(t))
}

func TestFolderTreeRules(t *testing.T) {
	f := newProjectFixture(t)
	svc := newDocumentService(t, f)
	ctx := context.Background()

	root, err := svc.CreateFolder(ctx, f.client, f.project.ID, CreateFolderRequest{Name: "Design"})
	require.NoError(t, err)
	child, err := svc.CreateFolder(ctx, f.freelancer, f.project.ID, CreateFolderRequest{Name: "Drafts", ParentID: &root.ID})
	require.NoError(t, err)
	grandchild, err := svc.CreateFolder(ctx, f.freelancer, f.project.ID, CreateFolderRequest{Name: "Old", ParentID: &child.ID})
	require.NoError(t, err)

	_, err = svc.CreateFolder(ctx, f.client, f.project.ID, CreateFolderRequest{Name: "Design"})
	assert.True(t, util.IsBadRequest(err), "duplicate sibling name")

	_, err = svc.CreateFolder(ctx, f.client, f.project.ID, CreateFolderRequest{Name: "Drafts"})
	require.NoError(t, err, "same name under a different parent is fine")

	_, err = svc.UpdateFolder(ctx, f.client, root.ID, UpdateFolderRequest{ParentID: &root.ID})
	assert.True(t, util.IsBadRequest(err))
	_, err = svc.UpdateFolder(ctx, f.client, root.ID, UpdateFolderRequest{ParentID: &grandchild.ID})
	assert.True(t, util.IsBadRequest(err))

	moved, err := svc.UpdateFolder(ctx, f.client, grandchild.ID, UpdateFolderRequest{MoveToRoot: true})
	require.NoError(t, err)
	assert.Nil(t, moved.ParentID)

	assert.True(t, util.IsBadRequest(svc.DeleteFolder(ctx, f.client, root.ID)))
	require.NoError(t, svc.DeleteFolder(ctx, f.client, child.ID))
	require.NoError(t, svc.DeleteFolder(ctx, f.client, root.ID))

	_, err = svc.ListFolders(ctx, f.outsider, f.project.ID)
	assert.True(t, util.IsBadRequest(err))
}

func TestDocumentUploadLifecycle(t *testing.T) {
	f := newProjectFixture(t)
	svc := newDocumentService(t, f)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, f.client, f.project.ID, CreateFolderRequest{Name: "Contracts"})
	require.NoError(t, err)

	document, err := svc.UploadDocument(ctx, f.freelancer, f.project.ID, folder.ID, multipartFile(t, "scope of work.pdf", []byte("%PDF-1.4\n%test document\n")))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", document.MimeType)
	assert.Equal(t, "scope-of-work.pdf", document.Name)
	require.NotNil(t, document.FolderID)

	stored := filepath.Join(svc.Storage.Config.LocalPath, filepath.FromSlash(document.ObjectKey))
	_, err = os.Stat(stored)
	require.NoError(t, err)

	_, err = svc.UploadDocument(ctx, f.freelancer, f.project.ID, "", multipartFile(t, "song.mp3", []byte("ID3\x03\x00\x00\x00\x00\x00\x00")))
	assert.True(t, util.IsBadRequest(err))

	inFolder, err := svc.ListDocuments(ctx, f.client, f.project.ID, folder.ID)
	require.NoError(t, err)
	assert.Len(t, inFolder, 1)

	name := "sow-final.pdf"
	renamed, err := svc.UpdateDocument(ctx, f.client, document.ID, UpdateDocumentRequest{Name: &name, MoveToRoot: true})
	require.NoError(t, err)
	assert.Equal(t, "sow-final.pdf", renamed.Name)
	assert.Nil(t, renamed.FolderID)

	assert.True(t, util.IsBadRequest(svc.DeleteDocument(ctx, f.outsider, document.ID)))
	require.NoError(t, svc.DeleteDocument(ctx, f.client, document.ID))

	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
	_, err = svc.GetDocument(ctx, f.client, document.ID)
	assert.True(t, util.IsNotFound(err))
}
