package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/domain/entity"
	"vitrina/pkg/errors"
)

func newCommentFixture() (*CommentUseCase, *fakeCommentRepo, *fakeUserRepo) {
	commentRepo := newFakeCommentRepo()
	userRepo := newFakeUserRepo()
	uc := NewCommentUseCase(commentRepo, userRepo)
	return uc, commentRepo, userRepo
}

func TestCreateCommentRequiresAuth(t *testing.T) {
	uc, _, _ := newCommentFixture()

	_, err := uc.CreateComment(context.Background(), "lst-1", "", CreateCommentInput{Text: "hi"})

	assert.True(t, errors.Is(err, "NOT_AUTHENTICATED"))
}

func TestCreateCommentRequiresHandle(t *testing.T) {
	uc, _, userRepo := newCommentFixture()
	userRepo.Create(context.Background(), &entity.User{ID: "u1", Username: ""})

	_, err := uc.CreateComment(context.Background(), "lst-1", "u1", CreateCommentInput{Text: "hi"})
	assert.True(t, errors.Is(err, "NO_HANDLE"))

	// A user with no profile at all is treated the same way.
	_, err = uc.CreateComment(context.Background(), "lst-1", "ghost", CreateCommentInput{Text: "hi"})
	assert.True(t, errors.Is(err, "NO_HANDLE"))
}

func TestCreateCommentRejectsBlankText(t *testing.T) {
	uc, _, userRepo := newCommentFixture()
	userRepo.Create(context.Background(), &entity.User{ID: "u1", Username: "ana"})

	_, err := uc.CreateComment(context.Background(), "lst-1", "u1", CreateCommentInput{Text: "   \n\t "})

	assert.True(t, errors.Is(err, "EMPTY_TEXT"))
}

func TestCreateCommentFreezesAuthorHandle(t *testing.T) {
	uc, commentRepo, userRepo := newCommentFixture()
	userRepo.Create(context.Background(), &entity.User{ID: "u1", Username: "ana"})

	comment, err := uc.CreateComment(context.Background(), "lst-1", "u1", CreateCommentInput{Text: "  first!  "})
	require.NoError(t, err)

	assert.Equal(t, "ana", comment.AuthorUsername)
	assert.Equal(t, "first!", comment.Text)
	assert.NotEmpty(t, comment.ID)

	stored, err := commentRepo.ListByListing(context.Background(), "lst-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "ana", stored[0].AuthorUsername)
}

func TestBuildThreadsPartitionsTwoLevels(t *testing.T) {
	comments := []entity.Comment{
		{ID: "c1", Text: "top one"},
		{ID: "c2", Text: "reply to one", ParentID: "c1"},
		{ID: "c3", Text: "top two"},
		{ID: "c4", Text: "another reply to one", ParentID: "c1"},
		{ID: "c5", Text: "reply to two", ParentID: "c3"},
	}

	threads := BuildThreads(comments)

	require.Len(t, threads, 2)
	assert.Equal(t, "c1", threads[0].ID)
	assert.Equal(t, "c3", threads[1].ID)

	require.Len(t, threads[0].Replies, 2)
	assert.Equal(t, "c2", threads[0].Replies[0].ID)
	assert.Equal(t, "c4", threads[0].Replies[1].ID)

	require.Len(t, threads[1].Replies, 1)
	assert.Equal(t, "c5", threads[1].Replies[0].ID)
}

func TestBuildThreadsDropsOrphanReplies(t *testing.T) {
	comments := []entity.Comment{
		{ID: "c1", Text: "top"},
		{ID: "c2", Text: "reply to missing parent", ParentID: "gone"},
		{ID: "c3", Text: "reply to a reply", ParentID: "c2"},
	}

	threads := BuildThreads(comments)

	// Orphans are hidden, never promoted to top level.
	require.Len(t, threads, 1)
	assert.Equal(t, "c1", threads[0].ID)
	assert.Empty(t, threads[0].Replies)
}

func TestBuildThreadsEmptyRepliesNotNil(t *testing.T) {
	threads := BuildThreads([]entity.Comment{{ID: "c1"}})

	require.Len(t, threads, 1)
	assert.NotNil(t, threads[0].Replies)
}

func TestBuildThreadsEmptyInput(t *testing.T) {
	assert.Empty(t, BuildThreads(nil))
}
