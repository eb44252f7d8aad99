package domain

import (
	"testing"

	"github.com/stayloft-lab/backend/internal/model"
	"github.com/stayloft-lab/backend/internal/repository"
	"github.com/stayloft-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_commentDomain_FullScenario(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	commentDomain := NewCommentDomain(
		repository.NewCommentRepository(),
		repository.NewSubmissionRepository(),
		repository.NewUserRepository(),
	)

	// Cannot comment without signing in.
	_, err := commentDomain.Add(ctx, &model.AddCommentRequest{
		SubmissionID: testutil.Submission1.ID,
		Body:         "Nice story",
	})
	require.Error(t, err)
	require.Equal(t, "You need to sign in before commenting", err.Error())

	// Cannot comment on a pending submission.
	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err = commentDomain.Add(ctxUser1, &model.AddCommentRequest{
		SubmissionID: testutil.Submission2.ID,
		Body:         "Nice story",
	})
	require.Error(t, err)
	require.Equal(t, "This article is not open for comments because it is pending", err.Error())

	// Cannot add an empty comment.
	_, err = commentDomain.Add(ctxUser1, &model.AddCommentRequest{
		SubmissionID: testutil.Submission1.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Not allow empty comment", err.Error())

	// Comment on an approved submission successfully.
	first, err := commentDomain.Add(ctxUser1, &model.AddCommentRequest{
		SubmissionID: testutil.Submission1.ID,
		Body:         "First!",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, first.Comment.AuthorID)

	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	second, err := commentDomain.Add(ctxUser2, &model.AddCommentRequest{
		SubmissionID: testutil.Submission1.ID,
		Body:         "Second, but the view was better from here",
	})
	require.NoError(t, err)

	// The thread is ordered oldest first.
	list, err := commentDomain.GetList(ctx, &model.GetListCommentRequest{
		SubmissionID: testutil.Submission1.ID,
	})
	require.NoError(t, err)
	require.Len(t, list.Comments, 2)
	require.Equal(t, first.Comment.ID, list.Comments[0].ID)
	require.Equal(t, second.Comment.ID, list.Comments[1].ID)
	require.Equal(t, testutil.User1.Name, list.Comments[0].AuthorName)

	// Only the author removes a comment.
	_, err = commentDomain.Delete(ctxUser1, &model.DeleteCommentRequest{ID: second.Comment.ID})
	require.Error(t, err)
	require.Equal(t, "Only the author can delete this comment", err.Error())

	_, err = commentDomain.Delete(ctxUser2, &model.DeleteCommentRequest{ID: second.Comment.ID})
	require.NoError(t, err)

	list, err = commentDomain.GetList(ctx, &model.GetListCommentRequest{
		SubmissionID: testutil.Submission1.ID,
	})
	require.NoError(t, err)
	require.Len(t, list.Comments, 1)
}
