package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")

	post, err := f.posts.CreatePost(ctx, alice.ID, " Hello ", " World ")
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "World", post.Content)
	assert.False(t, post.CreatedAt.IsZero())

	_, err = f.posts.CreatePost(ctx, alice.ID, "", "World")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	_, err = f.posts.CreatePost(ctx, alice.ID, "Hello", "   ")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	_, err = f.posts.CreatePost(ctx, 0, "Hello", "World")
	assert.ErrorIs(t, err, services.ErrAuthenticationRequired)

	assert.EqualValues(t, 1, f.count(t, &models.Post{}))
}

func TestPostService_ListPostsPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		owner := alice.ID
		if i%3 == 0 {
			owner = bob.ID
		}
		post := &models.Post{UserID: owner, Title: fmt.Sprintf("post %d", i), Content: "c", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, f.store.Posts().Create(ctx, post))
	}

	page, err := f.posts.ListPosts(ctx, 1, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 12, page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.False(t, page.HasPrev)
	assert.True(t, page.HasNext)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "post 11", page.Items[0].Title, "newest first")

	page, err = f.posts.ListPosts(ctx, 3, 5)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "post 0", page.Items[1].Title)
	assert.False(t, page.HasNext)

	page, err = f.posts.ListPosts(ctx, 4, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Pages)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)

	huge := (1 << 61) + 1
	page, err = f.posts.ListPosts(ctx, huge, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Items, "pages far past the end must not wrap around")
	assert.Equal(t, huge, page.Page)
	assert.EqualValues(t, 12, page.Total)
	assert.False(t, page.HasNext)

	mine, err := f.posts.ListUserPosts(ctx, bob.ID, 1, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 4, mine.Total)
	for _, p := range mine.Items {
		assert.Equal(t, bob.ID, p.UserID)
	}
}

func TestPostService_ListPostsCommentCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")

	post, err := f.posts.CreatePost(ctx, alice.ID, "Hello", "World")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := f.posts.AddComment(ctx, post.ID, alice.ID, "hi")
		require.NoError(t, err)
	}

	page, err := f.posts.ListPosts(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Items[0].CommentCount)
	assert.Equal(t, "alice", page.Items[0].User.Username)
}

func TestPostService_UpdatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	post, err := f.posts.CreatePost(ctx, alice.ID, "Hello", "World")
	require.NoError(t, err)

	assert.ErrorIs(t, f.posts.UpdatePost(ctx, 999, alice.ID, "a", "b"), services.ErrNotFound)
	assert.ErrorIs(t, f.posts.UpdatePost(ctx, post.ID, bob.ID, "a", "b"), services.ErrForbidden)
	// 非作者即使输入无效也返回 Forbidden
	assert.ErrorIs(t, f.posts.UpdatePost(ctx, post.ID, bob.ID, "", ""), services.ErrForbidden)
	assert.ErrorIs(t, f.posts.UpdatePost(ctx, post.ID, alice.ID, "", "b"), services.ErrInvalidInput)

	require.NoError(t, f.posts.UpdatePost(ctx, post.ID, alice.ID, "Hi", "There"))
	got, err := f.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi", got.Title)
	assert.Equal(t, "There", got.Content)
	assert.Equal(t, alice.ID, got.UserID)
}

func TestPostService_DeletePostRemovesComments(t *testing.T) {
	for name, newF := range map[string]func(*testing.T) *fixture{
		"enforced": newFixture,
		"legacy":   newLegacyFixture,
	} {
		t.Run(name, func(t *testing.T) {
			f := newF(t)
			ctx := context.Background()
			alice := f.register(t, "alice")
			bob := f.register(t, "bob")

			doomed, err := f.posts.CreatePost(ctx, alice.ID, "Hello", "World")
			require.NoError(t, err)
			kept, err := f.posts.CreatePost(ctx, alice.ID, "Keep", "Me")
			require.NoError(t, err)
			for _, postID := range []uint{doomed.ID, doomed.ID, kept.ID} {
				_, err := f.posts.AddComment(ctx, postID, bob.ID, "Nice!")
				require.NoError(t, err)
			}

			assert.ErrorIs(t, f.posts.DeletePost(ctx, doomed.ID, bob.ID), services.ErrForbidden)
			require.NoError(t, f.posts.DeletePost(ctx, doomed.ID, alice.ID))

			comments, err := f.posts.ListComments(ctx, doomed.ID)
			require.NoError(t, err)
			assert.Empty(t, comments)
			_, err = f.posts.GetPost(ctx, doomed.ID)
			assert.ErrorIs(t, err, services.ErrNotFound)

			comments, err = f.posts.ListComments(ctx, kept.ID)
			require.NoError(t, err)
			assert.Len(t, comments, 1)

			assert.ErrorIs(t, f.posts.DeletePost(ctx, doomed.ID, alice.ID), services.ErrNotFound)
		})
	}
}

func TestPostService_AddComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	post, err := f.posts.CreatePost(ctx, alice.ID, "Hello", "World")
	require.NoError(t, err)

	_, err = f.posts.AddComment(ctx, 999, bob.ID, "Nice!")
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = f.posts.AddComment(ctx, post.ID, 0, "Nice!")
	assert.ErrorIs(t, err, services.ErrAuthenticationRequired)
	_, err = f.posts.AddComment(ctx, post.ID, bob.ID, "  ")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	first, err := f.posts.AddComment(ctx, post.ID, bob.ID, " Nice! ")
	require.NoError(t, err)
	assert.Equal(t, "Nice!", first.Content)
	second, err := f.posts.AddComment(ctx, post.ID, alice.ID, "Thanks")
	require.NoError(t, err)

	comments, err := f.posts.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID, "newest first")
	assert.Equal(t, first.ID, comments[1].ID)
	assert.Equal(t, "bob", comments[1].User.Username)
}
