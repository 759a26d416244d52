package cli

import (
	"blogtty/internal/api"
	"blogtty/internal/query"

	"github.com/spf13/cobra"
)

func newPostsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse and manage posts",
	}
	cmd.AddCommand(newPostsListCmd(app))
	cmd.AddCommand(newPostsSearchCmd(app))
	cmd.AddCommand(newPostsShowCmd(app))
	cmd.AddCommand(newPostsDraftsCmd(app))
	cmd.AddCommand(newPostsCreateCmd(app))
	cmd.AddCommand(newPostsUpdateCmd(app))
	cmd.AddCommand(newPostsDeleteCmd(app))
	return cmd
}

func newPostsListCmd(app *App) *cobra.Command {
	var (
		rawQuery string
		search   string
		category string
		tag      string
		sort     string
		page     int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published posts (one page)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}

			// --query takes a full shareable query string; the individual
			// flags override its parts. Invariants (filter exclusivity,
			// search-resets-page) apply in order, same as UI interactions.
			st := query.Parse(rawQuery)
			if cmd.Flags().Changed("category") {
				st = st.WithCategory(category)
			}
			if cmd.Flags().Changed("tag") {
				st = st.WithTag(tag)
			}
			if cmd.Flags().Changed("search") {
				st = st.WithSearch(search)
			}
			if cmd.Flags().Changed("sort") {
				st = st.WithSort(sort)
			}
			if cmd.Flags().Changed("page") {
				st = st.WithPage(page)
			}
			st = st.Normalize()

			var (
				pageResp api.Page[api.Post]
				err      error
			)
			if st.Route() == query.RouteSearch {
				title, params := st.SearchParams()
				pageResp, err = app.client.SearchPosts(cmd.Context(), title, params)
			} else {
				pageResp, err = app.client.ListPosts(cmd.Context(), st.ListParams())
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, pageResp)
		},
	}
	cmd.Flags().StringVar(&rawQuery, "query", "", "Canonical query string (shareable)")
	cmd.Flags().StringVar(&search, "search", "", "Search text (takes precedence over filters)")
	cmd.Flags().StringVar(&category, "category", "", "Category id filter")
	cmd.Flags().StringVar(&tag, "tag", "", "Tag id filter (mutually exclusive with --category)")
	cmd.Flags().StringVar(&sort, "sort", "", "Sort spec (default createdAt,desc)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	return cmd
}

func newPostsSearchCmd(app *App) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Search posts by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			pageResp, err := app.client.SearchPosts(cmd.Context(), args[0], api.PageParams{Page: page})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, pageResp)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	return cmd
}

func newPostsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <post-id>",
		Short: "Show one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			post, err := app.client.GetPost(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, post)
		},
	}
}

func newPostsDraftsCmd(app *App) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "List your draft posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			pageResp, err := app.client.ListDrafts(cmd.Context(), api.PageParams{Page: page})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, pageResp)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	return cmd
}

func newPostsCreateCmd(app *App) *cobra.Command {
	var (
		title    string
		content  string
		category string
		tags     []string
		draft    bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			status := api.PostStatusPublished
			if draft {
				status = api.PostStatusDraft
			}
			post, err := app.client.CreatePost(cmd.Context(), api.CreatePostRequest{
				Title:      title,
				Content:    content,
				CategoryID: category,
				TagIDs:     tags,
				Status:     status,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, post)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&content, "content", "", "Post body (markdown)")
	cmd.Flags().StringVar(&category, "category", "", "Category id")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag id (repeatable)")
	cmd.Flags().BoolVar(&draft, "draft", false, "Save as draft instead of publishing")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newPostsUpdateCmd(app *App) *cobra.Command {
	var (
		title    string
		content  string
		category string
		tags     []string
		publish  bool
		draft    bool
	)
	cmd := &cobra.Command{
		Use:   "update <post-id>",
		Short: "Update a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			id := args[0]
			// Start from the current post so partial flag sets don't blank
			// out the other fields.
			current, err := app.client.GetPost(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			req := api.UpdatePostRequest{
				ID: id,
				CreatePostRequest: api.CreatePostRequest{
					Title:      current.Title,
					Content:    current.Content,
					CategoryID: current.Category.ID,
					Status:     current.Status,
				},
			}
			for _, t := range current.Tags {
				req.TagIDs = append(req.TagIDs, t.ID)
			}
			if cmd.Flags().Changed("title") {
				req.Title = title
			}
			if cmd.Flags().Changed("content") {
				req.Content = content
			}
			if cmd.Flags().Changed("category") {
				req.CategoryID = category
			}
			if cmd.Flags().Changed("tag") {
				req.TagIDs = tags
			}
			if publish {
				req.Status = api.PostStatusPublished
			}
			if draft {
				req.Status = api.PostStatusDraft
			}
			post, err := app.client.UpdatePost(cmd.Context(), id, req)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, post)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body (markdown)")
	cmd.Flags().StringVar(&category, "category", "", "New category id")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag id (repeatable; replaces the tag set)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the post")
	cmd.Flags().BoolVar(&draft, "draft", false, "Move the post back to draft")
	cmd.MarkFlagsMutuallyExclusive("publish", "draft")
	return cmd
}

func newPostsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.bootstrap(); err != nil {
				return err
			}
			if err := app.client.DeletePost(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"deleted": args[0]})
		},
	}
}
