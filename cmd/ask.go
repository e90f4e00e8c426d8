package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/buildsy/buildsy-backend/client"
	"github.com/buildsy/buildsy-backend/ideas"
	"github.com/buildsy/buildsy-backend/prompts"
	"github.com/spf13/cobra"
)

type askOptions struct {
	Message string
	Context string
	Params  prompts.Params
	Save    bool
	Public  bool
}

var (
	askContext string
	askParams  []string
	askSave    bool
	askPublic  bool
	askAPIURL  string
	askToken   string
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Brainstorm with the assistant and optionally save the idea",
	Long: "Sends the message to the chat API, prints the reply and the project draft read from it. " +
		"With --save the draft is stored as a private project; --public then publishes it.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := parseParams(askParams)
		if err != nil {
			return err
		}
		if askPublic && !askSave {
			return fmt.Errorf("--public requires --save")
		}

		baseURL := askAPIURL
		if baseURL == "" {
			baseURL = getenv("BUILDSY_API_URL", "http://localhost:8080")
		}
		token := askToken
		if token == "" {
			token = getenv("BUILDSY_TOKEN", "")
		}

		c := client.New(baseURL, client.WithToken(token))
		return runAsk(cmd.Context(), cmd.OutOrStdout(), c, askOptions{
			Message: strings.Join(args, " "),
			Context: askContext,
			Params:  params,
			Save:    askSave,
			Public:  askPublic,
		})
	},
}

func init() {
	askCmd.Flags().StringVar(&askContext, "context", "", "Conversation context, e.g. features or technology")
	askCmd.Flags().StringArrayVar(&askParams, "param", nil, "Context parameter as key=value, repeatable")
	askCmd.Flags().BoolVar(&askSave, "save", false, "Save the extracted draft as a project")
	askCmd.Flags().BoolVar(&askPublic, "public", false, "Publish the saved project to the community feed")
	askCmd.Flags().StringVar(&askAPIURL, "api-url", "", "API base URL (default $BUILDSY_API_URL)")
	askCmd.Flags().StringVar(&askToken, "token", "", "Bearer token (default $BUILDSY_TOKEN)")
	rootCmd.AddCommand(askCmd)
}

// parseParams turns key=value pairs into context parameters.
func parseParams(pairs []string) (prompts.Params, error) {
	var params prompts.Params
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return params, fmt.Errorf("invalid --param %q, want key=value", pair)
		}
		if !params.Set(prompts.Slot(strings.TrimSpace(key)), value) {
			return params, fmt.Errorf("unknown parameter %q", key)
		}
	}
	return params, nil
}

func runAsk(ctx context.Context, out io.Writer, c *client.Client, opts askOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reply, err := c.SendMessage(ctx, opts.Message, opts.Context, opts.Params, "")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, reply.Response)

	draft := ideas.Sanitize(ideas.Extract(reply.Response))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Name:       %s\n", draft.Name)
	fmt.Fprintf(out, "Category:   %s\n", draft.Category)
	fmt.Fprintf(out, "Difficulty: %s\n", draft.Difficulty)
	fmt.Fprintf(out, "Duration:   %s\n", draft.EstimatedDuration)
	if len(draft.TechStack) > 0 {
		fmt.Fprintf(out, "Tech stack: %s\n", strings.Join(draft.TechStack, ", "))
	}

	if !opts.Save {
		return nil
	}
	project, err := c.CreateProject(ctx, draft)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	fmt.Fprintf(out, "Saved project %s\n", project.ID)

	if opts.Public {
		if _, err := c.SetVisibility(ctx, project.ID, true); err != nil {
			return fmt.Errorf("publish project: %w", err)
		}
		fmt.Fprintln(out, "Published to the community feed")
	}
	return nil
}
